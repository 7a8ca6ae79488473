package model

import (
	"strings"

	"library-backend/internal/shared/entity"
	"library-backend/internal/shared/query"
	"library-backend/internal/shared/utils"
)

// Author: FullName và Slug là derived fields, luôn được tính lại từ
// first/middle/last name bằng RebuildDerived trước khi persist.
type Author struct {
	entity.Base
	FirstName  string  `json:"first_name"`
	LastName   string  `json:"last_name"`
	MiddleName *string `json:"middle_name"`
	FullName   string  `json:"full_name"`
	Slug       string  `json:"slug"`
	Bio        *string `json:"bio"`
}

// BuildFullName nối first, middle (nếu có), last bằng một dấu cách
func BuildFullName(first string, middle *string, last string) string {
	parts := make([]string, 0, 3)
	for _, p := range []string{first, utils.Deref(middle), last} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(strings.Fields(strings.Join(parts, " ")), " ")
}

// RebuildDerived recomputes FullName and Slug from the name fields
func (a *Author) RebuildDerived() {
	a.FullName = BuildFullName(a.FirstName, a.MiddleName, a.LastName)
	a.Slug = utils.Slugify(a.FullName)
}

// Schema mô tả bảng authors cho list/search/sort
var Schema = &query.Schema{
	Table:   "authors",
	Columns: []string{"id", "first_name", "last_name", "middle_name", "full_name", "slug", "bio", "created_at", "updated_at"},
	Sortable: map[string]string{
		"id":         "id",
		"first_name": "first_name",
		"firstName":  "first_name",
		"last_name":  "last_name",
		"lastName":   "last_name",
		"full_name":  "full_name",
		"fullName":   "full_name",
		"slug":       "slug",
		"created_at": "created_at",
		"createdAt":  "created_at",
		"updated_at": "updated_at",
		"updatedAt":  "updated_at",
	},
	DefaultSort:   "created_at",
	SearchColumns: []string{"full_name", "bio"},
	ExactColumns: map[string]string{
		"slug":       "slug",
		"first_name": "first_name",
		"last_name":  "last_name",
	},
}

// FieldValue implements query.Record
func (a Author) FieldValue(column string) (string, bool) {
	switch column {
	case "first_name":
		return a.FirstName, true
	case "last_name":
		return a.LastName, true
	case "middle_name":
		return utils.Deref(a.MiddleName), true
	case "full_name":
		return a.FullName, true
	case "slug":
		return a.Slug, true
	case "bio":
		return utils.Deref(a.Bio), true
	}
	return a.BaseField(column)
}
