package model

import (
	"library-backend/internal/shared/entity"
	"library-backend/internal/shared/query"
	"library-backend/internal/shared/utils"
)

// Genre là một thể loại sách. Slug được derive từ name nếu caller không truyền.
type Genre struct {
	entity.Base
	Name        string  `json:"name"`
	Slug        string  `json:"slug"`
	Description *string `json:"description"`
}

// Schema mô tả bảng genres cho list/search/sort
var Schema = &query.Schema{
	Table:   "genres",
	Columns: []string{"id", "name", "slug", "description", "created_at", "updated_at"},
	Sortable: map[string]string{
		"id":         "id",
		"name":       "name",
		"slug":       "slug",
		"created_at": "created_at",
		"createdAt":  "created_at",
		"updated_at": "updated_at",
		"updatedAt":  "updated_at",
	},
	DefaultSort:   "created_at",
	SearchColumns: []string{"name", "description"},
	ExactColumns:  map[string]string{"slug": "slug"},
}

// FieldValue implements query.Record
func (g Genre) FieldValue(column string) (string, bool) {
	switch column {
	case "name":
		return g.Name, true
	case "slug":
		return g.Slug, true
	case "description":
		return utils.Deref(g.Description), true
	}
	return g.BaseField(column)
}
