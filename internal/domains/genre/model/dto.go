package model

import (
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// SlugPattern là shape của mọi slug: lowercase, digits, single dashes
var SlugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

var notBlank = regexp.MustCompile(`\S`)

// ========================================
// REQUEST DTOs
// ========================================

type CreateGenreRequest struct {
	Name        string  `json:"name"`
	Slug        *string `json:"slug,omitempty"`
	Description *string `json:"description,omitempty"`
}

func (r CreateGenreRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("name is required"),
			validation.Match(notBlank).Error("name must not be blank"),
			validation.Length(1, 100),
		),
		validation.Field(&r.Slug,
			validation.NilOrNotEmpty.Error("slug must not be empty"),
			validation.Length(1, 120),
			validation.Match(SlugPattern).Error("slug must contain only lowercase letters, digits and single dashes"),
		),
		validation.Field(&r.Description, validation.Length(0, 2000)),
	)
}

// UpdateGenreRequest: partial patch, nil = giữ nguyên giá trị cũ
type UpdateGenreRequest struct {
	Name        *string `json:"name,omitempty"`
	Slug        *string `json:"slug,omitempty"`
	Description *string `json:"description,omitempty"`
}

func (r UpdateGenreRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.NilOrNotEmpty.Error("name must not be empty"),
			validation.Match(notBlank).Error("name must not be blank"),
			validation.Length(1, 100),
		),
		validation.Field(&r.Slug,
			validation.NilOrNotEmpty.Error("slug must not be empty"),
			validation.Length(1, 120),
			validation.Match(SlugPattern).Error("slug must contain only lowercase letters, digits and single dashes"),
		),
		validation.Field(&r.Description, validation.Length(0, 2000)),
	)
}

// IsEmpty reports a patch with no fields set
func (r UpdateGenreRequest) IsEmpty() bool {
	return r.Name == nil && r.Slug == nil && r.Description == nil
}
