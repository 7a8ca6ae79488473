package model

import (
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// notBlank: ít nhất một ký tự không phải whitespace
var notBlank = regexp.MustCompile(`\S`)

// ========================================
// REQUEST DTOs
// ========================================

type CreateAuthorRequest struct {
	FirstName  string  `json:"first_name"`
	LastName   string  `json:"last_name"`
	MiddleName *string `json:"middle_name,omitempty"`
	Bio        *string `json:"bio,omitempty"`
}

func (r CreateAuthorRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.FirstName,
			validation.Required.Error("first name is required"),
			validation.Match(notBlank).Error("first name must not be blank"),
			validation.Length(1, 100),
		),
		validation.Field(&r.LastName,
			validation.Required.Error("last name is required"),
			validation.Match(notBlank).Error("last name must not be blank"),
			validation.Length(1, 100),
		),
		validation.Field(&r.MiddleName, validation.Length(0, 100)),
		validation.Field(&r.Bio, validation.Length(0, 5000)),
	)
}

// UpdateAuthorRequest: PATCH semantics. MiddleName = "" xoá middle name.
type UpdateAuthorRequest struct {
	FirstName  *string `json:"first_name,omitempty"`
	LastName   *string `json:"last_name,omitempty"`
	MiddleName *string `json:"middle_name,omitempty"`
	Bio        *string `json:"bio,omitempty"`
}

func (r UpdateAuthorRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.FirstName,
			validation.NilOrNotEmpty.Error("first name must not be empty"),
			validation.Match(notBlank).Error("first name must not be blank"),
			validation.Length(1, 100),
		),
		validation.Field(&r.LastName,
			validation.NilOrNotEmpty.Error("last name must not be empty"),
			validation.Match(notBlank).Error("last name must not be blank"),
			validation.Length(1, 100),
		),
		validation.Field(&r.MiddleName, validation.Length(0, 100)),
		validation.Field(&r.Bio, validation.Length(0, 5000)),
	)
}

// TouchesName reports whether the patch contains any name field
func (r UpdateAuthorRequest) TouchesName() bool {
	return r.FirstName != nil || r.LastName != nil || r.MiddleName != nil
}

func (r UpdateAuthorRequest) IsEmpty() bool {
	return !r.TouchesName() && r.Bio == nil
}
