package model

import "library-backend/internal/shared/apperror"

var (
	ErrAuthorNotFound   = apperror.NotFound("AUTHOR_NOT_FOUND", "Author not found")
	ErrInvalidAuthorID  = apperror.BadRequest("INVALID_AUTHOR_ID", "Author id must be a positive integer")
	ErrEmptyDerivedSlug = apperror.BadRequest("INVALID_AUTHOR_NAME", "Author name must contain at least one letter or digit")
)
