package model

import "library-backend/internal/shared/apperror"

// ============================================
// DOMAIN-SPECIFIC ERROR DEFINITIONS
// ============================================

// ErrGenreNotFound - Genre không tìm thấy
var ErrGenreNotFound = apperror.NotFound("GENRE_NOT_FOUND", "Genre not found")

// ErrGenreSlugExists - Slug đã tồn tại (unique constraint)
var ErrGenreSlugExists = apperror.Conflict("GENRE_SLUG_ALREADY_EXISTS", "Genre slug already exists")

// ErrInvalidGenreID - id không phải số nguyên dương
var ErrInvalidGenreID = apperror.BadRequest("INVALID_GENRE_ID", "Genre id must be a positive integer")

// ErrEmptyDerivedSlug - name không sinh ra được slug (vd: "!!!")
var ErrEmptyDerivedSlug = apperror.BadRequest("INVALID_GENRE_NAME", "Genre name must contain at least one letter or digit")
