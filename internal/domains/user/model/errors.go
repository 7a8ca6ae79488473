package model

import "library-backend/internal/shared/apperror"

var (
	ErrUserNotFound = apperror.NotFound("USER_NOT_FOUND", "User not found")

	// Cùng một message cho email sai và password sai
	ErrInvalidCredentials = apperror.Unauthorized("AUTH_INVALID_CREDENTIALS", "Invalid email or password")
	ErrEmailAlreadyExists = apperror.Conflict("EMAIL_ALREADY_EXISTS", "Email already exists")
	ErrTooManyAttempts    = apperror.TooManyRequests("AUTH_TOO_MANY_ATTEMPTS", "Too many login attempts, please try again later")
)
