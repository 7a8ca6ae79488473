package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind groups errors by how the transport layer should answer them
type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindBadRequest
	KindUnauthorized
	KindForbidden
	KindConflict
	KindTooManyRequests
)

// AppError là error chung cho mọi domain (code + message + underlying error)
type AppError struct {
	Kind    Kind   // Nhóm lỗi, quyết định HTTP status
	Code    string // Error code duy nhất (VD: "GENRE_NOT_FOUND")
	Message string // Human-readable message
	Err     error  // Underlying error
}

// Error implements error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap allows error wrapping compatibility
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches two AppErrors by code, so wrapped copies of a sentinel still
// satisfy errors.Is(err, ErrXxx).
func (e *AppError) Is(target error) bool {
	var t *AppError
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// Wrap returns a copy of e carrying err as the underlying cause
func (e *AppError) Wrap(err error) *AppError {
	return &AppError{Kind: e.Kind, Code: e.Code, Message: e.Message, Err: err}
}

// WithMessage returns a copy of e with a more specific message
func (e *AppError) WithMessage(format string, args ...any) *AppError {
	return &AppError{Kind: e.Kind, Code: e.Code, Message: fmt.Sprintf(format, args...), Err: e.Err}
}

// ============================================
// ERROR FACTORY FUNCTIONS
// ============================================

func NotFound(code, message string) *AppError {
	return &AppError{Kind: KindNotFound, Code: code, Message: message}
}

func BadRequest(code, message string) *AppError {
	return &AppError{Kind: KindBadRequest, Code: code, Message: message}
}

func Unauthorized(code, message string) *AppError {
	return &AppError{Kind: KindUnauthorized, Code: code, Message: message}
}

func Forbidden(code, message string) *AppError {
	return &AppError{Kind: KindForbidden, Code: code, Message: message}
}

func Conflict(code, message string) *AppError {
	return &AppError{Kind: KindConflict, Code: code, Message: message}
}

func TooManyRequests(code, message string) *AppError {
	return &AppError{Kind: KindTooManyRequests, Code: code, Message: message}
}

// Validation wraps an ozzo-validation error (or any input error) as BadRequest
func Validation(err error) *AppError {
	return &AppError{Kind: KindBadRequest, Code: "VALIDATION_ERROR", Message: err.Error(), Err: err}
}

// ============================================
// ERROR CHECKING FUNCTIONS
// ============================================

// KindOf trả về Kind của error, KindInternal nếu không phải AppError
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

func IsNotFound(err error) bool     { return KindOf(err) == KindNotFound }
func IsBadRequest(err error) bool   { return KindOf(err) == KindBadRequest }
func IsUnauthorized(err error) bool { return KindOf(err) == KindUnauthorized }
func IsForbidden(err error) bool    { return KindOf(err) == KindForbidden }
func IsConflict(err error) bool     { return KindOf(err) == KindConflict }

// HTTPStatus map error tới HTTP status code
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindNotFound:
		return http.StatusNotFound
	case KindBadRequest:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindConflict:
		return http.StatusConflict
	case KindTooManyRequests:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// Code lấy error code từ error
func Code(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return "INTERNAL_ERROR"
}

// PublicMessage trả về message an toàn để trả cho client.
// Internal errors không leak chi tiết.
func PublicMessage(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Kind != KindInternal {
		return appErr.Message
	}
	return "Internal server error"
}
