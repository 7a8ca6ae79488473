package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

var errSampleNotFound = NotFound("SAMPLE_NOT_FOUND", "Sample not found")

func TestAppError_IsMatchesWrappedCopies(t *testing.T) {
	wrapped := fmt.Errorf("service: %w", errSampleNotFound.Wrap(errors.New("no rows")))

	assert.True(t, errors.Is(wrapped, errSampleNotFound))
	assert.True(t, IsNotFound(wrapped))
	assert.False(t, IsConflict(wrapped))
	assert.True(t, IsForbidden(fmt.Errorf("guard: %w", Forbidden("ROLE", "nope"))))
}

func TestAppError_UnwrapKeepsCause(t *testing.T) {
	cause := errors.New("boom")
	err := Conflict("DUP", "duplicate").Wrap(cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "boom")
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", errSampleNotFound, http.StatusNotFound},
		{"bad request", BadRequest("X", "x"), http.StatusBadRequest},
		{"unauthorized", Unauthorized("X", "x"), http.StatusUnauthorized},
		{"forbidden", Forbidden("X", "x"), http.StatusForbidden},
		{"conflict", Conflict("X", "x"), http.StatusConflict},
		{"too many", TooManyRequests("X", "x"), http.StatusTooManyRequests},
		{"plain error", errors.New("db down"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}

func TestPublicMessage_HidesInternalErrors(t *testing.T) {
	assert.Equal(t, "Internal server error", PublicMessage(errors.New("pq: connection refused")))
	assert.Equal(t, "Sample not found", PublicMessage(errSampleNotFound))
	assert.Equal(t, "INTERNAL_ERROR", Code(errors.New("x")))
	assert.Equal(t, "SAMPLE_NOT_FOUND", Code(errSampleNotFound))
}

func TestWithMessage_KeepsIdentity(t *testing.T) {
	err := errSampleNotFound.WithMessage("Sample with ID %d not found", 7)

	assert.Equal(t, "Sample with ID 7 not found", err.Message)
	assert.True(t, errors.Is(err, errSampleNotFound))
}
