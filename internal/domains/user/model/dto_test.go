package model

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoginRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     LoginRequest
		wantErr bool
	}{
		{"valid", LoginRequest{Email: "a@example.com", Password: "password1"}, false},
		{"unresolvable domain", LoginRequest{Email: "reader@library.test", Password: "password1"}, false},
		{"mixed case", LoginRequest{Email: "Alice@Example.com", Password: "password1"}, false},
		{"bad email", LoginRequest{Email: "not-an-email", Password: "password1"}, true},
		{"missing email", LoginRequest{Password: "password1"}, true},
		{"short password", LoginRequest{Email: "a@example.com", Password: "short"}, true},
		{"long password", LoginRequest{Email: "a@example.com", Password: strings.Repeat("x", 33)}, true},
		{"exactly 32", LoginRequest{Email: "a@example.com", Password: strings.Repeat("x", 32)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRegisterRequest_Validate(t *testing.T) {
	assert.NoError(t, RegisterRequest{Email: "reader@library.test", Password: "password1"}.Validate())
	assert.NoError(t, RegisterRequest{Email: "Reader@Library.Invalid", Password: "password1"}.Validate())
	assert.Error(t, RegisterRequest{Email: "reader@", Password: "password1"}.Validate())
	assert.Error(t, RegisterRequest{Email: "reader@library.test", Password: "short"}.Validate())
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "alice@example.com", NormalizeEmail("  Alice@Example.COM "))
}

func TestRole_IsValid(t *testing.T) {
	assert.True(t, RoleUser.IsValid())
	assert.True(t, RoleAdmin.IsValid())
	assert.False(t, Role("warehouse").IsValid())
}
