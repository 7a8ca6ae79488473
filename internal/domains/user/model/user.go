package model

import (
	"time"

	"library-backend/internal/shared/entity"
)

// User là identity record dùng cho login
type User struct {
	entity.Base
	Email        string `json:"email"`
	PasswordHash string `json:"-"` // Never expose in JSON
	Role         Role   `json:"role"`
}

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// IsValid kiểm tra role hợp lệ
func (r Role) IsValid() bool {
	switch r {
	case RoleUser, RoleAdmin:
		return true
	}
	return false
}

func (r Role) String() string {
	return string(r)
}

// LoginResponse trả về access token và thông tin user
type LoginResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
	User        *User     `json:"user"`
}
