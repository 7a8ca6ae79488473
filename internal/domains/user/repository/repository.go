package repository

import (
	"context"

	"library-backend/internal/domains/user/model"
)

// Repository định nghĩa data access cho users
type Repository interface {
	Create(ctx context.Context, u *model.User) (*model.User, error)
	FindByID(ctx context.Context, id int64) (*model.User, error)
	// FindByEmail expects an already normalized email
	FindByEmail(ctx context.Context, email string) (*model.User, error)
}
