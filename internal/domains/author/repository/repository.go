package repository

import (
	"context"

	"library-backend/internal/domains/author/model"
	"library-backend/internal/shared/query"
)

// MutateFunc nhận bản ghi hiện tại (đã lock) và sửa trực tiếp trên nó
type MutateFunc func(a *model.Author) error

// Repository định nghĩa data access cho authors
type Repository interface {
	Create(ctx context.Context, a *model.Author) (*model.Author, error)
	FindByID(ctx context.Context, id int64) (*model.Author, error)
	FindBySlug(ctx context.Context, slug string) (*model.Author, error)
	List(ctx context.Context, r *query.Resolved) ([]*model.Author, int64, error)
	// Update đọc row, gọi fn rồi ghi lại trong cùng một transaction
	Update(ctx context.Context, id int64, fn MutateFunc) (*model.Author, error)
	// Delete trả về bản ghi vừa bị xoá
	Delete(ctx context.Context, id int64) (*model.Author, error)
}
