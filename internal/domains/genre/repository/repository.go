package repository

import (
	"context"

	"library-backend/internal/domains/genre/model"
	"library-backend/internal/shared/query"
)

// Repository định nghĩa data access cho genres
type Repository interface {
	Create(ctx context.Context, g *model.Genre) (*model.Genre, error)
	FindByID(ctx context.Context, id int64) (*model.Genre, error)
	FindBySlug(ctx context.Context, slug string) (*model.Genre, error)
	// List trả về một page đã được sort và total của toàn bộ filtered set
	List(ctx context.Context, r *query.Resolved) ([]*model.Genre, int64, error)
	Update(ctx context.Context, g *model.Genre) (*model.Genre, error)
	Delete(ctx context.Context, id int64) error
}
