package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"library-backend/internal/domains/genre/model"
	"library-backend/internal/infrastructure/database"
	"library-backend/internal/shared/query"
)

const genreColumns = `id, name, slug, description, created_at, updated_at`

type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new genre repository instance
func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

func scanGenre(row pgx.Row) (*model.Genre, error) {
	var g model.Genre
	err := row.Scan(&g.ID, &g.Name, &g.Slug, &g.Description, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &g, nil
}

// mapError dịch lỗi pgx sang domain error
func mapError(err error, op string) error {
	switch {
	case database.IsNoRows(err):
		return model.ErrGenreNotFound
	case database.IsUniqueViolation(err):
		return model.ErrGenreSlugExists.Wrap(err)
	default:
		return fmt.Errorf("genre %s: %w", op, err)
	}
}

func (r *postgresRepository) Create(ctx context.Context, g *model.Genre) (*model.Genre, error) {
	q := `
		INSERT INTO genres (name, slug, description)
		VALUES ($1, $2, $3)
		RETURNING ` + genreColumns

	created, err := scanGenre(r.pool.QueryRow(ctx, q, g.Name, g.Slug, g.Description))
	if err != nil {
		return nil, mapError(err, "create")
	}
	return created, nil
}

func (r *postgresRepository) FindByID(ctx context.Context, id int64) (*model.Genre, error) {
	q := `SELECT ` + genreColumns + ` FROM genres WHERE id = $1`

	g, err := scanGenre(r.pool.QueryRow(ctx, q, id))
	if err != nil {
		return nil, mapError(err, "find by id")
	}
	return g, nil
}

func (r *postgresRepository) FindBySlug(ctx context.Context, slug string) (*model.Genre, error) {
	q := `SELECT ` + genreColumns + ` FROM genres WHERE slug = $1`

	g, err := scanGenre(r.pool.QueryRow(ctx, q, slug))
	if err != nil {
		return nil, mapError(err, "find by slug")
	}
	return g, nil
}

func (r *postgresRepository) List(ctx context.Context, res *query.Resolved) ([]*model.Genre, int64, error) {
	countSQL, countArgs := res.CountSQL()
	var total int64
	if err := r.pool.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("genre count: %w", err)
	}

	selectSQL, args := res.SelectSQL()
	rows, err := r.pool.Query(ctx, selectSQL, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("genre list: %w", err)
	}
	defer rows.Close()

	genres := make([]*model.Genre, 0, res.Limit)
	for rows.Next() {
		g, err := scanGenre(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("genre scan: %w", err)
		}
		genres = append(genres, g)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("genre rows: %w", err)
	}

	return genres, total, nil
}

func (r *postgresRepository) Update(ctx context.Context, g *model.Genre) (*model.Genre, error) {
	q := `
		UPDATE genres
		SET name = $2, slug = $3, description = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + genreColumns

	updated, err := scanGenre(r.pool.QueryRow(ctx, q, g.ID, g.Name, g.Slug, g.Description))
	if err != nil {
		return nil, mapError(err, "update")
	}
	return updated, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM genres WHERE id = $1`, id)
	if err != nil {
		return mapError(err, "delete")
	}
	if tag.RowsAffected() == 0 {
		return model.ErrGenreNotFound
	}
	return nil
}
