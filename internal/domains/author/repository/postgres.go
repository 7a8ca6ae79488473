package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"library-backend/internal/domains/author/model"
	"library-backend/internal/infrastructure/database"
	"library-backend/internal/shared/query"
	pkgdb "library-backend/pkg/database"
)

const authorColumns = `id, first_name, last_name, middle_name, full_name, slug, bio, created_at, updated_at`

type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new author repository instance
func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

func scanAuthor(row pgx.Row) (*model.Author, error) {
	var a model.Author
	err := row.Scan(
		&a.ID, &a.FirstName, &a.LastName, &a.MiddleName,
		&a.FullName, &a.Slug, &a.Bio, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func mapError(err error, op string) error {
	if database.IsNoRows(err) {
		return model.ErrAuthorNotFound
	}
	return fmt.Errorf("author %s: %w", op, err)
}

func (r *postgresRepository) Create(ctx context.Context, a *model.Author) (*model.Author, error) {
	q := `
		INSERT INTO authors (first_name, last_name, middle_name, full_name, slug, bio)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + authorColumns

	created, err := scanAuthor(r.pool.QueryRow(ctx, q,
		a.FirstName, a.LastName, a.MiddleName, a.FullName, a.Slug, a.Bio,
	))
	if err != nil {
		return nil, mapError(err, "create")
	}
	return created, nil
}

func (r *postgresRepository) FindByID(ctx context.Context, id int64) (*model.Author, error) {
	a, err := scanAuthor(r.pool.QueryRow(ctx, `SELECT `+authorColumns+` FROM authors WHERE id = $1`, id))
	if err != nil {
		return nil, mapError(err, "find by id")
	}
	return a, nil
}

// FindBySlug: slug không unique, lấy bản ghi cũ nhất
func (r *postgresRepository) FindBySlug(ctx context.Context, slug string) (*model.Author, error) {
	q := `SELECT ` + authorColumns + ` FROM authors WHERE slug = $1 ORDER BY id ASC LIMIT 1`

	a, err := scanAuthor(r.pool.QueryRow(ctx, q, slug))
	if err != nil {
		return nil, mapError(err, "find by slug")
	}
	return a, nil
}

func (r *postgresRepository) List(ctx context.Context, res *query.Resolved) ([]*model.Author, int64, error) {
	countSQL, countArgs := res.CountSQL()
	var total int64
	if err := r.pool.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("author count: %w", err)
	}

	selectSQL, args := res.SelectSQL()
	rows, err := r.pool.Query(ctx, selectSQL, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("author list: %w", err)
	}
	defer rows.Close()

	authors := make([]*model.Author, 0, res.Limit)
	for rows.Next() {
		a, err := scanAuthor(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("author scan: %w", err)
		}
		authors = append(authors, a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("author rows: %w", err)
	}

	return authors, total, nil
}

func (r *postgresRepository) Update(ctx context.Context, id int64, fn MutateFunc) (*model.Author, error) {
	return pkgdb.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (*model.Author, error) {
		// Lock row để hai PATCH đồng thời không ghi đè derived fields của nhau
		current, err := scanAuthor(tx.QueryRow(ctx,
			`SELECT `+authorColumns+` FROM authors WHERE id = $1 FOR UPDATE`, id))
		if err != nil {
			return nil, mapError(err, "lock")
		}

		if err := fn(current); err != nil {
			return nil, err
		}

		q := `
			UPDATE authors
			SET first_name = $2, last_name = $3, middle_name = $4,
			    full_name = $5, slug = $6, bio = $7, updated_at = NOW()
			WHERE id = $1
			RETURNING ` + authorColumns

		updated, err := scanAuthor(tx.QueryRow(ctx, q,
			id, current.FirstName, current.LastName, current.MiddleName,
			current.FullName, current.Slug, current.Bio,
		))
		if err != nil {
			return nil, mapError(err, "update")
		}
		return updated, nil
	})
}

func (r *postgresRepository) Delete(ctx context.Context, id int64) (*model.Author, error) {
	a, err := scanAuthor(r.pool.QueryRow(ctx, `DELETE FROM authors WHERE id = $1 RETURNING `+authorColumns, id))
	if err != nil {
		return nil, mapError(err, "delete")
	}
	return a, nil
}
