package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"library-backend/internal/domains/user/model"
	"library-backend/internal/infrastructure/database"
)

const userColumns = `id, email, password_hash, role, created_at, updated_at`

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

func scanUser(row pgx.Row) (*model.User, error) {
	var u model.User
	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}

func mapError(err error, op string) error {
	switch {
	case database.IsNoRows(err):
		return model.ErrUserNotFound
	case database.IsUniqueViolation(err):
		return model.ErrEmailAlreadyExists.Wrap(err)
	default:
		return fmt.Errorf("user %s: %w", op, err)
	}
}

func (r *postgresRepository) Create(ctx context.Context, u *model.User) (*model.User, error) {
	q := `
		INSERT INTO users (email, password_hash, role)
		VALUES ($1, $2, $3)
		RETURNING ` + userColumns

	created, err := scanUser(r.pool.QueryRow(ctx, q, u.Email, u.PasswordHash, u.Role))
	if err != nil {
		return nil, mapError(err, "create")
	}
	return created, nil
}

func (r *postgresRepository) FindByID(ctx context.Context, id int64) (*model.User, error) {
	u, err := scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		return nil, mapError(err, "find by id")
	}
	return u, nil
}

func (r *postgresRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	u, err := scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email))
	if err != nil {
		return nil, mapError(err, "find by email")
	}
	return u, nil
}
