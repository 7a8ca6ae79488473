package main

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"library-backend/internal/domains/user/model"
)

// createAdmin tạo (hoặc nâng quyền) tài khoản admin; /auth/register chỉ tạo role user
func createAdmin(ctx context.Context, db *sql.DB, email, password string, cost int) error {
	req := model.RegisterRequest{Email: email, Password: password}
	if err := req.Validate(); err != nil {
		return fmt.Errorf("invalid admin credentials: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	var id int64
	err = db.QueryRowContext(ctx, `
		INSERT INTO users (email, password_hash, role)
		VALUES ($1, $2, $3)
		ON CONFLICT (email) DO UPDATE
		SET password_hash = EXCLUDED.password_hash, role = EXCLUDED.role, updated_at = NOW()
		RETURNING id`,
		model.NormalizeEmail(email), string(hash), model.RoleAdmin.String(),
	).Scan(&id)
	if err != nil {
		return fmt.Errorf("upsert admin: %w", err)
	}

	log.Info().Int64("user_id", id).Msg("admin account ready")
	return nil
}
