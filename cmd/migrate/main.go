package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq" // PostgreSQL driver cho database/sql
	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog/log"

	"library-backend/internal/config"
	"library-backend/internal/infrastructure/database/migrations"
	"library-backend/pkg/logger"
)

func main() {
	var (
		command  = flag.String("command", "up", "Migration command: up, down, status, version, reset, create-admin")
		email    = flag.String("email", "", "Admin email for 'create-admin'")
		password = flag.String("password", "", "Admin password for 'create-admin'")
	)
	flag.Parse()

	// Không override env do runtime cung cấp (Docker, CI)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	logger.Init(cfg.App.Environment, cfg.App.LogLevel, "library-migrate")

	if err := run(*command, cfg, *email, *password); err != nil {
		log.Fatal().Err(err).Str("command", *command).Msg("migrate failed")
	}
}

func run(command string, cfg *config.Config, email, password string) error {
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}

	switch command {
	case "up":
		err = goose.UpContext(ctx, db, ".")
	case "down":
		err = goose.DownContext(ctx, db, ".")
	case "status":
		err = goose.StatusContext(ctx, db, ".")
	case "version":
		err = goose.VersionContext(ctx, db, ".")
	case "reset":
		err = goose.ResetContext(ctx, db, ".")
	case "create-admin":
		err = createAdmin(ctx, db, email, password, cfg.Auth.BcryptCost)
	default:
		return fmt.Errorf("unknown command %q", command)
	}
	if err != nil {
		return err
	}

	log.Info().Str("command", command).Msg("migrate completed")
	return nil
}
