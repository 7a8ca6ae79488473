package container

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"library-backend/internal/config"
	infraCache "library-backend/internal/infrastructure/cache"
	"library-backend/internal/infrastructure/database"
	"library-backend/pkg/cache"
	"library-backend/pkg/jwt"

	authorHandler "library-backend/internal/domains/author/handler"
	authorRepo "library-backend/internal/domains/author/repository"
	authorService "library-backend/internal/domains/author/service"
	genreHandler "library-backend/internal/domains/genre/handler"
	genreRepo "library-backend/internal/domains/genre/repository"
	genreService "library-backend/internal/domains/genre/service"
	userHandler "library-backend/internal/domains/user/handler"
	userRepo "library-backend/internal/domains/user/repository"
	userService "library-backend/internal/domains/user/service"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container chứa toàn bộ dependencies của application.
// Mọi thành phần là singleton trong suốt vòng đời process.
type Container struct {
	// Infrastructure
	Config     *config.Config
	DB         *database.PostgresDB
	Cache      cache.Cache
	JWTManager *jwt.Manager

	// Repositories
	AuthorRepo authorRepo.Repository
	GenreRepo  genreRepo.Repository
	UserRepo   userRepo.Repository

	// Services
	AuthorService authorService.Service
	GenreService  genreService.Service
	UserService   userService.Service

	// Handlers
	AuthorHandler *authorHandler.AuthorHandler
	GenreHandler  *genreHandler.GenreHandler
	AuthHandler   *userHandler.AuthHandler
}

// ========================================
// CONSTRUCTOR: BUILD CONTAINER
// ========================================

// NewContainer tạo dependency graph theo thứ tự:
// Config → Infrastructure (DB, Cache, JWT) → Repositories → Services → Handlers
func NewContainer(cfg *config.Config) (*Container, error) {
	log.Info().Msg("🔧 Initializing DI Container...")

	c := &Container{Config: cfg}

	// ========================================
	// STEP 1: DATABASE
	// ========================================
	dbConfig, err := config.LoadDatabaseConfig(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := openDB(ctx, db); err != nil {
		return nil, err
	}
	c.DB = db

	// ========================================
	// STEP 2: CACHE
	// ========================================
	c.Cache = newCache(ctx, cfg.Redis)

	// ========================================
	// STEP 3: JWT
	// ========================================
	c.JWTManager = jwt.NewManager(cfg.JWT.Secret, cfg.JWT.AccessTTL)

	// ========================================
	// STEP 4-6: REPOSITORIES → SERVICES → HANDLERS
	// ========================================
	c.initRepositories()

	if err := c.initServices(); err != nil {
		c.Cleanup()
		return nil, fmt.Errorf("failed to init services: %w", err)
	}

	c.initHandlers()

	log.Info().Msg("🎉 DI Container initialized successfully")
	return c, nil
}

// dbLifecycle là phần của *database.PostgresDB mà openDB cần
type dbLifecycle interface {
	Connect(ctx context.Context) error
	HealthCheck(ctx context.Context) error
	Close() error
}

// openDB connect + health check; pool đã mở sẽ được đóng nếu health check fail
func openDB(ctx context.Context, db dbLifecycle) error {
	if err := db.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.HealthCheck(ctx); err != nil {
		if cerr := db.Close(); cerr != nil {
			log.Warn().Err(cerr).Msg("failed to close database after health check")
		}
		return fmt.Errorf("database health check failed: %w", err)
	}
	return nil
}

// newCache chọn backend theo CACHE_DRIVER. Redis lỗi lúc start không chặn
// app: throttling/revocation sẽ degrade open cho tới khi Redis sống lại.
func newCache(ctx context.Context, cfg config.RedisConfig) cache.Cache {
	if cfg.Driver == "memory" {
		log.Info().Msg("Using in-memory cache")
		return cache.NewMemoryCache()
	}

	rc := infraCache.NewRedisCache(cfg.Host, cfg.Password, cfg.DB, cfg.KeyPrefix)
	if err := rc.Connect(ctx); err != nil {
		log.Warn().Err(err).Msg("⚠️  Redis connection failed (non-critical)")
	}
	return rc
}

func (c *Container) initRepositories() {
	pool := c.DB.Pool

	c.AuthorRepo = authorRepo.NewPostgresRepository(pool)
	c.GenreRepo = genreRepo.NewPostgresRepository(pool)
	c.UserRepo = userRepo.NewPostgresRepository(pool)
}

func (c *Container) initServices() error {
	c.AuthorService = authorService.NewService(c.AuthorRepo)
	c.GenreService = genreService.NewService(c.GenreRepo)

	svc, err := userService.NewService(c.UserRepo, c.JWTManager, c.Cache, userService.Config{
		MaxFailedLogins: c.Config.Auth.MaxFailedLogins,
		LockoutWindow:   c.Config.Auth.LockoutWindow,
		BcryptCost:      c.Config.Auth.BcryptCost,
	})
	if err != nil {
		return err
	}
	c.UserService = svc
	return nil
}

func (c *Container) initHandlers() {
	c.AuthorHandler = authorHandler.NewAuthorHandler(c.AuthorService)
	c.GenreHandler = genreHandler.NewGenreHandler(c.GenreService)
	c.AuthHandler = userHandler.NewAuthHandler(c.UserService)
}

// Cleanup dọn dẹp resources khi shutdown
func (c *Container) Cleanup() {
	log.Info().Msg("🧹 Cleaning up container resources...")

	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close database")
		}
	}

	if rc, ok := c.Cache.(*infraCache.RedisCache); ok {
		if err := rc.Close(); err != nil {
			log.Warn().Err(err).Msg("⚠️  Failed to close Redis")
		}
	}

	log.Info().Msg("✅ Container cleanup completed")
}
