package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"library-backend/internal/domains/user/model"
	"library-backend/internal/shared/middleware"
	"library-backend/pkg/container"
)

var (
	anyUser   = []string{model.RoleUser.String(), model.RoleAdmin.String()}
	adminOnly = []string{model.RoleAdmin.String()}
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.ClientIPMiddleware(),
		middleware.Logger("/api/v1/health"),
		middleware.CORS(c.Config.App.AllowedOrigins),
	)

	requireAuth := middleware.AuthMiddleware(c.JWTManager, c.UserService)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		setupAuthRoutes(v1, c, requireAuth)
		setupGenreRoutes(v1, c, requireAuth)
		setupAuthorRoutes(v1, c, requireAuth)
	}

	return router
}

// ========================================
// AUTH ROUTES
// ========================================
func setupAuthRoutes(v1 *gin.RouterGroup, c *container.Container, requireAuth gin.HandlerFunc) {
	auth := v1.Group("/auth")
	{
		auth.POST("/register", c.AuthHandler.Register)
		auth.POST("/login", c.AuthHandler.Login)
		auth.POST("/logout", requireAuth, c.AuthHandler.Logout)
		auth.GET("/me", requireAuth, c.AuthHandler.Me)
	}
}

// ========================================
// GENRE ROUTES
// ========================================
func setupGenreRoutes(v1 *gin.RouterGroup, c *container.Container, requireAuth gin.HandlerFunc) {
	h := c.GenreHandler
	genres := v1.Group("/genres")
	{
		// Public
		genres.GET("", h.List)
		genres.GET("/slug/:slug", h.GetBySlug)
		genres.GET("/:id", h.GetByID)

		genres.POST("", requireAuth, middleware.RequireRoles(anyUser...), h.Create)

		// Admin only
		admin := genres.Group("", requireAuth, middleware.RequireRoles(adminOnly...))
		admin.GET("/export", h.Export)
		admin.PUT("/:id", h.Update)
		admin.DELETE("/:id", h.Delete)
	}
}

// ========================================
// AUTHOR ROUTES
// ========================================
func setupAuthorRoutes(v1 *gin.RouterGroup, c *container.Container, requireAuth gin.HandlerFunc) {
	h := c.AuthorHandler
	authors := v1.Group("/authors")
	{
		authors.GET("", h.List)
		authors.GET("/slug/:slug", h.GetBySlug)
		authors.GET("/:id", h.GetByID)

		authors.GET("/export", requireAuth, middleware.RequireRoles(adminOnly...), h.Export)

		protected := authors.Group("", requireAuth)
		protected.POST("", h.Create)
		protected.PATCH("/:id", h.Update)
		protected.DELETE("/:id", h.Delete)
	}
}

// ========================================
// HEALTH CHECK HANDLER
// ========================================
func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		health := gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   appCtx.Config.App.Version,
		}

		// Check database
		dbStatus := "ok"
		var pool gin.H
		if appCtx.DB == nil || appCtx.DB.Pool == nil {
			dbStatus = "disconnected"
		} else {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := appCtx.DB.HealthCheck(ctx); err != nil {
				log.Error().Err(err).Msg("health: database check failed")
				dbStatus = "error"
			}
			stats := appCtx.DB.Stats()
			pool = gin.H{
				"total_connections":    stats.TotalConns,
				"idle_connections":     stats.IdleConns,
				"acquired_connections": stats.AcquiredConns,
				"max_connections":      stats.MaxConns,
			}
		}

		// Check cache (không critical: auth degrade open)
		cacheStatus := "ok"
		if appCtx.Cache == nil {
			cacheStatus = "disconnected"
		} else {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := appCtx.Cache.Ping(ctx); err != nil {
				log.Warn().Err(err).Msg("health: cache ping failed")
				cacheStatus = "error"
			}
		}

		health["services"] = gin.H{
			"database": dbStatus,
			"cache":    cacheStatus,
			"pool":     pool,
		}

		statusCode := http.StatusOK
		if dbStatus != "ok" {
			statusCode = http.StatusServiceUnavailable
			health["status"] = "degraded"
		} else if cacheStatus != "ok" {
			health["status"] = "degraded"
		}

		c.JSON(statusCode, health)
	}
}
