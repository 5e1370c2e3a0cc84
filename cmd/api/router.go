package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"library-catalog/internal/shared/middleware"
	"library-catalog/pkg/container"
	"library-catalog/pkg/jwt"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
		middleware.Metrics(),
	)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		admin := []gin.HandlerFunc{
			middleware.AuthMiddleware(c.JWTManager),
			middleware.RequireRole(jwt.RoleAdmin),
		}

		setupAuthorRoutes(v1, c, admin)
		setupBookRoutes(v1, c, admin)
	}

	return router
}

// Reads are anonymous; every write needs an Admin token.
func setupAuthorRoutes(v1 *gin.RouterGroup, c *container.Container, admin []gin.HandlerFunc) {
	authors := v1.Group("/authors")
	{
		authors.GET("", c.AuthorHandler.List)
		authors.GET("/options", c.AuthorHandler.Options)
		authors.GET("/:id", c.AuthorHandler.GetByID)
	}

	adminAuthors := v1.Group("/authors", admin...)
	{
		adminAuthors.POST("", c.AuthorHandler.Create)
		adminAuthors.PUT("/:id", c.AuthorHandler.Update)
		adminAuthors.DELETE("/:id", c.AuthorHandler.Delete)
	}
}

func setupBookRoutes(v1 *gin.RouterGroup, c *container.Container, admin []gin.HandlerFunc) {
	books := v1.Group("/books")
	{
		books.GET("", c.BookHandler.List)
		books.GET("/:id", c.BookHandler.GetDetail)
	}

	adminBooks := v1.Group("/books", admin...)
	{
		adminBooks.POST("", c.BookHandler.Create)
		adminBooks.PUT("/:id", c.BookHandler.Update)
		adminBooks.POST("/:id/regenerate-cover", c.BookHandler.RegenerateCover)
		adminBooks.DELETE("/:id", c.BookHandler.Delete)
	}
}

func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		health := gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
		}
		if appCtx.Config != nil {
			health["version"] = appCtx.Config.App.Version
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		dbStatus := gin.H{"status": "ok"}
		if appCtx.DB == nil {
			dbStatus["status"] = "disconnected"
		} else if stats, err := appCtx.DB.HealthCheck(ctx); err != nil {
			dbStatus["status"] = "error: " + err.Error()
		} else {
			dbStatus["pool"] = stats
		}

		// Redis is optional: a failure degrades caching, not the API.
		redisStatus := "ok"
		if appCtx.Redis == nil {
			redisStatus = "disconnected"
		} else if err := appCtx.Redis.HealthCheck(ctx); err != nil {
			redisStatus = "error: " + err.Error()
		}

		coverStatus := "disabled"
		if appCtx.ImageGen != nil && appCtx.ImageGen.Enabled() {
			coverStatus = "enabled"
		}

		health["services"] = gin.H{
			"database":         dbStatus,
			"redis":            redisStatus,
			"cover_generation": coverStatus,
		}

		statusCode := http.StatusOK
		if dbStatus["status"] != "ok" {
			health["status"] = "degraded"
			statusCode = http.StatusServiceUnavailable
		}
		c.JSON(statusCode, health)
	}
}
