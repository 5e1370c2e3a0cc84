package container

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"library-catalog/internal/config"
	authorHandler "library-catalog/internal/domains/author/handler"
	authorRepo "library-catalog/internal/domains/author/repository"
	authorService "library-catalog/internal/domains/author/service"
	bookHandler "library-catalog/internal/domains/book/handler"
	bookRepo "library-catalog/internal/domains/book/repository"
	bookService "library-catalog/internal/domains/book/service"
	infraCache "library-catalog/internal/infrastructure/cache"
	"library-catalog/internal/infrastructure/database"
	"library-catalog/internal/infrastructure/imagegen"
	"library-catalog/pkg/cache"
	"library-catalog/pkg/jwt"
)

// Container holds the application's dependency graph.
// Build order: config, infrastructure, repositories, services, handlers.
type Container struct {
	// Infrastructure
	Config     *config.Config
	DB         *database.PostgresDB
	Redis      *infraCache.RedisClient
	Cache      cache.Cache // nil when Redis is unreachable
	JWTManager *jwt.Manager
	ImageGen   *imagegen.Client

	// Repositories
	AuthorRepo authorRepo.RepositoryInterface
	BookRepo   bookRepo.RepositoryInterface

	// Services
	AuthorService authorService.ServiceInterface
	BookService   bookService.ServiceInterface

	// Handlers
	AuthorHandler *authorHandler.AuthorHandler
	BookHandler   *bookHandler.BookHandler
}

func NewContainer(ctx context.Context) (*Container, error) {
	log.Info().Msg("Initializing container")

	c := &Container{}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg

	if err := c.initInfrastructure(ctx); err != nil {
		c.Cleanup()
		return nil, err
	}

	c.initRepositories()
	c.initServices()
	c.initHandlers()

	log.Info().Str("env", cfg.App.Environment).Msg("Container initialized")
	return c, nil
}

func (c *Container) initInfrastructure(ctx context.Context) error {
	cfg := c.Config

	connectCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	db := database.NewPostgresDB(cfg.Database)
	if err := db.Connect(connectCtx); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	c.DB = db

	if err := database.EnsureSchema(connectCtx, db.Pool); err != nil {
		return err
	}

	// Redis only backs the detail cache, so the API runs without it.
	c.Redis = infraCache.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err := c.Redis.Connect(connectCtx); err != nil {
		log.Warn().Err(err).Msg("Redis unavailable, detail cache disabled")
	} else {
		c.Cache = infraCache.NewRedisCache(c.Redis)
	}

	c.JWTManager = jwt.NewManager(cfg.JWT.Secret, cfg.JWT.AccessTTL)
	c.ImageGen = imagegen.NewClient(cfg.ImageGen, nil)
	if !c.ImageGen.Enabled() {
		log.Warn().Msg("IMAGEGEN_BASE_URL is empty, covers will use the fallback")
	}
	return nil
}

func (c *Container) initRepositories() {
	c.AuthorRepo = authorRepo.NewPostgresRepository(c.DB.Pool)
	c.BookRepo = bookRepo.NewPostgresRepository(c.DB.Pool)
}

func (c *Container) initServices() {
	catalog := c.Config.Catalog

	books := bookService.NewBookService(c.BookRepo, c.ImageGen, c.Cache, bookService.Config{
		DetailTTL:   c.Config.Redis.DetailTTL,
		PageSize:    catalog.DefaultPageSize,
		MaxPageSize: catalog.MaxPageSize,
	})
	c.BookService = books

	// Author writes change names embedded in cached book details.
	c.AuthorService = authorService.NewAuthorService(c.AuthorRepo, books,
		catalog.DefaultPageSize, catalog.MaxPageSize)
}

func (c *Container) initHandlers() {
	c.AuthorHandler = authorHandler.NewAuthorHandler(c.AuthorService)
	c.BookHandler = bookHandler.NewBookHandler(c.BookService)
}

// Cleanup releases connections. Safe on a partially built container.
func (c *Container) Cleanup() {
	if c.DB != nil {
		c.DB.Close()
	}
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close Redis")
		}
	}
	log.Info().Msg("Container cleanup completed")
}
