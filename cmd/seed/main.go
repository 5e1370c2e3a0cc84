// Command seed creates the catalog schema, loads sample authors and books
// and prints an Admin token for local testing.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"

	"library-catalog/internal/config"
	authorRepo "library-catalog/internal/domains/author/repository"
	bookRepo "library-catalog/internal/domains/book/repository"
	"library-catalog/internal/infrastructure/database"
	"library-catalog/pkg/jwt"
	"library-catalog/pkg/logger"
)

const adminEmail = "cairo@teste.com"

func main() {
	logger.Init(os.Getenv("APP_ENV"), os.Getenv("LOG_LEVEL"))

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	db := database.NewPostgresDB(cfg.Database)
	if err := db.Connect(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	if err := database.EnsureSchema(ctx, db.Pool); err != nil {
		log.Fatal().Err(err).Msg("Failed to create schema")
	}

	err = Seed(ctx,
		authorRepo.NewPostgresRepository(db.Pool),
		bookRepo.NewPostgresRepository(db.Pool),
	)
	if err != nil {
		log.Fatal().Err(err).Msg("Seeding failed")
	}

	token, err := jwt.NewManager(cfg.JWT.Secret, cfg.JWT.AccessTTL).
		GenerateAccessToken("1", adminEmail, jwt.RoleAdmin)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to sign admin token")
	}
	fmt.Printf("Admin token for %s:\n%s\n", adminEmail, token)
}
