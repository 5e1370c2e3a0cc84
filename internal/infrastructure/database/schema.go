package database

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog/log"
)

//go:embed schema.sql
var schemaSQL string

// Constraint names referenced by repositories when classifying violations.
const (
	ConstraintAuthorNameBirthDate = "authors_name_birth_date_key"
	ConstraintBookTitle           = "books_title_key"
)

type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// EnsureSchema creates the catalog tables when they do not exist yet.
func EnsureSchema(ctx context.Context, db execer) error {
	if _, err := db.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	log.Info().Msg("Catalog schema ready")
	return nil
}
