package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"library-catalog/internal/domains/author/model"
	"library-catalog/internal/infrastructure/database"
	pkgdb "library-catalog/pkg/database"
)

const pgUniqueViolation = "23505"

const authorColumns = `id, name, nationality, birth_date, version, created_at, updated_at`

type postgresRepository struct {
	db pkgdb.Querier
}

func NewPostgresRepository(db pkgdb.Querier) RepositoryInterface {
	return &postgresRepository{db: db}
}

func scanAuthor(row pgx.Row) (*model.Author, error) {
	var a model.Author
	err := row.Scan(
		&a.ID,
		&a.Name,
		&a.Nationality,
		&a.BirthDate,
		&a.Version,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func mapWriteError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation &&
		(pgErr.ConstraintName == "" || pgErr.ConstraintName == database.ConstraintAuthorNameBirthDate) {
		return model.ErrDuplicateAuthor.Wrap(err)
	}
	return err
}

func (r *postgresRepository) Create(ctx context.Context, a *model.Author) (*model.Author, error) {
	query := `
		INSERT INTO authors (name, nationality, birth_date, version)
		VALUES ($1, $2, $3, 1)
		RETURNING ` + authorColumns

	created, err := scanAuthor(r.db.QueryRow(ctx, query, a.Name, a.Nationality, a.BirthDate))
	if err != nil {
		return nil, fmt.Errorf("failed to create author: %w", mapWriteError(err))
	}
	return created, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*model.Author, error) {
	query := `SELECT ` + authorColumns + ` FROM authors WHERE id = $1`

	a, err := scanAuthor(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("failed to get author by id: %w", err)
	}
	return a, nil
}

func (r *postgresRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM authors WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check author existence: %w", err)
	}
	return exists, nil
}

func (r *postgresRepository) ExistsByNameAndBirthDate(ctx context.Context, name string, birthDate time.Time, excludeID int64) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM authors
			WHERE name = $1 AND birth_date = $2 AND id <> $3
		)`

	var exists bool
	if err := r.db.QueryRow(ctx, query, name, birthDate, excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check author uniqueness: %w", err)
	}
	return exists, nil
}

func (r *postgresRepository) Update(ctx context.Context, a *model.Author) (*model.Author, error) {
	query := `
		UPDATE authors
		SET name = $1, nationality = $2, birth_date = $3,
		    version = version + 1, updated_at = NOW()
		WHERE id = $4 AND version = $5
		RETURNING ` + authorColumns

	updated, err := scanAuthor(r.db.QueryRow(ctx, query, a.Name, a.Nationality, a.BirthDate, a.ID, a.Version))
	if err == nil {
		return updated, nil
	}

	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("failed to update author: %w", mapWriteError(err))
	}

	// Nothing matched: the row is gone or its version moved on.
	exists, existsErr := r.ExistsByID(ctx, a.ID)
	if existsErr != nil {
		return nil, existsErr
	}
	if !exists {
		return nil, model.ErrAuthorNotFound
	}
	return nil, model.ErrVersionConflict
}

func (r *postgresRepository) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM authors WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete author: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *postgresRepository) ListAll(ctx context.Context) ([]model.Author, error) {
	rows, err := r.db.Query(ctx, `SELECT `+authorColumns+` FROM authors`)
	if err != nil {
		return nil, fmt.Errorf("failed to list authors: %w", err)
	}
	defer rows.Close()

	authors := make([]model.Author, 0)
	for rows.Next() {
		a, err := scanAuthor(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan author: %w", err)
		}
		authors = append(authors, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate authors: %w", err)
	}
	return authors, nil
}

func (r *postgresRepository) ListOptions(ctx context.Context) ([]model.AuthorOption, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name FROM authors ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list author options: %w", err)
	}
	defer rows.Close()

	options := make([]model.AuthorOption, 0)
	for rows.Next() {
		var o model.AuthorOption
		if err := rows.Scan(&o.ID, &o.Name); err != nil {
			return nil, fmt.Errorf("failed to scan author option: %w", err)
		}
		options = append(options, o)
	}
	return options, rows.Err()
}
