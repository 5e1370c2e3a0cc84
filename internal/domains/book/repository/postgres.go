package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"

	"library-catalog/internal/domains/book/model"
	"library-catalog/internal/infrastructure/database"
	pkgdb "library-catalog/pkg/database"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

const selectBook = `
	SELECT b.id, b.title, b.description, b.publication_year, b.price, b.cover_url,
	       b.version, b.created_at, b.updated_at,
	       COALESCE(array_agg(a.id ORDER BY a.name, a.id) FILTER (WHERE a.id IS NOT NULL), '{}') AS author_ids,
	       COALESCE(array_agg(a.name ORDER BY a.name, a.id) FILTER (WHERE a.id IS NOT NULL), '{}') AS author_names
	FROM books b
	LEFT JOIN book_authors ba ON ba.book_id = b.id
	LEFT JOIN authors a ON a.id = ba.author_id`

const insertBookAuthors = `
	INSERT INTO book_authors (book_id, author_id)
	SELECT $1, unnest($2::bigint[])`

type postgresRepository struct {
	db pkgdb.Pool
}

func NewPostgresRepository(db pkgdb.Pool) RepositoryInterface {
	return &postgresRepository{db: db}
}

func scanBook(row pgx.Row) (*model.Book, error) {
	var (
		b     model.Book
		ids   []int64
		names []string
	)
	err := row.Scan(
		&b.ID,
		&b.Title,
		&b.Description,
		&b.PublicationYear,
		&b.Price,
		&b.CoverURL,
		&b.Version,
		&b.CreatedAt,
		&b.UpdatedAt,
		&ids,
		&names,
	)
	if err != nil {
		return nil, err
	}
	if len(ids) != len(names) {
		return nil, fmt.Errorf("book %d: %d author ids but %d names", b.ID, len(ids), len(names))
	}

	b.Authors = make([]model.AuthorRef, len(ids))
	for i := range ids {
		b.Authors[i] = model.AuthorRef{ID: ids[i], Name: names[i]}
	}
	return &b, nil
}

func scanRelated(rows pgx.Rows) ([]model.RelatedBook, error) {
	defer rows.Close()

	related := make([]model.RelatedBook, 0)
	for rows.Next() {
		var r model.RelatedBook
		if err := rows.Scan(&r.ID, &r.Title, &r.CoverURL, &r.PublicationYear); err != nil {
			return nil, fmt.Errorf("failed to scan related book: %w", err)
		}
		related = append(related, r)
	}
	return related, rows.Err()
}

func mapWriteError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch {
	case pgErr.Code == pgUniqueViolation &&
		(pgErr.ConstraintName == "" || pgErr.ConstraintName == database.ConstraintBookTitle):
		return model.ErrDuplicateTitle.Wrap(err)
	case pgErr.Code == pgForeignKeyViolation:
		return model.ErrUnknownAuthor.Wrap(err)
	}
	return err
}

func getByID(ctx context.Context, q pkgdb.Querier, id int64) (*model.Book, error) {
	b, err := scanBook(q.QueryRow(ctx, selectBook+` WHERE b.id = $1 GROUP BY b.id`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrBookNotFound
		}
		return nil, fmt.Errorf("failed to get book by id: %w", err)
	}
	return b, nil
}

func linkAuthors(ctx context.Context, tx pgx.Tx, bookID int64, authorIDs []int64) error {
	if len(authorIDs) == 0 {
		return nil
	}
	if _, err := tx.Exec(ctx, insertBookAuthors, bookID, authorIDs); err != nil {
		return fmt.Errorf("failed to link authors: %w", mapWriteError(err))
	}
	return nil
}

func (r *postgresRepository) Create(ctx context.Context, b *model.Book) (*model.Book, error) {
	query := `
		INSERT INTO books (title, description, publication_year, price, cover_url, version)
		VALUES ($1, $2, $3, $4, $5, 1)
		RETURNING id`

	return pkgdb.WithTransactionResult(ctx, r.db, func(tx pgx.Tx) (*model.Book, error) {
		var id int64
		err := tx.QueryRow(ctx, query, b.Title, b.Description, b.PublicationYear, b.Price, b.CoverURL).Scan(&id)
		if err != nil {
			return nil, fmt.Errorf("failed to create book: %w", mapWriteError(err))
		}
		if err := linkAuthors(ctx, tx, id, b.AuthorIDs()); err != nil {
			return nil, err
		}
		return getByID(ctx, tx, id)
	})
}

func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*model.Book, error) {
	return getByID(ctx, r.db, id)
}

func (r *postgresRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	return existsByID(ctx, r.db, id)
}

func existsByID(ctx context.Context, q pkgdb.Querier, id int64) (bool, error) {
	var exists bool
	if err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM books WHERE id = $1)`, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check book existence: %w", err)
	}
	return exists, nil
}

func (r *postgresRepository) ExistsByTitle(ctx context.Context, title string, excludeID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM books WHERE title = $1 AND id <> $2)`,
		title, excludeID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check book title: %w", err)
	}
	return exists, nil
}

// staleOrMissing explains a versioned write that matched no row.
func staleOrMissing(ctx context.Context, q pkgdb.Querier, id int64) error {
	exists, err := existsByID(ctx, q, id)
	if err != nil {
		return err
	}
	if !exists {
		return model.ErrBookNotFound
	}
	return model.ErrVersionConflict
}

func (r *postgresRepository) Update(ctx context.Context, b *model.Book) (*model.Book, error) {
	query := `
		UPDATE books
		SET title = $1, description = $2, publication_year = $3, price = $4, cover_url = $5,
		    version = version + 1, updated_at = NOW()
		WHERE id = $6 AND version = $7
		RETURNING id`

	return pkgdb.WithTransactionResult(ctx, r.db, func(tx pgx.Tx) (*model.Book, error) {
		var id int64
		err := tx.QueryRow(ctx, query,
			b.Title, b.Description, b.PublicationYear, b.Price, b.CoverURL, b.ID, b.Version,
		).Scan(&id)
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, staleOrMissing(ctx, tx, b.ID)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to update book: %w", mapWriteError(err))
		}

		if _, err := tx.Exec(ctx, `DELETE FROM book_authors WHERE book_id = $1`, id); err != nil {
			return nil, fmt.Errorf("failed to clear book authors: %w", err)
		}
		if err := linkAuthors(ctx, tx, id, b.AuthorIDs()); err != nil {
			return nil, err
		}
		return getByID(ctx, tx, id)
	})
}

func (r *postgresRepository) UpdateCover(ctx context.Context, id int64, coverURL string, version int) (*model.Book, error) {
	query := `
		UPDATE books
		SET cover_url = $1, version = version + 1, updated_at = NOW()
		WHERE id = $2 AND version = $3
		RETURNING id`

	var updatedID int64
	err := r.db.QueryRow(ctx, query, coverURL, id, version).Scan(&updatedID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, staleOrMissing(ctx, r.db, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update book cover: %w", err)
	}
	return getByID(ctx, r.db, updatedID)
}

// Delete removes the book; author links go with it through ON DELETE CASCADE.
func (r *postgresRepository) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete book: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *postgresRepository) ListAll(ctx context.Context) ([]model.Book, error) {
	rows, err := r.db.Query(ctx, selectBook+` GROUP BY b.id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}
	defer rows.Close()

	books := make([]model.Book, 0)
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan book: %w", err)
		}
		books = append(books, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate books: %w", err)
	}
	return books, nil
}

func (r *postgresRepository) RelatedByAuthors(ctx context.Context, bookID int64, authorIDs []int64, limit int) ([]model.RelatedBook, error) {
	query := `
		SELECT DISTINCT b.id, b.title, b.cover_url, b.publication_year
		FROM books b
		JOIN book_authors ba ON ba.book_id = b.id
		WHERE ba.author_id = ANY($1) AND b.id <> $2
		ORDER BY b.publication_year DESC, b.id DESC
		LIMIT $3`

	rows, err := r.db.Query(ctx, query, pq.Array(authorIDs), bookID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query related books: %w", err)
	}
	return scanRelated(rows)
}

func (r *postgresRepository) LatestExcluding(ctx context.Context, bookID int64, limit int) ([]model.RelatedBook, error) {
	query := `
		SELECT id, title, cover_url, publication_year
		FROM books
		WHERE id <> $1
		ORDER BY publication_year DESC, id DESC
		LIMIT $2`

	rows, err := r.db.Query(ctx, query, bookID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query latest books: %w", err)
	}
	return scanRelated(rows)
}
