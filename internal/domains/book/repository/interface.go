package repository

import (
	"context"

	"library-catalog/internal/domains/book/model"
)

type RepositoryInterface interface {
	// Create inserts the book and its author links in one transaction.
	Create(ctx context.Context, b *model.Book) (*model.Book, error)
	GetByID(ctx context.Context, id int64) (*model.Book, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
	ExistsByTitle(ctx context.Context, title string, excludeID int64) (bool, error)
	// Update replaces the scalar fields and the whole author set when b.Version
	// still matches the stored row.
	Update(ctx context.Context, b *model.Book) (*model.Book, error)
	UpdateCover(ctx context.Context, id int64, coverURL string, version int) (*model.Book, error)
	Delete(ctx context.Context, id int64) (bool, error)
	ListAll(ctx context.Context) ([]model.Book, error)

	RelatedByAuthors(ctx context.Context, bookID int64, authorIDs []int64, limit int) ([]model.RelatedBook, error)
	LatestExcluding(ctx context.Context, bookID int64, limit int) ([]model.RelatedBook, error)
}
