package repository

import (
	"context"
	"time"

	"library-catalog/internal/domains/author/model"
)

type RepositoryInterface interface {
	Create(ctx context.Context, a *model.Author) (*model.Author, error)
	GetByID(ctx context.Context, id int64) (*model.Author, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
	// ExistsByNameAndBirthDate ignores the author with excludeID (0 excludes nobody).
	ExistsByNameAndBirthDate(ctx context.Context, name string, birthDate time.Time, excludeID int64) (bool, error)
	// Update writes a only if its Version still matches the stored row.
	Update(ctx context.Context, a *model.Author) (*model.Author, error)
	// Delete reports whether a row was removed.
	Delete(ctx context.Context, id int64) (bool, error)
	// ListAll returns every author as listing candidates.
	ListAll(ctx context.Context) ([]model.Author, error)
	ListOptions(ctx context.Context) ([]model.AuthorOption, error)
}
