package service

import (
	"context"

	"library-catalog/internal/domains/book/model"
	"library-catalog/internal/infrastructure/imagegen"
	"library-catalog/internal/shared/listing"
)

type ServiceInterface interface {
	Create(ctx context.Context, req *model.CreateBookRequest) (*model.Book, error)
	Update(ctx context.Context, id int64, req *model.UpdateBookRequest) (*model.Book, error)
	RegenerateCover(ctx context.Context, id int64) (*model.Book, error)
	// Delete is idempotent: removing a missing book succeeds.
	Delete(ctx context.Context, id int64) error
	GetDetail(ctx context.Context, id int64) (*model.BookDetailResponse, error)
	List(ctx context.Context, q listing.Query) (listing.Page[model.Book], error)

	// InvalidateDetails drops every cached detail view.
	InvalidateDetails(ctx context.Context)
}

// CoverGenerator always yields a usable cover URL, falling back internally
// when the generation service cannot help.
type CoverGenerator interface {
	GenerateCoverURL(ctx context.Context, req imagegen.CoverRequest) string
}
