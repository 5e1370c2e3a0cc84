package service

import (
	"context"

	"library-catalog/internal/domains/author/model"
	"library-catalog/internal/shared/listing"
)

type ServiceInterface interface {
	Create(ctx context.Context, req *model.CreateAuthorRequest) (*model.Author, error)
	Update(ctx context.Context, id int64, req *model.UpdateAuthorRequest) (*model.Author, error)
	// Delete is idempotent: removing a missing author succeeds.
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*model.Author, error)
	List(ctx context.Context, q listing.Query) (listing.Page[model.Author], error)
	Options(ctx context.Context) ([]model.AuthorOption, error)
}

// DetailInvalidator drops cached book views that embed author data.
type DetailInvalidator interface {
	InvalidateDetails(ctx context.Context)
}
