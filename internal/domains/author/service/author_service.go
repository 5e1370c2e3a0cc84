package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"library-catalog/internal/domains/author/model"
	"library-catalog/internal/domains/author/repository"
	"library-catalog/internal/shared/listing"
)

type authorService struct {
	repo        repository.RepositoryInterface
	invalidator DetailInvalidator
	pageSize    int
	maxPageSize int
}

// NewAuthorService wires the service. invalidator may be nil.
func NewAuthorService(repo repository.RepositoryInterface, invalidator DetailInvalidator, pageSize, maxPageSize int) ServiceInterface {
	return &authorService{
		repo:        repo,
		invalidator: invalidator,
		pageSize:    pageSize,
		maxPageSize: maxPageSize,
	}
}

func (s *authorService) Create(ctx context.Context, req *model.CreateAuthorRequest) (*model.Author, error) {
	a, err := req.ToAuthor()
	if err != nil {
		return nil, err
	}

	// Advisory only: the unique constraint settles concurrent creates.
	exists, err := s.repo.ExistsByNameAndBirthDate(ctx, a.Name, a.BirthDate, 0)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, model.ErrDuplicateAuthor
	}

	created, err := s.repo.Create(ctx, a)
	if err != nil {
		return nil, err
	}

	log.Info().Int64("author_id", created.ID).Str("name", created.Name).Msg("Author created")
	return created, nil
}

func (s *authorService) Update(ctx context.Context, id int64, req *model.UpdateAuthorRequest) (*model.Author, error) {
	if id <= 0 {
		return nil, model.ErrAuthorNotFound
	}

	changes, err := req.ToAuthor()
	if err != nil {
		return nil, err
	}

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Version != nil && *req.Version != current.Version {
		return nil, model.ErrVersionConflict
	}

	exists, err := s.repo.ExistsByNameAndBirthDate(ctx, changes.Name, changes.BirthDate, id)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, model.ErrDuplicateAuthor
	}

	changes.ID = id
	changes.Version = current.Version
	updated, err := s.repo.Update(ctx, changes)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	return updated, nil
}

func (s *authorService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return nil
	}

	removed, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if removed {
		log.Info().Int64("author_id", id).Msg("Author deleted")
		s.invalidate(ctx)
	}
	return nil
}

func (s *authorService) GetByID(ctx context.Context, id int64) (*model.Author, error) {
	if id <= 0 {
		return nil, model.ErrAuthorNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *authorService) List(ctx context.Context, q listing.Query) (listing.Page[model.Author], error) {
	candidates, err := s.repo.ListAll(ctx)
	if err != nil {
		return listing.Page[model.Author]{}, fmt.Errorf("list authors: %w", err)
	}
	return listing.Apply(candidates, q.Normalize(s.pageSize, s.maxPageSize), listingSpec), nil
}

func (s *authorService) Options(ctx context.Context) ([]model.AuthorOption, error) {
	return s.repo.ListOptions(ctx)
}

func (s *authorService) invalidate(ctx context.Context) {
	if s.invalidator != nil {
		s.invalidator.InvalidateDetails(ctx)
	}
}
