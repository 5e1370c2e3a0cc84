package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"library-catalog/internal/domains/book/model"
	"library-catalog/internal/domains/book/repository"
	"library-catalog/internal/infrastructure/imagegen"
	"library-catalog/internal/shared/listing"
	"library-catalog/pkg/cache"
)

// RelatedLimit caps the related books shown on a detail view.
const RelatedLimit = 3

type Config struct {
	DetailTTL   time.Duration
	PageSize    int
	MaxPageSize int
}

type BookService struct {
	repo   repository.RepositoryInterface
	covers CoverGenerator
	cache  cache.Cache
	cfg    Config
}

// NewBookService wires the service. cache may be nil, which disables
// detail caching.
func NewBookService(
	repo repository.RepositoryInterface,
	covers CoverGenerator,
	c cache.Cache,
	cfg Config,
) *BookService {
	return &BookService{
		repo:   repo,
		covers: covers,
		cache:  c,
		cfg:    cfg,
	}
}

var _ ServiceInterface = (*BookService)(nil)

func (s *BookService) Create(ctx context.Context, req *model.CreateBookRequest) (*model.Book, error) {
	b, err := req.ToBook()
	if err != nil {
		return nil, err
	}

	// Checked before the generation call so duplicates cost nothing upstream.
	// The unique constraint still settles concurrent creates.
	exists, err := s.repo.ExistsByTitle(ctx, b.Title, 0)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, model.ErrDuplicateTitle
	}

	cover := s.covers.GenerateCoverURL(ctx, imagegen.CoverRequest{
		Title:       b.Title,
		Description: b.DescriptionText(),
	})
	b.CoverURL = &cover

	created, err := s.repo.Create(ctx, b)
	if err != nil {
		return nil, err
	}

	log.Info().
		Int64("book_id", created.ID).
		Str("title", created.Title).
		Ints64("author_ids", created.AuthorIDs()).
		Msg("Book created")

	s.InvalidateDetails(ctx)
	return created, nil
}

func (s *BookService) Update(ctx context.Context, id int64, req *model.UpdateBookRequest) (*model.Book, error) {
	if id <= 0 {
		return nil, model.ErrBookNotFound
	}

	changes, err := req.ToBook()
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

	exists, err := s.repo.ExistsByTitle(ctx, changes.Title, id)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, model.ErrDuplicateTitle
	}

	if changes.CoverURL == nil {
		changes.CoverURL = current.CoverURL
	}
	changes.ID = id
	changes.Version = current.Version

	updated, err := s.repo.Update(ctx, changes)
	if err != nil {
		return nil, err
	}

	log.Info().Int64("book_id", id).Int("version", updated.Version).Msg("Book updated")
	s.InvalidateDetails(ctx)
	return updated, nil
}

func (s *BookService) RegenerateCover(ctx context.Context, id int64) (*model.Book, error) {
	if id <= 0 {
		return nil, model.ErrBookNotFound
	}

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	cover := s.covers.GenerateCoverURL(ctx, imagegen.CoverRequest{
		Title:       current.Title,
		Description: current.DescriptionText(),
	})

	updated, err := s.repo.UpdateCover(ctx, id, cover, current.Version)
	if err != nil {
		return nil, err
	}

	log.Info().Int64("book_id", id).Str("cover_url", cover).Msg("Book cover regenerated")
	s.InvalidateDetails(ctx)
	return updated, nil
}

func (s *BookService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return nil
	}

	removed, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if removed {
		log.Info().Int64("book_id", id).Msg("Book deleted")
		s.InvalidateDetails(ctx)
	}
	return nil
}

// GetDetail returns the book with up to RelatedLimit related books: those
// sharing an author, or the most recent others when there are none.
func (s *BookService) GetDetail(ctx context.Context, id int64) (*model.BookDetailResponse, error) {
	if id <= 0 {
		return nil, model.ErrBookNotFound
	}

	cacheKey := model.DetailCacheKey(id)
	if s.cache != nil {
		var cached model.BookDetailResponse
		found, err := s.cache.Get(ctx, cacheKey, &cached)
		if err != nil {
			log.Warn().Err(err).Str("key", cacheKey).Msg("Cache get failed")
		} else if found {
			return &cached, nil
		}
	}

	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	related, err := s.related(ctx, b)
	if err != nil {
		return nil, err
	}

	detail := &model.BookDetailResponse{Book: b.ToResponse(), Related: related}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, detail, s.cfg.DetailTTL); err != nil {
			log.Warn().Err(err).Str("key", cacheKey).Msg("Cache set failed")
		}
	}
	return detail, nil
}

func (s *BookService) related(ctx context.Context, b *model.Book) ([]model.RelatedBook, error) {
	if ids := b.AuthorIDs(); len(ids) > 0 {
		related, err := s.repo.RelatedByAuthors(ctx, b.ID, ids, RelatedLimit)
		if err != nil {
			return nil, fmt.Errorf("related books: %w", err)
		}
		if len(related) > 0 {
			return related, nil
		}
	}

	latest, err := s.repo.LatestExcluding(ctx, b.ID, RelatedLimit)
	if err != nil {
		return nil, fmt.Errorf("latest books: %w", err)
	}
	return latest, nil
}

func (s *BookService) List(ctx context.Context, q listing.Query) (listing.Page[model.Book], error) {
	candidates, err := s.repo.ListAll(ctx)
	if err != nil {
		return listing.Page[model.Book]{}, fmt.Errorf("list books: %w", err)
	}
	return listing.Apply(candidates, q.Normalize(s.cfg.PageSize, s.cfg.MaxPageSize), listingSpec), nil
}

// InvalidateDetails drops every cached detail view. Related lists embed
// other books, so any catalog write can stale any detail.
func (s *BookService) InvalidateDetails(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeletePattern(ctx, model.DetailCachePattern); err != nil {
		log.Warn().Err(err).Msg("Failed to invalidate book detail cache")
	}
}
