package model

import (
	"errors"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"library-catalog/internal/shared/apperror"
)

const (
	MaxTitleLength       = 300
	MaxDescriptionLength = 4000
	MinPublicationYear   = 1
)

// CreateBookRequest - POST /api/v1/books
type CreateBookRequest struct {
	Title           string          `json:"title"`
	Description     *string         `json:"description,omitempty"`
	PublicationYear int             `json:"publication_year"`
	Price           decimal.Decimal `json:"price"`
	AuthorIDs       []int64         `json:"author_ids"`
}

// UpdateBookRequest - PUT /api/v1/books/:id
// A nil CoverURL keeps the stored cover.
type UpdateBookRequest struct {
	CreateBookRequest
	CoverURL *string `json:"cover_url,omitempty"`
	Version  *int    `json:"version,omitempty"`
}

func (r *CreateBookRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	if r.Description != nil {
		d := strings.TrimSpace(*r.Description)
		if d == "" {
			r.Description = nil
		} else {
			r.Description = &d
		}
	}
	r.AuthorIDs = lo.Uniq(r.AuthorIDs)
}

var errNegativePrice = errors.New("must be no less than 0")

func nonNegative(value any) error {
	if d, ok := value.(decimal.Decimal); ok && d.IsNegative() {
		return errNegativePrice
	}
	return nil
}

func (r CreateBookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.RuneLength(1, MaxTitleLength)),
		validation.Field(&r.Description, validation.NilOrNotEmpty, validation.RuneLength(0, MaxDescriptionLength)),
		validation.Field(&r.PublicationYear,
			validation.Required,
			validation.Min(MinPublicationYear),
			validation.Max(time.Now().Year()+1),
		),
		validation.Field(&r.Price, validation.By(nonNegative)),
		validation.Field(&r.AuthorIDs, validation.Each(validation.Required, validation.Min(int64(1)))),
	)
}

func (r UpdateBookRequest) Validate() error {
	if err := r.CreateBookRequest.Validate(); err != nil {
		return err
	}
	return validation.ValidateStruct(&r,
		validation.Field(&r.CoverURL, validation.NilOrNotEmpty, is.URL),
	)
}

// ToBook validates the request and builds the entity it describes.
// Authors carry ids only; names are resolved by the repository.
func (r CreateBookRequest) ToBook() (*Book, error) {
	r.Normalize()
	if err := r.Validate(); err != nil {
		return nil, apperror.Validation("invalid book", err)
	}
	return r.book(), nil
}

func (r CreateBookRequest) book() *Book {
	authors := make([]AuthorRef, len(r.AuthorIDs))
	for i, id := range r.AuthorIDs {
		authors[i] = AuthorRef{ID: id}
	}
	return &Book{
		Title:           r.Title,
		Description:     r.Description,
		PublicationYear: r.PublicationYear,
		Price:           r.Price,
		Authors:         authors,
	}
}

func (r UpdateBookRequest) ToBook() (*Book, error) {
	r.Normalize()
	if r.CoverURL != nil {
		c := strings.TrimSpace(*r.CoverURL)
		r.CoverURL = &c
	}
	if err := r.Validate(); err != nil {
		return nil, apperror.Validation("invalid book", err)
	}
	b := r.book()
	b.CoverURL = r.CoverURL
	return b, nil
}
