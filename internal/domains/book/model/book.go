package model

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// AuthorRef is an author as seen from a book.
type AuthorRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Book struct {
	ID              int64           `json:"id"`
	Title           string          `json:"title"`
	Description     *string         `json:"description"`
	PublicationYear int             `json:"publication_year"`
	Price           decimal.Decimal `json:"price"`
	CoverURL        *string         `json:"cover_url"`
	Authors         []AuthorRef     `json:"authors"`
	Version         int             `json:"version"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

func (b *Book) AuthorIDs() []int64 {
	ids := make([]int64, len(b.Authors))
	for i, a := range b.Authors {
		ids[i] = a.ID
	}
	return ids
}

func (b *Book) AuthorNames() []string {
	names := make([]string, len(b.Authors))
	for i, a := range b.Authors {
		names[i] = a.Name
	}
	return names
}

// DescriptionText returns the description or "" when absent.
func (b *Book) DescriptionText() string {
	if b.Description == nil {
		return ""
	}
	return *b.Description
}

// RelatedBook is the compact form shown next to a book's detail.
type RelatedBook struct {
	ID              int64   `json:"id"`
	Title           string  `json:"title"`
	CoverURL        *string `json:"cover_url"`
	PublicationYear int     `json:"publication_year"`
}

type BookResponse struct {
	ID              int64           `json:"id"`
	Title           string          `json:"title"`
	Description     *string         `json:"description,omitempty"`
	PublicationYear int             `json:"publication_year"`
	Price           decimal.Decimal `json:"price"`
	CoverURL        *string         `json:"cover_url,omitempty"`
	Authors         []AuthorRef     `json:"authors"`
	AuthorIDs       []int64         `json:"author_ids"`
	Version         int             `json:"version"`
}

// BookDetailResponse - GET /api/v1/books/:id
type BookDetailResponse struct {
	Book    BookResponse  `json:"book"`
	Related []RelatedBook `json:"related"`
}

func (b *Book) ToResponse() BookResponse {
	authors := b.Authors
	if authors == nil {
		authors = []AuthorRef{}
	}
	return BookResponse{
		ID:              b.ID,
		Title:           b.Title,
		Description:     b.Description,
		PublicationYear: b.PublicationYear,
		Price:           b.Price,
		CoverURL:        b.CoverURL,
		Authors:         authors,
		AuthorIDs:       b.AuthorIDs(),
		Version:         b.Version,
	}
}

// DetailCacheKey is the cache key of a book's detail view.
func DetailCacheKey(id int64) string {
	return DetailCachePrefix + strconv.FormatInt(id, 10)
}

const (
	DetailCachePrefix  = "book:detail:"
	DetailCachePattern = DetailCachePrefix + "*"
)
