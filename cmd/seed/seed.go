package main

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	authorModel "library-catalog/internal/domains/author/model"
	bookModel "library-catalog/internal/domains/book/model"
)

type authorStore interface {
	ListAll(ctx context.Context) ([]authorModel.Author, error)
	Create(ctx context.Context, a *authorModel.Author) (*authorModel.Author, error)
}

type bookStore interface {
	ListAll(ctx context.Context) ([]bookModel.Book, error)
	Create(ctx context.Context, b *bookModel.Book) (*bookModel.Book, error)
}

type seedBook struct {
	title       string
	description string
	year        int
	price       string
	cover       string
	author      string
}

var seedAuthors = []authorModel.Author{
	{Name: "Paulo Coelho", Nationality: "Brasil", BirthDate: time.Date(1947, 8, 24, 0, 0, 0, 0, time.UTC)},
	{Name: "J.K. Rowling", Nationality: "Reino Unido", BirthDate: time.Date(1965, 7, 31, 0, 0, 0, 0, time.UTC)},
	{Name: "George R.R. Martin", Nationality: "EUA", BirthDate: time.Date(1948, 9, 20, 0, 0, 0, 0, time.UTC)},
}

var seedBooks = []seedBook{
	{"O Alquimista", "Romance inspirador", 1988, "29.90",
		"https://images.unsplash.com/photo-1544931369-9f0a8a17f6a3?w=500", "Paulo Coelho"},
	{"Harry Potter e a Pedra Filosofal", "Fantasia", 1997, "39.90",
		"https://images.unsplash.com/photo-1529651737248-dad5e20a9f5f?w=500", "J.K. Rowling"},
	{"A Guerra dos Tronos", "Fantasia épica", 1996, "50.00",
		"https://images.unsplash.com/photo-1532012197267-da84d127e765?w=500", "George R.R. Martin"},
}

// Seed inserts the sample catalog. Each table is only filled when empty, so
// running it again is a no-op.
func Seed(ctx context.Context, authors authorStore, books bookStore) error {
	existing, err := authors.ListAll(ctx)
	if err != nil {
		return err
	}
	if len(existing) == 0 {
		for i := range seedAuthors {
			created, err := authors.Create(ctx, &seedAuthors[i])
			if err != nil {
				return fmt.Errorf("seed author %q: %w", seedAuthors[i].Name, err)
			}
			existing = append(existing, *created)
		}
		log.Info().Int("count", len(seedAuthors)).Msg("Seeded authors")
	}

	currentBooks, err := books.ListAll(ctx)
	if err != nil {
		return err
	}
	if len(currentBooks) > 0 {
		return nil
	}

	idByName := make(map[string]int64, len(existing))
	for _, a := range existing {
		idByName[a.Name] = a.ID
	}

	for _, sb := range seedBooks {
		b := &bookModel.Book{
			Title:           sb.title,
			Description:     &sb.description,
			PublicationYear: sb.year,
			Price:           decimal.RequireFromString(sb.price),
			CoverURL:        &sb.cover,
		}
		if id, ok := idByName[sb.author]; ok {
			b.Authors = []bookModel.AuthorRef{{ID: id}}
		}
		if _, err := books.Create(ctx, b); err != nil {
			return fmt.Errorf("seed book %q: %w", sb.title, err)
		}
	}
	log.Info().Int("count", len(seedBooks)).Msg("Seeded books")
	return nil
}
