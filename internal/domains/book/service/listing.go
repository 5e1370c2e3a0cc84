package service

import (
	"cmp"
	"strings"

	"library-catalog/internal/domains/book/model"
	"library-catalog/internal/shared/listing"
	"library-catalog/internal/shared/textnorm"
)

const (
	SortTitle     = "title"
	SortTitleDesc = "title_desc"
	SortPrice     = "price"
	SortPriceDesc = "price_desc"
	SortYear      = "year"
	SortYearDesc  = "year_desc"
)

func byID(a, b model.Book) int { return cmp.Compare(a.ID, b.ID) }

func byTitle(a, b model.Book) int {
	if c := strings.Compare(textnorm.Normalize(a.Title), textnorm.Normalize(b.Title)); c != 0 {
		return c
	}
	return strings.Compare(a.Title, b.Title)
}

func byPrice(a, b model.Book) int { return a.Price.Cmp(b.Price) }

func byYear(a, b model.Book) int { return cmp.Compare(a.PublicationYear, b.PublicationYear) }

// listingSpec matches a term against the title or any author name.
var listingSpec = listing.Spec[model.Book]{
	Match: func(b model.Book, term string) bool {
		return textnorm.ContainsAny(term, append([]string{b.Title}, b.AuthorNames()...)...)
	},
	Sorts: map[string]listing.CompareFunc[model.Book]{
		SortTitle:     listing.Then(byTitle, byID),
		"title_asc":   listing.Then(byTitle, byID),
		SortTitleDesc: listing.Then(listing.Reverse(byTitle), byID),
		SortPrice:     listing.Then(byPrice, byTitle, byID),
		"price_asc":   listing.Then(byPrice, byTitle, byID),
		SortPriceDesc: listing.Then(listing.Reverse(byPrice), byTitle, byID),
		SortYear:      listing.Then(byYear, byTitle, byID),
		"year_asc":    listing.Then(byYear, byTitle, byID),
		SortYearDesc:  listing.Then(listing.Reverse(byYear), byTitle, byID),
	},
	DefaultSort: SortTitle,
}
