package service

import (
	"cmp"
	"strings"

	"library-catalog/internal/domains/author/model"
	"library-catalog/internal/shared/listing"
	"library-catalog/internal/shared/textnorm"
)

const (
	SortName     = "name"
	SortNameDesc = "name_desc"
	SortDate     = "date"
	SortDateDesc = "date_desc"
)

func byID(a, b model.Author) int { return cmp.Compare(a.ID, b.ID) }

func byName(a, b model.Author) int {
	if c := strings.Compare(textnorm.Normalize(a.Name), textnorm.Normalize(b.Name)); c != 0 {
		return c
	}
	return strings.Compare(a.Name, b.Name)
}

func byBirthDate(a, b model.Author) int { return a.BirthDate.Compare(b.BirthDate) }

// listingSpec filters authors on name or nationality and sorts ties by id.
var listingSpec = listing.Spec[model.Author]{
	Match: func(a model.Author, term string) bool {
		return textnorm.ContainsAny(term, a.Name, a.Nationality)
	},
	Sorts: map[string]listing.CompareFunc[model.Author]{
		SortName:     listing.Then(byName, byID),
		"name_asc":   listing.Then(byName, byID),
		SortNameDesc: listing.Then(listing.Reverse(byName), byID),
		SortDate:     listing.Then(byBirthDate, byName, byID),
		"date_asc":   listing.Then(byBirthDate, byName, byID),
		SortDateDesc: listing.Then(listing.Reverse(byBirthDate), byName, byID),
	},
	DefaultSort: SortName,
}
