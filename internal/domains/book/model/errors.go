package model

import "library-catalog/internal/shared/apperror"

var (
	ErrBookNotFound = apperror.New(apperror.KindNotFound, "BOOK_NOT_FOUND", "book not found")

	ErrDuplicateTitle = apperror.New(apperror.KindDuplicate, "DUPLICATE_TITLE",
		"a book with this title already exists")

	ErrUnknownAuthor = apperror.New(apperror.KindValidation, "UNKNOWN_AUTHOR",
		"one or more authors do not exist")

	ErrVersionConflict = apperror.New(apperror.KindConflict, "VERSION_CONFLICT",
		"the book was modified by another request, reload and try again")
)
