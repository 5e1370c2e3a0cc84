package model

import "library-catalog/internal/shared/apperror"

var (
	ErrAuthorNotFound = apperror.New(apperror.KindNotFound, "AUTHOR_NOT_FOUND", "author not found")

	ErrDuplicateAuthor = apperror.New(apperror.KindDuplicate, "DUPLICATE_AUTHOR",
		"an author with this name and birth date already exists")

	ErrVersionConflict = apperror.New(apperror.KindConflict, "VERSION_CONFLICT",
		"the author was modified by another request, reload and try again")
)
