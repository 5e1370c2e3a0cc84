package model

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"library-catalog/internal/shared/apperror"
)

const (
	MaxNameLength        = 200
	MaxNationalityLength = 100
)

// CreateAuthorRequest - POST /api/v1/authors
type CreateAuthorRequest struct {
	Name        string `json:"name"`
	Nationality string `json:"nationality"`
	BirthDate   string `json:"birth_date"`
}

// UpdateAuthorRequest - PUT /api/v1/authors/:id
// Version is optional; when sent it must match the stored version.
type UpdateAuthorRequest struct {
	CreateAuthorRequest
	Version *int `json:"version,omitempty"`
}

func (r *CreateAuthorRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Nationality = strings.TrimSpace(r.Nationality)
	r.BirthDate = strings.TrimSpace(r.BirthDate)
}

func (r CreateAuthorRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.RuneLength(1, MaxNameLength)),
		validation.Field(&r.Nationality, validation.RuneLength(0, MaxNationalityLength)),
		validation.Field(&r.BirthDate,
			validation.Required,
			validation.Date(DateLayout).
				Max(time.Now()).
				Error("must be a date in YYYY-MM-DD format").
				RangeError("must not be in the future"),
		),
	)
}

// ToAuthor validates the request and builds the entity it describes.
func (r CreateAuthorRequest) ToAuthor() (*Author, error) {
	r.Normalize()
	if err := r.Validate(); err != nil {
		return nil, apperror.Validation("invalid author", err)
	}

	birthDate, err := time.Parse(DateLayout, r.BirthDate)
	if err != nil {
		return nil, apperror.Validation("invalid author", validation.Errors{"birth_date": err})
	}

	return &Author{
		Name:        r.Name,
		Nationality: r.Nationality,
		BirthDate:   birthDate,
	}, nil
}
