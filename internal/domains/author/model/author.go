package model

import (
	"time"
)

// DateLayout is the wire format of birth dates.
const DateLayout = "2006-01-02"

type Author struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Nationality string    `json:"nationality"`
	BirthDate   time.Time `json:"birth_date"`
	Version     int       `json:"version"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// AuthorOption feeds author pickers on book forms.
type AuthorOption struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type AuthorResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Nationality string `json:"nationality"`
	BirthDate   string `json:"birth_date"`
	Version     int    `json:"version"`
}

func (a *Author) ToResponse() AuthorResponse {
	return AuthorResponse{
		ID:          a.ID,
		Name:        a.Name,
		Nationality: a.Nationality,
		BirthDate:   a.BirthDate.Format(DateLayout),
		Version:     a.Version,
	}
}
