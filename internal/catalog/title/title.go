// Copyright (c) 2026 Kritika. All rights reserved.
// Author: d.maksimov.dev@gmail.com

package title

import (
	"time"

	"github.com/dmaksimov/kritika/internal/catalog/category"
	"github.com/dmaksimov/kritika/internal/catalog/genre"
)

// # Entity Definitions

// Title is a reviewable catalog entry (a film, a book, an album).
//
// Rating is derived on every read as the integer-truncated mean of the
// title's review scores. It is nil while the title has no reviews and is
// never stored.
type Title struct {
	ID          int                `json:"id"`
	Name        string             `json:"name"`
	Year        int                `json:"year"`
	Description string             `json:"description"`
	Category    *category.Category `json:"category"`
	Genres      []genre.Genre      `json:"genre"`
	Rating      *int               `json:"rating"`
	CreatedAt   time.Time          `json:"-"`
}

// # Field Identifiers

const (
	FieldName        = "name"
	FieldYear        = "year"
	FieldDescription = "description"
	FieldCategory    = "category"
	FieldGenre       = "genre"
)

// # Validation Constraints

const (
	MaxNameLength = 256
	// MinYear bounds the year to something a catalog could plausibly hold.
	MinYear = 1
)

// # Query Filters

// Filter narrows a title listing. Zero values mean "no constraint".
// A title matches GenreSlugs when it carries any of the listed genres.
type Filter struct {
	CategorySlug string
	GenreSlugs   []string
	Year         int
	Name         string
}
