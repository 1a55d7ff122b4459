// Copyright (c) 2026 Kritika. All rights reserved.
// Author: d.maksimov.dev@gmail.com

package title

import (
	"context"

	"github.com/dmaksimov/kritika/pkg/pagination"
)

// Repository defines the data access contract for titles.
//
// Implementations hydrate each returned title with its category, genres,
// and the derived rating.
type Repository interface {
	// List returns a filtered page of titles ordered by name, with the
	// total count of matches.
	List(context context.Context, params pagination.Params, filter Filter) ([]*Title, int, error)

	// GetByID returns a single hydrated title.
	GetByID(context context.Context, id int) (*Title, error)

	// Create persists the title and its genre links in one transaction.
	Create(context context.Context, title *Title, genreIDs []int) error

	// Update persists the title row. When replaceGenres is true the genre
	// links are rewritten to exactly genreIDs.
	Update(context context.Context, title *Title, genreIDs []int, replaceGenres bool) error

	// Delete removes the title and, via cascade, its reviews and comments.
	Delete(context context.Context, id int) error
}
