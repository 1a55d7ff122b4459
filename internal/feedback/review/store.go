// Copyright (c) 2026 Kritika. All rights reserved.
// Author: d.maksimov.dev@gmail.com

package review

import (
	"context"

	"github.com/dmaksimov/kritika/pkg/pagination"
)

// Repository defines the data access contract for reviews.
type Repository interface {
	// ListByTitle returns a page of a title's reviews ordered by pub_date,
	// newest first, with the total count.
	ListByTitle(context context.Context, titleID int, params pagination.Params) ([]*Review, int, error)

	// GetByID returns the review only when it belongs to the given title,
	// so a review can never be addressed through the wrong parent path.
	GetByID(context context.Context, titleID, reviewID int) (*Review, error)

	// Create persists a new review. A second review by the same author for
	// the same title surfaces as Conflict.
	Create(context context.Context, review *Review) error

	// Update persists text and score changes. PubDate is left untouched.
	Update(context context.Context, review *Review) error

	// Delete removes the review and, via cascade, its comments.
	Delete(context context.Context, reviewID int) error
}
