// Copyright (c) 2026 Kritika. All rights reserved.
// Author: d.maksimov.dev@gmail.com

package comment

import (
	"context"

	"github.com/dmaksimov/kritika/pkg/pagination"
)

// Repository defines the data access contract for comments.
type Repository interface {
	// ListByReview returns a page of a review's comments ordered by
	// pub_date, oldest first, with the total count.
	ListByReview(context context.Context, reviewID int, params pagination.Params) ([]*Comment, int, error)

	// GetByID returns the comment only when it belongs to the given review.
	GetByID(context context.Context, reviewID, commentID int) (*Comment, error)

	Create(context context.Context, comment *Comment) error
	Update(context context.Context, comment *Comment) error
	Delete(context context.Context, commentID int) error
}
