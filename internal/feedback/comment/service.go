// Copyright (c) 2026 Kritika. All rights reserved.
// Author: d.maksimov.dev@gmail.com

package comment

import (
	"context"
	"fmt"

	"github.com/dmaksimov/kritika/internal/feedback/review"
	"github.com/dmaksimov/kritika/internal/platform/sec"
	"github.com/dmaksimov/kritika/pkg/pagination"
)

// # Contracts & Types

// ReviewResolver checks that the parent review exists under its title.
type ReviewResolver interface {
	GetByID(context context.Context, titleID, reviewID int) (*review.Review, error)
}

// Service holds the business logic for comments. The access model matches
// reviews: public reads, author-or-staff mutations.
type Service struct {
	commentRepository Repository
	reviewResolver    ReviewResolver
}

// NewService constructs a new comment [Service].
func NewService(commentRepo Repository, reviewResolver ReviewResolver) *Service {
	return &Service{
		commentRepository: commentRepo,
		reviewResolver:    reviewResolver,
	}
}

// # Read Operations

// ListByReview returns a page of a review's comments after resolving the
// full parent chain.
func (service *Service) ListByReview(context context.Context, titleID, reviewID int, params pagination.Params) ([]*Comment, int, error) {
	if _, err := service.reviewResolver.GetByID(context, titleID, reviewID); err != nil {
		return nil, 0, err
	}

	comments, total, err := service.commentRepository.ListByReview(context, reviewID, params)
	if err != nil {
		return nil, 0, fmt.Errorf("comment_service_list_failed: %w", err)
	}
	return comments, total, nil
}

// Get returns a single comment scoped to its parent chain.
func (service *Service) Get(context context.Context, titleID, reviewID, commentID int) (*Comment, error) {
	if _, err := service.reviewResolver.GetByID(context, titleID, reviewID); err != nil {
		return nil, err
	}
	return service.commentRepository.GetByID(context, reviewID, commentID)
}

// # Write Operations

// Create persists a new comment authored by the caller.
func (service *Service) Create(context context.Context, claims *sec.AuthClaims, titleID, reviewID int, text string) (*Comment, error) {
	if _, err := service.reviewResolver.GetByID(context, titleID, reviewID); err != nil {
		return nil, err
	}

	comment := &Comment{
		Text:           text,
		ReviewID:       reviewID,
		AuthorID:       claims.UserID,
		AuthorUsername: claims.Username,
	}

	if err := service.commentRepository.Create(context, comment); err != nil {
		return nil, err
	}

	return comment, nil
}

// Update edits a comment's text on behalf of an authorized caller.
func (service *Service) Update(context context.Context, claims *sec.AuthClaims, titleID, reviewID, commentID int, text string) (*Comment, error) {
	comment, err := service.Get(context, titleID, reviewID, commentID)
	if err != nil {
		return nil, err
	}

	if err := review.AuthorizeMutation(claims, comment.AuthorID); err != nil {
		return nil, err
	}

	comment.Text = text
	if err := service.commentRepository.Update(context, comment); err != nil {
		return nil, err
	}

	return comment, nil
}

// Delete removes a comment on behalf of an authorized caller.
func (service *Service) Delete(context context.Context, claims *sec.AuthClaims, titleID, reviewID, commentID int) error {
	comment, err := service.Get(context, titleID, reviewID, commentID)
	if err != nil {
		return err
	}

	if err := review.AuthorizeMutation(claims, comment.AuthorID); err != nil {
		return err
	}

	return service.commentRepository.Delete(context, comment.ID)
}
