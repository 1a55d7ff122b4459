// Copyright (c) 2026 Kritika. All rights reserved.
// Author: d.maksimov.dev@gmail.com

package review

import (
	"context"
	"fmt"

	"github.com/dmaksimov/kritika/internal/catalog/title"
	"github.com/dmaksimov/kritika/internal/platform/apperr"
	"github.com/dmaksimov/kritika/internal/platform/sec"
	"github.com/dmaksimov/kritika/pkg/pagination"
)

// # Contracts & Types

// TitleResolver checks that the parent title of a review exists.
type TitleResolver interface {
	GetByID(context context.Context, id int) (*title.Title, error)
}

// Service holds the business logic for reviews.
//
// # Access Model
//
// Reads are public. Mutations of an existing review are allowed to its
// author, to moderators, and to admins; everyone else gets a generic
// Forbidden that does not reveal which check failed.
type Service struct {
	reviewRepository Repository
	titleResolver    TitleResolver
}

// NewService constructs a new review [Service].
func NewService(reviewRepo Repository, titleResolver TitleResolver) *Service {
	return &Service{
		reviewRepository: reviewRepo,
		titleResolver:    titleResolver,
	}
}

// # Read Operations

// ListByTitle returns a page of a title's reviews. The parent title is
// resolved first so an unknown title is a 404, not an empty list.
func (service *Service) ListByTitle(context context.Context, titleID int, params pagination.Params) ([]*Review, int, error) {
	if _, err := service.titleResolver.GetByID(context, titleID); err != nil {
		return nil, 0, err
	}

	reviews, total, err := service.reviewRepository.ListByTitle(context, titleID, params)
	if err != nil {
		return nil, 0, fmt.Errorf("review_service_list_failed: %w", err)
	}
	return reviews, total, nil
}

// Get returns a single review scoped to its title.
func (service *Service) Get(context context.Context, titleID, reviewID int) (*Review, error) {
	return service.reviewRepository.GetByID(context, titleID, reviewID)
}

// # Write Operations

// CreateInput holds the author-supplied review content.
type CreateInput struct {
	Text  string
	Score int
}

/*
Create persists a new review authored by the caller.

Description: The parent title is resolved explicitly before the write. The
one-review-per-author-per-title rule is enforced by the store's uniqueness
constraint and surfaces as Conflict, which also settles races between
concurrent submissions.

Returns:
  - *Review: The created review with its server-assigned pub_date
  - error: NotFound (unknown title), Conflict (duplicate), or storage failures
*/
func (service *Service) Create(context context.Context, claims *sec.AuthClaims, titleID int, input CreateInput) (*Review, error) {
	if _, err := service.titleResolver.GetByID(context, titleID); err != nil {
		return nil, err
	}

	review := &Review{
		Text:           input.Text,
		Score:          input.Score,
		TitleID:        titleID,
		AuthorID:       claims.UserID,
		AuthorUsername: claims.Username,
	}

	if err := service.reviewRepository.Create(context, review); err != nil {
		return nil, err
	}

	return review, nil
}

// UpdateInput holds the partial field set for a review edit.
type UpdateInput struct {
	Text  *string
	Score *int
}

/*
Update edits a review's text or score on behalf of an authorized caller.

Returns:
  - *Review: The updated review, pub_date unchanged
  - error: NotFound, Forbidden, or storage failures
*/
func (service *Service) Update(context context.Context, claims *sec.AuthClaims, titleID, reviewID int, input UpdateInput) (*Review, error) {
	review, err := service.reviewRepository.GetByID(context, titleID, reviewID)
	if err != nil {
		return nil, err
	}

	if err := AuthorizeMutation(claims, review.AuthorID); err != nil {
		return nil, err
	}

	if input.Text != nil {
		review.Text = *input.Text
	}
	if input.Score != nil {
		review.Score = *input.Score
	}

	if err := service.reviewRepository.Update(context, review); err != nil {
		return nil, err
	}

	return review, nil
}

// Delete removes a review on behalf of an authorized caller.
func (service *Service) Delete(context context.Context, claims *sec.AuthClaims, titleID, reviewID int) error {
	review, err := service.reviewRepository.GetByID(context, titleID, reviewID)
	if err != nil {
		return err
	}

	if err := AuthorizeMutation(claims, review.AuthorID); err != nil {
		return err
	}

	return service.reviewRepository.Delete(context, review.ID)
}

// # Authorization

// AuthorizeMutation is the per-object owner-or-moderator-or-admin check.
// The comment service applies the same rule to its own objects.
func AuthorizeMutation(claims *sec.AuthClaims, authorID string) error {
	if claims == nil {
		return apperr.Unauthorized("Authentication required")
	}
	if claims.UserID == authorID || claims.IsModerator() || claims.IsAdmin() {
		return nil
	}
	return apperr.Forbidden("You do not have permission to modify this resource")
}
