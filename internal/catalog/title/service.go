// Copyright (c) 2026 Kritika. All rights reserved.
// Author: d.maksimov.dev@gmail.com

package title

import (
	"context"
	"fmt"
	"time"

	"github.com/dmaksimov/kritika/internal/catalog/category"
	"github.com/dmaksimov/kritika/internal/catalog/genre"
	"github.com/dmaksimov/kritika/internal/platform/apperr"
	"github.com/dmaksimov/kritika/pkg/pagination"
)

// # Service Layer

// Service holds the business logic for catalog titles.
//
// Category and genre references arrive from clients as slugs; the service
// resolves them against their repositories before any write.
type Service struct {
	titleRepository    Repository
	categoryRepository category.Repository
	genreRepository    genre.Repository
}

// NewService constructs a new title [Service].
func NewService(
	titleRepo Repository,
	categoryRepo category.Repository,
	genreRepo genre.Repository,
) *Service {
	return &Service{
		titleRepository:    titleRepo,
		categoryRepository: categoryRepo,
		genreRepository:    genreRepo,
	}
}

// # Read Operations

// List returns a filtered page of titles with the total count.
func (service *Service) List(context context.Context, params pagination.Params, filter Filter) ([]*Title, int, error) {
	titles, total, err := service.titleRepository.List(context, params, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("title_service_list_failed: %w", err)
	}
	return titles, total, nil
}

// Get returns a single hydrated title.
func (service *Service) Get(context context.Context, id int) (*Title, error) {
	return service.titleRepository.GetByID(context, id)
}

// # Write Operations

// CreateInput holds the data for a new title. Category and genres are
// referenced by slug.
type CreateInput struct {
	Name         string
	Year         int
	Description  string
	CategorySlug string
	GenreSlugs   []string
}

/*
Create persists a new title after resolving its taxonomy references.

Description: The year may not lie in the future. An unknown category or
genre slug is a validation failure, not a 404: the slug arrived in the
request body, so the addressed resource (the titles collection) exists.

Returns:
  - *Title: The created, fully hydrated title
  - error: Validation or storage failures
*/
func (service *Service) Create(context context.Context, input CreateInput) (*Title, error) {
	if err := validateYear(input.Year); err != nil {
		return nil, err
	}

	title := &Title{
		Name:        input.Name,
		Year:        input.Year,
		Description: input.Description,
		Genres:      make([]genre.Genre, 0),
	}

	if input.CategorySlug != "" {
		resolved, err := service.resolveCategory(context, input.CategorySlug)
		if err != nil {
			return nil, err
		}
		title.Category = resolved
	}

	genres, genreIDs, err := service.resolveGenres(context, input.GenreSlugs)
	if err != nil {
		return nil, err
	}
	title.Genres = genres

	if err := service.titleRepository.Create(context, title, genreIDs); err != nil {
		return nil, err
	}

	return title, nil
}

// UpdateInput holds the partial field set for a title update. A nil field
// is left unchanged; an empty CategorySlug clears the category.
type UpdateInput struct {
	Name         *string
	Year         *int
	Description  *string
	CategorySlug *string
	GenreSlugs   *[]string
}

/*
Update applies a partial update to a title, including taxonomy rewiring.

Returns:
  - *Title: The updated, fully hydrated title
  - error: Not found, validation, or storage failures
*/
func (service *Service) Update(context context.Context, id int, input UpdateInput) (*Title, error) {
	title, err := service.titleRepository.GetByID(context, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		title.Name = *input.Name
	}
	if input.Year != nil {
		if err := validateYear(*input.Year); err != nil {
			return nil, err
		}
		title.Year = *input.Year
	}
	if input.Description != nil {
		title.Description = *input.Description
	}

	if input.CategorySlug != nil {
		if *input.CategorySlug == "" {
			title.Category = nil
		} else {
			resolved, err := service.resolveCategory(context, *input.CategorySlug)
			if err != nil {
				return nil, err
			}
			title.Category = resolved
		}
	}

	var genreIDs []int
	replaceGenres := input.GenreSlugs != nil
	if replaceGenres {
		genres, resolvedIDs, err := service.resolveGenres(context, *input.GenreSlugs)
		if err != nil {
			return nil, err
		}
		title.Genres = genres
		genreIDs = resolvedIDs
	}

	if err := service.titleRepository.Update(context, title, genreIDs, replaceGenres); err != nil {
		return nil, err
	}

	return title, nil
}

// Delete removes a title and, via cascade, its reviews and comments.
func (service *Service) Delete(context context.Context, id int) error {
	return service.titleRepository.Delete(context, id)
}

// # Reference Resolution

func (service *Service) resolveCategory(context context.Context, slug string) (*category.Category, error) {
	resolved, err := service.categoryRepository.GetBySlug(context, slug)
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, apperr.ValidationError("Validation failed", apperr.FieldError{
				Field:   FieldCategory,
				Message: "Unknown category slug",
			})
		}
		return nil, err
	}
	return resolved, nil
}

func (service *Service) resolveGenres(context context.Context, slugs []string) ([]genre.Genre, []int, error) {
	unique := dedupe(slugs)

	resolved, err := service.genreRepository.GetBySlugs(context, unique)
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, nil, apperr.ValidationError("Validation failed", apperr.FieldError{
				Field:   FieldGenre,
				Message: "Unknown genre slug",
			})
		}
		return nil, nil, err
	}

	genres := make([]genre.Genre, 0, len(resolved))
	genreIDs := make([]int, 0, len(resolved))
	for _, item := range resolved {
		genres = append(genres, *item)
		genreIDs = append(genreIDs, item.ID)
	}

	return genres, genreIDs, nil
}

func validateYear(year int) error {
	if year < MinYear || year > time.Now().Year() {
		return apperr.ValidationError("Validation failed", apperr.FieldError{
			Field:   FieldYear,
			Message: "Year must not be in the future",
		})
	}
	return nil
}

func dedupe(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	unique := make([]string, 0, len(values))
	for _, value := range values {
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		unique = append(unique, value)
	}
	return unique
}
