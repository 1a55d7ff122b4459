// Copyright (c) 2026 Kritika. All rights reserved.
// Author: d.maksimov.dev@gmail.com

package genre

import (
	"context"
	"fmt"

	"github.com/dmaksimov/kritika/pkg/pagination"
	"github.com/dmaksimov/kritika/pkg/slug"
)

// Service holds the business logic for the genre taxonomy.
type Service struct {
	repository Repository
}

// NewService constructs a new genre [Service].
func NewService(repository Repository) *Service {
	return &Service{repository: repository}
}

func (service *Service) List(context context.Context, params pagination.Params, search string) ([]*Genre, int, error) {
	genres, total, err := service.repository.List(context, params, search)
	if err != nil {
		return nil, 0, fmt.Errorf("genre_service_list_failed: %w", err)
	}
	return genres, total, nil
}

// CreateInput holds the data for a new genre. An empty slug is derived from
// the name.
type CreateInput struct {
	Name string
	Slug string
}

func (service *Service) Create(context context.Context, input CreateInput) (*Genre, error) {
	genre := &Genre{
		Name: input.Name,
		Slug: input.Slug,
	}
	if genre.Slug == "" {
		genre.Slug = slug.From(input.Name)
	}

	if err := service.repository.Create(context, genre); err != nil {
		return nil, err
	}

	return genre, nil
}

func (service *Service) Delete(context context.Context, genreSlug string) error {
	return service.repository.DeleteBySlug(context, genreSlug)
}
