// Copyright (c) 2026 Kritika. All rights reserved.
// Author: d.maksimov.dev@gmail.com

package category

import (
	"context"
	"fmt"

	"github.com/dmaksimov/kritika/pkg/pagination"
	"github.com/dmaksimov/kritika/pkg/slug"
)

// Service holds the business logic for the category taxonomy.
type Service struct {
	repository Repository
}

// NewService constructs a new category [Service].
func NewService(repository Repository) *Service {
	return &Service{repository: repository}
}

// List returns a page of categories with the total count.
func (service *Service) List(context context.Context, params pagination.Params, search string) ([]*Category, int, error) {
	categories, total, err := service.repository.List(context, params, search)
	if err != nil {
		return nil, 0, fmt.Errorf("category_service_list_failed: %w", err)
	}
	return categories, total, nil
}

// CreateInput holds the data for a new category. An empty slug is derived
// from the name.
type CreateInput struct {
	Name string
	Slug string
}

// Create persists a new category, deriving the slug when omitted.
func (service *Service) Create(context context.Context, input CreateInput) (*Category, error) {
	category := &Category{
		Name: input.Name,
		Slug: input.Slug,
	}
	if category.Slug == "" {
		category.Slug = slug.From(input.Name)
	}

	if err := service.repository.Create(context, category); err != nil {
		return nil, err
	}

	return category, nil
}

// Delete removes a category by slug. Titles keep existing with a cleared
// category reference.
func (service *Service) Delete(context context.Context, categorySlug string) error {
	return service.repository.DeleteBySlug(context, categorySlug)
}
