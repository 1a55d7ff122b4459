// Copyright (c) 2026 Kritika. All rights reserved.
// Author: d.maksimov.dev@gmail.com

package category

import (
	"context"

	"github.com/dmaksimov/kritika/pkg/pagination"
)

// Repository defines the data access contract for categories.
type Repository interface {
	// List returns a page of categories ordered by name, with the total
	// count. A non-empty search matches names and slugs by substring.
	List(context context.Context, params pagination.Params, search string) ([]*Category, int, error)

	// GetBySlug returns the category with the given slug.
	GetBySlug(context context.Context, slug string) (*Category, error)

	// Create persists a new category. A slug collision surfaces as Conflict.
	Create(context context.Context, category *Category) error

	// DeleteBySlug removes the category. Titles referencing it keep existing
	// with a cleared category.
	DeleteBySlug(context context.Context, slug string) error
}
