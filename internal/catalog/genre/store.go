// Copyright (c) 2026 Kritika. All rights reserved.
// Author: d.maksimov.dev@gmail.com

package genre

import (
	"context"

	"github.com/dmaksimov/kritika/pkg/pagination"
)

// Repository defines the data access contract for genres.
type Repository interface {
	List(context context.Context, params pagination.Params, search string) ([]*Genre, int, error)
	GetBySlug(context context.Context, slug string) (*Genre, error)

	// GetBySlugs resolves a batch of slugs, preserving no particular order.
	// Any unknown slug makes the whole batch fail with NotFound.
	GetBySlugs(context context.Context, slugs []string) ([]*Genre, error)

	Create(context context.Context, genre *Genre) error

	// DeleteBySlug removes the genre and its title associations.
	DeleteBySlug(context context.Context, slug string) error
}
