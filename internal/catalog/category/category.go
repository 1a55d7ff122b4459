// Copyright (c) 2026 Kritika. All rights reserved.
// Author: d.maksimov.dev@gmail.com

package category

import "time"

// Category is a coarse classification for titles (film, book, music).
//
// The slug is the public identity: routes, filters, and title payloads all
// refer to a category by slug, never by the internal row ID.
type Category struct {
	ID        int       `json:"-"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"-"`
}

// # Field Identifiers

const (
	FieldName = "name"
	FieldSlug = "slug"
)

// # Validation Constraints

const (
	MaxNameLength = 256
	MaxSlugLength = 50
)
