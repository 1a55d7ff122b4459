// Copyright (c) 2026 Kritika. All rights reserved.
// Author: d.maksimov.dev@gmail.com

package genre

import "time"

// Genre is a fine-grained label attached to titles, identified by slug.
type Genre struct {
	ID        int       `json:"-"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"-"`
}

const (
	FieldName = "name"
	FieldSlug = "slug"
)

const (
	MaxNameLength = 256
	MaxSlugLength = 50
)
