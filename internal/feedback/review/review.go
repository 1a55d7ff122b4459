// Copyright (c) 2026 Kritika. All rights reserved.
// Author: d.maksimov.dev@gmail.com

package review

import "time"

// # Entity Definitions

// Review is a scored opinion on a title, at most one per author and title.
//
// PubDate is assigned by the server at creation and never changes, even
// when the text or score is edited later.
type Review struct {
	ID             int       `json:"id"`
	Text           string    `json:"text"`
	Score          int       `json:"score"`
	AuthorUsername string    `json:"author"`
	PubDate        time.Time `json:"pub_date"`

	TitleID  int    `json:"-"`
	AuthorID string `json:"-"`
}

// # Field Identifiers

const (
	FieldText  = "text"
	FieldScore = "score"
)

// # Validation Constraints

const (
	MinScore = 1
	MaxScore = 10
)
