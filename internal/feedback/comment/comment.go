// Copyright (c) 2026 Kritika. All rights reserved.
// Author: d.maksimov.dev@gmail.com

package comment

import "time"

// Comment is a reply to a review. PubDate is server-assigned at creation.
type Comment struct {
	ID             int       `json:"id"`
	Text           string    `json:"text"`
	AuthorUsername string    `json:"author"`
	PubDate        time.Time `json:"pub_date"`

	ReviewID int    `json:"-"`
	AuthorID string `json:"-"`
}

const FieldText = "text"
