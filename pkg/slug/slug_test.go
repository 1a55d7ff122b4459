// Copyright (c) 2026 Kritika. All rights reserved.
// Author: d.maksimov.dev@gmail.com

package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmaksimov/kritika/pkg/slug"
)

/*
TestFrom checks the name-to-slug transformation pipeline.
*/
func TestFrom(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"simple", "Films", "films"},
		{"spaces", "Science Fiction", "science-fiction"},
		{"accents", "Café Société", "cafe-societe"},
		{"punctuation", "Rock & Roll!", "rock-roll"},
		{"consecutive_separators", "a  --  b", "a-b"},
		{"leading_trailing", " -hello- ", "hello"},
		{"digits", "Top 100 of 2024", "top-100-of-2024"},
		{"empty", "", ""},
		{"only_symbols", "!!!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, slug.From(tt.input))
		})
	}
}
