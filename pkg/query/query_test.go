// Copyright (c) 2026 Kritika. All rights reserved.
// Author: d.maksimov.dev@gmail.com

package query_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmaksimov/kritika/pkg/query"
)

/*
TestInt checks graceful degradation of malformed integer parameters.
*/
func TestInt(t *testing.T) {
	r := httptest.NewRequest("GET", "/titles?year=1979&bad=abc", nil)

	assert.Equal(t, 1979, query.Int(r, "year"))
	assert.Equal(t, 0, query.Int(r, "bad"))
	assert.Equal(t, 0, query.Int(r, "absent"))
}

/*
TestString checks whitespace trimming.
*/
func TestString(t *testing.T) {
	r := httptest.NewRequest("GET", "/titles?name=+stalker+", nil)

	assert.Equal(t, "stalker", query.String(r, "name"))
	assert.Equal(t, "", query.String(r, "absent"))
}

/*
TestStringSlice checks comma splitting as used by the multi-genre filter.
*/
func TestStringSlice(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{"single", "drama", []string{"drama"}},
		{"multiple", "drama,comedy", []string{"drama", "comedy"}},
		{"whitespace", " drama , comedy ", []string{"drama", "comedy"}},
		{"empty_entries", "drama,,comedy,", []string{"drama", "comedy"}},
		{"empty", "", nil},
		{"only_commas", ",,", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, query.StringSlice(tt.input))
		})
	}
}
