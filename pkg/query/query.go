// Copyright (c) 2026 Kritika. All rights reserved.
// Author: d.maksimov.dev@gmail.com

// Package query parses loosely-typed URL query parameters into Go values.
// Malformed entries are dropped rather than rejected so that list filters
// degrade gracefully.
package query

import (
	"net/http"
	"strconv"
	"strings"
)

// Int parses a single integer query parameter, returning 0 when absent
// or malformed.
func Int(r *http.Request, key string) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return 0
	}
	v, _ := strconv.Atoi(raw)
	return v
}

// String returns a trimmed query parameter value.
func String(r *http.Request, key string) string {
	return strings.TrimSpace(r.URL.Query().Get(key))
}

// StringSlice parses a single comma-separated query string
// into a trimmed slice of strings.
func StringSlice(val string) []string {
	if val == "" {
		return nil
	}
	var res []string
	for _, v := range strings.Split(val, ",") {
		clean := strings.TrimSpace(v)
		if clean != "" {
			res = append(res, clean)
		}
	}
	return res
}
