// Copyright (c) 2026 Leafmark. All rights reserved.

// Package pagination provides shared types and helpers for API list endpoints.
//
// # Overview
//
// It standardizes how page-based navigation and sorting are requested via
// query parameters and how the resulting metadata is delivered in the API
// response envelope.
package pagination

import (
	"net/http"
	"strconv"
	"strings"
)

const (
	// DefaultLimit is the number of items per page if not specified.
	DefaultLimit = 20
	// MaxLimit is the upper bound for items per page to prevent system abuse.
	MaxLimit = 100
	// DefaultPage is the starting page (1-indexed).
	DefaultPage = 1
)

// Sort directions accepted by [FromRequest].
const (
	OrderAsc  = "ASC"
	OrderDesc = "DESC"
)

// Params holds the parsed page, limit, and sort from a request's query string.
type Params struct {
	Page  int
	Limit int

	// SortBy is the whitelisted column to order by. Empty means caller default.
	SortBy string
	// SortOrder is either [OrderAsc] or [OrderDesc].
	SortOrder string
}

// Offset returns the SQL OFFSET value derived from [Page] and [Limit].
func (p Params) Offset() int {
	if p.Page <= 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}

// Meta is the pagination metadata included in API list responses.
type Meta struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_prev"`
}

// NewMeta constructs pagination metadata for a response.
//
// It automatically calculates TotalPages based on the total count and limit,
// plus the HasNext/HasPrev navigation flags.
func NewMeta(page, limit, total int) Meta {
	totalPages := 0
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}

	return Meta{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}
}

// FromRequest parses "page", "limit", "sort_by", and "sort_order" query
// parameters from an HTTP request.
//
// # Clamping
//
// Invalid, negative, or excessive values are automatically clamped to
// [DefaultPage], [DefaultLimit], or [MaxLimit].
//
// # Sort Safety
//
// SortBy is only accepted if it appears in allowedSorts; anything else is
// dropped so raw query input never reaches an ORDER BY clause.
func FromRequest(r *http.Request, allowedSorts ...string) Params {
	page := parseIntParam(r, "page", DefaultPage)
	limit := parseIntParam(r, "limit", DefaultLimit)

	if page < 1 {
		page = DefaultPage
	}

	if limit < 1 || limit > MaxLimit {
		limit = DefaultLimit
	}

	sortBy := strings.ToLower(r.URL.Query().Get("sort_by"))
	if !contains(allowedSorts, sortBy) {
		sortBy = ""
	}

	sortOrder := strings.ToUpper(r.URL.Query().Get("sort_order"))
	if sortOrder != OrderAsc && sortOrder != OrderDesc {
		sortOrder = OrderDesc
	}

	return Params{Page: page, Limit: limit, SortBy: sortBy, SortOrder: sortOrder}
}

// parseIntParam parses a single integer query parameter with a fallback default.
func parseIntParam(r *http.Request, key string, defaultVal int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return defaultVal
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return defaultVal
	}

	return n
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
