// Copyright (c) 2026 Leafmark. All rights reserved.

package pagination_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/leafmark/leafmark/pkg/pagination"
)

/*
TestFromRequest_Clamping verifies invalid query values fall back to defaults.
*/
func TestFromRequest_Clamping(t *testing.T) {
	tests := []struct {
		name      string
		url       string
		wantPage  int
		wantLimit int
	}{
		{"defaults", "/reviews", 1, 20},
		{"explicit_values", "/reviews?page=3&limit=50", 3, 50},
		{"zero_page", "/reviews?page=0", 1, 20},
		{"negative_page", "/reviews?page=-5", 1, 20},
		{"limit_over_max", "/reviews?limit=500", 1, 20},
		{"garbage_input", "/reviews?page=abc&limit=xyz", 1, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest("GET", tt.url, nil)
			params := pagination.FromRequest(request)

			assert.Equal(t, tt.wantPage, params.Page)
			assert.Equal(t, tt.wantLimit, params.Limit)
		})
	}
}

/*
TestFromRequest_SortWhitelist verifies raw sort input never passes through
unless explicitly allowed.
*/
func TestFromRequest_SortWhitelist(t *testing.T) {
	request := httptest.NewRequest("GET", "/reviews?sort_by=rating&sort_order=asc", nil)

	params := pagination.FromRequest(request, "rating", "createdat")
	assert.Equal(t, "rating", params.SortBy)
	assert.Equal(t, pagination.OrderAsc, params.SortOrder)

	// Unlisted column is dropped, bad order falls back to DESC.
	request = httptest.NewRequest("GET", "/reviews?sort_by=drop+table&sort_order=sideways", nil)
	params = pagination.FromRequest(request, "rating")
	assert.Empty(t, params.SortBy)
	assert.Equal(t, pagination.OrderDesc, params.SortOrder)
}

func TestParams_Offset(t *testing.T) {
	assert.Equal(t, 0, pagination.Params{Page: 1, Limit: 20}.Offset())
	assert.Equal(t, 20, pagination.Params{Page: 2, Limit: 20}.Offset())
	assert.Equal(t, 90, pagination.Params{Page: 10, Limit: 10}.Offset())
	assert.Equal(t, 0, pagination.Params{Page: 0, Limit: 20}.Offset())
}

func TestNewMeta(t *testing.T) {
	meta := pagination.NewMeta(2, 20, 45)

	assert.Equal(t, 3, meta.TotalPages)
	assert.True(t, meta.HasNext)
	assert.True(t, meta.HasPrev)

	last := pagination.NewMeta(3, 20, 45)
	assert.False(t, last.HasNext)

	empty := pagination.NewMeta(1, 20, 0)
	assert.Equal(t, 0, empty.TotalPages)
	assert.False(t, empty.HasNext)
	assert.False(t, empty.HasPrev)
}
