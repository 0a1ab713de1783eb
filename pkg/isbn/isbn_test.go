// Copyright (c) 2026 Leafmark. All rights reserved.

package isbn_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/leafmark/leafmark/pkg/isbn"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"hyphens_stripped", "0-306-40615-2", "0306406152"},
		{"spaces_stripped", "978 0306406157", "9780306406157"},
		{"check_char_uppercased", "097522980x", "097522980X"},
		{"already_clean", "9780306406157", "9780306406157"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isbn.Normalize(tt.raw))
		})
	}
}

func TestIsValid(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want bool
	}{
		{"isbn10_valid", "0306406152", true},
		{"isbn10_valid_hyphenated", "0-306-40615-2", true},
		{"isbn10_valid_x_check", "097522980X", true},
		{"isbn10_lowercase_x_check", "097522980x", true},
		{"isbn10_bad_checksum", "0306406153", false},
		{"isbn10_x_not_last", "09752X9800", false},
		{"isbn13_valid", "9780306406157", true},
		{"isbn13_valid_hyphenated", "978-0-306-40615-7", true},
		{"isbn13_bad_checksum", "9780306406158", false},
		{"isbn13_with_letter", "978030640615X", false},
		{"wrong_length", "12345", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isbn.IsValid(tt.raw))
		})
	}
}
