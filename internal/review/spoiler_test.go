// Copyright (c) 2026 Leafmark. All rights reserved.

package review_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/leafmark/leafmark/internal/review"
)

/*
TestKeywordClassifier covers keyword matching, case folding, and substring
behavior of the spoiler heuristic.
*/
func TestKeywordClassifier(t *testing.T) {
	classifier := review.NewKeywordClassifier()

	tests := []struct {
		name    string
		content string
		want    bool
	}{
		{"clean_content", "A beautifully written and memorable book.", false},
		{"keyword_dies", "The protagonist dies in chapter three.", true},
		{"keyword_ending", "The ending completely changes the story.", true},
		{"uppercase_keyword", "WHAT A TWIST that was!", true},
		{"keyword_inside_word", "The gardener tends flowerbeds daily.", false},
		{"explicit_spoiler_word", "Spoiler alert: skip this paragraph.", true},
		{"empty_content", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classifier.IsSpoiler(tt.content))
		})
	}
}
