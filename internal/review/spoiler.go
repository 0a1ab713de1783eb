// Copyright (c) 2026 Leafmark. All rights reserved.

package review

import "strings"

// SpoilerClassifier decides whether review content discloses plot details.
//
// It is a heuristic, not a correctness-bearing invariant, so it lives behind
// this single-method interface and can be swapped or disabled without
// touching the lifecycle service.
type SpoilerClassifier interface {
	IsSpoiler(content string) bool
}

// spoilerKeywords is the fixed set of terms that signal plot disclosure.
var spoilerKeywords = []string{
	"spoiler",
	"ending",
	"dies",
	"death",
	"twist",
	"climax",
	"reveal",
	"killed",
}

// KeywordClassifier flags content containing any spoiler keyword,
// case-insensitively.
type KeywordClassifier struct{}

// NewKeywordClassifier returns the default keyword-based classifier.
func NewKeywordClassifier() KeywordClassifier {
	return KeywordClassifier{}
}

// IsSpoiler implements [SpoilerClassifier].
func (KeywordClassifier) IsSpoiler(content string) bool {
	lowered := strings.ToLower(content)
	for _, keyword := range spoilerKeywords {
		if strings.Contains(lowered, keyword) {
			return true
		}
	}
	return false
}
