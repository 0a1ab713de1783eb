// Copyright (c) 2026 Leafmark. All rights reserved.

package review

import (
	"time"

	"github.com/leafmark/leafmark/internal/users/user"
)

// Comment is a threaded reply under a review.
//
// Threads are modeled as a parent-id link rather than nested structures;
// replies are fetched by parent lookup, never by recursive descent.
type Comment struct {
	ID         string  `json:"id"`
	ReviewID   string  `json:"review_id"`
	UserID     string  `json:"user_id"`
	ParentID   *string `json:"parent_id"`
	Content    string  `json:"content"`
	LikesCount int     `json:"likes_count"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Minimal projection of the comment author, populated on read paths.
	User *user.Projection `json:"user,omitempty"`

	// Replies holds the direct children when listing a thread.
	Replies []*Comment `json:"replies,omitempty"`
}

// Validation bounds for comment fields.
const (
	MinCommentLen = 1
	MaxCommentLen = 1000
)

// CreateCommentInput carries the client-supplied fields for a new comment.
type CreateCommentInput struct {
	Content  string  `json:"content"`
	ParentID *string `json:"parent_id"`
}
