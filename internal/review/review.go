// Copyright (c) 2026 Leafmark. All rights reserved.

/*
Package review implements the review lifecycle and the rating-aggregation
consistency mechanism, the consistency core of the platform.

Architecture:

  - Lifecycle: create/update/delete of reviews and comments as atomic units
    of work, with ownership enforcement.
  - Aggregation: catalog.book.averagerating/ratingscount and
    review.review.commentscount are cached aggregates, recomputed from the
    current child rows inside the same transaction as the triggering write.
  - Listing: paginated, filtered, sorted retrieval plus free-text search and
    per-user statistics.

A reader must never observe a review whose book aggregate does not reflect
it; every multi-row mutation commits or rolls back as a whole.
*/
package review

import (
	"time"

	"github.com/leafmark/leafmark/internal/catalog/book"
	"github.com/leafmark/leafmark/internal/users/user"
)

// Review is a reader's rating and write-up for a single book.
//
// # Invariants
//
// At most one review exists per (UserID, BookID) pair. CommentsCount always
// equals the number of comment rows referencing this review.
type Review struct {
	ID             string `json:"id"`
	UserID         string `json:"user_id"`
	BookID         string `json:"book_id"`
	Rating         int    `json:"rating"`
	Title          string `json:"title"`
	Content        string `json:"content"`
	SpoilerWarning bool   `json:"spoiler_warning"`
	LikesCount     int    `json:"likes_count"`
	CommentsCount  int    `json:"comments_count"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Minimal projections of the owning user and reviewed book,
	// populated on read paths only.
	User *user.Projection `json:"user,omitempty"`
	Book *book.Projection `json:"book,omitempty"`
}

// Validation bounds for review fields.
const (
	MinRating     = 1
	MaxRating     = 5
	MaxTitleLen   = 200
	MinContentLen = 10
	MaxContentLen = 5000
)

// CreateReviewInput carries the client-supplied fields for a new review.
//
// SpoilerWarning is a pointer so "not supplied" can be told apart from
// "explicitly false": absent values are derived by the spoiler classifier.
type CreateReviewInput struct {
	BookID         string `json:"book_id"`
	Rating         int    `json:"rating"`
	Title          string `json:"title"`
	Content        string `json:"content"`
	SpoilerWarning *bool  `json:"spoiler_warning"`
}

// UpdateReviewInput carries a partial update; nil fields keep current values.
type UpdateReviewInput struct {
	Rating         *int    `json:"rating"`
	Title          *string `json:"title"`
	Content        *string `json:"content"`
	SpoilerWarning *bool   `json:"spoiler_warning"`
}

// Filter holds the parameters for a paginated review listing.
type Filter struct {
	BookID         string
	UserID         string
	Rating         *int  // exact match
	MinRating      *int  // inclusive lower bound
	MaxRating      *int  // inclusive upper bound
	SpoilerWarning *bool // tri-state: nil means "any"
}

// Sortable column identifiers accepted by the listing interface.
const (
	SortByCreatedAt  = "createdat"
	SortByRating     = "rating"
	SortByLikesCount = "likescount"
)

// Stats summarizes one user's reviewing activity.
type Stats struct {
	TotalReviews  int     `json:"total_reviews"`
	AverageRating float64 `json:"average_rating"`
	// RatingDistribution always carries all five keys, zero-valued when unused.
	RatingDistribution map[int]int `json:"rating_distribution"`
}

// ModerationFlag is a reader's report that a review needs moderator attention.
type ModerationFlag struct {
	ID         string    `json:"id"`
	ReviewID   string    `json:"review_id"`
	ReporterID string    `json:"reporter_id"`
	Reason     string    `json:"reason"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

// Moderation flag statuses.
const (
	FlagStatusOpen     = "open"
	FlagStatusResolved = "resolved"
)

// Global field names for validation
const (
	FieldRating         = "rating"
	FieldTitle          = "title"
	FieldContent        = "content"
	FieldReason         = "reason"
	FieldParentID       = "parent_id"
	FieldSpoilerWarning = "spoiler_warning"
)
