// Copyright (c) 2026 Leafmark. All rights reserved.

package review

import "context"

// Repository is the storage contract for the review domain.
//
// # Transaction Discipline
//
// Every mutating method that touches more than one row executes inside a
// single database transaction: the entity write and the dependent aggregate
// recompute become visible atomically, or not at all.
type Repository interface {
	// Review lifecycle
	CreateReview(context context.Context, r *Review) error
	UpdateReview(context context.Context, r *Review) error
	DeleteReview(context context.Context, reviewID, bookID string) error
	GetReview(context context.Context, id string) (*Review, error)

	// Listing & statistics
	ListReviews(context context.Context, f Filter, sortBy, sortOrder string, limit, offset int) ([]*Review, int, error)
	SearchReviews(context context.Context, query string, limit, offset int) ([]*Review, int, error)
	UserReviewStats(context context.Context, userID string) (*Stats, error)

	// Comment threads
	CreateComment(context context.Context, c *Comment) error
	DeleteComment(context context.Context, commentID, reviewID string) error
	GetComment(context context.Context, id string) (*Comment, error)
	ListComments(context context.Context, reviewID string, limit, offset int) ([]*Comment, int, error)

	// Moderation
	CreateModerationFlag(context context.Context, f *ModerationFlag) error
}
