// Copyright (c) 2026 Leafmark. All rights reserved.

package schema

// ReviewReviewTable represents the 'review.review' table
type ReviewReviewTable struct {
	Table          string
	ID             string
	UserID         string
	BookID         string
	Rating         string
	Title          string
	Content        string
	SpoilerWarning string
	LikesCount     string
	CommentsCount  string
	CreatedAt      string
	UpdatedAt      string
}

// ReviewReview is the schema definition for review.review
var ReviewReview = ReviewReviewTable{
	Table:          "review.review",
	ID:             "id",
	UserID:         "userid",
	BookID:         "bookid",
	Rating:         "rating",
	Title:          "title",
	Content:        "content",
	SpoilerWarning: "spoilerwarning",
	LikesCount:     "likescount",
	CommentsCount:  "commentscount",
	CreatedAt:      "createdat",
	UpdatedAt:      "updatedat",
}
