// Copyright (c) 2026 Leafmark. All rights reserved.

package schema

// ReviewCommentTable represents the 'review.comment' table
type ReviewCommentTable struct {
	Table      string
	ID         string
	ReviewID   string
	UserID     string
	ParentID   string
	Content    string
	LikesCount string
	CreatedAt  string
	UpdatedAt  string
}

// ReviewComment is the schema definition for review.comment
var ReviewComment = ReviewCommentTable{
	Table:      "review.comment",
	ID:         "id",
	ReviewID:   "reviewid",
	UserID:     "userid",
	ParentID:   "parentid",
	Content:    "content",
	LikesCount: "likescount",
	CreatedAt:  "createdat",
	UpdatedAt:  "updatedat",
}
