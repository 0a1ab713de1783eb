// Copyright (c) 2026 Leafmark. All rights reserved.

package review

import (
	"context"
	"log/slog"

	"github.com/leafmark/leafmark/internal/platform/apperr"
	"github.com/leafmark/leafmark/internal/platform/validate"
	"github.com/leafmark/leafmark/pkg/pagination"
)

// # Comment Threads

/*
CreateComment validates and persists a comment under a review.

A reply's parent must exist, must belong to the same review, and must itself
be a top-level comment: threads are one level deep, which keeps reply listing
and cascade deletion a single bounded statement each. The insert and the
parent review's comment-count refresh commit together in the store.
*/
func (service *Service) CreateComment(context context.Context, reviewID, userID string, input CreateCommentInput) (*Comment, error) {
	validator := &validate.Validator{}
	validator.MinLen(FieldContent, input.Content, MinCommentLen).MaxLen(FieldContent, input.Content, MaxCommentLen)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if _, err := service.repo.GetReview(context, reviewID); err != nil {
		return nil, err
	}

	if input.ParentID != nil {
		parent, err := service.repo.GetComment(context, *input.ParentID)
		if err != nil {
			return nil, err
		}
		if parent.ReviewID != reviewID {
			return nil, validate.RequiredError(FieldParentID, "Parent comment belongs to a different review")
		}
		if parent.ParentID != nil {
			return nil, validate.RequiredError(FieldParentID, "Parent comment is itself a reply")
		}
	}

	comment := &Comment{
		ReviewID: reviewID,
		UserID:   userID,
		ParentID: input.ParentID,
		Content:  input.Content,
	}

	if err := service.repo.CreateComment(context, comment); err != nil {
		return nil, err
	}

	service.logger.Info("comment_created",
		slog.String("comment_id", comment.ID),
		slog.String("review_id", reviewID),
	)

	return service.repo.GetComment(context, comment.ID)
}

/*
DeleteComment removes a comment and its direct replies.

Only the comment author may delete it. The removal and the parent review's
comment-count refresh commit together in the store.
*/
func (service *Service) DeleteComment(context context.Context, commentID, requestingUserID string) error {
	comment, err := service.repo.GetComment(context, commentID)
	if err != nil {
		return err
	}

	if comment.UserID != requestingUserID {
		return apperr.Forbidden("Only the comment author can delete it")
	}

	if err := service.repo.DeleteComment(context, commentID, comment.ReviewID); err != nil {
		return err
	}

	service.logger.Warn("comment_deleted",
		slog.String("comment_id", commentID),
		slog.String("review_id", comment.ReviewID),
	)
	return nil
}

// ListComments returns a page of a review's top-level comments with direct
// replies attached, oldest first.
func (service *Service) ListComments(context context.Context, reviewID string, page pagination.Params) ([]*Comment, int, error) {
	if _, err := service.repo.GetReview(context, reviewID); err != nil {
		return nil, 0, err
	}

	return service.repo.ListComments(context, reviewID, page.Limit, page.Offset())
}
