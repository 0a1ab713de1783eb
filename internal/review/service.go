// Copyright (c) 2026 Leafmark. All rights reserved.

package review

import (
	"context"
	"log/slog"
	"math"

	"github.com/leafmark/leafmark/internal/catalog/book"
	"github.com/leafmark/leafmark/internal/platform/apperr"
	"github.com/leafmark/leafmark/internal/platform/validate"
	"github.com/leafmark/leafmark/internal/users/user"
	"github.com/leafmark/leafmark/pkg/pagination"
	"github.com/leafmark/leafmark/pkg/pointer"
)

// Service orchestrates the review lifecycle.
//
// Every write path funnels through here so that validation, ownership checks,
// and the aggregate recompute discipline can never be bypassed.
type Service struct {
	repo       Repository
	users      user.Repository
	books      book.Repository
	classifier SpoilerClassifier
	cache      *SearchCache
	logger     *slog.Logger
}

func NewService(repo Repository, users user.Repository, books book.Repository, classifier SpoilerClassifier, cache *SearchCache, logger *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		users:      users,
		books:      books,
		classifier: classifier,
		cache:      cache,
		logger:     logger,
	}
}

// # Review Lifecycle

/*
CreateReview validates and persists a new review.

Flow:
 1. Field validation (rating range, title/content length bounds).
 2. Existence checks on the requesting user and the target book.
 3. Spoiler derivation when the flag was not supplied.
 4. Transactional insert + book aggregate recompute (in the store).

The duplicate check lives in the store's transaction; the unique index is
the concurrency backstop. Foreign keys backstop the existence checks the
same way.
*/
func (service *Service) CreateReview(context context.Context, userID string, input CreateReviewInput) (*Review, error) {
	if err := validateReviewFields(input.Rating, input.Title, input.Content); err != nil {
		return nil, err
	}

	if _, err := service.users.GetUser(context, userID); err != nil {
		return nil, err
	}
	if _, err := service.books.GetBook(context, input.BookID); err != nil {
		return nil, err
	}

	spoiler := false
	if input.SpoilerWarning != nil {
		spoiler = *input.SpoilerWarning
	} else {
		spoiler = service.classifier.IsSpoiler(input.Content)
	}

	review := &Review{
		UserID:         userID,
		BookID:         input.BookID,
		Rating:         input.Rating,
		Title:          input.Title,
		Content:        input.Content,
		SpoilerWarning: spoiler,
	}

	if err := service.repo.CreateReview(context, review); err != nil {
		return nil, err
	}

	service.cache.Invalidate(context)
	service.logger.Info("review_created",
		slog.String("review_id", review.ID),
		slog.String("book_id", review.BookID),
		slog.Int("rating", review.Rating),
	)

	return service.repo.GetReview(context, review.ID)
}

/*
UpdateReview merges a partial update over the stored review and persists the
result.

Ownership is enforced before anything else: only the creating user may touch
the review. If the content changed and the spoiler flag was not explicitly
supplied, the flag is re-derived from the new content; otherwise the stored
flag is preserved.
*/
func (service *Service) UpdateReview(context context.Context, reviewID, requestingUserID string, input UpdateReviewInput) (*Review, error) {
	review, err := service.repo.GetReview(context, reviewID)
	if err != nil {
		return nil, err
	}

	if review.UserID != requestingUserID {
		return nil, apperr.Forbidden("Only the review author can modify it")
	}

	review.Rating = pointer.Fallback(input.Rating, review.Rating)
	review.Title = pointer.Fallback(input.Title, review.Title)

	contentChanged := false
	if input.Content != nil && *input.Content != review.Content {
		review.Content = *input.Content
		contentChanged = true
	}

	switch {
	case input.SpoilerWarning != nil:
		review.SpoilerWarning = *input.SpoilerWarning
	case contentChanged:
		review.SpoilerWarning = service.classifier.IsSpoiler(review.Content)
	}

	// Re-validate the merged result with the same rules as create.
	if err := validateReviewFields(review.Rating, review.Title, review.Content); err != nil {
		return nil, err
	}

	if err := service.repo.UpdateReview(context, review); err != nil {
		return nil, err
	}

	service.cache.Invalidate(context)
	service.logger.Info("review_updated", slog.String("review_id", review.ID))

	return service.repo.GetReview(context, review.ID)
}

/*
DeleteReview removes a review, its comments, and refreshes the book aggregate
as one unit of work. Ownership rules match UpdateReview.
*/
func (service *Service) DeleteReview(context context.Context, reviewID, requestingUserID string) error {
	review, err := service.repo.GetReview(context, reviewID)
	if err != nil {
		return err
	}

	if review.UserID != requestingUserID {
		return apperr.Forbidden("Only the review author can delete it")
	}

	if err := service.repo.DeleteReview(context, reviewID, review.BookID); err != nil {
		return err
	}

	service.cache.Invalidate(context)
	service.logger.Warn("review_deleted",
		slog.String("review_id", reviewID),
		slog.String("book_id", review.BookID),
	)
	return nil
}

// GetReview fetches a single review with its projections.
func (service *Service) GetReview(context context.Context, id string) (*Review, error) {
	return service.repo.GetReview(context, id)
}

// # Listing & Statistics

// ListReviews returns a filtered, sorted page of reviews.
func (service *Service) ListReviews(context context.Context, filter Filter, page pagination.Params) ([]*Review, int, error) {
	if err := validateFilter(filter); err != nil {
		return nil, 0, err
	}

	return service.repo.ListReviews(context, filter, page.SortBy, page.SortOrder, page.Limit, page.Offset())
}

// SearchReviews matches the query against titles and content, consulting the
// best-effort cache first.
func (service *Service) SearchReviews(context context.Context, query string, page pagination.Params) ([]*Review, int, error) {
	if query == "" {
		return nil, 0, validate.RequiredError("q", "Search query is required")
	}

	if reviews, total, ok := service.cache.Get(context, query, page.Page, page.Limit); ok {
		return reviews, total, nil
	}

	reviews, total, err := service.repo.SearchReviews(context, query, page.Limit, page.Offset())
	if err != nil {
		return nil, 0, err
	}

	service.cache.Set(context, query, page.Page, page.Limit, reviews, total)
	return reviews, total, nil
}

// UserReviewStats returns one user's review totals, with the average rounded
// to two decimals and all five distribution keys always present.
func (service *Service) UserReviewStats(context context.Context, userID string) (*Stats, error) {
	if _, err := service.users.GetUser(context, userID); err != nil {
		return nil, err
	}

	stats, err := service.repo.UserReviewStats(context, userID)
	if err != nil {
		return nil, err
	}

	stats.AverageRating = math.Round(stats.AverageRating*100) / 100
	return stats, nil
}

// # Moderation

// FlagReview records a moderation report against a review.
func (service *Service) FlagReview(context context.Context, reviewID, reporterID, reason string) (*ModerationFlag, error) {
	validator := &validate.Validator{}
	validator.Required(FieldReason, reason).MaxLen(FieldReason, reason, 500)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if _, err := service.repo.GetReview(context, reviewID); err != nil {
		return nil, err
	}

	flag := &ModerationFlag{
		ReviewID:   reviewID,
		ReporterID: reporterID,
		Reason:     reason,
	}

	if err := service.repo.CreateModerationFlag(context, flag); err != nil {
		return nil, err
	}

	service.logger.Info("review_flagged",
		slog.String("review_id", reviewID),
		slog.String("flag_id", flag.ID),
	)
	return flag, nil
}

// # Validation Helpers

// validateReviewFields applies the create-time field rules. Update paths run
// the same rules against the merged result.
func validateReviewFields(rating int, title, content string) error {
	validator := &validate.Validator{}

	validator.Range(FieldRating, rating, MinRating, MaxRating)
	validator.Required(FieldTitle, title).MaxLen(FieldTitle, title, MaxTitleLen)
	validator.MinLen(FieldContent, content, MinContentLen).MaxLen(FieldContent, content, MaxContentLen)

	return validator.Err()
}

// validateFilter rejects out-of-range rating bounds before they reach SQL.
func validateFilter(filter Filter) error {
	validator := &validate.Validator{}

	if filter.Rating != nil {
		validator.Range(FieldRating, *filter.Rating, MinRating, MaxRating)
	}
	if filter.MinRating != nil {
		validator.Range("min_rating", *filter.MinRating, MinRating, MaxRating)
	}
	if filter.MaxRating != nil {
		validator.Range("max_rating", *filter.MaxRating, MinRating, MaxRating)
	}

	return validator.Err()
}
