// Copyright (c) 2026 Leafmark. All rights reserved.

package review_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leafmark/leafmark/internal/catalog/book"
	"github.com/leafmark/leafmark/internal/platform/apperr"
	"github.com/leafmark/leafmark/internal/review"
	"github.com/leafmark/leafmark/internal/users/user"
	"github.com/leafmark/leafmark/pkg/pagination"
	"github.com/leafmark/leafmark/pkg/uuidv7"
)

// # Test Fixtures

// fakeRepository is an in-memory [review.Repository] that mirrors the store's
// transactional semantics: every mutation recomputes the dependent aggregate,
// and a simulated recompute failure leaves no partial state behind.
type fakeRepository struct {
	reviews  map[string]*review.Review
	comments map[string]*review.Comment
	flags    []*review.ModerationFlag

	// books is shared with the fake book repository so aggregate
	// recomputes are observable through book reads.
	books map[string]*book.Book

	// failRecompute simulates the aggregate step failing mid-transaction.
	failRecompute bool
}

var errRecompute = errors.New("recompute failed")

func newFakeRepository(books map[string]*book.Book) *fakeRepository {
	return &fakeRepository{
		reviews:  make(map[string]*review.Review),
		comments: make(map[string]*review.Comment),
		books:    books,
	}
}

func (f *fakeRepository) recomputeBook(bookID string) {
	b := f.books[bookID]
	if b == nil {
		return
	}

	count, sum := 0, 0
	for _, r := range f.reviews {
		if r.BookID == bookID {
			count++
			sum += r.Rating
		}
	}

	b.RatingsCount = count
	b.AverageRating = 0
	if count > 0 {
		b.AverageRating = float64(sum) / float64(count)
	}
}

func (f *fakeRepository) recomputeComments(reviewID string) {
	r := f.reviews[reviewID]
	if r == nil {
		return
	}

	count := 0
	for _, c := range f.comments {
		if c.ReviewID == reviewID {
			count++
		}
	}
	r.CommentsCount = count
}

func (f *fakeRepository) CreateReview(_ context.Context, r *review.Review) error {
	for _, existing := range f.reviews {
		if existing.UserID == r.UserID && existing.BookID == r.BookID {
			return apperr.Conflict("User already has a review for this book")
		}
	}
	if f.failRecompute {
		return errRecompute
	}

	r.ID = uuidv7.New()
	r.CreatedAt = time.Now()
	r.UpdatedAt = r.CreatedAt

	stored := *r
	f.reviews[r.ID] = &stored
	f.recomputeBook(r.BookID)
	return nil
}

func (f *fakeRepository) UpdateReview(_ context.Context, r *review.Review) error {
	if _, ok := f.reviews[r.ID]; !ok {
		return apperr.NotFound("Review")
	}
	if f.failRecompute {
		return errRecompute
	}

	r.UpdatedAt = time.Now()
	stored := *r
	f.reviews[r.ID] = &stored
	f.recomputeBook(r.BookID)
	return nil
}

func (f *fakeRepository) DeleteReview(_ context.Context, reviewID, bookID string) error {
	if _, ok := f.reviews[reviewID]; !ok {
		return apperr.NotFound("Review")
	}
	if f.failRecompute {
		return errRecompute
	}

	for id, c := range f.comments {
		if c.ReviewID == reviewID {
			delete(f.comments, id)
		}
	}
	delete(f.reviews, reviewID)
	f.recomputeBook(bookID)
	return nil
}

func (f *fakeRepository) GetReview(_ context.Context, id string) (*review.Review, error) {
	r, ok := f.reviews[id]
	if !ok {
		return nil, apperr.NotFound("Review")
	}
	clone := *r
	return &clone, nil
}

func (f *fakeRepository) ListReviews(_ context.Context, filter review.Filter, _, _ string, limit, offset int) ([]*review.Review, int, error) {
	var matched []*review.Review
	for _, r := range f.reviews {
		if filter.BookID != "" && r.BookID != filter.BookID {
			continue
		}
		if filter.UserID != "" && r.UserID != filter.UserID {
			continue
		}
		if filter.Rating != nil && r.Rating != *filter.Rating {
			continue
		}
		if filter.MinRating != nil && r.Rating < *filter.MinRating {
			continue
		}
		if filter.MaxRating != nil && r.Rating > *filter.MaxRating {
			continue
		}
		if filter.SpoilerWarning != nil && r.SpoilerWarning != *filter.SpoilerWarning {
			continue
		}
		clone := *r
		matched = append(matched, &clone)
	}

	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	total := len(matched)
	if offset >= total {
		return nil, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return matched[offset:end], total, nil
}

func (f *fakeRepository) SearchReviews(_ context.Context, query string, limit, offset int) ([]*review.Review, int, error) {
	needle := strings.ToLower(query)
	var matched []*review.Review
	for _, r := range f.reviews {
		if strings.Contains(strings.ToLower(r.Title), needle) || strings.Contains(strings.ToLower(r.Content), needle) {
			clone := *r
			matched = append(matched, &clone)
		}
	}

	total := len(matched)
	if offset >= total {
		return nil, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return matched[offset:end], total, nil
}

func (f *fakeRepository) UserReviewStats(_ context.Context, userID string) (*review.Stats, error) {
	stats := &review.Stats{RatingDistribution: map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}}

	sum := 0
	for _, r := range f.reviews {
		if r.UserID != userID {
			continue
		}
		stats.TotalReviews++
		stats.RatingDistribution[r.Rating]++
		sum += r.Rating
	}
	if stats.TotalReviews > 0 {
		stats.AverageRating = float64(sum) / float64(stats.TotalReviews)
	}
	return stats, nil
}

func (f *fakeRepository) CreateComment(_ context.Context, c *review.Comment) error {
	if f.failRecompute {
		return errRecompute
	}

	c.ID = uuidv7.New()
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt

	stored := *c
	f.comments[c.ID] = &stored
	f.recomputeComments(c.ReviewID)
	return nil
}

func (f *fakeRepository) DeleteComment(_ context.Context, commentID, reviewID string) error {
	if _, ok := f.comments[commentID]; !ok {
		return apperr.NotFound("Comment")
	}

	for id, c := range f.comments {
		if c.ParentID != nil && *c.ParentID == commentID {
			delete(f.comments, id)
		}
	}
	delete(f.comments, commentID)
	f.recomputeComments(reviewID)
	return nil
}

func (f *fakeRepository) GetComment(_ context.Context, id string) (*review.Comment, error) {
	c, ok := f.comments[id]
	if !ok {
		return nil, apperr.NotFound("Comment")
	}
	clone := *c
	return &clone, nil
}

func (f *fakeRepository) ListComments(_ context.Context, reviewID string, limit, offset int) ([]*review.Comment, int, error) {
	var parents []*review.Comment
	for _, c := range f.comments {
		if c.ReviewID == reviewID && c.ParentID == nil {
			clone := *c
			parents = append(parents, &clone)
		}
	}
	sort.Slice(parents, func(i, j int) bool { return parents[i].ID < parents[j].ID })

	for _, parent := range parents {
		for _, c := range f.comments {
			if c.ParentID != nil && *c.ParentID == parent.ID {
				clone := *c
				parent.Replies = append(parent.Replies, &clone)
			}
		}
	}

	total := len(parents)
	if offset >= total {
		return nil, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return parents[offset:end], total, nil
}

func (f *fakeRepository) CreateModerationFlag(_ context.Context, flag *review.ModerationFlag) error {
	flag.ID = uuidv7.New()
	flag.Status = review.FlagStatusOpen
	flag.CreatedAt = time.Now()
	f.flags = append(f.flags, flag)
	return nil
}

// fakeUsers implements [user.Repository].
type fakeUsers struct {
	users map[string]*user.User
}

func (f *fakeUsers) GetUser(_ context.Context, id string) (*user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	return u, nil
}

// fakeBooks implements [book.Repository] over the same map the review
// repository recomputes into.
type fakeBooks struct {
	books map[string]*book.Book
}

func (f *fakeBooks) GetBook(_ context.Context, id string) (*book.Book, error) {
	b, ok := f.books[id]
	if !ok {
		return nil, apperr.NotFound("Book")
	}
	return b, nil
}

func (f *fakeBooks) ListBooks(_ context.Context, _ book.Filter, _, _ int) ([]*book.Book, int, error) {
	return nil, 0, nil
}

func (f *fakeBooks) GetBookBySlug(_ context.Context, _ string) (*book.Book, error) {
	return nil, apperr.NotFound("Book")
}

func (f *fakeBooks) CreateBook(_ context.Context, _ *book.Book) error { return nil }
func (f *fakeBooks) UpdateBook(_ context.Context, _ *book.Book) error { return nil }

// # Harness

type harness struct {
	service *review.Service
	repo    *fakeRepository
	books   map[string]*book.Book
}

const (
	userAlice = "0191a001-0000-7000-8000-000000000001"
	userBob   = "0191a001-0000-7000-8000-000000000002"
	bookDune  = "0191b001-0000-7000-8000-000000000001"
)

func newHarness(t *testing.T) *harness {
	t.Helper()

	books := map[string]*book.Book{
		bookDune: {ID: bookDune, Title: "Dune", Slug: "dune", Authors: []string{"Frank Herbert"}},
	}
	users := map[string]*user.User{
		userAlice: {ID: userAlice, Username: "alice"},
		userBob:   {ID: userBob, Username: "bob"},
	}

	repo := newFakeRepository(books)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	service := review.NewService(
		repo,
		&fakeUsers{users: users},
		&fakeBooks{books: books},
		review.NewKeywordClassifier(),
		nil, // cache disabled; a nil SearchCache is a valid no-op
		logger,
	)

	return &harness{service: service, repo: repo, books: books}
}

func (h *harness) createReview(t *testing.T, userID string, rating int, title, content string) *review.Review {
	t.Helper()

	r, err := h.service.CreateReview(context.Background(), userID, review.CreateReviewInput{
		BookID:  bookDune,
		Rating:  rating,
		Title:   title,
		Content: content,
	})
	require.NoError(t, err)
	return r
}

func defaultPage() pagination.Params {
	return pagination.Params{Page: 1, Limit: 20, SortOrder: pagination.OrderDesc}
}

// # Aggregate Consistency

/*
TestService_AggregateLifecycle walks a book through the full review lifecycle
and asserts the cached aggregate tracks the live rows at every step.
*/
func TestService_AggregateLifecycle(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	// Alice rates 5: average 5.0, count 1.
	first := h.createReview(t, userAlice, 5, "Masterpiece", "A wonderful story from start to finish.")
	assert.Equal(t, 5.0, h.books[bookDune].AverageRating)
	assert.Equal(t, 1, h.books[bookDune].RatingsCount)

	// Bob rates 3: average 4.0, count 2.
	h.createReview(t, userBob, 3, "Decent", "Good worldbuilding but slow in the middle.")
	assert.Equal(t, 4.0, h.books[bookDune].AverageRating)
	assert.Equal(t, 2, h.books[bookDune].RatingsCount)

	// Alice drops her rating to 1: average 2.0.
	newRating := 1
	_, err := h.service.UpdateReview(ctx, first.ID, userAlice, review.UpdateReviewInput{Rating: &newRating})
	require.NoError(t, err)
	assert.Equal(t, 2.0, h.books[bookDune].AverageRating)
	assert.Equal(t, 2, h.books[bookDune].RatingsCount)

	// Alice deletes: only Bob's 3 remains.
	require.NoError(t, h.service.DeleteReview(ctx, first.ID, userAlice))
	assert.Equal(t, 3.0, h.books[bookDune].AverageRating)
	assert.Equal(t, 1, h.books[bookDune].RatingsCount)

	// Deleting the same review again finds nothing.
	err = h.service.DeleteReview(ctx, first.ID, userAlice)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}

/*
TestService_CreateReview_Duplicate verifies the one-review-per-user-per-book
rule surfaces as a CONFLICT.
*/
func TestService_CreateReview_Duplicate(t *testing.T) {
	h := newHarness(t)

	h.createReview(t, userAlice, 4, "First take", "Really enjoyed this one overall.")

	_, err := h.service.CreateReview(context.Background(), userAlice, review.CreateReviewInput{
		BookID:  bookDune,
		Rating:  2,
		Title:   "Second take",
		Content: "Changed my mind on a second read.",
	})
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "CONFLICT", ae.Code)

	// The failed create must not have disturbed the aggregate.
	assert.Equal(t, 1, h.books[bookDune].RatingsCount)
	assert.Equal(t, 4.0, h.books[bookDune].AverageRating)
}

/*
TestService_CreateReview_Atomicity simulates the aggregate recompute failing
and asserts no partial state leaks out.
*/
func TestService_CreateReview_Atomicity(t *testing.T) {
	h := newHarness(t)
	h.repo.failRecompute = true

	_, err := h.service.CreateReview(context.Background(), userAlice, review.CreateReviewInput{
		BookID:  bookDune,
		Rating:  5,
		Title:   "Lost to a rollback",
		Content: "This review should never become visible.",
	})
	require.Error(t, err)

	assert.Empty(t, h.repo.reviews)
	assert.Equal(t, 0, h.books[bookDune].RatingsCount)
	assert.Equal(t, 0.0, h.books[bookDune].AverageRating)
}

// # Validation & Ownership

func TestService_CreateReview_Validation(t *testing.T) {
	h := newHarness(t)

	tests := []struct {
		name    string
		rating  int
		title   string
		content string
	}{
		{"rating_too_low", 0, "Fine title", "Content long enough to pass."},
		{"rating_too_high", 6, "Fine title", "Content long enough to pass."},
		{"missing_title", 3, "", "Content long enough to pass."},
		{"content_too_short", 3, "Fine title", "Too short"},
		{"title_too_long", 3, strings.Repeat("x", 201), "Content long enough to pass."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := h.service.CreateReview(context.Background(), userAlice, review.CreateReviewInput{
				BookID:  bookDune,
				Rating:  tt.rating,
				Title:   tt.title,
				Content: tt.content,
			})
			require.Error(t, err)

			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, "VALIDATION_ERROR", ae.Code)
		})
	}
}

func TestService_CreateReview_UnknownBook(t *testing.T) {
	h := newHarness(t)

	_, err := h.service.CreateReview(context.Background(), userAlice, review.CreateReviewInput{
		BookID:  "0191b001-0000-7000-8000-00000000dead",
		Rating:  4,
		Title:   "Ghost book",
		Content: "Reviewing something that does not exist.",
	})
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}

func TestService_Ownership(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	r := h.createReview(t, userAlice, 4, "Mine", "Alice wrote this review herself.")

	badRating := 1
	_, err := h.service.UpdateReview(ctx, r.ID, userBob, review.UpdateReviewInput{Rating: &badRating})
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)

	err = h.service.DeleteReview(ctx, r.ID, userBob)
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)

	// The review is untouched.
	got, err := h.service.GetReview(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, got.Rating)
}

// # Spoiler Classification

func TestService_SpoilerDerivation(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	// Keyword in content, flag absent: derived true.
	r := h.createReview(t, userAlice, 5, "Heavy stuff", "I cried when the protagonist dies at the end of act two.")
	assert.True(t, r.SpoilerWarning)

	// Explicit false wins over the classifier.
	explicit := false
	r2, err := h.service.CreateReview(ctx, userBob, review.CreateReviewInput{
		BookID:         bookDune,
		Rating:         4,
		Title:          "Vague on purpose",
		Content:        "The twist everyone talks about is worth it.",
		SpoilerWarning: &explicit,
	})
	require.NoError(t, err)
	assert.False(t, r2.SpoilerWarning)

	// Editing content without a flag re-derives it.
	cleanContent := "A gripping book that I will happily read again."
	updated, err := h.service.UpdateReview(ctx, r.ID, userAlice, review.UpdateReviewInput{Content: &cleanContent})
	require.NoError(t, err)
	assert.False(t, updated.SpoilerWarning)
}

// # Listing, Search & Stats

func TestService_ListReviews_Filters(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	h.createReview(t, userAlice, 5, "Loved it", "A wonderful story from start to finish.")
	h.createReview(t, userBob, 2, "Not for me", "I could not connect with the characters.")

	minRating := 4
	reviews, total, err := h.service.ListReviews(ctx, review.Filter{BookID: bookDune, MinRating: &minRating}, defaultPage())
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, reviews, 1)
	assert.Equal(t, userAlice, reviews[0].UserID)

	// Out-of-range filter bound is rejected up front.
	badRating := 9
	_, _, err = h.service.ListReviews(ctx, review.Filter{Rating: &badRating}, defaultPage())
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
}

func TestService_SearchReviews(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	h.createReview(t, userAlice, 5, "Sandworms forever", "The desert setting is unforgettable.")
	h.createReview(t, userBob, 3, "Middling", "Interesting politics, too many names.")

	reviews, total, err := h.service.SearchReviews(ctx, "desert", defaultPage())
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, reviews, 1)
	assert.Equal(t, "Sandworms forever", reviews[0].Title)

	// Empty query is a validation error, not an empty result.
	_, _, err = h.service.SearchReviews(ctx, "", defaultPage())
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
}

func TestService_UserReviewStats(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	// Alice reviews three different books.
	h.books["b2"] = &book.Book{ID: "b2", Title: "Second", Slug: "second"}
	h.books["b3"] = &book.Book{ID: "b3", Title: "Third", Slug: "third"}

	h.createReview(t, userAlice, 5, "Great", "A wonderful story from start to finish.")
	for _, bookID := range []string{"b2", "b3"} {
		_, err := h.service.CreateReview(ctx, userAlice, review.CreateReviewInput{
			BookID:  bookID,
			Rating:  4,
			Title:   "Solid",
			Content: "Held my attention the whole way through.",
		})
		require.NoError(t, err)
	}

	stats, err := h.service.UserReviewStats(ctx, userAlice)
	require.NoError(t, err)

	assert.Equal(t, 3, stats.TotalReviews)
	// (5+4+4)/3 rounded to two decimals.
	assert.Equal(t, 4.33, stats.AverageRating)
	assert.Equal(t, map[int]int{1: 0, 2: 0, 3: 0, 4: 2, 5: 1}, stats.RatingDistribution)
}

// # Comment Threads

func TestService_CommentLifecycle(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	r := h.createReview(t, userAlice, 4, "Discussable", "Plenty to talk about in this one.")

	parent, err := h.service.CreateComment(ctx, r.ID, userBob, review.CreateCommentInput{
		Content: "Completely agree with this take.",
	})
	require.NoError(t, err)

	got, err := h.service.GetReview(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.CommentsCount)

	// A reply under the parent.
	reply, err := h.service.CreateComment(ctx, r.ID, userAlice, review.CreateCommentInput{
		Content:  "Thanks! Glad it resonated.",
		ParentID: &parent.ID,
	})
	require.NoError(t, err)
	require.NotNil(t, reply.ParentID)

	got, err = h.service.GetReview(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.CommentsCount)

	// Listing attaches the reply under its parent.
	comments, total, err := h.service.ListComments(ctx, r.ID, defaultPage())
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, comments, 1)
	require.Len(t, comments[0].Replies, 1)
	assert.Equal(t, reply.ID, comments[0].Replies[0].ID)

	// Deleting the parent takes the reply with it and refreshes the count.
	require.NoError(t, h.service.DeleteComment(ctx, parent.ID, userBob))

	got, err = h.service.GetReview(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.CommentsCount)
}

func TestService_CreateComment_CrossReviewParent(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	h.books["b2"] = &book.Book{ID: "b2", Title: "Second", Slug: "second"}

	r1 := h.createReview(t, userAlice, 4, "First thread", "Plenty to talk about in this one.")
	r2, err := h.service.CreateReview(ctx, userAlice, review.CreateReviewInput{
		BookID:  "b2",
		Rating:  3,
		Title:   "Other thread",
		Content: "A separate conversation entirely.",
	})
	require.NoError(t, err)

	parent, err := h.service.CreateComment(ctx, r1.ID, userBob, review.CreateCommentInput{
		Content: "Commenting on the first review.",
	})
	require.NoError(t, err)

	// Replying under r2 to a comment that lives on r1 must fail.
	_, err = h.service.CreateComment(ctx, r2.ID, userBob, review.CreateCommentInput{
		Content:  "This reply is attached to the wrong thread.",
		ParentID: &parent.ID,
	})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
}

/*
TestService_CreateComment_NestedReply verifies threads stay one level deep: a
reply cannot itself receive replies. Deeper nesting would leave grandchildren
behind when a parent and its direct replies are deleted together.
*/
func TestService_CreateComment_NestedReply(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	r := h.createReview(t, userAlice, 4, "Discussable", "Plenty to talk about in this one.")

	parent, err := h.service.CreateComment(ctx, r.ID, userBob, review.CreateCommentInput{
		Content: "A top-level comment.",
	})
	require.NoError(t, err)

	reply, err := h.service.CreateComment(ctx, r.ID, userAlice, review.CreateCommentInput{
		Content:  "A reply is fine.",
		ParentID: &parent.ID,
	})
	require.NoError(t, err)

	_, err = h.service.CreateComment(ctx, r.ID, userBob, review.CreateCommentInput{
		Content:  "A reply to a reply is not.",
		ParentID: &reply.ID,
	})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)

	// The rejected comment left the count untouched.
	got, err := h.service.GetReview(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.CommentsCount)

	// With depth capped, removing the parent clears the whole thread.
	require.NoError(t, h.service.DeleteComment(ctx, parent.ID, userBob))
	got, err = h.service.GetReview(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.CommentsCount)
}

func TestService_DeleteComment_Ownership(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	r := h.createReview(t, userAlice, 4, "Discussable", "Plenty to talk about in this one.")
	c, err := h.service.CreateComment(ctx, r.ID, userBob, review.CreateCommentInput{
		Content: "Bob owns this comment.",
	})
	require.NoError(t, err)

	err = h.service.DeleteComment(ctx, c.ID, userAlice)
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)
}

// # Moderation

func TestService_FlagReview(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	r := h.createReview(t, userAlice, 1, "Harsh words", "This review might get reported.")

	flag, err := h.service.FlagReview(ctx, r.ID, userBob, "Abusive language")
	require.NoError(t, err)
	assert.Equal(t, review.FlagStatusOpen, flag.Status)
	assert.Equal(t, userBob, flag.ReporterID)
	require.Len(t, h.repo.flags, 1)

	// Empty reason is rejected.
	_, err = h.service.FlagReview(ctx, r.ID, userBob, "")
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)

	// Flagging a missing review is a 404.
	_, err = h.service.FlagReview(ctx, "0191c001-0000-7000-8000-00000000dead", userBob, "Spam")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}
