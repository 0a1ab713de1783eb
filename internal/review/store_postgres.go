// Copyright (c) 2026 Leafmark. All rights reserved.

package review

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/leafmark/leafmark/internal/catalog/book"
	"github.com/leafmark/leafmark/internal/platform/apperr"
	"github.com/leafmark/leafmark/internal/platform/database/schema"
	"github.com/leafmark/leafmark/internal/platform/dberr"
	"github.com/leafmark/leafmark/internal/users/user"
	"github.com/leafmark/leafmark/pkg/uuidv7"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// reviewJoinedSelect is the canonical read query: every review leaves the
// store with its user and book minimal projections attached.
const reviewJoinedSelect = `
	SELECT r.id, r.userid, r.bookid, r.rating, r.title, r.content, r.spoilerwarning,
	       r.likescount, r.commentscount, r.createdat, r.updatedat,
	       u.id, u.username, u.displayname, u.avatarurl,
	       b.id, b.title, b.authors, b.coverimageurl
	FROM review.review r
	JOIN users.account u ON u.id = r.userid
	JOIN catalog.book b ON b.id = r.bookid
`

func scanJoinedReview(row pgx.Row) (*Review, error) {
	r := &Review{
		User: &user.Projection{},
		Book: &book.Projection{},
	}
	err := row.Scan(
		&r.ID, &r.UserID, &r.BookID, &r.Rating, &r.Title, &r.Content, &r.SpoilerWarning,
		&r.LikesCount, &r.CommentsCount, &r.CreatedAt, &r.UpdatedAt,
		&r.User.ID, &r.User.Username, &r.User.DisplayName, &r.User.AvatarURL,
		&r.Book.ID, &r.Book.Title, &r.Book.Authors, &r.Book.CoverImageURL,
	)
	return r, err
}

// # Aggregation Recompute

/*
recomputeBookAggregate re-derives a book's averagerating and ratingscount
from the review rows currently visible to the transaction.

It derives from current child rows, never from increments, so re-running it
is always safe and drift from a missed delta is impossible. It must run on
the same transaction as the triggering review write: both changes become
visible atomically at commit.
*/
func recomputeBookAggregate(context context.Context, transaction pgx.Tx, bookID string) error {
	query := `
		UPDATE catalog.book SET
			ratingscount  = (SELECT COUNT(*) FROM review.review WHERE bookid = $1),
			averagerating = (SELECT COALESCE(AVG(rating), 0) FROM review.review WHERE bookid = $1),
			updatedat     = NOW()
		WHERE id = $1
	`

	_, err := transaction.Exec(context, query, bookID)
	if err != nil {
		return dberr.Wrap(err, "recompute_book_aggregate")
	}

	return nil
}

/*
recomputeCommentCount re-derives a review's commentscount from the comment
rows currently visible to the transaction. Same discipline as
[recomputeBookAggregate]: pure derivation inside the mutating transaction.
*/
func recomputeCommentCount(context context.Context, transaction pgx.Tx, reviewID string) error {
	query := `
		UPDATE review.review SET
			commentscount = (SELECT COUNT(*) FROM review.comment WHERE reviewid = $1),
			updatedat     = NOW()
		WHERE id = $1
	`

	_, err := transaction.Exec(context, query, reviewID)
	if err != nil {
		return dberr.Wrap(err, "recompute_comment_count")
	}

	return nil
}

// # Review Lifecycle

/*
CreateReview inserts a review and refreshes the book aggregate atomically.

Description: Executes within an ACID transaction.
1. Checks that no review exists for the (user, book) pair.
2. Inserts the review row.
3. Re-derives the book's averagerating/ratingscount.
Rolls back completely if any stage fails, so no partial state is observable.

The application-level duplicate check can race under concurrent creates; the
unique (userid, bookid) index is the backstop, surfacing as CONFLICT through
the 23505 mapping in dberr.
*/
func (repository *PostgresRepository) CreateReview(context context.Context, r *Review) error {

	// Establish Transactional Boundary
	transaction, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_create_review_tx")
	}
	defer transaction.Rollback(context)

	// Step 1: Duplicate Check
	var exists bool
	existsQuery := `SELECT EXISTS(SELECT 1 FROM review.review WHERE userid = $1 AND bookid = $2)`
	if err := transaction.QueryRow(context, existsQuery, r.UserID, r.BookID).Scan(&exists); err != nil {
		return dberr.Wrap(err, "check_duplicate_review")
	}
	if exists {
		return apperr.Conflict("User already has a review for this book")
	}

	// Step 2: Persist Review Row
	r.ID = uuidv7.New()
	insertQuery := `
		INSERT INTO review.review (id, userid, bookid, rating, title, content, spoilerwarning,
		                           likescount, commentscount, createdat, updatedat)
		VALUES ($1, $2, $3, $4, $5, $6, $7, 0, 0, NOW(), NOW())
		RETURNING createdat, updatedat
	`
	err = transaction.QueryRow(context, insertQuery,
		r.ID, r.UserID, r.BookID, r.Rating, r.Title, r.Content, r.SpoilerWarning,
	).Scan(&r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		wrapped := dberr.Wrap(err, "insert_review")
		if ae := apperr.As(wrapped); ae != nil && ae.Code == "CONFLICT" {
			return apperr.Conflict("User already has a review for this book")
		}
		return wrapped
	}

	// Step 3: Refresh Book Aggregate
	if err := recomputeBookAggregate(context, transaction, r.BookID); err != nil {
		return err
	}

	// Persist Atomic Changeset
	return transaction.Commit(context)
}

/*
UpdateReview rewrites a review's mutable fields and refreshes the book
aggregate in the same transaction, since the rating may have changed.
*/
func (repository *PostgresRepository) UpdateReview(context context.Context, r *Review) error {

	// Establish Transactional Boundary
	transaction, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_update_review_tx")
	}
	defer transaction.Rollback(context)

	// Step 1: Persist Field Changes
	updateQuery := `
		UPDATE review.review
		SET rating = $2, title = $3, content = $4, spoilerwarning = $5, updatedat = NOW()
		WHERE id = $1
		RETURNING updatedat
	`
	err = transaction.QueryRow(context, updateQuery,
		r.ID, r.Rating, r.Title, r.Content, r.SpoilerWarning,
	).Scan(&r.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperr.NotFound("Review")
		}
		return dberr.Wrap(err, "update_review")
	}

	// Step 2: Refresh Book Aggregate
	if err := recomputeBookAggregate(context, transaction, r.BookID); err != nil {
		return err
	}

	return transaction.Commit(context)
}

/*
DeleteReview removes a review, its comment thread, and refreshes the book
aggregate as one atomic unit of work. Executes within an ACID transaction:

 1. Deletes all comments referencing the review (cascade, same unit of work).
 2. Deletes the review row itself.
 3. Re-derives the book aggregate explicitly; the recompute is part of this
    path, never delegated to an implicit lifecycle hook elsewhere.
*/
func (repository *PostgresRepository) DeleteReview(context context.Context, reviewID, bookID string) error {

	// Establish Transactional Boundary
	transaction, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_delete_review_tx")
	}
	defer transaction.Rollback(context)

	// Step 1: Cascade Comment Deletion
	if _, err := transaction.Exec(context, `DELETE FROM review.comment WHERE reviewid = $1`, reviewID); err != nil {
		return dberr.Wrap(err, "delete_review_comments")
	}

	// Step 2: Remove Review Row
	result, err := transaction.Exec(context, `DELETE FROM review.review WHERE id = $1`, reviewID)
	if err != nil {
		return dberr.Wrap(err, "delete_review")
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound("Review")
	}

	// Step 3: Refresh Book Aggregate
	if err := recomputeBookAggregate(context, transaction, bookID); err != nil {
		return err
	}

	return transaction.Commit(context)
}

// GetReview fetches a single review with its user and book projections.
func (repository *PostgresRepository) GetReview(context context.Context, id string) (*Review, error) {
	query := reviewJoinedSelect + ` WHERE r.id = $1`

	r, err := scanJoinedReview(repository.db.QueryRow(context, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Review")
		}
		return nil, dberr.Wrap(err, "get_review")
	}

	return r, nil
}

// # Listing & Statistics

// sortColumn maps a whitelisted sort identifier to its qualified column.
// Unknown identifiers fall back to creation order.
func sortColumn(sortBy string) string {
	switch sortBy {
	case SortByRating:
		return "r." + schema.ReviewReview.Rating
	case SortByLikesCount:
		return "r." + schema.ReviewReview.LikesCount
	default:
		return "r." + schema.ReviewReview.CreatedAt
	}
}

/*
ListReviews returns a filtered, sorted page of reviews plus the total count.

All filter fragments are parameterized; the ORDER BY clause is assembled only
from whitelisted column names, never from raw request input.
*/
func (repository *PostgresRepository) ListReviews(context context.Context, f Filter, sortBy, sortOrder string, limit, offset int) ([]*Review, int, error) {
	where := ` WHERE 1=1`
	args := []any{}

	appendArg := func(clause string, value any) {
		args = append(args, value)
		where += fmt.Sprintf(clause, len(args))
	}

	if f.BookID != "" {
		appendArg(` AND r.bookid = $%d`, f.BookID)
	}
	if f.UserID != "" {
		appendArg(` AND r.userid = $%d`, f.UserID)
	}
	if f.Rating != nil {
		appendArg(` AND r.rating = $%d`, *f.Rating)
	}
	if f.MinRating != nil {
		appendArg(` AND r.rating >= $%d`, *f.MinRating)
	}
	if f.MaxRating != nil {
		appendArg(` AND r.rating <= $%d`, *f.MaxRating)
	}
	if f.SpoilerWarning != nil {
		appendArg(` AND r.spoilerwarning = $%d`, *f.SpoilerWarning)
	}

	countQuery := `SELECT count(*) FROM review.review r` + where

	var total int
	if err := repository.db.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_reviews")
	}

	direction := "DESC"
	if sortOrder == "ASC" {
		direction = "ASC"
	}

	query := reviewJoinedSelect + where +
		fmt.Sprintf(` ORDER BY %s %s LIMIT $%d OFFSET $%d`, sortColumn(sortBy), direction, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_reviews")
	}
	defer rows.Close()

	var reviews []*Review
	for rows.Next() {
		r, err := scanJoinedReview(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_review")
		}
		reviews = append(reviews, r)
	}

	return reviews, total, nil
}

// SearchReviews matches the query string case-insensitively against review
// titles and content.
func (repository *PostgresRepository) SearchReviews(context context.Context, query string, limit, offset int) ([]*Review, int, error) {
	searchTerm := "%" + query + "%"
	where := ` WHERE (r.title ILIKE $1 OR r.content ILIKE $1)`

	var total int
	countQuery := `SELECT count(*) FROM review.review r` + where
	if err := repository.db.QueryRow(context, countQuery, searchTerm).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_search_reviews")
	}

	listQuery := reviewJoinedSelect + where + ` ORDER BY r.createdat DESC LIMIT $2 OFFSET $3`

	rows, err := repository.db.Query(context, listQuery, searchTerm, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "search_reviews")
	}
	defer rows.Close()

	var reviews []*Review
	for rows.Next() {
		r, err := scanJoinedReview(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_search_review")
		}
		reviews = append(reviews, r)
	}

	return reviews, total, nil
}

// UserReviewStats derives one user's review totals and rating histogram in a
// single aggregate query.
func (repository *PostgresRepository) UserReviewStats(context context.Context, userID string) (*Stats, error) {
	query := `
		SELECT COUNT(*),
		       COALESCE(AVG(rating), 0),
		       COUNT(*) FILTER (WHERE rating = 1),
		       COUNT(*) FILTER (WHERE rating = 2),
		       COUNT(*) FILTER (WHERE rating = 3),
		       COUNT(*) FILTER (WHERE rating = 4),
		       COUNT(*) FILTER (WHERE rating = 5)
		FROM review.review
		WHERE userid = $1
	`

	stats := &Stats{RatingDistribution: make(map[int]int, 5)}
	var perRating [5]int

	err := repository.db.QueryRow(context, query, userID).Scan(
		&stats.TotalReviews, &stats.AverageRating,
		&perRating[0], &perRating[1], &perRating[2], &perRating[3], &perRating[4],
	)
	if err != nil {
		return nil, dberr.Wrap(err, "user_review_stats")
	}

	for rating := MinRating; rating <= MaxRating; rating++ {
		stats.RatingDistribution[rating] = perRating[rating-1]
	}

	return stats, nil
}
