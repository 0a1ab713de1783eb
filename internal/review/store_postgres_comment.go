// Copyright (c) 2026 Leafmark. All rights reserved.

package review

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/leafmark/leafmark/internal/platform/apperr"
	"github.com/leafmark/leafmark/internal/platform/dberr"
	"github.com/leafmark/leafmark/internal/users/user"
	"github.com/leafmark/leafmark/pkg/uuidv7"
)

const commentJoinedSelect = `
	SELECT c.id, c.reviewid, c.userid, c.parentid, c.content, c.likescount,
	       c.createdat, c.updatedat,
	       u.id, u.username, u.displayname, u.avatarurl
	FROM review.comment c
	JOIN users.account u ON u.id = c.userid
`

func scanJoinedComment(row pgx.Row) (*Comment, error) {
	c := &Comment{User: &user.Projection{}}
	err := row.Scan(
		&c.ID, &c.ReviewID, &c.UserID, &c.ParentID, &c.Content, &c.LikesCount,
		&c.CreatedAt, &c.UpdatedAt,
		&c.User.ID, &c.User.Username, &c.User.DisplayName, &c.User.AvatarURL,
	)
	return c, err
}

// # Comment Lifecycle

/*
CreateComment inserts a comment and refreshes the parent review's
commentscount atomically. Same transactional discipline as the review
lifecycle: both rows change together or not at all.
*/
func (repository *PostgresRepository) CreateComment(context context.Context, c *Comment) error {

	// Establish Transactional Boundary
	transaction, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_create_comment_tx")
	}
	defer transaction.Rollback(context)

	// Step 1: Persist Comment Row
	c.ID = uuidv7.New()
	insertQuery := `
		INSERT INTO review.comment (id, reviewid, userid, parentid, content, likescount, createdat, updatedat)
		VALUES ($1, $2, $3, $4, $5, 0, NOW(), NOW())
		RETURNING createdat, updatedat
	`
	err = transaction.QueryRow(context, insertQuery,
		c.ID, c.ReviewID, c.UserID, c.ParentID, c.Content,
	).Scan(&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "insert_comment")
	}

	// Step 2: Refresh Review Comment Count
	if err := recomputeCommentCount(context, transaction, c.ReviewID); err != nil {
		return err
	}

	return transaction.Commit(context)
}

/*
DeleteComment removes a comment, its direct replies, and refreshes the parent
review's commentscount atomically.

Threads are one level deep (replies to replies are rejected at create time),
so a single parent-id match removes the entire subtree. No recursive descent,
and no orphaned rows left behind for the parentid foreign key to trip over.
*/
func (repository *PostgresRepository) DeleteComment(context context.Context, commentID, reviewID string) error {

	// Establish Transactional Boundary
	transaction, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_delete_comment_tx")
	}
	defer transaction.Rollback(context)

	// Step 1: Remove Direct Replies
	if _, err := transaction.Exec(context, `DELETE FROM review.comment WHERE parentid = $1`, commentID); err != nil {
		return dberr.Wrap(err, "delete_comment_replies")
	}

	// Step 2: Remove Comment Row
	result, err := transaction.Exec(context, `DELETE FROM review.comment WHERE id = $1`, commentID)
	if err != nil {
		return dberr.Wrap(err, "delete_comment")
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound("Comment")
	}

	// Step 3: Refresh Review Comment Count
	if err := recomputeCommentCount(context, transaction, reviewID); err != nil {
		return err
	}

	return transaction.Commit(context)
}

// GetComment fetches a single comment with its author projection.
func (repository *PostgresRepository) GetComment(context context.Context, id string) (*Comment, error) {
	query := commentJoinedSelect + ` WHERE c.id = $1`

	c, err := scanJoinedComment(repository.db.QueryRow(context, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Comment")
		}
		return nil, dberr.Wrap(err, "get_comment")
	}

	return c, nil
}

/*
ListComments returns a page of top-level comments for a review, each with its
direct replies attached.

The thread is two queries deep by construction: one page of parents, one
parent-id lookup for their children. Create-time validation keeps threads one
level deep, so this covers every comment under the visible page.
*/
func (repository *PostgresRepository) ListComments(context context.Context, reviewID string, limit, offset int) ([]*Comment, int, error) {
	var total int
	countQuery := `SELECT count(*) FROM review.comment WHERE reviewid = $1 AND parentid IS NULL`
	if err := repository.db.QueryRow(context, countQuery, reviewID).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_comments")
	}

	parentQuery := commentJoinedSelect + `
		WHERE c.reviewid = $1 AND c.parentid IS NULL
		ORDER BY c.createdat ASC
		LIMIT $2 OFFSET $3`

	rows, err := repository.db.Query(context, parentQuery, reviewID, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_comments")
	}
	defer rows.Close()

	var parents []*Comment
	parentIndex := make(map[string]*Comment)
	parentIDs := []string{}

	for rows.Next() {
		c, err := scanJoinedComment(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_comment")
		}
		parents = append(parents, c)
		parentIndex[c.ID] = c
		parentIDs = append(parentIDs, c.ID)
	}
	rows.Close()

	if len(parentIDs) == 0 {
		return parents, total, nil
	}

	// Attach direct replies of the visible page in one lookup.
	replyQuery := commentJoinedSelect + `
		WHERE c.parentid = ANY($1)
		ORDER BY c.createdat ASC`

	replyRows, err := repository.db.Query(context, replyQuery, parentIDs)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_comment_replies")
	}
	defer replyRows.Close()

	for replyRows.Next() {
		reply, err := scanJoinedComment(replyRows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_comment_reply")
		}
		if parent, ok := parentIndex[*reply.ParentID]; ok {
			parent.Replies = append(parent.Replies, reply)
		}
	}

	return parents, total, nil
}

// # Moderation

// CreateModerationFlag persists a reader's report against a review.
func (repository *PostgresRepository) CreateModerationFlag(context context.Context, f *ModerationFlag) error {
	f.ID = uuidv7.New()
	f.Status = FlagStatusOpen

	query := `
		INSERT INTO review.moderationflag (id, reviewid, reporterid, reason, status, createdat)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING createdat
	`

	err := repository.db.QueryRow(context, query,
		f.ID, f.ReviewID, f.ReporterID, f.Reason, f.Status,
	).Scan(&f.CreatedAt)

	return dberr.Wrap(err, "create_moderation_flag")
}
