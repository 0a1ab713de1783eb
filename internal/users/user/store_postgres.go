// Copyright (c) 2026 Leafmark. All rights reserved.

package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/leafmark/leafmark/internal/platform/apperr"
	"github.com/leafmark/leafmark/internal/platform/database/schema"
	"github.com/leafmark/leafmark/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// GetUser fetches a single account row by id.
// Returns apperr.NotFound("User") when the account does not exist.
func (repository *PostgresRepository) GetUser(context context.Context, id string) (*User, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
	`,
		schema.UsersAccount.ID, schema.UsersAccount.Username, schema.UsersAccount.DisplayName,
		schema.UsersAccount.AvatarURL, schema.UsersAccount.CreatedAt, schema.UsersAccount.UpdatedAt,
		schema.UsersAccount.Table, schema.UsersAccount.ID,
	)
	u := &User{}

	err := repository.db.QueryRow(context, query, id).Scan(
		&u.ID, &u.Username, &u.DisplayName, &u.AvatarURL, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("User")
		}
		return nil, dberr.Wrap(err, "get_user")
	}

	return u, nil
}
