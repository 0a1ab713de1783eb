// Copyright (c) 2026 Leafmark. All rights reserved.

package book

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/leafmark/leafmark/internal/platform/apperr"
	"github.com/leafmark/leafmark/internal/platform/database/schema"
	"github.com/leafmark/leafmark/internal/platform/dberr"
	"github.com/leafmark/leafmark/pkg/uuidv7"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// bookColumns is the canonical SELECT list shared by every read path.
var bookColumns = fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s",
	schema.CatalogBook.ID, schema.CatalogBook.ISBN, schema.CatalogBook.Slug, schema.CatalogBook.Title,
	schema.CatalogBook.Authors, schema.CatalogBook.Description, schema.CatalogBook.PublishedDate,
	schema.CatalogBook.Publisher, schema.CatalogBook.PageCount, schema.CatalogBook.Categories,
	schema.CatalogBook.CoverImageURL, schema.CatalogBook.AverageRating, schema.CatalogBook.RatingsCount,
	schema.CatalogBook.CreatedAt, schema.CatalogBook.UpdatedAt,
)

func scanBook(row pgx.Row) (*Book, error) {
	b := &Book{}
	err := row.Scan(
		&b.ID, &b.ISBN, &b.Slug, &b.Title, &b.Authors, &b.Description, &b.PublishedDate,
		&b.Publisher, &b.PageCount, &b.Categories, &b.CoverImageURL,
		&b.AverageRating, &b.RatingsCount, &b.CreatedAt, &b.UpdatedAt,
	)
	return b, err
}

func (repository *PostgresRepository) ListBooks(context context.Context, f Filter, limit, offset int) ([]*Book, int, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE 1=1`, bookColumns, schema.CatalogBook.Table)
	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s WHERE 1=1`, schema.CatalogBook.Table)

	args := []any{}
	countArgs := []any{}

	if f.Query != "" {
		searchTerm := "%" + f.Query + "%"
		clause := fmt.Sprintf(` AND (%s ILIKE $%d OR array_to_string(%s, ' ') ILIKE $%d)`,
			schema.CatalogBook.Title, len(args)+1, schema.CatalogBook.Authors, len(args)+1)
		query += clause
		countQuery += clause
		args = append(args, searchTerm)
		countArgs = append(countArgs, searchTerm)
	}

	if len(f.Categories) > 0 {
		// Array overlap: the book matches when tagged with any requested category.
		clause := fmt.Sprintf(` AND %s && $%d`, schema.CatalogBook.Categories, len(args)+1)
		query += clause
		countQuery += clause
		args = append(args, f.Categories)
		countArgs = append(countArgs, f.Categories)
	}

	query += fmt.Sprintf(" ORDER BY %s ASC LIMIT $", schema.CatalogBook.Title) + itos(len(args)+1) + ` OFFSET $` + itos(len(args)+2)
	args = append(args, limit, offset)

	var total int
	if err := repository.db.QueryRow(context, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_books")
	}

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_books")
	}
	defer rows.Close()

	var books []*Book
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_book")
		}
		books = append(books, b)
	}

	return books, total, nil
}

func (repository *PostgresRepository) GetBook(context context.Context, id string) (*Book, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		bookColumns, schema.CatalogBook.Table, schema.CatalogBook.ID,
	)

	b, err := scanBook(repository.db.QueryRow(context, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Book")
		}
		return nil, dberr.Wrap(err, "get_book")
	}

	return b, nil
}

func (repository *PostgresRepository) GetBookBySlug(context context.Context, slug string) (*Book, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		bookColumns, schema.CatalogBook.Table, schema.CatalogBook.Slug,
	)

	b, err := scanBook(repository.db.QueryRow(context, query, slug))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Book")
		}
		return nil, dberr.Wrap(err, "get_book_by_slug")
	}

	return b, nil
}

func (repository *PostgresRepository) CreateBook(context context.Context, b *Book) error {
	b.ID = uuidv7.New()

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, 0, 0, NOW(), NOW())
		RETURNING %s, %s
	`,
		schema.CatalogBook.Table, schema.CatalogBook.ID, schema.CatalogBook.ISBN, schema.CatalogBook.Slug,
		schema.CatalogBook.Title, schema.CatalogBook.Authors, schema.CatalogBook.Description,
		schema.CatalogBook.PublishedDate, schema.CatalogBook.Publisher, schema.CatalogBook.PageCount,
		schema.CatalogBook.Categories, schema.CatalogBook.CoverImageURL,
		schema.CatalogBook.AverageRating, schema.CatalogBook.RatingsCount,
		schema.CatalogBook.CreatedAt, schema.CatalogBook.UpdatedAt,
		schema.CatalogBook.CreatedAt, schema.CatalogBook.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		b.ID, b.ISBN, b.Slug, b.Title, b.Authors, b.Description, b.PublishedDate,
		b.Publisher, b.PageCount, b.Categories, b.CoverImageURL,
	).Scan(&b.CreatedAt, &b.UpdatedAt)

	return dberr.Wrap(err, "create_book")
}

// UpdateBook writes catalog metadata only. The aggregate columns are absent
// from the SET list on purpose: they belong to the review domain's recompute.
func (repository *PostgresRepository) UpdateBook(context context.Context, b *Book) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7, %s = $8, %s = $9, %s = $10, %s = NOW()
		WHERE %s = $1
		RETURNING %s
	`,
		schema.CatalogBook.Table,
		schema.CatalogBook.ISBN, schema.CatalogBook.Title, schema.CatalogBook.Authors,
		schema.CatalogBook.Description, schema.CatalogBook.PublishedDate, schema.CatalogBook.Publisher,
		schema.CatalogBook.PageCount, schema.CatalogBook.Categories, schema.CatalogBook.CoverImageURL,
		schema.CatalogBook.UpdatedAt, schema.CatalogBook.ID, schema.CatalogBook.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		b.ID, b.ISBN, b.Title, b.Authors, b.Description, b.PublishedDate,
		b.Publisher, b.PageCount, b.Categories, b.CoverImageURL,
	).Scan(&b.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperr.NotFound("Book")
		}
		return dberr.Wrap(err, "update_book")
	}

	return nil
}

func itos(i int) string {
	return strconv.Itoa(i)
}
