// Copyright (c) 2026 Leafmark. All rights reserved.

package book

import (
	"context"
	"log/slog"

	"github.com/leafmark/leafmark/internal/platform/validate"
	"github.com/leafmark/leafmark/pkg/isbn"
	"github.com/leafmark/leafmark/pkg/slug"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (service *Service) ListBooks(context context.Context, filter Filter, limit, offset int) ([]*Book, int, error) {
	return service.repo.ListBooks(context, filter, limit, offset)
}

func (service *Service) GetBook(context context.Context, id string) (*Book, error) {
	return service.repo.GetBook(context, id)
}

func (service *Service) GetBookBySlug(context context.Context, s string) (*Book, error) {
	return service.repo.GetBookBySlug(context, s)
}

// CreateBook validates the catalog entry and persists it.
//
// The slug is derived from the title. Aggregate fields start at zero and are
// only ever touched by the review domain afterwards.
func (service *Service) CreateBook(context context.Context, book *Book) error {
	if err := validateBook(book); err != nil {
		return err
	}

	book.ISBN = isbn.Normalize(book.ISBN)
	book.Slug = slug.From(book.Title)
	book.AverageRating = 0
	book.RatingsCount = 0

	if err := service.repo.CreateBook(context, book); err != nil {
		return err
	}

	service.logger.Info("book_created",
		slog.String("book_id", book.ID),
		slog.String("isbn", book.ISBN),
	)
	return nil
}

// UpdateBook replaces the mutable catalog metadata of an existing entry.
// Aggregate fields are ignored; the store never writes them on this path.
func (service *Service) UpdateBook(context context.Context, id string, book *Book) error {
	book.ID = id

	if err := validateBook(book); err != nil {
		return err
	}

	book.ISBN = isbn.Normalize(book.ISBN)

	if err := service.repo.UpdateBook(context, book); err != nil {
		return err
	}

	service.logger.Info("book_updated", slog.String("book_id", book.ID))
	return nil
}

func validateBook(book *Book) error {
	validator := &validate.Validator{}

	validator.Required(FieldTitle, book.Title).MinLen(FieldTitle, book.Title, 1).MaxLen(FieldTitle, book.Title, 500)
	validator.NotEmpty(FieldAuthors, len(book.Authors))

	validator.MinLen(FieldISBN, book.ISBN, 10).MaxLen(FieldISBN, book.ISBN, 17)
	validator.Custom(FieldISBN, !isbn.IsValid(book.ISBN), "Must be a valid ISBN-10 or ISBN-13")

	if book.PageCount != nil {
		validator.Min(FieldPageCount, *book.PageCount, 1)
	}

	if book.CoverImageURL != nil {
		validator.URL(FieldCoverImageURL, *book.CoverImageURL)
	}

	return validator.Err()
}
