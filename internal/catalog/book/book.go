// Copyright (c) 2026 Leafmark. All rights reserved.

// Package book manages the catalog of reviewable titles.
//
// The aggregate columns (averagerating, ratingscount) live on this entity but
// are owned by the review domain's recompute step — nothing in this package
// ever writes them.
package book

import "time"

// Book represents a catalog entry that readers can review.
type Book struct {
	ID            string     `json:"id"`
	ISBN          string     `json:"isbn"`
	Slug          string     `json:"slug"`
	Title         string     `json:"title"`
	Authors       []string   `json:"authors"`
	Description   *string    `json:"description"`
	PublishedDate *time.Time `json:"published_date"`
	Publisher     *string    `json:"publisher"`
	PageCount     *int       `json:"page_count"`
	Categories    []string   `json:"categories"`
	CoverImageURL *string    `json:"cover_image_url"`

	// Derived from review rows; read-only outside the review domain.
	AverageRating float64 `json:"average_rating"`
	RatingsCount  int     `json:"ratings_count"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Projection is the minimal subset of a Book embedded in review responses.
type Projection struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Authors       []string `json:"authors"`
	CoverImageURL *string  `json:"cover_image_url"`
}

// Project reduces a full Book to its review-facing projection.
func (b *Book) Project() Projection {
	return Projection{
		ID:            b.ID,
		Title:         b.Title,
		Authors:       b.Authors,
		CoverImageURL: b.CoverImageURL,
	}
}

// Filter holds the parameters for a paginated catalog search.
type Filter struct {
	Query      string   // ILIKE search against title and authors
	Categories []string // match books tagged with any of these
}

// Global field names for validation
const (
	FieldISBN          = "isbn"
	FieldTitle         = "title"
	FieldAuthors       = "authors"
	FieldPageCount     = "page_count"
	FieldCoverImageURL = "cover_image_url"
)
