// Copyright (c) 2026 Leafmark. All rights reserved.

package schema

// CatalogBookTable represents the 'catalog.book' table
type CatalogBookTable struct {
	Table         string
	ID            string
	ISBN          string
	Slug          string
	Title         string
	Authors       string
	Description   string
	PublishedDate string
	Publisher     string
	PageCount     string
	Categories    string
	CoverImageURL string
	AverageRating string
	RatingsCount  string
	CreatedAt     string
	UpdatedAt     string
}

// CatalogBook is the schema definition for catalog.book
var CatalogBook = CatalogBookTable{
	Table:         "catalog.book",
	ID:            "id",
	ISBN:          "isbn",
	Slug:          "slug",
	Title:         "title",
	Authors:       "authors",
	Description:   "description",
	PublishedDate: "publisheddate",
	Publisher:     "publisher",
	PageCount:     "pagecount",
	Categories:    "categories",
	CoverImageURL: "coverimageurl",
	AverageRating: "averagerating",
	RatingsCount:  "ratingscount",
	CreatedAt:     "createdat",
	UpdatedAt:     "updatedat",
}
