// Copyright (c) 2026 Leafmark. All rights reserved.

package book

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/leafmark/leafmark/internal/platform/middleware"
	requestutil "github.com/leafmark/leafmark/internal/platform/request"
	"github.com/leafmark/leafmark/internal/platform/respond"
	"github.com/leafmark/leafmark/internal/platform/sec"
	"github.com/leafmark/leafmark/pkg/pagination"
	"github.com/leafmark/leafmark/pkg/query"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Public
	router.Get("/", handler.listBooks)
	router.Get("/{id}", handler.getBook)
	router.Get("/slug/{slug}", handler.getBookBySlug)

	// Catalog curation requires moderator rights
	router.Group(func(modRoute chi.Router) {
		modRoute.Use(middleware.RequireRole(sec.RoleModerator))

		modRoute.Post("/", handler.createBook)
		modRoute.Patch("/{id}", handler.updateBook)
	})

	return router
}

func (handler *Handler) listBooks(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	filter := Filter{
		Query:      request.URL.Query().Get("q"),
		Categories: query.StringSlice(request.URL.Query().Get("category")),
	}

	books, total, err := handler.service.ListBooks(request.Context(), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, books, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

func (handler *Handler) getBook(writer http.ResponseWriter, request *http.Request) {
	bookID := requestutil.ID(request, "id")

	book, err := handler.service.GetBook(request.Context(), bookID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, book)
}

func (handler *Handler) getBookBySlug(writer http.ResponseWriter, request *http.Request) {
	bookSlug := requestutil.ID(request, "slug")

	book, err := handler.service.GetBookBySlug(request.Context(), bookSlug)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, book)
}

func (handler *Handler) createBook(writer http.ResponseWriter, request *http.Request) {
	var input Book
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.CreateBook(request.Context(), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, input)
}

func (handler *Handler) updateBook(writer http.ResponseWriter, request *http.Request) {
	bookID := requestutil.ID(request, "id")

	var input Book
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.UpdateBook(request.Context(), bookID, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, input)
}
