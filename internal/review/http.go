// Copyright (c) 2026 Leafmark. All rights reserved.

package review

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/leafmark/leafmark/internal/platform/middleware"
	requestutil "github.com/leafmark/leafmark/internal/platform/request"
	"github.com/leafmark/leafmark/internal/platform/respond"
	"github.com/leafmark/leafmark/pkg/convert"
	"github.com/leafmark/leafmark/pkg/pagination"
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
	router.Get("/", handler.listReviews)
	router.Get("/search", handler.searchReviews)
	router.Get("/{id}", handler.getReview)
	router.Get("/{id}/comments", handler.listComments)

	// Mutations require an authenticated user
	router.Group(func(authRoute chi.Router) {
		authRoute.Use(middleware.RequireAuth)

		authRoute.Post("/", handler.createReview)
		authRoute.Patch("/{id}", handler.updateReview)
		authRoute.Delete("/{id}", handler.deleteReview)

		authRoute.Post("/{id}/comments", handler.createComment)
		authRoute.Delete("/{id}/comments/{commentID}", handler.deleteComment)

		authRoute.Post("/{id}/flag", handler.flagReview)
	})

	return router
}

// paginationFromRequest centralizes the sort whitelist for review listings.
func paginationFromRequest(request *http.Request) pagination.Params {
	return pagination.FromRequest(request, SortByCreatedAt, SortByRating, SortByLikesCount)
}

// filterFromRequest parses the review listing filters from the query string.
func filterFromRequest(request *http.Request) Filter {
	query := request.URL.Query()

	return Filter{
		BookID:         query.Get("book_id"),
		UserID:         query.Get("user_id"),
		Rating:         convert.ToIntP(query.Get("rating")),
		MinRating:      convert.ToIntP(query.Get("min_rating")),
		MaxRating:      convert.ToIntP(query.Get("max_rating")),
		SpoilerWarning: convert.ToBoolP(query.Get("spoiler_warning")),
	}
}

// # Review Lifecycle

func (handler *Handler) createReview(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input CreateReviewInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	review, err := handler.service.CreateReview(request.Context(), userID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, review)
}

func (handler *Handler) getReview(writer http.ResponseWriter, request *http.Request) {
	reviewID := requestutil.ID(request, "id")

	review, err := handler.service.GetReview(request.Context(), reviewID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, review)
}

func (handler *Handler) updateReview(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input UpdateReviewInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	review, err := handler.service.UpdateReview(request.Context(), requestutil.ID(request, "id"), userID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, review)
}

func (handler *Handler) deleteReview(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteReview(request.Context(), requestutil.ID(request, "id"), userID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

// # Listing & Search

func (handler *Handler) listReviews(writer http.ResponseWriter, request *http.Request) {
	paginationParams := paginationFromRequest(request)

	reviews, total, err := handler.service.ListReviews(request.Context(), filterFromRequest(request), paginationParams)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, reviews, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

func (handler *Handler) searchReviews(writer http.ResponseWriter, request *http.Request) {
	paginationParams := paginationFromRequest(request)

	reviews, total, err := handler.service.SearchReviews(request.Context(), request.URL.Query().Get("q"), paginationParams)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, reviews, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

// ListBookReviews serves the book-scoped listing route mounted under the
// catalog surface.
func (handler *Handler) ListBookReviews(writer http.ResponseWriter, request *http.Request) {
	paginationParams := paginationFromRequest(request)

	filter := filterFromRequest(request)
	filter.BookID = requestutil.ID(request, "id")

	reviews, total, err := handler.service.ListReviews(request.Context(), filter, paginationParams)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, reviews, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

// ListUserReviews serves the user-scoped listing route.
func (handler *Handler) ListUserReviews(writer http.ResponseWriter, request *http.Request) {
	paginationParams := paginationFromRequest(request)

	filter := filterFromRequest(request)
	filter.UserID = requestutil.ID(request, "userID")

	reviews, total, err := handler.service.ListReviews(request.Context(), filter, paginationParams)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, reviews, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

// UserReviewStats serves the user-scoped statistics route.
func (handler *Handler) UserReviewStats(writer http.ResponseWriter, request *http.Request) {
	stats, err := handler.service.UserReviewStats(request.Context(), requestutil.ID(request, "userID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, stats)
}

// # Comment Threads

func (handler *Handler) listComments(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	comments, total, err := handler.service.ListComments(request.Context(), requestutil.ID(request, "id"), paginationParams)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, comments, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

func (handler *Handler) createComment(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input CreateCommentInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	comment, err := handler.service.CreateComment(request.Context(), requestutil.ID(request, "id"), userID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, comment)
}

func (handler *Handler) deleteComment(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteComment(request.Context(), requestutil.ID(request, "commentID"), userID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

// # Moderation

type flagReviewInput struct {
	Reason string `json:"reason"`
}

func (handler *Handler) flagReview(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input flagReviewInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	flag, err := handler.service.FlagReview(request.Context(), requestutil.ID(request, "id"), userID, input.Reason)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, flag)
}
