// Copyright (c) 2026 Kritika. All rights reserved.
// Author: d.maksimov.dev@gmail.com

// Package review exposes the per-title review collections: public reads,
// authenticated writes, owner-or-staff edits.
package review

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmaksimov/kritika/internal/platform/middleware"
	requestutil "github.com/dmaksimov/kritika/internal/platform/request"
	"github.com/dmaksimov/kritika/internal/platform/respond"
	"github.com/dmaksimov/kritika/internal/platform/validate"
	"github.com/dmaksimov/kritika/pkg/pagination"
)

// Handler implements the HTTP layer for the nested review collection.
//
// The router mounts it under /titles/{titleID}/reviews; every handler pulls
// the parent title from the path and resolves it before touching reviews.
type Handler struct {
	reviewService *Service
}

// NewHandler constructs a new review [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{reviewService: service}
}

// Routes returns a [chi.Router] for the nested review collection, with the
// comment subtree mounted under each review.
func (handler *Handler) Routes(commentRoutes chi.Router) chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)
	router.Get("/{reviewID}", handler.get)

	router.Mount("/{reviewID}/comments", commentRoutes)

	router.Group(func(authenticatedRoute chi.Router) {
		authenticatedRoute.Use(middleware.RequireAuth)

		authenticatedRoute.Post("/", handler.create)
		authenticatedRoute.Patch("/{reviewID}", handler.update)
		authenticatedRoute.Delete("/{reviewID}", handler.delete)
	})

	return router
}

// # Read Endpoints

/*
GET /api/v1/titles/{titleID}/reviews.

Response:
  - 200: []Review: Paginated reviews, newest first
  - 404: ErrNotFound: Unknown title
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	titleID, err := requestutil.IntParam(request, "titleID", "Title")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	paginationParams := pagination.FromRequest(request)

	reviews, total, err := handler.reviewService.ListByTitle(request.Context(), titleID, paginationParams)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, reviews, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

/*
GET /api/v1/titles/{titleID}/reviews/{reviewID}.

Response:
  - 200: Review: The review
  - 404: ErrNotFound: Unknown title or review
*/
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	titleID, reviewID, err := pathIDs(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	review, err := handler.reviewService.Get(request.Context(), titleID, reviewID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, review)
}

// # Write Endpoints

type createRequest struct {
	Text  string `json:"text"`
	Score int    `json:"score"`
}

/*
POST /api/v1/titles/{titleID}/reviews.

Response:
  - 201: Review: The created review
  - 400: Validation: Missing text or score out of range
  - 401: ErrUnauthorized: Authentication required
  - 404: ErrNotFound: Unknown title
  - 409: Conflict: Caller already reviewed this title
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	titleID, err := requestutil.IntParam(request, "titleID", "Title")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldText, input.Text).
		Range(FieldScore, input.Score, MinScore, MaxScore)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	review, err := handler.reviewService.Create(request.Context(), claims, titleID, CreateInput{
		Text:  input.Text,
		Score: input.Score,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, review)
}

type updateRequest struct {
	Text  *string `json:"text"`
	Score *int    `json:"score"`
}

/*
PATCH /api/v1/titles/{titleID}/reviews/{reviewID}.

Response:
  - 200: Review: The updated review
  - 400: Validation: Empty text or score out of range
  - 401: ErrUnauthorized: Authentication required
  - 403: ErrForbidden: Caller is neither author nor staff
  - 404: ErrNotFound: Unknown title or review
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	titleID, reviewID, err := pathIDs(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	if input.Text != nil {
		validator.Required(FieldText, *input.Text)
	}
	if input.Score != nil {
		validator.Range(FieldScore, *input.Score, MinScore, MaxScore)
	}
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	review, err := handler.reviewService.Update(request.Context(), claims, titleID, reviewID, UpdateInput{
		Text:  input.Text,
		Score: input.Score,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, review)
}

/*
DELETE /api/v1/titles/{titleID}/reviews/{reviewID}.

Response:
  - 204: No Content: Review and its comments removed
  - 401: ErrUnauthorized: Authentication required
  - 403: ErrForbidden: Caller is neither author nor staff
  - 404: ErrNotFound: Unknown title or review
*/
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	titleID, reviewID, err := pathIDs(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.reviewService.Delete(request.Context(), claims, titleID, reviewID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// pathIDs extracts the nested title and review identifiers.
func pathIDs(request *http.Request) (int, int, error) {
	titleID, err := requestutil.IntParam(request, "titleID", "Title")
	if err != nil {
		return 0, 0, err
	}
	reviewID, err := requestutil.IntParam(request, "reviewID", "Review")
	if err != nil {
		return 0, 0, err
	}
	return titleID, reviewID, nil
}
