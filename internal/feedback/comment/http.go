// Copyright (c) 2026 Kritika. All rights reserved.
// Author: d.maksimov.dev@gmail.com

// Package comment exposes the comment threads nested under reviews.
package comment

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmaksimov/kritika/internal/platform/middleware"
	requestutil "github.com/dmaksimov/kritika/internal/platform/request"
	"github.com/dmaksimov/kritika/internal/platform/respond"
	"github.com/dmaksimov/kritika/internal/platform/validate"
	"github.com/dmaksimov/kritika/pkg/pagination"
)

// Handler implements the HTTP layer for the nested comment collection,
// mounted under /titles/{titleID}/reviews/{reviewID}/comments.
type Handler struct {
	commentService *Service
}

// NewHandler constructs a new comment [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{commentService: service}
}

// Routes returns a [chi.Router] for the nested comment collection.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)
	router.Get("/{commentID}", handler.get)

	router.Group(func(authenticatedRoute chi.Router) {
		authenticatedRoute.Use(middleware.RequireAuth)

		authenticatedRoute.Post("/", handler.create)
		authenticatedRoute.Patch("/{commentID}", handler.update)
		authenticatedRoute.Delete("/{commentID}", handler.delete)
	})

	return router
}

type commentRequest struct {
	Text string `json:"text"`
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	titleID, reviewID, err := parentIDs(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	paginationParams := pagination.FromRequest(request)

	comments, total, err := handler.commentService.ListByReview(request.Context(), titleID, reviewID, paginationParams)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, comments, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	titleID, reviewID, err := parentIDs(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	commentID, err := requestutil.IntParam(request, "commentID", "Comment")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	comment, err := handler.commentService.Get(request.Context(), titleID, reviewID, commentID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, comment)
}

func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	titleID, reviewID, err := parentIDs(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input commentRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldText, input.Text)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	comment, err := handler.commentService.Create(request.Context(), claims, titleID, reviewID, input.Text)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, comment)
}

func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	titleID, reviewID, err := parentIDs(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	commentID, err := requestutil.IntParam(request, "commentID", "Comment")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input commentRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldText, input.Text)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	comment, err := handler.commentService.Update(request.Context(), claims, titleID, reviewID, commentID, input.Text)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, comment)
}

func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	titleID, reviewID, err := parentIDs(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	commentID, err := requestutil.IntParam(request, "commentID", "Comment")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.commentService.Delete(request.Context(), claims, titleID, reviewID, commentID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

func parentIDs(request *http.Request) (int, int, error) {
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
