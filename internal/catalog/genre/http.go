// Copyright (c) 2026 Kritika. All rights reserved.
// Author: d.maksimov.dev@gmail.com

// Package genre manages the genre taxonomy attached to catalog titles.
package genre

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmaksimov/kritika/internal/platform/middleware"
	requestutil "github.com/dmaksimov/kritika/internal/platform/request"
	"github.com/dmaksimov/kritika/internal/platform/respond"
	"github.com/dmaksimov/kritika/internal/platform/validate"
	"github.com/dmaksimov/kritika/pkg/pagination"
)

// Handler implements the HTTP layer for the genre taxonomy.
type Handler struct {
	genreService *Service
}

// NewHandler constructs a new genre [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{genreService: service}
}

// Routes returns a [chi.Router] with public reads and admin-gated writes.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)

	router.Group(func(adminRoute chi.Router) {
		adminRoute.Use(middleware.RequireAdmin)

		adminRoute.Post("/", handler.create)
		adminRoute.Delete("/{slug}", handler.delete)
	})

	return router
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)
	search := request.URL.Query().Get("search")

	genres, total, err := handler.genreService.List(request.Context(), paginationParams, search)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, genres, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

type createRequest struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input createRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldName, input.Name).
		MaxLen(FieldName, input.Name, MaxNameLength)
	if input.Slug != "" {
		validator.Slug(FieldSlug, input.Slug).
			MaxLen(FieldSlug, input.Slug, MaxSlugLength)
	}
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	genre, err := handler.genreService.Create(request.Context(), CreateInput{
		Name: input.Name,
		Slug: input.Slug,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, genre)
}

func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	genreSlug := requestutil.Param(request, "slug")

	if err := handler.genreService.Delete(request.Context(), genreSlug); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
