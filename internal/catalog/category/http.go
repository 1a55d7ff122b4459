// Copyright (c) 2026 Kritika. All rights reserved.
// Author: d.maksimov.dev@gmail.com

// Package category manages the category taxonomy: public browsing, admin
// curation, slug-based identity.
package category

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmaksimov/kritika/internal/platform/middleware"
	requestutil "github.com/dmaksimov/kritika/internal/platform/request"
	"github.com/dmaksimov/kritika/internal/platform/respond"
	"github.com/dmaksimov/kritika/internal/platform/validate"
	"github.com/dmaksimov/kritika/pkg/pagination"
)

// Handler implements the HTTP layer for the category taxonomy.
type Handler struct {
	categoryService *Service
}

// NewHandler constructs a new category [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{categoryService: service}
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

/*
GET /api/v1/categories.

Request:
  - page, limit: query (Pagination)
  - search: query (Optional name/slug filter)

Response:
  - 200: []Category: Paginated category list
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)
	search := request.URL.Query().Get("search")

	categories, total, err := handler.categoryService.List(request.Context(), paginationParams, search)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, categories, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

type createRequest struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

/*
POST /api/v1/categories.

Response:
  - 201: Category: The created category
  - 400: Validation: Bad name or slug
  - 403: ErrForbidden: Admin capability required
  - 409: Conflict: Slug already in use
*/
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

	category, err := handler.categoryService.Create(request.Context(), CreateInput{
		Name: input.Name,
		Slug: input.Slug,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, category)
}

/*
DELETE /api/v1/categories/{slug}.

Response:
  - 204: No Content: Category removed, title references cleared
  - 403: ErrForbidden: Admin capability required
  - 404: ErrNotFound: Unknown slug
*/
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	categorySlug := requestutil.Param(request, "slug")

	if err := handler.categoryService.Delete(request.Context(), categorySlug); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
