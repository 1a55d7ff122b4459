// Copyright (c) 2026 Kritika. All rights reserved.
// Author: d.maksimov.dev@gmail.com

// Package title exposes the reviewable catalog entries: public browsing
// with taxonomy filters, admin-gated curation, derived ratings.
package title

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmaksimov/kritika/internal/platform/middleware"
	requestutil "github.com/dmaksimov/kritika/internal/platform/request"
	"github.com/dmaksimov/kritika/internal/platform/respond"
	"github.com/dmaksimov/kritika/internal/platform/validate"
	"github.com/dmaksimov/kritika/pkg/pagination"
	"github.com/dmaksimov/kritika/pkg/query"
)

// Handler implements the HTTP layer for catalog titles.
type Handler struct {
	titleService *Service
}

// NewHandler constructs a new title [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{titleService: service}
}

// Routes returns a [chi.Router] with public reads and admin-gated writes.
// The review subtree is mounted under each title so nested handlers can
// read {titleID} from the shared route context.
func (handler *Handler) Routes(reviewRoutes chi.Router) chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)
	router.Get("/{titleID}", handler.get)

	router.Mount("/{titleID}/reviews", reviewRoutes)

	router.Group(func(adminRoute chi.Router) {
		adminRoute.Use(middleware.RequireAdmin)

		adminRoute.Post("/", handler.create)
		adminRoute.Patch("/{titleID}", handler.update)
		adminRoute.Delete("/{titleID}", handler.delete)
	})

	return router
}

// # Read Endpoints

/*
GET /api/v1/titles.

Request:
  - page, limit: query (Pagination)
  - category: query (Category slug)
  - genre: query (Genre slugs, comma-separated, any match)
  - year: query (Exact release year)
  - name: query (Name substring)

Response:
  - 200: []Title: Paginated, filtered title list with derived ratings
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	filter := Filter{
		CategorySlug: query.String(request, "category"),
		GenreSlugs:   query.StringSlice(query.String(request, "genre")),
		Year:         query.Int(request, "year"),
		Name:         query.String(request, "name"),
	}

	titles, total, err := handler.titleService.List(request.Context(), paginationParams, filter)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, titles, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

/*
GET /api/v1/titles/{titleID}.

Response:
  - 200: Title: The hydrated title
  - 404: ErrNotFound: Unknown title
*/
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	titleID, err := requestutil.IntParam(request, "titleID", "Title")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	title, err := handler.titleService.Get(request.Context(), titleID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, title)
}

// # Write Endpoints

type createRequest struct {
	Name        string   `json:"name"`
	Year        int      `json:"year"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Genre       []string `json:"genre"`
}

/*
POST /api/v1/titles.

Request:
  - body: createRequest (Category and genres referenced by slug)

Response:
  - 201: Title: The created title
  - 400: Validation: Bad input, future year, or unknown slug
  - 403: ErrForbidden: Admin capability required
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input createRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldName, input.Name).
		MaxLen(FieldName, input.Name, MaxNameLength).
		Custom(FieldYear, input.Year == 0, "Year is required")
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	title, err := handler.titleService.Create(request.Context(), CreateInput{
		Name:         input.Name,
		Year:         input.Year,
		Description:  input.Description,
		CategorySlug: input.Category,
		GenreSlugs:   input.Genre,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, title)
}

type updateRequest struct {
	Name        *string   `json:"name"`
	Year        *int      `json:"year"`
	Description *string   `json:"description"`
	Category    *string   `json:"category"`
	Genre       *[]string `json:"genre"`
}

/*
PATCH /api/v1/titles/{titleID}.

Response:
  - 200: Title: The updated title
  - 400: Validation: Bad input, future year, or unknown slug
  - 403: ErrForbidden: Admin capability required
  - 404: ErrNotFound: Unknown title
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	titleID, err := requestutil.IntParam(request, "titleID", "Title")
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
	if input.Name != nil {
		validator.Required(FieldName, *input.Name).
			MaxLen(FieldName, *input.Name, MaxNameLength)
	}
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	title, err := handler.titleService.Update(request.Context(), titleID, UpdateInput{
		Name:         input.Name,
		Year:         input.Year,
		Description:  input.Description,
		CategorySlug: input.Category,
		GenreSlugs:   input.Genre,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, title)
}

/*
DELETE /api/v1/titles/{titleID}.

Response:
  - 204: No Content: Title and its feedback removed
  - 403: ErrForbidden: Admin capability required
  - 404: ErrNotFound: Unknown title
*/
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	titleID, err := requestutil.IntParam(request, "titleID", "Title")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.titleService.Delete(request.Context(), titleID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
