// Copyright (c) 2026 Kritika. All rights reserved.
// Author: d.maksimov.dev@gmail.com

/*
Package account provides profile self-service and administrative user
management over the accounts created by the auth package.

# Security

The /me endpoints require an authenticated caller. Everything else in this
package is admin-only.
*/
package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmaksimov/kritika/internal/platform/middleware"
	requestutil "github.com/dmaksimov/kritika/internal/platform/request"
	"github.com/dmaksimov/kritika/internal/platform/respond"
	"github.com/dmaksimov/kritika/internal/platform/sec"
	"github.com/dmaksimov/kritika/internal/platform/validate"
	"github.com/dmaksimov/kritika/internal/users/auth"
	"github.com/dmaksimov/kritika/pkg/pagination"
	"github.com/dmaksimov/kritika/pkg/pointer"
)

// Handler implements the HTTP layer for user account management.
type Handler struct {
	accountService *Service
}

// NewHandler constructs a new account [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{accountService: service}
}

// Routes returns a [chi.Router] configured with the account domain's endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Profile Self-Service
	router.Group(func(authenticatedRoute chi.Router) {
		authenticatedRoute.Use(middleware.RequireAuth)

		authenticatedRoute.Get("/me", handler.getMe)
		authenticatedRoute.Patch("/me", handler.updateMe)
	})

	// Administrative User Management
	router.Group(func(adminRoute chi.Router) {
		adminRoute.Use(middleware.RequireAdmin)

		adminRoute.Get("/", handler.listUsers)
		adminRoute.Post("/", handler.createUser)
		adminRoute.Get("/{username}", handler.getUser)
		adminRoute.Patch("/{username}", handler.updateUser)
		adminRoute.Delete("/{username}", handler.deleteUser)
	})

	return router
}

// # Profile Endpoints

/*
GET /api/v1/users/me.

Description: Retrieves the full private profile of the authenticated user.

Response:
  - 200: auth.User: Fully hydrated user profile
  - 401: ErrUnauthorized: Authentication required
*/
func (handler *Handler) getMe(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.GetProfile(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

// updateMeRequest defines the expected JSON payload for self-service profile
// updates. A role key in the body decodes into nothing and is discarded.
type updateMeRequest struct {
	Email     *string `json:"email"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Bio       *string `json:"bio"`
}

// validateProfileFields applies the shared field constraints for the
// optional profile attributes.
func validateProfileFields(validator *validate.Validator, input updateMeRequest) {
	if input.Email != nil {
		validator.Required(auth.FieldEmail, *input.Email).
			Email(auth.FieldEmail, *input.Email).
			MaxLen(auth.FieldEmail, *input.Email, auth.MaxEmailLength)
	}
	if input.FirstName != nil {
		validator.MaxLen(auth.FieldFirstName, *input.FirstName, auth.MaxNameLength)
	}
	if input.LastName != nil {
		validator.MaxLen(auth.FieldLastName, *input.LastName, auth.MaxNameLength)
	}
	if input.Bio != nil {
		validator.MaxLen(auth.FieldBio, *input.Bio, auth.MaxBioLength)
	}
}

/*
PATCH /api/v1/users/me.

Description: Applies partial updates to the authenticated user's profile.
Role cannot be changed here regardless of what the body carries.

Request:
  - body: updateMeRequest (Partial JSON)

Response:
  - 200: auth.User: The updated profile
  - 400: ErrInvalidJSON/Validation: Invalid input data
  - 401: ErrUnauthorized: Authentication required
*/
func (handler *Handler) updateMe(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateMeRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validateProfileFields(validator, input)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.UpdateProfile(request.Context(), userID, UpdateProfileInput{
		Email:     input.Email,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Bio:       input.Bio,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

// # Administrative Endpoints

/*
GET /api/v1/users.

Description: Enumerates accounts for administrators, paginated and
optionally filtered by a username substring.

Request:
  - page, limit: query (Pagination)
  - search: query (Optional username filter)

Response:
  - 200: []auth.User: Paginated account list
  - 403: ErrForbidden: Admin capability required
*/
func (handler *Handler) listUsers(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)
	search := request.URL.Query().Get("search")

	users, total, err := handler.accountService.ListUsers(request.Context(), paginationParams, search)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, users, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

// createUserRequest defines the payload for administrative account creation.
type createUserRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Bio       string `json:"bio"`
	Role      string `json:"role"`
}

/*
POST /api/v1/users.

Description: Provisions an account with an explicit role. No confirmation
code is emailed; the user authenticates through the regular signup flow.

Request:
  - body: createUserRequest

Response:
  - 201: auth.User: The created account
  - 400: Validation: Bad input or identity collision
  - 403: ErrForbidden: Admin capability required
*/
func (handler *Handler) createUser(writer http.ResponseWriter, request *http.Request) {
	var input createUserRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Required(auth.FieldUsername, input.Username).
		Username(auth.FieldUsername, input.Username).
		MaxLen(auth.FieldUsername, input.Username, auth.MaxUsernameLength).
		Required(auth.FieldEmail, input.Email).
		Email(auth.FieldEmail, input.Email).
		MaxLen(auth.FieldEmail, input.Email, auth.MaxEmailLength).
		MaxLen(auth.FieldFirstName, input.FirstName, auth.MaxNameLength).
		MaxLen(auth.FieldLastName, input.LastName, auth.MaxNameLength).
		MaxLen(auth.FieldBio, input.Bio, auth.MaxBioLength)
	if input.Role != "" {
		validator.OneOf(auth.FieldRole, input.Role, sec.RoleNames()...)
	}
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.CreateUser(request.Context(), CreateUserInput{
		Username:  input.Username,
		Email:     input.Email,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Bio:       input.Bio,
		Role:      sec.UserRole(input.Role),
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, user)
}

/*
GET /api/v1/users/{username}.

Response:
  - 200: auth.User: The account
  - 403: ErrForbidden: Admin capability required
  - 404: ErrNotFound: Unknown username
*/
func (handler *Handler) getUser(writer http.ResponseWriter, request *http.Request) {
	username := requestutil.Param(request, "username")

	user, err := handler.accountService.GetUser(request.Context(), username)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

// adminUpdateRequest extends the profile field set with role assignment.
type adminUpdateRequest struct {
	updateMeRequest
	Role *string `json:"role"`
}

/*
PATCH /api/v1/users/{username}.

Description: Applies a partial administrative update, including role changes.

Request:
  - body: adminUpdateRequest (Partial JSON)

Response:
  - 200: auth.User: The updated account
  - 400: Validation: Invalid input data
  - 403: ErrForbidden: Admin capability required
  - 404: ErrNotFound: Unknown username
*/
func (handler *Handler) updateUser(writer http.ResponseWriter, request *http.Request) {
	username := requestutil.Param(request, "username")

	var input adminUpdateRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validateProfileFields(validator, input.updateMeRequest)
	if input.Role != nil {
		validator.OneOf(auth.FieldRole, *input.Role, sec.RoleNames()...)
	}
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	updateInput := AdminUpdateInput{
		UpdateProfileInput: UpdateProfileInput{
			Email:     input.Email,
			FirstName: input.FirstName,
			LastName:  input.LastName,
			Bio:       input.Bio,
		},
	}
	if input.Role != nil {
		updateInput.Role = pointer.To(sec.UserRole(*input.Role))
	}

	user, err := handler.accountService.UpdateUser(request.Context(), username, updateInput)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

/*
DELETE /api/v1/users/{username}.

Response:
  - 204: No Content: Account deleted
  - 403: ErrForbidden: Admin capability required
  - 404: ErrNotFound: Unknown username
*/
func (handler *Handler) deleteUser(writer http.ResponseWriter, request *http.Request) {
	username := requestutil.Param(request, "username")

	if err := handler.accountService.DeleteUser(request.Context(), username); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
