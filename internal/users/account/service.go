// Copyright (c) 2026 Kritika. All rights reserved.
// Author: d.maksimov.dev@gmail.com

package account

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dmaksimov/kritika/internal/platform/apperr"
	"github.com/dmaksimov/kritika/internal/platform/sec"
	"github.com/dmaksimov/kritika/internal/users/auth"
	"github.com/dmaksimov/kritika/pkg/pagination"
	"github.com/dmaksimov/kritika/pkg/uuidv7"
)

// # Service Layer

// Service orchestrates profile self-service and administrative user management.
//
// It reuses the auth package's user repository: accounts are one aggregate,
// the two packages just expose different slices of it.
type Service struct {
	userRepository auth.UserRepository
	logger         *slog.Logger
}

// NewService constructs a new account [Service].
func NewService(userRepo auth.UserRepository, logger *slog.Logger) *Service {
	return &Service{
		userRepository: userRepo,
		logger:         logger,
	}
}

// # Profile Self-Service

/*
GetProfile retrieves the full private identity of the authenticated user.

Returns:
  - *auth.User: The hydrated user profile
  - error: Not found or storage failures
*/
func (service *Service) GetProfile(context context.Context, userID string) (*auth.User, error) {
	user, err := service.userRepository.FindByID(context, userID)
	if err != nil {
		return nil, fmt.Errorf("account_service_get_profile_failed: %w", err)
	}
	return user, nil
}

// UpdateProfileInput defines the mutable subset of self-service profile
// fields. Role is deliberately absent: a user cannot grant themselves
// capabilities, and a role key in the request body is silently discarded.
type UpdateProfileInput struct {
	Email     *string
	FirstName *string
	LastName  *string
	Bio       *string
}

/*
UpdateProfile applies a partial set of changes to the caller's own profile.

Description: Fetches the existing user state, overlays the provided fields,
and synchronizes the change to persistent storage. Username and role are
never touched here.

Returns:
  - *auth.User: The updated user profile
  - error: Validation or storage failures
*/
func (service *Service) UpdateProfile(context context.Context, userID string, input UpdateProfileInput) (*auth.User, error) {
	user, err := service.userRepository.FindByID(context, userID)
	if err != nil {
		return nil, fmt.Errorf("account_service_update_lookup_failed: %w", err)
	}

	if input.Email != nil && *input.Email != user.Email {
		if err := service.ensureEmailFree(context, *input.Email); err != nil {
			return nil, err
		}
		user.Email = *input.Email
	}
	applyProfileFields(user, input)

	if err := service.userRepository.Update(context, user); err != nil {
		return nil, fmt.Errorf("account_service_update_failed: %w", err)
	}

	service.logger.Info("user_profile_updated", slog.String("user_id", userID))

	return user, nil
}

// # Administrative User Management

/*
ListUsers returns a page of accounts for administrators.

Parameters:
  - params: pagination.Params
  - search: string (Optional username substring filter)

Returns:
  - []*auth.User: The page of accounts ordered by username
  - int: Total matching accounts
  - error: Storage failures
*/
func (service *Service) ListUsers(context context.Context, params pagination.Params, search string) ([]*auth.User, int, error) {
	users, total, err := service.userRepository.List(context, params, search)
	if err != nil {
		return nil, 0, fmt.Errorf("account_service_list_failed: %w", err)
	}
	return users, total, nil
}

// CreateUserInput holds the data an administrator supplies for a new account.
type CreateUserInput struct {
	Username  string
	Email     string
	FirstName string
	LastName  string
	Bio       string
	Role      sec.UserRole
}

/*
CreateUser provisions an account on behalf of an administrator.

Description: Unlike signup, no confirmation code is dispatched. The new user
obtains a token through the regular signup flow, which reuses the account
when the identity pair matches.

Returns:
  - *auth.User: The created account
  - error: ValidationError on identity collisions, or storage failures
*/
func (service *Service) CreateUser(context context.Context, input CreateUserInput) (*auth.User, error) {
	if _, err := service.userRepository.FindByUsername(context, input.Username); err == nil {
		return nil, apperr.ValidationError("Validation failed", apperr.FieldError{
			Field:   auth.FieldUsername,
			Message: "Username is already registered",
		})
	} else if !apperr.IsNotFound(err) {
		return nil, fmt.Errorf("account_service_create_lookup_failed: %w", err)
	}

	if err := service.ensureEmailFree(context, input.Email); err != nil {
		return nil, err
	}

	role := input.Role
	if role == "" {
		role = sec.RoleUser
	}

	user := &auth.User{
		ID:        uuidv7.New(),
		Username:  input.Username,
		Email:     input.Email,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Bio:       input.Bio,
		Role:      role,
	}

	if err := service.userRepository.Create(context, user); err != nil {
		return nil, err
	}

	service.logger.Info("user_created_by_admin",
		slog.String("username", user.Username),
		slog.String("role", string(user.Role)),
	)

	return user, nil
}

/*
GetUser retrieves a single account by username for administrators.

Returns:
  - *auth.User: The account
  - error: Not found or storage failures
*/
func (service *Service) GetUser(context context.Context, username string) (*auth.User, error) {
	user, err := service.userRepository.FindByUsername(context, username)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// AdminUpdateInput extends the self-service field set with role assignment.
type AdminUpdateInput struct {
	UpdateProfileInput
	Role *sec.UserRole
}

/*
UpdateUser applies a partial administrative update to an account.

Returns:
  - *auth.User: The updated account
  - error: Not found, validation, or storage failures
*/
func (service *Service) UpdateUser(context context.Context, username string, input AdminUpdateInput) (*auth.User, error) {
	user, err := service.userRepository.FindByUsername(context, username)
	if err != nil {
		return nil, err
	}

	if input.Email != nil && *input.Email != user.Email {
		if err := service.ensureEmailFree(context, *input.Email); err != nil {
			return nil, err
		}
		user.Email = *input.Email
	}
	applyProfileFields(user, input.UpdateProfileInput)

	if input.Role != nil {
		user.Role = *input.Role
	}

	if err := service.userRepository.Update(context, user); err != nil {
		return nil, fmt.Errorf("account_service_admin_update_failed: %w", err)
	}

	service.logger.Info("user_updated_by_admin", slog.String("username", username))

	return user, nil
}

/*
DeleteUser removes an account and, via cascade, its reviews and comments.

Returns:
  - error: Not found or storage failures
*/
func (service *Service) DeleteUser(context context.Context, username string) error {
	if err := service.userRepository.Delete(context, username); err != nil {
		return err
	}

	service.logger.Warn("user_deleted_by_admin", slog.String("username", username))

	return nil
}

// # Helpers

// ensureEmailFree rejects an email already bound to another account.
func (service *Service) ensureEmailFree(context context.Context, email string) error {
	_, err := service.userRepository.FindByEmail(context, email)
	switch {
	case err == nil:
		return apperr.ValidationError("Validation failed", apperr.FieldError{
			Field:   auth.FieldEmail,
			Message: "Email is already registered",
		})
	case apperr.IsNotFound(err):
		return nil
	default:
		return fmt.Errorf("account_service_email_lookup_failed: %w", err)
	}
}

// applyProfileFields overlays the non-nil profile fields onto the user.
// Email is handled separately because it needs a uniqueness check.
func applyProfileFields(user *auth.User, input UpdateProfileInput) {
	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}
	if input.Bio != nil {
		user.Bio = *input.Bio
	}
}
