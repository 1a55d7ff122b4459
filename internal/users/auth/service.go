// Copyright (c) 2026 Kritika. All rights reserved.
// Author: d.maksimov.dev@gmail.com

package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dmaksimov/kritika/internal/mail"
	"github.com/dmaksimov/kritika/internal/platform/apperr"
	"github.com/dmaksimov/kritika/internal/platform/constants"
	"github.com/dmaksimov/kritika/internal/platform/ctxutil"
	"github.com/dmaksimov/kritika/internal/platform/sec"
	"github.com/dmaksimov/kritika/pkg/uuidv7"
)

// # Contracts & Types

// TokenProvider defines the contract for minting signed access tokens.
type TokenProvider interface {
	// GenerateAccessToken creates a signed JWT string bound to the user's
	// identity and capabilities.
	GenerateAccessToken(userID, username, role string, isSuperuser bool, timeToLive time.Duration) (string, error)
}

// Service implements the signup and token-issuance use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to code generation,
// storage, or verification logic must be reviewed carefully.
type Service struct {
	userRepository UserRepository
	codeRepository CodeRepository
	tokenProvider  TokenProvider
	mailer         mail.Mailer
}

// NewService constructs a new auth [Service] with its dependencies.
func NewService(
	userRepo UserRepository,
	codeRepo CodeRepository,
	tokenProv TokenProvider,
	mailer mail.Mailer,
) *Service {
	return &Service{
		userRepository: userRepo,
		codeRepository: codeRepo,
		tokenProvider:  tokenProv,
		mailer:         mailer,
	}
}

// # Signup Flow

// SignupInput holds the data required to request a confirmation code.
type SignupInput struct {
	Username string
	Email    string
}

/*
Signup creates (or reuses) an account and dispatches a confirmation code.

Description: If the exact (username, email) pair is already registered, the
existing account is reused — repeating a signup is the supported way to
request a fresh code. A username or email attached to a *different*
identity is a validation failure, indistinguishable on the wire from any
other bad input.

The confirmation code is regenerated on every call, stored as a digest in
Redis with a TTL, and emailed out-of-band. A failed email dispatch does not
roll the account back: the user record stays, and signing up again resends.

Returns:
  - *User: The created or reused account
  - error: ValidationError (identity collision) or storage errors
*/
func (service *Service) Signup(context context.Context, input SignupInput) (*User, error) {
	user, err := service.userRepository.FindByUsername(context, input.Username)

	switch {
	case err == nil:
		// Existing account: the email must match the registered identity.
		if user.Email != input.Email {
			return nil, apperr.ValidationError("Validation failed", apperr.FieldError{
				Field:   FieldUsername,
				Message: "Username is already registered with a different email",
			})
		}

	case apperr.IsNotFound(err):
		// Fresh username: the email must not belong to someone else.
		if _, emailErr := service.userRepository.FindByEmail(context, input.Email); emailErr == nil {
			return nil, apperr.ValidationError("Validation failed", apperr.FieldError{
				Field:   FieldEmail,
				Message: "Email is already registered",
			})
		}

		user = &User{
			ID:       uuidv7.New(),
			Username: input.Username,
			Email:    input.Email,
			Role:     sec.RoleUser,
		}

		if createErr := service.userRepository.Create(context, user); createErr != nil {
			return nil, createErr
		}

	default:
		return nil, fmt.Errorf("auth_service_signup_lookup_failed: %w", err)
	}

	// Rotate the confirmation code: generate, persist digest, email the
	// plain value. Overwriting invalidates any previously issued code.
	code, err := sec.GenerateConfirmationCode(constants.ConfirmationCodeLength)
	if err != nil {
		return nil, fmt.Errorf("auth_service_code_generation_failed: %w", err)
	}

	if err := service.codeRepository.Set(context, user.Username, sec.HashCode(code), constants.ConfirmationCodeTTL); err != nil {
		return nil, fmt.Errorf("auth_service_code_store_failed: %w", err)
	}

	// Fire-and-forget dispatch. The account is already persisted; a relay
	// outage must not fail the signup, because re-signup regenerates the code.
	message := mail.Message{
		To:      user.Email,
		Subject: "Kritika registration",
		Body:    fmt.Sprintf("Your confirmation code is %s", code),
	}
	if err := service.mailer.Send(context, message); err != nil {
		ctxutil.GetLogger(context).ErrorContext(context, "confirmation_code_dispatch_failed",
			slog.String("username", user.Username),
			slog.Any("error", err),
		)
	}

	return user, nil
}

// # Token Issuance

// TokenOutput carries the minted bearer credential.
type TokenOutput struct {
	AccessToken string `json:"access_token"`
}

/*
IssueToken exchanges a confirmation code for a bearer access token.

Description: Looks up the account by username, verifies the presented code
against the stored digest in constant time, consumes the code (single use),
and mints an RS256 JWT carrying the user's identity and capabilities.

Returns:
  - *TokenOutput: The signed access token
  - error: NotFound (unknown username), ValidationError (wrong or expired
    code), or signing failures
*/
func (service *Service) IssueToken(context context.Context, username, confirmationCode string) (*TokenOutput, error) {
	user, err := service.userRepository.FindByUsername(context, username)
	if err != nil {
		// Unknown username is 404 by contract: signup is public, so there
		// is no enumeration concern to hide it behind a 400.
		return nil, err
	}

	storedDigest, err := service.codeRepository.Get(context, user.Username)
	if err != nil {
		return nil, invalidCodeError()
	}

	if !sec.VerifyCode(confirmationCode, storedDigest) {
		return nil, invalidCodeError()
	}

	// Single use: consume before minting so a race between two exchanges
	// cannot redeem the same code twice.
	if err := service.codeRepository.Delete(context, user.Username); err != nil {
		return nil, fmt.Errorf("auth_service_code_consume_failed: %w", err)
	}

	accessToken, err := service.tokenProvider.GenerateAccessToken(
		user.ID, user.Username, string(user.Role), user.IsSuperuser, constants.AccessTokenTTL,
	)
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	return &TokenOutput{AccessToken: accessToken}, nil
}

// invalidCodeError is the single client-facing failure for a wrong, expired,
// or missing confirmation code.
func invalidCodeError() error {
	return apperr.ValidationError("Validation failed", apperr.FieldError{
		Field:   FieldConfirmationCode,
		Message: "Confirmation code is invalid or expired",
	})
}
