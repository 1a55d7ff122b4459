// Copyright (c) 2026 Kritika. All rights reserved.
// Author: d.maksimov.dev@gmail.com

/*
Package auth implements the user identity layer: signup with email
confirmation codes and access-token issuance.

There are no passwords. Identity is proven by receiving a single-use
confirmation code at the registered email address and exchanging it for a
bearer token. Codes live in Redis with a TTL; repeating a signup rotates
the code, and a successful token exchange consumes it.

# Architecture

  - Service: Orchestrates signup and token issuance.
  - Repositories: Abstracted interfaces for PostgreSQL (users) and Redis (codes).
  - Security: SHA-256 hashed codes and RSA-signed JWTs via the sec package.
*/
package auth

import (
	"time"

	"github.com/dmaksimov/kritika/internal/platform/sec"
)

// # Domain Entities

// User represents a registered member of the Kritika platform.
type User struct {
	ID        string       `json:"-"`
	Username  string       `json:"username"`
	Email     string       `json:"email"`
	FirstName string       `json:"first_name,omitempty"`
	LastName  string       `json:"last_name,omitempty"`
	Bio       string       `json:"bio,omitempty"`
	Role      sec.UserRole `json:"role"`

	// IsSuperuser elevates the account to admin capability regardless of
	// role. Set out-of-band (ops tooling), never via the API.
	IsSuperuser bool `json:"-"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// IsAdmin reports whether the account holds administrative capability:
// the admin role, or the superuser flag.
func (u *User) IsAdmin() bool {
	return u.Role.IsAdmin() || u.IsSuperuser
}

// IsModerator reports whether the account holds moderation capability.
func (u *User) IsModerator() bool {
	return u.Role.IsModerator()
}

// # Field Identifiers

// Global field names for validation and identity mapping in the authentication domain.
const (
	FieldUsername         = "username"
	FieldEmail            = "email"
	FieldFirstName        = "first_name"
	FieldLastName         = "last_name"
	FieldBio              = "bio"
	FieldRole             = "role"
	FieldConfirmationCode = "confirmation_code"
	FieldAccessToken      = "access_token"
)

// # Validation Constraints

const (
	// MaxUsernameLength bounds the username column.
	MaxUsernameLength = 150
	// MaxEmailLength bounds the email column (RFC 5321 path limit).
	MaxEmailLength = 254
	// MaxNameLength bounds the first and last name columns.
	MaxNameLength = 150
	// MaxBioLength bounds the free-text biography.
	MaxBioLength = 1024
)
