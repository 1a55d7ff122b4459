// Copyright (c) 2026 Kritika. All rights reserved.
// Author: d.maksimov.dev@gmail.com

package auth

import (
	"context"
	"time"

	"github.com/dmaksimov/kritika/pkg/pagination"
)

// # User Data Access

// UserRepository defines the data access contract for user accounts.
//
// Implementations map "row not found" onto apperr.NotFound so services never
// see storage-specific sentinel errors.
type UserRepository interface {
	// FindByID returns the account with the given ID.
	FindByID(context context.Context, id string) (*User, error)

	// FindByUsername returns the account with the given username.
	FindByUsername(context context.Context, username string) (*User, error)

	// FindByEmail returns the account with the given email.
	FindByEmail(context context.Context, email string) (*User, error)

	// List returns a page of accounts ordered by username, plus the total
	// count. A non-empty search narrows the page to usernames containing it.
	List(context context.Context, params pagination.Params, search string) ([]*User, int, error)

	// Create persists a brand-new user account.
	Create(context context.Context, user *User) error

	// Update persists changes to the mutable profile fields (email, names,
	// bio, role). Username is immutable.
	Update(context context.Context, user *User) error

	// Delete removes the account and, via cascade, its reviews and comments.
	Delete(context context.Context, username string) error
}

// # Confirmation Code Access

// CodeRepository defines the contract for storing volatile confirmation codes.
//
// Codes are keyed by username and stored as digests. Set overwrites any
// previous code for the same user, which is what makes repeated signups a
// rotation rather than an error.
type CodeRepository interface {
	// Set stores the code digest for a username with the given TTL,
	// replacing any existing one.
	Set(context context.Context, username, codeDigest string, ttl time.Duration) error

	// Get retrieves the stored digest. Returns apperr.NotFound when the code
	// is absent or expired.
	Get(context context.Context, username string) (string, error)

	// Delete removes the code after successful use (single-use guarantee).
	Delete(context context.Context, username string) error
}
