// Copyright (c) 2026 Kritika. All rights reserved.
// Author: d.maksimov.dev@gmail.com

package sec

// # User Roles

// UserRole represents the authorization level granted to an account.
//
// The role set is closed: persistence and transport reject anything outside
// of it, so capability checks never fall back to raw string comparisons.
type UserRole string

const (
	// Unrestricted catalog and user management access
	RoleAdmin UserRole = "admin"

	// Can modify or delete any review/comment regardless of authorship
	RoleModerator UserRole = "moderator"

	// Default role for standard registered users
	RoleUser UserRole = "user"
)

// Valid reports whether the role belongs to the closed role set.
func (r UserRole) Valid() bool {
	switch r {
	case RoleAdmin, RoleModerator, RoleUser:
		return true
	}
	return false
}

// RoleNames returns every member of the closed role set, for validation messages.
func RoleNames() []string {
	return []string{string(RoleUser), string(RoleModerator), string(RoleAdmin)}
}

// # Capabilities

// IsAdmin reports whether the role alone grants administrative capability.
//
// Superuser elevation is a property of the account, not the role; callers
// holding a full identity should use [AuthClaims.IsAdmin] or the equivalent
// entity method instead.
func (r UserRole) IsAdmin() bool {
	return r == RoleAdmin
}

// IsModerator reports whether the role grants content moderation capability.
func (r UserRole) IsModerator() bool {
	return r == RoleModerator
}
