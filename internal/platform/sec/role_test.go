// Copyright (c) 2026 Kritika. All rights reserved.
// Author: d.maksimov.dev@gmail.com

package sec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmaksimov/kritika/internal/platform/sec"
)

/*
TestUserRole_Valid verifies that only members of the closed role set pass.
*/
func TestUserRole_Valid(t *testing.T) {
	tests := []struct {
		name  string
		role  sec.UserRole
		valid bool
	}{
		{"user", sec.RoleUser, true},
		{"moderator", sec.RoleModerator, true},
		{"admin", sec.RoleAdmin, true},
		{"unknown", sec.UserRole("owner"), false},
		{"empty", sec.UserRole(""), false},
		{"case_sensitive", sec.UserRole("Admin"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, tt.role.Valid())
		})
	}
}

/*
TestUserRole_Capabilities checks the capability predicates per role.
*/
func TestUserRole_Capabilities(t *testing.T) {
	assert.True(t, sec.RoleAdmin.IsAdmin())
	assert.False(t, sec.RoleAdmin.IsModerator())

	assert.True(t, sec.RoleModerator.IsModerator())
	assert.False(t, sec.RoleModerator.IsAdmin())

	assert.False(t, sec.RoleUser.IsAdmin())
	assert.False(t, sec.RoleUser.IsModerator())
}

/*
TestAuthClaims_SuperuserElevation verifies that the superuser flag grants
admin capability independently of the stored role.
*/
func TestAuthClaims_SuperuserElevation(t *testing.T) {
	regular := &sec.AuthClaims{Role: string(sec.RoleUser)}
	assert.False(t, regular.IsAdmin())

	super := &sec.AuthClaims{Role: string(sec.RoleUser), IsSuperuser: true}
	assert.True(t, super.IsAdmin())
	assert.False(t, super.IsModerator())
}

/*
TestRoleNames verifies the full role set is exposed for validation messages.
*/
func TestRoleNames(t *testing.T) {
	assert.ElementsMatch(t, []string{"user", "moderator", "admin"}, sec.RoleNames())
}
