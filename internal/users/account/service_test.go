// Copyright (c) 2026 Kritika. All rights reserved.
// Author: d.maksimov.dev@gmail.com

package account_test

import (
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmaksimov/kritika/internal/platform/apperr"
	"github.com/dmaksimov/kritika/internal/platform/sec"
	"github.com/dmaksimov/kritika/internal/users/account"
	"github.com/dmaksimov/kritika/internal/users/auth"
	"github.com/dmaksimov/kritika/pkg/pagination"
	"github.com/dmaksimov/kritika/pkg/pointer"
)

// # Test Doubles

type fakeUserRepo struct {
	byUsername map[string]*auth.User
}

func newFakeUserRepo(users ...*auth.User) *fakeUserRepo {
	repo := &fakeUserRepo{byUsername: map[string]*auth.User{}}
	for _, user := range users {
		repo.byUsername[user.Username] = user
	}
	return repo
}

func (repo *fakeUserRepo) FindByID(_ context.Context, id string) (*auth.User, error) {
	for _, user := range repo.byUsername {
		if user.ID == id {
			clone := *user
			return &clone, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (repo *fakeUserRepo) FindByUsername(_ context.Context, username string) (*auth.User, error) {
	if user, ok := repo.byUsername[username]; ok {
		clone := *user
		return &clone, nil
	}
	return nil, apperr.NotFound("User")
}

func (repo *fakeUserRepo) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	for _, user := range repo.byUsername {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (repo *fakeUserRepo) List(_ context.Context, params pagination.Params, search string) ([]*auth.User, int, error) {
	matched := make([]*auth.User, 0)
	for _, user := range repo.byUsername {
		if search == "" || strings.Contains(user.Username, search) {
			matched = append(matched, user)
		}
	}
	return matched, len(matched), nil
}

func (repo *fakeUserRepo) Create(_ context.Context, user *auth.User) error {
	repo.byUsername[user.Username] = user
	return nil
}

func (repo *fakeUserRepo) Update(_ context.Context, user *auth.User) error {
	repo.byUsername[user.Username] = user
	return nil
}

func (repo *fakeUserRepo) Delete(_ context.Context, username string) error {
	if _, ok := repo.byUsername[username]; !ok {
		return apperr.NotFound("User")
	}
	delete(repo.byUsername, username)
	return nil
}

func newService(repo *fakeUserRepo) *account.Service {
	return account.NewService(repo, slog.Default())
}

func moderatorUser() *auth.User {
	return &auth.User{
		ID:       "01933-moderator",
		Username: "moder",
		Email:    "moder@example.com",
		Role:     sec.RoleModerator,
	}
}

// # Profile Self-Service

/*
TestService_UpdateProfile_PreservesRole verifies the privilege boundary:
profile updates can never alter the caller's role.
*/
func TestService_UpdateProfile_PreservesRole(t *testing.T) {
	repo := newFakeUserRepo(moderatorUser())
	service := newService(repo)

	updated, err := service.UpdateProfile(context.Background(), "01933-moderator", account.UpdateProfileInput{
		Bio:       pointer.To("Watching the feedback queues."),
		FirstName: pointer.To("Mo"),
	})

	require.NoError(t, err)
	assert.Equal(t, sec.RoleModerator, updated.Role)
	assert.Equal(t, "Mo", updated.FirstName)
	assert.Equal(t, "Watching the feedback queues.", updated.Bio)
	assert.Equal(t, "moder", updated.Username)
}

/*
TestService_UpdateProfile_EmailCollision verifies that changing the email to
one owned by another account is rejected.
*/
func TestService_UpdateProfile_EmailCollision(t *testing.T) {
	other := &auth.User{ID: "01933-other", Username: "other", Email: "taken@example.com", Role: sec.RoleUser}
	repo := newFakeUserRepo(moderatorUser(), other)
	service := newService(repo)

	_, err := service.UpdateProfile(context.Background(), "01933-moderator", account.UpdateProfileInput{
		Email: pointer.To("taken@example.com"),
	})

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "VALIDATION_ERROR", ae.Code)
}

// # Administrative Management

/*
TestService_CreateUser covers the administrative creation path: explicit
role, default role, and identity collisions.
*/
func TestService_CreateUser(t *testing.T) {
	t.Run("explicit_role", func(t *testing.T) {
		repo := newFakeUserRepo()
		service := newService(repo)

		user, err := service.CreateUser(context.Background(), account.CreateUserInput{
			Username: "newmod", Email: "newmod@example.com", Role: sec.RoleModerator,
		})

		require.NoError(t, err)
		assert.Equal(t, sec.RoleModerator, user.Role)
		assert.NotEmpty(t, user.ID)
	})

	t.Run("defaults_to_user_role", func(t *testing.T) {
		repo := newFakeUserRepo()
		service := newService(repo)

		user, err := service.CreateUser(context.Background(), account.CreateUserInput{
			Username: "plain", Email: "plain@example.com",
		})

		require.NoError(t, err)
		assert.Equal(t, sec.RoleUser, user.Role)
	})

	t.Run("duplicate_username", func(t *testing.T) {
		repo := newFakeUserRepo(moderatorUser())
		service := newService(repo)

		_, err := service.CreateUser(context.Background(), account.CreateUserInput{
			Username: "moder", Email: "fresh@example.com",
		})

		require.Error(t, err)
		assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
	})

	t.Run("duplicate_email", func(t *testing.T) {
		repo := newFakeUserRepo(moderatorUser())
		service := newService(repo)

		_, err := service.CreateUser(context.Background(), account.CreateUserInput{
			Username: "fresh", Email: "moder@example.com",
		})

		require.Error(t, err)
		assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
	})
}

/*
TestService_UpdateUser_RoleChange verifies that administrators can promote
and demote accounts by username.
*/
func TestService_UpdateUser_RoleChange(t *testing.T) {
	repo := newFakeUserRepo(moderatorUser())
	service := newService(repo)

	updated, err := service.UpdateUser(context.Background(), "moder", account.AdminUpdateInput{
		Role: pointer.To(sec.RoleAdmin),
	})

	require.NoError(t, err)
	assert.Equal(t, sec.RoleAdmin, updated.Role)

	_, err = service.UpdateUser(context.Background(), "ghost", account.AdminUpdateInput{})
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}

/*
TestService_DeleteUser verifies deletion and the not-found contract.
*/
func TestService_DeleteUser(t *testing.T) {
	repo := newFakeUserRepo(moderatorUser())
	service := newService(repo)

	require.NoError(t, service.DeleteUser(context.Background(), "moder"))

	err := service.DeleteUser(context.Background(), "moder")
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}
