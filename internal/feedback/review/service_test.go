// Copyright (c) 2026 Kritika. All rights reserved.
// Author: d.maksimov.dev@gmail.com

package review_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmaksimov/kritika/internal/catalog/title"
	"github.com/dmaksimov/kritika/internal/feedback/review"
	"github.com/dmaksimov/kritika/internal/platform/apperr"
	"github.com/dmaksimov/kritika/internal/platform/sec"
	"github.com/dmaksimov/kritika/pkg/pagination"
	"github.com/dmaksimov/kritika/pkg/pointer"
)

// # Test Doubles

type fakeReviewRepo struct {
	byID   map[int]*review.Review
	nextID int
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{byID: map[int]*review.Review{}, nextID: 1}
}

func (repo *fakeReviewRepo) ListByTitle(_ context.Context, titleID int, _ pagination.Params) ([]*review.Review, int, error) {
	matched := make([]*review.Review, 0)
	for _, item := range repo.byID {
		if item.TitleID == titleID {
			matched = append(matched, item)
		}
	}
	return matched, len(matched), nil
}

func (repo *fakeReviewRepo) GetByID(_ context.Context, titleID, reviewID int) (*review.Review, error) {
	item, ok := repo.byID[reviewID]
	if !ok || item.TitleID != titleID {
		return nil, apperr.NotFound("Review")
	}
	clone := *item
	return &clone, nil
}

func (repo *fakeReviewRepo) Create(_ context.Context, item *review.Review) error {
	for _, existing := range repo.byID {
		if existing.TitleID == item.TitleID && existing.AuthorID == item.AuthorID {
			return apperr.Conflict("You have already reviewed this title")
		}
	}
	item.ID = repo.nextID
	item.PubDate = time.Now()
	repo.nextID++
	repo.byID[item.ID] = item
	return nil
}

func (repo *fakeReviewRepo) Update(_ context.Context, item *review.Review) error {
	stored, ok := repo.byID[item.ID]
	if !ok {
		return apperr.NotFound("Review")
	}
	stored.Text = item.Text
	stored.Score = item.Score
	return nil
}

func (repo *fakeReviewRepo) Delete(_ context.Context, reviewID int) error {
	if _, ok := repo.byID[reviewID]; !ok {
		return apperr.NotFound("Review")
	}
	delete(repo.byID, reviewID)
	return nil
}

type fakeTitleResolver struct {
	known map[int]bool
}

func (resolver *fakeTitleResolver) GetByID(_ context.Context, id int) (*title.Title, error) {
	if resolver.known[id] {
		return &title.Title{ID: id}, nil
	}
	return nil, apperr.NotFound("Title")
}

func newService(repo *fakeReviewRepo) *review.Service {
	return review.NewService(repo, &fakeTitleResolver{known: map[int]bool{1: true}})
}

func claimsFor(userID string, role sec.UserRole) *sec.AuthClaims {
	return &sec.AuthClaims{UserID: userID, Username: "u-" + userID, Role: string(role)}
}

// # Creation

/*
TestService_Create covers parent resolution and the one-review-per-author
rule.
*/
func TestService_Create(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		repo := newFakeReviewRepo()
		service := newService(repo)

		created, err := service.Create(context.Background(), claimsFor("alice", sec.RoleUser), 1, review.CreateInput{
			Text: "Remarkable.", Score: 9,
		})

		require.NoError(t, err)
		assert.Equal(t, "alice", created.AuthorID)
		assert.False(t, created.PubDate.IsZero())
	})

	t.Run("unknown_title", func(t *testing.T) {
		service := newService(newFakeReviewRepo())

		_, err := service.Create(context.Background(), claimsFor("alice", sec.RoleUser), 42, review.CreateInput{
			Text: "Remarkable.", Score: 9,
		})

		require.Error(t, err)
		assert.True(t, apperr.IsNotFound(err))
	})

	t.Run("second_review_conflicts", func(t *testing.T) {
		repo := newFakeReviewRepo()
		service := newService(repo)
		alice := claimsFor("alice", sec.RoleUser)

		_, err := service.Create(context.Background(), alice, 1, review.CreateInput{Text: "First.", Score: 7})
		require.NoError(t, err)

		_, err = service.Create(context.Background(), alice, 1, review.CreateInput{Text: "Second.", Score: 3})
		require.Error(t, err)
		assert.Equal(t, 409, apperr.As(err).HTTPStatus)
	})
}

// # Permission Matrix

/*
TestService_MutationPermissions walks the owner/moderator/admin/stranger
matrix for review edits and deletions.
*/
func TestService_MutationPermissions(t *testing.T) {
	tests := []struct {
		name    string
		claims  *sec.AuthClaims
		allowed bool
	}{
		{"owner", claimsFor("alice", sec.RoleUser), true},
		{"moderator", claimsFor("mod", sec.RoleModerator), true},
		{"admin", claimsFor("root", sec.RoleAdmin), true},
		{"superuser_with_user_role", &sec.AuthClaims{UserID: "sup", Role: string(sec.RoleUser), IsSuperuser: true}, true},
		{"stranger", claimsFor("bob", sec.RoleUser), false},
	}

	for _, tt := range tests {
		t.Run("update_"+tt.name, func(t *testing.T) {
			repo := newFakeReviewRepo()
			service := newService(repo)

			created, err := service.Create(context.Background(), claimsFor("alice", sec.RoleUser), 1, review.CreateInput{
				Text: "Original.", Score: 5,
			})
			require.NoError(t, err)

			_, err = service.Update(context.Background(), tt.claims, 1, created.ID, review.UpdateInput{
				Score: pointer.To(8),
			})

			if tt.allowed {
				require.NoError(t, err)
				assert.Equal(t, 8, repo.byID[created.ID].Score)
			} else {
				require.Error(t, err)
				assert.Equal(t, 403, apperr.As(err).HTTPStatus)
			}
		})

		t.Run("delete_"+tt.name, func(t *testing.T) {
			repo := newFakeReviewRepo()
			service := newService(repo)

			created, err := service.Create(context.Background(), claimsFor("alice", sec.RoleUser), 1, review.CreateInput{
				Text: "Original.", Score: 5,
			})
			require.NoError(t, err)

			err = service.Delete(context.Background(), tt.claims, 1, created.ID)

			if tt.allowed {
				require.NoError(t, err)
				assert.Empty(t, repo.byID)
			} else {
				require.Error(t, err)
				assert.Len(t, repo.byID, 1)
			}
		})
	}
}

/*
TestService_Update_KeepsPubDate pins the immutability of pub_date across
edits.
*/
func TestService_Update_KeepsPubDate(t *testing.T) {
	repo := newFakeReviewRepo()
	service := newService(repo)
	alice := claimsFor("alice", sec.RoleUser)

	created, err := service.Create(context.Background(), alice, 1, review.CreateInput{Text: "v1", Score: 5})
	require.NoError(t, err)
	originalPubDate := created.PubDate

	updated, err := service.Update(context.Background(), alice, 1, created.ID, review.UpdateInput{
		Text: pointer.To("v2"),
	})

	require.NoError(t, err)
	assert.Equal(t, originalPubDate, updated.PubDate)
	assert.Equal(t, "v2", updated.Text)
}

/*
TestService_ListByTitle_UnknownTitle verifies that listing under a missing
parent is a 404 rather than an empty page.
*/
func TestService_ListByTitle_UnknownTitle(t *testing.T) {
	service := newService(newFakeReviewRepo())

	_, _, err := service.ListByTitle(context.Background(), 42, pagination.Params{Page: 1, Limit: 10})

	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}
