// Copyright (c) 2026 Kritika. All rights reserved.
// Author: d.maksimov.dev@gmail.com

package comment_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmaksimov/kritika/internal/feedback/comment"
	"github.com/dmaksimov/kritika/internal/feedback/review"
	"github.com/dmaksimov/kritika/internal/platform/apperr"
	"github.com/dmaksimov/kritika/internal/platform/sec"
	"github.com/dmaksimov/kritika/pkg/pagination"
)

// # Test Doubles

type fakeCommentRepo struct {
	byID   map[int]*comment.Comment
	nextID int
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{byID: map[int]*comment.Comment{}, nextID: 1}
}

func (repo *fakeCommentRepo) ListByReview(_ context.Context, reviewID int, _ pagination.Params) ([]*comment.Comment, int, error) {
	matched := make([]*comment.Comment, 0)
	for _, item := range repo.byID {
		if item.ReviewID == reviewID {
			matched = append(matched, item)
		}
	}
	return matched, len(matched), nil
}

func (repo *fakeCommentRepo) GetByID(_ context.Context, reviewID, commentID int) (*comment.Comment, error) {
	item, ok := repo.byID[commentID]
	if !ok || item.ReviewID != reviewID {
		return nil, apperr.NotFound("Comment")
	}
	clone := *item
	return &clone, nil
}

func (repo *fakeCommentRepo) Create(_ context.Context, item *comment.Comment) error {
	item.ID = repo.nextID
	item.PubDate = time.Now()
	repo.nextID++
	repo.byID[item.ID] = item
	return nil
}

func (repo *fakeCommentRepo) Update(_ context.Context, item *comment.Comment) error {
	stored, ok := repo.byID[item.ID]
	if !ok {
		return apperr.NotFound("Comment")
	}
	stored.Text = item.Text
	return nil
}

func (repo *fakeCommentRepo) Delete(_ context.Context, commentID int) error {
	if _, ok := repo.byID[commentID]; !ok {
		return apperr.NotFound("Comment")
	}
	delete(repo.byID, commentID)
	return nil
}

// fakeReviewResolver knows exactly one review: id 5 under title 1.
type fakeReviewResolver struct{}

func (resolver *fakeReviewResolver) GetByID(_ context.Context, titleID, reviewID int) (*review.Review, error) {
	if titleID == 1 && reviewID == 5 {
		return &review.Review{ID: reviewID, TitleID: titleID, AuthorID: "alice"}, nil
	}
	return nil, apperr.NotFound("Review")
}

func newService(repo *fakeCommentRepo) *comment.Service {
	return comment.NewService(repo, &fakeReviewResolver{})
}

func claimsFor(userID string, role sec.UserRole) *sec.AuthClaims {
	return &sec.AuthClaims{UserID: userID, Username: "u-" + userID, Role: string(role)}
}

// # Tests

/*
TestService_Create verifies parent-chain resolution for comment creation.
*/
func TestService_Create(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		service := newService(newFakeCommentRepo())

		created, err := service.Create(context.Background(), claimsFor("bob", sec.RoleUser), 1, 5, "Agreed.")

		require.NoError(t, err)
		assert.Equal(t, "bob", created.AuthorID)
		assert.Equal(t, 5, created.ReviewID)
		assert.False(t, created.PubDate.IsZero())
	})

	t.Run("unknown_review", func(t *testing.T) {
		service := newService(newFakeCommentRepo())

		_, err := service.Create(context.Background(), claimsFor("bob", sec.RoleUser), 1, 99, "Agreed.")

		require.Error(t, err)
		assert.True(t, apperr.IsNotFound(err))
	})

	t.Run("review_under_wrong_title", func(t *testing.T) {
		service := newService(newFakeCommentRepo())

		_, err := service.Create(context.Background(), claimsFor("bob", sec.RoleUser), 2, 5, "Agreed.")

		require.Error(t, err)
		assert.True(t, apperr.IsNotFound(err))
	})
}

/*
TestService_MutationPermissions checks the author-or-staff rule on comment
edits and deletions.
*/
func TestService_MutationPermissions(t *testing.T) {
	tests := []struct {
		name    string
		claims  *sec.AuthClaims
		allowed bool
	}{
		{"author", claimsFor("bob", sec.RoleUser), true},
		{"moderator", claimsFor("mod", sec.RoleModerator), true},
		{"admin", claimsFor("root", sec.RoleAdmin), true},
		{"stranger", claimsFor("eve", sec.RoleUser), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeCommentRepo()
			service := newService(repo)

			created, err := service.Create(context.Background(), claimsFor("bob", sec.RoleUser), 1, 5, "Original.")
			require.NoError(t, err)

			_, err = service.Update(context.Background(), tt.claims, 1, 5, created.ID, "Edited.")

			if tt.allowed {
				require.NoError(t, err)
				assert.Equal(t, "Edited.", repo.byID[created.ID].Text)
			} else {
				require.Error(t, err)
				assert.Equal(t, 403, apperr.As(err).HTTPStatus)
				assert.Equal(t, "Original.", repo.byID[created.ID].Text)
			}

			err = service.Delete(context.Background(), tt.claims, 1, 5, created.ID)
			if tt.allowed {
				require.NoError(t, err)
			} else {
				require.Error(t, err)
			}
		})
	}
}
