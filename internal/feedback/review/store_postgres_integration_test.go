//go:build integration

// Copyright (c) 2026 Kritika. All rights reserved.
// Author: d.maksimov.dev@gmail.com

package review_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/dmaksimov/kritika/internal/catalog/title"
	"github.com/dmaksimov/kritika/internal/feedback/comment"
	"github.com/dmaksimov/kritika/internal/feedback/review"
	"github.com/dmaksimov/kritika/internal/platform/apperr"
	"github.com/dmaksimov/kritika/internal/platform/migration"
	"github.com/dmaksimov/kritika/internal/platform/sec"
	"github.com/dmaksimov/kritika/internal/users/auth"
	"github.com/dmaksimov/kritika/pkg/pagination"
	"github.com/dmaksimov/kritika/pkg/uuidv7"
)

// setupTestDB starts a PostgreSQL container, applies the migrations, and
// returns a connected pool. The container is terminated via t.Cleanup.
func setupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:alpine",
		postgres.WithDatabase("kritika"),
		postgres.WithUsername("kritika"),
		postgres.WithPassword("kritika"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	quietLog := slog.New(slog.NewTextHandler(io.Discard, nil))
	require.NoError(t, migration.RunUp(connStr, "../../../data/migrations", quietLog))

	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	return pool
}

// createTestUser inserts an account and returns its ID.
func createTestUser(t *testing.T, pool *pgxpool.Pool, username string) string {
	t.Helper()

	user := &auth.User{
		ID:       uuidv7.New(),
		Username: username,
		Email:    username + "@example.com",
		Role:     sec.RoleUser,
	}
	require.NoError(t, auth.NewUserRepository(pool).Create(context.Background(), user))
	return user.ID
}

// seedTitleAndAuthor inserts one account and one title and returns both IDs.
func seedTitleAndAuthor(t *testing.T, pool *pgxpool.Pool, username string) (titleID int, authorID string) {
	t.Helper()

	authorID = createTestUser(t, pool, username)

	entry := &title.Title{Name: "Stalker", Year: 1979}
	require.NoError(t, title.NewPostgresRepository(pool).Create(context.Background(), entry, nil))

	return entry.ID, authorID
}

/*
TestPostgresRepository_SecondReviewConflicts verifies that the storage
layer itself rejects a second review by the same author on the same title,
independent of any service-level pre-check.
*/
func TestPostgresRepository_SecondReviewConflicts(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()

	titleID, authorID := seedTitleAndAuthor(t, pool, "reviewer")
	repository := review.NewPostgresRepository(pool)

	require.NoError(t, repository.Create(ctx, &review.Review{
		TitleID: titleID, AuthorID: authorID, Text: "good", Score: 7,
	}))

	err := repository.Create(ctx, &review.Review{
		TitleID: titleID, AuthorID: authorID, Text: "changed my mind", Score: 3,
	})
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "CONFLICT", ae.Code)

	// A different author on the same title is still accepted.
	otherAuthorID := createTestUser(t, pool, "other")
	assert.NoError(t, repository.Create(ctx, &review.Review{
		TitleID: titleID, AuthorID: otherAuthorID, Text: "fine", Score: 5,
	}))
}

/*
TestPostgresRepository_TitleDeleteCascades verifies that removing a title
removes its reviews and their comments in one stroke.
*/
func TestPostgresRepository_TitleDeleteCascades(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()

	titleID, authorID := seedTitleAndAuthor(t, pool, "reviewer")
	titleRepository := title.NewPostgresRepository(pool)
	reviewRepository := review.NewPostgresRepository(pool)
	commentRepository := comment.NewPostgresRepository(pool)

	posted := &review.Review{TitleID: titleID, AuthorID: authorID, Text: "good", Score: 7}
	require.NoError(t, reviewRepository.Create(ctx, posted))

	reply := &comment.Comment{ReviewID: posted.ID, AuthorID: authorID, Text: "agreed"}
	require.NoError(t, commentRepository.Create(ctx, reply))

	require.NoError(t, titleRepository.Delete(ctx, titleID))

	_, err := reviewRepository.GetByID(ctx, titleID, posted.ID)
	assert.True(t, apperr.IsNotFound(err))

	_, err = commentRepository.GetByID(ctx, posted.ID, reply.ID)
	assert.True(t, apperr.IsNotFound(err))
}

/*
TestPostgresRepository_ReviewDeleteCascadesComments verifies that removing
a review removes its comments but leaves the title untouched.
*/
func TestPostgresRepository_ReviewDeleteCascadesComments(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()

	titleID, authorID := seedTitleAndAuthor(t, pool, "reviewer")
	titleRepository := title.NewPostgresRepository(pool)
	reviewRepository := review.NewPostgresRepository(pool)
	commentRepository := comment.NewPostgresRepository(pool)

	posted := &review.Review{TitleID: titleID, AuthorID: authorID, Text: "good", Score: 7}
	require.NoError(t, reviewRepository.Create(ctx, posted))

	reply := &comment.Comment{ReviewID: posted.ID, AuthorID: authorID, Text: "agreed"}
	require.NoError(t, commentRepository.Create(ctx, reply))

	require.NoError(t, reviewRepository.Delete(ctx, posted.ID))

	_, err := commentRepository.GetByID(ctx, posted.ID, reply.ID)
	assert.True(t, apperr.IsNotFound(err))

	_, err = titleRepository.GetByID(ctx, titleID)
	assert.NoError(t, err)
}

/*
TestPostgresRepository_AuthorDeleteCascades verifies that removing an
account removes the reviews it authored.
*/
func TestPostgresRepository_AuthorDeleteCascades(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()

	titleID, authorID := seedTitleAndAuthor(t, pool, "reviewer")
	reviewRepository := review.NewPostgresRepository(pool)

	posted := &review.Review{TitleID: titleID, AuthorID: authorID, Text: "good", Score: 7}
	require.NoError(t, reviewRepository.Create(ctx, posted))

	require.NoError(t, auth.NewUserRepository(pool).Delete(ctx, "reviewer"))

	_, total, err := reviewRepository.ListByTitle(ctx, titleID, pagination.Params{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 0, total)
}
