// Copyright (c) 2026 Kritika. All rights reserved.
// Author: d.maksimov.dev@gmail.com

package title_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmaksimov/kritika/internal/catalog/category"
	"github.com/dmaksimov/kritika/internal/catalog/genre"
	"github.com/dmaksimov/kritika/internal/catalog/title"
	"github.com/dmaksimov/kritika/internal/platform/apperr"
	"github.com/dmaksimov/kritika/pkg/pagination"
	"github.com/dmaksimov/kritika/pkg/pointer"
)

// # Test Doubles

type fakeTitleRepo struct {
	byID       map[int]*title.Title
	nextID     int
	lastGenres []int
}

func newFakeTitleRepo() *fakeTitleRepo {
	return &fakeTitleRepo{byID: map[int]*title.Title{}, nextID: 1}
}

func (repo *fakeTitleRepo) List(_ context.Context, _ pagination.Params, _ title.Filter) ([]*title.Title, int, error) {
	titles := make([]*title.Title, 0, len(repo.byID))
	for _, item := range repo.byID {
		titles = append(titles, item)
	}
	return titles, len(titles), nil
}

func (repo *fakeTitleRepo) GetByID(_ context.Context, id int) (*title.Title, error) {
	if item, ok := repo.byID[id]; ok {
		clone := *item
		return &clone, nil
	}
	return nil, apperr.NotFound("Title")
}

func (repo *fakeTitleRepo) Create(_ context.Context, item *title.Title, genreIDs []int) error {
	item.ID = repo.nextID
	repo.nextID++
	repo.byID[item.ID] = item
	repo.lastGenres = genreIDs
	return nil
}

func (repo *fakeTitleRepo) Update(_ context.Context, item *title.Title, genreIDs []int, replaceGenres bool) error {
	if _, ok := repo.byID[item.ID]; !ok {
		return apperr.NotFound("Title")
	}
	repo.byID[item.ID] = item
	if replaceGenres {
		repo.lastGenres = genreIDs
	}
	return nil
}

func (repo *fakeTitleRepo) Delete(_ context.Context, id int) error {
	if _, ok := repo.byID[id]; !ok {
		return apperr.NotFound("Title")
	}
	delete(repo.byID, id)
	return nil
}

type fakeCategoryRepo struct {
	bySlug map[string]*category.Category
}

func (repo *fakeCategoryRepo) List(_ context.Context, _ pagination.Params, _ string) ([]*category.Category, int, error) {
	return nil, 0, nil
}

func (repo *fakeCategoryRepo) GetBySlug(_ context.Context, slug string) (*category.Category, error) {
	if item, ok := repo.bySlug[slug]; ok {
		return item, nil
	}
	return nil, apperr.NotFound("Category")
}

func (repo *fakeCategoryRepo) Create(_ context.Context, _ *category.Category) error { return nil }

func (repo *fakeCategoryRepo) DeleteBySlug(_ context.Context, _ string) error { return nil }

type fakeGenreRepo struct {
	bySlug map[string]*genre.Genre
}

func (repo *fakeGenreRepo) List(_ context.Context, _ pagination.Params, _ string) ([]*genre.Genre, int, error) {
	return nil, 0, nil
}

func (repo *fakeGenreRepo) GetBySlug(_ context.Context, slug string) (*genre.Genre, error) {
	if item, ok := repo.bySlug[slug]; ok {
		return item, nil
	}
	return nil, apperr.NotFound("Genre")
}

func (repo *fakeGenreRepo) GetBySlugs(_ context.Context, slugs []string) ([]*genre.Genre, error) {
	resolved := make([]*genre.Genre, 0, len(slugs))
	for _, slug := range slugs {
		item, ok := repo.bySlug[slug]
		if !ok {
			return nil, apperr.NotFound("Genre")
		}
		resolved = append(resolved, item)
	}
	return resolved, nil
}

func (repo *fakeGenreRepo) Create(_ context.Context, _ *genre.Genre) error { return nil }

func (repo *fakeGenreRepo) DeleteBySlug(_ context.Context, _ string) error { return nil }

func newService(titles *fakeTitleRepo) *title.Service {
	categories := &fakeCategoryRepo{bySlug: map[string]*category.Category{
		"film": {ID: 1, Name: "Film", Slug: "film"},
	}}
	genres := &fakeGenreRepo{bySlug: map[string]*genre.Genre{
		"drama":  {ID: 10, Name: "Drama", Slug: "drama"},
		"comedy": {ID: 11, Name: "Comedy", Slug: "comedy"},
	}}
	return title.NewService(titles, categories, genres)
}

// # Create

/*
TestService_Create covers taxonomy resolution, year bounds, and genre
deduplication on the creation path.
*/
func TestService_Create(t *testing.T) {
	t.Run("resolves_category_and_genres", func(t *testing.T) {
		titles := newFakeTitleRepo()
		service := newService(titles)

		created, err := service.Create(context.Background(), title.CreateInput{
			Name:         "Stalker",
			Year:         1979,
			CategorySlug: "film",
			GenreSlugs:   []string{"drama", "drama", "comedy"},
		})

		require.NoError(t, err)
		require.NotNil(t, created.Category)
		assert.Equal(t, "film", created.Category.Slug)
		assert.Len(t, created.Genres, 2, "duplicate slugs collapse to one link")
		assert.Equal(t, []int{10, 11}, titles.lastGenres)
		assert.Nil(t, created.Rating)
	})

	t.Run("future_year_rejected", func(t *testing.T) {
		service := newService(newFakeTitleRepo())

		_, err := service.Create(context.Background(), title.CreateInput{
			Name: "From the Future", Year: time.Now().Year() + 1,
		})

		require.Error(t, err)
		assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
	})

	t.Run("current_year_allowed", func(t *testing.T) {
		service := newService(newFakeTitleRepo())

		_, err := service.Create(context.Background(), title.CreateInput{
			Name: "Fresh Release", Year: time.Now().Year(),
		})

		require.NoError(t, err)
	})

	t.Run("unknown_category_slug", func(t *testing.T) {
		service := newService(newFakeTitleRepo())

		_, err := service.Create(context.Background(), title.CreateInput{
			Name: "Orphan", Year: 2000, CategorySlug: "missing",
		})

		require.Error(t, err)
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "VALIDATION_ERROR", ae.Code, "slug from the body is a validation failure, not a 404")
	})

	t.Run("unknown_genre_slug", func(t *testing.T) {
		service := newService(newFakeTitleRepo())

		_, err := service.Create(context.Background(), title.CreateInput{
			Name: "Orphan", Year: 2000, GenreSlugs: []string{"missing"},
		})

		require.Error(t, err)
		assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
	})
}

// # Update

/*
TestService_Update covers partial updates: untouched fields survive,
category can be cleared, and genre links are only rewritten when sent.
*/
func TestService_Update(t *testing.T) {
	seed := func(t *testing.T) (*fakeTitleRepo, *title.Service) {
		t.Helper()
		titles := newFakeTitleRepo()
		service := newService(titles)
		_, err := service.Create(context.Background(), title.CreateInput{
			Name: "Stalker", Year: 1979, CategorySlug: "film", GenreSlugs: []string{"drama"},
		})
		require.NoError(t, err)
		return titles, service
	}

	t.Run("partial_field_update", func(t *testing.T) {
		_, service := seed(t)

		updated, err := service.Update(context.Background(), 1, title.UpdateInput{
			Description: pointer.To("A zone exists."),
		})

		require.NoError(t, err)
		assert.Equal(t, "Stalker", updated.Name)
		assert.Equal(t, 1979, updated.Year)
		assert.Equal(t, "A zone exists.", updated.Description)
		require.NotNil(t, updated.Category)
		assert.Len(t, updated.Genres, 1, "genres untouched when not sent")
	})

	t.Run("clear_category", func(t *testing.T) {
		_, service := seed(t)

		updated, err := service.Update(context.Background(), 1, title.UpdateInput{
			CategorySlug: pointer.To(""),
		})

		require.NoError(t, err)
		assert.Nil(t, updated.Category)
	})

	t.Run("replace_genres", func(t *testing.T) {
		titles, service := seed(t)

		updated, err := service.Update(context.Background(), 1, title.UpdateInput{
			GenreSlugs: pointer.To([]string{"comedy"}),
		})

		require.NoError(t, err)
		require.Len(t, updated.Genres, 1)
		assert.Equal(t, "comedy", updated.Genres[0].Slug)
		assert.Equal(t, []int{11}, titles.lastGenres)
	})

	t.Run("unknown_title", func(t *testing.T) {
		_, service := seed(t)

		_, err := service.Update(context.Background(), 99, title.UpdateInput{})
		require.Error(t, err)
		assert.True(t, apperr.IsNotFound(err))
	})
}
