// Copyright (c) 2026 Kritika. All rights reserved.
// Author: d.maksimov.dev@gmail.com

package genre

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmaksimov/kritika/internal/platform/apperr"
	"github.com/dmaksimov/kritika/internal/platform/dberr"
	"github.com/dmaksimov/kritika/pkg/pagination"
)

// PostgresRepository implements [Repository] on the catalog.genre table.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a new [PostgresRepository].
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func (repository *PostgresRepository) List(context context.Context, params pagination.Params, search string) ([]*Genre, int, error) {
	pattern := "%" + search + "%"

	var total int
	countQuery := `SELECT COUNT(*) FROM catalog.genre
		WHERE ($1 = '%%' OR name ILIKE $1 OR slug ILIKE $1)`
	if err := repository.pool.QueryRow(context, countQuery, pattern).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "")
	}

	query := `SELECT id, name, slug, created_at FROM catalog.genre
		WHERE ($1 = '%%' OR name ILIKE $1 OR slug ILIKE $1)
		ORDER BY name LIMIT $2 OFFSET $3`
	rows, err := repository.pool.Query(context, query, pattern, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, dberr.Wrap(err, "")
	}
	defer rows.Close()

	genres := make([]*Genre, 0)
	for rows.Next() {
		genre := &Genre{}
		if err := rows.Scan(&genre.ID, &genre.Name, &genre.Slug, &genre.CreatedAt); err != nil {
			return nil, 0, dberr.Wrap(err, "")
		}
		genres = append(genres, genre)
	}

	return genres, total, rows.Err()
}

func (repository *PostgresRepository) GetBySlug(context context.Context, slug string) (*Genre, error) {
	const query = `SELECT id, name, slug, created_at FROM catalog.genre WHERE slug = $1`

	genre := &Genre{}
	err := repository.pool.QueryRow(context, query, slug).
		Scan(&genre.ID, &genre.Name, &genre.Slug, &genre.CreatedAt)
	if err != nil {
		return nil, dberr.Wrap(err, "")
	}

	return genre, nil
}

func (repository *PostgresRepository) GetBySlugs(context context.Context, slugs []string) ([]*Genre, error) {
	if len(slugs) == 0 {
		return []*Genre{}, nil
	}

	const query = `SELECT id, name, slug, created_at FROM catalog.genre WHERE slug = ANY($1)`
	rows, err := repository.pool.Query(context, query, slugs)
	if err != nil {
		return nil, dberr.Wrap(err, "")
	}
	defer rows.Close()

	genres := make([]*Genre, 0, len(slugs))
	for rows.Next() {
		genre := &Genre{}
		if err := rows.Scan(&genre.ID, &genre.Name, &genre.Slug, &genre.CreatedAt); err != nil {
			return nil, dberr.Wrap(err, "")
		}
		genres = append(genres, genre)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "")
	}

	if len(genres) != len(slugs) {
		return nil, apperr.NotFound("Genre")
	}

	return genres, nil
}

func (repository *PostgresRepository) Create(context context.Context, genre *Genre) error {
	const query = `
		INSERT INTO catalog.genre (name, slug)
		VALUES ($1, $2)
		RETURNING id, created_at`

	err := repository.pool.QueryRow(context, query, genre.Name, genre.Slug).
		Scan(&genre.ID, &genre.CreatedAt)
	if err != nil {
		return dberr.Wrap(err, "Genre slug is already in use")
	}

	return nil
}

func (repository *PostgresRepository) DeleteBySlug(context context.Context, slug string) error {
	commandTag, err := repository.pool.Exec(context, `DELETE FROM catalog.genre WHERE slug = $1`, slug)
	if err != nil {
		return dberr.Wrap(err, "")
	}
	if commandTag.RowsAffected() == 0 {
		return apperr.NotFound("Genre")
	}
	return nil
}
