// Copyright (c) 2026 Kritika. All rights reserved.
// Author: d.maksimov.dev@gmail.com

package category

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmaksimov/kritika/internal/platform/apperr"
	"github.com/dmaksimov/kritika/internal/platform/dberr"
	"github.com/dmaksimov/kritika/pkg/pagination"
)

// PostgresRepository implements [Repository] on the catalog.category table.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a new [PostgresRepository].
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func (repository *PostgresRepository) List(context context.Context, params pagination.Params, search string) ([]*Category, int, error) {
	pattern := "%" + search + "%"

	var total int
	countQuery := `SELECT COUNT(*) FROM catalog.category
		WHERE ($1 = '%%' OR name ILIKE $1 OR slug ILIKE $1)`
	if err := repository.pool.QueryRow(context, countQuery, pattern).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "")
	}

	query := `SELECT id, name, slug, created_at FROM catalog.category
		WHERE ($1 = '%%' OR name ILIKE $1 OR slug ILIKE $1)
		ORDER BY name LIMIT $2 OFFSET $3`
	rows, err := repository.pool.Query(context, query, pattern, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, dberr.Wrap(err, "")
	}
	defer rows.Close()

	categories := make([]*Category, 0)
	for rows.Next() {
		category := &Category{}
		if err := rows.Scan(&category.ID, &category.Name, &category.Slug, &category.CreatedAt); err != nil {
			return nil, 0, dberr.Wrap(err, "")
		}
		categories = append(categories, category)
	}

	return categories, total, rows.Err()
}

func (repository *PostgresRepository) GetBySlug(context context.Context, slug string) (*Category, error) {
	const query = `SELECT id, name, slug, created_at FROM catalog.category WHERE slug = $1`

	category := &Category{}
	err := repository.pool.QueryRow(context, query, slug).
		Scan(&category.ID, &category.Name, &category.Slug, &category.CreatedAt)
	if err != nil {
		return nil, dberr.Wrap(err, "")
	}

	return category, nil
}

func (repository *PostgresRepository) Create(context context.Context, category *Category) error {
	const query = `
		INSERT INTO catalog.category (name, slug)
		VALUES ($1, $2)
		RETURNING id, created_at`

	err := repository.pool.QueryRow(context, query, category.Name, category.Slug).
		Scan(&category.ID, &category.CreatedAt)
	if err != nil {
		return dberr.Wrap(err, "Category slug is already in use")
	}

	return nil
}

func (repository *PostgresRepository) DeleteBySlug(context context.Context, slug string) error {
	commandTag, err := repository.pool.Exec(context, `DELETE FROM catalog.category WHERE slug = $1`, slug)
	if err != nil {
		return dberr.Wrap(err, "")
	}
	if commandTag.RowsAffected() == 0 {
		return apperr.NotFound("Category")
	}
	return nil
}
