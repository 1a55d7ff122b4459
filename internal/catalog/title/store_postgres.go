// Copyright (c) 2026 Kritika. All rights reserved.
// Author: d.maksimov.dev@gmail.com

package title

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmaksimov/kritika/internal/catalog/category"
	"github.com/dmaksimov/kritika/internal/catalog/genre"
	"github.com/dmaksimov/kritika/internal/platform/apperr"
	"github.com/dmaksimov/kritika/internal/platform/dberr"
	"github.com/dmaksimov/kritika/pkg/pagination"
)

// PostgresRepository implements [Repository] on the catalog schema.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a new [PostgresRepository].
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// # Queries

// titleSelect hydrates the title row, its optional category, and the
// derived rating in one pass. The rating is recomputed on every read so
// review churn is always reflected.
const titleSelect = `
	SELECT t.id, t.name, t.year, t.description, t.created_at,
	       c.id, c.name, c.slug,
	       (SELECT FLOOR(AVG(r.score))::int FROM feedback.review r WHERE r.title_id = t.id)
	FROM catalog.title t
	LEFT JOIN catalog.category c ON c.id = t.category_id`

// buildFilter translates a [Filter] into WHERE conditions with positional
// arguments starting at $1.
func buildFilter(filter Filter) (string, []interface{}) {
	conditions := make([]string, 0, 4)
	arguments := make([]interface{}, 0, 4)

	appendCondition := func(condition string, value interface{}) {
		arguments = append(arguments, value)
		conditions = append(conditions, fmt.Sprintf(condition, len(arguments)))
	}

	if filter.CategorySlug != "" {
		appendCondition("c.slug = $%d", filter.CategorySlug)
	}
	if len(filter.GenreSlugs) > 0 {
		appendCondition(`EXISTS (
			SELECT 1 FROM catalog.title_genre tg
			JOIN catalog.genre g ON g.id = tg.genre_id
			WHERE tg.title_id = t.id AND g.slug = ANY($%d))`, filter.GenreSlugs)
	}
	if filter.Year != 0 {
		appendCondition("t.year = $%d", filter.Year)
	}
	if filter.Name != "" {
		appendCondition("t.name ILIKE $%d", "%"+filter.Name+"%")
	}

	if len(conditions) == 0 {
		return "", arguments
	}
	return " WHERE " + strings.Join(conditions, " AND "), arguments
}

func (repository *PostgresRepository) List(context context.Context, params pagination.Params, filter Filter) ([]*Title, int, error) {
	whereClause, arguments := buildFilter(filter)

	countQuery := `SELECT COUNT(*) FROM catalog.title t
		LEFT JOIN catalog.category c ON c.id = t.category_id` + whereClause

	var total int
	if err := repository.pool.QueryRow(context, countQuery, arguments...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "")
	}

	listQuery := fmt.Sprintf("%s%s ORDER BY t.name, t.id LIMIT $%d OFFSET $%d",
		titleSelect, whereClause, len(arguments)+1, len(arguments)+2)
	arguments = append(arguments, params.Limit, params.Offset())

	rows, err := repository.pool.Query(context, listQuery, arguments...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "")
	}
	defer rows.Close()

	titles := make([]*Title, 0)
	for rows.Next() {
		title, err := scanTitle(rows)
		if err != nil {
			return nil, 0, err
		}
		titles = append(titles, title)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "")
	}

	if err := repository.attachGenres(context, titles); err != nil {
		return nil, 0, err
	}

	return titles, total, nil
}

func (repository *PostgresRepository) GetByID(context context.Context, id int) (*Title, error) {
	title, err := scanTitle(repository.pool.QueryRow(context, titleSelect+" WHERE t.id = $1", id))
	if err != nil {
		return nil, err
	}

	if err := repository.attachGenres(context, []*Title{title}); err != nil {
		return nil, err
	}

	return title, nil
}

func (repository *PostgresRepository) Create(context context.Context, title *Title, genreIDs []int) error {
	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "")
	}
	defer transaction.Rollback(context)

	const insertQuery = `
		INSERT INTO catalog.title (name, year, description, category_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	err = transaction.QueryRow(context, insertQuery,
		title.Name, title.Year, title.Description, categoryID(title),
	).Scan(&title.ID, &title.CreatedAt)
	if err != nil {
		return dberr.Wrap(err, "")
	}

	for _, genreID := range genreIDs {
		_, err := transaction.Exec(context,
			`INSERT INTO catalog.title_genre (title_id, genre_id) VALUES ($1, $2)`,
			title.ID, genreID)
		if err != nil {
			return dberr.Wrap(err, "")
		}
	}

	if err := transaction.Commit(context); err != nil {
		return dberr.Wrap(err, "")
	}
	return nil
}

func (repository *PostgresRepository) Update(context context.Context, title *Title, genreIDs []int, replaceGenres bool) error {
	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "")
	}
	defer transaction.Rollback(context)

	const updateQuery = `
		UPDATE catalog.title
		SET name = $1, year = $2, description = $3, category_id = $4
		WHERE id = $5`

	commandTag, err := transaction.Exec(context, updateQuery,
		title.Name, title.Year, title.Description, categoryID(title), title.ID)
	if err != nil {
		return dberr.Wrap(err, "")
	}
	if commandTag.RowsAffected() == 0 {
		return apperr.NotFound("Title")
	}

	if replaceGenres {
		if _, err := transaction.Exec(context,
			`DELETE FROM catalog.title_genre WHERE title_id = $1`, title.ID); err != nil {
			return dberr.Wrap(err, "")
		}
		for _, genreID := range genreIDs {
			_, err := transaction.Exec(context,
				`INSERT INTO catalog.title_genre (title_id, genre_id) VALUES ($1, $2)`,
				title.ID, genreID)
			if err != nil {
				return dberr.Wrap(err, "")
			}
		}
	}

	if err := transaction.Commit(context); err != nil {
		return dberr.Wrap(err, "")
	}
	return nil
}

func (repository *PostgresRepository) Delete(context context.Context, id int) error {
	commandTag, err := repository.pool.Exec(context, `DELETE FROM catalog.title WHERE id = $1`, id)
	if err != nil {
		return dberr.Wrap(err, "")
	}
	if commandTag.RowsAffected() == 0 {
		return apperr.NotFound("Title")
	}
	return nil
}

// # Scanning & Hydration

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTitle(row rowScanner) (*Title, error) {
	title := &Title{Genres: make([]genre.Genre, 0)}

	var categoryRowID *int
	var categoryName, categorySlug *string

	err := row.Scan(
		&title.ID, &title.Name, &title.Year, &title.Description, &title.CreatedAt,
		&categoryRowID, &categoryName, &categorySlug,
		&title.Rating,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "")
	}

	if categoryRowID != nil {
		title.Category = &category.Category{
			ID:   *categoryRowID,
			Name: *categoryName,
			Slug: *categorySlug,
		}
	}

	return title, nil
}

// attachGenres loads the genre lists for a batch of titles in one query.
func (repository *PostgresRepository) attachGenres(context context.Context, titles []*Title) error {
	if len(titles) == 0 {
		return nil
	}

	titleIndex := make(map[int]*Title, len(titles))
	titleIDs := make([]int, 0, len(titles))
	for _, title := range titles {
		titleIndex[title.ID] = title
		titleIDs = append(titleIDs, title.ID)
	}

	const query = `
		SELECT tg.title_id, g.id, g.name, g.slug, g.created_at
		FROM catalog.title_genre tg
		JOIN catalog.genre g ON g.id = tg.genre_id
		WHERE tg.title_id = ANY($1)
		ORDER BY g.name`

	rows, err := repository.pool.Query(context, query, titleIDs)
	if err != nil {
		return dberr.Wrap(err, "")
	}
	defer rows.Close()

	for rows.Next() {
		var titleID int
		var item genre.Genre
		if err := rows.Scan(&titleID, &item.ID, &item.Name, &item.Slug, &item.CreatedAt); err != nil {
			return dberr.Wrap(err, "")
		}
		if title, ok := titleIndex[titleID]; ok {
			title.Genres = append(title.Genres, item)
		}
	}

	return rows.Err()
}

func categoryID(title *Title) *int {
	if title.Category == nil {
		return nil
	}
	return &title.Category.ID
}
