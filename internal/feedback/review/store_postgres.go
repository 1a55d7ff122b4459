// Copyright (c) 2026 Kritika. All rights reserved.
// Author: d.maksimov.dev@gmail.com

package review

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmaksimov/kritika/internal/platform/apperr"
	"github.com/dmaksimov/kritika/internal/platform/dberr"
	"github.com/dmaksimov/kritika/pkg/pagination"
)

// PostgresRepository implements [Repository] on the feedback.review table.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a new [PostgresRepository].
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// reviewSelect joins the author account so every review carries the
// author's username without a second lookup.
const reviewSelect = `
	SELECT r.id, r.text, r.score, r.title_id, r.author_id, r.pub_date, u.username
	FROM feedback.review r
	JOIN users.account u ON u.id = r.author_id`

func (repository *PostgresRepository) ListByTitle(context context.Context, titleID int, params pagination.Params) ([]*Review, int, error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM feedback.review WHERE title_id = $1`
	if err := repository.pool.QueryRow(context, countQuery, titleID).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "")
	}

	query := reviewSelect + ` WHERE r.title_id = $1 ORDER BY r.pub_date DESC, r.id DESC LIMIT $2 OFFSET $3`
	rows, err := repository.pool.Query(context, query, titleID, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, dberr.Wrap(err, "")
	}
	defer rows.Close()

	reviews := make([]*Review, 0)
	for rows.Next() {
		review := &Review{}
		err := rows.Scan(&review.ID, &review.Text, &review.Score,
			&review.TitleID, &review.AuthorID, &review.PubDate, &review.AuthorUsername)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "")
		}
		reviews = append(reviews, review)
	}

	return reviews, total, rows.Err()
}

func (repository *PostgresRepository) GetByID(context context.Context, titleID, reviewID int) (*Review, error) {
	query := reviewSelect + ` WHERE r.id = $1 AND r.title_id = $2`

	review := &Review{}
	err := repository.pool.QueryRow(context, query, reviewID, titleID).
		Scan(&review.ID, &review.Text, &review.Score,
			&review.TitleID, &review.AuthorID, &review.PubDate, &review.AuthorUsername)
	if err != nil {
		return nil, dberr.Wrap(err, "")
	}

	return review, nil
}

func (repository *PostgresRepository) Create(context context.Context, review *Review) error {
	const query = `
		INSERT INTO feedback.review (text, score, title_id, author_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, pub_date`

	err := repository.pool.QueryRow(context, query,
		review.Text, review.Score, review.TitleID, review.AuthorID,
	).Scan(&review.ID, &review.PubDate)
	if err != nil {
		return dberr.Wrap(err, "You have already reviewed this title")
	}

	return nil
}

func (repository *PostgresRepository) Update(context context.Context, review *Review) error {
	const query = `UPDATE feedback.review SET text = $1, score = $2 WHERE id = $3`

	commandTag, err := repository.pool.Exec(context, query, review.Text, review.Score, review.ID)
	if err != nil {
		return dberr.Wrap(err, "")
	}
	if commandTag.RowsAffected() == 0 {
		return apperr.NotFound("Review")
	}
	return nil
}

func (repository *PostgresRepository) Delete(context context.Context, reviewID int) error {
	commandTag, err := repository.pool.Exec(context, `DELETE FROM feedback.review WHERE id = $1`, reviewID)
	if err != nil {
		return dberr.Wrap(err, "")
	}
	if commandTag.RowsAffected() == 0 {
		return apperr.NotFound("Review")
	}
	return nil
}
