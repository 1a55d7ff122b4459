// Copyright (c) 2026 Kritika. All rights reserved.
// Author: d.maksimov.dev@gmail.com

package comment

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmaksimov/kritika/internal/platform/apperr"
	"github.com/dmaksimov/kritika/internal/platform/dberr"
	"github.com/dmaksimov/kritika/pkg/pagination"
)

// PostgresRepository implements [Repository] on the feedback.comment table.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a new [PostgresRepository].
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

const commentSelect = `
	SELECT c.id, c.text, c.review_id, c.author_id, c.pub_date, u.username
	FROM feedback.comment c
	JOIN users.account u ON u.id = c.author_id`

func (repository *PostgresRepository) ListByReview(context context.Context, reviewID int, params pagination.Params) ([]*Comment, int, error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM feedback.comment WHERE review_id = $1`
	if err := repository.pool.QueryRow(context, countQuery, reviewID).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "")
	}

	query := commentSelect + ` WHERE c.review_id = $1 ORDER BY c.pub_date, c.id LIMIT $2 OFFSET $3`
	rows, err := repository.pool.Query(context, query, reviewID, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, dberr.Wrap(err, "")
	}
	defer rows.Close()

	comments := make([]*Comment, 0)
	for rows.Next() {
		comment := &Comment{}
		err := rows.Scan(&comment.ID, &comment.Text,
			&comment.ReviewID, &comment.AuthorID, &comment.PubDate, &comment.AuthorUsername)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "")
		}
		comments = append(comments, comment)
	}

	return comments, total, rows.Err()
}

func (repository *PostgresRepository) GetByID(context context.Context, reviewID, commentID int) (*Comment, error) {
	query := commentSelect + ` WHERE c.id = $1 AND c.review_id = $2`

	comment := &Comment{}
	err := repository.pool.QueryRow(context, query, commentID, reviewID).
		Scan(&comment.ID, &comment.Text,
			&comment.ReviewID, &comment.AuthorID, &comment.PubDate, &comment.AuthorUsername)
	if err != nil {
		return nil, dberr.Wrap(err, "")
	}

	return comment, nil
}

func (repository *PostgresRepository) Create(context context.Context, comment *Comment) error {
	const query = `
		INSERT INTO feedback.comment (text, review_id, author_id)
		VALUES ($1, $2, $3)
		RETURNING id, pub_date`

	err := repository.pool.QueryRow(context, query,
		comment.Text, comment.ReviewID, comment.AuthorID,
	).Scan(&comment.ID, &comment.PubDate)
	if err != nil {
		return dberr.Wrap(err, "")
	}

	return nil
}

func (repository *PostgresRepository) Update(context context.Context, comment *Comment) error {
	commandTag, err := repository.pool.Exec(context,
		`UPDATE feedback.comment SET text = $1 WHERE id = $2`, comment.Text, comment.ID)
	if err != nil {
		return dberr.Wrap(err, "")
	}
	if commandTag.RowsAffected() == 0 {
		return apperr.NotFound("Comment")
	}
	return nil
}

func (repository *PostgresRepository) Delete(context context.Context, commentID int) error {
	commandTag, err := repository.pool.Exec(context,
		`DELETE FROM feedback.comment WHERE id = $1`, commentID)
	if err != nil {
		return dberr.Wrap(err, "")
	}
	if commandTag.RowsAffected() == 0 {
		return apperr.NotFound("Comment")
	}
	return nil
}
