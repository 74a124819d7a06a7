// Copyright (c) 2026 Sixcities. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/sixcities/internal/platform/database/schema"
	"github.com/taibuivan/sixcities/internal/platform/dberr"
)

// PostgresRepository implements [Repository] on rental.comment.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

var _ Repository = (*PostgresRepository)(nil)

// NewRepository constructs a PostgreSQL backed comment store.
func NewRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

var selectComments = fmt.Sprintf(`
	SELECT
		c.%s, c.%s, c.%s, c.%s, c.%s,
		u.%s, u.%s, u.%s, u.%s, u.%s
	FROM %s c
	JOIN %s u ON u.%s = c.%s
`,
	schema.RentalComment.ID, schema.RentalComment.Text, schema.RentalComment.Rating,
	schema.RentalComment.OfferID, schema.RentalComment.CreatedAt,
	schema.UsersAccount.ID, schema.UsersAccount.Name, schema.UsersAccount.Email,
	schema.UsersAccount.Avatar, schema.UsersAccount.Type,
	schema.RentalComment.Table,
	schema.UsersAccount.Table, schema.UsersAccount.ID, schema.RentalComment.UserID,
)

/*
ListByOffer returns the newest comments of an offer with their authors.

Parameters:
  - context: context.Context
  - offerID: string
  - limit: int

Returns:
  - []*Comment: newest first
  - error: storage errors
*/
func (repository *PostgresRepository) ListByOffer(context context.Context, offerID string, limit int) ([]*Comment, error) {
	query := selectComments + fmt.Sprintf(` WHERE c.%s = $1 ORDER BY c.%s DESC LIMIT $2`,
		schema.RentalComment.OfferID, schema.RentalComment.CreatedAt)

	rows, err := repository.pool.Query(context, query, offerID, limit)
	if err != nil {
		return nil, dberr.Wrap(err, "postgres_comment_repo_list")
	}
	defer rows.Close()

	comments := []*Comment{}
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "postgres_comment_repo_list")
		}
		comments = append(comments, comment)
	}

	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "postgres_comment_repo_list")
	}
	return comments, nil
}

// FindByID loads one comment with its author.
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Comment, error) {
	query := selectComments + fmt.Sprintf(` WHERE c.%s = $1`, schema.RentalComment.ID)

	comment, err := scanComment(repository.pool.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "postgres_comment_repo_find_by_id")
	}
	return comment, nil
}

func scanComment(row pgx.Row) (*Comment, error) {
	comment := &Comment{}
	err := row.Scan(
		&comment.ID,
		&comment.Text,
		&comment.Rating,
		&comment.OfferID,
		&comment.CreatedAt,
		&comment.Author.ID,
		&comment.Author.Name,
		&comment.Author.Email,
		&comment.Author.Avatar,
		&comment.Author.Type,
	)
	if err != nil {
		return nil, err
	}
	return comment, nil
}
