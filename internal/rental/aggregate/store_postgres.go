// Copyright (c) 2026 Sixcities. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package aggregate

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/sixcities/internal/platform/database/schema"
	"github.com/taibuivan/sixcities/internal/platform/dberr"
)

// querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type querier interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresStore implements [Store] on the rental schema.
type PostgresStore struct {
	db querier
}

var _ Store = (*PostgresStore)(nil)

// NewStore creates a PostgreSQL backed [Store].
func NewStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: pool}
}

/*
Atomic runs fn inside a transaction and commits when fn returns nil.

Description: The Store passed to fn is bound to the transaction. Nested calls
open a savepoint.
*/
func (repository *PostgresStore) Atomic(context context.Context, fn func(Store) error) error {
	transaction, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "postgres_aggregate_begin")
	}
	defer transaction.Rollback(context)

	if err := fn(&PostgresStore{db: transaction}); err != nil {
		return err
	}

	return dberr.Wrap(transaction.Commit(context), "postgres_aggregate_commit")
}

// # Comments

var commentColumns = strings.Join(schema.RentalComment.Columns(), ", ")

// InsertComment writes one comment row.
func (repository *PostgresStore) InsertComment(context context.Context, comment *Comment) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES ($1, $2, $3, $4, $5, $6)`,
		schema.RentalComment.Table, commentColumns)

	_, err := repository.db.Exec(context, query,
		comment.ID,
		comment.Text,
		comment.Rating,
		comment.OfferID,
		comment.UserID,
		comment.CreatedAt,
	)
	return dberr.Wrap(err, "postgres_aggregate_insert_comment")
}

// IncrementCommentCount bumps numberofcomments in a single statement.
func (repository *PostgresStore) IncrementCommentCount(context context.Context, offerID string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = %s + 1, %s = $2 WHERE %s = $1`,
		schema.RentalOffer.Table,
		schema.RentalOffer.NumberOfComments, schema.RentalOffer.NumberOfComments,
		schema.RentalOffer.UpdatedAt,
		schema.RentalOffer.ID,
	)

	tag, err := repository.db.Exec(context, query, offerID, time.Now().UTC())
	if err != nil {
		return dberr.Wrap(err, "postgres_aggregate_increment_count")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

// Ratings returns every comment rating of the offer.
func (repository *PostgresStore) Ratings(context context.Context, offerID string) ([]int, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		schema.RentalComment.Rating, schema.RentalComment.Table, schema.RentalComment.OfferID)

	rows, err := repository.db.Query(context, query, offerID)
	if err != nil {
		return nil, dberr.Wrap(err, "postgres_aggregate_ratings")
	}

	ratings, err := pgx.CollectRows(rows, pgx.RowTo[int])
	if err != nil {
		return nil, dberr.Wrap(err, "postgres_aggregate_ratings")
	}
	return ratings, nil
}

// SetRating stores the recomputed mean.
func (repository *PostgresStore) SetRating(context context.Context, offerID string, rating float64) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2 WHERE %s = $1`,
		schema.RentalOffer.Table, schema.RentalOffer.Rating, schema.RentalOffer.ID)

	tag, err := repository.db.Exec(context, query, offerID, rating)
	if err != nil {
		return dberr.Wrap(err, "postgres_aggregate_set_rating")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

// DeleteComments removes every comment of the offer and reports how many.
func (repository *PostgresStore) DeleteComments(context context.Context, offerID string) (int64, error) {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.RentalComment.Table, schema.RentalComment.OfferID)

	tag, err := repository.db.Exec(context, query, offerID)
	if err != nil {
		return 0, dberr.Wrap(err, "postgres_aggregate_delete_comments")
	}
	return tag.RowsAffected(), nil
}

// DeleteOffer removes the offer row. Favorites go with it (ON DELETE CASCADE).
func (repository *PostgresStore) DeleteOffer(context context.Context, offerID string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.RentalOffer.Table, schema.RentalOffer.ID)

	tag, err := repository.db.Exec(context, query, offerID)
	if err != nil {
		return dberr.Wrap(err, "postgres_aggregate_delete_offer")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

// # Favorites

// AddFavorite inserts the pair unless it is already present.
func (repository *PostgresStore) AddFavorite(context context.Context, userID, offerID string) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s) VALUES ($1, $2, $3) ON CONFLICT (%s, %s) DO NOTHING`,
		schema.RentalFavorite.Table,
		schema.RentalFavorite.UserID, schema.RentalFavorite.OfferID, schema.RentalFavorite.CreatedAt,
		schema.RentalFavorite.UserID, schema.RentalFavorite.OfferID,
	)

	_, err := repository.db.Exec(context, query, userID, offerID, time.Now().UTC())
	return dberr.Wrap(err, "postgres_aggregate_add_favorite")
}

// RemoveFavorite deletes the pair if present.
func (repository *PostgresStore) RemoveFavorite(context context.Context, userID, offerID string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`,
		schema.RentalFavorite.Table, schema.RentalFavorite.UserID, schema.RentalFavorite.OfferID)

	_, err := repository.db.Exec(context, query, userID, offerID)
	return dberr.Wrap(err, "postgres_aggregate_remove_favorite")
}

// FavoriteOfferIDs lists the user's favorite offer ids, most recently added first.
func (repository *PostgresStore) FavoriteOfferIDs(context context.Context, userID string) ([]string, error) {
	query := fmt.Sprintf(`SELECT %s::text FROM %s WHERE %s = $1 ORDER BY %s DESC`,
		schema.RentalFavorite.OfferID,
		schema.RentalFavorite.Table,
		schema.RentalFavorite.UserID,
		schema.RentalFavorite.CreatedAt,
	)

	rows, err := repository.db.Query(context, query, userID)
	if err != nil {
		return nil, dberr.Wrap(err, "postgres_aggregate_favorites")
	}

	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, dberr.Wrap(err, "postgres_aggregate_favorites")
	}
	return ids, nil
}
