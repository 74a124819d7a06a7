// Copyright (c) 2026 Sixcities. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package aggregate keeps the derived fields of an offer consistent with the
records that feed them.

Architecture:

  - Engine: the only writer of comments, favorites and offer deletion.
  - Store: storage primitives; [Store.Atomic] groups them into one unit.
  - Locking: with serialization enabled, mutations on the same offer run
    one at a time inside this process.

Invariants:

  - numberofcomments equals the number of comment rows of the offer.
  - rating is the arithmetic mean of the comment ratings, 0 without comments.
  - comments never outlive their offer.
*/
package aggregate

import (
	"context"
	"log/slog"
	"time"

	"github.com/taibuivan/sixcities/internal/platform/apperr"
	"github.com/taibuivan/sixcities/internal/platform/ctxutil"
	"github.com/taibuivan/sixcities/internal/platform/database/schema"
	"github.com/taibuivan/sixcities/internal/platform/dberr"
	"github.com/taibuivan/sixcities/internal/platform/metrics"
	"github.com/taibuivan/sixcities/pkg/slice"
)

// # Domain Records

// Comment is the stored form of a review, as the engine writes it.
type Comment struct {
	ID        string
	Text      string
	Rating    int
	OfferID   string
	UserID    string
	CreatedAt time.Time
}

// # Storage Contract

// Store is the set of storage primitives the engine composes.
type Store interface {
	// Atomic runs fn against a Store bound to one transaction.
	Atomic(ctx context.Context, fn func(Store) error) error

	InsertComment(ctx context.Context, comment *Comment) error
	IncrementCommentCount(ctx context.Context, offerID string) error
	Ratings(ctx context.Context, offerID string) ([]int, error)
	SetRating(ctx context.Context, offerID string, rating float64) error
	DeleteComments(ctx context.Context, offerID string) (int64, error)
	DeleteOffer(ctx context.Context, offerID string) error

	AddFavorite(ctx context.Context, userID, offerID string) error
	RemoveFavorite(ctx context.Context, userID, offerID string) error
	FavoriteOfferIDs(ctx context.Context, userID string) ([]string, error)
}

// # Engine

// Engine applies mutations that touch derived offer fields.
type Engine struct {
	store   Store
	locks   *keyedMutex
	metrics *metrics.Metrics
	now     func() time.Time
}

// Option customizes an [Engine].
type Option func(*Engine)

// WithClock replaces the clock used to stamp new comments.
func WithClock(now func() time.Time) Option {
	return func(engine *Engine) { engine.now = now }
}

// NewEngine builds an engine over store. When serialize is true, mutations on
// the same offer are serialized in-process. metrics may be nil.
func NewEngine(store Store, serialize bool, m *metrics.Metrics, opts ...Option) *Engine {
	engine := &Engine{store: store, metrics: m, now: time.Now}
	if serialize {
		engine.locks = newKeyedMutex()
	}
	for _, opt := range opts {
		opt(engine)
	}
	return engine
}

/*
AddComment stores a comment and refreshes the offer's counters.

Description: Inside one unit of work the comment is inserted, the comment
count is incremented, and the rating is recomputed from every stored rating
of the offer.

Parameters:
  - ctx: context.Context
  - comment: *Comment (ID, Text, Rating, OfferID, UserID; CreatedAt is set here if zero)

Returns:
  - error: NotFound if the offer disappeared, Unauthorized if the author's
    account is gone, StorageError otherwise
*/
func (engine *Engine) AddComment(ctx context.Context, comment *Comment) error {
	unlock := engine.lock(comment.OfferID)
	defer unlock()

	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = engine.now().UTC()
	}

	err := engine.store.Atomic(ctx, func(store Store) error {

		// ── 1. Insert ──
		if err := store.InsertComment(ctx, comment); err != nil {
			return err
		}

		// ── 2. Count ──
		if err := store.IncrementCommentCount(ctx, comment.OfferID); err != nil {
			return err
		}

		// ── 3. Rating ──
		ratings, err := store.Ratings(ctx, comment.OfferID)
		if err != nil {
			return err
		}
		return store.SetRating(ctx, comment.OfferID, Mean(ratings))
	})
	if err != nil {
		return classify(err, comment.OfferID)
	}

	engine.metrics.CommentAdded()
	ctxutil.GetLogger(ctx).InfoContext(ctx, "offer_comment_added",
		slog.String("offer_id", comment.OfferID),
		slog.String("comment_id", comment.ID),
	)
	return nil
}

/*
DeleteOffer removes all comments of an offer and then the offer itself.

Returns:
  - error: NotFound if the offer does not exist, Conflict if a comment landed
    during the delete, StorageError otherwise
*/
func (engine *Engine) DeleteOffer(ctx context.Context, offerID string) error {
	unlock := engine.lock(offerID)
	defer unlock()

	var removed int64
	err := engine.store.Atomic(ctx, func(store Store) error {
		count, err := store.DeleteComments(ctx, offerID)
		if err != nil {
			return err
		}
		removed = count
		return store.DeleteOffer(ctx, offerID)
	})
	if dberr.Constraint(err) == schema.RentalComment.OfferFK {
		// A comment committed between the two deletes
		return apperr.Conflict("Offer received a new comment while being deleted, retry").WithComponent("aggregation_engine")
	}
	if err != nil {
		return classify(err, offerID)
	}

	ctxutil.GetLogger(ctx).InfoContext(ctx, "offer_deleted",
		slog.String("offer_id", offerID),
		slog.Int64("comments_removed", removed),
	)
	return nil
}

// AddFavorite puts offerID into the user's favorite set. Adding twice is a no-op.
func (engine *Engine) AddFavorite(ctx context.Context, userID, offerID string) error {
	unlock := engine.lock(offerID)
	defer unlock()

	if err := engine.store.AddFavorite(ctx, userID, offerID); err != nil {
		return classify(err, offerID)
	}
	return nil
}

// RemoveFavorite takes offerID out of the user's favorite set. Removing an
// absent entry is a no-op.
func (engine *Engine) RemoveFavorite(ctx context.Context, userID, offerID string) error {
	unlock := engine.lock(offerID)
	defer unlock()

	if err := engine.store.RemoveFavorite(ctx, userID, offerID); err != nil {
		return classify(err, offerID)
	}
	return nil
}

// Favorites returns the ids of the offers currently in the user's favorite set.
func (engine *Engine) Favorites(ctx context.Context, userID string) ([]string, error) {
	ids, err := engine.store.FavoriteOfferIDs(ctx, userID)
	if err != nil {
		return nil, apperr.Storage(err).WithComponent("aggregation_engine")
	}
	return ids, nil
}

// # Helpers

// Mean returns the arithmetic mean of ratings, or 0 for none.
func Mean(ratings []int) float64 {
	if len(ratings) == 0 {
		return 0
	}
	sum := slice.Reduce(ratings, 0, func(total, rating int) int { return total + rating })
	return float64(sum) / float64(len(ratings))
}

func (engine *Engine) lock(offerID string) func() {
	if engine.locks == nil {
		return func() {}
	}
	return engine.locks.Lock(offerID)
}

func classify(err error, offerID string) error {
	switch dberr.Constraint(err) {
	case schema.RentalComment.UserFK, schema.RentalFavorite.UserFK:
		return apperr.Unauthorized("Unauthorized").WithComponent("aggregation_engine")
	}
	if dberr.IsNotFound(err) {
		return apperr.DocumentNotFound("Offer", offerID).WithComponent("aggregation_engine")
	}
	if appError := apperr.As(err); appError != nil {
		return appError
	}
	return apperr.Storage(err).WithComponent("aggregation_engine")
}
