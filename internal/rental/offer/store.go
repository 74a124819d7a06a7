// Copyright (c) 2026 Sixcities. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package offer

import "context"

// # Repository Interfaces

// Repository defines persistence for offers.
//
// viewerID is the caller's id and drives is_favorite; pass "" for anonymous
// callers. Deletion lives in the aggregation engine.
type Repository interface {
	Exists(ctx context.Context, id string) (bool, error)
	FindByID(ctx context.Context, id, viewerID string) (*Offer, error)
	List(ctx context.Context, viewerID string, limit, offset int) ([]*Offer, error)
	Count(ctx context.Context) (int, error)
	ListPremium(ctx context.Context, city City, viewerID string, limit int) ([]*Offer, error)
	ListByIDs(ctx context.Context, ids []string, viewerID string) ([]*Offer, error)
	Create(ctx context.Context, offer *Offer) error
	Update(ctx context.Context, offer *Offer) error
	UpdatePreview(ctx context.Context, id, preview string) error
}
