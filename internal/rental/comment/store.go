// Copyright (c) 2026 Sixcities. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment

import "context"

// Repository reads comments with their authors. Writes belong to the
// aggregation engine.
type Repository interface {
	ListByOffer(ctx context.Context, offerID string, limit int) ([]*Comment, error)
	FindByID(ctx context.Context, id string) (*Comment, error)
}
