// Copyright (c) 2026 TaskHive. All rights reserved.
// Author: vu.tranminh.dev@gmail.com

package bid

import "context"

// Repository defines the data access contract for bids.
type Repository interface {

	// Create persists a new bid. A nonexistent task surfaces as a
	// validation error via the foreign key constraint.
	Create(context context.Context, bid *Bid) error

	// ListByTask returns all bids for a task, newest first.
	ListByTask(context context.Context, taskID string) ([]*Bid, error)
}
