// Copyright (c) 2026 TaskHive. All rights reserved.
// Author: vu.tranminh.dev@gmail.com

package bid

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tranminhvu/taskhive/internal/platform/dberr"
)

// PostgresRepository implements Repository on the marketplace.bid table.
type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) Create(context context.Context, bid *Bid) error {
	const query = `
		INSERT INTO marketplace.bid (
			id, taskid, freelancerid, amount, message, createdat
		) VALUES ($1, $2, $3, $4, $5, $6)`

	if bid.CreatedAt.IsZero() {
		bid.CreatedAt = time.Now()
	}

	_, err := repository.db.Exec(context, query,
		bid.ID,
		bid.TaskID,
		bid.FreelancerID,
		bid.Amount,
		bid.Message,
		bid.CreatedAt,
	)

	// dberr turns a foreign key violation on taskid into a client-safe
	// validation error instead of a 500.
	return dberr.Wrap(err, "create_bid")
}

func (repository *PostgresRepository) ListByTask(context context.Context, taskID string) ([]*Bid, error) {
	const query = `
		SELECT id, taskid, freelancerid, amount, message, createdat
		FROM marketplace.bid
		WHERE taskid = $1
		ORDER BY createdat DESC`

	rows, err := repository.db.Query(context, query, taskID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_bids_by_task")
	}
	defer rows.Close()

	bids := make([]*Bid, 0)
	for rows.Next() {
		bid := &Bid{}
		if err := rows.Scan(
			&bid.ID,
			&bid.TaskID,
			&bid.FreelancerID,
			&bid.Amount,
			&bid.Message,
			&bid.CreatedAt,
		); err != nil {
			return nil, dberr.Wrap(err, "scan_bid")
		}
		bids = append(bids, bid)
	}

	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "iterate_bids")
	}

	return bids, nil
}
