// Copyright (c) 2026 TaskHive. All rights reserved.
// Author: vu.tranminh.dev@gmail.com

package task

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tranminhvu/taskhive/internal/platform/dberr"
	"github.com/tranminhvu/taskhive/pkg/pagination"
)

// PostgresRepository implements Repository on the marketplace.task table.
type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) Create(context context.Context, task *Task) error {
	const query = `
		INSERT INTO marketplace.task (
			id, title, slug, description, budget, status, clientid, createdat, updatedat
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	now := time.Now()
	if task.CreatedAt.IsZero() {
		task.CreatedAt = now
	}
	task.UpdatedAt = now

	_, err := repository.db.Exec(context, query,
		task.ID,
		task.Title,
		task.Slug,
		task.Description,
		task.Budget,
		task.Status,
		task.ClientID,
		task.CreatedAt,
		task.UpdatedAt,
	)

	return dberr.Wrap(err, "create_task")
}

func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Task, error) {
	const query = `
		SELECT id, title, slug, description, budget, status, clientid, createdat, updatedat
		FROM marketplace.task
		WHERE id = $1`

	task := &Task{}
	err := repository.db.QueryRow(context, query, id).Scan(
		&task.ID,
		&task.Title,
		&task.Slug,
		&task.Description,
		&task.Budget,
		&task.Status,
		&task.ClientID,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "find_task_by_id")
	}

	return task, nil
}

func (repository *PostgresRepository) List(context context.Context, params pagination.Params) ([]*Task, int, error) {
	const countQuery = `SELECT COUNT(*) FROM marketplace.task`
	const listQuery = `
		SELECT id, title, slug, description, budget, status, clientid, createdat, updatedat
		FROM marketplace.task
		ORDER BY createdat DESC
		LIMIT $1 OFFSET $2`

	var total int
	if err := repository.db.QueryRow(context, countQuery).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_tasks")
	}

	rows, err := repository.db.Query(context, listQuery, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_tasks")
	}
	defer rows.Close()

	tasks := make([]*Task, 0)
	for rows.Next() {
		task := &Task{}
		if err := rows.Scan(
			&task.ID,
			&task.Title,
			&task.Slug,
			&task.Description,
			&task.Budget,
			&task.Status,
			&task.ClientID,
			&task.CreatedAt,
			&task.UpdatedAt,
		); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_task")
		}
		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "iterate_tasks")
	}

	return tasks, total, nil
}
