// Copyright (c) 2026 TaskHive. All rights reserved.
// Author: vu.tranminh.dev@gmail.com

package task

import (
	"context"

	"github.com/tranminhvu/taskhive/pkg/pagination"
)

// Repository defines the data access contract for marketplace tasks.
type Repository interface {

	// Create persists a new task.
	Create(context context.Context, task *Task) error

	// FindByID returns the task with the given ID.
	FindByID(context context.Context, id string) (*Task, error)

	// List returns a page of tasks ordered newest-first, plus the total count.
	List(context context.Context, params pagination.Params) ([]*Task, int, error)
}
