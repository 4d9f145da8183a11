// Copyright (c) 2026 TaskHive. All rights reserved.
// Author: vu.tranminh.dev@gmail.com

// Package task implements the marketplace task domain: posting work,
// browsing open tasks, and resolving a task's bid history.
package task

import "time"

// Task statuses. A task is open for bidding until its client closes it.
const (
	StatusOpen   = "open"
	StatusClosed = "closed"
)

// Task represents a unit of work posted by a client for freelancers to bid on.
type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	Budget      float64   `json:"budget"`
	Status      string    `json:"status"`
	ClientID    string    `json:"client_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Field identifiers used in validation errors.
const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldBudget      = "budget"
)
