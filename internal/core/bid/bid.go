// Copyright (c) 2026 TaskHive. All rights reserved.
// Author: vu.tranminh.dev@gmail.com

// Package bid implements freelancer offers placed against open tasks.
package bid

import "time"

// Bid represents a freelancer's offer to complete a task for a given amount.
type Bid struct {
	ID           string    `json:"id"`
	TaskID       string    `json:"task_id"`
	FreelancerID string    `json:"freelancer_id"`
	Amount       float64   `json:"amount"`
	Message      string    `json:"message,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// Field identifiers used in validation errors.
const (
	FieldTaskID       = "task_id"
	FieldFreelancerID = "freelancer_id"
	FieldAmount       = "amount"
	FieldMessage      = "message"
)
