// Copyright (c) 2026 TaskHive. All rights reserved.
// Author: vu.tranminh.dev@gmail.com

package bid

import (
	"context"

	"github.com/tranminhvu/taskhive/pkg/uuid"
)

// Service implements bidding use cases.
type Service struct {
	repository Repository
}

func NewService(repository Repository) *Service {
	return &Service{repository: repository}
}

// PlaceInput holds the data required to place a bid on a task.
type PlaceInput struct {
	TaskID       string
	FreelancerID string
	Amount       float64
	Message      string
}

/*
Place records a freelancer's offer against a task.

Description: The existence of both the task and the freelancer is enforced
by the store's foreign keys, not by a read-then-write check, so a concurrent
deletion cannot slip a dangling bid through.

Parameters:
  - context: context.Context
  - input: PlaceInput

Returns:
  - *Bid: Created entity
  - error: ValidationError (unknown task or freelancer) or storage failures
*/
func (service *Service) Place(context context.Context, input PlaceInput) (*Bid, error) {
	bid := &Bid{
		ID:           uuid.New(),
		TaskID:       input.TaskID,
		FreelancerID: input.FreelancerID,
		Amount:       input.Amount,
		Message:      input.Message,
	}

	if err := service.repository.Create(context, bid); err != nil {
		return nil, err
	}

	return bid, nil
}

// ListForTask returns all bids placed against the given task, newest first.
func (service *Service) ListForTask(context context.Context, taskID string) ([]*Bid, error) {
	return service.repository.ListByTask(context, taskID)
}
