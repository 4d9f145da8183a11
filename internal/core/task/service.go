// Copyright (c) 2026 TaskHive. All rights reserved.
// Author: vu.tranminh.dev@gmail.com

package task

import (
	"context"

	"github.com/tranminhvu/taskhive/pkg/pagination"
	"github.com/tranminhvu/taskhive/pkg/slug"
	"github.com/tranminhvu/taskhive/pkg/uuid"
)

// Service implements task marketplace use cases.
type Service struct {
	repository Repository
}

func NewService(repository Repository) *Service {
	return &Service{repository: repository}
}

// CreateInput holds the data required to post a new task.
type CreateInput struct {
	Title       string
	Description string
	Budget      float64
	ClientID    string
}

/*
Create posts a new task on behalf of the authenticated client.

Description: Generates a time-sortable ID and a URL-friendly slug, then
persists the task in the open state.

Parameters:
  - context: context.Context
  - input: CreateInput

Returns:
  - *Task: Created entity
  - error: Storage failures
*/
func (service *Service) Create(context context.Context, input CreateInput) (*Task, error) {
	id := uuid.New()

	// Slug carries an ID suffix so two tasks with the same title stay distinct.
	task := &Task{
		ID:          id,
		Title:       input.Title,
		Slug:        slug.From(input.Title) + "-" + id[:8],
		Description: input.Description,
		Budget:      input.Budget,
		Status:      StatusOpen,
		ClientID:    input.ClientID,
	}

	if err := service.repository.Create(context, task); err != nil {
		return nil, err
	}

	return task, nil
}

// Get returns a single task by ID.
func (service *Service) Get(context context.Context, id string) (*Task, error) {
	return service.repository.FindByID(context, id)
}

// List returns a page of tasks newest-first with pagination metadata.
func (service *Service) List(context context.Context, params pagination.Params) ([]*Task, pagination.Meta, error) {
	tasks, total, err := service.repository.List(context, params)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return tasks, pagination.NewMeta(params.Page, params.Limit, total), nil
}
