// Copyright (c) 2026 TaskHive. All rights reserved.
// Author: vu.tranminh.dev@gmail.com

package bid_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tranminhvu/taskhive/internal/core/bid"
	"github.com/tranminhvu/taskhive/internal/platform/apperr"
)

// fakeRepository is an in-memory bid.Repository that enforces a referenced
// task set, mirroring the store's foreign key behavior.
type fakeRepository struct {
	mu         sync.Mutex
	knownTasks map[string]bool
	bids       []*bid.Bid
}

func newFakeRepository(taskIDs ...string) *fakeRepository {
	known := make(map[string]bool, len(taskIDs))
	for _, id := range taskIDs {
		known[id] = true
	}
	return &fakeRepository{knownTasks: known}
}

func (repo *fakeRepository) Create(_ context.Context, b *bid.Bid) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if !repo.knownTasks[b.TaskID] {
		return apperr.ValidationError("Referenced resource does not exist")
	}

	copied := *b
	repo.bids = append([]*bid.Bid{&copied}, repo.bids...)
	return nil
}

func (repo *fakeRepository) ListByTask(_ context.Context, taskID string) ([]*bid.Bid, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	matched := make([]*bid.Bid, 0)
	for _, b := range repo.bids {
		if b.TaskID == taskID {
			copied := *b
			matched = append(matched, &copied)
		}
	}
	return matched, nil
}

/*
TestService_Place verifies the happy path and the unknown-task rejection.
*/
func TestService_Place(t *testing.T) {
	service := bid.NewService(newFakeRepository("task-1"))

	t.Run("success", func(t *testing.T) {
		placed, err := service.Place(context.Background(), bid.PlaceInput{
			TaskID:       "task-1",
			FreelancerID: "freelancer-1",
			Amount:       120.5,
			Message:      "Can start Monday.",
		})
		require.NoError(t, err)

		assert.NotEmpty(t, placed.ID)
		assert.Equal(t, "task-1", placed.TaskID)
		assert.Equal(t, "freelancer-1", placed.FreelancerID)
		assert.Equal(t, 120.5, placed.Amount)
	})

	t.Run("unknown_task", func(t *testing.T) {
		_, err := service.Place(context.Background(), bid.PlaceInput{
			TaskID:       "task-missing",
			FreelancerID: "freelancer-1",
			Amount:       50,
		})
		require.Error(t, err)

		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "VALIDATION_ERROR", ae.Code)
	})
}

/*
TestService_ListForTask verifies per-task scoping of bid history.
*/
func TestService_ListForTask(t *testing.T) {
	service := bid.NewService(newFakeRepository("task-1", "task-2"))

	for _, taskID := range []string{"task-1", "task-1", "task-2"} {
		_, err := service.Place(context.Background(), bid.PlaceInput{
			TaskID: taskID, FreelancerID: "freelancer-1", Amount: 10,
		})
		require.NoError(t, err)
	}

	bids, err := service.ListForTask(context.Background(), "task-1")
	require.NoError(t, err)
	assert.Len(t, bids, 2)

	bids, err = service.ListForTask(context.Background(), "task-2")
	require.NoError(t, err)
	assert.Len(t, bids, 1)

	bids, err = service.ListForTask(context.Background(), "task-none")
	require.NoError(t, err)
	assert.Empty(t, bids)
}
