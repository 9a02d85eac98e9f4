package issue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parking-lot-backend/internal/model"
	"parking-lot-backend/internal/store"
)

// captureStore records created issue reports.
type captureStore struct {
	store.Store
	mu      sync.Mutex
	created []model.IssueReport
	done    chan struct{}
}

func (s *captureStore) CreateIssueReport(ctx context.Context, r *model.IssueReport) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r.ID = int64(len(s.created) + 1)
	s.created = append(s.created, *r)
	if s.done != nil {
		s.done <- struct{}{}
	}
	return nil
}

func TestWorkerPool_Dispatch(t *testing.T) {
	wp := NewWorkerPool(1, &captureStore{})

	// Dispatch a job without starting workers; it waits on the channel.
	ref := wp.Dispatch(Report{UserID: 7, Subject: "Blocked spot"})
	assert.NotEmpty(t, ref)

	select {
	case job := <-wp.jobs:
		assert.Equal(t, ref, job.Reference)
		assert.Equal(t, int64(7), job.UserID)
	case <-time.After(1 * time.Second):
		t.Fatal("timed out waiting for job to be dispatched")
	}
}

func TestWorkerPool_DispatchKeepsReference(t *testing.T) {
	wp := NewWorkerPool(1, &captureStore{})
	ref := wp.Dispatch(Report{Reference: "preset-ref", UserID: 1, Subject: "s"})
	assert.Equal(t, "preset-ref", ref)
	<-wp.jobs
}

func TestWorkerPool_Persists(t *testing.T) {
	s := &captureStore{done: make(chan struct{}, 1)}
	wp := NewWorkerPool(2, s)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	wp.Start(ctx)

	lotID := int64(3)
	ref := wp.Dispatch(Report{UserID: 7, LotID: &lotID, Subject: "Paint faded", Body: "Row 2 markings"})

	select {
	case <-s.done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for report to be persisted")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	require.Len(t, s.created, 1)
	got := s.created[0]
	assert.Equal(t, ref, got.Reference)
	assert.Equal(t, int64(7), got.UserID)
	require.NotNil(t, got.LotID)
	assert.Equal(t, int64(3), *got.LotID)
	assert.Equal(t, model.IssueStatusOpen, got.Status)
}
