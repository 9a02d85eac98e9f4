// Package issue runs the intake worker pool for user-submitted problem
// reports. Reports are queued on a channel and persisted off the
// request path; the pool replaces the earlier pattern of stashing
// submissions in a process-wide variable.
package issue

import (
	"context"
	"log"

	"github.com/google/uuid"

	"parking-lot-backend/internal/model"
	"parking-lot-backend/internal/store"
)

// Report is one submission waiting for intake.
type Report struct {
	Reference string
	UserID    int64
	LotID     *int64
	Subject   string
	Body      string
}

// WorkerPool manages a pool of workers that persist issue reports.
type WorkerPool struct {
	size  int
	jobs  chan Report
	store store.Store
}

// NewWorkerPool creates a new worker pool backed by the given store.
func NewWorkerPool(size int, s store.Store) *WorkerPool {
	return &WorkerPool{
		size:  size,
		jobs:  make(chan Report, size*4),
		store: s,
	}
}

// Start launches the worker goroutines.
func (wp *WorkerPool) Start(ctx context.Context) {
	for i := 0; i < wp.size; i++ {
		go wp.worker(ctx, i)
	}
}

// worker is the actual worker goroutine.
func (wp *WorkerPool) worker(ctx context.Context, id int) {
	log.Printf("Issue worker %d started", id)
	for {
		select {
		case report := <-wp.jobs:
			wp.persist(ctx, report)
		case <-ctx.Done():
			log.Printf("Issue worker %d shutting down", id)
			return
		}
	}
}

// Dispatch queues a report for intake and returns the reference the
// caller can hand back to the reporter. A zero-value reference on the
// input means one is assigned here.
func (wp *WorkerPool) Dispatch(r Report) string {
	if r.Reference == "" {
		r.Reference = uuid.NewString()
	}
	wp.jobs <- r
	return r.Reference
}

// Jobs returns the jobs channel for testing.
func (wp *WorkerPool) Jobs() chan Report {
	return wp.jobs
}

func (wp *WorkerPool) persist(ctx context.Context, r Report) {
	record := &model.IssueReport{
		Reference: r.Reference,
		UserID:    r.UserID,
		LotID:     r.LotID,
		Subject:   r.Subject,
		Body:      r.Body,
		Status:    model.IssueStatusOpen,
	}
	if err := wp.store.CreateIssueReport(ctx, record); err != nil {
		log.Printf("Error persisting issue report %s: %v", r.Reference, err)
		return
	}
	log.Printf("Issue report %s persisted as #%d", r.Reference, record.ID)
}
