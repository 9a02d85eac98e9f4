package api

import (
	"log"
	"time"

	"parking-lot-backend/internal/issue"
	"parking-lot-backend/internal/store"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	store store.Store
	pool  *issue.WorkerPool
	loc   *time.Location
	now   func() time.Time
}

// NewHandler creates a new API handler. timezone decides the local day
// used for agenda labels; an unknown zone falls back to UTC.
func NewHandler(s store.Store, pool *issue.WorkerPool, timezone string) *Handler {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		log.Printf("Warning: invalid timezone %q: %v. Using UTC.", timezone, err)
		loc = time.UTC
	}
	return &Handler{
		store: s,
		pool:  pool,
		loc:   loc,
		now:   time.Now,
	}
}
