// Package janitor prunes stale records on a timer: expired one-off
// schedules and issue reports that have been resolved longer than the
// retention window.
package janitor

import (
	"context"
	"log"
	"time"

	"parking-lot-backend/config"
	"parking-lot-backend/internal/store"
)

// Service runs the periodic pruning loop.
type Service struct {
	cfg   *config.Config
	store store.Store
	loc   *time.Location
	now   func() time.Time
}

// NewService creates a janitor bound to the given store. The agenda
// timezone decides where the day boundary falls for schedule pruning.
func NewService(cfg *config.Config, s store.Store) *Service {
	loc, err := time.LoadLocation(cfg.Agenda.Timezone)
	if err != nil {
		log.Printf("Warning: invalid agenda timezone %q: %v. Janitor will use UTC.", cfg.Agenda.Timezone, err)
		loc = time.UTC
	}
	return &Service{cfg: cfg, store: s, loc: loc, now: time.Now}
}

// Run starts the pruning loop. It performs one sweep immediately, then
// sweeps on every interval tick until the context is cancelled.
func (s *Service) Run(ctx context.Context) {
	if !s.cfg.Janitor.Enabled {
		log.Println("Janitor is disabled. Not starting.")
		return
	}
	log.Println("Starting janitor service...")

	s.SweepOnce(ctx)

	timer := time.NewTimer(s.cfg.Janitor.Interval)
	defer timer.Stop()

	for {
		select {
		case <-timer.C:
			s.SweepOnce(ctx)
			timer.Reset(s.cfg.Janitor.Interval)
		case <-ctx.Done():
			log.Println("Janitor stopped.")
			return
		}
	}
}

// SweepOnce performs a single pruning pass.
func (s *Service) SweepOnce(ctx context.Context) {
	now := s.now().In(s.loc)
	cutoff := now.AddDate(0, 0, -s.cfg.Janitor.RetentionDays)

	pruned, err := s.store.PruneSchedulesBefore(ctx, cutoff.Format("2006-01-02"))
	if err != nil {
		log.Printf("Error pruning schedules: %v", err)
	} else if pruned > 0 {
		log.Printf("Pruned %d expired schedules", pruned)
	}

	pruned, err = s.store.PruneResolvedIssuesBefore(ctx, cutoff)
	if err != nil {
		log.Printf("Error pruning issue reports: %v", err)
	} else if pruned > 0 {
		log.Printf("Pruned %d resolved issue reports", pruned)
	}
}
