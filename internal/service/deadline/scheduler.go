package deadline

import (
	"context"
	"errors"
	"time"

	log "github.com/sirupsen/logrus"
)

const defaultInterval = time.Hour

// Scheduler runs the deadline sweep on a fixed interval, outside of any
// request. Run blocks until ctx is cancelled.
type Scheduler struct {
	svc        Service
	interval   time.Duration
	runOnStart bool
	triggerCh  chan struct{}
}

func NewScheduler(svc Service, interval time.Duration, runOnStart bool) *Scheduler {
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Scheduler{
		svc:        svc,
		interval:   interval,
		runOnStart: runOnStart,
		triggerCh:  make(chan struct{}, 1),
	}
}

// Trigger asks for an immediate sweep. It never blocks; a trigger arriving
// while one is already pending is dropped.
func (s *Scheduler) Trigger() {
	select {
	case s.triggerCh <- struct{}{}:
	default:
	}
}

func (s *Scheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	log.WithField("interval", s.interval).Info("deadline scheduler started")
	defer log.Info("deadline scheduler stopped")

	if s.runOnStart {
		s.runOnce(ctx)
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.runOnce(ctx)
		case <-s.triggerCh:
			s.runOnce(ctx)
		}
	}
}

func (s *Scheduler) runOnce(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}

	_, err := s.svc.RunSweep(ctx)
	switch {
	case errors.Is(err, ErrSweepInProgress):
		log.Debug("deadline sweep skipped, another run is in progress")
	case err != nil:
		log.WithError(err).Error("deadline sweep failed")
	}
}
