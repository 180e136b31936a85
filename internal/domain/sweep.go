package domain

import (
	"time"

	"github.com/google/uuid"
)

// SweepResult summarises one deadline sweep run.
type SweepResult struct {
	RunID                uuid.UUID `json:"run_id"`
	StartedAt            time.Time `json:"started_at"`
	FinishedAt           time.Time `json:"finished_at"`
	ProjectsScanned      int       `json:"projects_scanned"`
	ProjectsNotified     int       `json:"projects_notified"`
	ProjectsSkipped      int       `json:"projects_skipped"`
	ProjectsFailed       int       `json:"projects_failed"`
	NotificationsCreated int       `json:"notifications_created"`
	NotificationsFailed  int       `json:"notifications_failed"`
	Interrupted          bool      `json:"interrupted"`
}

func (r *SweepResult) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}
