package audit

import (
	"context"

	log "github.com/sirupsen/logrus"

	"startask/internal/domain"
	"startask/internal/repository"
)

type Service interface {
	Record(ctx context.Context, input domain.CreateAuditLogInput)
	GetRecentActivities(ctx context.Context, limit int) ([]domain.AuditLog, error)
}

type service struct {
	auditRepo repository.AuditLogRepository
}

func NewService(auditRepo repository.AuditLogRepository) Service {
	return &service{
		auditRepo: auditRepo,
	}
}

// Record stores an activity entry. History is best effort: a failure is
// logged and never reaches the caller.
func (s *service) Record(ctx context.Context, input domain.CreateAuditLogInput) {
	if err := repository.CreateAuditLog(s.auditRepo, ctx, input); err != nil {
		log.WithError(err).WithFields(log.Fields{
			"action":    input.Action,
			"entity":    input.EntityType,
			"entity_id": input.EntityID,
		}).Warn("recording activity failed")
	}
}

func (s *service) GetRecentActivities(ctx context.Context, limit int) ([]domain.AuditLog, error) {
	return s.auditRepo.ListRecent(ctx, limit)
}
