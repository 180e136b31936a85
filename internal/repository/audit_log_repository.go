package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"startask/internal/domain"
)

type AuditLogRepository interface {
	Create(ctx context.Context, log *domain.AuditLog) error
	ListRecent(ctx context.Context, limit int) ([]domain.AuditLog, error)
}

type auditLogRepository struct {
	db *sqlx.DB
}

func NewAuditLogRepository(db *sqlx.DB) AuditLogRepository {
	return &auditLogRepository{db: db}
}

// auditLogRow carries the JSON columns as text so the same scan works for
// Postgres JSONB and SQLite TEXT.
type auditLogRow struct {
	ID         uuid.UUID `db:"id"`
	UserID     uuid.UUID `db:"user_id"`
	Action     string    `db:"action"`
	EntityType string    `db:"entity_type"`
	EntityID   uuid.UUID `db:"entity_id"`
	OldValue   string    `db:"old_value"`
	NewValue   string    `db:"new_value"`
	CreatedAt  time.Time `db:"created_at"`
}

func (r auditLogRow) toDomain() domain.AuditLog {
	return domain.AuditLog{
		ID:         r.ID,
		UserID:     r.UserID,
		Action:     r.Action,
		EntityType: r.EntityType,
		EntityID:   r.EntityID,
		OldValue:   json.RawMessage(r.OldValue),
		NewValue:   json.RawMessage(r.NewValue),
		CreatedAt:  r.CreatedAt,
	}
}

func jsonText(v json.RawMessage) string {
	if len(v) == 0 {
		return "null"
	}
	return string(v)
}

func (r *auditLogRepository) Create(ctx context.Context, log *domain.AuditLog) error {
	if log.ID == uuid.Nil {
		log.ID = uuid.New()
	}
	if log.CreatedAt.IsZero() {
		log.CreatedAt = time.Now().UTC()
	}

	query := r.db.Rebind(`
		INSERT INTO audit_logs (id, user_id, action, entity_type, entity_id, old_value, new_value, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)

	_, err := r.db.ExecContext(ctx, query,
		log.ID, log.UserID, log.Action, log.EntityType, log.EntityID,
		jsonText(log.OldValue), jsonText(log.NewValue), log.CreatedAt,
	)
	if err != nil {
		return storageError("create audit log", err)
	}
	return nil
}

func (r *auditLogRepository) ListRecent(ctx context.Context, limit int) ([]domain.AuditLog, error) {
	limit = domain.ClampLimit(limit, 20, 100)

	query := r.db.Rebind(`
		SELECT id, user_id, action, entity_type, entity_id, old_value, new_value, created_at
		FROM audit_logs
		ORDER BY created_at DESC
		LIMIT ?`)

	var rows []auditLogRow
	if err := r.db.SelectContext(ctx, &rows, query, limit); err != nil {
		return nil, storageError("list audit logs", err)
	}

	logs := make([]domain.AuditLog, 0, len(rows))
	for _, row := range rows {
		logs = append(logs, row.toDomain())
	}
	return logs, nil
}

// CreateAuditLog marshals the before/after values and stores the entry.
func CreateAuditLog(repo AuditLogRepository, ctx context.Context, input domain.CreateAuditLogInput) error {
	oldValueJSON, err := json.Marshal(input.OldValue)
	if err != nil {
		return fmt.Errorf("marshal old value: %w", err)
	}
	newValueJSON, err := json.Marshal(input.NewValue)
	if err != nil {
		return fmt.Errorf("marshal new value: %w", err)
	}

	return repo.Create(ctx, &domain.AuditLog{
		ID:         uuid.New(),
		UserID:     input.UserID,
		Action:     input.Action,
		EntityType: input.EntityType,
		EntityID:   input.EntityID,
		OldValue:   oldValueJSON,
		NewValue:   newValueJSON,
	})
}
