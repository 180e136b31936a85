package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

var (
	// ErrStorageUnavailable wraps every failure coming from the database
	// driver so callers can tell infrastructure faults from domain outcomes.
	ErrStorageUnavailable = errors.New("storage unavailable")
	ErrNotFound           = errors.New("record not found")
)

type Repositories struct {
	Notification NotificationRepository
	Project      ProjectRepository
	Task         TaskRepository
	AuditLog     AuditLogRepository
}

func NewRepositories(db *sqlx.DB) *Repositories {
	return &Repositories{
		Notification: NewNotificationRepository(db),
		Project:      NewProjectRepository(db),
		Task:         NewTaskRepository(db),
		AuditLog:     NewAuditLogRepository(db),
	}
}

func storageError(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrStorageUnavailable, err)
}

func affected(res sql.Result) (bool, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return false, storageError("rows affected", err)
	}
	return n > 0, nil
}
