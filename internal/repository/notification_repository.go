package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"startask/internal/domain"
)

// NotificationRepository persists notification records. Every read and
// mutation is scoped by the recipient's user id in the SQL itself, so a
// guessed notification id never reaches another user's row.
type NotificationRepository interface {
	Create(ctx context.Context, notif *domain.Notification) error
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]domain.Notification, error)
	CountUnread(ctx context.Context, userID uuid.UUID) (int64, error)
	MarkAsRead(ctx context.Context, id, userID uuid.UUID) (bool, error)
	MarkAllAsRead(ctx context.Context, userID uuid.UUID) error
	Delete(ctx context.Context, id, userID uuid.UUID) (bool, error)
}

type notificationRepository struct {
	db *sqlx.DB
}

func NewNotificationRepository(db *sqlx.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, notif *domain.Notification) error {
	if notif.ID == uuid.Nil {
		notif.ID = uuid.New()
	}
	if notif.CreatedAt.IsZero() {
		notif.CreatedAt = time.Now().UTC()
	}

	query := r.db.Rebind(`
		INSERT INTO notifications (id, user_id, type, title, message, link, deadline, priority, is_read, read_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)

	_, err := r.db.ExecContext(ctx, query,
		notif.ID, notif.UserID, notif.Type, notif.Title, notif.Message,
		notif.Link, notif.Deadline, notif.Priority, notif.IsRead, notif.ReadAt, notif.CreatedAt,
	)
	if err != nil {
		return storageError("create notification", err)
	}
	return nil
}

func (r *notificationRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]domain.Notification, error) {
	limit = domain.ClampLimit(limit, domain.DefaultNotificationLimit, domain.MaxNotificationLimit)

	query := r.db.Rebind(`
		SELECT id, user_id, type, title, message, link, deadline, priority, is_read, read_at, created_at
		FROM notifications
		WHERE user_id = ?
		ORDER BY is_read ASC, created_at DESC
		LIMIT ?`)

	notifications := []domain.Notification{}
	if err := r.db.SelectContext(ctx, &notifications, query, userID, limit); err != nil {
		return nil, storageError("list notifications", err)
	}
	return notifications, nil
}

func (r *notificationRepository) CountUnread(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	query := r.db.Rebind(`SELECT COUNT(*) FROM notifications WHERE user_id = ? AND is_read = ?`)
	if err := r.db.GetContext(ctx, &count, query, userID, false); err != nil {
		return 0, storageError("count unread notifications", err)
	}
	return count, nil
}

// MarkAsRead reports whether a notification with id owned by userID exists.
// Marking an already-read notification keeps its original read_at.
func (r *notificationRepository) MarkAsRead(ctx context.Context, id, userID uuid.UUID) (bool, error) {
	query := r.db.Rebind(`
		UPDATE notifications
		SET is_read = ?, read_at = COALESCE(read_at, ?)
		WHERE id = ? AND user_id = ?`)

	res, err := r.db.ExecContext(ctx, query, true, time.Now().UTC(), id, userID)
	if err != nil {
		return false, storageError("mark notification read", err)
	}
	return affected(res)
}

func (r *notificationRepository) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	query := r.db.Rebind(`UPDATE notifications SET is_read = ?, read_at = ? WHERE user_id = ? AND is_read = ?`)
	if _, err := r.db.ExecContext(ctx, query, true, time.Now().UTC(), userID, false); err != nil {
		return storageError("mark all notifications read", err)
	}
	return nil
}

func (r *notificationRepository) Delete(ctx context.Context, id, userID uuid.UUID) (bool, error) {
	query := r.db.Rebind(`DELETE FROM notifications WHERE id = ? AND user_id = ?`)
	res, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return false, storageError("delete notification", err)
	}
	return affected(res)
}
