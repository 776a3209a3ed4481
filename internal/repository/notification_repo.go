package repository

import (
	"database/sql"
	"fmt"

	"github.com/loicperes14/mobirent/internal/db"
	"github.com/loicperes14/mobirent/internal/entities"
)

type NotificationRepository struct {
	DB *sql.DB
}

func NewNotificationRepository(database *sql.DB) *NotificationRepository {
	return &NotificationRepository{DB: database}
}

func (r *NotificationRepository) Create(n *db.Notification) error {
	query := `
		INSERT INTO notifications (id, user_id, message, is_read, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.DB.Exec(query, n.ID, n.UserID, n.Message, n.IsRead, n.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating notification: %w", err)
	}
	return nil
}

func (r *NotificationRepository) ListByUser(userID string) ([]entities.NotificationItem, error) {
	query := `
		SELECT id, message, is_read, created_at
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC`

	rows, err := r.DB.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing notifications: %w", err)
	}
	defer rows.Close()

	var items []entities.NotificationItem
	for rows.Next() {
		var n entities.NotificationItem
		if err := rows.Scan(&n.ID, &n.Message, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning notification: %w", err)
		}
		items = append(items, n)
	}
	return items, rows.Err()
}

func (r *NotificationRepository) MarkRead(id, userID string) error {
	result, err := r.DB.Exec(
		`UPDATE notifications SET is_read = TRUE WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	if err != nil {
		return fmt.Errorf("error marking notification %s read: %w", id, err)
	}
	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return fmt.Errorf("notification %s not found", id)
	}
	return nil
}

func (r *NotificationRepository) MarkAllRead(userID string) error {
	_, err := r.DB.Exec(
		`UPDATE notifications SET is_read = TRUE WHERE user_id = $1 AND is_read = FALSE`,
		userID,
	)
	if err != nil {
		return fmt.Errorf("error marking notifications read: %w", err)
	}
	return nil
}

func (r *NotificationRepository) Delete(id, userID string) error {
	result, err := r.DB.Exec(
		`DELETE FROM notifications WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	if err != nil {
		return fmt.Errorf("error deleting notification %s: %w", id, err)
	}
	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return fmt.Errorf("notification %s not found", id)
	}
	return nil
}
