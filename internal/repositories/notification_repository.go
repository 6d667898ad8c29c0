package repository

import (
	"context"
	"fmt"

	"github.com/aaravmahajanofficial/storefront-api/internal/models"
	"github.com/aaravmahajanofficial/storefront-api/internal/utils"
	"github.com/google/uuid"
)

type NotificationRepository interface {
	CreateNotification(ctx context.Context, notification *models.Notification) error
	UpdateNotificationStatus(ctx context.Context, id uuid.UUID, status models.NotificationStatus, errorMsg string) error
	ListByOrder(ctx context.Context, orderID int64) ([]models.Notification, error)
}

type notificationRepository struct {
	DB DBTX
}

func NewNotificationRepo(db DBTX) NotificationRepository {
	return &notificationRepository{DB: db}
}

func (r *notificationRepository) CreateNotification(ctx context.Context, n *models.Notification) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO notifications (id, type, kind, order_id, recipient, subject, content, status, error_message)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at`

	err := r.DB.QueryRowContext(dbCtx, query, n.ID, n.Type, n.Kind, n.OrderID, n.Recipient, n.Subject, n.Content,
		n.Status, n.Error).Scan(&n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create notification: %w", MapPQError(err))
	}

	return nil
}

// UpdateNotificationStatus stamps sent_at when the status becomes sent.
func (r *notificationRepository) UpdateNotificationStatus(ctx context.Context, id uuid.UUID, status models.NotificationStatus, errorMsg string) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE notifications
		SET status = $1, error_message = $2, updated_at = NOW(),
		    sent_at = CASE WHEN $1 = 'sent' THEN NOW() ELSE sent_at END
		WHERE id = $3`

	result, err := r.DB.ExecContext(dbCtx, query, status, errorMsg, id)
	if err != nil {
		return fmt.Errorf("failed to update the notification status: %w", err)
	}

	updated, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get updated rows: %w", err)
	}

	if updated == 0 {
		return fmt.Errorf("notification %s: %w", id, ErrNotFound)
	}

	return nil
}

func (r *notificationRepository) ListByOrder(ctx context.Context, orderID int64) ([]models.Notification, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, type, kind, order_id, recipient, subject, content, status, error_message, created_at, updated_at, sent_at
		FROM notifications
		WHERE order_id = $1
		ORDER BY created_at`

	rows, err := r.DB.QueryContext(dbCtx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to query notifications: %w", err)
	}
	defer rows.Close()

	notifications := []models.Notification{}

	for rows.Next() {
		var n models.Notification

		err := rows.Scan(&n.ID, &n.Type, &n.Kind, &n.OrderID, &n.Recipient, &n.Subject, &n.Content, &n.Status,
			&n.Error, &n.CreatedAt, &n.UpdatedAt, &n.SentAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}

		notifications = append(notifications, n)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over the rows: %w", err)
	}

	return notifications, nil
}
