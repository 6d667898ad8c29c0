package models

import (
	"time"

	"github.com/google/uuid"
)

type NotificationType string

const (
	NotificationTypeEmail NotificationType = "email"
)

type NotificationStatus string

const (
	StatusPending NotificationStatus = "pending"
	StatusSent    NotificationStatus = "sent"
	StatusFailed  NotificationStatus = "failed"
)

type NotificationKind string

const (
	NotificationOrderCreated        NotificationKind = "order_created"
	NotificationDeliveryDateChanged NotificationKind = "delivery_date_changed"
)

type Notification struct {
	ID        uuid.UUID          `json:"id"`
	Type      NotificationType   `json:"type"`
	Kind      NotificationKind   `json:"kind"`
	OrderID   *int64             `json:"order_id,omitempty"`
	Recipient string             `json:"recipient"`
	Subject   string             `json:"subject,omitempty"`
	Content   string             `json:"content"`
	Status    NotificationStatus `json:"status"`
	Error     string             `json:"error,omitempty"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
	SentAt    *time.Time         `json:"sent_at,omitempty"`
}

// OrderEvent is what the checkout and order services hand to the notifier.
type OrderEvent struct {
	Kind  NotificationKind
	Order Order
}

type EmailNotificationRequest struct {
	To          string
	CC          []string
	BCC         []string
	Subject     string
	Content     string
	HTMLContent string
}
