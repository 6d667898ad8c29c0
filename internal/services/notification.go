package service

import (
	"context"
	stdErrors "errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/aaravmahajanofficial/storefront-api/internal/errors"
	"github.com/aaravmahajanofficial/storefront-api/internal/metrics"
	"github.com/aaravmahajanofficial/storefront-api/internal/models"
	repository "github.com/aaravmahajanofficial/storefront-api/internal/repositories"
	"github.com/aaravmahajanofficial/storefront-api/pkg/sendgrid"
	"github.com/google/uuid"
)

var (
	ErrNotificationQueueFull = stdErrors.New("notification queue is full")
	ErrNotifierClosed        = stdErrors.New("notifier is closed")
)

// Notifier accepts order events without blocking the caller.
type Notifier interface {
	Enqueue(ctx context.Context, event models.OrderEvent) error
}

type NotificationService interface {
	Notifier
	// Run sends queued events until Shutdown is called and the queue is drained.
	Run(ctx context.Context)
	Shutdown(ctx context.Context) error
	ListByOrder(ctx context.Context, orderID int64) ([]models.Notification, error)
}

type NotifierConfig struct {
	QueueSize   int
	AdminEmails []string
	SendTimeout time.Duration
}

type notificationService struct {
	repo         repository.NotificationRepository
	emailService sendgrid.EmailService
	cfg          NotifierConfig
	logger       *slog.Logger

	mu     sync.RWMutex
	closed bool
	queue  chan models.OrderEvent
	done   chan struct{}
}

func NewNotificationService(repo repository.NotificationRepository, emailService sendgrid.EmailService, cfg NotifierConfig) NotificationService {
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 100
	}

	if cfg.SendTimeout <= 0 {
		cfg.SendTimeout = 10 * time.Second
	}

	return &notificationService{
		repo:         repo,
		emailService: emailService,
		cfg:          cfg,
		logger:       slog.Default().With(slog.String("component", "notifier")),
		queue:        make(chan models.OrderEvent, cfg.QueueSize),
		done:         make(chan struct{}),
	}
}

// Enqueue implements Notifier. A full queue drops the event.
func (n *notificationService) Enqueue(_ context.Context, event models.OrderEvent) error {
	n.mu.RLock()
	defer n.mu.RUnlock()

	if n.closed {
		return ErrNotifierClosed
	}

	select {
	case n.queue <- event:
		metrics.SetNotificationQueueDepth(len(n.queue))
		return nil
	default:
		n.logger.Error("Notification dropped, queue is full",
			slog.String("kind", string(event.Kind)), slog.String("orderNumber", event.Order.Number))
		metrics.RecordNotification(string(event.Kind), "dropped")

		return ErrNotificationQueueFull
	}
}

// Run implements NotificationService.
func (n *notificationService) Run(ctx context.Context) {
	defer close(n.done)

	for event := range n.queue {
		metrics.SetNotificationQueueDepth(len(n.queue))
		n.deliver(ctx, event)
	}
}

// Shutdown stops accepting events and waits for Run to drain the queue.
func (n *notificationService) Shutdown(ctx context.Context) error {
	n.mu.Lock()
	if !n.closed {
		n.closed = true
		close(n.queue)
	}
	n.mu.Unlock()

	select {
	case <-n.done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("notifier did not drain: %w", ctx.Err())
	}
}

// ListByOrder implements NotificationService.
func (n *notificationService) ListByOrder(ctx context.Context, orderID int64) ([]models.Notification, error) {
	notifications, err := n.repo.ListByOrder(ctx, orderID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to fetch notifications").WithError(err)
	}

	return notifications, nil
}

// deliver persists and sends one message. Every failure is logged and counted
// and nothing is reported back to the producer.
func (n *notificationService) deliver(ctx context.Context, event models.OrderEvent) {
	logger := n.logger.With(slog.String("kind", string(event.Kind)), slog.String("orderNumber", event.Order.Number))

	subject, content := renderOrderEvent(event)
	orderID := event.Order.ID
	now := time.Now()

	notification := &models.Notification{
		ID:        uuid.New(),
		Type:      models.NotificationTypeEmail,
		Kind:      event.Kind,
		OrderID:   &orderID,
		Recipient: event.Order.Contact.Email,
		Subject:   subject,
		Content:   content,
		Status:    models.StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	persisted := true
	if err := n.repo.CreateNotification(ctx, notification); err != nil {
		persisted = false

		logger.Error("Failed to create notification record", slog.Any("error", err))
	}

	sendCtx, cancel := context.WithTimeout(ctx, n.cfg.SendTimeout)
	defer cancel()

	err := n.emailService.Send(sendCtx, &models.EmailNotificationRequest{
		To:      notification.Recipient,
		BCC:     n.cfg.AdminEmails,
		Subject: subject,
		Content: content,
	})

	status, errorMsg := models.StatusSent, ""
	if err != nil {
		status, errorMsg = models.StatusFailed, err.Error()

		logger.Error("Failed to send notification email", slog.Any("error", err))
	} else {
		logger.Info("Notification email sent")
	}

	metrics.RecordNotification(string(event.Kind), string(status))

	if !persisted {
		return
	}

	if err := n.repo.UpdateNotificationStatus(ctx, notification.ID, status, errorMsg); err != nil {
		logger.Error("Failed to update notification status", slog.Any("error", err))
	}
}

func renderOrderEvent(event models.OrderEvent) (string, string) {
	order := event.Order

	switch event.Kind {
	case models.NotificationDeliveryDateChanged:
		date := "not scheduled"
		if order.DeliveryDate != nil {
			date = order.DeliveryDate.Format(time.DateOnly)
		}

		return fmt.Sprintf("Order %s: delivery date updated", order.Number),
			fmt.Sprintf("The delivery date of order %s is now %s.\n", order.Number, date)
	default:
		return fmt.Sprintf("Order %s received", order.Number), orderCreatedBody(order)
	}
}

func orderCreatedBody(order models.Order) string {
	c := order.Contact

	var b strings.Builder

	fmt.Fprintf(&b, "Order: %s\n", order.Number)
	fmt.Fprintf(&b, "Customer: %s %s\n", c.FirstName, c.LastName)
	fmt.Fprintf(&b, "Email: %s\n", c.Email)
	fmt.Fprintf(&b, "Phone: %s\n", c.Phone)
	fmt.Fprintf(&b, "Delivery: %s\n", c.DeliveryMethod)

	address := []string{c.City, c.Street, c.House}
	if c.ApartmentOffice != "" {
		address = append(address, c.ApartmentOffice)
	}

	if c.PostalCode != "" {
		address = append(address, c.PostalCode)
	}

	fmt.Fprintf(&b, "Address: %s\n", strings.Join(address, ", "))

	if c.CourierComment != "" {
		fmt.Fprintf(&b, "Comment: %s\n", c.CourierComment)
	}

	b.WriteString("\nItems:\n")

	for _, item := range order.Items {
		fmt.Fprintf(&b, "- %s x %d @ %s = %s\n",
			item.ProductName, item.Quantity, item.UnitPrice.StringFixed(2), item.Subtotal().StringFixed(2))
	}

	fmt.Fprintf(&b, "\nTotal: %s\n", order.Amount.StringFixed(2))

	return b.String()
}
