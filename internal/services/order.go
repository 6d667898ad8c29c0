package service

import (
	"context"
	stdErrors "errors"
	"log/slog"
	"time"

	"github.com/aaravmahajanofficial/storefront-api/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront-api/internal/errors"
	"github.com/aaravmahajanofficial/storefront-api/internal/models"
	repository "github.com/aaravmahajanofficial/storefront-api/internal/repositories"
	"github.com/aaravmahajanofficial/storefront-api/internal/utils"
)

// Viewer is who asks for an order. Staff can see every order, everyone else
// only the orders placed from their profile.
type Viewer struct {
	ProfileID int64
	IsStaff   bool
}

type OrderService interface {
	GetByNumber(ctx context.Context, number string, viewer Viewer) (*models.Order, error)
	ListForProfile(ctx context.Context, profileID int64, page, size int) (*models.PaginatedResponse, error)
	UpdateStatus(ctx context.Context, orderID int64, status models.OrderStatus) (*models.Order, error)
	UpdateDeliveryDate(ctx context.Context, orderID int64, date time.Time) (*models.Order, error)
}

type orderService struct {
	orders   repository.OrderRepository
	payments repository.PaymentRepository
	tx       repository.TransactionManager
	notifier Notifier
}

func NewOrderService(orders repository.OrderRepository, payments repository.PaymentRepository, tx repository.TransactionManager, notifier Notifier) OrderService {
	return &orderService{orders: orders, payments: payments, tx: tx, notifier: notifier}
}

// GetByNumber implements OrderService.
func (s *orderService) GetByNumber(ctx context.Context, number string, viewer Viewer) (*models.Order, error) {
	order, err := s.orders.GetByNumber(ctx, number)
	if err != nil {
		if stdErrors.Is(err, repository.ErrNotFound) {
			return nil, errors.NotFoundError("Order not found").WithError(err)
		}

		return nil, errors.DatabaseError("Failed to fetch order").WithError(err)
	}

	// another buyer's order is reported as missing
	if !viewer.IsStaff && (order.ProfileID == nil || *order.ProfileID != viewer.ProfileID) {
		return nil, errors.NotFoundError("Order not found")
	}

	payment, err := s.payments.GetByOrderID(ctx, order.ID)

	switch {
	case err == nil:
		order.Payment = payment
	case !stdErrors.Is(err, repository.ErrNotFound):
		return nil, errors.DatabaseError("Failed to fetch payment").WithError(err)
	}

	return order, nil
}

// ListForProfile implements OrderService.
func (s *orderService) ListForProfile(ctx context.Context, profileID int64, page, size int) (*models.PaginatedResponse, error) {
	page = min(max(page, 1), utils.MaxPage)

	if size < 1 || size > 50 {
		size = 10
	}

	orders, total, err := s.orders.ListByProfile(ctx, profileID, page, size)
	if err != nil {
		return nil, errors.DatabaseError("Failed to fetch orders").WithError(err)
	}

	return models.NewPaginatedResponse(orders, total, page, size), nil
}

// UpdateStatus implements OrderService. The order row is locked while the
// transition is checked.
func (s *orderService) UpdateStatus(ctx context.Context, orderID int64, status models.OrderStatus) (*models.Order, error) {
	if !status.Valid() {
		return nil, errors.AddValidationError("status", "unknown order status")
	}

	var order *models.Order

	err := s.tx.WithinTx(ctx, func(r repository.TxRepos) error {
		var err error

		order, err = lockOrder(ctx, r.Orders(), orderID)
		if err != nil {
			return err
		}

		if !order.Status.CanTransitionTo(status) {
			return errors.InvalidTransitionError(string(order.Status), string(status))
		}

		if err := r.Orders().UpdateStatus(ctx, orderID, status); err != nil {
			return errors.DatabaseError("Failed to update order status").WithError(err)
		}

		order.Status = status

		return nil
	})
	if err != nil {
		return nil, asAppError(err, "Failed to update order status")
	}

	middleware.LoggerFromContext(ctx).Info("Order status changed",
		slog.String("orderNumber", order.Number), slog.String("status", string(status)))

	return order, nil
}

// UpdateDeliveryDate implements OrderService. The buyer is only notified when
// the date actually changes.
func (s *orderService) UpdateDeliveryDate(ctx context.Context, orderID int64, date time.Time) (*models.Order, error) {
	var (
		order   *models.Order
		changed bool
	)

	err := s.tx.WithinTx(ctx, func(r repository.TxRepos) error {
		var err error

		order, err = lockOrder(ctx, r.Orders(), orderID)
		if err != nil {
			return err
		}

		if order.DeliveryDate != nil && order.DeliveryDate.Equal(date) {
			return nil
		}

		if err := r.Orders().UpdateDeliveryDate(ctx, orderID, &date); err != nil {
			return errors.DatabaseError("Failed to update delivery date").WithError(err)
		}

		order.DeliveryDate = &date
		changed = true

		return nil
	})
	if err != nil {
		return nil, asAppError(err, "Failed to update delivery date")
	}

	if changed && s.notifier != nil {
		event := models.OrderEvent{Kind: models.NotificationDeliveryDateChanged, Order: *order}
		if err := s.notifier.Enqueue(ctx, event); err != nil {
			middleware.LoggerFromContext(ctx).Warn("Failed to queue delivery date notification",
				slog.String("orderNumber", order.Number), slog.Any("error", err))
		}
	}

	return order, nil
}

func lockOrder(ctx context.Context, orders repository.OrderRepository, orderID int64) (*models.Order, error) {
	order, err := orders.GetByIDForUpdate(ctx, orderID)
	if err != nil {
		if stdErrors.Is(err, repository.ErrNotFound) {
			return nil, errors.NotFoundError("Order not found").WithError(err)
		}

		return nil, errors.DatabaseError("Failed to fetch order").WithError(err)
	}

	return order, nil
}

// asAppError passes AppErrors through and wraps anything else, such as a
// failed commit, as a database error.
func asAppError(err error, message string) error {
	if _, ok := errors.IsAppError(err); ok {
		return err
	}

	return errors.DatabaseError(message).WithError(err)
}
