package service

import (
	"context"
	stdErrors "errors"
	"log/slog"

	"github.com/aaravmahajanofficial/storefront-api/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront-api/internal/errors"
	"github.com/aaravmahajanofficial/storefront-api/internal/metrics"
	"github.com/aaravmahajanofficial/storefront-api/internal/models"
	repository "github.com/aaravmahajanofficial/storefront-api/internal/repositories"
	stripeClient "github.com/aaravmahajanofficial/storefront-api/pkg/stripe"
)

const (
	sourceWebhook = "webhook"
	sourceStaff   = "staff"
)

type PaymentService interface {
	ProcessWebhook(ctx context.Context, payload []byte, signature string) (stripeClient.Event, error)
	ApplyAction(ctx context.Context, paymentID int64, action models.PaymentAction) (*models.PaymentRecord, error)
}

type paymentService struct {
	payments     repository.PaymentRepository
	orders       repository.OrderRepository
	tx           repository.TransactionManager
	stripeClient stripeClient.Client
}

func NewPaymentService(payments repository.PaymentRepository, orders repository.OrderRepository, tx repository.TransactionManager, stripeClient stripeClient.Client) PaymentService {
	return &paymentService{payments: payments, orders: orders, tx: tx, stripeClient: stripeClient}
}

// ProcessWebhook implements PaymentService. Events other than completed and
// expired checkout sessions are acknowledged without changes.
func (s *paymentService) ProcessWebhook(ctx context.Context, payload []byte, signature string) (stripeClient.Event, error) {
	logger := middleware.LoggerFromContext(ctx)

	event, err := s.stripeClient.VerifyWebhookSignature(payload, signature)
	if err != nil {
		return event, errors.BadRequestError("Invalid webhook signature").WithError(err)
	}

	var target models.PaymentStatus

	switch string(event.Type) {
	case stripeClient.EventCheckoutCompleted:
		target = models.PaymentStatusConfirmed
	case stripeClient.EventCheckoutExpired:
		target = models.PaymentStatusCancelled
	default:
		logger.Info("Ignoring webhook event", slog.String("eventType", string(event.Type)), slog.String("eventId", event.ID))
		return event, nil
	}

	session, err := stripeClient.SessionFromEvent(event)
	if err != nil {
		return event, errors.BadRequestError("Invalid webhook payload").WithError(err)
	}

	payment, err := s.findSessionPayment(ctx, session)
	if err != nil {
		return event, err
	}

	if _, err := s.transition(ctx, payment.ID, target, sourceWebhook); err != nil {
		return event, err
	}

	return event, nil
}

// findSessionPayment looks the payment up by session id and falls back to the
// order number carried in the session metadata.
func (s *paymentService) findSessionPayment(ctx context.Context, session *stripeClient.CheckoutSession) (*models.PaymentRecord, error) {
	payment, err := s.payments.GetByGatewayID(ctx, session.ID)
	if err == nil {
		return payment, nil
	}

	if !stdErrors.Is(err, repository.ErrNotFound) {
		return nil, errors.DatabaseError("Failed to fetch payment").WithError(err)
	}

	if session.OrderNumber == "" {
		return nil, errors.NotFoundError("Payment not found").WithError(err)
	}

	order, err := s.orders.GetByNumber(ctx, session.OrderNumber)
	if err != nil {
		if stdErrors.Is(err, repository.ErrNotFound) {
			return nil, errors.NotFoundError("Order not found").WithError(err)
		}

		return nil, errors.DatabaseError("Failed to fetch order").WithError(err)
	}

	payment, err = s.payments.GetByOrderID(ctx, order.ID)
	if err != nil {
		if stdErrors.Is(err, repository.ErrNotFound) {
			return nil, errors.NotFoundError("Payment not found").WithError(err)
		}

		return nil, errors.DatabaseError("Failed to fetch payment").WithError(err)
	}

	return payment, nil
}

// ApplyAction implements PaymentService.
func (s *paymentService) ApplyAction(ctx context.Context, paymentID int64, action models.PaymentAction) (*models.PaymentRecord, error) {
	target, ok := action.TargetStatus()
	if !ok {
		return nil, errors.AddValidationError("action", "must be confirm or cancel")
	}

	return s.transition(ctx, paymentID, target, sourceStaff)
}

// transition settles a pending payment. A confirmed payment moves its order to
// paid when the order can still take that step. Webhook redeliveries of an
// already applied status are no-ops.
func (s *paymentService) transition(ctx context.Context, paymentID int64, target models.PaymentStatus, source string) (*models.PaymentRecord, error) {
	logger := middleware.LoggerFromContext(ctx).With(slog.Int64("paymentId", paymentID), slog.String("source", source))

	var (
		payment *models.PaymentRecord
		applied bool
	)

	err := s.tx.WithinTx(ctx, func(r repository.TxRepos) error {
		var err error

		payment, err = r.Payments().GetByIDForUpdate(ctx, paymentID)
		if err != nil {
			if stdErrors.Is(err, repository.ErrNotFound) {
				return errors.NotFoundError("Payment not found").WithError(err)
			}

			return errors.DatabaseError("Failed to fetch payment").WithError(err)
		}

		if payment.Status == target && source == sourceWebhook {
			return nil
		}

		if !payment.Status.CanTransitionTo(target) {
			return errors.InvalidTransitionError(string(payment.Status), string(target))
		}

		if err := r.Payments().UpdateStatus(ctx, paymentID, target); err != nil {
			return errors.DatabaseError("Failed to update payment status").WithError(err)
		}

		payment.Status = target
		applied = true

		if target != models.PaymentStatusConfirmed {
			return nil
		}

		order, err := lockOrder(ctx, r.Orders(), payment.OrderID)
		if err != nil {
			return err
		}

		if !order.Status.CanTransitionTo(models.OrderStatusPaid) {
			logger.Warn("Payment confirmed for an order that cannot be marked paid",
				slog.String("orderNumber", order.Number), slog.String("orderStatus", string(order.Status)))

			return nil
		}

		if err := r.Orders().UpdateStatus(ctx, order.ID, models.OrderStatusPaid); err != nil {
			return errors.DatabaseError("Failed to update order status").WithError(err)
		}

		return nil
	})
	if err != nil {
		return nil, asAppError(err, "Failed to update payment")
	}

	if applied {
		metrics.RecordPaymentTransition(string(target), source)
		logger.Info("Payment status changed", slog.String("status", string(target)))
	}

	return payment, nil
}
