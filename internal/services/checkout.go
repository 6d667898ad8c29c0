package service

import (
	"context"
	stdErrors "errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/aaravmahajanofficial/storefront-api/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront-api/internal/errors"
	"github.com/aaravmahajanofficial/storefront-api/internal/metrics"
	"github.com/aaravmahajanofficial/storefront-api/internal/models"
	repository "github.com/aaravmahajanofficial/storefront-api/internal/repositories"
	"github.com/aaravmahajanofficial/storefront-api/internal/utils"
	stripeClient "github.com/aaravmahajanofficial/storefront-api/pkg/stripe"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const checkoutRateScope = "checkout"

var tracer = otel.Tracer("github.com/aaravmahajanofficial/storefront-api/internal/services")

// Buyer identifies who is checking out. ProfileID is nil for guests.
type Buyer struct {
	ProfileID *int64
	ClientIP  string
}

func (b Buyer) rateSubject() string {
	if b.ProfileID != nil {
		return "profile:" + strconv.FormatInt(*b.ProfileID, 10)
	}

	return "ip:" + b.ClientIP
}

// CheckoutHook runs after an order is committed and the payment session is
// open. Hook errors are logged and never fail the checkout.
type CheckoutHook func(ctx context.Context, order *models.Order) error

type CheckoutService interface {
	Checkout(ctx context.Context, req *models.CheckoutRequest, buyer Buyer) (*models.CheckoutResult, error)
}

type CheckoutConfig struct {
	Currency            string
	SuccessURL          string
	CancelURL           string
	GatewayTimeout      time.Duration
	OrderNumberAttempts int
}

type CheckoutOption func(*checkoutService)

// WithOrderNumbers replaces the random order number source.
func WithOrderNumbers(gen OrderNumberGenerator) CheckoutOption {
	return func(s *checkoutService) { s.newNumber = gen }
}

// WithHooks sets the post-commit hooks, run in the given order.
func WithHooks(hooks ...CheckoutHook) CheckoutOption {
	return func(s *checkoutService) { s.hooks = hooks }
}

// WithRateLimiter caps checkout attempts per buyer.
func WithRateLimiter(limiter repository.RateLimitRepository) CheckoutOption {
	return func(s *checkoutService) { s.limiter = limiter }
}

type checkoutService struct {
	tx        repository.TransactionManager
	payments  repository.PaymentRepository
	gateway   stripeClient.Client
	limiter   repository.RateLimitRepository
	newNumber OrderNumberGenerator
	hooks     []CheckoutHook
	cfg       CheckoutConfig
}

func NewCheckoutService(tx repository.TransactionManager, payments repository.PaymentRepository, gateway stripeClient.Client, cfg CheckoutConfig, opts ...CheckoutOption) CheckoutService {
	if cfg.OrderNumberAttempts <= 0 {
		cfg.OrderNumberAttempts = 5
	}

	if cfg.GatewayTimeout <= 0 {
		cfg.GatewayTimeout = 10 * time.Second
	}

	s := &checkoutService{
		tx:        tx,
		payments:  payments,
		gateway:   gateway,
		newNumber: NewOrderNumber,
		cfg:       cfg,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Checkout implements CheckoutService. The order, its items and the pending
// payment are written in one transaction; the gateway is called only after
// the commit.
func (s *checkoutService) Checkout(ctx context.Context, req *models.CheckoutRequest, buyer Buyer) (*models.CheckoutResult, error) {
	ctx, span := tracer.Start(ctx, "CheckoutService.Checkout")
	defer span.End()

	logger := middleware.LoggerFromContext(ctx)

	if err := s.allow(ctx, buyer); err != nil {
		metrics.RecordCheckout(metrics.CheckoutRejected)
		return nil, err
	}

	if len(req.Items) == 0 {
		metrics.RecordCheckout(metrics.CheckoutRejected)
		return nil, errors.AddValidationError("items", "at least one item is required")
	}

	for _, line := range req.Items {
		if err := validateLine(line); err != nil {
			metrics.RecordCheckout(metrics.CheckoutRejected)
			return nil, err
		}
	}

	contact, err := utils.SanitizeContact(req.Contact)
	if err != nil {
		metrics.RecordCheckout(metrics.CheckoutRejected)
		return nil, err
	}

	order := &models.Order{
		ProfileID: buyer.ProfileID,
		Status:    models.OrderStatusCreated,
		Amount:    decimal.Zero,
		Contact:   contact,
	}

	err = s.tx.WithinTx(ctx, func(r repository.TxRepos) error {
		if err := s.insertOrder(ctx, r.Orders(), order); err != nil {
			return err
		}

		total := decimal.Zero

		for _, line := range req.Items {
			item, err := s.buildItem(ctx, r, order.ID, line)
			if err != nil {
				return err
			}

			if err := r.Orders().AddItem(ctx, item); err != nil {
				if stdErrors.Is(err, repository.ErrOutOfRange) {
					return errors.AddValidationError("quantity", "is out of range").WithError(err)
				}

				return errors.DatabaseError("Failed to add order item").WithError(err)
			}

			total = total.Add(item.Subtotal())
			order.Items = append(order.Items, *item)
		}

		if err := r.Orders().SetAmount(ctx, order.ID, total); err != nil {
			if stdErrors.Is(err, repository.ErrOutOfRange) {
				return errors.AddValidationError("items", "order total is too large").WithError(err)
			}

			return errors.DatabaseError("Failed to set order amount").WithError(err)
		}

		order.Amount = total

		payment := &models.PaymentRecord{
			OrderID:  order.ID,
			Amount:   total,
			Currency: s.cfg.Currency,
			Status:   models.PaymentStatusPending,
		}

		if err := r.Payments().Create(ctx, payment); err != nil {
			return errors.DatabaseError("Failed to create payment").WithError(err)
		}

		order.Payment = payment

		return nil
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "checkout rolled back")
		metrics.RecordCheckout(metrics.CheckoutRejected)

		if _, ok := errors.IsAppError(err); ok {
			return nil, err
		}

		return nil, errors.DatabaseError("Failed to create order").WithError(err)
	}

	span.SetAttributes(attribute.String("order.number", order.Number), attribute.String("order.amount", order.Amount.String()))
	logger.Info("Order created", slog.String("orderNumber", order.Number), slog.String("amount", order.Amount.String()))

	paymentURL, err := s.openPaymentSession(ctx, order)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "payment session failed")
		metrics.RecordCheckout(metrics.CheckoutGatewayFailed)

		return nil, err
	}

	for i, hook := range s.hooks {
		if err := hook(ctx, order); err != nil {
			logger.Warn("Checkout hook failed", slog.Int("hook", i), slog.String("orderNumber", order.Number), slog.Any("error", err))
		}
	}

	return &models.CheckoutResult{Order: order, PaymentURL: paymentURL}, nil
}

func (s *checkoutService) allow(ctx context.Context, buyer Buyer) error {
	if s.limiter == nil {
		return nil
	}

	decision, err := s.limiter.Allow(ctx, checkoutRateScope, buyer.rateSubject())
	if err != nil {
		// the limiter is best effort, an unavailable redis must not stop sales
		middleware.LoggerFromContext(ctx).Warn("Checkout rate limiter unavailable", slog.Any("error", err))
		return nil
	}

	if !decision.Allowed {
		return errors.TooManyRequestsError("Too many checkout attempts").
			WithDetail(fmt.Sprintf("retry after %s", decision.RetryAfter.Round(time.Second)))
	}

	return nil
}

// insertOrder allocates a fresh order number, retrying while the number is taken.
func (s *checkoutService) insertOrder(ctx context.Context, orders repository.OrderRepository, order *models.Order) error {
	logger := middleware.LoggerFromContext(ctx)

	for attempt := 1; attempt <= s.cfg.OrderNumberAttempts; attempt++ {
		number, err := s.newNumber()
		if err != nil {
			return errors.InternalError("Failed to generate order number").WithError(err)
		}

		order.Number = number

		created, err := orders.Create(ctx, order)
		if err != nil {
			return errors.DatabaseError("Failed to create order").WithError(err)
		}

		if created {
			return nil
		}

		logger.Warn("Order number already taken, retrying", slog.String("orderNumber", number), slog.Int("attempt", attempt))
	}

	return errors.InternalError("Failed to allocate a unique order number")
}

// validateLine rejects lines the catalog cannot price as submitted.
func validateLine(line models.CheckoutLine) error {
	if line.Quantity < 1 || line.Quantity > models.MaxLineQuantity {
		return errors.AddValidationError("quantity", fmt.Sprintf("must be between 1 and %d", models.MaxLineQuantity))
	}

	if line.ColorID < 0 || line.SizeID < 0 {
		return errors.AddValidationError("color_id", "must be a positive id")
	}

	if (line.ColorID == 0) != (line.SizeID == 0) {
		field := "size_id"
		if line.ColorID == 0 {
			field = "color_id"
		}

		return errors.AddValidationError(field, "color and size must be given together")
	}

	return nil
}

// buildItem snapshots the catalog price of a line. The price sent by the
// client is only compared, never used.
func (s *checkoutService) buildItem(ctx context.Context, r repository.TxRepos, orderID int64, line models.CheckoutLine) (*models.OrderItem, error) {

	product, err := r.Catalog().GetProductBrief(ctx, line.ProductID)
	if err != nil {
		if stdErrors.Is(err, repository.ErrNotFound) {
			return nil, errors.NotFoundError(fmt.Sprintf("Product not found: %d", line.ProductID)).WithError(err)
		}

		return nil, errors.DatabaseError("Failed to fetch product").WithError(err)
	}

	if line.Price != nil && !line.Price.Equal(product.Price) {
		middleware.LoggerFromContext(ctx).Warn("Submitted price differs from catalog price",
			slog.Int64("productId", product.ID),
			slog.String("submitted", line.Price.String()),
			slog.String("catalog", product.Price.String()))
	}

	item := &models.OrderItem{
		OrderID:     orderID,
		ProductID:   product.ID,
		ProductName: product.Name,
		UnitPrice:   product.Price,
		Quantity:    line.Quantity,
		ColorIDs:    []int64{},
		SizeIDs:     []int64{},
	}

	if line.ColorID != 0 || line.SizeID != 0 {
		if _, err := r.Variants().Resolve(ctx, line.ProductID, line.ColorID, line.SizeID); err != nil {
			if stdErrors.Is(err, repository.ErrVariantNotFound) {
				return nil, errors.NotFoundError("Variant is not available").
					WithDetail(fmt.Sprintf("product %d", line.ProductID)).WithError(err)
			}

			return nil, errors.DatabaseError("Failed to resolve variant").WithError(err)
		}
	}

	if line.ColorID != 0 {
		item.ColorIDs = append(item.ColorIDs, line.ColorID)
	}

	if line.SizeID != 0 {
		item.SizeIDs = append(item.SizeIDs, line.SizeID)
	}

	return item, nil
}

// openPaymentSession asks the gateway for a hosted payment page. On failure
// the order is left as created for manual follow-up and its payment is cancelled.
func (s *checkoutService) openPaymentSession(ctx context.Context, order *models.Order) (string, error) {
	logger := middleware.LoggerFromContext(ctx).With(slog.String("orderNumber", order.Number))
	payment := order.Payment

	gatewayCtx, cancel := context.WithTimeout(ctx, s.cfg.GatewayTimeout)
	defer cancel()

	session, err := s.gateway.CreateCheckoutSession(gatewayCtx, stripeClient.CheckoutSessionRequest{
		OrderNumber:   order.Number,
		Amount:        stripeClient.ToMinorUnits(order.Amount),
		Currency:      s.cfg.Currency,
		SuccessURL:    s.cfg.SuccessURL,
		CancelURL:     s.cfg.CancelURL,
		CustomerEmail: order.Contact.Email,
	})
	if err != nil {
		logger.Error("Payment gateway rejected checkout", slog.Any("error", err))

		if updErr := s.payments.UpdateStatus(ctx, payment.ID, models.PaymentStatusCancelled); updErr != nil {
			logger.Error("Failed to cancel payment after gateway error", slog.Int64("paymentId", payment.ID), slog.Any("error", updErr))
		} else {
			payment.Status = models.PaymentStatusCancelled
		}

		return "", errors.ThirdPartyError("Failed to create payment session").
			WithDetail("order " + order.Number + " was saved and can be paid later").WithError(err)
	}

	payment.GatewayID = session.ID
	payment.GatewayStatus = session.Status
	payment.Amount = stripeClient.FromMinorUnits(session.AmountTotal)
	payment.ConfirmationURL = session.URL

	if session.Currency != "" {
		payment.Currency = session.Currency
	}

	if err := s.payments.RecordGateway(ctx, payment); err != nil {
		// the webhook falls back to the order number, so the session stays usable
		logger.Error("Failed to record gateway session", slog.String("sessionId", session.ID), slog.Any("error", err))
	}

	return session.URL, nil
}

// MetricsHook counts committed orders and their amounts.
func MetricsHook(_ context.Context, order *models.Order) error {
	metrics.RecordCheckout(metrics.CheckoutCreated)
	metrics.ObserveOrderAmount(order.Amount.InexactFloat64())

	return nil
}

// NotifyHook queues the order created email.
func NotifyHook(n Notifier) CheckoutHook {
	return func(ctx context.Context, order *models.Order) error {
		return n.Enqueue(ctx, models.OrderEvent{Kind: models.NotificationOrderCreated, Order: *order})
	}
}
