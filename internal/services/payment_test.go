package service_test

import (
	"encoding/json"
	stdErrors "errors"
	"testing"

	appErrors "github.com/aaravmahajanofficial/storefront-api/internal/errors"
	"github.com/aaravmahajanofficial/storefront-api/internal/models"
	repository "github.com/aaravmahajanofficial/storefront-api/internal/repositories"
	repoMocks "github.com/aaravmahajanofficial/storefront-api/internal/repositories/mocks"
	service "github.com/aaravmahajanofficial/storefront-api/internal/services"
	stripeClient "github.com/aaravmahajanofficial/storefront-api/pkg/stripe"
	stripeMocks "github.com/aaravmahajanofficial/storefront-api/pkg/stripe/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v81"
)

type paymentDeps struct {
	payments *repoMocks.PaymentRepository
	orders   *repoMocks.OrderRepository
	repos    *repoMocks.TxRepos
	tx       *repoMocks.TransactionManager
	stripe   *stripeMocks.Client
}

func setupPaymentServiceTest(t *testing.T) (service.PaymentService, *paymentDeps) {
	t.Helper()

	deps := &paymentDeps{
		payments: repoMocks.NewPaymentRepository(t),
		orders:   repoMocks.NewOrderRepository(t),
		repos: &repoMocks.TxRepos{
			PaymentRepo: repoMocks.NewPaymentRepository(t),
			OrderRepo:   repoMocks.NewOrderRepository(t),
		},
		stripe: stripeMocks.NewClient(t),
	}
	deps.tx = repoMocks.NewTransactionManager(deps.repos)

	return service.NewPaymentService(deps.payments, deps.orders, deps.tx, deps.stripe), deps
}

func sessionEvent(t *testing.T, eventType string, session map[string]any) stripeClient.Event {
	t.Helper()

	raw, err := json.Marshal(session)
	require.NoError(t, err)

	return stripeClient.Event{
		ID:   "evt_1",
		Type: stripe.EventType(eventType),
		Data: &stripe.EventData{Raw: raw},
	}
}

func expectConfirmation(deps *paymentDeps, orderStatus models.OrderStatus) {
	deps.repos.PaymentRepo.On("GetByIDForUpdate", mock.Anything, int64(7)).
		Return(&models.PaymentRecord{ID: 7, OrderID: 42, Status: models.PaymentStatusPending}, nil).Once()
	deps.repos.PaymentRepo.On("UpdateStatus", mock.Anything, int64(7), models.PaymentStatusConfirmed).Return(nil).Once()
	deps.repos.OrderRepo.On("GetByIDForUpdate", mock.Anything, int64(42)).
		Return(&models.Order{ID: 42, Number: "AB12CD34EF", Status: orderStatus}, nil).Once()
}

func TestProcessWebhook(t *testing.T) {
	payload := []byte(`{"id": "evt_1"}`)
	signature := "t=1,v1=abc"

	t.Run("Completed session confirms payment and marks order paid", func(t *testing.T) {
		// Arrange
		paymentService, deps := setupPaymentServiceTest(t)

		event := sessionEvent(t, stripeClient.EventCheckoutCompleted, map[string]any{"id": "cs_1", "client_reference_id": "AB12CD34EF"})
		deps.stripe.On("VerifyWebhookSignature", payload, signature).Return(event, nil).Once()
		deps.payments.On("GetByGatewayID", mock.Anything, "cs_1").Return(&models.PaymentRecord{ID: 7}, nil).Once()
		expectConfirmation(deps, models.OrderStatusCreated)
		deps.repos.OrderRepo.On("UpdateStatus", mock.Anything, int64(42), models.OrderStatusPaid).Return(nil).Once()

		// Act
		got, err := paymentService.ProcessWebhook(t.Context(), payload, signature)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "evt_1", got.ID)
		assert.Equal(t, 1, deps.tx.Committed())
	})

	t.Run("Falls back to the order number", func(t *testing.T) {
		paymentService, deps := setupPaymentServiceTest(t)

		event := sessionEvent(t, stripeClient.EventCheckoutCompleted, map[string]any{
			"id": "cs_1", "metadata": map[string]string{"order_number": "AB12CD34EF"},
		})
		deps.stripe.On("VerifyWebhookSignature", payload, signature).Return(event, nil).Once()
		deps.payments.On("GetByGatewayID", mock.Anything, "cs_1").Return(nil, repository.ErrNotFound).Once()
		deps.orders.On("GetByNumber", mock.Anything, "AB12CD34EF").Return(&models.Order{ID: 42}, nil).Once()
		deps.payments.On("GetByOrderID", mock.Anything, int64(42)).Return(&models.PaymentRecord{ID: 7}, nil).Once()
		expectConfirmation(deps, models.OrderStatusCreated)
		deps.repos.OrderRepo.On("UpdateStatus", mock.Anything, int64(42), models.OrderStatusPaid).Return(nil).Once()

		_, err := paymentService.ProcessWebhook(t.Context(), payload, signature)

		require.NoError(t, err)
	})

	t.Run("Cancelled order keeps its status", func(t *testing.T) {
		paymentService, deps := setupPaymentServiceTest(t)

		event := sessionEvent(t, stripeClient.EventCheckoutCompleted, map[string]any{"id": "cs_1"})
		deps.stripe.On("VerifyWebhookSignature", payload, signature).Return(event, nil).Once()
		deps.payments.On("GetByGatewayID", mock.Anything, "cs_1").Return(&models.PaymentRecord{ID: 7}, nil).Once()
		expectConfirmation(deps, models.OrderStatusCancelled)

		_, err := paymentService.ProcessWebhook(t.Context(), payload, signature)

		require.NoError(t, err)
		deps.repos.OrderRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Redelivered event is a no-op", func(t *testing.T) {
		paymentService, deps := setupPaymentServiceTest(t)

		event := sessionEvent(t, stripeClient.EventCheckoutCompleted, map[string]any{"id": "cs_1"})
		deps.stripe.On("VerifyWebhookSignature", payload, signature).Return(event, nil).Once()
		deps.payments.On("GetByGatewayID", mock.Anything, "cs_1").Return(&models.PaymentRecord{ID: 7}, nil).Once()
		deps.repos.PaymentRepo.On("GetByIDForUpdate", mock.Anything, int64(7)).
			Return(&models.PaymentRecord{ID: 7, Status: models.PaymentStatusConfirmed}, nil).Once()

		_, err := paymentService.ProcessWebhook(t.Context(), payload, signature)

		require.NoError(t, err)
		deps.repos.PaymentRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Expired session cancels payment", func(t *testing.T) {
		paymentService, deps := setupPaymentServiceTest(t)

		event := sessionEvent(t, stripeClient.EventCheckoutExpired, map[string]any{"id": "cs_1"})
		deps.stripe.On("VerifyWebhookSignature", payload, signature).Return(event, nil).Once()
		deps.payments.On("GetByGatewayID", mock.Anything, "cs_1").Return(&models.PaymentRecord{ID: 7}, nil).Once()
		deps.repos.PaymentRepo.On("GetByIDForUpdate", mock.Anything, int64(7)).
			Return(&models.PaymentRecord{ID: 7, OrderID: 42, Status: models.PaymentStatusPending}, nil).Once()
		deps.repos.PaymentRepo.On("UpdateStatus", mock.Anything, int64(7), models.PaymentStatusCancelled).Return(nil).Once()

		_, err := paymentService.ProcessWebhook(t.Context(), payload, signature)

		require.NoError(t, err)
		deps.repos.OrderRepo.AssertNotCalled(t, "GetByIDForUpdate", mock.Anything, mock.Anything)
	})

	t.Run("Unknown events are acknowledged", func(t *testing.T) {
		paymentService, deps := setupPaymentServiceTest(t)

		event := stripeClient.Event{ID: "evt_2", Type: "customer.created"}
		deps.stripe.On("VerifyWebhookSignature", payload, signature).Return(event, nil).Once()

		_, err := paymentService.ProcessWebhook(t.Context(), payload, signature)

		assert.NoError(t, err)
	})

	t.Run("Invalid signature", func(t *testing.T) {
		paymentService, deps := setupPaymentServiceTest(t)

		deps.stripe.On("VerifyWebhookSignature", payload, signature).
			Return(stripeClient.Event{}, stdErrors.New("signature mismatch")).Once()

		_, err := paymentService.ProcessWebhook(t.Context(), payload, signature)

		assert.True(t, appErrors.HasCode(err, appErrors.ErrCodeBadRequest))
	})
}

func TestApplyPaymentAction(t *testing.T) {
	t.Run("Staff confirm", func(t *testing.T) {
		paymentService, deps := setupPaymentServiceTest(t)

		expectConfirmation(deps, models.OrderStatusCreated)
		deps.repos.OrderRepo.On("UpdateStatus", mock.Anything, int64(42), models.OrderStatusPaid).Return(nil).Once()

		payment, err := paymentService.ApplyAction(t.Context(), 7, models.PaymentActionConfirm)

		require.NoError(t, err)
		assert.Equal(t, models.PaymentStatusConfirmed, payment.Status)
	})

	t.Run("Staff cancel of a confirmed payment", func(t *testing.T) {
		paymentService, deps := setupPaymentServiceTest(t)

		deps.repos.PaymentRepo.On("GetByIDForUpdate", mock.Anything, int64(7)).
			Return(&models.PaymentRecord{ID: 7, Status: models.PaymentStatusConfirmed}, nil).Once()

		_, err := paymentService.ApplyAction(t.Context(), 7, models.PaymentActionCancel)

		assert.True(t, appErrors.HasCode(err, appErrors.ErrCodeInvalidTransition))
		assert.Equal(t, 1, deps.tx.RolledBack())
	})

	t.Run("Unknown action", func(t *testing.T) {
		paymentService, _ := setupPaymentServiceTest(t)

		_, err := paymentService.ApplyAction(t.Context(), 7, models.PaymentAction("refund"))

		assert.True(t, appErrors.HasCode(err, appErrors.ErrCodeValidation))
	})

	t.Run("Unknown payment", func(t *testing.T) {
		paymentService, deps := setupPaymentServiceTest(t)

		deps.repos.PaymentRepo.On("GetByIDForUpdate", mock.Anything, int64(7)).Return(nil, repository.ErrNotFound).Once()

		_, err := paymentService.ApplyAction(t.Context(), 7, models.PaymentActionConfirm)

		assert.True(t, appErrors.HasCode(err, appErrors.ErrCodeNotFound))
	})
}
