package service_test

import (
	stdErrors "errors"
	"fmt"
	"testing"
	"time"

	appErrors "github.com/aaravmahajanofficial/storefront-api/internal/errors"
	"github.com/aaravmahajanofficial/storefront-api/internal/models"
	repository "github.com/aaravmahajanofficial/storefront-api/internal/repositories"
	repoMocks "github.com/aaravmahajanofficial/storefront-api/internal/repositories/mocks"
	service "github.com/aaravmahajanofficial/storefront-api/internal/services"
	serviceMocks "github.com/aaravmahajanofficial/storefront-api/internal/services/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type orderDeps struct {
	orders   *repoMocks.OrderRepository
	payments *repoMocks.PaymentRepository
	repos    *repoMocks.TxRepos
	tx       *repoMocks.TransactionManager
	notifier *serviceMocks.Notifier
}

func setupOrderServiceTest(t *testing.T) (service.OrderService, *orderDeps) {
	t.Helper()

	deps := &orderDeps{
		orders:   repoMocks.NewOrderRepository(t),
		payments: repoMocks.NewPaymentRepository(t),
		repos:    &repoMocks.TxRepos{OrderRepo: repoMocks.NewOrderRepository(t)},
		notifier: serviceMocks.NewNotifier(t),
	}
	deps.tx = repoMocks.NewTransactionManager(deps.repos)

	return service.NewOrderService(deps.orders, deps.payments, deps.tx, deps.notifier), deps
}

func TestGetOrderByNumber(t *testing.T) {
	owner := int64(5)

	t.Run("Success - Owner sees the order with its payment", func(t *testing.T) {
		// Arrange
		orderService, deps := setupOrderServiceTest(t)

		deps.orders.On("GetByNumber", mock.Anything, "AB12CD34EF").
			Return(&models.Order{ID: 42, Number: "AB12CD34EF", ProfileID: &owner}, nil).Once()
		deps.payments.On("GetByOrderID", mock.Anything, int64(42)).
			Return(&models.PaymentRecord{ID: 7, Status: models.PaymentStatusPending}, nil).Once()

		// Act
		order, err := orderService.GetByNumber(t.Context(), "AB12CD34EF", service.Viewer{ProfileID: owner})

		// Assert
		require.NoError(t, err)
		require.NotNil(t, order.Payment)
		assert.Equal(t, int64(7), order.Payment.ID)
	})

	t.Run("Success - Staff sees guest orders", func(t *testing.T) {
		orderService, deps := setupOrderServiceTest(t)

		deps.orders.On("GetByNumber", mock.Anything, "AB12CD34EF").Return(&models.Order{ID: 42}, nil).Once()
		deps.payments.On("GetByOrderID", mock.Anything, int64(42)).Return(nil, repository.ErrNotFound).Once()

		order, err := orderService.GetByNumber(t.Context(), "AB12CD34EF", service.Viewer{IsStaff: true})

		require.NoError(t, err)
		assert.Nil(t, order.Payment)
	})

	t.Run("Failure - Another buyer's order", func(t *testing.T) {
		orderService, deps := setupOrderServiceTest(t)

		deps.orders.On("GetByNumber", mock.Anything, "AB12CD34EF").
			Return(&models.Order{ID: 42, ProfileID: &owner}, nil).Once()

		_, err := orderService.GetByNumber(t.Context(), "AB12CD34EF", service.Viewer{ProfileID: 6})

		assert.True(t, appErrors.HasCode(err, appErrors.ErrCodeNotFound))
	})

	t.Run("Failure - Unknown number", func(t *testing.T) {
		orderService, deps := setupOrderServiceTest(t)

		deps.orders.On("GetByNumber", mock.Anything, "ZZZZZZZZZZ").
			Return(nil, fmt.Errorf("failed to get order ZZZZZZZZZZ: %w", repository.ErrNotFound)).Once()

		_, err := orderService.GetByNumber(t.Context(), "ZZZZZZZZZZ", service.Viewer{ProfileID: owner})

		assert.True(t, appErrors.HasCode(err, appErrors.ErrCodeNotFound))
	})
}

func TestListOrdersForProfile(t *testing.T) {
	orderService, deps := setupOrderServiceTest(t)

	deps.orders.On("ListByProfile", mock.Anything, int64(5), 1, 10).
		Return([]models.Order{{ID: 1}, {ID: 2}}, 2, nil).Once()

	page, err := orderService.ListForProfile(t.Context(), 5, 0, 500)

	require.NoError(t, err)
	assert.Equal(t, 2, page.Total)
	assert.Equal(t, 1, page.TotalPages)
}

func TestUpdateOrderStatus(t *testing.T) {
	t.Run("Success - Forward move", func(t *testing.T) {
		// Arrange
		orderService, deps := setupOrderServiceTest(t)

		deps.repos.OrderRepo.On("GetByIDForUpdate", mock.Anything, int64(42)).
			Return(&models.Order{ID: 42, Status: models.OrderStatusPaid}, nil).Once()
		deps.repos.OrderRepo.On("UpdateStatus", mock.Anything, int64(42), models.OrderStatusShipped).Return(nil).Once()

		// Act
		order, err := orderService.UpdateStatus(t.Context(), 42, models.OrderStatusShipped)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, models.OrderStatusShipped, order.Status)
		assert.Equal(t, 1, deps.tx.Committed())
	})

	t.Run("Failure - Backwards move", func(t *testing.T) {
		orderService, deps := setupOrderServiceTest(t)

		deps.repos.OrderRepo.On("GetByIDForUpdate", mock.Anything, int64(42)).
			Return(&models.Order{ID: 42, Status: models.OrderStatusShipped}, nil).Once()

		_, err := orderService.UpdateStatus(t.Context(), 42, models.OrderStatusPaid)

		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeInvalidTransition, appErr.Code)
		assert.Equal(t, 409, appErr.StatusCode)
		assert.Equal(t, 1, deps.tx.RolledBack())
	})

	t.Run("Failure - Unknown status", func(t *testing.T) {
		orderService, deps := setupOrderServiceTest(t)

		_, err := orderService.UpdateStatus(t.Context(), 42, models.OrderStatus("lost"))

		assert.True(t, appErrors.HasCode(err, appErrors.ErrCodeValidation))
		assert.Equal(t, 0, deps.tx.Committed()+deps.tx.RolledBack())
	})

	t.Run("Failure - Commit error", func(t *testing.T) {
		orderService, deps := setupOrderServiceTest(t)
		deps.tx.BeginErr = stdErrors.New("connection refused")

		_, err := orderService.UpdateStatus(t.Context(), 42, models.OrderStatusPaid)

		assert.True(t, appErrors.HasCode(err, appErrors.ErrCodeDatabaseError))
	})
}

func TestUpdateDeliveryDate(t *testing.T) {
	date := time.Date(2026, 11, 3, 0, 0, 0, 0, time.UTC)

	t.Run("Success - Change notifies the buyer", func(t *testing.T) {
		// Arrange
		orderService, deps := setupOrderServiceTest(t)

		deps.repos.OrderRepo.On("GetByIDForUpdate", mock.Anything, int64(42)).
			Return(&models.Order{ID: 42, Number: "AB12CD34EF", Status: models.OrderStatusPaid}, nil).Once()
		deps.repos.OrderRepo.On("UpdateDeliveryDate", mock.Anything, int64(42), &date).Return(nil).Once()
		deps.notifier.On("Enqueue", mock.Anything, mock.MatchedBy(func(e models.OrderEvent) bool {
			return e.Kind == models.NotificationDeliveryDateChanged && e.Order.Number == "AB12CD34EF" &&
				e.Order.DeliveryDate != nil && e.Order.DeliveryDate.Equal(date)
		})).Return(nil).Once()

		// Act
		order, err := orderService.UpdateDeliveryDate(t.Context(), 42, date)

		// Assert
		require.NoError(t, err)
		assert.True(t, order.DeliveryDate.Equal(date))
	})

	t.Run("Success - Same date is silent", func(t *testing.T) {
		orderService, deps := setupOrderServiceTest(t)

		same := date
		deps.repos.OrderRepo.On("GetByIDForUpdate", mock.Anything, int64(42)).
			Return(&models.Order{ID: 42, DeliveryDate: &same}, nil).Once()

		_, err := orderService.UpdateDeliveryDate(t.Context(), 42, date)

		require.NoError(t, err)
		deps.notifier.AssertNotCalled(t, "Enqueue", mock.Anything, mock.Anything)
	})

	t.Run("Success - Full queue does not fail the update", func(t *testing.T) {
		orderService, deps := setupOrderServiceTest(t)

		deps.repos.OrderRepo.On("GetByIDForUpdate", mock.Anything, int64(42)).Return(&models.Order{ID: 42}, nil).Once()
		deps.repos.OrderRepo.On("UpdateDeliveryDate", mock.Anything, int64(42), &date).Return(nil).Once()
		deps.notifier.On("Enqueue", mock.Anything, mock.Anything).Return(service.ErrNotificationQueueFull).Once()

		_, err := orderService.UpdateDeliveryDate(t.Context(), 42, date)

		assert.NoError(t, err)
	})

	t.Run("Failure - Unknown order", func(t *testing.T) {
		orderService, deps := setupOrderServiceTest(t)

		deps.repos.OrderRepo.On("GetByIDForUpdate", mock.Anything, int64(42)).Return(nil, repository.ErrNotFound).Once()

		_, err := orderService.UpdateDeliveryDate(t.Context(), 42, date)

		assert.True(t, appErrors.HasCode(err, appErrors.ErrCodeNotFound))
	})
}
