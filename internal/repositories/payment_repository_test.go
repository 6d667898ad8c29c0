package repository_test

import (
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/aaravmahajanofficial/storefront-api/internal/models"
	repository "github.com/aaravmahajanofficial/storefront-api/internal/repositories"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var paymentCols = []string{
	"id", "order_id", "amount", "currency", "status", "gateway_id", "gateway_status", "confirmation_url",
	"created_at", "updated_at",
}

func setupPaymentRepoTest(t *testing.T) (repository.PaymentRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock := newMockDB(t)

	return repository.NewPaymentRepo(db), mock
}

func TestCreatePayment(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		// Arrange
		repo, mock := setupPaymentRepoTest(t)
		now := time.Now()
		payment := &models.PaymentRecord{
			OrderID:  42,
			Amount:   decimal.RequireFromString("25.50"),
			Currency: "rub",
			Status:   models.PaymentStatusPending,
		}

		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO payments (order_id, amount, currency, status)")).
			WithArgs(int64(42), decimal.RequireFromString("25.50"), "rub", "pending").
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(9), now, now))

		// Act
		err := repo.Create(t.Context(), payment)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, int64(9), payment.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Order already has a payment", func(t *testing.T) {
		repo, mock := setupPaymentRepoTest(t)

		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO payments")).WillReturnError(uniqueViolation("payments_order_id_key"))

		err := repo.Create(t.Context(), &models.PaymentRecord{OrderID: 42})

		assert.ErrorIs(t, err, repository.ErrConflict)
	})
}

func TestRecordGateway(t *testing.T) {
	repo, mock := setupPaymentRepoTest(t)
	now := time.Now()
	payment := &models.PaymentRecord{
		ID:              9,
		Amount:          decimal.RequireFromString("25.50"),
		Currency:        "rub",
		Status:          models.PaymentStatusPending,
		GatewayID:       "cs_test_1",
		GatewayStatus:   "open",
		ConfirmationURL: "https://checkout.stripe.com/c/pay/cs_test_1",
	}

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE payments SET gateway_id = $1")).
		WithArgs("cs_test_1", "open", decimal.RequireFromString("25.50"), "rub", "pending",
			"https://checkout.stripe.com/c/pay/cs_test_1", int64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"updated_at"}).AddRow(now))

	require.NoError(t, repo.RecordGateway(t.Context(), payment))
	assert.Equal(t, now, payment.UpdatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdatePaymentStatus(t *testing.T) {
	query := regexp.QuoteMeta("UPDATE payments SET status = $1")

	t.Run("Success", func(t *testing.T) {
		repo, mock := setupPaymentRepoTest(t)

		mock.ExpectExec(query).WithArgs("confirmed", int64(9)).WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.UpdateStatus(t.Context(), 9, models.PaymentStatusConfirmed))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Not Found", func(t *testing.T) {
		repo, mock := setupPaymentRepoTest(t)

		mock.ExpectExec(query).WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.UpdateStatus(t.Context(), 9, models.PaymentStatusConfirmed), repository.ErrNotFound)
	})
}

func TestGetPayment(t *testing.T) {
	now := time.Now()
	row := func() *sqlmock.Rows {
		return sqlmock.NewRows(paymentCols).
			AddRow(int64(9), int64(42), "25.50", "rub", "pending", "cs_test_1", "open", "https://pay", now, now)
	}

	tests := []struct {
		name   string
		query  string
		arg    any
		lookup func(repository.PaymentRepository) (*models.PaymentRecord, error)
	}{
		{"By id", "FROM payments WHERE id = $1", int64(9), func(r repository.PaymentRepository) (*models.PaymentRecord, error) {
			return r.GetByID(t.Context(), 9)
		}},
		{"By id for update", "WHERE id = $1 FOR UPDATE", int64(9), func(r repository.PaymentRepository) (*models.PaymentRecord, error) {
			return r.GetByIDForUpdate(t.Context(), 9)
		}},
		{"By order", "FROM payments WHERE order_id = $1", int64(42), func(r repository.PaymentRepository) (*models.PaymentRecord, error) {
			return r.GetByOrderID(t.Context(), 42)
		}},
		{"By gateway id", "FROM payments WHERE gateway_id = $1", "cs_test_1", func(r repository.PaymentRepository) (*models.PaymentRecord, error) {
			return r.GetByGatewayID(t.Context(), "cs_test_1")
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := setupPaymentRepoTest(t)

			mock.ExpectQuery(regexp.QuoteMeta(tt.query)).WithArgs(tt.arg).WillReturnRows(row())

			payment, err := tt.lookup(repo)

			require.NoError(t, err)
			assert.Equal(t, int64(42), payment.OrderID)
			assert.Equal(t, models.PaymentStatusPending, payment.Status)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}

	t.Run("Failure - Not Found", func(t *testing.T) {
		repo, mock := setupPaymentRepoTest(t)

		mock.ExpectQuery(regexp.QuoteMeta("FROM payments WHERE gateway_id = $1")).WillReturnRows(sqlmock.NewRows(paymentCols))

		_, err := repo.GetByGatewayID(t.Context(), "cs_unknown")

		assert.ErrorIs(t, err, repository.ErrNotFound)
	})
}
