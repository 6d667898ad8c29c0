package repository_test

import (
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/aaravmahajanofficial/storefront-api/internal/models"
	repository "github.com/aaravmahajanofficial/storefront-api/internal/repositories"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateNotification(t *testing.T) {
	now := time.Now()
	newNotification := func() *models.Notification {
		return &models.Notification{
			ID:        uuid.New(),
			Type:      models.NotificationTypeEmail,
			Kind:      models.NotificationOrderCreated,
			OrderID:   ptr[int64](42),
			Recipient: "amina@example.com",
			Subject:   "Order AB12CD34EF",
			Content:   "Thank you for your order",
			Status:    models.StatusPending,
		}
	}

	t.Run("Success", func(t *testing.T) {
		// Arrange
		db, mock := newMockDB(t)
		repo := repository.NewNotificationRepo(db)
		n := newNotification()

		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO notifications")).
			WithArgs(n.ID, "email", "order_created", int64(42), n.Recipient, n.Subject, n.Content, "pending", "").
			WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

		// Act
		err := repo.CreateNotification(t.Context(), n)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, now, n.CreatedAt)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Database Error", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := repository.NewNotificationRepo(db)
		dbErr := errors.New("insert failed")

		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO notifications")).WillReturnError(dbErr)

		err := repo.CreateNotification(t.Context(), newNotification())

		assert.ErrorIs(t, err, dbErr)
	})
}

func TestUpdateNotificationStatus(t *testing.T) {
	query := regexp.QuoteMeta("sent_at = CASE WHEN $1 = 'sent' THEN NOW() ELSE sent_at END")
	id := uuid.New()

	t.Run("Success", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := repository.NewNotificationRepo(db)

		mock.ExpectExec(query).WithArgs("failed", "smtp 550", id).WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.UpdateNotificationStatus(t.Context(), id, models.StatusFailed, "smtp 550"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Not Found", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := repository.NewNotificationRepo(db)

		mock.ExpectExec(query).WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdateNotificationStatus(t.Context(), id, models.StatusSent, "")

		assert.ErrorIs(t, err, repository.ErrNotFound)
	})
}

func TestListNotificationsByOrder(t *testing.T) {
	db, mock := newMockDB(t)
	repo := repository.NewNotificationRepo(db)
	now := time.Now()
	cols := []string{
		"id", "type", "kind", "order_id", "recipient", "subject", "content", "status", "error_message",
		"created_at", "updated_at", "sent_at",
	}

	mock.ExpectQuery(regexp.QuoteMeta("FROM notifications WHERE order_id = $1")).
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow(uuid.NewString(), "email", "order_created", int64(42), "a@example.com", "s", "c", "sent", "", now, now, now).
			AddRow(uuid.NewString(), "email", "delivery_date_changed", int64(42), "a@example.com", "s", "c", "pending", "", now, now, nil))

	notifications, err := repo.ListByOrder(t.Context(), 42)

	require.NoError(t, err)
	require.Len(t, notifications, 2)
	require.NotNil(t, notifications[0].SentAt)
	assert.Nil(t, notifications[1].SentAt)
	assert.Equal(t, models.NotificationDeliveryDateChanged, notifications[1].Kind)
	assert.NoError(t, mock.ExpectationsWereMet())
}
