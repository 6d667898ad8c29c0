package repository_test

import (
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/aaravmahajanofficial/storefront-api/internal/models"
	repository "github.com/aaravmahajanofficial/storefront-api/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithinTx(t *testing.T) {
	t.Run("Commits when the callback succeeds", func(t *testing.T) {
		// Arrange
		db, mock := newMockDB(t)
		tm := repository.NewTxManager(db)

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta("UPDATE orders SET status = $1")).
			WithArgs("paid", int64(42)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		// Act
		err := tm.WithinTx(t.Context(), func(r repository.TxRepos) error {
			return r.Orders().UpdateStatus(t.Context(), 42, models.OrderStatusPaid)
		})

		// Assert
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Rolls back when the callback fails", func(t *testing.T) {
		db, mock := newMockDB(t)
		tm := repository.NewTxManager(db)
		cbErr := errors.New("missing product")

		mock.ExpectBegin()
		mock.ExpectRollback()

		err := tm.WithinTx(t.Context(), func(repository.TxRepos) error {
			return cbErr
		})

		assert.ErrorIs(t, err, cbErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Rolls back and re-panics", func(t *testing.T) {
		db, mock := newMockDB(t)
		tm := repository.NewTxManager(db)

		mock.ExpectBegin()
		mock.ExpectRollback()

		assert.PanicsWithValue(t, "boom", func() {
			_ = tm.WithinTx(t.Context(), func(repository.TxRepos) error {
				panic("boom")
			})
		})
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Begin failure", func(t *testing.T) {
		db, mock := newMockDB(t)
		tm := repository.NewTxManager(db)
		beginErr := errors.New("too many connections")

		mock.ExpectBegin().WillReturnError(beginErr)

		err := tm.WithinTx(t.Context(), func(repository.TxRepos) error {
			t.Fatal("callback must not run")
			return nil
		})

		assert.ErrorIs(t, err, beginErr)
	})

	t.Run("Commit failure", func(t *testing.T) {
		db, mock := newMockDB(t)
		tm := repository.NewTxManager(db)
		commitErr := errors.New("serialization failure")

		mock.ExpectBegin()
		mock.ExpectCommit().WillReturnError(commitErr)

		err := tm.WithinTx(t.Context(), func(repository.TxRepos) error { return nil })

		require.ErrorIs(t, err, commitErr)
		assert.Contains(t, err.Error(), "failed to commit transaction")
	})
}
