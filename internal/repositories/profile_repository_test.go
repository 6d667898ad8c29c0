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

var profileCols = []string{
	"id", "user_id", "first_name", "last_name", "clothing_size", "gender", "birthday",
	"city", "street", "house", "apartment_office", "postal_code", "created_at", "updated_at",
}

func TestGetOrCreateProfile(t *testing.T) {
	userID := uuid.New()
	now := time.Now()

	t.Run("Success - First visit creates the row", func(t *testing.T) {
		// Arrange
		db, mock := newMockDB(t)
		repo := repository.NewProfileRepo(db)

		mock.ExpectExec(regexp.QuoteMeta("ON CONFLICT (user_id) DO NOTHING")).
			WithArgs(userID).
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectQuery(regexp.QuoteMeta("FROM profiles WHERE user_id = $1")).
			WithArgs(userID).
			WillReturnRows(sqlmock.NewRows(profileCols).
				AddRow(int64(1), userID.String(), "", "", "", "", nil, "", "", "", "", "", now, now))

		// Act
		profile, err := repo.GetOrCreate(t.Context(), userID)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, int64(1), profile.ID)
		assert.Equal(t, userID, profile.UserID)
		assert.Nil(t, profile.Birthday)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Success - Existing row is returned", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := repository.NewProfileRepo(db)
		birthday := time.Date(1995, 4, 12, 0, 0, 0, 0, time.UTC)

		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO profiles")).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(regexp.QuoteMeta("FROM profiles WHERE user_id = $1")).
			WillReturnRows(sqlmock.NewRows(profileCols).
				AddRow(int64(4), userID.String(), "Amina", "K", "M", "female", birthday, "Kazan", "Baumana", "1", "", "420000", now, now))

		profile, err := repo.GetOrCreate(t.Context(), userID)

		require.NoError(t, err)
		assert.Equal(t, "Amina", profile.FirstName)
		require.NotNil(t, profile.Birthday)
		assert.True(t, birthday.Equal(*profile.Birthday))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Insert Error", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := repository.NewProfileRepo(db)
		dbErr := errors.New("db down")

		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO profiles")).WillReturnError(dbErr)

		_, err := repo.GetOrCreate(t.Context(), userID)

		assert.ErrorIs(t, err, dbErr)
	})
}

func TestUpdateProfile(t *testing.T) {
	db, mock := newMockDB(t)
	repo := repository.NewProfileRepo(db)
	updatedAt := time.Now()
	profile := &models.Profile{ID: 3, FirstName: "Amina", City: "Kazan"}

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE profiles SET first_name = $1")).
		WithArgs("Amina", "", "", "", nil, "Kazan", "", "", "", "", int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"updated_at"}).AddRow(updatedAt))

	err := repo.Update(t.Context(), profile)

	require.NoError(t, err)
	assert.Equal(t, updatedAt, profile.UpdatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}
