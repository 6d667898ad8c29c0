package errors

import (
	"database/sql"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError(t *testing.T) {
	t.Run("Constructors carry status codes", func(t *testing.T) {
		cases := []struct {
			err    *AppError
			code   string
			status int
		}{
			{ValidationError("bad"), ErrCodeValidation, http.StatusBadRequest},
			{NotFoundError("gone"), ErrCodeNotFound, http.StatusNotFound},
			{ForbiddenError("no"), ErrCodeForbidden, http.StatusForbidden},
			{ThirdPartyError("gateway"), ErrCodeThirdPartyError, http.StatusBadGateway},
			{TooManyRequestsError("slow down"), ErrCodeTooManyRequests, http.StatusTooManyRequests},
			{ConflictError("taken"), ErrCodeConflict, http.StatusConflict},
		}

		for _, tc := range cases {
			t.Run(tc.code, func(t *testing.T) {
				assert.Equal(t, tc.code, tc.err.Code)
				assert.Equal(t, tc.status, tc.err.StatusCode)
			})
		}
	})

	t.Run("Unwrap exposes cause", func(t *testing.T) {
		// Arrange
		appErr := DatabaseError("Failed to load order").WithError(sql.ErrConnDone)

		// Act
		wrapped := fmt.Errorf("checkout: %w", appErr)

		// Assert
		found, ok := IsAppError(wrapped)
		require.True(t, ok)
		assert.Equal(t, ErrCodeDatabaseError, found.Code)
		assert.ErrorIs(t, wrapped, sql.ErrConnDone)
		assert.Contains(t, appErr.Error(), "Failed to load order")
	})

	t.Run("Invalid transition", func(t *testing.T) {
		err := InvalidTransitionError("shipped", "created")

		assert.Equal(t, http.StatusConflict, err.StatusCode)
		assert.True(t, HasCode(err, ErrCodeInvalidTransition))
		assert.Contains(t, err.Message, `"shipped"`)
	})

	t.Run("Plain errors are not app errors", func(t *testing.T) {
		_, ok := IsAppError(sql.ErrNoRows)

		assert.False(t, ok)
		assert.False(t, HasCode(sql.ErrNoRows, ErrCodeNotFound))
	})
}
