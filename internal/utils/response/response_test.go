package response_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	appErrors "github.com/aaravmahajanofficial/storefront-api/internal/errors"
	"github.com/aaravmahajanofficial/storefront-api/internal/utils/response"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, rr *httptest.ResponseRecorder) response.APIResponse {
	t.Helper()

	var body response.APIResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))

	return body
}

func TestError(t *testing.T) {
	t.Run("AppError keeps its status and code", func(t *testing.T) {
		rr := httptest.NewRecorder()

		response.Error(rr, appErrors.NotFoundError("Order not found").WithDetail("AB12CD34EF"))

		body := decode(t, rr)
		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.False(t, body.Success)
		assert.Equal(t, appErrors.ErrCodeNotFound, body.Error.Code)
		assert.Equal(t, []string{"AB12CD34EF"}, body.Error.Details)
	})

	t.Run("Other errors are opaque", func(t *testing.T) {
		rr := httptest.NewRecorder()

		response.Error(rr, errors.New("pq: connection refused"))

		body := decode(t, rr)
		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.Equal(t, appErrors.ErrCodeInternal, body.Error.Code)
		assert.NotContains(t, body.Error.Message, "pq")
	})
}

func TestSuccess(t *testing.T) {
	rr := httptest.NewRecorder()

	response.Success(rr, http.StatusCreated, map[string]string{"order_number": "AB12CD34EF"})

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.True(t, decode(t, rr).Success)
}
