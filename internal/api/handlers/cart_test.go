package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aaravmahajanofficial/storefront-api/internal/api/handlers"
	appErrors "github.com/aaravmahajanofficial/storefront-api/internal/errors"
	"github.com/aaravmahajanofficial/storefront-api/internal/models"
	"github.com/aaravmahajanofficial/storefront-api/internal/services/mocks"
	"github.com/aaravmahajanofficial/storefront-api/internal/testutils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupCartTest(t *testing.T) (*mocks.CartService, *handlers.CartHandler, uuid.UUID) {
	t.Helper()

	userID := uuid.New()
	cart := mocks.NewCartService(t)

	return cart, handlers.NewCartHandler(cart, buyerProfile(t, userID)), userID
}

func TestGetCartHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		// Arrange
		cart, handler, userID := setupCartTest(t)

		cart.On("List", mock.Anything, testProfileID).Return(&models.Cart{
			Lines: []models.CartLine{{ID: 1, Quantity: 2, UnitPrice: decimal.RequireFromString("10.00")}},
			Total: decimal.RequireFromString("20.00"),
		}, nil).Once()

		req := testutils.CreateTestRequestWithContext(http.MethodGet, "/api/v1/cart", nil, userID, nil)
		rr := httptest.NewRecorder()

		// Act
		handler.GetCart().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)

		var got models.Cart
		decodeResponse(t, rr, &got)
		assert.True(t, got.Total.Equal(decimal.RequireFromString("20")))
	})

	t.Run("Failure - Anonymous", func(t *testing.T) {
		_, handler, _ := setupCartTest(t)

		rr := httptest.NewRecorder()
		handler.GetCart().ServeHTTP(rr, testutils.CreateTestRequestWithoutContext(http.MethodGet, "/api/v1/cart", nil, nil))

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestWriteCartLineHandlers(t *testing.T) {
	line := models.CartLineRequest{ProductID: 1, ColorID: 3, SizeID: 4, Quantity: 2}

	t.Run("Set uses absolute quantity", func(t *testing.T) {
		cart, handler, userID := setupCartTest(t)

		cart.On("Set", mock.Anything, testProfileID, line).Return(&models.CartLine{ID: 9, Quantity: 2}, nil).Once()

		rr := httptest.NewRecorder()
		handler.SetItem().ServeHTTP(rr, testutils.CreateTestRequestWithContext(http.MethodPost, "/api/v1/cart/items", jsonBody(t, line), userID, nil))

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("Increment adds quantity", func(t *testing.T) {
		cart, handler, userID := setupCartTest(t)

		cart.On("Add", mock.Anything, testProfileID, line).Return(&models.CartLine{ID: 9, Quantity: 5}, nil).Once()

		rr := httptest.NewRecorder()
		handler.IncrementItem().ServeHTTP(rr, testutils.CreateTestRequestWithContext(http.MethodPost, "/api/v1/cart/items/increment", jsonBody(t, line), userID, nil))

		var got models.CartLine
		decodeResponse(t, rr, &got)
		assert.Equal(t, int64(5), got.Quantity)
	})

	t.Run("Zero quantity is rejected", func(t *testing.T) {
		_, handler, userID := setupCartTest(t)

		bad := line
		bad.Quantity = 0

		rr := httptest.NewRecorder()
		handler.SetItem().ServeHTTP(rr, testutils.CreateTestRequestWithContext(http.MethodPost, "/api/v1/cart/items", jsonBody(t, bad), userID, nil))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, appErrors.ErrCodeValidation, decodeResponse(t, rr, nil).Error.Code)
	})

	t.Run("Quantity above the line limit is rejected", func(t *testing.T) {
		_, handler, userID := setupCartTest(t)

		bad := line
		bad.Quantity = 3_000_000_000

		rr := httptest.NewRecorder()
		handler.SetItem().ServeHTTP(rr, testutils.CreateTestRequestWithContext(http.MethodPost, "/api/v1/cart/items", jsonBody(t, bad), userID, nil))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, appErrors.ErrCodeValidation, decodeResponse(t, rr, nil).Error.Code)
	})

	t.Run("Unknown variant", func(t *testing.T) {
		cart, handler, userID := setupCartTest(t)

		cart.On("Set", mock.Anything, testProfileID, line).Return(nil, appErrors.NotFoundError("Variant is not available")).Once()

		rr := httptest.NewRecorder()
		handler.SetItem().ServeHTTP(rr, testutils.CreateTestRequestWithContext(http.MethodPost, "/api/v1/cart/items", jsonBody(t, line), userID, nil))

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestBulkAddHandler(t *testing.T) {
	items := []models.CartLineRequest{
		{ProductID: 1, ColorID: 3, SizeID: 4, Quantity: 1},
		{ProductID: 2, ColorID: 3, SizeID: 4, Quantity: 1},
	}

	t.Run("All applied", func(t *testing.T) {
		cart, handler, userID := setupCartTest(t)

		cart.On("BulkAdd", mock.Anything, testProfileID, items).Return(&models.BulkAddResult{Applied: 2, Atomic: true}, nil).Once()

		rr := httptest.NewRecorder()
		handler.BulkAdd().ServeHTTP(rr, testutils.CreateTestRequestWithContext(http.MethodPost, "/api/v1/cart/items/bulk",
			jsonBody(t, models.BulkAddRequest{Items: items}), userID, nil))

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("Partially applied", func(t *testing.T) {
		cart, handler, userID := setupCartTest(t)

		failed := 1
		cart.On("BulkAdd", mock.Anything, testProfileID, items).
			Return(&models.BulkAddResult{Applied: 1, FailedIndex: &failed, Error: "Product not found: 2"}, nil).Once()

		rr := httptest.NewRecorder()
		handler.BulkAdd().ServeHTTP(rr, testutils.CreateTestRequestWithContext(http.MethodPost, "/api/v1/cart/items/bulk",
			jsonBody(t, models.BulkAddRequest{Items: items}), userID, nil))

		assert.Equal(t, http.StatusMultiStatus, rr.Code)

		var result models.BulkAddResult
		decodeResponse(t, rr, &result)
		require.NotNil(t, result.FailedIndex)
		assert.Equal(t, 1, *result.FailedIndex)
	})

	t.Run("Empty list", func(t *testing.T) {
		_, handler, userID := setupCartTest(t)

		rr := httptest.NewRecorder()
		handler.BulkAdd().ServeHTTP(rr, testutils.CreateTestRequestWithContext(http.MethodPost, "/api/v1/cart/items/bulk",
			jsonBody(t, models.BulkAddRequest{}), userID, nil))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestCartLineByIDHandlers(t *testing.T) {
	t.Run("Update quantity", func(t *testing.T) {
		cart, handler, userID := setupCartTest(t)

		cart.On("UpdateQuantity", mock.Anything, testProfileID, int64(9), int64(4)).Return(&models.CartLine{ID: 9, Quantity: 4}, nil).Once()

		rr := httptest.NewRecorder()
		handler.UpdateQuantity().ServeHTTP(rr, testutils.CreateTestRequestWithContext(http.MethodPatch, "/api/v1/cart/items/9",
			jsonBody(t, models.UpdateCartQuantityRequest{Quantity: 4}), userID, map[string]string{"id": "9"}))

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("Remove", func(t *testing.T) {
		cart, handler, userID := setupCartTest(t)

		cart.On("Remove", mock.Anything, testProfileID, int64(9)).Return(nil).Once()

		rr := httptest.NewRecorder()
		handler.RemoveItem().ServeHTTP(rr, testutils.CreateTestRequestWithContext(http.MethodDelete, "/api/v1/cart/items/9", nil, userID, map[string]string{"id": "9"}))

		assert.Equal(t, http.StatusNoContent, rr.Code)
	})

	t.Run("Remove another buyer's line", func(t *testing.T) {
		cart, handler, userID := setupCartTest(t)

		cart.On("Remove", mock.Anything, testProfileID, int64(10)).Return(appErrors.NotFoundError("Cart line not found")).Once()

		rr := httptest.NewRecorder()
		handler.RemoveItem().ServeHTTP(rr, testutils.CreateTestRequestWithContext(http.MethodDelete, "/api/v1/cart/items/10", nil, userID, map[string]string{"id": "10"}))

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}
