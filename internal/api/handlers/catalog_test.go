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
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupCatalogTest(t *testing.T) (*mocks.CatalogService, *mocks.VariantService, *handlers.CatalogHandler) {
	t.Helper()

	catalog := mocks.NewCatalogService(t)
	variants := mocks.NewVariantService(t)

	return catalog, variants, handlers.NewCatalogHandler(catalog, variants)
}

func TestListProductsHandler(t *testing.T) {
	t.Run("Success - Query becomes a filter", func(t *testing.T) {
		// Arrange
		catalog, _, handler := setupCatalogTest(t)

		category, color := int64(2), int64(3)
		minPrice := decimal.RequireFromString("10.5")
		catalog.On("ListProducts", mock.Anything, mock.MatchedBy(func(f models.ProductFilter) bool {
			return f.CategoryID != nil && *f.CategoryID == category &&
				f.ColorID != nil && *f.ColorID == color &&
				f.CollectionID == nil && f.SizeID == nil &&
				f.MinPrice != nil && f.MinPrice.Equal(minPrice) && f.MaxPrice == nil &&
				f.Name == "abaya" && f.Ordering == "-price" && f.Page == 2
		})).Return(models.NewPaginatedResponse([]models.ProductSummary{{ID: 1}}, 13, 2, 12), nil).Once()

		req := testutils.CreateTestRequestWithoutContext(http.MethodGet,
			"/api/v1/products?category=2&color=3&min_price=10.5&name=abaya&ordering=-price&page=2", nil, nil)
		rr := httptest.NewRecorder()

		// Act
		handler.ListProducts().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)

		var page models.PaginatedResponse
		resp := decodeResponse(t, rr, &page)
		assert.True(t, resp.Success)
		assert.Equal(t, 13, page.Total)
		assert.Equal(t, 2, page.TotalPages)
	})

	t.Run("Failure - Bad price", func(t *testing.T) {
		_, _, handler := setupCatalogTest(t)

		req := testutils.CreateTestRequestWithoutContext(http.MethodGet, "/api/v1/products?max_price=cheap", nil, nil)
		rr := httptest.NewRecorder()

		handler.ListProducts().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, appErrors.ErrCodeValidation, decodeResponse(t, rr, nil).Error.Code)
	})

	t.Run("Failure - Bad category id", func(t *testing.T) {
		_, _, handler := setupCatalogTest(t)

		req := testutils.CreateTestRequestWithoutContext(http.MethodGet, "/api/v1/products?category=-1", nil, nil)
		rr := httptest.NewRecorder()

		handler.ListProducts().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestGetProductHandler(t *testing.T) {
	t.Run("Success - Viewer IP is passed on", func(t *testing.T) {
		catalog, _, handler := setupCatalogTest(t)

		catalog.On("GetProduct", mock.Anything, int64(1), "203.0.113.7").
			Return(&models.Product{ID: 1, Name: "Abaya"}, nil).Once()

		req := testutils.CreateTestRequestWithoutContext(http.MethodGet, "/api/v1/products/1", nil, map[string]string{"id": "1"})
		req.Header.Set("X-Forwarded-For", "203.0.113.7")
		rr := httptest.NewRecorder()

		handler.GetProduct().ServeHTTP(rr, req)

		var product models.Product
		decodeResponse(t, rr, &product)
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "Abaya", product.Name)
	})

	t.Run("Failure - Not found", func(t *testing.T) {
		catalog, _, handler := setupCatalogTest(t)

		catalog.On("GetProduct", mock.Anything, int64(9), mock.Anything).
			Return(nil, appErrors.NotFoundError("Product not found")).Once()

		req := testutils.CreateTestRequestWithoutContext(http.MethodGet, "/api/v1/products/9", nil, map[string]string{"id": "9"})
		rr := httptest.NewRecorder()

		handler.GetProduct().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("Failure - Invalid id", func(t *testing.T) {
		_, _, handler := setupCatalogTest(t)

		req := testutils.CreateTestRequestWithoutContext(http.MethodGet, "/api/v1/products/abc", nil, map[string]string{"id": "abc"})
		rr := httptest.NewRecorder()

		handler.GetProduct().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestResolveVariantHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		_, variants, handler := setupCatalogTest(t)

		variants.On("Resolve", mock.Anything, int64(1), int64(3), int64(4)).
			Return(&models.VariantLine{ID: 11, ProductID: 1}, nil).Once()

		req := testutils.CreateTestRequestWithoutContext(http.MethodGet, "/api/v1/products/1/variant?color_id=3&size_id=4", nil, map[string]string{"id": "1"})
		rr := httptest.NewRecorder()

		handler.ResolveVariant().ServeHTTP(rr, req)

		var line models.VariantLine
		decodeResponse(t, rr, &line)
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, int64(11), line.ID)
	})

	t.Run("Failure - Size missing", func(t *testing.T) {
		_, _, handler := setupCatalogTest(t)

		req := testutils.CreateTestRequestWithoutContext(http.MethodGet, "/api/v1/products/1/variant?color_id=3", nil, map[string]string{"id": "1"})
		rr := httptest.NewRecorder()

		handler.ResolveVariant().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Failure - Unavailable pair", func(t *testing.T) {
		_, variants, handler := setupCatalogTest(t)

		variants.On("Resolve", mock.Anything, int64(1), int64(3), int64(4)).
			Return(nil, appErrors.NotFoundError("Variant is not available")).Once()

		req := testutils.CreateTestRequestWithoutContext(http.MethodGet, "/api/v1/products/1/variant?color_id=3&size_id=4", nil, map[string]string{"id": "1"})
		rr := httptest.NewRecorder()

		handler.ResolveVariant().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Equal(t, "Variant is not available", decodeResponse(t, rr, nil).Error.Message)
	})
}

func TestCatalogLookupHandlers(t *testing.T) {
	t.Run("Menu", func(t *testing.T) {
		catalog, _, handler := setupCatalogTest(t)

		catalog.On("GetMenu", mock.Anything).Return([]models.Menu{{ID: 1, Title: "Women"}}, nil).Once()

		rr := httptest.NewRecorder()
		handler.GetMenu().ServeHTTP(rr, testutils.CreateTestRequestWithoutContext(http.MethodGet, "/api/v1/menu", nil, nil))

		var menus []models.Menu
		decodeResponse(t, rr, &menus)
		require.Len(t, menus, 1)
		assert.Equal(t, "Women", menus[0].Title)
	})

	t.Run("Home failure", func(t *testing.T) {
		catalog, _, handler := setupCatalogTest(t)

		catalog.On("GetHome", mock.Anything).Return(nil, appErrors.DatabaseError("Failed to load home page")).Once()

		rr := httptest.NewRecorder()
		handler.GetHome().ServeHTTP(rr, testutils.CreateTestRequestWithoutContext(http.MethodGet, "/api/v1/home", nil, nil))

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})

	t.Run("Collection", func(t *testing.T) {
		catalog, _, handler := setupCatalogTest(t)

		catalog.On("GetCollection", mock.Anything, int64(7)).Return(&models.Collection{ID: 7}, nil).Once()

		rr := httptest.NewRecorder()
		handler.GetCollection().ServeHTTP(rr,
			testutils.CreateTestRequestWithoutContext(http.MethodGet, "/api/v1/collections/7", nil, map[string]string{"id": "7"}))

		assert.Equal(t, http.StatusOK, rr.Code)
	})
}
