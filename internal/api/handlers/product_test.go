package handlers_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aaravmahajanofficial/storefront-checkout/internal/api/handlers"
	appErrors "github.com/aaravmahajanofficial/storefront-checkout/internal/errors"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/models"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/services/mocks"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/testutils"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestGetProduct(t *testing.T) {

	t.Run("Success", func(t *testing.T) {
		// Arrange
		mockProductService := mocks.NewMockProductService(t)
		handler := handlers.NewProductHandler(mockProductService)

		expected := &models.Product{ID: 3, Name: "Cold brew", Price: decimal.NewFromInt(45000), IsAvailable: true}
		mockProductService.On("GetProductByID", mock.Anything, int64(3)).Return(expected, nil).Once()

		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequestWithoutContext(http.MethodGet, "/api/v1/products/3", nil, map[string]string{"id": "3"})

		// Act
		handler.GetProduct().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)

		var product models.Product
		require.NoError(t, json.Unmarshal(decodeEnvelope(t, rr).Data, &product))
		assert.Equal(t, "Cold brew", product.Name)
		assert.True(t, expected.Price.Equal(product.Price))
		mockProductService.AssertExpectations(t)
	})

	t.Run("Invalid ID Format", func(t *testing.T) {
		// Arrange
		mockProductService := mocks.NewMockProductService(t)
		handler := handlers.NewProductHandler(mockProductService)

		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequestWithoutContext(http.MethodGet, "/api/v1/products/abc", nil, map[string]string{"id": "abc"})

		// Act
		handler.GetProduct().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, appErrors.ErrCodeValidation, decodeEnvelope(t, rr).Error.Code)
		mockProductService.AssertNotCalled(t, "GetProductByID", mock.Anything, mock.Anything)
	})

	t.Run("Product Not Found", func(t *testing.T) {
		// Arrange
		mockProductService := mocks.NewMockProductService(t)
		handler := handlers.NewProductHandler(mockProductService)

		mockProductService.On("GetProductByID", mock.Anything, int64(99)).
			Return(nil, appErrors.NotFoundError("Product not found")).Once()

		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequestWithoutContext(http.MethodGet, "/api/v1/products/99", nil, map[string]string{"id": "99"})

		// Act
		handler.GetProduct().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Equal(t, appErrors.ErrCodeNotFound, decodeEnvelope(t, rr).Error.Code)
	})
}

func TestListProducts(t *testing.T) {

	t.Run("Success", func(t *testing.T) {
		mockProductService := mocks.NewMockProductService(t)
		handler := handlers.NewProductHandler(mockProductService)

		mockProductService.On("ListProducts", mock.Anything).
			Return([]models.Product{{ID: 1, Name: "Latte"}, {ID: 2, Name: "Mocha"}}, nil).Once()

		rr := httptest.NewRecorder()
		handler.ListProducts().ServeHTTP(rr, testutils.CreateTestRequestWithoutContext(http.MethodGet, "/api/v1/products", nil, nil))

		assert.Equal(t, http.StatusOK, rr.Code)

		var products []models.Product
		require.NoError(t, json.Unmarshal(decodeEnvelope(t, rr).Data, &products))
		assert.Len(t, products, 2)
	})

	t.Run("Non-application error maps to 500", func(t *testing.T) {
		mockProductService := mocks.NewMockProductService(t)
		handler := handlers.NewProductHandler(mockProductService)

		mockProductService.On("ListProducts", mock.Anything).Return(nil, errors.New("boom")).Once()

		rr := httptest.NewRecorder()
		handler.ListProducts().ServeHTTP(rr, testutils.CreateTestRequestWithoutContext(http.MethodGet, "/api/v1/products", nil, nil))

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.Equal(t, appErrors.ErrCodeInternal, decodeEnvelope(t, rr).Error.Code)
	})
}
