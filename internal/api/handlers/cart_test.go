package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aaravmahajanofficial/storefront-checkout/internal/api/handlers"
	appErrors "github.com/aaravmahajanofficial/storefront-checkout/internal/errors"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/models"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/services/mocks"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/testutils"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/utils"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func sampleCart() models.Cart {
	return models.Cart{
		Items: []models.CartLineItem{
			{ProductID: 3, Name: "Cold brew", UnitPrice: decimal.NewFromInt(45000), Quantity: 2},
		},
		TotalItemCount: 2,
		TotalPrice:     decimal.NewFromInt(90000),
	}
}

func TestCartHandler(t *testing.T) {

	t.Run("GetCart", func(t *testing.T) {
		mockCartService := mocks.NewMockCartService(t)
		handler := handlers.NewCartHandler(mockCartService, utils.NewValidator())
		mockCartService.On("GetCart", mock.Anything, testDevice).Return(sampleCart()).Once()

		rr := httptest.NewRecorder()
		handler.GetCart().ServeHTTP(rr, testutils.CreateTestRequestWithContext(http.MethodGet, "/api/v1/cart", nil, testDevice, nil, nil))

		assert.Equal(t, http.StatusOK, rr.Code)

		var cart models.Cart
		require.NoError(t, json.Unmarshal(decodeEnvelope(t, rr).Data, &cart))
		assert.Equal(t, 2, cart.TotalItemCount)
		assert.True(t, decimal.NewFromInt(90000).Equal(cart.TotalPrice))
	})

	t.Run("AddItem - Success", func(t *testing.T) {
		mockCartService := mocks.NewMockCartService(t)
		handler := handlers.NewCartHandler(mockCartService, utils.NewValidator())
		mockCartService.On("AddItem", mock.Anything, testDevice, int64(3)).Return(sampleCart(), nil).Once()

		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/api/v1/cart/items",
			strings.NewReader(`{"product_id": 3}`), testDevice, nil, nil)

		handler.AddItem().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		mockCartService.AssertExpectations(t)
	})

	t.Run("AddItem - Unavailable Product", func(t *testing.T) {
		mockCartService := mocks.NewMockCartService(t)
		handler := handlers.NewCartHandler(mockCartService, utils.NewValidator())
		mockCartService.On("AddItem", mock.Anything, testDevice, int64(3)).
			Return(models.Cart{}, appErrors.BadRequestError("Product is not available")).Once()

		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/api/v1/cart/items",
			strings.NewReader(`{"product_id": 3}`), testDevice, nil, nil)

		handler.AddItem().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, appErrors.ErrCodeBadRequest, decodeEnvelope(t, rr).Error.Code)
	})

	t.Run("AddItem - Missing Product ID", func(t *testing.T) {
		mockCartService := mocks.NewMockCartService(t)
		handler := handlers.NewCartHandler(mockCartService, utils.NewValidator())

		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/api/v1/cart/items",
			strings.NewReader(`{}`), testDevice, nil, nil)

		handler.AddItem().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, appErrors.ErrCodeValidation, decodeEnvelope(t, rr).Error.Code)
		mockCartService.AssertNotCalled(t, "AddItem", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("UpdateItem", func(t *testing.T) {
		mockCartService := mocks.NewMockCartService(t)
		handler := handlers.NewCartHandler(mockCartService, utils.NewValidator())
		mockCartService.On("UpdateQuantity", mock.Anything, testDevice, int64(3), 0).Return(models.Cart{}).Once()

		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequestWithContext(http.MethodPut, "/api/v1/cart/items/3",
			strings.NewReader(`{"quantity": 0}`), testDevice, nil, map[string]string{"productId": "3"})

		handler.UpdateItem().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		mockCartService.AssertExpectations(t)
	})

	t.Run("RemoveItem - Bad Path", func(t *testing.T) {
		mockCartService := mocks.NewMockCartService(t)
		handler := handlers.NewCartHandler(mockCartService, utils.NewValidator())

		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequestWithContext(http.MethodDelete, "/api/v1/cart/items/x",
			nil, testDevice, nil, map[string]string{"productId": "x"})

		handler.RemoveItem().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mockCartService.AssertNotCalled(t, "RemoveItem", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("ClearCart", func(t *testing.T) {
		mockCartService := mocks.NewMockCartService(t)
		handler := handlers.NewCartHandler(mockCartService, utils.NewValidator())
		mockCartService.On("ClearCart", mock.Anything, testDevice).Return(models.Cart{}).Once()

		rr := httptest.NewRecorder()
		handler.ClearCart().ServeHTTP(rr, testutils.CreateTestRequestWithContext(http.MethodDelete, "/api/v1/cart", nil, testDevice, nil, nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		mockCartService.AssertExpectations(t)
	})

	t.Run("Without Device", func(t *testing.T) {
		mockCartService := mocks.NewMockCartService(t)
		handler := handlers.NewCartHandler(mockCartService, utils.NewValidator())

		rr := httptest.NewRecorder()
		handler.GetCart().ServeHTTP(rr, testutils.CreateTestRequestWithoutContext(http.MethodGet, "/api/v1/cart", nil, nil))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}
