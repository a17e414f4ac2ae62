package handlers

import (
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/storefront-checkout/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/models"
	service "github.com/aaravmahajanofficial/storefront-checkout/internal/services"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/utils"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type CartHandler struct {
	cartService service.CartService
	validator   *validator.Validate
}

func NewCartHandler(cartService service.CartService, validate *validator.Validate) *CartHandler {
	return &CartHandler{cartService: cartService, validator: validate}
}

func (h *CartHandler) GetCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		deviceID, ok := requireDevice(w, r)
		if !ok {
			return
		}

		response.Success(w, http.StatusOK, h.cartService.GetCart(r.Context(), deviceID))
	}
}

// AddItem godoc
//
//	@Summary		Add a product to the cart
//	@Description	Adds one unit of the product. A product already in the cart gets its quantity raised by one.
//	@Tags			Cart
//	@Accept			json
//	@Produce		json
//	@Param			X-Device-ID	header		string					true	"Device id"
//	@Param			item		body		models.AddItemRequest	true	"Product to add"
//	@Success		200			{object}	models.Cart
//	@Failure		400			{object}	response.ErrorResponse	"Validation error or unavailable product"
//	@Failure		404			{object}	response.ErrorResponse	"Product not found"
//	@Router			/cart/items [post]
func (h *CartHandler) AddItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		deviceID, ok := requireDevice(w, r)
		if !ok {
			return
		}

		var req models.AddItemRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid add item input")
			return
		}

		cart, err := h.cartService.AddItem(r.Context(), deviceID, req.ProductID)
		if err != nil {
			logger.Error("Failed to add item to cart", slog.Int64("productID", req.ProductID), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Item added to cart", slog.Int64("productID", req.ProductID))
		response.Success(w, http.StatusOK, cart)
	}
}

// UpdateItem sets the quantity of a line. Zero or less removes it.
func (h *CartHandler) UpdateItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		deviceID, ok := requireDevice(w, r)
		if !ok {
			return
		}

		productID, err := utils.PathID(r, "productId")
		if err != nil {
			logger.Warn("Invalid product ID format", slog.String("productId", r.PathValue("productId")))
			response.Error(w, err)
			return
		}

		var req models.UpdateQuantityRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid update quantity input")
			return
		}

		cart := h.cartService.UpdateQuantity(r.Context(), deviceID, productID, req.Quantity)
		response.Success(w, http.StatusOK, cart)
	}
}

func (h *CartHandler) RemoveItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		deviceID, ok := requireDevice(w, r)
		if !ok {
			return
		}

		productID, err := utils.PathID(r, "productId")
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, h.cartService.RemoveItem(r.Context(), deviceID, productID))
	}
}

func (h *CartHandler) ClearCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		deviceID, ok := requireDevice(w, r)
		if !ok {
			return
		}

		middleware.LoggerFromContext(r.Context()).Info("Cart cleared")
		response.Success(w, http.StatusOK, h.cartService.ClearCart(r.Context(), deviceID))
	}
}
