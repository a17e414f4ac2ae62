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

type CheckoutHandler struct {
	checkoutService service.CheckoutService
	validator       *validator.Validate
}

func NewCheckoutHandler(checkoutService service.CheckoutService, validate *validator.Validate) *CheckoutHandler {
	return &CheckoutHandler{checkoutService: checkoutService, validator: validate}
}

// Quote godoc
//
//	@Summary		Preview the checkout
//	@Description	Returns the cart, the customer's addresses and vouchers, the current selection and the totals.
//	@Tags			Checkout
//	@Produce		json
//	@Param			X-Device-ID			header		string	true	"Device id"
//	@Param			address_id			query		int		false	"Selected address"
//	@Param			discount_voucher_id	query		int		false	"Selected discount voucher"
//	@Param			shipping_voucher_id	query		int		false	"Selected shipping voucher"
//	@Success		200					{object}	service.Quote
//	@Failure		400					{object}	response.ErrorResponse	"Invalid query parameter"
//	@Router			/checkout/quote [get]
func (h *CheckoutHandler) Quote() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		deviceID, ok := requireDevice(w, r)
		if !ok {
			return
		}

		var req service.QuoteRequest
		var err error

		if req.AddressID, err = queryID(r, "address_id"); err != nil {
			logger.Warn("Invalid quote query", slog.Any("error", err))
			response.Error(w, err)
			return
		}
		if req.DiscountVoucherID, err = queryID(r, "discount_voucher_id"); err != nil {
			logger.Warn("Invalid quote query", slog.Any("error", err))
			response.Error(w, err)
			return
		}
		if req.ShippingVoucherID, err = queryID(r, "shipping_voucher_id"); err != nil {
			logger.Warn("Invalid quote query", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, h.checkoutService.Quote(r.Context(), deviceID, req))
	}
}

// PlaceOrder godoc
//
//	@Summary		Place an order from the cart
//	@Tags			Checkout
//	@Accept			json
//	@Produce		json
//	@Param			X-Device-ID	header		string					true	"Device id"
//	@Param			checkout	body		models.CheckoutRequest	true	"Checkout selection"
//	@Success		201			{object}	models.Order
//	@Failure		422			{object}	response.ErrorResponse	"Empty cart or missing address"
//	@Failure		401			{object}	response.ErrorResponse	"Not signed in"
//	@Failure		409			{object}	response.ErrorResponse	"Checkout already in progress"
//	@Failure		502			{object}	response.ErrorResponse	"Order could not be stored"
//	@Router			/checkout [post]
func (h *CheckoutHandler) PlaceOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		deviceID, ok := requireDevice(w, r)
		if !ok {
			return
		}

		var req models.CheckoutRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid checkout input")
			return
		}

		order, err := h.checkoutService.PlaceOrder(r.Context(), deviceID, &req)
		if err != nil {
			logger.Warn("Checkout failed", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Order placed successfully", slog.Int64("orderID", order.ID), slog.String("orderNumber", order.OrderNumber))
		response.Success(w, http.StatusCreated, order)
	}
}
