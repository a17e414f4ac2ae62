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

const staffActor = "staff"

type OrderHandler struct {
	orderService service.OrderService
	validator    *validator.Validate
}

func NewOrderHandler(orderService service.OrderService, validate *validator.Validate) *OrderHandler {
	return &OrderHandler{orderService: orderService, validator: validate}
}

// ListOrders godoc
//
//	@Summary	List the signed-in customer's orders
//	@Tags		Orders
//	@Produce	json
//	@Param		X-Device-ID	header		string	true	"Device id"
//	@Success	200			{array}		models.Order
//	@Failure	401			{object}	response.ErrorResponse	"Not signed in"
//	@Router		/orders [get]
func (h *OrderHandler) ListOrders() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		user, logger, ok := requireUser(w, r)
		if !ok {
			return
		}

		orders, err := h.orderService.ListOrders(r.Context(), user.ID)
		if err != nil {
			logger.Error("Failed to list orders", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, orders)
	}
}

// GetOrder godoc
//
//	@Summary	Get an order with its items and status history
//	@Tags		Orders
//	@Produce	json
//	@Param		X-Device-ID	header		string	true	"Device id"
//	@Param		id			path		int		true	"Order ID"
//	@Success	200			{object}	models.Order
//	@Failure	400			{object}	response.ErrorResponse	"Invalid order ID"
//	@Failure	401			{object}	response.ErrorResponse	"Not signed in"
//	@Failure	404			{object}	response.ErrorResponse	"Order not found"
//	@Router		/orders/{id} [get]
func (h *OrderHandler) GetOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		user, logger, ok := requireUser(w, r)
		if !ok {
			return
		}

		id, err := utils.PathID(r, "id")
		if err != nil {
			logger.Warn("Invalid order ID format", slog.String("id", r.PathValue("id")))
			response.Error(w, err)
			return
		}

		order, err := h.orderService.GetOrder(r.Context(), user.ID, id)
		if err != nil {
			logger.Error("Failed to get order", slog.Int64("orderID", id), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, order)
	}
}

func (h *OrderHandler) CancelOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		user, logger, ok := requireUser(w, r)
		if !ok {
			return
		}

		id, err := utils.PathID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		order, err := h.orderService.CancelOrder(r.Context(), user.ID, id)
		if err != nil {
			logger.Warn("Failed to cancel order", slog.Int64("orderID", id), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Order cancelled by customer", slog.Int64("orderID", id))
		response.Success(w, http.StatusOK, order)
	}
}

// UpdateStatus godoc
//
//	@Summary	Move an order to a new status
//	@Tags		Orders
//	@Accept		json
//	@Produce	json
//	@Param		id		path		int								true	"Order ID"
//	@Param		status	body		models.UpdateOrderStatusRequest	true	"New status"
//	@Success	200		{object}	models.Order
//	@Failure	403		{object}	response.ErrorResponse	"Staff access required"
//	@Failure	404		{object}	response.ErrorResponse	"Order not found"
//	@Failure	409		{object}	response.ErrorResponse	"Order is already final"
//	@Security	BearerAuth
//	@Router		/orders/{id}/status [patch]
func (h *OrderHandler) UpdateStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.PathID(r, "id")
		if err != nil {
			logger.Warn("Invalid order ID format", slog.String("id", r.PathValue("id")))
			response.Error(w, err)
			return
		}

		var req models.UpdateOrderStatusRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid order status input")
			return
		}

		order, err := h.orderService.UpdateStatus(r.Context(), id, &req, staffActor)
		if err != nil {
			logger.Error("Failed to update order status", slog.Int64("orderID", id), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Order status updated", slog.Int64("orderID", id), slog.String("status", string(order.Status)))
		response.Success(w, http.StatusOK, order)
	}
}
