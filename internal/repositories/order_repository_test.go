package repository_test

import (
	"testing"
	"time"

	"github.com/aaravmahajanofficial/storefront-checkout/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleOrder() *models.Order {
	voucherID := int64(10)
	return &models.Order{
		OrderNumber:       "ORD123456",
		UserID:            7,
		AddressID:         4,
		DeliveryAddress:   "12 Market St",
		Phone:             "0900",
		Subtotal:          decimal.NewFromInt(115000),
		ShippingFee:       decimal.NewFromInt(15000),
		DiscountAmount:    decimal.NewFromInt(20000),
		TotalPrice:        decimal.NewFromInt(110000),
		PaymentMethod:     models.PaymentMethodCash,
		Status:            models.OrderStatusPending,
		DiscountVoucherID: &voucherID,
		CreatedAt:         time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestOrderRepository_Create(t *testing.T) {
	ctx := t.Context()

	t.Run("CreateOrder sends links and decodes the row", func(t *testing.T) {
		// Arrange
		repos, store := setupRepos(t, map[string]string{
			"POST /api/database/rows/table/15/": `{"id":501,"order_number":"ORD123456","user":[{"id":7,"value":"Ann"}],
				"address":[{"id":4,"value":"Home"}],"total_price":"110000.00","payment_method":{"id":1,"value":"cash"},
				"status":{"id":1,"value":"pending"},"discount_voucher":[{"id":10,"value":"SAVE20"}],"shipping_voucher":[],
				"created_at":"2026-05-01T12:00:00Z"}`,
		})

		// Act
		order, err := repos.Orders.CreateOrder(ctx, sampleOrder())

		// Assert
		require.NoError(t, err)
		assert.Equal(t, int64(501), order.ID)
		assert.Equal(t, int64(7), order.UserID)
		assert.Equal(t, models.OrderStatusPending, order.Status)
		require.NotNil(t, order.DiscountVoucherID)
		assert.Equal(t, int64(10), *order.DiscountVoucherID)
		assert.Nil(t, order.ShippingVoucherID)

		body := store.recorded()[0].Body
		assert.Equal(t, []any{float64(7)}, body["user"])
		assert.Equal(t, []any{float64(10)}, body["discount_voucher"])
		assert.Equal(t, []any{}, body["shipping_voucher"])
		assert.Equal(t, "110000", body["total_price"])
	})

	t.Run("CreateOrder rejects a negative total before sending", func(t *testing.T) {
		repos, store := setupRepos(t, nil)
		order := sampleOrder()
		order.TotalPrice = decimal.NewFromInt(-1)

		_, err := repos.Orders.CreateOrder(ctx, order)

		require.Error(t, err)
		assert.Empty(t, store.recorded())
	})

	t.Run("CreateOrderItem and CreateStatusHistory link the order", func(t *testing.T) {
		repos, store := setupRepos(t, map[string]string{
			"POST /api/database/rows/table/16/": `{"id":1,"order":[{"id":501}],"product":[{"id":3}],"product_name":"Latte","unit_price":"35000","quantity":2}`,
			"POST /api/database/rows/table/17/": `{"id":9,"order":[{"id":501}],"status":"pending","note":"new order","actor":"customer","created_at":"2026-05-01T12:00:00Z"}`,
		})

		item, err := repos.Orders.CreateOrderItem(ctx, 501, &models.OrderItem{ProductID: 3, Name: "Latte", UnitPrice: decimal.NewFromInt(35000), Quantity: 2})
		require.NoError(t, err)
		assert.Equal(t, int64(501), item.OrderID)
		assert.Equal(t, int64(3), item.ProductID)

		entry, err := repos.Orders.CreateStatusHistory(ctx, 501, &models.OrderStatusHistory{
			Status: models.OrderStatusPending, Note: "new order", Actor: models.ActorCustomer, CreatedAt: time.Now(),
		})
		require.NoError(t, err)
		assert.Equal(t, int64(501), entry.OrderID)
		assert.Equal(t, "customer", entry.Actor)

		requests := store.recorded()
		require.Len(t, requests, 2)
		assert.Equal(t, []any{float64(501)}, requests[0].Body["order"])
		assert.Equal(t, []any{float64(501)}, requests[1].Body["order"])
	})

	t.Run("CreateOrderItem rejects zero quantity", func(t *testing.T) {
		repos, store := setupRepos(t, nil)

		_, err := repos.Orders.CreateOrderItem(ctx, 501, &models.OrderItem{ProductID: 3, Name: "Latte", Quantity: 0})

		require.Error(t, err)
		assert.Empty(t, store.recorded())
	})
}

func TestOrderRepository_Read(t *testing.T) {
	ctx := t.Context()

	repos, store := setupRepos(t, map[string]string{
		"GET /api/database/rows/table/15/": `{"count":2,"next":null,"results":[
			{"id":1,"order_number":"ORD000001","user":[{"id":7}],"status":"completed","created_at":"2026-01-01T00:00:00Z"},
			{"id":2,"order_number":"ORD000002","user":[{"id":7}],"status":"pending","created_at":"2026-02-01T00:00:00Z"}]}`,
		"GET /api/database/rows/table/15/2/":   `{"id":2,"order_number":"ORD000002","user":[{"id":7}],"status":"pending"}`,
		"PATCH /api/database/rows/table/15/2/": `{"id":2,"order_number":"ORD000002","user":[{"id":7}],"status":"cancelled"}`,
		"GET /api/database/rows/table/16/":     `{"count":1,"next":null,"results":[{"id":1,"order":[{"id":2}],"product":[{"id":3}],"quantity":1}]}`,
		"GET /api/database/rows/table/17/": `{"count":2,"next":null,"results":[
			{"id":12,"order":[{"id":2}],"status":"confirmed","created_at":"2026-02-01T00:05:00Z"},
			{"id":11,"order":[{"id":2}],"status":"pending","created_at":"2026-02-01T00:00:00Z"}]}`,
	})

	t.Run("ListOrdersByUser newest first", func(t *testing.T) {
		orders, err := repos.Orders.ListOrdersByUser(ctx, 7)

		require.NoError(t, err)
		require.Len(t, orders, 2)
		assert.Equal(t, int64(2), orders[0].ID)
		assert.Equal(t, int64(1), orders[1].ID)
	})

	t.Run("GetOrderByID", func(t *testing.T) {
		order, err := repos.Orders.GetOrderByID(ctx, 2)

		require.NoError(t, err)
		assert.Equal(t, "ORD000002", order.OrderNumber)
	})

	t.Run("UpdateOrderStatus patches only the status", func(t *testing.T) {
		order, err := repos.Orders.UpdateOrderStatus(ctx, 2, models.OrderStatusCancelled)

		require.NoError(t, err)
		assert.Equal(t, models.OrderStatusCancelled, order.Status)

		requests := store.recorded()
		last := requests[len(requests)-1]
		assert.Equal(t, map[string]any{"status": "cancelled"}, last.Body)
	})

	t.Run("ListItems and ListHistory filter by order", func(t *testing.T) {
		items, err := repos.Orders.ListItems(ctx, 2)
		require.NoError(t, err)
		assert.Len(t, items, 1)

		history, err := repos.Orders.ListHistory(ctx, 2)
		require.NoError(t, err)
		require.Len(t, history, 2)
		assert.Equal(t, models.OrderStatusPending, history[0].Status, "history is oldest first")
		assert.Equal(t, models.OrderStatusConfirmed, history[1].Status)
	})
}
