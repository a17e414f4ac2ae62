package repository

import (
	"context"
	"fmt"
	"slices"

	"github.com/aaravmahajanofficial/storefront-checkout/internal/config"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/models"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/tablestore"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/utils"
	"github.com/go-playground/validator/v10"
)

type OrderRepository interface {
	CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error)
	CreateOrderItem(ctx context.Context, orderID int64, item *models.OrderItem) (*models.OrderItem, error)
	CreateStatusHistory(ctx context.Context, orderID int64, entry *models.OrderStatusHistory) (*models.OrderStatusHistory, error)
	UpdateOrderStatus(ctx context.Context, id int64, status models.OrderStatus) (*models.Order, error)
	GetOrderByID(ctx context.Context, id int64) (*models.Order, error)
	ListOrdersByUser(ctx context.Context, userID int64) ([]models.Order, error)
	ListItems(ctx context.Context, orderID int64) ([]models.OrderItem, error)
	ListHistory(ctx context.Context, orderID int64) ([]models.OrderStatusHistory, error)
}

type orderRepository struct {
	client   *tablestore.Client
	tables   config.Tables
	validate *validator.Validate
}

func NewOrderRepository(client *tablestore.Client, tables config.Tables, validate *validator.Validate) OrderRepository {
	return &orderRepository{client: client, tables: tables, validate: validate}
}

// CreateOrder writes the order row only. Items and history are separate rows.
func (r *orderRepository) CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error) {

	req := newCreateOrderRequest(order)
	if err := utils.ValidateStruct(r.validate, req); err != nil {
		return nil, fmt.Errorf("invalid order row: %w", err)
	}

	row, err := tablestore.CreateRow[orderRow](ctx, r.client, r.tables.Orders, req)
	if err != nil {
		return nil, err
	}

	return row.toModel(), nil
}

func (r *orderRepository) CreateOrderItem(ctx context.Context, orderID int64, item *models.OrderItem) (*models.OrderItem, error) {

	req := createOrderItemRequest{
		Order:       tablestore.Link(orderID),
		Product:     tablestore.Link(item.ProductID),
		ProductName: item.Name,
		UnitPrice:   item.UnitPrice,
		ImageURL:    item.ImageRef,
		Quantity:    item.Quantity,
	}
	if err := utils.ValidateStruct(r.validate, req); err != nil {
		return nil, fmt.Errorf("invalid order item row: %w", err)
	}

	row, err := tablestore.CreateRow[orderItemRow](ctx, r.client, r.tables.OrderItems, req)
	if err != nil {
		return nil, err
	}

	return row.toModel(), nil
}

func (r *orderRepository) CreateStatusHistory(ctx context.Context, orderID int64, entry *models.OrderStatusHistory) (*models.OrderStatusHistory, error) {

	req := createStatusHistoryRequest{
		Order:     tablestore.Link(orderID),
		Status:    entry.Status,
		Note:      entry.Note,
		Actor:     entry.Actor,
		CreatedAt: entry.CreatedAt.UTC(),
	}
	if err := utils.ValidateStruct(r.validate, req); err != nil {
		return nil, fmt.Errorf("invalid status history row: %w", err)
	}

	row, err := tablestore.CreateRow[statusHistoryRow](ctx, r.client, r.tables.OrderStatusHistory, req)
	if err != nil {
		return nil, err
	}

	return row.toModel(), nil
}

func (r *orderRepository) UpdateOrderStatus(ctx context.Context, id int64, status models.OrderStatus) (*models.Order, error) {

	req := updateOrderStatusRequest{Status: status}
	if err := utils.ValidateStruct(r.validate, req); err != nil {
		return nil, fmt.Errorf("invalid order status: %w", err)
	}

	row, err := tablestore.UpdateRow[orderRow](ctx, r.client, r.tables.Orders, id, req)
	if err != nil {
		return nil, err
	}

	return row.toModel(), nil
}

func (r *orderRepository) GetOrderByID(ctx context.Context, id int64) (*models.Order, error) {

	row, err := tablestore.GetRow[orderRow](ctx, r.client, r.tables.Orders, id)
	if err != nil {
		return nil, err
	}

	return row.toModel(), nil
}

// ListOrdersByUser returns the user's orders, newest first.
func (r *orderRepository) ListOrdersByUser(ctx context.Context, userID int64) ([]models.Order, error) {

	rows, err := tablestore.ListRows[orderRow](ctx, r.client, r.tables.Orders, tablestore.LinkRowHas("user", userID))
	if err != nil {
		return nil, err
	}

	orders := make([]models.Order, 0, len(rows))
	for _, row := range rows {
		orders = append(orders, *row.toModel())
	}

	slices.SortStableFunc(orders, func(a, b models.Order) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})

	return orders, nil
}

func (r *orderRepository) ListItems(ctx context.Context, orderID int64) ([]models.OrderItem, error) {

	rows, err := tablestore.ListRows[orderItemRow](ctx, r.client, r.tables.OrderItems, tablestore.LinkRowHas("order", orderID))
	if err != nil {
		return nil, err
	}

	items := make([]models.OrderItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, *row.toModel())
	}

	return items, nil
}

// ListHistory returns the status history of an order, oldest first.
func (r *orderRepository) ListHistory(ctx context.Context, orderID int64) ([]models.OrderStatusHistory, error) {

	rows, err := tablestore.ListRows[statusHistoryRow](ctx, r.client, r.tables.OrderStatusHistory, tablestore.LinkRowHas("order", orderID))
	if err != nil {
		return nil, err
	}

	history := make([]models.OrderStatusHistory, 0, len(rows))
	for _, row := range rows {
		history = append(history, *row.toModel())
	}

	slices.SortStableFunc(history, func(a, b models.OrderStatusHistory) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})

	return history, nil
}
