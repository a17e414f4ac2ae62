package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aaravmahajanofficial/storefront-checkout/internal/errors"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/models"
	repository "github.com/aaravmahajanofficial/storefront-checkout/internal/repositories"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/tablestore"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/utils"
	"golang.org/x/sync/errgroup"
)

const customerCancelNote = "cancelled by customer"

type OrderService interface {
	ListOrders(ctx context.Context, userID int64) ([]models.Order, error)
	GetOrder(ctx context.Context, userID, id int64) (*models.Order, error)
	UpdateStatus(ctx context.Context, id int64, req *models.UpdateOrderStatusRequest, actor string) (*models.Order, error)
	CancelOrder(ctx context.Context, userID, id int64) (*models.Order, error)
}

type orderService struct {
	repo   repository.OrderRepository
	now    func() time.Time
	logger *slog.Logger
}

func NewOrderService(repo repository.OrderRepository, logger *slog.Logger) OrderService {
	return &orderService{
		repo:   repo,
		now:    time.Now,
		logger: logger,
	}
}

// ListOrders returns the user's orders, newest first, without children.
func (s *orderService) ListOrders(ctx context.Context, userID int64) ([]models.Order, error) {

	orders, err := s.repo.ListOrdersByUser(ctx, userID)
	if err != nil {
		return nil, errors.ThirdPartyError("Failed to fetch orders").WithError(err)
	}

	return orders, nil
}

// GetOrder returns an order of userID with its items and status history.
// Orders of other users are reported as not found.
func (s *orderService) GetOrder(ctx context.Context, userID, id int64) (*models.Order, error) {

	order, err := s.fetchOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	if order.UserID != userID {
		return nil, errors.NotFoundError("Order not found")
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		items, err := s.repo.ListItems(gctx, id)
		if err != nil {
			return fmt.Errorf("failed to list order items: %w", err)
		}
		order.Items = items
		return nil
	})

	g.Go(func() error {
		history, err := s.repo.ListHistory(gctx, id)
		if err != nil {
			return fmt.Errorf("failed to list order history: %w", err)
		}
		order.StatusHistory = history
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, errors.ThirdPartyError("Failed to fetch order details").WithError(err)
	}

	return order, nil
}

// UpdateStatus moves an order to a new status and appends a history entry
// naming actor. Completed and cancelled orders are final.
func (s *orderService) UpdateStatus(ctx context.Context, id int64, req *models.UpdateOrderStatusRequest, actor string) (*models.Order, error) {

	order, err := s.fetchOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	return s.transition(ctx, order, req.Status, req.Note, actor)
}

// CancelOrder cancels an order of userID while it is still pending.
func (s *orderService) CancelOrder(ctx context.Context, userID, id int64) (*models.Order, error) {

	order, err := s.fetchOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	if order.UserID != userID {
		return nil, errors.NotFoundError("Order not found")
	}

	if order.Status != models.OrderStatusPending {
		return nil, errors.ConflictError("Only pending orders can be cancelled").
			WithDetail(fmt.Sprintf("status=%s", order.Status))
	}

	return s.transition(ctx, order, models.OrderStatusCancelled, customerCancelNote, models.ActorCustomer)
}

func (s *orderService) fetchOrder(ctx context.Context, id int64) (*models.Order, error) {

	order, err := s.repo.GetOrderByID(ctx, id)
	if err != nil {
		if tablestore.IsNotFound(err) {
			return nil, errors.NotFoundError("Order not found").WithError(err)
		}
		return nil, errors.ThirdPartyError("Failed to fetch order").WithError(err)
	}

	return order, nil
}

func isFinal(status models.OrderStatus) bool {
	return status == models.OrderStatusCompleted || status == models.OrderStatusCancelled
}

func (s *orderService) transition(ctx context.Context, order *models.Order, status models.OrderStatus, note, actor string) (*models.Order, error) {

	if isFinal(order.Status) {
		return nil, errors.ConflictError("Order can no longer change status").
			WithDetail(fmt.Sprintf("status=%s", order.Status))
	}

	updated, err := s.repo.UpdateOrderStatus(ctx, order.ID, status)
	if err != nil {
		return nil, errors.ThirdPartyError("Failed to update order status").WithError(err)
	}

	entry := &models.OrderStatusHistory{
		Status:    status,
		Note:      utils.PlainText(note),
		Actor:     actor,
		CreatedAt: s.now(),
	}

	// the status change stands even when its history entry is lost
	if _, err := s.repo.CreateStatusHistory(ctx, order.ID, entry); err != nil {
		s.logger.Error("Failed to record status history",
			slog.Int64("order_id", order.ID),
			slog.String("status", string(status)),
			slog.Any("error", err))
	}

	s.logger.Info("Order status changed",
		slog.Int64("order_id", order.ID),
		slog.String("from", string(order.Status)),
		slog.String("to", string(status)),
		slog.String("actor", actor))

	return updated, nil
}
