package checkout

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aaravmahajanofficial/storefront-checkout/internal/config"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/errors"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/metrics"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/models"
	"golang.org/x/sync/errgroup"
)

const defaultSubmitTimeout = 30 * time.Second

// OrderRepository records an order and its children in the record store.
type OrderRepository interface {
	CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error)
	CreateOrderItem(ctx context.Context, orderID int64, item *models.OrderItem) (*models.OrderItem, error)
	CreateStatusHistory(ctx context.Context, orderID int64, entry *models.OrderStatusHistory) (*models.OrderStatusHistory, error)
}

// Cart is the part of a cart store the engine needs.
type Cart interface {
	Items() []models.CartLineItem
	ClearCart()
}

type AttemptState int

const (
	StateIdle AttemptState = iota
	StateValidating
	StateSubmitting
	StateSucceeded
	StateFailed
)

func (s AttemptState) String() string {
	switch s {
	case StateValidating:
		return "validating"
	case StateSubmitting:
		return "submitting"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	default:
		return "idle"
	}
}

func (s AttemptState) inFlight() bool {
	return s == StateValidating || s == StateSubmitting
}

type Engine struct {
	orders OrderRepository
	cfg    config.Checkout
	now    func() time.Time
	logger *slog.Logger

	mu       sync.Mutex
	attempts map[string]AttemptState
}

func NewEngine(orders OrderRepository, cfg config.Checkout, logger *slog.Logger) *Engine {
	return &Engine{
		orders:   orders,
		cfg:      cfg,
		now:      time.Now,
		logger:   logger,
		attempts: make(map[string]AttemptState),
	}
}

// WithClock replaces the time source used for order numbers and history.
func (e *Engine) WithClock(now func() time.Time) *Engine {
	e.now = now
	return e
}

// State returns the state of the latest attempt for cartID.
func (e *Engine) State(cartID string) AttemptState {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.attempts[cartID]
}

func (e *Engine) begin(cartID string, state AttemptState) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.attempts[cartID].inFlight() {
		metrics.CheckoutRejected.Inc()
		return errors.CheckoutInProgressError()
	}

	e.attempts[cartID] = state
	return nil
}

func (e *Engine) transition(cartID string, state AttemptState) {
	e.mu.Lock()
	e.attempts[cartID] = state
	e.mu.Unlock()
}

func (e *Engine) finish(cartID string, err error) {

	if err == nil {
		e.transition(cartID, StateSucceeded)
		return
	}

	e.transition(cartID, StateFailed)

	code := errors.ErrCodeInternal
	if appErr, ok := errors.IsAppError(err); ok {
		code = appErr.Code
	}
	metrics.OrdersFailed.WithLabelValues(code).Inc()
}

// Checkout validates the selection, builds the order and submits it. Only one
// attempt per cart may be in flight; a concurrent call fails with
// CHECKOUT_IN_PROGRESS without touching the record store.
func (e *Engine) Checkout(ctx context.Context, cartID string, cart Cart, sel Selection) (order *models.Order, err error) {

	if err := e.begin(cartID, StateValidating); err != nil {
		return nil, err
	}
	defer func() { e.finish(cartID, err) }()

	items := cart.Items()
	if err := ValidateCheckout(items, sel.Address, sel.User); err != nil {
		return nil, err
	}

	payload := BuildOrderPayload(items, sel, e.cfg.ShippingFeeAmount(), e.cfg.OrderNumberPrefix, e.now())

	e.transition(cartID, StateSubmitting)

	return e.submit(ctx, cart, &payload)
}

// SubmitOrder records a prebuilt payload under the same per-cart guard as
// Checkout.
func (e *Engine) SubmitOrder(ctx context.Context, cartID string, cart Cart, payload *models.Order) (order *models.Order, err error) {

	if err := e.begin(cartID, StateSubmitting); err != nil {
		return nil, err
	}
	defer func() { e.finish(cartID, err) }()

	return e.submit(ctx, cart, payload)
}

func (e *Engine) submitTimeout() time.Duration {
	if e.cfg.SubmitTimeout > 0 {
		return e.cfg.SubmitTimeout
	}
	return defaultSubmitTimeout
}

func (e *Engine) submit(ctx context.Context, cart Cart, payload *models.Order) (*models.Order, error) {

	createCtx, cancelCreate := context.WithTimeout(ctx, e.submitTimeout())
	defer cancelCreate()

	created, err := e.orders.CreateOrder(createCtx, payload)
	if err != nil {
		e.logger.Error("Failed to create order",
			slog.String("order_number", payload.OrderNumber),
			slog.Any("error", err))
		return nil, errors.OrderFailedError().WithError(err)
	}

	items := make([]models.OrderItem, len(payload.Items))
	history := make([]models.OrderStatusHistory, len(payload.StatusHistory))

	// once the order row exists its children are written even if the caller goes away
	childCtx, cancelChildren := context.WithTimeout(context.WithoutCancel(ctx), e.submitTimeout())
	defer cancelChildren()

	g, gctx := errgroup.WithContext(childCtx)

	for i := range payload.Items {
		g.Go(func() error {
			item, err := e.orders.CreateOrderItem(gctx, created.ID, &payload.Items[i])
			if err != nil {
				return fmt.Errorf("failed to create item for product %d: %w", payload.Items[i].ProductID, err)
			}
			items[i] = *item
			return nil
		})
	}

	for i := range payload.StatusHistory {
		g.Go(func() error {
			entry, err := e.orders.CreateStatusHistory(gctx, created.ID, &payload.StatusHistory[i])
			if err != nil {
				return fmt.Errorf("failed to create status history: %w", err)
			}
			history[i] = *entry
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		// no rollback: the order row stays behind and must be reconciled by hand
		metrics.OrphanedOrders.Inc()
		e.logger.Error("Orphaned order",
			slog.Int64("order_id", created.ID),
			slog.String("order_number", created.OrderNumber),
			slog.Any("error", err))
		return nil, errors.OrderFailedError().
			WithError(err).
			WithDetail(fmt.Sprintf("order_id=%d", created.ID))
	}

	cart.ClearCart()
	metrics.OrdersSubmitted.Inc()

	created.Items = items
	created.StatusHistory = history

	e.logger.Info("Order submitted",
		slog.Int64("order_id", created.ID),
		slog.String("order_number", created.OrderNumber),
		slog.String("total", created.TotalPrice.String()))

	return created, nil
}
