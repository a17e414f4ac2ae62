package cart

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/aaravmahajanofficial/storefront-checkout/internal/models"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/storage"
	"github.com/shopspring/decimal"
)

// Item is what a caller supplies when adding a product. The price is trusted
// as given and never re-derived from the catalog afterwards.
type Item struct {
	ProductID int64
	Name      string
	UnitPrice decimal.Decimal
	ImageRef  string
}

// Store holds the line items of one device cart. Every mutation hands the
// full snapshot to a serialized writer; reads never touch storage.
type Store struct {
	mu     sync.RWMutex
	items  []models.CartLineItem
	writer *snapshotWriter
	logger *slog.Logger
}

// NewStore adopts the snapshot persisted under key. A missing or unreadable
// snapshot starts an empty cart.
func NewStore(ctx context.Context, kv storage.Storage, key string, writeTimeout time.Duration, logger *slog.Logger) *Store {
	logger = logger.With(slog.String("cart_key", key))

	return &Store{
		items:  loadSnapshot(ctx, kv, key, logger),
		writer: newSnapshotWriter(kv, key, writeTimeout, logger),
		logger: logger,
	}
}

func loadSnapshot(ctx context.Context, kv storage.Storage, key string, logger *slog.Logger) []models.CartLineItem {
	data, found, err := kv.Get(ctx, key)
	if err != nil {
		logger.Warn("Failed to read cart snapshot, starting empty", slog.Any("error", err))
		return nil
	}

	if !found {
		return nil
	}

	var stored []models.CartLineItem
	if err := json.Unmarshal(data, &stored); err != nil {
		logger.Warn("Discarding unreadable cart snapshot", slog.Any("error", err))
		return nil
	}

	// re-establish one line per product in case the snapshot was hand edited
	items := make([]models.CartLineItem, 0, len(stored))
	for _, item := range stored {
		if item.Quantity <= 0 {
			continue
		}
		if idx := indexOf(items, item.ProductID); idx >= 0 {
			items[idx].Quantity += item.Quantity
			continue
		}
		items = append(items, item)
	}

	return items
}

func indexOf(items []models.CartLineItem, productID int64) int {
	for i := range items {
		if items[i].ProductID == productID {
			return i
		}
	}

	return -1
}

// persist must be called with s.mu held so snapshots reach the writer in
// mutation order.
func (s *Store) persist() {
	data, err := json.Marshal(s.items)
	if err != nil {
		s.logger.Error("Failed to encode cart snapshot", slog.Any("error", err))
		return
	}

	s.writer.enqueue(data)
}

func (s *Store) AddToCart(item Item) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if idx := indexOf(s.items, item.ProductID); idx >= 0 {
		s.items[idx].Quantity++
	} else {
		s.items = append(s.items, models.CartLineItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			UnitPrice: item.UnitPrice,
			ImageRef:  item.ImageRef,
			Quantity:  1,
		})
	}

	s.persist()
}

func (s *Store) RemoveFromCart(productID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.remove(productID)
	s.persist()
}

func (s *Store) remove(productID int64) {
	if idx := indexOf(s.items, productID); idx >= 0 {
		s.items = append(s.items[:idx], s.items[idx+1:]...)
	}
}

// UpdateQuantity sets the quantity of an existing line. A quantity of zero
// or less removes the line.
func (s *Store) UpdateQuantity(productID int64, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity <= 0 {
		s.remove(productID)
	} else if idx := indexOf(s.items, productID); idx >= 0 {
		s.items[idx].Quantity = quantity
	}

	s.persist()
}

func (s *Store) ClearCart() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil
	s.persist()
}

// Items returns a copy of the line items in insertion order.
func (s *Store) Items() []models.CartLineItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.CartLineItem, len(s.items))
	copy(out, s.items)

	return out
}

func (s *Store) TotalItemCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, item := range s.items {
		count += item.Quantity
	}

	return count
}

func (s *Store) TotalPrice() decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return totalPrice(s.items)
}

func totalPrice(items []models.CartLineItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.LineTotal())
	}

	return total
}

// Snapshot returns items and aggregates computed from the same state.
func (s *Store) Snapshot() models.Cart {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]models.CartLineItem, len(s.items))
	copy(items, s.items)

	count := 0
	for _, item := range items {
		count += item.Quantity
	}

	return models.Cart{
		Items:          items,
		TotalItemCount: count,
		TotalPrice:     totalPrice(items),
	}
}

// Flush waits for the latest snapshot to reach storage.
func (s *Store) Flush(ctx context.Context) error {
	return s.writer.flush(ctx)
}

// Close waits for pending writes and the writer goroutine to finish.
func (s *Store) Close(ctx context.Context) error {
	return s.writer.close(ctx)
}

// Idle reports whether the store has nothing left to persist.
func (s *Store) Idle() bool {
	return s.writer.idle()
}
