package cart

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/aaravmahajanofficial/storefront-checkout/internal/config"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/metrics"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/storage"
)

const defaultIdleTTL = 30 * time.Minute

type entry struct {
	once     sync.Once
	store    atomic.Pointer[Store]
	lastUsed time.Time
}

// Manager owns one Store per active device. A store that has been written
// through and not asked for within the idle TTL is dropped; the next Get
// reloads it from storage.
type Manager struct {
	kv     storage.Storage
	cfg    config.Cart
	logger *slog.Logger
	now    func() time.Time

	mu        sync.Mutex
	stores    map[string]*entry
	lastSweep time.Time
}

func NewManager(kv storage.Storage, cfg config.Cart, logger *slog.Logger) *Manager {
	if cfg.KeyPrefix == "" {
		cfg.KeyPrefix = storage.CartKeyPrefix
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = defaultWriteTimeout
	}
	if cfg.IdleTTL <= 0 {
		cfg.IdleTTL = defaultIdleTTL
	}

	return &Manager{
		kv:     kv,
		cfg:    cfg,
		logger: logger,
		now:    time.Now,
		stores: make(map[string]*entry),
	}
}

// WithClock replaces the clock used for idle tracking.
func (m *Manager) WithClock(now func() time.Time) *Manager {
	m.now = now
	return m
}

// Get returns the cart of deviceID, loading it from storage on first use.
func (m *Manager) Get(ctx context.Context, deviceID string) *Store {
	m.mu.Lock()
	now := m.now()
	if now.Sub(m.lastSweep) >= m.cfg.IdleTTL {
		m.evictIdle(now)
		m.lastSweep = now
	}
	e, ok := m.stores[deviceID]
	if !ok {
		e = &entry{}
		m.stores[deviceID] = e
		metrics.CartsResident.Inc()
	}
	e.lastUsed = now
	m.mu.Unlock()

	e.once.Do(func() {
		// a cancelled request must not turn into an empty cart
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), m.cfg.WriteTimeout)
		defer cancel()

		e.store.Store(NewStore(loadCtx, m.kv, storage.Key(m.cfg.KeyPrefix, deviceID), m.cfg.WriteTimeout, m.logger))
	})

	return e.store.Load()
}

// evictIdle must be called with m.mu held. Stores with unwritten snapshots
// are kept so nothing queued is lost.
func (m *Manager) evictIdle(now time.Time) {
	for deviceID, e := range m.stores {
		if now.Sub(e.lastUsed) < m.cfg.IdleTTL {
			continue
		}
		if s := e.store.Load(); s == nil || !s.Idle() {
			continue
		}
		delete(m.stores, deviceID)
		metrics.CartsResident.Dec()
	}
}

// Close flushes every cart and waits for the writers to finish.
func (m *Manager) Close(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var errs []error
	for deviceID, e := range m.stores {
		s := e.store.Load()
		if s == nil {
			continue
		}
		if err := s.Close(ctx); err != nil {
			errs = append(errs, err)
			m.logger.Error("Failed to flush cart on shutdown", slog.String("device_id", deviceID), slog.Any("error", err))
		}
	}

	return errors.Join(errs...)
}
