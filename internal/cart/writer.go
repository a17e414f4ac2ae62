package cart

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/aaravmahajanofficial/storefront-checkout/internal/metrics"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/storage"
)

const defaultWriteTimeout = 5 * time.Second

type flushWaiter struct {
	version uint64
	ch      chan error
}

// snapshotWriter persists cart snapshots one at a time. Only the newest
// queued snapshot is written; older queued ones are dropped. A goroutine
// runs only while something is queued.
type snapshotWriter struct {
	kv      storage.Storage
	key     string
	timeout time.Duration
	logger  *slog.Logger

	mu      sync.Mutex
	pending []byte
	queued  uint64
	written uint64
	lastErr error
	waiters []flushWaiter
	running bool
	done    chan struct{}
}

func newSnapshotWriter(kv storage.Storage, key string, timeout time.Duration, logger *slog.Logger) *snapshotWriter {
	if timeout <= 0 {
		timeout = defaultWriteTimeout
	}

	return &snapshotWriter{
		kv:      kv,
		key:     key,
		timeout: timeout,
		logger:  logger,
	}
}

func (w *snapshotWriter) enqueue(data []byte) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.pending = data
	w.queued++

	if !w.running {
		w.running = true
		w.done = make(chan struct{})
		go w.run(w.done)
	}
}

// run writes until the queue is drained and then exits.
func (w *snapshotWriter) run(done chan struct{}) {
	defer close(done)

	for {
		w.mu.Lock()
		if w.written == w.queued {
			w.running = false
			w.mu.Unlock()
			return
		}
		data, version := w.pending, w.queued
		w.mu.Unlock()

		err := w.write(data)

		w.mu.Lock()
		w.written = version
		w.lastErr = err
		remaining := w.waiters[:0]
		for _, waiter := range w.waiters {
			if waiter.version <= version {
				waiter.ch <- err
				continue
			}
			remaining = append(remaining, waiter)
		}
		w.waiters = remaining
		w.mu.Unlock()
	}
}

func (w *snapshotWriter) write(data []byte) error {
	ctx, cancel := context.WithTimeout(context.Background(), w.timeout)
	defer cancel()

	if err := w.kv.Set(ctx, w.key, data); err != nil {
		metrics.CartPersistFailures.Inc()
		w.logger.Error("Failed to persist cart snapshot", slog.String("key", w.key), slog.Any("error", err))
		return err
	}

	return nil
}

// idle reports whether every queued snapshot has been written and no
// goroutine is running.
func (w *snapshotWriter) idle() bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	return !w.running && w.written == w.queued
}

// flush blocks until the snapshot queued at call time has been written and
// returns the result of that write.
func (w *snapshotWriter) flush(ctx context.Context) error {
	w.mu.Lock()
	if w.written == w.queued {
		err := w.lastErr
		w.mu.Unlock()
		return err
	}
	ch := make(chan error, 1)
	w.waiters = append(w.waiters, flushWaiter{version: w.queued, ch: ch})
	w.mu.Unlock()

	select {
	case err := <-ch:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// close waits for the running goroutine, if any, to drain and exit.
func (w *snapshotWriter) close(ctx context.Context) error {
	w.mu.Lock()
	if !w.running {
		err := w.lastErr
		w.mu.Unlock()
		return err
	}
	done := w.done
	w.mu.Unlock()

	select {
	case <-done:
		w.mu.Lock()
		defer w.mu.Unlock()
		return w.lastErr
	case <-ctx.Done():
		return ctx.Err()
	}
}
