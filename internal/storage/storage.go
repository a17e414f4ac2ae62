package storage

import (
	"context"
)

// Storage is the durable key-value store backing cart snapshots and device
// sessions. Values are opaque bytes.
type Storage interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

func Key(prefix string, id string) string {
	return prefix + ":" + id
}

const (
	CartKeyPrefix    = "cart"
	SessionKeyPrefix = "session"
)
