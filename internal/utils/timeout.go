package utils

import (
	"context"
	"time"
)

const DefaultFetchTimeout = 5 * time.Second

// WithFetchTimeout bounds reads that feed a screen, such as addresses and
// vouchers on checkout.
func WithFetchTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, DefaultFetchTimeout)
}
