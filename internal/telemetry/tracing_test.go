package telemetry_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/aaravmahajanofficial/storefront-checkout/internal/config"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
)

func TestSetup(t *testing.T) {

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("Without exporter", func(t *testing.T) {
		shutdown, err := telemetry.Setup(context.Background(), config.Telemetry{ServiceName: "storefront-test"}, "test", logger)
		require.NoError(t, err)

		_, span := otel.Tracer("test").Start(context.Background(), "op")
		assert.True(t, span.SpanContext().IsValid())
		span.End()

		assert.NoError(t, shutdown(context.Background()))
	})

	t.Run("With exporter endpoint", func(t *testing.T) {
		cfg := config.Telemetry{ServiceName: "storefront-test", OTLPEndpoint: "http://127.0.0.1:4318"}

		shutdown, err := telemetry.Setup(context.Background(), cfg, "test", logger)
		require.NoError(t, err)
		require.NotNil(t, shutdown)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_ = shutdown(ctx)
	})
}
