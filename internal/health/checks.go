package health

import (
	"context"
	"fmt"
	"time"

	"github.com/aaravmahajanofficial/storefront-checkout/internal/config"
	"github.com/hellofresh/health-go/v5"
	healthRedis "github.com/hellofresh/health-go/v5/checks/redis"
)

// TablePinger reports whether one table of the record store answers.
type TablePinger interface {
	Ping(ctx context.Context, tableID int64) error
}

type Endpoints struct {
	TableStore TablePinger
}

func NewHealthHandler(cfg *config.Config, endpoints *Endpoints) (*health.Health, error) {

	h, err := health.New(
		health.WithComponent(health.Component{
			Name:    cfg.Telemetry.ServiceName,
			Version: "1.0.0",
		}),
		health.WithSystemInfo(),
		health.WithChecks(
			health.Config{
				Name:      "redis",
				Timeout:   2 * time.Second,
				SkipOnErr: false,
				Check: healthRedis.New(
					healthRedis.Config{
						DSN: cfg.RedisConnect.GetDSN(),
					},
				),
			},
			health.Config{
				Name:      "table-store",
				Timeout:   5 * time.Second,
				SkipOnErr: false,
				Check:     tableStoreCheck(endpoints, cfg.TableStore.Tables.Users),
			},
		),
	)

	if err != nil {
		return nil, fmt.Errorf("failed to create health instance: %w", err)
	}

	return h, nil
}

func tableStoreCheck(endpoints *Endpoints, tableID int64) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		if endpoints == nil || endpoints.TableStore == nil {
			return fmt.Errorf("table store client is not initialized")
		}
		if err := endpoints.TableStore.Ping(ctx, tableID); err != nil {
			return fmt.Errorf("failed to reach table store: %w", err)
		}
		return nil
	}
}
