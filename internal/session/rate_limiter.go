package session

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/aaravmahajanofficial/storefront-checkout/internal/config"
	"github.com/redis/go-redis/v9"
)

// LoginLimiter counts sign-in attempts per email in a sliding window kept as
// a redis sorted set scored by attempt time.
type LoginLimiter struct {
	client *redis.Client
	cfg    config.LoginRateLimit
	now    func() time.Time
}

func NewLoginLimiter(client *redis.Client, cfg config.LoginRateLimit) *LoginLimiter {
	return &LoginLimiter{client: client, cfg: cfg, now: time.Now}
}

func limiterKey(email string) string {
	return "login_attempts:" + email
}

// Allow records an attempt and reports whether it is within the limit. When
// it is not, retryAfter is the time until the oldest attempt leaves the window.
func (l *LoginLimiter) Allow(ctx context.Context, email string) (allowed bool, remaining int64, retryAfter time.Duration, err error) {

	key := limiterKey(email)
	now := l.now()
	windowStart := now.Add(-l.cfg.WindowSize).UnixMilli()

	pipe := l.client.Pipeline()
	pipe.ZRemRangeByScore(ctx, key, "0", strconv.FormatInt(windowStart, 10))
	pipe.ZAdd(ctx, key, redis.Z{Score: float64(now.UnixMilli()), Member: strconv.FormatInt(now.UnixNano(), 10)})
	count := pipe.ZCard(ctx, key)
	pipe.Expire(ctx, key, l.cfg.WindowSize)

	if _, err := pipe.Exec(ctx); err != nil {
		return false, 0, 0, fmt.Errorf("failed to record login attempt: %w", err)
	}

	attempts := count.Val()
	if attempts <= l.cfg.MaxAttempts {
		return true, l.cfg.MaxAttempts - attempts, 0, nil
	}

	oldest, err := l.client.ZRangeWithScores(ctx, key, 0, 0).Result()
	if err != nil {
		return false, 0, 0, fmt.Errorf("failed to read oldest login attempt: %w", err)
	}

	retryAfter = l.cfg.WindowSize
	if len(oldest) > 0 {
		oldestAt := time.UnixMilli(int64(oldest[0].Score))
		retryAfter = oldestAt.Add(l.cfg.WindowSize).Sub(now)
	}

	return false, 0, retryAfter, nil
}

// Reset forgets the attempts of email after a successful sign-in.
func (l *LoginLimiter) Reset(ctx context.Context, email string) error {
	return l.client.Del(ctx, limiterKey(email)).Err()
}
