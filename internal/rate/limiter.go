package rate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Config holds verification throttle tuning parameters.
type Config struct {
	MaxVerifyAttempts int
	VerifyCooldown    time.Duration
}

// Limiter enforces a per-user attempt budget for OTP verification using
// Redis counters with fixed-window TTL semantics. A MaxVerifyAttempts of
// zero or less disables the throttle entirely.
type Limiter struct {
	redis  redis.UniversalClient
	config Config
}

// New creates a verification [Limiter] backed by the given Redis client.
func New(redisClient redis.UniversalClient, cfg Config) *Limiter {
	return &Limiter{
		redis:  redisClient,
		config: cfg,
	}
}

// Enabled reports whether the throttle is active.
func (l *Limiter) Enabled() bool {
	return l != nil && l.config.MaxVerifyAttempts > 0
}

// CheckVerify checks whether the user is within the verification attempt
// budget. Returns [ErrThrottled] if the budget is exhausted.
func (l *Limiter) CheckVerify(ctx context.Context, tenantID, userID string) error {
	if !l.Enabled() {
		return nil
	}

	count, err := l.redis.Get(ctx, verifyKey(tenantID, userID)).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil
		}
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	if count > int64(l.config.MaxVerifyAttempts) {
		return ErrThrottled
	}

	return nil
}

// IncrementVerify records a failed verification attempt for the user.
func (l *Limiter) IncrementVerify(ctx context.Context, tenantID, userID string) error {
	if !l.Enabled() {
		return nil
	}

	key := verifyKey(tenantID, userID)
	count, err := l.redis.Incr(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}

	// Fixed-window semantics: set TTL only for the first hit in the window.
	if count == 1 {
		if err := l.redis.Expire(ctx, key, l.config.VerifyCooldown).Err(); err != nil {
			return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
		}
	}

	if count > int64(l.config.MaxVerifyAttempts) {
		return ErrThrottled
	}
	return nil
}

// ResetVerify clears the attempt counter after a successful verification.
func (l *Limiter) ResetVerify(ctx context.Context, tenantID, userID string) error {
	if !l.Enabled() {
		return nil
	}

	if err := l.redis.Del(ctx, verifyKey(tenantID, userID)).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return nil
}

func verifyKey(tenantID, userID string) string {
	return "tvl:" + tenantID + ":" + userID
}
