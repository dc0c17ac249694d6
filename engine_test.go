package trustkit

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis.Run failed: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return mr, client
}

func testConfig() Config {
	cfg := defaultConfig()
	cfg.Breach.SimulatedLatency = 0
	cfg.Breach.DebounceDelay = 10 * time.Millisecond
	return cfg
}

func newTestEngine(t *testing.T, rdb *redis.Client, cfg Config) *Engine {
	t.Helper()

	engine, err := New().
		WithConfig(cfg).
		WithRedis(rdb).
		WithCodeVerifier(NewStaticCodeVerifier().WithDelay(0)).
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	t.Cleanup(engine.Close)

	return engine
}

type verifierFunc func(ctx context.Context, challengeID, code string) (bool, error)

func (f verifierFunc) Verify(ctx context.Context, challengeID, code string) (bool, error) {
	return f(ctx, challengeID, code)
}

func TestBuildRequiresRedis(t *testing.T) {
	if _, err := New().WithConfig(testConfig()).Build(); err == nil {
		t.Fatal("expected error when redis client is missing")
	}
}

func TestBuilderSingleUse(t *testing.T) {
	_, rdb := newTestRedis(t)

	b := New().WithConfig(testConfig()).WithRedis(rdb)
	engine, err := b.Build()
	if err != nil {
		t.Fatalf("first Build failed: %v", err)
	}
	defer engine.Close()

	if _, err := b.Build(); err == nil {
		t.Fatal("expected error on second Build of the same builder")
	}
}

func TestBuildRejectsInvalidConfig(t *testing.T) {
	_, rdb := newTestRedis(t)

	cfg := testConfig()
	cfg.OTP.ChallengeTTL = 0
	if _, err := New().WithConfig(cfg).WithRedis(rdb).Build(); err == nil {
		t.Fatal("expected config validation error")
	}
}

func TestBuildRejectsTicketWithoutKey(t *testing.T) {
	_, rdb := newTestRedis(t)

	cfg := testConfig()
	cfg.Ticket.Enabled = true
	if _, err := New().WithConfig(cfg).WithRedis(rdb).Build(); err == nil {
		t.Fatal("expected error for ticket issuance without signing key")
	}
}

func TestEvaluatePasswordCountsMetrics(t *testing.T) {
	_, rdb := newTestRedis(t)

	cfg := testConfig()
	cfg.Metrics.Enabled = true
	engine := newTestEngine(t, rdb, cfg)

	result := engine.EvaluatePassword("abc")
	if result.Strength != "weak" {
		t.Fatalf("expected weak, got %q", result.Strength)
	}
	engine.EvaluatePassword("MyVeryLongPassw0rd!!")

	snap := engine.MetricsSnapshot()
	if got := snap.Counters[MetricStrengthEvaluated]; got != 2 {
		t.Fatalf("expected 2 evaluations, got %d", got)
	}
	if got := snap.Counters[MetricStrengthWeak]; got != 1 {
		t.Fatalf("expected 1 weak classification, got %d", got)
	}
}

func TestTenantIsolationInContext(t *testing.T) {
	ctx := context.Background()
	if got := tenantIDFromContext(ctx); got != "0" {
		t.Fatalf("expected default tenant 0, got %q", got)
	}

	ctx = WithTenantID(ctx, "t9")
	if got := tenantIDFromContext(ctx); got != "t9" {
		t.Fatalf("expected t9, got %q", got)
	}
}
