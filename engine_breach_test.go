package trustkit

import (
	"context"
	"errors"
	"testing"
	"time"
)

type breachProviderFunc func(ctx context.Context, password string) (bool, error)

func (f breachProviderFunc) Check(ctx context.Context, password string) (bool, error) {
	return f(ctx, password)
}

func TestCheckBreachStaticRoster(t *testing.T) {
	_, rdb := newTestRedis(t)
	cfg := testConfig()
	cfg.Metrics.Enabled = true
	engine := newTestEngine(t, rdb, cfg)
	ctx := context.Background()

	breached, err := engine.CheckBreach(ctx, "password")
	if err != nil {
		t.Fatalf("CheckBreach failed: %v", err)
	}
	if !breached {
		t.Fatal("expected roster entry to be breached")
	}

	// Membership is case-insensitive.
	breached, err = engine.CheckBreach(ctx, "QwErTy")
	if err != nil {
		t.Fatalf("CheckBreach failed: %v", err)
	}
	if !breached {
		t.Fatal("expected case-insensitive roster match")
	}

	breached, err = engine.CheckBreach(ctx, "Obscure-Passphrase-77!")
	if err != nil {
		t.Fatalf("CheckBreach failed: %v", err)
	}
	if breached {
		t.Fatal("expected unknown password to be clear")
	}

	snap := engine.MetricsSnapshot()
	if snap.Counters[MetricBreachHit] != 2 || snap.Counters[MetricBreachClear] != 1 {
		t.Fatalf("unexpected counters: %+v", snap.Counters)
	}
}

func TestCheckBreachDisabled(t *testing.T) {
	_, rdb := newTestRedis(t)
	cfg := testConfig()
	cfg.Breach.Enabled = false
	engine := newTestEngine(t, rdb, cfg)

	breached, err := engine.CheckBreach(context.Background(), "password")
	if err != nil {
		t.Fatalf("CheckBreach failed: %v", err)
	}
	if breached {
		t.Fatal("expected disabled check to report clear")
	}
}

func TestCheckBreachTimeout(t *testing.T) {
	_, rdb := newTestRedis(t)
	cfg := testConfig()
	cfg.Breach.CheckTimeout = 20 * time.Millisecond

	engine, err := New().
		WithConfig(cfg).
		WithRedis(rdb).
		WithBreachProvider(NewStaticBreachList(500 * time.Millisecond)).
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	t.Cleanup(engine.Close)

	if _, err := engine.CheckBreach(context.Background(), "password"); !errors.Is(err, ErrBreachTimeout) {
		t.Fatalf("expected ErrBreachTimeout, got %v", err)
	}
}

func TestCheckBreachProviderUnavailable(t *testing.T) {
	_, rdb := newTestRedis(t)

	provider := breachProviderFunc(func(ctx context.Context, password string) (bool, error) {
		return false, errors.New("upstream down")
	})
	engine, err := New().
		WithConfig(testConfig()).
		WithRedis(rdb).
		WithBreachProvider(provider).
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	t.Cleanup(engine.Close)

	if _, err := engine.CheckBreach(context.Background(), "password"); !errors.Is(err, ErrBreachUnavailable) {
		t.Fatalf("expected ErrBreachUnavailable, got %v", err)
	}
}

func TestBreachMonitorShortInputResolvesImmediately(t *testing.T) {
	_, rdb := newTestRedis(t)
	engine := newTestEngine(t, rdb, testConfig())

	outcomes := make(chan BreachOutcome, 1)
	monitor, err := engine.NewBreachMonitor(func(o BreachOutcome) { outcomes <- o })
	if err != nil {
		t.Fatalf("NewBreachMonitor failed: %v", err)
	}
	defer monitor.Close()

	monitor.Submit(context.Background(), "abc")

	select {
	case o := <-outcomes:
		if o.Password != "abc" || o.Breached || o.Err != nil {
			t.Fatalf("unexpected outcome: %+v", o)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for immediate outcome")
	}
}

func TestBreachMonitorDebounceSupersedes(t *testing.T) {
	_, rdb := newTestRedis(t)
	cfg := testConfig()
	cfg.Metrics.Enabled = true
	engine := newTestEngine(t, rdb, cfg)

	outcomes := make(chan BreachOutcome, 4)
	monitor, err := engine.NewBreachMonitor(func(o BreachOutcome) { outcomes <- o })
	if err != nil {
		t.Fatalf("NewBreachMonitor failed: %v", err)
	}
	defer monitor.Close()

	ctx := context.Background()
	monitor.Submit(ctx, "password1")
	monitor.Submit(ctx, "123456789")

	select {
	case o := <-outcomes:
		if o.Password != "123456789" {
			t.Fatalf("expected latest submission to win, got %q", o.Password)
		}
		if !o.Breached {
			t.Fatal("expected roster hit for latest submission")
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for debounced outcome")
	}

	select {
	case o := <-outcomes:
		t.Fatalf("superseded submission leaked to callback: %+v", o)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestBreachMonitorCloseCancelsPending(t *testing.T) {
	_, rdb := newTestRedis(t)
	engine := newTestEngine(t, rdb, testConfig())

	outcomes := make(chan BreachOutcome, 1)
	monitor, err := engine.NewBreachMonitor(func(o BreachOutcome) { outcomes <- o })
	if err != nil {
		t.Fatalf("NewBreachMonitor failed: %v", err)
	}

	monitor.Submit(context.Background(), "password1")
	monitor.Close()

	select {
	case o := <-outcomes:
		t.Fatalf("closed monitor delivered outcome: %+v", o)
	case <-time.After(100 * time.Millisecond):
	}

	// Submits after Close are ignored.
	monitor.Submit(context.Background(), "password1")
	monitor.Close()
}
