package trustkit

import (
	"sync"
	"testing"
	"time"
)

func TestMetricsDisabledNoIncrement(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: false})
	m.Inc(MetricOTPSuccess)

	if got := m.Value(MetricOTPSuccess); got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
}

func TestMetricsEnabledIncrement(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: true})
	m.Inc(MetricOTPSuccess)
	m.Inc(MetricOTPSuccess)
	m.Inc(MetricOTPSuccess)

	if got := m.Value(MetricOTPSuccess); got != 3 {
		t.Fatalf("expected 3, got %d", got)
	}
}

func TestMetricsConcurrentIncrementSafe(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: true})

	const goroutines = 32
	const perG = 4000

	var wg sync.WaitGroup
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < perG; j++ {
				m.Inc(MetricBreachClear)
			}
		}()
	}
	wg.Wait()

	want := uint64(goroutines * perG)
	if got := m.Value(MetricBreachClear); got != want {
		t.Fatalf("expected %d, got %d", want, got)
	}
}

func TestMetricsHistogramBucketCorrectness(t *testing.T) {
	m := NewMetrics(MetricsConfig{
		Enabled:                 true,
		EnableLatencyHistograms: true,
	})

	observations := []time.Duration{
		25 * time.Millisecond,
		75 * time.Millisecond,
		200 * time.Millisecond,
		400 * time.Millisecond,
		900 * time.Millisecond,
		1200 * time.Millisecond,
		2 * time.Second,
		5 * time.Second,
	}

	for _, d := range observations {
		m.Observe(MetricConfirmLatency, d)
	}

	snap := m.Snapshot()
	buckets := snap.Histograms[MetricConfirmLatency]
	if len(buckets) != 8 {
		t.Fatalf("expected 8 buckets, got %d", len(buckets))
	}

	for i, v := range buckets {
		if v != 1 {
			t.Fatalf("bucket %d expected 1, got %d", i, v)
		}
	}
}

func TestMetricsSnapshotConsistency(t *testing.T) {
	m := NewMetrics(MetricsConfig{
		Enabled:                 true,
		EnableLatencyHistograms: true,
	})
	m.Inc(MetricOTPSuccess)
	m.Inc(MetricOTPFailure)
	m.Inc(MetricOTPFailure)
	m.Observe(MetricConfirmLatency, 2*time.Millisecond)

	snap := m.Snapshot()

	if snap.Counters[MetricOTPSuccess] != 1 {
		t.Fatalf("expected MetricOTPSuccess=1 got %d", snap.Counters[MetricOTPSuccess])
	}
	if snap.Counters[MetricOTPFailure] != 2 {
		t.Fatalf("expected MetricOTPFailure=2 got %d", snap.Counters[MetricOTPFailure])
	}
	if len(snap.Histograms[MetricConfirmLatency]) != 8 {
		t.Fatalf("expected histogram length 8")
	}
	if snap.Histograms[MetricConfirmLatency][0] != 1 {
		t.Fatalf("expected first histogram bucket=1 got %d", snap.Histograms[MetricConfirmLatency][0])
	}
}

func TestMetricsHistogramDisabledNoObserve(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: true})
	m.Observe(MetricConfirmLatency, 10*time.Millisecond)

	snap := m.Snapshot()
	for _, v := range snap.Histograms[MetricConfirmLatency] {
		if v != 0 {
			t.Fatal("expected no observations with histograms disabled")
		}
	}
}
