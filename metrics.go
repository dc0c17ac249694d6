package trustkit

import (
	"sync/atomic"
	"time"
)

// MetricID defines a public type used by trustkit APIs.
//
// MetricID instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type MetricID uint16

const (
	// MetricStrengthEvaluated is an exported constant or variable used by the sign-up security engine.
	MetricStrengthEvaluated MetricID = iota
	// MetricStrengthWeak is an exported constant or variable used by the sign-up security engine.
	MetricStrengthWeak
	// MetricBreachHit is an exported constant or variable used by the sign-up security engine.
	MetricBreachHit
	// MetricBreachClear is an exported constant or variable used by the sign-up security engine.
	MetricBreachClear
	// MetricBreachUnavailable is an exported constant or variable used by the sign-up security engine.
	MetricBreachUnavailable
	// MetricBreachSuperseded is an exported constant or variable used by the sign-up security engine.
	MetricBreachSuperseded
	// MetricFingerprintGenerated is an exported constant or variable used by the sign-up security engine.
	MetricFingerprintGenerated
	// MetricDeviceTrusted is an exported constant or variable used by the sign-up security engine.
	MetricDeviceTrusted
	// MetricDeviceRevoked is an exported constant or variable used by the sign-up security engine.
	MetricDeviceRevoked
	// MetricDeviceRegistryCorrupt is an exported constant or variable used by the sign-up security engine.
	MetricDeviceRegistryCorrupt
	// MetricOTPStarted is an exported constant or variable used by the sign-up security engine.
	MetricOTPStarted
	// MetricOTPSuccess is an exported constant or variable used by the sign-up security engine.
	MetricOTPSuccess
	// MetricOTPFailure is an exported constant or variable used by the sign-up security engine.
	MetricOTPFailure
	// MetricOTPReplay is an exported constant or variable used by the sign-up security engine.
	MetricOTPReplay
	// MetricOTPExpired is an exported constant or variable used by the sign-up security engine.
	MetricOTPExpired
	// MetricOTPThrottled is an exported constant or variable used by the sign-up security engine.
	MetricOTPThrottled
	// MetricTicketIssued is an exported constant or variable used by the sign-up security engine.
	MetricTicketIssued
	// MetricConfirmLatency is an exported constant or variable used by the sign-up security engine.
	MetricConfirmLatency
	metricIDCount
)

const (
	histBucketCount = 8
	cacheLineSize   = 64
)

type metricHistogram struct {
	buckets [histBucketCount]uint64
}

type paddedCounter struct {
	value uint64
	_     [cacheLineSize - 8]byte
}

// Metrics defines a public type used by trustkit APIs.
//
// Metrics instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Metrics struct {
	enabled       bool
	enableLatency bool
	counters      [metricIDCount]paddedCounter
	histograms    [metricIDCount]metricHistogram
}

// MetricsSnapshot defines a public type used by trustkit APIs.
//
// MetricsSnapshot instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type MetricsSnapshot struct {
	Counters   map[MetricID]uint64
	Histograms map[MetricID][]uint64
}

// NewMetrics describes the newmetrics operation and its observable behavior.
//
// NewMetrics does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NewMetrics(cfg MetricsConfig) *Metrics {
	return &Metrics{
		enabled:       cfg.Enabled,
		enableLatency: cfg.Enabled && cfg.EnableLatencyHistograms,
	}
}

// Enabled describes the enabled operation and its observable behavior.
//
// Enabled does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (m *Metrics) Enabled() bool {
	return m != nil && m.enabled
}

// LatencyEnabled describes the latencyenabled operation and its observable behavior.
//
// LatencyEnabled does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (m *Metrics) LatencyEnabled() bool {
	return m != nil && m.enableLatency
}

// Inc describes the inc operation and its observable behavior.
//
// Inc does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (m *Metrics) Inc(id MetricID) {
	if m == nil || !m.enabled || id >= metricIDCount {
		return
	}
	atomic.AddUint64(&m.counters[id].value, 1)
}

// Observe describes the observe operation and its observable behavior.
//
// Observe does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (m *Metrics) Observe(id MetricID, d time.Duration) {
	if m == nil || !m.enabled || !m.enableLatency || id >= metricIDCount {
		return
	}
	if id != MetricConfirmLatency {
		return
	}

	b := bucketIndex(d)
	atomic.AddUint64(&m.histograms[id].buckets[b], 1)
}

// Value describes the value operation and its observable behavior.
//
// Value does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (m *Metrics) Value(id MetricID) uint64 {
	if m == nil || id >= metricIDCount {
		return 0
	}
	return atomic.LoadUint64(&m.counters[id].value)
}

// Snapshot describes the snapshot operation and its observable behavior.
//
// Snapshot does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (m *Metrics) Snapshot() MetricsSnapshot {
	if m == nil || !m.enabled {
		return MetricsSnapshot{
			Counters:   map[MetricID]uint64{},
			Histograms: map[MetricID][]uint64{},
		}
	}

	s := MetricsSnapshot{
		Counters:   make(map[MetricID]uint64, int(metricIDCount)),
		Histograms: make(map[MetricID][]uint64, 1),
	}

	for id := MetricID(0); id < metricIDCount; id++ {
		s.Counters[id] = atomic.LoadUint64(&m.counters[id].value)
	}

	if m.enableLatency {
		buckets := make([]uint64, histBucketCount)
		for i := 0; i < histBucketCount; i++ {
			buckets[i] = atomic.LoadUint64(&m.histograms[MetricConfirmLatency].buckets[i])
		}
		s.Histograms[MetricConfirmLatency] = buckets
	}

	return s
}

func bucketIndex(d time.Duration) int {
	ms := d.Milliseconds()

	switch {
	case ms <= 50:
		return 0
	case ms <= 100:
		return 1
	case ms <= 250:
		return 2
	case ms <= 500:
		return 3
	case ms <= 1000:
		return 4
	case ms <= 1500:
		return 5
	case ms <= 2500:
		return 6
	default:
		return 7
	}
}
