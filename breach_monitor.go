package trustkit

import (
	"context"
	"sync"
	"time"
)

// BreachOutcome is delivered to a [BreachMonitor] callback once a debounced
// lookup resolves. Err is non-nil when the provider was unavailable; the
// password should then be treated as unchecked, not clear.
type BreachOutcome struct {
	Password string
	Breached bool
	Err      error
}

// BreachMonitor debounces breach lookups for a live password input. Each
// Submit supersedes any pending or in-flight lookup: the callback only ever
// observes the outcome of the most recent Submit. Inputs below the
// configured minimum length resolve immediately as clear without consulting
// the provider.
//
// The callback runs on the monitor's timer goroutine and must not block.
type BreachMonitor struct {
	engine   *Engine
	callback func(BreachOutcome)

	mu         sync.Mutex
	timer      *time.Timer
	generation uint64
	closed     bool
}

func newBreachMonitor(engine *Engine, callback func(BreachOutcome)) *BreachMonitor {
	if callback == nil {
		callback = func(BreachOutcome) {}
	}
	return &BreachMonitor{
		engine:   engine,
		callback: callback,
	}
}

// Submit registers the latest password input. Any pending debounce timer and
// any in-flight lookup are superseded.
func (m *BreachMonitor) Submit(ctx context.Context, password string) {
	if m == nil {
		return
	}

	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}

	m.generation++
	generation := m.generation
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}

	if len(password) < m.engine.config.Breach.MinQueryLength {
		m.mu.Unlock()
		m.callback(BreachOutcome{Password: password})
		return
	}

	m.timer = time.AfterFunc(m.engine.config.Breach.DebounceDelay, func() {
		m.resolve(ctx, generation, password)
	})
	m.mu.Unlock()
}

func (m *BreachMonitor) resolve(ctx context.Context, generation uint64, password string) {
	if !m.current(generation) {
		m.engine.metricInc(MetricBreachSuperseded)
		return
	}

	breached, err := m.engine.CheckBreach(ctx, password)

	// Re-check after the provider round trip: a newer Submit may have
	// landed while the lookup was in flight.
	if !m.current(generation) {
		m.engine.metricInc(MetricBreachSuperseded)
		return
	}

	m.callback(BreachOutcome{
		Password: password,
		Breached: breached,
		Err:      err,
	})
}

func (m *BreachMonitor) current(generation uint64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return !m.closed && generation == m.generation
}

// Close cancels any pending lookup. Subsequent Submits are ignored. Safe to
// call more than once.
func (m *BreachMonitor) Close() {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
}
