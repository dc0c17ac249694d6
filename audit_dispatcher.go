package trustkit

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// auditRecord is the engine-side precursor of an [AuditEvent]. Request
// scoped inputs (tenant, client IP, error code) are captured at call time;
// the event itself, including lazily built metadata, is materialized on
// the dispatch goroutine so audit work stays off the sign-up hot path.
type auditRecord struct {
	at        time.Time
	eventType string
	userID    string
	tenantID  string
	deviceID  string
	ip        string
	success   bool
	errCode   AuditErrorCode
	metadata  func() map[string]string
}

func (r auditRecord) event() AuditEvent {
	event := AuditEvent{
		Timestamp: r.at,
		EventType: r.eventType,
		UserID:    r.userID,
		TenantID:  r.tenantID,
		DeviceID:  r.deviceID,
		IP:        r.ip,
		Success:   r.success,
		Error:     string(r.errCode),
	}
	if r.metadata != nil {
		event.Metadata = r.metadata()
	}
	return event
}

// auditDispatcher fans engine audit records out to the configured sink
// from a single background goroutine. Backpressure policy is
// config-driven: with DropIfFull the caller never blocks and drops are
// counted, otherwise the caller waits for queue space or context
// cancellation.
type auditDispatcher struct {
	sink       AuditSink
	queue      chan auditRecord
	quit       chan struct{}
	wg         sync.WaitGroup
	dropIfFull bool
	dropped    atomic.Uint64
	stopping   atomic.Bool
	stopOnce   sync.Once
}

func newAuditDispatcher(cfg AuditConfig, sink AuditSink) *auditDispatcher {
	if !cfg.Enabled {
		return nil
	}
	if sink == nil {
		sink = NoOpSink{}
	}
	buffer := cfg.BufferSize
	if buffer <= 0 {
		buffer = 1
	}

	d := &auditDispatcher{
		sink:       sink,
		queue:      make(chan auditRecord, buffer),
		quit:       make(chan struct{}),
		dropIfFull: cfg.DropIfFull,
	}

	d.wg.Add(1)
	go d.dispatch()

	return d
}

func (d *auditDispatcher) dispatch() {
	defer d.wg.Done()

	for {
		select {
		case record := <-d.queue:
			d.sink.Emit(context.Background(), record.event())
		case <-d.quit:
			// Deliver everything accepted before shutdown.
			for {
				select {
				case record := <-d.queue:
					d.sink.Emit(context.Background(), record.event())
				default:
					return
				}
			}
		}
	}
}

// Record queues an audit record for delivery. Records offered after Close
// are discarded.
func (d *auditDispatcher) Record(ctx context.Context, record auditRecord) {
	if d == nil || d.stopping.Load() {
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}

	if d.dropIfFull {
		select {
		case d.queue <- record:
		case <-d.quit:
		default:
			d.dropped.Add(1)
		}
		return
	}

	select {
	case d.queue <- record:
	case <-ctx.Done():
	case <-d.quit:
	}
}

// Close stops accepting records, delivers the queued backlog, and waits
// for the dispatch goroutine to exit. Safe to call more than once.
func (d *auditDispatcher) Close() {
	if d == nil {
		return
	}
	d.stopOnce.Do(func() {
		d.stopping.Store(true)
		close(d.quit)
		d.wg.Wait()
	})
}

// Dropped reports how many records were discarded under the DropIfFull
// policy.
func (d *auditDispatcher) Dropped() uint64 {
	if d == nil {
		return 0
	}
	return d.dropped.Load()
}
