package trustkit

import (
	"context"

	"github.com/vigilops/trustkit/internal/rate"
	"github.com/vigilops/trustkit/password"
	"github.com/vigilops/trustkit/ticket"
)

// Engine defines a public type used by trustkit APIs.
//
// Engine instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Engine struct {
	config         Config
	deviceStore    *trustedDeviceStore
	otpStore       *otpChallengeStore
	verifyLimiter  *rate.Limiter
	audit          *auditDispatcher
	metrics        *Metrics
	passwordHash   *password.Argon2
	breachProvider BreachProvider
	codeVerifier   CodeVerifier
	ticketManager  *ticket.Manager
}

// Close describes the close operation and its observable behavior.
//
// Close does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) Close() {
	if e == nil {
		return
	}
	if e.audit != nil {
		e.audit.Close()
	}
}

// AuditDropped describes the auditdropped operation and its observable behavior.
//
// AuditDropped does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) AuditDropped() uint64 {
	if e == nil || e.audit == nil {
		return 0
	}
	return e.audit.Dropped()
}

// MetricsSnapshot describes the metricssnapshot operation and its observable behavior.
//
// MetricsSnapshot does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) MetricsSnapshot() MetricsSnapshot {
	if e == nil || e.metrics == nil {
		return MetricsSnapshot{
			Counters:   map[MetricID]uint64{},
			Histograms: map[MetricID][]uint64{},
		}
	}
	return e.metrics.Snapshot()
}

// resolveTenant returns the effective tenant for ctx. Requests without a
// tenant fall back to the default tenant, unless multi-tenancy is enabled
// with isolation enforced, in which case they are rejected with
// [ErrTenantRequired] instead of silently sharing the default keyspace.
func (e *Engine) resolveTenant(ctx context.Context) (string, error) {
	if tenantID := rawTenantIDFromContext(ctx); tenantID != "" {
		return tenantID, nil
	}
	if e.config.MultiTenant.Enabled && e.config.MultiTenant.EnforceIsolation {
		return "", ErrTenantRequired
	}
	return defaultTenantID, nil
}

func (e *Engine) metricInc(id MetricID) {
	if e == nil || e.metrics == nil {
		return
	}
	e.metrics.Inc(id)
}

// Hasher returns the engine's Argon2id password hasher, for callers that
// persist credentials alongside the sign-up security flows.
func (e *Engine) Hasher() *password.Argon2 {
	if e == nil {
		return nil
	}
	return e.passwordHash
}
