package trustkit

import (
	"context"
)

// CheckBreach runs the configured [BreachProvider] against the password
// under the engine's breach timeout. It returns true when the password is
// known-compromised; unavailability and timeouts surface as
// [ErrBreachUnavailable] / [ErrBreachTimeout] so callers can degrade
// gracefully instead of blocking sign-up.
func (e *Engine) CheckBreach(ctx context.Context, password string) (bool, error) {
	if e == nil || e.breachProvider == nil {
		return false, ErrEngineNotReady
	}
	if !e.config.Breach.Enabled {
		return false, nil
	}

	checkCtx, cancel := context.WithTimeout(ctx, e.config.Breach.CheckTimeout)
	defer cancel()

	breached, err := e.breachProvider.Check(checkCtx, password)
	if err != nil {
		err = mapBreachError(err)
		e.metricInc(MetricBreachUnavailable)
		e.emitAudit(ctx, auditEventBreachUnavailable, false, "", "", "", err, nil)
		return false, err
	}

	if breached {
		e.metricInc(MetricBreachHit)
		e.emitAudit(ctx, auditEventBreachHit, true, "", "", "", nil, nil)
	} else {
		e.metricInc(MetricBreachClear)
		e.emitAudit(ctx, auditEventBreachClear, true, "", "", "", nil, nil)
	}

	return breached, nil
}

// NewBreachMonitor creates a [BreachMonitor] bound to this engine's
// provider and breach configuration.
func (e *Engine) NewBreachMonitor(callback func(BreachOutcome)) (*BreachMonitor, error) {
	if e == nil || e.breachProvider == nil {
		return nil, ErrEngineNotReady
	}
	return newBreachMonitor(e, callback), nil
}
