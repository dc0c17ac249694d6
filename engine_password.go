package trustkit

import (
	"github.com/vigilops/trustkit/password"
)

// EvaluatePassword scores the password and reports the per-requirement
// checklist. Pure pass-through to the strength evaluator plus metrics; it
// never errors and never touches Redis.
func (e *Engine) EvaluatePassword(pw string) StrengthResult {
	result := password.EvaluateStrength(pw)

	e.metricInc(MetricStrengthEvaluated)
	if result.Strength == password.StrengthWeak {
		e.metricInc(MetricStrengthWeak)
	}

	return result
}
