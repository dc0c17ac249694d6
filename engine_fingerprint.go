package trustkit

import (
	"context"

	"github.com/vigilops/trustkit/fingerprint"
)

// Fingerprint derives a [DeviceInfo] from the caller's environment snapshot.
// Missing user agent falls back to the context value set via
// [WithUserAgent]; missing language and timezone fall back to the
// configured defaults. A nil surface degrades to an empty probe component.
func (e *Engine) Fingerprint(ctx context.Context, sig Signals, surface Surface) DeviceInfo {
	if sig.UserAgent == "" {
		sig.UserAgent = userAgentFromContext(ctx)
	}
	if sig.Language == "" {
		sig.Language = e.config.Fingerprint.DefaultLanguage
	}
	if sig.Timezone == "" {
		sig.Timezone = e.config.Fingerprint.DefaultTimezone
	}

	info := fingerprint.Generate(sig, surface)
	e.metricInc(MetricFingerprintGenerated)

	return info
}
