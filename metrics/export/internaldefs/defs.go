package internaldefs

import (
	trustkit "github.com/vigilops/trustkit"
)

// CounterDef defines a public type used by trustkit APIs.
//
// CounterDef instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type CounterDef struct {
	ID   trustkit.MetricID
	Name string
	Help string
}

// HistogramDef defines a public type used by trustkit APIs.
//
// HistogramDef instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type HistogramDef struct {
	ID   trustkit.MetricID
	Name string
	Help string
}

// CounterDefs is an exported constant or variable used by the sign-up security engine.
var CounterDefs = []CounterDef{
	{ID: trustkit.MetricStrengthEvaluated, Name: "trustkit_strength_evaluated_total", Help: "Password strength evaluations."},
	{ID: trustkit.MetricStrengthWeak, Name: "trustkit_strength_weak_total", Help: "Evaluations classified weak."},
	{ID: trustkit.MetricBreachHit, Name: "trustkit_breach_hit_total", Help: "Breach lookups that found the password."},
	{ID: trustkit.MetricBreachClear, Name: "trustkit_breach_clear_total", Help: "Breach lookups that cleared the password."},
	{ID: trustkit.MetricBreachUnavailable, Name: "trustkit_breach_unavailable_total", Help: "Breach lookups that failed or timed out."},
	{ID: trustkit.MetricBreachSuperseded, Name: "trustkit_breach_superseded_total", Help: "Breach lookups discarded as stale by a newer input."},
	{ID: trustkit.MetricFingerprintGenerated, Name: "trustkit_fingerprint_generated_total", Help: "Device fingerprint generations."},
	{ID: trustkit.MetricDeviceTrusted, Name: "trustkit_device_trusted_total", Help: "Devices added to a trust registry."},
	{ID: trustkit.MetricDeviceRevoked, Name: "trustkit_device_revoked_total", Help: "Devices removed from a trust registry."},
	{ID: trustkit.MetricDeviceRegistryCorrupt, Name: "trustkit_device_registry_corrupt_total", Help: "Trusted device registries reset after corrupt payloads."},
	{ID: trustkit.MetricOTPStarted, Name: "trustkit_otp_started_total", Help: "OTP verification challenges created."},
	{ID: trustkit.MetricOTPSuccess, Name: "trustkit_otp_success_total", Help: "Successful OTP confirmations."},
	{ID: trustkit.MetricOTPFailure, Name: "trustkit_otp_failure_total", Help: "Failed OTP confirmations."},
	{ID: trustkit.MetricOTPReplay, Name: "trustkit_otp_replay_total", Help: "OTP confirmations rejected as replays."},
	{ID: trustkit.MetricOTPExpired, Name: "trustkit_otp_expired_total", Help: "OTP confirmations against expired challenges."},
	{ID: trustkit.MetricOTPThrottled, Name: "trustkit_otp_throttled_total", Help: "OTP confirmations rejected by the per-user throttle."},
	{ID: trustkit.MetricTicketIssued, Name: "trustkit_ticket_issued_total", Help: "Verification tickets issued."},
}

// HistogramDefs is an exported constant or variable used by the sign-up security engine.
var HistogramDefs = []HistogramDef{
	{ID: trustkit.MetricConfirmLatency, Name: "trustkit_confirm_latency_seconds", Help: "ConfirmVerification latency histogram."},
}

// HistogramBounds is an exported constant or variable used by the sign-up security engine.
var HistogramBounds = []string{
	"0.05",
	"0.1",
	"0.25",
	"0.5",
	"1",
	"1.5",
	"2.5",
	"+Inf",
}

// HistogramBoundSuffix is an exported constant or variable used by the sign-up security engine.
var HistogramBoundSuffix = []string{
	"0_05",
	"0_1",
	"0_25",
	"0_5",
	"1",
	"1_5",
	"2_5",
	"inf",
}

// NormalizeBuckets describes the normalizebuckets operation and its observable behavior.
//
// NormalizeBuckets does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NormalizeBuckets(raw []uint64) [8]uint64 {
	var out [8]uint64
	for i := 0; i < len(out) && i < len(raw); i++ {
		out[i] = raw[i]
	}
	return out
}

// CumulativeBuckets describes the cumulativebuckets operation and its observable behavior.
//
// CumulativeBuckets does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func CumulativeBuckets(raw [8]uint64) [8]uint64 {
	var out [8]uint64
	var running uint64
	for i := 0; i < len(raw); i++ {
		running += raw[i]
		out[i] = running
	}
	return out
}
