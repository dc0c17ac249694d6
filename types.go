package trustkit

import (
	"io"
	"time"

	"github.com/vigilops/trustkit/fingerprint"
	internalaudit "github.com/vigilops/trustkit/internal/audit"
	"github.com/vigilops/trustkit/password"
)

// TrustedDevice is a single entry in a user's trusted device registry.
// The JSON field names are part of the persisted registry format and must
// not change.
type TrustedDevice struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Browser  string `json:"browser"`
	OS       string `json:"os"`
	Location string `json:"location"`
	LastUsed string `json:"lastUsed"`
	Trusted  bool   `json:"trusted"`
}

// ValidationResult is returned by the Engine's form validators. Validation
// failures are values, not errors: Valid is false and Error carries the
// first failing rule's message.
type ValidationResult struct {
	Valid bool   `json:"isValid"`
	Error string `json:"error,omitempty"`
}

// VerificationChallenge is returned by [Engine.StartVerification]. The
// ChallengeID must be presented back to [Engine.ConfirmVerification].
// Code is set only when the engine's verifier issues codes (see
// [CodeIssuer]); the caller delivers it out of band and must never echo
// it in the API response.
type VerificationChallenge struct {
	ChallengeID string
	Code        string
	ExpiresAt   time.Time
}

// ConfirmOptions carries the optional inputs to [Engine.ConfirmVerification].
// When RememberDevice is set, Signals (and optionally Surface) are used to
// fingerprint and trust the caller's device on success.
type ConfirmOptions struct {
	RememberDevice bool
	Signals        *fingerprint.Signals
	Surface        fingerprint.Surface
}

// VerificationResult is returned by [Engine.ConfirmVerification] on success.
// Ticket is empty unless ticket issuance is enabled.
type VerificationResult struct {
	UserID      string
	TenantID    string
	ChallengeID string
	DeviceID    string
	Ticket      string
	VerifiedAt  time.Time
}

// StrengthResult is the password strength report returned by
// [Engine.EvaluatePassword].
type StrengthResult = password.StrengthResult

// DeviceInfo is the fingerprint summary produced by [Engine.Fingerprint].
type DeviceInfo = fingerprint.DeviceInfo

// Signals is the ambient environment snapshot consumed by the fingerprint
// generator.
type Signals = fingerprint.Signals

// Surface models the offscreen raster probe used as a fingerprint signal.
type Surface = fingerprint.Surface

// AuditEvent is a structured audit record emitted by the engine.
type AuditEvent = internalaudit.Event

// AuditSink receives [AuditEvent] values from the engine's audit dispatcher.
type AuditSink = internalaudit.Sink

// NoOpSink is an [AuditSink] that silently discards all events.
type NoOpSink = internalaudit.NoOpSink

// ChannelSink is a buffered channel-based [AuditSink].
type ChannelSink = internalaudit.ChannelSink

// JSONWriterSink is an [AuditSink] that writes JSON-encoded events to an
// [io.Writer].
type JSONWriterSink = internalaudit.JSONWriterSink

// NewChannelSink creates a [ChannelSink] with the given buffer capacity.
func NewChannelSink(buffer int) *ChannelSink {
	return internalaudit.NewChannelSink(buffer)
}

// NewJSONWriterSink creates a [JSONWriterSink] that writes to w.
func NewJSONWriterSink(w io.Writer) *JSONWriterSink {
	return internalaudit.NewJSONWriterSink(w)
}
