package trustkit

import (
	"context"
	"crypto/subtle"
	"sync"
	"time"

	"github.com/vigilops/trustkit/internal"
)

// CodeVerifier decides whether a submitted code satisfies the challenge.
// Verify returns true on acceptance; an error means the verdict could not
// be reached (backend down, context cancelled), not a wrong code.
type CodeVerifier interface {
	Verify(ctx context.Context, challengeID, code string) (bool, error)
}

const staticAcceptedCode = "123456"

// StaticCodeVerifier is the default [CodeVerifier]: it accepts exactly one
// fixed code after a simulated round-trip delay, standing in for an SMS or
// email OTP backend during development and tests.
type StaticCodeVerifier struct {
	accepted string
	delay    time.Duration
}

// NewStaticCodeVerifier creates a [StaticCodeVerifier] with the default
// accepted code and a 1s simulated delay.
func NewStaticCodeVerifier() *StaticCodeVerifier {
	return &StaticCodeVerifier{
		accepted: staticAcceptedCode,
		delay:    time.Second,
	}
}

// WithDelay returns a copy of the verifier with the given simulated delay.
// A delay of zero resolves synchronously.
func (v *StaticCodeVerifier) WithDelay(d time.Duration) *StaticCodeVerifier {
	return &StaticCodeVerifier{
		accepted: v.accepted,
		delay:    d,
	}
}

// Verify describes the verify operation and its observable behavior.
//
// Verify may return an error when input validation, dependency calls, or security checks fail.
// Verify does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (v *StaticCodeVerifier) Verify(ctx context.Context, challengeID, code string) (bool, error) {
	if v.delay > 0 {
		timer := time.NewTimer(v.delay)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			return false, ctx.Err()
		}
	}

	return subtle.ConstantTimeCompare([]byte(code), []byte(v.accepted)) == 1, nil
}

var _ CodeVerifier = (*StaticCodeVerifier)(nil)

// CodeIssuer is implemented by verifiers that mint the code themselves.
// When the engine's verifier issues codes, [Engine.StartVerification]
// requests one per challenge and returns it on the challenge for the
// caller to deliver out of band.
type CodeIssuer interface {
	Issue(challengeID string) (string, error)
}

// GeneratedCodeVerifier mints a random numeric code per challenge and
// accepts exactly that code, once. It keeps pending codes in memory, so it
// suits single-process deployments; distributed setups need a
// [CodeVerifier] backed by shared storage.
type GeneratedCodeVerifier struct {
	digits int

	mu    sync.Mutex
	codes map[string]string
}

// NewGeneratedCodeVerifier creates a [GeneratedCodeVerifier] producing
// codes of the given length (6 to 10 digits).
func NewGeneratedCodeVerifier(digits int) *GeneratedCodeVerifier {
	return &GeneratedCodeVerifier{
		digits: digits,
		codes:  make(map[string]string),
	}
}

// Issue mints and records the code for the challenge. Re-issuing replaces
// any pending code.
func (v *GeneratedCodeVerifier) Issue(challengeID string) (string, error) {
	code, err := internal.NewOTP(v.digits)
	if err != nil {
		return "", err
	}

	v.mu.Lock()
	v.codes[challengeID] = code
	v.mu.Unlock()

	return code, nil
}

// Verify accepts the pending code for the challenge and consumes it. An
// unknown challenge or a mismatched code is a rejection, not an error.
func (v *GeneratedCodeVerifier) Verify(_ context.Context, challengeID, code string) (bool, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	expected, ok := v.codes[challengeID]
	if !ok || subtle.ConstantTimeCompare([]byte(code), []byte(expected)) != 1 {
		return false, nil
	}

	delete(v.codes, challengeID)
	return true, nil
}

var _ CodeVerifier = (*GeneratedCodeVerifier)(nil)
var _ CodeIssuer = (*GeneratedCodeVerifier)(nil)
