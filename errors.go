package trustkit

import "errors"

var (
	// ErrEngineNotReady is an exported constant or variable used by the sign-up security engine.
	ErrEngineNotReady = errors.New("engine not initialized")
	// ErrBreachUnavailable is an exported constant or variable used by the sign-up security engine.
	ErrBreachUnavailable = errors.New("breach lookup backend unavailable")
	// ErrBreachTimeout is an exported constant or variable used by the sign-up security engine.
	ErrBreachTimeout = errors.New("breach lookup timed out")
	// ErrOTPFormat is an exported constant or variable used by the sign-up security engine.
	ErrOTPFormat = errors.New("otp must be 6 digits")
	// ErrOTPInvalid is an exported constant or variable used by the sign-up security engine.
	ErrOTPInvalid = errors.New("invalid verification code")
	// ErrOTPExpired is an exported constant or variable used by the sign-up security engine.
	ErrOTPExpired = errors.New("verification challenge expired")
	// ErrOTPAttemptsExceeded is an exported constant or variable used by the sign-up security engine.
	ErrOTPAttemptsExceeded = errors.New("verification attempts exceeded")
	// ErrOTPReplay is an exported constant or variable used by the sign-up security engine.
	ErrOTPReplay = errors.New("verification challenge replay detected")
	// ErrOTPThrottled is an exported constant or variable used by the sign-up security engine.
	ErrOTPThrottled = errors.New("verification attempts throttled")
	// ErrOTPUnavailable is an exported constant or variable used by the sign-up security engine.
	ErrOTPUnavailable = errors.New("verification backend unavailable")
	// ErrDeviceTrustUnavailable is an exported constant or variable used by the sign-up security engine.
	ErrDeviceTrustUnavailable = errors.New("device trust backend unavailable")
	// ErrTicketDisabled is an exported constant or variable used by the sign-up security engine.
	ErrTicketDisabled = errors.New("verification tickets disabled")
	// ErrUserIDRequired is an exported constant or variable used by the sign-up security engine.
	ErrUserIDRequired = errors.New("user id required")
	// ErrTenantRequired is an exported constant or variable used by the sign-up security engine.
	ErrTenantRequired = errors.New("tenant id required")
)
