package rate

import "errors"

var (
	// ErrThrottled is an exported constant or variable used by the sign-up security engine.
	ErrThrottled = errors.New("throttled")
	// ErrRedisUnavailable is an exported constant or variable used by the sign-up security engine.
	ErrRedisUnavailable = errors.New("redis unavailable")
)
