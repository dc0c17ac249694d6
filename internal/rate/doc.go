// Package rate implements the Redis-backed verification throttle used by the
// Engine when a deployment opts in to per-user OTP attempt limits.
//
// # Architecture boundaries
//
// This package owns counter keys and fixed-window TTL semantics. It does NOT
// decide when throttling applies — the Engine consults its configuration
// before calling into this package.
//
// # What this package must NOT do
//
//   - Import trustkit or any sibling internal package.
//   - Persist anything beyond short-lived counters.
package rate
