// Package trustkit provides the sign-up security core for interactive
// authentication surfaces: real-time password strength evaluation, debounced
// compromised-password lookups, device fingerprinting with a Redis-backed
// trusted-device registry, and a six-digit OTP verification flow that can
// mint signed verification tickets.
//
// The package is designed for concurrent server workloads: Engine methods are
// safe to call from multiple goroutines after initialization through
// [Builder.Build].
//
// # Architecture boundaries
//
// trustkit is the public surface. It exposes [Engine], [Builder], [Config],
// and value types (StrengthResult, DeviceInfo, TrustedDevice, etc.). All
// internal coordination — challenge encoding, audit dispatch, verification
// throttling — lives under internal/ and is never exported. Pure building
// blocks live in their own subpackages: password (strength + Argon2id),
// fingerprint (device identity), otp (entry state machine), ticket
// (signed verification tickets).
//
// # What this package must NOT do
//
//   - Expose Redis clients, internal stores, or encoding details in its
//     public API.
//   - Perform I/O outside of Engine methods and the [BreachMonitor]
//     (construction via Builder is allocation-only until Build).
//   - Propagate a panic to callers: validation failures are values, missing
//     environment signals degrade to empty components, and corrupt persisted
//     state degrades to an empty collection.
//
// # Performance contract
//
// EvaluatePassword is the hot path: it is pure, synchronous, and must not
// allocate beyond the returned StrengthResult. Breach checks and OTP
// confirmation are allowed one provider round-trip and one Redis round-trip
// per call, and both are bounded by the configured timeout.
package trustkit
