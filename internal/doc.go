// Package internal contains helper utilities that are intentionally private
// to trustkit, including secure random identifier generation.
//
// # Sub-packages
//
//   - audit — async event dispatch (Sink implementations and the Event model)
//   - rate — Redis-backed verification throttle primitives
//
// # What this package must NOT do
//
//   - Export types that appear in the public trustkit API.
//   - Be imported by any package outside the trustkit module.
package internal
