// Package fingerprint derives a stable device identifier from ambient
// environment signals (user agent, language, screen metrics, timezone, and a
// best-effort raster rendering probe).
//
// # Identity model
//
// The identifier is a 32-bit rolling hash over a pipe-delimited component
// string in fixed order. It is deterministic for a fixed environment
// snapshot, privacy-friendly, and explicitly NOT cryptographic: devices with
// identical configurations collide by design. Callers that need stronger
// identity must layer their own credential on top.
//
// # What this package must NOT do
//
//   - Perform I/O: signals and raster surfaces are supplied by the caller.
//   - Fail on missing signals — absent components degrade to empty strings.
//   - Import any other trustkit package.
package fingerprint
