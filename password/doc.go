// Package password implements password strength scoring and Argon2id hashing.
//
// # Strength scoring
//
// [EvaluateStrength] is a pure function that maps any string to a bounded
// score in [0,4], a strength label, a progress percentage, a list of
// improvement hints, and five boolean requirement flags. The score model is
// additive with a penalty for well-known weak substrings; see the function
// documentation for the exact weights.
//
// # Output format
//
// Hashes are encoded in PHC string format:
//
//	$argon2id$v=19$m=<memory>,t=<time>,p=<threads>$<salt>$<hash>
//
// The [Argon2] hasher supports transparent parameter upgrades: if the stored
// hash was produced with weaker parameters, [Argon2.NeedsUpgrade] returns true
// so the caller can re-hash on the next successful login.
//
// # Architecture boundaries
//
// This package owns scoring, hashing, and verification only. When and how to
// surface results (debounced breach checks, UI feedback) is the Engine's job.
//
// # What this package must NOT do
//
//   - Store or retrieve passwords — callers supply plaintext and receive
//     scores or hashes.
//   - Import any other trustkit package.
//   - Log plaintext passwords or hash parameters at runtime.
package password
