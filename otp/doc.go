// Package otp implements the six-slot one-time-passcode entry state machine
// used by multi-factor verification surfaces.
//
// # State model
//
// An [Entry] moves through Entering (0-5 digits filled), Submitting (all six
// filled, verification in flight), and the per-attempt terminals Verified and
// Rejected. Rejection clears every slot and refocuses slot 0 so the user can
// retry immediately.
//
// # What this package must NOT do
//
//   - Perform verification: the Engine owns challenge storage and the code
//     verifier. An Entry only tracks slots, focus, and state.
//   - Return errors for bad keystrokes — non-digit input is rejected
//     silently, matching interactive input semantics.
//   - Import any other trustkit package.
package otp
