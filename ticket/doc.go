// Package ticket issues and verifies short-lived signed verification tickets.
//
// A ticket is minted by the Engine after a successful OTP confirmation and
// binds the user, the consumed challenge, and (when known) the device
// fingerprint. The surrounding authentication layer can present the ticket
// to prove that multi-factor verification completed without re-querying the
// challenge store.
//
// # Architecture boundaries
//
// This package owns signing and parsing only. Deciding when a ticket is
// issued, and what a verifier does with one, belongs to the caller.
//
// # What this package must NOT do
//
//   - Persist tickets or track revocation — tickets are short-lived by
//     construction.
//   - Import any other trustkit package.
package ticket
