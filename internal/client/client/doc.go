// Package client talks to the two remote RevisApp directories.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic contract (see the Directory interface): list the
//     registered users, create a user, find workshops by postal-code prefix.
//  2. A JSON-over-HTTP implementation (see HTTPDirectory) that bounds every
//     call with a timeout and records the call, the response and any failure
//     in a diagnostics.Collector under a per-request id.
//
// # Error Handling
//
// Failures are exposed as sentinel errors that callers match with
// errors.Is: ErrNetwork, ErrAPI, ErrDuplicateEmail. Context cancellation and
// deadline errors stay reachable through the ErrNetwork wrap.
//
// The create endpoint reports a duplicate address only in free text, so
// CreateUser recognises it by searching the response body for the phrase
// "email já cadastrado".
//
// See Also
//
//   - Interface: Directory
//   - HTTP impl: HTTPDirectory
//   - Errors:    ErrNetwork, ErrAPI, ErrDuplicateEmail
package client
