// Package api contains the request layer of the Mirror client.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic contract (see the Client interface) for the four
//     remote account operations: CreateAccount, Login, FetchProfile and
//     UpdateProfile.
//  2. A concrete HTTP/JSON implementation (see HTTPClient) that talks to the
//     Mirror backend, attaches the bearer credential on profile operations,
//     and maps transport and server failures to the typed errors below.
//
// # Error Handling
//
// Every operation resolves to a value or a typed error; nothing escapes the
// package as a panic. Callers match conditions with errors.Is / errors.As:
//
//   - ErrUnavailable — no response, connection failure, or a payload that
//     could not be decoded. Retrying the whole operation is always safe.
//   - *ServerError — a well-formed rejection carrying the server's short
//     error code (e.g. "error_user_already_exists"). Mapping codes to
//     user-facing text is the caller's concern.
//   - ErrNoActiveSession — a profile operation was invoked without a
//     credential. This is a sequencing bug in the caller, never retried.
//
// # Concurrency & Contexts
//
// HTTPClient is safe for concurrent use. All operations accept a
// context.Context and honor cancellation; once issued, a call completes
// exactly once with a success or a typed error.
package api
