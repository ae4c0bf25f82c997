// ABOUTME: Package documentation for the remote chat client
// ABOUTME: Documents the wire contract and the failure taxonomy

// Package client implements the remote collaborator contract: one HTTP
// POST per send, no automatic retries.
//
// # Wire contract
//
//	POST /api/chat
//	{ "message": string, "history": [ { "role": "user"|"model", "text": string }, ... ] }
//	-> 200 { "reply": string }
//	-> 429 { "error": string }   rate limited
//	-> 5xx { "error": string }   unavailable
//
// # Failure taxonomy
//
// Every failure is a *RequestError with one of two kinds:
//
//   - KindRateLimited: the server answered 429; the server's error text
//     is surfaced verbatim.
//   - KindUnavailable: anything else (transport error, non-2xx,
//     malformed body); surfaced as a generic apology.
//
// RequestError implements session.UserFacing, so the controller can
// show the message in place of a reply without importing this package.
package client
