// ABOUTME: Package documentation for the chat gateway
// ABOUTME: Documents endpoints and the failure classification contract

// Package gateway exposes the chat HTTP API the widget talks to.
//
// # Endpoints
//
//   - POST /api/chat: forward a message plus history to the model and
//     return {reply}. An empty message is a 400. Provider quota
//     exhaustion is a 429 with the quota text; any other provider
//     failure is a 500 with a generic text. Clients treat 429 as
//     RateLimited and everything else as Unavailable.
//   - GET /api/models: the model identifiers this gateway serves.
//   - GET /healthz: liveness.
//
// # Priming
//
// When a site context is configured, every outbound history is
// prefixed with a user/model pair: the site context and a canned
// acknowledgement. The widget never sees this pair; it exists only on
// the wire to the model.
package gateway
