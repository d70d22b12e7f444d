// Package api is the HTTP client for the DeepClear backend.
//
// Every operation is a JSON POST to a fixed endpoint. The client attaches the
// session token as a bearer credential, a per-request correlation id, and a
// client-side timeout; it never retries.
//
// Failures map onto a small taxonomy the screens render inline:
//
//   - ValidationError: rejected client-side, no request was made
//   - AuthError: 401/403, the caller must return the user to login
//   - NetworkError: the request never completed (includes timeouts)
//   - ServerError: non-2xx with the server's {error} message verbatim
//   - MalformedResponseError: 2xx with an undecodable body
//
// Nothing here holds UI state; the editor package owns drafts and baselines
// and feeds save results back from these calls.
package api
