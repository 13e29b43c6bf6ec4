// Package api implements the authenticated HTTP layer of the LMS client.
//
// The package has two halves. Transport is an http.RoundTripper that attaches
// the current access token to outbound requests and implements
// refresh-on-401: the first expired request triggers exactly one refresh
// call, concurrent 401s queue behind it and are replayed FIFO with the new
// token, and an unrecoverable refresh failure runs the injected logout
// procedure exactly once per episode. Client is the typed surface over the
// REST endpoints, mapping responses into the shared error taxonomy
// (ErrNetwork, ErrUnauthorized, *APIError).
package api
