// Package cli implements the interactive LMS client: assembly of the client
// stack (credential store, token manager, auth transport, session facade)
// and a small REPL driving it.
package cli
