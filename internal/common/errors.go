package common

import "errors"

// Sentinel errors shared by the API client and session layers. Callers should
// match them with errors.Is.
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrUnavailable  = errors.New("server unavailable")
)
