// Package common contains shared constants and sentinel errors used across
// the LMS client components.
package common

import "time"

// Persisted credential keys. The legacy and the primary credential stores use
// the same keys, which keeps the one-time migration a plain key-by-key copy.
const (
	AccessTokenKey  = "access_token"
	RefreshTokenKey = "refresh_token"
	CurrentUserKey  = "current_user"
)

// Credential lifetimes. The server enforces the real token expiry; these only
// bound how long stale entries survive on disk.
const (
	AccessTokenTTL  = 7 * 24 * time.Hour
	RefreshTokenTTL = 30 * 24 * time.Hour
	CurrentUserTTL  = 7 * 24 * time.Hour
)
