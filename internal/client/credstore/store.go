// Package credstore persists client credentials (token pair and cached user
// profile) across restarts. Two implementations exist: the SQLite-backed
// primary store and the legacy JSON-file store kept only as a migration
// source.
package credstore

import (
	"context"
	"time"
)

// Entry is a single persisted credential value with its absolute expiry.
type Entry struct {
	Key       string
	Value     string
	ExpiresAt time.Time
}

// NewEntry builds an Entry expiring ttl from now.
func NewEntry(key, value string, ttl time.Duration) Entry {
	return Entry{Key: key, Value: value, ExpiresAt: time.Now().Add(ttl)}
}

// Store is the credential persistence contract.
//
// An expired entry must behave exactly like a missing one: Get returns "",
// Entries omits it. Implementations never make network calls.
type Store interface {
	// Get returns the live value for key, or "" if absent or expired.
	Get(ctx context.Context, key string) (string, error)

	// Set stores value under key with the given ttl, replacing any previous
	// entry.
	Set(ctx context.Context, key, value string, ttl time.Duration) error

	// SetMany stores all entries; implementations apply them atomically so a
	// token pair is never half-replaced.
	SetMany(ctx context.Context, entries []Entry) error

	// Delete removes the entry for key. Deleting a missing key is not an
	// error.
	Delete(ctx context.Context, key string) error

	// Entries returns all live entries.
	Entries(ctx context.Context) ([]Entry, error)

	// Clear removes every entry.
	Clear(ctx context.Context) error
}
