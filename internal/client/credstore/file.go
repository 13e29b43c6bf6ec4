package credstore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"
)

// FileStore is the legacy credential location: a single JSON file mapping
// credential keys to values with absolute expiries. New writes still work so
// the migration tests can seed it, but production code only reads from it
// once, during migration.
type FileStore struct {
	path string
	mu   sync.Mutex
	now  func() time.Time
}

type fileEntry struct {
	Value     string `json:"value"`
	ExpiresAt int64  `json:"expires_at"`
}

// NewFileStore points at the legacy credentials file. The file is not
// created until the first write.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path, now: time.Now}
}

func (s *FileStore) load() (map[string]fileEntry, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return map[string]fileEntry{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read legacy credentials: %w", err)
	}
	entries := map[string]fileEntry{}
	if len(data) == 0 {
		return entries, nil
	}
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse legacy credentials: %w", err)
	}
	return entries, nil
}

func (s *FileStore) save(entries map[string]fileEntry) error {
	if len(entries) == 0 {
		err := os.Remove(s.path)
		if err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("remove legacy credentials: %w", err)
		}
		return nil
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encode legacy credentials: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write legacy credentials: %w", err)
	}
	return nil
}

func (s *FileStore) Get(_ context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load()
	if err != nil {
		return "", err
	}
	e, ok := entries[key]
	if !ok || !s.now().Before(time.Unix(e.ExpiresAt, 0)) {
		return "", nil
	}
	return e.Value, nil
}

func (s *FileStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return s.SetMany(ctx, []Entry{{Key: key, Value: value, ExpiresAt: s.now().Add(ttl)}})
}

func (s *FileStore) SetMany(_ context.Context, toSet []Entry) error {
	if len(toSet) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load()
	if err != nil {
		return err
	}
	for _, e := range toSet {
		entries[e.Key] = fileEntry{Value: e.Value, ExpiresAt: e.ExpiresAt.Unix()}
	}
	return s.save(entries)
}

func (s *FileStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load()
	if err != nil {
		return err
	}
	delete(entries, key)
	return s.save(entries)
}

func (s *FileStore) Entries(_ context.Context) ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load()
	if err != nil {
		return nil, err
	}
	now := s.now()
	var result []Entry
	for key, e := range entries {
		expiresAt := time.Unix(e.ExpiresAt, 0)
		if !now.Before(expiresAt) {
			continue
		}
		result = append(result, Entry{Key: key, Value: e.Value, ExpiresAt: expiresAt})
	}
	return result, nil
}

func (s *FileStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(nil)
}
