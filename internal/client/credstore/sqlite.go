package credstore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mastereducationkz/lms-front-sub003/internal/client/migrations"
	"github.com/mastereducationkz/lms-front-sub003/internal/dbx"
	"github.com/pressly/goose/v3"
)

// SQLiteStore is the primary credential store, backed by a local SQLite
// database. Expiry is stored as unix seconds; expired rows are removed
// lazily on read.
type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
}

// NewSQLiteStore wraps an already migrated database handle.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db, now: time.Now}
}

// OpenSQLite opens (creating if needed) the credential database at dsn and
// applies pending migrations. The sqlite driver must be registered by the
// caller (blank import of modernc.org/sqlite).
func OpenSQLite(ctx context.Context, dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open credential db: %w", err)
	}
	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate credential db: %w", err)
	}
	return NewSQLiteStore(db), nil
}

// RunMigrations applies the embedded credential schema migrations.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	return goose.UpContext(ctx, db, ".")
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Get(ctx context.Context, key string) (string, error) {
	var (
		value     string
		expiresAt int64
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT value, expires_at FROM credentials WHERE key = ?`, key,
	).Scan(&value, &expiresAt)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get credential[%s]: %w", key, err)
	}
	if !s.now().Before(time.Unix(expiresAt, 0)) {
		// Expired entries behave like missing ones; drop the row on the way out.
		_, _ = s.db.ExecContext(ctx, `DELETE FROM credentials WHERE key = ?`, key)
		return "", nil
	}
	return value, nil
}

func (s *SQLiteStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return s.SetMany(ctx, []Entry{{Key: key, Value: value, ExpiresAt: s.now().Add(ttl)}})
}

func (s *SQLiteStore) SetMany(ctx context.Context, entries []Entry) error {
	if len(entries) == 0 {
		return nil
	}
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		for _, e := range entries {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO credentials (key, value, expires_at) VALUES (?, ?, ?)
				ON CONFLICT(key) DO UPDATE SET value = excluded.value, expires_at = excluded.expires_at
			`, e.Key, e.Value, e.ExpiresAt.Unix())
			if err != nil {
				return fmt.Errorf("failed to set credential[%s]: %w", e.Key, err)
			}
		}
		return nil
	})
}

func (s *SQLiteStore) Delete(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM credentials WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("failed to delete credential[%s]: %w", key, err)
	}
	return nil
}

func (s *SQLiteStore) Entries(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key, value, expires_at FROM credentials`)
	if err != nil {
		return nil, fmt.Errorf("failed to list credentials: %w", err)
	}
	defer rows.Close()

	now := s.now()
	var result []Entry
	for rows.Next() {
		var (
			e         Entry
			expiresAt int64
		)
		if err := rows.Scan(&e.Key, &e.Value, &expiresAt); err != nil {
			return nil, fmt.Errorf("failed to scan credential row: %w", err)
		}
		e.ExpiresAt = time.Unix(expiresAt, 0)
		if !now.Before(e.ExpiresAt) {
			continue
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate credential rows: %w", err)
	}
	return result, nil
}

func (s *SQLiteStore) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM credentials`)
	if err != nil {
		return fmt.Errorf("failed to clear credentials: %w", err)
	}
	return nil
}
