// Package sqlite provides SQLite-backed snapshot persistence.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	sqlitemigrate "github.com/louisbranch/clickforge/internal/platform/storage/sqlitemigrate"
	"github.com/louisbranch/clickforge/internal/progression/snapshot"
	"github.com/louisbranch/clickforge/internal/storage"
	"github.com/louisbranch/clickforge/internal/storage/sqlite/migrations"
)

// Store persists snapshots in a SQLite database, one row per save slot.
// Snapshots are stored normalized and JSON-encoded.
type Store struct {
	sqlDB *sql.DB
}

// Open opens a snapshot store and applies migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	if err := sqlitemigrate.ApplyMigrations(sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close releases the SQLite connection.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Save writes the snapshot for slot, replacing any previous save.
func (s *Store) Save(ctx context.Context, slot string, snap snapshot.Snapshot, savedAt time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	slot = strings.TrimSpace(slot)
	if slot == "" {
		return fmt.Errorf("slot is required")
	}
	if savedAt.IsZero() {
		savedAt = time.Now().UTC()
	}

	snap.Normalize()
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	_, err = s.sqlDB.ExecContext(ctx, `
INSERT INTO saves (slot, data, saved_at) VALUES (?, ?, ?)
ON CONFLICT(slot) DO UPDATE SET data = excluded.data, saved_at = excluded.saved_at
`,
		slot,
		string(data),
		savedAt.UTC().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

// Load reads the snapshot for slot, or storage.ErrNotFound.
func (s *Store) Load(ctx context.Context, slot string) (storage.SavedSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return storage.SavedSnapshot{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.SavedSnapshot{}, fmt.Errorf("storage is not configured")
	}
	slot = strings.TrimSpace(slot)
	if slot == "" {
		return storage.SavedSnapshot{}, fmt.Errorf("slot is required")
	}

	var (
		data    string
		savedAt int64
	)
	err := s.sqlDB.QueryRowContext(ctx,
		"SELECT data, saved_at FROM saves WHERE slot = ?", slot,
	).Scan(&data, &savedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return storage.SavedSnapshot{}, storage.ErrNotFound
	}
	if err != nil {
		return storage.SavedSnapshot{}, fmt.Errorf("load snapshot: %w", err)
	}

	var snap snapshot.Snapshot
	if err := json.Unmarshal([]byte(data), &snap); err != nil {
		return storage.SavedSnapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	return storage.SavedSnapshot{
		Snapshot: snap,
		SavedAt:  time.UnixMilli(savedAt).UTC(),
	}, nil
}
