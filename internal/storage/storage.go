// Package storage defines the persistence boundary for progression
// snapshots. The engine produces and consumes snapshot values; how the
// bytes reach disk is an implementation behind SnapshotStore.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/louisbranch/clickforge/internal/progression/snapshot"
)

// ErrNotFound indicates no save exists for the requested slot.
var ErrNotFound = errors.New("save not found")

// SavedSnapshot pairs a snapshot with the instant it was written. The
// saved-at time is what the session uses to compute the offline gap.
type SavedSnapshot struct {
	Snapshot snapshot.Snapshot
	SavedAt  time.Time
}

// SnapshotStore persists progression snapshots by save slot.
type SnapshotStore interface {
	// Save writes the snapshot for slot, replacing any previous save.
	Save(ctx context.Context, slot string, snap snapshot.Snapshot, savedAt time.Time) error
	// Load reads the snapshot for slot, or ErrNotFound.
	Load(ctx context.Context, slot string) (SavedSnapshot, error)
}
