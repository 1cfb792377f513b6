package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/louisbranch/clickforge/internal/progression/snapshot"
	"github.com/louisbranch/clickforge/internal/storage"
)

func openTempStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "saves.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func sampleSnapshot() snapshot.Snapshot {
	snap := snapshot.Snapshot{
		Upgrades: []snapshot.UpgradeLevel{
			{ID: "click_power", Level: 4},
			{ID: "auto_income", Level: 2},
		},
		Inventory: []snapshot.ItemStack{
			{ID: "ore", Count: 12},
		},
		Balances: []snapshot.Balance{
			{Currency: "coins", Amount: 420.5},
		},
		Statistics: snapshot.Statistics{
			TotalClicks:      321,
			TotalMoneyEarned: 9876.5,
		},
		TriggeredEventIDs: []string{"first_hundred_clicks"},
		UnlockedMenus:     []string{"shop"},
	}
	snap.Normalize()
	return snap
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	store := openTempStore(t)
	savedAt := time.Date(2026, 3, 2, 18, 0, 0, 0, time.UTC)
	snap := sampleSnapshot()

	if err := store.Save(context.Background(), "slot-1", snap, savedAt); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := store.Load(context.Background(), "slot-1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !loaded.SavedAt.Equal(savedAt) {
		t.Fatalf("saved at = %v, want %v", loaded.SavedAt, savedAt)
	}
	if !reflect.DeepEqual(loaded.Snapshot, snap) {
		t.Fatalf("snapshot round-trip mismatch:\n got %+v\nwant %+v", loaded.Snapshot, snap)
	}
}

func TestSave_OverwritesSlot(t *testing.T) {
	store := openTempStore(t)
	first := sampleSnapshot()
	second := sampleSnapshot()
	second.SetUpgradeLevel("click_power", 9)

	t0 := time.Date(2026, 3, 2, 18, 0, 0, 0, time.UTC)
	if err := store.Save(context.Background(), "slot-1", first, t0); err != nil {
		t.Fatalf("first save: %v", err)
	}
	if err := store.Save(context.Background(), "slot-1", second, t0.Add(time.Minute)); err != nil {
		t.Fatalf("second save: %v", err)
	}

	loaded, err := store.Load(context.Background(), "slot-1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := loaded.Snapshot.UpgradeLevelOf("click_power"); got != 9 {
		t.Fatalf("level = %d, want 9 (overwritten)", got)
	}
	if !loaded.SavedAt.Equal(t0.Add(time.Minute)) {
		t.Fatalf("saved at = %v, want later write", loaded.SavedAt)
	}
}

func TestLoad_MissingSlot(t *testing.T) {
	store := openTempStore(t)
	_, err := store.Load(context.Background(), "empty-slot")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("load error = %v, want ErrNotFound", err)
	}
}

func TestSlotsAreIndependent(t *testing.T) {
	store := openTempStore(t)
	now := time.Now().UTC()

	a := sampleSnapshot()
	b := sampleSnapshot()
	b.SetItemCount("ore", 99)

	if err := store.Save(context.Background(), "a", a, now); err != nil {
		t.Fatalf("save a: %v", err)
	}
	if err := store.Save(context.Background(), "b", b, now); err != nil {
		t.Fatalf("save b: %v", err)
	}

	loadedA, err := store.Load(context.Background(), "a")
	if err != nil {
		t.Fatalf("load a: %v", err)
	}
	if got := loadedA.Snapshot.ItemCountOf("ore"); got != 12 {
		t.Fatalf("slot a ore = %d, want 12", got)
	}
}

func TestValidation(t *testing.T) {
	if _, err := Open(""); err == nil {
		t.Fatal("Open(empty path) succeeded")
	}

	store := openTempStore(t)
	if err := store.Save(context.Background(), "  ", snapshot.Snapshot{}, time.Now()); err == nil {
		t.Fatal("Save with blank slot succeeded")
	}
	if _, err := store.Load(context.Background(), ""); err == nil {
		t.Fatal("Load with empty slot succeeded")
	}
}
