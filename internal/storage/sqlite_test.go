package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestSaveRunAssignsUUID(t *testing.T) {
	store := openTestStore(t)

	id, err := store.SaveRun(RunRecord{Reason: "exit", Kills: 3, Ticks: 90, Duration: 3 * time.Second})
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if _, err := uuid.Parse(id); err != nil {
		t.Errorf("run ID %q is not a UUID: %v", id, err)
	}

	r, err := store.RunByID(id)
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}
	if r == nil {
		t.Fatal("RunByID() returned nil for a saved run")
	}
	if r.Kills != 3 || r.Ticks != 90 || r.Reason != "exit" {
		t.Errorf("got %+v, expected kills 3, ticks 90, reason exit", r)
	}
	if r.Duration != 3*time.Second {
		t.Errorf("duration = %v, expected 3s", r.Duration)
	}
	if r.Source != "local" {
		t.Errorf("source = %q, expected local default", r.Source)
	}
}

func TestSaveRunKeepsGivenID(t *testing.T) {
	store := openTestStore(t)
	given := uuid.NewString()

	id, err := store.SaveRun(RunRecord{RunID: given, Reason: "cleared", Source: "ssh"})
	if err != nil {
		t.Fatal(err)
	}
	if id != given {
		t.Errorf("run ID = %q, expected %q", id, given)
	}
	if _, err := store.SaveRun(RunRecord{RunID: given, Reason: "cleared"}); err == nil {
		t.Error("SaveRun() should reject a duplicate run ID")
	}
}

func TestTopRunsOrdering(t *testing.T) {
	store := openTestStore(t)

	runs := []RunRecord{
		{Reason: "game over", Kills: 5, Ticks: 100},
		{Reason: "game over", Kills: 12, Ticks: 300},
		{Reason: "exit", Kills: 5, Ticks: 400},
		{Reason: "cleared", Kills: 31, Ticks: 900},
	}
	for _, r := range runs {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	top, err := store.TopRuns(3)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(top) != 3 {
		t.Fatalf("got %d runs, expected 3", len(top))
	}

	expected := []struct {
		kills int
		ticks int64
	}{{31, 900}, {12, 300}, {5, 400}}
	for i, want := range expected {
		if top[i].Kills != want.kills || top[i].Ticks != want.ticks {
			t.Errorf("top[%d] = kills %d ticks %d, expected kills %d ticks %d",
				i, top[i].Kills, top[i].Ticks, want.kills, want.ticks)
		}
	}

	best, err := store.BestRun()
	if err != nil {
		t.Fatal(err)
	}
	if best == nil || best.Kills != 31 {
		t.Errorf("BestRun() = %+v, expected the 31 kill run", best)
	}

	recent, err := store.RecentRuns(1)
	if err != nil {
		t.Fatal(err)
	}
	if len(recent) != 1 || recent[0].Kills != 31 {
		t.Errorf("RecentRuns(1) = %+v, expected the last saved run", recent)
	}
}

func TestEmptyStore(t *testing.T) {
	store := openTestStore(t)

	best, err := store.BestRun()
	if err != nil {
		t.Fatal(err)
	}
	if best != nil {
		t.Errorf("BestRun() = %+v, expected nil", best)
	}

	missing, err := store.RunByID("nope")
	if err != nil {
		t.Fatal(err)
	}
	if missing != nil {
		t.Errorf("RunByID() = %+v, expected nil", missing)
	}

	stats, err := store.Stats()
	if err != nil {
		t.Fatal(err)
	}
	if stats.Runs != 0 || stats.BestKills != 0 || !stats.LastPlayed.IsZero() {
		t.Errorf("Stats() = %+v, expected zero values", stats)
	}
}

func TestStats(t *testing.T) {
	store := openTestStore(t)

	for _, r := range []RunRecord{
		{Reason: "game over", Kills: 4, Ticks: 100},
		{Reason: "cleared", Kills: 31, Ticks: 500},
		{Reason: "exit", Kills: 1, Ticks: 300},
	} {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatal(err)
		}
	}

	stats, err := store.Stats()
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.Runs != 3 {
		t.Errorf("runs = %d, expected 3", stats.Runs)
	}
	if stats.TotalKills != 36 || stats.BestKills != 31 {
		t.Errorf("kills total %d best %d, expected 36 and 31", stats.TotalKills, stats.BestKills)
	}
	if stats.AvgTicks != 300 {
		t.Errorf("avg ticks = %v, expected 300", stats.AvgTicks)
	}
	if stats.Cleared != 1 || stats.GameOvers != 1 {
		t.Errorf("cleared %d game overs %d, expected 1 and 1", stats.Cleared, stats.GameOvers)
	}
}

func TestClearRuns(t *testing.T) {
	store := openTestStore(t)
	if _, err := store.SaveRun(RunRecord{Reason: "exit"}); err != nil {
		t.Fatal(err)
	}
	if err := store.ClearRuns(); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}
	runs, err := store.TopRuns(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 0 {
		t.Errorf("got %d runs after clear, expected 0", len(runs))
	}
}
