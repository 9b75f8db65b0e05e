package storage

import (
	"os"
	"path/filepath"
	"testing"
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

func won(level, secs int) LevelResult {
	return LevelResult{RunID: "run", Player: "alice", Level: level, SecretLen: 3, Outcome: OutcomeWon, ElapsedSecs: secs}
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

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

func TestStoreSaveAndBestTimes(t *testing.T) {
	store := openTestStore(t)

	for _, r := range []LevelResult{won(2, 30), won(2, 12), won(2, 45), won(1, 5)} {
		if _, err := store.SaveResult(r); err != nil {
			t.Fatalf("SaveResult() failed: %v", err)
		}
	}
	timeout := LevelResult{RunID: "run", Level: 2, SecretLen: 3, Outcome: OutcomeTimedOut, ElapsedSecs: 60}
	if _, err := store.SaveResult(timeout); err != nil {
		t.Fatalf("SaveResult() failed: %v", err)
	}

	best, err := store.BestTimes(2, 10)
	if err != nil {
		t.Fatalf("BestTimes() failed: %v", err)
	}
	if len(best) != 3 {
		t.Fatalf("Expected 3 clears of level 2, got %d", len(best))
	}
	// Should be sorted fastest first, timeouts excluded
	if best[0].ElapsedSecs != 12 || best[1].ElapsedSecs != 30 || best[2].ElapsedSecs != 45 {
		t.Errorf("Best times not in expected order: %+v", best)
	}
	if best[0].Player != "alice" || best[0].Outcome != OutcomeWon || best[0].SecretLen != 3 {
		t.Errorf("Row fields not round-tripped: %+v", best[0])
	}
}

func TestStoreBestTimesLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 5; i > 0; i-- {
		store.SaveResult(won(1, i*10))
	}

	best, err := store.BestTimes(1, 3)
	if err != nil {
		t.Fatalf("BestTimes() failed: %v", err)
	}
	if len(best) != 3 {
		t.Errorf("Expected 3 results with limit, got %d", len(best))
	}
	if best[0].ElapsedSecs != 10 || best[2].ElapsedSecs != 30 {
		t.Errorf("Unexpected order: %+v", best)
	}
}

func TestStoreBestTime(t *testing.T) {
	store := openTestStore(t)

	if _, ok, err := store.BestTime(1); err != nil || ok {
		t.Fatalf("BestTime() on empty store = ok %v, err %v", ok, err)
	}

	store.SaveResult(won(1, 20))
	store.SaveResult(won(1, 8))
	store.SaveResult(LevelResult{Level: 1, Outcome: OutcomeTimedOut, ElapsedSecs: 60})

	secs, ok, err := store.BestTime(1)
	if err != nil || !ok || secs != 8 {
		t.Errorf("BestTime() = %d, %v, %v; want 8", secs, ok, err)
	}
}

func TestStoreSaveResultValidation(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.SaveResult(LevelResult{Level: 1, Outcome: "abandoned"}); err == nil {
		t.Error("unknown outcome should be rejected")
	}
}

func TestStoreRunID(t *testing.T) {
	store := openTestStore(t)

	store.SaveResult(LevelResult{Level: 1, Outcome: OutcomeWon, ElapsedSecs: 9})
	store.SaveResult(LevelResult{Level: 1, Outcome: OutcomeWon, ElapsedSecs: 7})

	recent, err := store.RecentResults(10)
	if err != nil {
		t.Fatalf("RecentResults() failed: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(recent))
	}
	if recent[0].RunID == "" || recent[0].RunID == recent[1].RunID {
		t.Errorf("missing run ids should be generated uniquely: %q %q", recent[0].RunID, recent[1].RunID)
	}
	if recent[0].ElapsedSecs != 7 {
		t.Error("RecentResults should list the newest first")
	}

	run, err := store.RunResults(recent[1].RunID)
	if err != nil || len(run) != 1 || run[0].ElapsedSecs != 9 {
		t.Errorf("RunResults() = %+v, %v", run, err)
	}
}

func TestStoreReversedFlag(t *testing.T) {
	store := openTestStore(t)

	r := won(3, 25)
	r.Reversed = true
	store.SaveResult(r)

	best, _ := store.BestTimes(3, 1)
	if len(best) != 1 || !best[0].Reversed {
		t.Errorf("reversed flag lost: %+v", best)
	}
}

func TestStoreClearResults(t *testing.T) {
	store := openTestStore(t)

	store.SaveResult(won(1, 10))
	store.SaveResult(won(1, 20))
	store.SaveResult(won(2, 30))

	// Clear only level 1
	if err := store.ClearResults(1); err != nil {
		t.Fatalf("ClearResults() failed: %v", err)
	}
	if l1, _ := store.BestTimes(1, 10); len(l1) != 0 {
		t.Errorf("Expected 0 level 1 results after clear, got %d", len(l1))
	}
	if l2, _ := store.BestTimes(2, 10); len(l2) != 1 {
		t.Error("Level 2 results should not be affected by clearing level 1")
	}

	if err := store.ClearResults(0); err != nil {
		t.Fatalf("ClearResults(0) failed: %v", err)
	}
	if all, _ := store.RecentResults(10); len(all) != 0 {
		t.Errorf("Expected empty store, got %d results", len(all))
	}
}

func TestStoreLevelStats(t *testing.T) {
	store := openTestStore(t)

	store.SaveResult(won(2, 10))
	store.SaveResult(won(2, 30))
	store.SaveResult(LevelResult{Level: 2, Outcome: OutcomeTimedOut, ElapsedSecs: 60})
	store.SaveResult(won(3, 40))

	stats, err := store.GetLevelStats(2)
	if err != nil {
		t.Fatalf("GetLevelStats() failed: %v", err)
	}
	if stats.Attempts != 3 || stats.Wins != 2 || stats.TimeOuts != 1 {
		t.Errorf("counts = %+v", stats)
	}
	if stats.BestSecs != 10 || stats.AvgSecs != 20 {
		t.Errorf("times = best %d avg %v", stats.BestSecs, stats.AvgSecs)
	}

	empty, err := store.GetLevelStats(1)
	if err != nil {
		t.Fatalf("GetLevelStats() failed: %v", err)
	}
	if empty.Attempts != 0 || empty.BestSecs != 0 {
		t.Errorf("unplayed level stats = %+v", empty)
	}

	all, err := store.GetAllLevelStats()
	if err != nil {
		t.Fatalf("GetAllLevelStats() failed: %v", err)
	}
	if len(all) != 2 || all[3] == nil || all[3].Wins != 1 {
		t.Errorf("GetAllLevelStats() = %v", all)
	}
}

func TestStoreNestedPath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	// Verify nested directories were created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}
