package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/tile-duel/internal/games/duel"
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

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	for _, score := range []int{256, 128, 512} {
		if _, err := store.SaveScore("duel_2048", score); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}
	if _, err := store.SaveScore("duel_4096", 1024); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	scores, err := store.TopScores("duel_2048", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("TopScores() = %d entries, want 3", len(scores))
	}

	// Sorted descending
	want := []int{512, 256, 128}
	for i, w := range want {
		if scores[i].Score != w {
			t.Errorf("scores[%d] = %d, want %d", i, scores[i].Score, w)
		}
	}

	other, err := store.TopScores("duel_4096", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(other) != 1 {
		t.Errorf("TopScores(duel_4096) = %d entries, want 1", len(other))
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		store.SaveScore("duel_1024", 64<<i)
	}

	scores, err := store.TopScores("duel_1024", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("TopScores() = %d entries, want 3", len(scores))
	}
	if scores[0].Score != 1024 || scores[1].Score != 512 || scores[2].Score != 256 {
		t.Errorf("scores not in expected order: %v", scores)
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("duel_2048")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("HighScore() = %d for an empty game, want 0", high)
	}

	store.SaveScore("duel_2048", 128)
	store.SaveScore("duel_2048", 2048)
	store.SaveScore("duel_2048", 512)

	high, err = store.HighScore("duel_2048")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 2048 {
		t.Errorf("HighScore() = %d, want 2048", high)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("duel_2048", 128)
	store.SaveScore("duel_2048", 256)
	store.SaveScore("duel_4096", 512)
	store.SaveMatch(MatchRecord{GameID: "duel_2048", Target: 2048, Difficulty: "easy", Winner: "ai", Reason: "score"})

	if err := store.ClearScores("duel_2048"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	cleared, _ := store.TopScores("duel_2048", 10)
	if len(cleared) != 0 {
		t.Errorf("TopScores() after clear = %d entries, want 0", len(cleared))
	}
	matches, _ := store.RecentMatches("duel_2048", 10)
	if len(matches) != 0 {
		t.Errorf("RecentMatches() after clear = %d entries, want 0", len(matches))
	}

	other, _ := store.TopScores("duel_4096", 10)
	if len(other) != 1 {
		t.Error("clearing duel_2048 should not touch duel_4096")
	}
}

func TestStoreExpandHomePath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := Open("~/.duel/nested/scores.db")
	if err != nil {
		t.Fatalf("Open() with home path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(filepath.Join(home, ".duel", "nested", "scores.db")); os.IsNotExist(err) {
		t.Error("database file was not created under the home directory")
	}
}

func TestStoreSaveMatch(t *testing.T) {
	store := openTestStore(t)

	first := MatchRecord{
		GameID:       "duel_2048",
		Target:       2048,
		Difficulty:   "hard",
		Winner:       "ai",
		Reason:       "score",
		PlayerScore:  512,
		AIScore:      1024,
		PlayerMoves:  210,
		AIMoves:      260,
		PlayerSecs:   95,
		AISecs:       80,
		PlayerWeight: 142.5,
		AIWeight:     177.5,
	}
	id, err := store.SaveMatch(first)
	if err != nil {
		t.Fatalf("SaveMatch() failed: %v", err)
	}

	got, err := store.MatchByID(id)
	if err != nil {
		t.Fatalf("MatchByID() failed: %v", err)
	}
	if got == nil {
		t.Fatal("MatchByID() returned nil for a saved match")
	}
	first.ID = id
	first.CreatedAt = got.CreatedAt
	if *got != first {
		t.Errorf("MatchByID() = %+v, want %+v", *got, first)
	}

	missing, err := store.MatchByID(id + 100)
	if err != nil || missing != nil {
		t.Errorf("MatchByID(missing) = (%v, %v), want (nil, nil)", missing, err)
	}
}

func TestStoreRecentMatches(t *testing.T) {
	store := openTestStore(t)

	for i, game := range []string{"duel_1024", "duel_2048", "duel_2048", "duel_4096"} {
		if _, err := store.SaveMatch(MatchRecord{GameID: game, Target: 1024, Difficulty: "easy", Winner: "tie", Reason: "weight", PlayerMoves: i}); err != nil {
			t.Fatalf("SaveMatch() failed: %v", err)
		}
	}

	all, err := store.RecentMatches("", 10)
	if err != nil {
		t.Fatalf("RecentMatches() failed: %v", err)
	}
	if len(all) != 4 {
		t.Fatalf("RecentMatches(all) = %d records, want 4", len(all))
	}
	if all[0].PlayerMoves != 3 {
		t.Errorf("newest match first: got moves %d, want 3", all[0].PlayerMoves)
	}

	only, err := store.RecentMatches("duel_2048", 1)
	if err != nil {
		t.Fatalf("RecentMatches() failed: %v", err)
	}
	if len(only) != 1 || only[0].GameID != "duel_2048" || only[0].PlayerMoves != 2 {
		t.Errorf("RecentMatches(duel_2048, 1) = %+v", only)
	}
}

func TestStoreSaveMatchResult(t *testing.T) {
	store := openTestStore(t)

	rec := duel.Record{
		GameID:     "duel_1024",
		Target:     1024,
		Difficulty: "medium",
		Result: duel.Result{
			Kind:         duel.PlayerWins,
			Reason:       duel.ReasonTarget,
			PlayerScore:  1024,
			AIScore:      256,
			PlayerMoves:  150,
			AIMoves:      170,
			PlayerWeight: 108,
			AIWeight:     122,
		},
		PlayerSeconds: 70,
		AISeconds:     70,
	}
	if err := store.SaveMatchResult(rec); err != nil {
		t.Fatalf("SaveMatchResult() failed: %v", err)
	}

	matches, err := store.RecentMatches("duel_1024", 1)
	if err != nil || len(matches) != 1 {
		t.Fatalf("RecentMatches() = (%v, %v)", matches, err)
	}
	m := matches[0]
	if m.Winner != "player" || m.Reason != "target" || m.PlayerScore != 1024 || m.PlayerSecs != 70 {
		t.Errorf("saved match = %+v", m)
	}

	stats, err := store.GetGameStats("duel_1024")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.Matches != 1 || stats.PlayerWins != 1 || stats.AIWins != 0 || stats.HighScore != 1024 {
		t.Errorf("GetGameStats() = %+v", stats)
	}
}

func TestStoreGameStatsEmpty(t *testing.T) {
	store := openTestStore(t)

	stats, err := store.GetGameStats("duel_4096")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.Matches != 0 || !stats.LastPlayed.IsZero() {
		t.Errorf("GetGameStats() on empty table = %+v", stats)
	}
}
