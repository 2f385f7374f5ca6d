package tui

import (
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tile-duel/internal/config"
	"github.com/vovakirdan/tile-duel/internal/games/duel"
	"github.com/vovakirdan/tile-duel/internal/games/duel/engine"
	"github.com/vovakirdan/tile-duel/internal/storage"
)

func updateModel(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()

	next, _ := m.Update(msg)
	mm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return mm
}

// nearlyWon leaves the 1024 target on board with one legal move left to make.
func nearlyWon() engine.Board {
	var b engine.Board
	b[0][0] = 1024
	b[6][6] = 2
	return b
}

func TestModelSavesFinishedMatch(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	g := duel.New(1024)
	if err := g.Configure(config.DefaultDuelConfig(), config.DifficultyHard); err != nil {
		t.Fatalf("Configure() failed: %v", err)
	}

	m := NewModel(g, store, testRuntime())
	m.Init()
	g.Match().Player.Board = nearlyWon()
	g.Match().AI.Board = nearlyWon()

	m = updateModel(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	m = updateModel(t, m, TickMsg{})

	if !m.gameState.GameOver {
		t.Fatal("match should be over after both sides reach the target")
	}

	scores, err := store.TopScores("duel_1024", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 1 || scores[0].Score != 1024 {
		t.Errorf("scores = %+v, want one entry of 1024", scores)
	}

	matches, err := store.RecentMatches("duel_1024", 10)
	if err != nil {
		t.Fatalf("RecentMatches() failed: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("len(matches) = %d, want 1", len(matches))
	}
	if matches[0].Winner != "player" || matches[0].Difficulty != "hard" {
		t.Errorf("match = %+v, want player win on hard", matches[0])
	}

	// Further ticks do not save twice
	m = updateModel(t, m, TickMsg{})
	if scores, _ := store.TopScores("duel_1024", 10); len(scores) != 1 {
		t.Errorf("len(scores) = %d after another tick, want 1", len(scores))
	}
}

func TestModelEscPausesThenLeaves(t *testing.T) {
	m := NewModel(duel.New(2048), nil, testRuntime())
	m.Init()

	m = updateModel(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	m = updateModel(t, m, TickMsg{})
	if !m.gameState.Paused {
		t.Fatal("esc should pause a running game")
	}

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(Model)
	if !m.BackToMenu() || cmd == nil {
		t.Error("esc while paused should leave the game")
	}
}

func TestModelResizeKeepsMatch(t *testing.T) {
	g := duel.New(2048)
	m := NewModel(g, nil, testRuntime())
	m.Init()

	m = updateModel(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	m = updateModel(t, m, TickMsg{})
	match := g.Match()

	m = updateModel(t, m, tea.WindowSizeMsg{Width: 130, Height: 45})
	if g.Match() != match {
		t.Error("resize should not restart the match")
	}
	if m.screen.Width() != 130 || m.screen.Height() != 45 {
		t.Errorf("screen = %dx%d, want 130x45", m.screen.Width(), m.screen.Height())
	}
}

func TestSessionMenuToGameAndBack(t *testing.T) {
	s := NewSessionModel(nil, testRuntime(), config.DefaultDuelConfig(), "tester")

	send := func(msg tea.Msg) {
		t.Helper()
		next, _ := s.Update(msg)
		sm, ok := next.(SessionModel)
		if !ok {
			t.Fatalf("Update returned %T, want SessionModel", next)
		}
		s = sm
	}

	enter := tea.KeyMsg{Type: tea.KeyEnter}
	esc := tea.KeyMsg{Type: tea.KeyEsc}

	send(enter) // Duel 1024
	send(enter) // default difficulty
	if s.screen != screenGame || s.gameModel == nil {
		t.Fatal("session should be in a game")
	}

	send(esc)
	send(TickMsg{})
	send(esc)
	if s.screen != screenMenu {
		t.Errorf("screen = %v, want menu", s.screen)
	}
	if s.quitting {
		t.Error("leaving a game should not end the session")
	}

	send(tea.KeyMsg{Type: tea.KeyTab})
	if s.screen != screenScoreboard {
		t.Fatalf("screen = %v, want scoreboard", s.screen)
	}
	send(esc)
	if s.screen != screenMenu {
		t.Errorf("screen = %v, want menu after scoreboard", s.screen)
	}
}
