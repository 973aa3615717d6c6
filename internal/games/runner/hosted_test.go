package runner_test

import (
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mdlunited/arcade/internal/core"
	"github.com/mdlunited/arcade/internal/games/runner"
	"github.com/mdlunited/arcade/internal/platform/tui"
	"github.com/mdlunited/arcade/internal/storage"
)

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// runUntilOver feeds ticks until the run ends.
func runUntilOver(t *testing.T, m tui.GameModel, tick tea.Msg) tui.GameModel {
	t.Helper()
	for i := 0; i < 100000; i++ {
		next, _ := m.Update(tick)
		m = next.(tui.GameModel)
		if m.State().GameOver {
			return m
		}
	}
	t.Fatal("runner never hit an obstacle")
	return m
}

func TestHostedRevivedRunSavedOnce(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("storage.Open: %v", err)
	}
	defer store.Close()

	m := tui.NewGameModel(runner.New(), store, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 7})
	tick := m.Init()()

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(tui.GameModel)

	m = runUntilOver(t, m, tick)
	if !m.State().CanRevive {
		t.Fatalf("first death should offer a revive, got %+v", m.State())
	}
	first := m.State().Score

	next, _ = m.Update(key("v"))
	m = next.(tui.GameModel)
	next, _ = m.Update(tick)
	m = next.(tui.GameModel)
	if m.State().GameOver {
		t.Fatal("revive should resume the run")
	}

	m = runUntilOver(t, m, tick)
	if m.State().CanRevive {
		t.Fatal("second death should be final")
	}
	final := m.State().Score
	if final < first || final == 0 {
		t.Fatalf("revived run should keep its score: first %d, final %d", first, final)
	}

	scores, err := store.AllScores("dino")
	if err != nil {
		t.Fatalf("AllScores: %v", err)
	}
	if len(scores) != 1 || scores[0].Score != final {
		t.Errorf("expected one row with score %d, got %+v", final, scores)
	}

	stats, err := store.GetGameStats("dino")
	if err != nil {
		t.Fatalf("GetGameStats: %v", err)
	}
	if stats.GamesCount != 1 {
		t.Errorf("GamesCount = %d, expected 1", stats.GamesCount)
	}
}
