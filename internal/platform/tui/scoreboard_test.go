package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/overlay-arena/internal/storage"
)

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestRunRows(t *testing.T) {
	at := time.Date(2024, 3, 5, 14, 30, 0, 0, time.UTC)
	rows := RunRows([]storage.RunRecord{
		{Kills: 12, Ticks: 300, Reason: "cleared", Source: "ssh", CreatedAt: at},
	})
	if len(rows) != 1 {
		t.Fatalf("got %d rows, expected 1", len(rows))
	}
	want := []string{"1", "12", "300", "cleared", "ssh", "Mar 05 14:30"}
	for i, cell := range want {
		if rows[0][i] != cell {
			t.Errorf("column %d: got %q, expected %q", i, rows[0][i], cell)
		}
	}
}

func TestStatsText(t *testing.T) {
	if got := StatsText(nil); !strings.Contains(got, "no runs yet") {
		t.Errorf("got %q", got)
	}
	got := StatsText(&storage.RunStats{Runs: 3, BestKills: 9, TotalKills: 14, AvgTicks: 120.4, Cleared: 1, GameOvers: 2})
	for _, want := range []string{"runs       3", "best kills 9", "avg ticks  120"} {
		if !strings.Contains(got, want) {
			t.Errorf("expected %q in %q", want, got)
		}
	}
}

func TestScoreboardViews(t *testing.T) {
	store := openStore(t)
	for _, r := range []storage.RunRecord{
		{Kills: 1, Ticks: 10, Reason: "game over"},
		{Kills: 5, Ticks: 50, Reason: "cleared"},
	} {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun failed: %v", err)
		}
	}

	m := NewScoreboardModel(store, 120, 30)
	if len(m.runs) != 2 || m.runs[0].Kills != 5 {
		t.Fatalf("expected top runs ordered by kills, got %+v", m.runs)
	}
	if !strings.Contains(m.View(), "ARENA RUNS - Top") {
		t.Error("expected the top view title")
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(ScoreboardModel)
	if m.view != ViewRecent {
		t.Fatalf("got view %v, expected recent", m.view)
	}
	if m.runs[0].Kills != 5 {
		t.Errorf("expected the newest run first, got %+v", m.runs[0])
	}

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if !isQuit(cmd) {
		t.Error("expected q to quit")
	}
	if next.View() != "" {
		t.Error("expected an empty view after quitting")
	}
}

func TestScoreboardWithoutStore(t *testing.T) {
	m := NewScoreboardModel(nil, 60, 20)
	if !strings.Contains(m.View(), "No runs database") {
		t.Error("expected a message when no store is open")
	}
}
