package tui

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/overlay-arena/internal/config"
	"github.com/vovakirdan/overlay-arena/internal/core"
	"github.com/vovakirdan/overlay-arena/internal/frame"
	"github.com/vovakirdan/overlay-arena/internal/pipeline"
	"github.com/vovakirdan/overlay-arena/internal/session"
)

// testArena returns a small, fast arena with one distant enemy.
func testArena() config.ArenaConfig {
	cfg := config.DefaultArenaConfig()
	cfg.Canvas.Width, cfg.Canvas.Height = 200, 200
	cfg.Timing.TickMS = 5
	cfg.Enemies.Count = 1
	cfg.Enemies.FirstIndex = 4
	cfg.Encoding.Format = "png"
	return cfg
}

func newTestModel(t *testing.T, opts ModelOptions) (Model, *session.Run) {
	t.Helper()
	run, err := session.NewRun(session.RunConfig{Arena: testArena()})
	if err != nil {
		t.Fatalf("NewRun failed: %v", err)
	}
	t.Cleanup(run.Stop)
	if opts.Width == 0 {
		opts.Width, opts.Height = 80, 30
	}
	return NewModel(run, opts), run
}

func testFrame(t *testing.T, seq uint64) frame.Frame {
	t.Helper()
	enc, err := frame.NewEncoder("png", 0)
	if err != nil {
		t.Fatalf("NewEncoder failed: %v", err)
	}
	f, err := enc.Frame(seq, core.NewCanvas(20, 20, core.White))
	if err != nil {
		t.Fatalf("Frame failed: %v", err)
	}
	return f
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	mm, ok := next.(Model)
	if !ok {
		t.Fatalf("got %T, expected Model", next)
	}
	return mm, cmd
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestModelForwardsCommands(t *testing.T) {
	m, run := newTestModel(t, ModelOptions{})

	m, _ = update(t, m, runeKey('w'))
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	_, _ = update(t, m, runeKey('z'))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	want := []core.Command{core.CommandUp, core.CommandAbility}
	for i, cmd := range want {
		ev, err := run.Input().Next(ctx)
		if err != nil {
			t.Fatalf("event %d: %v", i, err)
		}
		if ev.ID != core.SlotID(cmd) {
			t.Errorf("event %d: got slot %d, expected %d", i, ev.ID, core.SlotID(cmd))
		}
	}

	// The unbound key must not produce an event
	short, cancelShort := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancelShort()
	if ev, err := run.Input().Next(short); err == nil {
		t.Errorf("got unexpected event %+v", ev)
	}
}

func TestModelShowsFrames(t *testing.T) {
	m, _ := newTestModel(t, ModelOptions{})

	if view := m.View(); !strings.Contains(view, "waiting") {
		t.Errorf("expected a waiting message before the first frame, got %q", view)
	}

	m, cmd := update(t, m, FrameMsg(testFrame(t, 7)))
	if cmd == nil {
		t.Error("expected the model to wait for the next frame")
	}
	if m.last.Seq != 7 {
		t.Errorf("got frame %d, expected 7", m.last.Seq)
	}
	view := m.View()
	if !strings.Contains(view, halfBlock) {
		t.Error("expected the frame to be drawn with half blocks")
	}
	if !strings.Contains(view, "frame 7") {
		t.Error("expected the status line to show the frame number")
	}
}

func TestModelBadFrame(t *testing.T) {
	m, _ := newTestModel(t, ModelOptions{})
	m, _ = update(t, m, FrameMsg(frame.Frame{Seq: 3, Format: "png", Payload: "!!"}))
	if m.img != nil {
		t.Error("a bad frame must not replace the image")
	}
	if !strings.Contains(m.status, "bad frame 3") {
		t.Errorf("got status %q", m.status)
	}
}

func TestModelHelpToggle(t *testing.T) {
	m, _ := newTestModel(t, ModelOptions{Width: 200, Height: 40})
	short := m.View()

	m, _ = update(t, m, runeKey('?'))
	if !m.help.ShowAll {
		t.Fatal("expected full help after ?")
	}
	if full := m.View(); !strings.Contains(full, "down-right") || strings.Contains(short, "down-right") {
		t.Error("expected diagonal bindings only in the full help")
	}
}

func TestModelQuitsOnExit(t *testing.T) {
	m, _ := newTestModel(t, ModelOptions{})
	m, cmd := update(t, m, RunEndedMsg{Result: pipeline.Result{Reason: pipeline.ReasonExit}})
	if !isQuit(cmd) {
		t.Error("expected the program to quit after an exit")
	}
	if m.View() != "" {
		t.Error("expected an empty view when quitting")
	}
}

func TestModelFinalScreen(t *testing.T) {
	m, _ := newTestModel(t, ModelOptions{})
	m, cmd := update(t, m, RunEndedMsg{Result: pipeline.Result{Reason: pipeline.ReasonGameOver, Ticks: 12, Kills: 2}})
	if cmd != nil {
		t.Error("expected the final screen to stay up")
	}
	if !strings.Contains(m.status, "game over after 12 ticks") {
		t.Errorf("got status %q", m.status)
	}

	_, cmd = update(t, m, runeKey('w'))
	if !isQuit(cmd) {
		t.Error("expected any key to leave the final screen")
	}
}

func TestModelCopyDisabled(t *testing.T) {
	m, _ := newTestModel(t, ModelOptions{})
	m, _ = update(t, m, FrameMsg(testFrame(t, 1)))
	m, _ = update(t, m, runeKey('c'))
	if m.status != "clipboard unavailable" {
		t.Errorf("got status %q", m.status)
	}
}

func TestModelSaveFrame(t *testing.T) {
	dir := t.TempDir()
	m, _ := newTestModel(t, ModelOptions{ScreenshotDir: dir})

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	if m.status != "no frame yet" {
		t.Errorf("got status %q", m.status)
	}

	m, _ = update(t, m, FrameMsg(testFrame(t, 4)))
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	if !strings.HasPrefix(m.status, "saved ") {
		t.Fatalf("got status %q", m.status)
	}

	path := strings.TrimPrefix(m.status, "saved ")
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	// PNG signature
	if !strings.HasPrefix(string(raw), "\x89PNG") {
		t.Error("expected the saved file to be a PNG image")
	}
	if !strings.HasSuffix(path, "_000004.png") {
		t.Errorf("got path %q", path)
	}
}
