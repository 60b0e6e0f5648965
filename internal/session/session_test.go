package session

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/overlay-arena/internal/config"
	"github.com/vovakirdan/overlay-arena/internal/core"
	"github.com/vovakirdan/overlay-arena/internal/frame"
	"github.com/vovakirdan/overlay-arena/internal/pipeline"
	"github.com/vovakirdan/overlay-arena/internal/storage"
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

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func waitRun(t *testing.T, run *Run) (pipeline.Result, error) {
	t.Helper()
	select {
	case <-run.Done():
		return run.Outcome()
	case <-time.After(5 * time.Second):
		t.Fatal("run did not finish")
		return pipeline.Result{}, nil
	}
}

func TestRunExitIsSaved(t *testing.T) {
	store := openStore(t)
	run, err := NewRun(RunConfig{Arena: testArena(), Difficulty: "normal", Source: "local", Store: store})
	if err != nil {
		t.Fatalf("NewRun failed: %v", err)
	}

	run.Start(context.Background())
	if !run.Send(core.CommandExit, "q") {
		t.Fatal("exit command has no slot")
	}

	res, err := waitRun(t, run)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if res.Reason != pipeline.ReasonExit {
		t.Errorf("got reason %v, expected exit", res.Reason)
	}

	if run.RunID() == "" {
		t.Fatal("run was not saved")
	}
	rec, err := store.RunByID(run.RunID())
	if err != nil || rec == nil {
		t.Fatalf("RunByID: got %v, %v", rec, err)
	}
	if rec.Reason != "exit" || rec.Source != "local" || rec.Difficulty != "normal" {
		t.Errorf("got %+v, expected an exit run from local/normal", rec)
	}
}

func TestRunGameOver(t *testing.T) {
	cfg := testArena()
	// Spawns touching the player; it closes in on the first step
	cfg.Enemies.FirstIndex = 0

	run, err := NewRun(RunConfig{Arena: cfg})
	if err != nil {
		t.Fatalf("NewRun failed: %v", err)
	}
	run.Start(context.Background())

	res, err := waitRun(t, run)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if res.Reason != pipeline.ReasonGameOver {
		t.Errorf("got reason %v, expected game over", res.Reason)
	}
	if res.Frames < 1 {
		t.Errorf("got %d frames, expected the final frame to be shown", res.Frames)
	}

	// The final frame is still queued for the surface
	var last *frame.Frame
	for done := false; !done; {
		select {
		case f := <-run.Surface().Frames():
			last = &f
		default:
			done = true
		}
	}
	if last == nil {
		t.Fatal("no frame was queued")
	}
	if !last.GameOver {
		t.Error("last frame should be marked game over")
	}
}

func TestRunStop(t *testing.T) {
	run, err := NewRun(RunConfig{Arena: testArena()})
	if err != nil {
		t.Fatalf("NewRun failed: %v", err)
	}
	run.Start(context.Background())
	run.Start(context.Background()) // no-op

	run.Stop()
	run.Stop()

	res, err := waitRun(t, run)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if res.Reason != pipeline.ReasonCancelled && res.Reason != pipeline.ReasonClosed {
		t.Errorf("got reason %v, expected cancelled or closed", res.Reason)
	}
}

func TestNewRunRejectsBadConfig(t *testing.T) {
	cfg := testArena()
	cfg.Encoding.Format = "gif"
	if _, err := NewRun(RunConfig{Arena: cfg}); err == nil {
		t.Error("expected an error for an unknown format")
	}

	cfg = testArena()
	cfg.Canvas.Background = "not-a-color"
	if _, err := NewRun(RunConfig{Arena: cfg}); err == nil {
		t.Error("expected an error for a bad background")
	}
}

func TestSummary(t *testing.T) {
	got := Summary(pipeline.Result{Reason: pipeline.ReasonCleared, Ticks: 42, Kills: 3, Duration: 1500 * time.Millisecond})
	want := "cleared after 42 ticks · 3 kills · 1.5s"
	if got != want {
		t.Errorf("got %q, expected %q", got, want)
	}
}
