package session

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/overlay-arena/internal/config"
	"github.com/vovakirdan/overlay-arena/internal/core"
	"github.com/vovakirdan/overlay-arena/internal/frame"
	"github.com/vovakirdan/overlay-arena/internal/pipeline"
	"github.com/vovakirdan/overlay-arena/internal/storage"
)

// HeadlessConfig configures a run that writes frames to a directory.
type HeadlessConfig struct {
	Arena      config.ArenaConfig
	Script     []core.Event  // Replayed one per Interval, then the input is exhausted
	Interval   time.Duration // Delay between scripted events; 0 = one tick
	MaxFrames  uint64        // 0 = until the run ends on its own
	OutDir     string
	Difficulty string
	Store      *storage.Store // Optional; the run is saved with source "render"
	Logger     *log.Logger
}

// HeadlessResult is the outcome of RunHeadless.
type HeadlessResult struct {
	pipeline.Result
	Files []string // Written frame files in sequence order
	RunID string
}

// FrameFileName names the file for frame f.
func FrameFileName(f frame.Frame) string {
	return fmt.Sprintf("frame_%06d.%s", f.Seq, f.Format)
}

// RunHeadless drives a run with a scripted input and writes every frame
// as an image file under cfg.OutDir.
func RunHeadless(ctx context.Context, cfg HeadlessConfig) (HeadlessResult, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if cfg.OutDir == "" {
		cfg.OutDir = "."
	}
	if err := os.MkdirAll(cfg.OutDir, 0o755); err != nil {
		return HeadlessResult{}, fmt.Errorf("session: cannot create output directory: %w", err)
	}

	scene, enc, err := build(cfg.Arena, logger)
	if err != nil {
		return HeadlessResult{}, err
	}

	interval := cfg.Interval
	if interval <= 0 {
		interval = cfg.Arena.Timing.TickInterval()
	}

	// Show runs on the driving loop only
	var files []string
	surface := pipeline.SurfaceFunc(func(f frame.Frame) error {
		raw, err := f.Bytes()
		if err != nil {
			return err
		}
		path := filepath.Join(cfg.OutDir, FrameFileName(f))
		if err := os.WriteFile(path, raw, 0o644); err != nil {
			return fmt.Errorf("session: write frame: %w", err)
		}
		files = append(files, path)
		return nil
	})

	pcfg := pipeline.Config{
		TickInterval: cfg.Arena.Timing.TickInterval(),
		Strict:       cfg.Arena.Timing.Strict(),
		MaxFrames:    cfg.MaxFrames,
	}
	p := pipeline.New(pcfg, scene, enc, pipeline.NewScriptInput(cfg.Script, interval), surface,
		pipeline.WithLogger(logger),
	)

	res, err := p.Run(ctx)
	out := HeadlessResult{Result: res, Files: files}
	if err != nil {
		return out, err
	}

	out.RunID = record(cfg.Store, "render", cfg.Difficulty, res, logger)
	return out, nil
}
