// Package session runs one arena game: it owns the scene and pipeline of a
// run and the channels that connect them to a display surface.
package session

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/overlay-arena/internal/config"
	"github.com/vovakirdan/overlay-arena/internal/core"
	"github.com/vovakirdan/overlay-arena/internal/frame"
	"github.com/vovakirdan/overlay-arena/internal/games/arena"
	"github.com/vovakirdan/overlay-arena/internal/pipeline"
	"github.com/vovakirdan/overlay-arena/internal/storage"
)

// RunConfig configures one arena run.
type RunConfig struct {
	Arena      config.ArenaConfig
	Difficulty string         // Preset name, recorded with the result
	Source     string         // "local", "ssh" or "window"
	Store      *storage.Store // Optional; results are saved when set
	Logger     *log.Logger    // Optional; logs are discarded when nil
}

// Run owns the scene and pipeline of one session and the channels that
// connect them to a display surface.
type Run struct {
	cfg     RunConfig
	scene   *arena.Scene
	pipe    *pipeline.Pipeline
	input   *pipeline.ChannelInput
	surface *pipeline.ChannelSurface
	slots   *core.SlotTable
	logger  *log.Logger

	cancel    context.CancelFunc
	startOnce sync.Once
	done      chan struct{}
	result    pipeline.Result
	err       error
	runID     string
}

// NewRun builds the scene, encoder and pipeline for cfg.
func NewRun(cfg RunConfig) (*Run, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if cfg.Source == "" {
		cfg.Source = "local"
	}

	scene, enc, err := build(cfg.Arena, logger)
	if err != nil {
		return nil, err
	}

	r := &Run{
		cfg:     cfg,
		scene:   scene,
		input:   pipeline.NewChannelInput(64),
		surface: pipeline.NewChannelSurface(2),
		slots:   core.DefaultSlots(),
		logger:  logger,
		done:    make(chan struct{}),
	}

	pcfg := pipeline.Config{
		TickInterval: cfg.Arena.Timing.TickInterval(),
		Strict:       cfg.Arena.Timing.Strict(),
		InboxSize:    64,
	}
	r.pipe = pipeline.New(pcfg, scene, enc, r.input, r.surface,
		pipeline.WithSlots(r.slots),
		pipeline.WithLogger(logger),
	)
	return r, nil
}

// Start runs the pipeline in the background. Calling Start twice is a no-op.
func (r *Run) Start(ctx context.Context) {
	r.startOnce.Do(func() {
		ctx, r.cancel = context.WithCancel(ctx)
		go func() {
			defer close(r.done)
			r.result, r.err = r.pipe.Run(ctx)
			if r.err != nil {
				r.logger.Error("run failed", "error", r.err)
			}
			r.save()
		}()
	})
}

// Stop cancels the run and closes its channels. Safe to call multiple times.
func (r *Run) Stop() {
	if r.cancel != nil {
		r.cancel()
	}
	r.input.Close()
	r.surface.Close()
}

// Wait blocks until the run is over and returns its outcome.
func (r *Run) Wait() (pipeline.Result, error) {
	<-r.done
	return r.result, r.err
}

// Done returns a channel that closes when the pipeline has returned.
func (r *Run) Done() <-chan struct{} {
	return r.done
}

// Outcome returns the result; only meaningful after Done is closed.
func (r *Run) Outcome() (pipeline.Result, error) {
	return r.result, r.err
}

// RunID returns the stored run ID, or empty when nothing was saved.
func (r *Run) RunID() string {
	return r.runID
}

// Send queues a command as an input event on its slot.
func (r *Run) Send(cmd core.Command, value string) bool {
	id, ok := r.slots.IDOf(cmd)
	if !ok {
		return false
	}
	r.input.Send(core.Event{ID: id, Value: value})
	return true
}

// Scene exposes the simulated scene.
func (r *Run) Scene() *arena.Scene {
	return r.scene
}

// Surface exposes the frame queue.
func (r *Run) Surface() *pipeline.ChannelSurface {
	return r.surface
}

// Input exposes the event queue.
func (r *Run) Input() *pipeline.ChannelInput {
	return r.input
}

func (r *Run) save() {
	r.runID = record(r.cfg.Store, r.cfg.Source, r.cfg.Difficulty, r.result, r.logger)
}

// build creates the scene and frame encoder for an arena config.
func build(cfg config.ArenaConfig, logger *log.Logger) (*arena.Scene, *frame.Encoder, error) {
	renderer, err := arena.NewRenderer(cfg, logger.WithPrefix("compositor"))
	if err != nil {
		return nil, nil, err
	}
	scene, err := arena.NewScene(cfg, renderer)
	if err != nil {
		return nil, nil, err
	}
	enc, err := frame.NewEncoder(cfg.Encoding.Format, cfg.Encoding.Quality)
	if err != nil {
		return nil, nil, err
	}
	return scene, enc, nil
}

// record saves a finished run and returns its ID. Without a store, or on
// failure, it returns an empty ID.
func record(store *storage.Store, source, difficulty string, res pipeline.Result, logger *log.Logger) string {
	if store == nil {
		return ""
	}
	id, err := store.SaveRun(storage.RunRecord{
		Source:     source,
		Difficulty: difficulty,
		Reason:     res.Reason.String(),
		Ticks:      int64(res.Ticks),
		Frames:     int64(res.Frames),
		Kills:      res.Kills,
		Duration:   res.Duration,
	})
	if err != nil {
		logger.Warn("could not save run", "error", err)
		return ""
	}
	logger.Info("run saved", "run", id)
	return id
}

// Summary returns a one-line description of a finished run.
func Summary(res pipeline.Result) string {
	return fmt.Sprintf("%s after %d ticks · %d kills · %s",
		res.Reason, res.Ticks, res.Kills, res.Duration.Round(1e7))
}
