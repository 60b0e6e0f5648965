// Package pipeline runs the input relay, the render worker and the driving
// loop of one arena session and implements the ready/frame handshake
// between them.
package pipeline

import (
	"context"
	"errors"
	"image"
	"time"

	"github.com/vovakirdan/overlay-arena/internal/core"
	"github.com/vovakirdan/overlay-arena/internal/frame"
	"github.com/vovakirdan/overlay-arena/internal/games/arena"
)

// ErrWorkerPanic wraps a panic recovered from one of the pipeline goroutines.
var ErrWorkerPanic = errors.New("pipeline: worker panicked")

// ErrClosed is returned by sources and surfaces that have been shut down.
var ErrClosed = errors.New("pipeline: closed")

// InputSource delivers input events. Next blocks until an event arrives,
// the source is closed (ErrClosed or io.EOF) or ctx is done.
type InputSource interface {
	Next(ctx context.Context) (core.Event, error)
}

// Surface displays encoded frames. Returning ErrClosed ends the run.
type Surface interface {
	Show(f frame.Frame) error
}

// Simulation is the scene as seen by the pipeline.
type Simulation interface {
	// Apply handles a movement or ability command under the scene lock.
	Apply(cmd core.Command) bool

	// Tick steps the scene and renders it onto dst under the scene lock.
	Tick(dst *image.RGBA) (arena.StepResult, error)

	// NewCanvas returns a fresh background canvas.
	NewCanvas() *image.RGBA

	// Kills returns the number of enemies removed so far.
	Kills() int
}

// Encoder turns a canvas into a frame.
type Encoder interface {
	Frame(seq uint64, img image.Image) (frame.Frame, error)
}

// Message is carried on the inbox channel of the driving loop.
type Message interface {
	pipelineMessage()
}

// InputMsg relays one input event.
type InputMsg struct {
	Event core.Event
}

func (InputMsg) pipelineMessage() {}

// FrameMsg carries a rendered frame and the step that produced it.
type FrameMsg struct {
	Frame frame.Frame
	Step  arena.StepResult
}

func (FrameMsg) pipelineMessage() {}

// GameOverMsg precedes the frame of the step in which the player was hit.
type GameOverMsg struct {
	Tick uint64
}

func (GameOverMsg) pipelineMessage() {}

// EndReason describes why a run ended.
type EndReason int

const (
	ReasonCancelled EndReason = iota // Parent context cancelled or a worker failed
	ReasonExit                       // Exit command
	ReasonGameOver                   // Player touched an enemy
	ReasonCleared                    // Every enemy was purged
	ReasonLimit                      // Frame limit reached
	ReasonClosed                     // Display surface went away
)

func (r EndReason) String() string {
	switch r {
	case ReasonCancelled:
		return "cancelled"
	case ReasonExit:
		return "exit"
	case ReasonGameOver:
		return "game over"
	case ReasonCleared:
		return "cleared"
	case ReasonLimit:
		return "frame limit"
	case ReasonClosed:
		return "surface closed"
	default:
		return "unknown"
	}
}

// Result summarizes a finished run.
type Result struct {
	Reason   EndReason
	Frames   uint64 // Frames delivered to the surface
	Ticks    uint64 // Simulation steps taken
	Kills    int
	Duration time.Duration
}
