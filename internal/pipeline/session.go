package pipeline

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/vovakirdan/overlay-arena/internal/core"
	"github.com/vovakirdan/overlay-arena/internal/frame"
)

// ChannelInput is an InputSource fed by Send.
// Used by the TUI and window surfaces to bridge key presses into a run.
type ChannelInput struct {
	events   chan core.Event
	done     chan struct{}
	doneOnce sync.Once
}

// NewChannelInput creates a channel-backed input source.
// bufferSize controls how many events can be queued before dropping.
func NewChannelInput(bufferSize int) *ChannelInput {
	if bufferSize < 1 {
		bufferSize = 64 // Default buffer size
	}
	return &ChannelInput{
		events: make(chan core.Event, bufferSize),
		done:   make(chan struct{}),
	}
}

// Send queues an event. Non-blocking; the event is dropped when the
// buffer is full or the source is closed.
func (c *ChannelInput) Send(ev core.Event) {
	select {
	case <-c.done:
		return
	default:
	}

	select {
	case c.events <- ev:
	default:
		// Channel full, drop input (rare under normal conditions)
	}
}

// Next returns the next queued event.
func (c *ChannelInput) Next(ctx context.Context) (core.Event, error) {
	select {
	case ev := <-c.events:
		return ev, nil
	case <-c.done:
		return core.Event{}, ErrClosed
	case <-ctx.Done():
		return core.Event{}, ctx.Err()
	}
}

// Close stops the source. Safe to call multiple times.
func (c *ChannelInput) Close() {
	c.doneOnce.Do(func() {
		close(c.done)
	})
}

// ScriptInput replays a fixed list of events, one per interval, then
// reports io.EOF.
type ScriptInput struct {
	events   []core.Event
	interval time.Duration
	next     int
}

// NewScriptInput creates a scripted input source.
func NewScriptInput(events []core.Event, interval time.Duration) *ScriptInput {
	return &ScriptInput{events: events, interval: interval}
}

// Next waits one interval and returns the next scripted event.
func (s *ScriptInput) Next(ctx context.Context) (core.Event, error) {
	if s.next >= len(s.events) {
		return core.Event{}, io.EOF
	}
	if s.interval > 0 {
		timer := time.NewTimer(s.interval)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			return core.Event{}, ctx.Err()
		}
	}
	ev := s.events[s.next]
	s.next++
	return ev, nil
}

// ChannelSurface is a Surface that queues frames for a reader.
type ChannelSurface struct {
	frames   chan frame.Frame
	done     chan struct{}
	doneOnce sync.Once
}

// NewChannelSurface creates a channel-backed surface.
// bufferSize controls how many frames can be queued before the oldest is dropped.
func NewChannelSurface(bufferSize int) *ChannelSurface {
	if bufferSize < 1 {
		bufferSize = 2
	}
	return &ChannelSurface{
		frames: make(chan frame.Frame, bufferSize),
		done:   make(chan struct{}),
	}
}

// Show queues f. If the buffer is full, the oldest frame is dropped.
func (s *ChannelSurface) Show(f frame.Frame) error {
	select {
	case <-s.done:
		return ErrClosed
	default:
	}

	select {
	case s.frames <- f:
	default:
		// Buffer full, drop oldest and retry
		select {
		case <-s.frames:
		default:
		}
		// Try again (best effort)
		select {
		case s.frames <- f:
		default:
		}
	}
	return nil
}

// Frames returns the channel to receive frames from.
func (s *ChannelSurface) Frames() <-chan frame.Frame {
	return s.frames
}

// Done returns a channel that closes with the surface.
func (s *ChannelSurface) Done() <-chan struct{} {
	return s.done
}

// Close marks the surface as gone. Safe to call multiple times.
func (s *ChannelSurface) Close() {
	s.doneOnce.Do(func() {
		close(s.done)
	})
}

// SurfaceFunc adapts a function to the Surface interface.
type SurfaceFunc func(f frame.Frame) error

// Show calls fn(f).
func (fn SurfaceFunc) Show(f frame.Frame) error {
	return fn(f)
}
