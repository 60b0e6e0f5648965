package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/overlay-arena/internal/core"
)

// Config controls the driving loop.
type Config struct {
	TickInterval time.Duration // Driving loop interval
	Strict       bool          // Issue a ready only after the previous frame arrived
	MaxFrames    uint64        // End the run after this many frames; 0 = unlimited
	InboxSize    int           // Inbox channel capacity
}

// DefaultConfig returns a strict 30 fps configuration.
func DefaultConfig() Config {
	return Config{
		TickInterval: time.Second / 30,
		Strict:       true,
		InboxSize:    64,
	}
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithSlots replaces the default slot table.
func WithSlots(t *core.SlotTable) Option {
	return func(p *Pipeline) { p.slots = t }
}

// WithLogger routes pipeline logs to l.
func WithLogger(l *log.Logger) Option {
	return func(p *Pipeline) { p.logger = l }
}

// Pipeline wires one simulation to one input source and one surface.
// A Pipeline runs once.
type Pipeline struct {
	cfg     Config
	sim     Simulation
	enc     Encoder
	input   InputSource
	surface Surface
	slots   *core.SlotTable
	logger  *log.Logger

	inbox chan Message
	ready chan struct{}

	readies atomic.Uint64 // Ready tokens issued
	frames  atomic.Uint64 // Frames received by the driving loop
}

// New creates a pipeline. Slots default to core.DefaultSlots and logs are
// discarded unless WithLogger is given.
func New(cfg Config, sim Simulation, enc Encoder, input InputSource, surface Surface, opts ...Option) *Pipeline {
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = DefaultConfig().TickInterval
	}
	if cfg.InboxSize < 1 {
		cfg.InboxSize = DefaultConfig().InboxSize
	}
	p := &Pipeline{
		cfg:     cfg,
		sim:     sim,
		enc:     enc,
		input:   input,
		surface: surface,
		inbox:   make(chan Message, cfg.InboxSize),
		ready:   make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.slots == nil {
		p.slots = core.DefaultSlots()
	}
	if p.logger == nil {
		p.logger = log.New(io.Discard)
	}
	return p
}

// Counters returns the number of ready tokens issued and frames received.
// The pair is only consistent when read from the driving loop, e.g. inside
// Surface.Show.
func (p *Pipeline) Counters() (readies, frames uint64) {
	return p.readies.Load(), p.frames.Load()
}

// Run starts the relay, the render worker and the driving loop and blocks
// until all three have returned. The run ends on an exit command, game
// over, a cleared scene, the frame limit, a closed surface or ctx
// cancellation. A worker failure cancels the other two and is returned.
func (p *Pipeline) Run(ctx context.Context) (Result, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	start := time.Now()
	g, gctx := errgroup.WithContext(ctx)

	var result Result
	g.Go(p.guard("relay", func() error { return p.relay(gctx) }))
	g.Go(p.guard("render", func() error { return p.render(gctx) }))
	g.Go(p.guard("driver", func() error {
		// The driver decides when the run is over; stop the others with it
		defer cancel()
		var err error
		result, err = p.drive(gctx)
		return err
	}))

	err := g.Wait()
	result.Duration = time.Since(start)
	result.Kills = p.sim.Kills()
	_, result.Frames = p.Counters()

	p.logger.Info("run ended",
		"reason", result.Reason,
		"frames", result.Frames,
		"ticks", result.Ticks,
		"kills", result.Kills,
		"duration", result.Duration.Round(time.Millisecond),
	)
	return result, err
}

// guard turns a panic in fn into an error wrapping ErrWorkerPanic.
func (p *Pipeline) guard(name string, fn func() error) func() error {
	return func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("%w: %s: %v", ErrWorkerPanic, name, r)
			}
		}()
		return fn()
	}
}

// send delivers msg to the inbox unless ctx ends first.
func (p *Pipeline) send(ctx context.Context, msg Message) bool {
	select {
	case p.inbox <- msg:
		return true
	case <-ctx.Done():
		return false
	}
}

// relay forwards input events to the inbox until the source is exhausted.
func (p *Pipeline) relay(ctx context.Context) error {
	for {
		ev, err := p.input.Next(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, ErrClosed) || errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("pipeline: input: %w", err)
		}
		if !p.send(ctx, InputMsg{Event: ev}) {
			return nil
		}
	}
}

// render produces one frame per ready token.
func (p *Pipeline) render(ctx context.Context) error {
	var seq uint64
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-p.ready:
		}

		canvas := p.sim.NewCanvas()
		step, err := p.sim.Tick(canvas)
		if err != nil {
			return fmt.Errorf("pipeline: render: %w", err)
		}

		seq++
		f, err := p.enc.Frame(seq, canvas)
		if err != nil {
			return fmt.Errorf("pipeline: encode frame %d: %w", seq, err)
		}
		f.GameOver = step.GameOver

		if step.GameOver && !p.send(ctx, GameOverMsg{Tick: step.Tick}) {
			return nil
		}
		if !p.send(ctx, FrameMsg{Frame: f, Step: step}) {
			return nil
		}
	}
}

// driver holds the state owned by the driving loop.
type driver struct {
	outstanding bool // A ready token has not been answered yet
	gameOver    bool
	ticks       uint64
}

// drive runs the fixed-interval loop: drain the inbox, then issue a ready.
func (p *Pipeline) drive(ctx context.Context) (Result, error) {
	ticker := time.NewTicker(p.cfg.TickInterval)
	defer ticker.Stop()

	var d driver
	p.issueReady(&d)

	for {
		select {
		case <-ctx.Done():
			return Result{Reason: ReasonCancelled, Ticks: d.ticks}, nil
		case <-ticker.C:
		}

		reason, done, err := p.drain(&d)
		if err != nil {
			return Result{Reason: ReasonCancelled, Ticks: d.ticks}, err
		}
		if done {
			return Result{Reason: reason, Ticks: d.ticks}, nil
		}
		p.issueReady(&d)
	}
}

// drain handles every queued message without blocking.
func (p *Pipeline) drain(d *driver) (EndReason, bool, error) {
	for {
		select {
		case msg := <-p.inbox:
			switch m := msg.(type) {
			case InputMsg:
				if p.handleInput(m.Event) {
					return ReasonExit, true, nil
				}
			case GameOverMsg:
				p.logger.Info("game over", "tick", m.Tick)
				d.gameOver = true
			case FrameMsg:
				reason, done, err := p.handleFrame(d, m)
				if err != nil || done {
					return reason, done, err
				}
			}
		default:
			return 0, false, nil
		}
	}
}

// handleInput applies one event. Returns true for the exit command.
func (p *Pipeline) handleInput(ev core.Event) bool {
	cmd, ok := p.slots.Lookup(ev.ID)
	if !ok {
		p.logger.Debug("ignoring unknown input", "id", ev.ID, "value", ev.Value)
		return false
	}
	if cmd == core.CommandExit {
		return true
	}
	p.sim.Apply(cmd)
	return false
}

// handleFrame forwards a frame to the surface and checks end conditions.
func (p *Pipeline) handleFrame(d *driver, m FrameMsg) (EndReason, bool, error) {
	p.frames.Add(1)
	d.outstanding = false
	d.ticks = m.Step.Tick

	if err := p.surface.Show(m.Frame); err != nil {
		if errors.Is(err, ErrClosed) {
			return ReasonClosed, true, nil
		}
		return ReasonCancelled, true, fmt.Errorf("pipeline: show frame %d: %w", m.Frame.Seq, err)
	}
	p.logger.Debug("frame sent", "seq", m.Frame.Seq, "bytes", m.Frame.Size(), "clipped", m.Step.Clipped)

	switch {
	case d.gameOver || m.Frame.GameOver:
		return ReasonGameOver, true, nil
	case m.Step.Remaining == 0:
		return ReasonCleared, true, nil
	case p.cfg.MaxFrames > 0 && p.frames.Load() >= p.cfg.MaxFrames:
		return ReasonLimit, true, nil
	}
	return 0, false, nil
}

// issueReady hands the render worker a token. In strict mode a token is
// only issued once the previous one was answered; otherwise one extra
// token may wait in the channel and further ones are dropped.
func (p *Pipeline) issueReady(d *driver) {
	if p.cfg.Strict && d.outstanding {
		return
	}
	select {
	case p.ready <- struct{}{}:
		p.readies.Add(1)
		d.outstanding = true
	default:
	}
}
