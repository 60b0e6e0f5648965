//go:build ebiten

package window

import (
	"context"
	"errors"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/vovakirdan/overlay-arena/internal/frame"
	"github.com/vovakirdan/overlay-arena/internal/session"
)

// Game adapts a session run to the ebiten.Game interface. The run owns the
// simulation; the game only forwards keys and shows the latest frame.
type Game struct {
	run    *session.Run
	width  int
	height int

	img    *ebiten.Image
	last   frame.Frame
	status string
	keys   []ebiten.Key
}

// New creates a window game for run.
func New(run *session.Run) *Game {
	w, h := run.Scene().Size()
	return &Game{run: run, width: w, height: h}
}

// Update forwards pressed keys and picks up the newest frame.
func (g *Game) Update() error {
	select {
	case <-g.run.Done():
		g.pollFrames()
		if res, err := g.run.Outcome(); err == nil {
			g.status = session.Summary(res) + " - press any key"
		} else {
			g.status = err.Error()
		}
		if len(inpututil.AppendJustPressedKeys(g.keys[:0])) > 0 {
			return ebiten.Termination
		}
		return nil
	default:
	}

	g.keys = inpututil.AppendPressedKeys(g.keys[:0])
	for _, k := range g.keys {
		cmd := CommandForKey(k.String())
		if shouldFire(cmd, inpututil.KeyPressDuration(k)) {
			g.run.Send(cmd, k.String())
		}
	}

	g.pollFrames()
	return nil
}

// pollFrames drains queued frames and keeps the newest decodable one.
func (g *Game) pollFrames() {
	var latest *frame.Frame
	for drained := false; !drained; {
		select {
		case f := <-g.run.Surface().Frames():
			latest = &f
		default:
			drained = true
		}
	}
	if latest == nil {
		return
	}

	img, err := frame.Decode(*latest)
	if err != nil {
		g.status = err.Error()
		return
	}
	if g.img != nil {
		g.img.Deallocate()
	}
	g.img = ebiten.NewImageFromImage(img)
	g.last = *latest
}

// Draw renders the latest frame and the status line.
func (g *Game) Draw(screen *ebiten.Image) {
	if g.img != nil {
		screen.DrawImage(g.img, nil)
	}
	if g.status != "" {
		ebitenutil.DebugPrintAt(screen, g.status, 4, g.height-16)
	}
}

// Layout returns the canvas size as the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width, g.height
}

// Run opens the window and plays run until it ends and a key is pressed
// or the window is closed.
func Run(ctx context.Context, run *session.Run, opts Options) error {
	if opts.Scale <= 0 {
		opts.Scale = 1
	}
	run.Start(ctx)
	defer run.Stop()

	g := New(run)
	ebiten.SetWindowTitle(opts.Title)
	ebiten.SetWindowSize(int(float64(g.width)*opts.Scale), int(float64(g.height)*opts.Scale))

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	run.Stop()
	_, err := run.Wait()
	return err
}
