package arena

import (
	"fmt"
	"image"
	"math"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/overlay-arena/internal/compositor"
	"github.com/vovakirdan/overlay-arena/internal/config"
	"github.com/vovakirdan/overlay-arena/internal/core"
	"github.com/vovakirdan/overlay-arena/internal/overlay"
)

// Sprite colors
var (
	PlayerColor = core.Black
	WeakColor   = core.Red
	MediumColor = core.Orange
	StrongColor = core.Magenta
	RangeColor  = core.Cyan
)

// rangeOpacity is the opacity of the ability radius disc.
const rangeOpacity = 0.25

// Renderer turns scene objects into overlays and composites them.
type Renderer struct {
	comp       *compositor.Compositor
	background core.RGB
	hud        bool
	showRange  bool
}

// NewRenderer creates a renderer from the canvas and compositor sections.
func NewRenderer(cfg config.ArenaConfig, logger *log.Logger) (*Renderer, error) {
	bg, err := core.ParseColor(cfg.Canvas.Background)
	if err != nil {
		return nil, fmt.Errorf("arena: background: %w", err)
	}
	blend, err := overlay.ParseBlend(cfg.Compositor.Blend)
	if err != nil {
		return nil, fmt.Errorf("arena: %w", err)
	}
	policy, err := compositor.ParseBoundsPolicy(cfg.Compositor.Bounds)
	if err != nil {
		return nil, fmt.Errorf("arena: %w", err)
	}

	opts := []compositor.Option{
		compositor.WithDefaultBlend(blend),
		compositor.WithBoundsPolicy(policy),
	}
	if logger != nil {
		opts = append(opts, compositor.WithLogger(logger))
	}

	return &Renderer{
		comp:       compositor.New(opts...),
		background: bg,
		hud:        cfg.Canvas.HUD,
		showRange:  cfg.Canvas.ShowRange,
	}, nil
}

// Canvas allocates a fresh background canvas.
func (r *Renderer) Canvas(width, height int) *image.RGBA {
	return core.NewCanvas(width, height, r.background)
}

// Draw composites the player and then every enemy onto dst, which is
// expected to hold a fresh background. The returned stats cover every
// overlay of the frame.
func (r *Renderer) Draw(dst *image.RGBA, player Object, enemies []Object, kills int) (compositor.Stats, error) {
	var stats compositor.Stats
	if r.showRange {
		stats.Add(r.drawRange(dst, player))
	}
	st, err := r.drawObject(dst, player)
	if err != nil {
		return stats, err
	}
	stats.Add(st)
	for _, e := range enemies {
		st, err := r.drawObject(dst, e)
		if err != nil {
			return stats, err
		}
		stats.Add(st)
	}
	if r.hud {
		DrawHUD(dst, HUDState{
			HP:      player.HP,
			MaxHP:   player.MaxHP,
			Enemies: len(enemies),
			Kills:   kills,
		})
	}
	return stats, nil
}

// Policy returns the bounds policy of the underlying compositor.
func (r *Renderer) Policy() compositor.BoundsPolicy {
	return r.comp.Policy()
}

func (r *Renderer) drawObject(dst *image.RGBA, o Object) (compositor.Stats, error) {
	ov, x0, y0, err := Sprite(o)
	if err != nil {
		return compositor.Stats{}, err
	}
	return r.comp.Composite(dst, y0, x0, 1.0, 1.0, ov), nil
}

func (r *Renderer) drawRange(dst *image.RGBA, o Object) compositor.Stats {
	ov, x0, y0 := RangeOverlay(o)
	return r.comp.Composite(dst, y0, x0, 1.0, 1.0, ov)
}

// SpriteColor returns the fill color for an object.
func SpriteColor(o Object) (core.RGB, error) {
	switch o.Kind {
	case KindPlayer:
		return PlayerColor, nil
	case KindEnemy:
		switch o.Enemy {
		case Weak:
			return WeakColor, nil
		case Medium:
			return MediumColor, nil
		case Strong:
			return StrongColor, nil
		}
		return core.RGB{}, fmt.Errorf("arena: no sprite for %s", o.Enemy)
	}
	return core.RGB{}, fmt.Errorf("arena: no sprite for %s", o.Kind)
}

// Sprite builds a filled square overlay for o and returns it with the
// canvas position of its top-left pixel.
func Sprite(o Object) (ov *overlay.Overlay, left, top int, err error) {
	c, err := SpriteColor(o)
	if err != nil {
		return nil, 0, 0, err
	}
	x0, x1 := core.PixelSpan(o.X, o.Size)
	y0, y1 := core.PixelSpan(o.Y, o.Size)
	ov = overlay.New(x1-x0, y1-y0)
	ov.Fill(c)
	return ov, x0, y0, nil
}

// RangeOverlay builds a translucent disc of the object's ability range.
func RangeOverlay(o Object) (ov *overlay.Overlay, left, top int) {
	r := o.Action.Range()
	n := int(math.Ceil(r))*2 + 1
	ov = overlay.New(n, n)
	mid := float64(n-1) / 2
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			dx, dy := float64(x)-mid, float64(y)-mid
			if dx*dx+dy*dy <= r*r {
				_ = ov.Set(x, y, RangeColor)
			}
		}
	}
	ov.SetOpacity(rangeOpacity)
	return ov, int(math.Floor(o.X - mid)), int(math.Floor(o.Y - mid))
}
