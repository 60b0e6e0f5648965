// Package compositor blits overlays onto dense canvases at an offset and
// scale, sampling through the overlay's blend strategy and folding in its
// opacity.
package compositor

import (
	"fmt"
	"image"
	"image/draw"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/overlay-arena/internal/core"
	"github.com/vovakirdan/overlay-arena/internal/overlay"
)

// BoundsPolicy selects what happens when a footprint pixel lands outside the canvas.
type BoundsPolicy int

const (
	// BoundsClip skips the write and logs at debug level.
	BoundsClip BoundsPolicy = iota
	// BoundsDiagnose also paints a grey diagonal warning glyph at the canvas origin.
	BoundsDiagnose
)

// String returns the config name of the policy.
func (p BoundsPolicy) String() string {
	switch p {
	case BoundsClip:
		return "clip"
	case BoundsDiagnose:
		return "diagnose"
	default:
		return "unknown"
	}
}

// ParseBoundsPolicy maps a config name to a policy.
func ParseBoundsPolicy(s string) (BoundsPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "clip":
		return BoundsClip, nil
	case "diagnose":
		return BoundsDiagnose, nil
	}
	return BoundsClip, fmt.Errorf("compositor: unknown bounds policy %q", s)
}

// glyphLength is the length of the diagnostic diagonal.
const glyphLength = 25

// Stats summarizes one Composite call.
type Stats struct {
	Written     int // Destination pixels written
	Transparent int // Footprint pixels skipped because the sample was absent
	Clipped     int // Footprint pixels outside the canvas
}

// Add accumulates another call's counts.
func (s *Stats) Add(o Stats) {
	s.Written += o.Written
	s.Transparent += o.Transparent
	s.Clipped += o.Clipped
}

// Compositor holds the policies shared by every composite of a frame.
type Compositor struct {
	policy       BoundsPolicy
	defaultBlend overlay.Blend
	samplers     map[overlay.Blend]Sampler // Overrides of the built-in strategies
	logger       *log.Logger
}

// Option configures a Compositor.
type Option func(*Compositor)

// WithBoundsPolicy sets the out-of-bounds policy.
func WithBoundsPolicy(p BoundsPolicy) Option {
	return func(c *Compositor) { c.policy = p }
}

// WithDefaultBlend sets the sampler used for overlays without a blend tag.
func WithDefaultBlend(b overlay.Blend) Option {
	return func(c *Compositor) { c.defaultBlend = b }
}

// WithSampler installs s as the strategy for blend tag b.
func WithSampler(b overlay.Blend, s Sampler) Option {
	return func(c *Compositor) {
		if c.samplers == nil {
			c.samplers = make(map[overlay.Blend]Sampler)
		}
		c.samplers[b] = s
	}
}

// WithLogger routes diagnostics to l.
func WithLogger(l *log.Logger) Option {
	return func(c *Compositor) { c.logger = l }
}

// New creates a compositor. Defaults: clip, no blend, no logging.
func New(opts ...Option) *Compositor {
	c := &Compositor{
		policy:       BoundsClip,
		defaultBlend: overlay.BlendNone,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Policy returns the configured bounds policy.
func (c *Compositor) Policy() BoundsPolicy {
	return c.policy
}

// Composite blits ov onto dst. The target footprint is
// round(width*widthScale) x round(height*heightScale) pixels anchored at
// (left, top) in dst's coordinate space relative to its Min point.
func (c *Compositor) Composite(dst draw.Image, top, left int, widthScale, heightScale float64, ov *overlay.Overlay) Stats {
	var stats Stats
	if ov == nil {
		return stats
	}

	fw := core.RoundHalfUp(float64(ov.Width()) * widthScale)
	fh := core.RoundHalfUp(float64(ov.Height()) * heightScale)
	if fw == 0 || fh == 0 {
		return stats
	}

	sampler := c.samplerFor(ov)
	opacity := ov.Opacity()
	bounds := dst.Bounds()
	// Source units covered by one target pixel
	sx := float64(ov.Width()) / float64(fw)
	sy := float64(ov.Height()) / float64(fh)

	for oy := 0; oy < fh; oy++ {
		y := bounds.Min.Y + top + oy
		for ox := 0; ox < fw; ox++ {
			fp := Footprint{
				X:  ox,
				Y:  oy,
				X0: float64(ox) * sx,
				X1: float64(ox+1) * sx,
				Y0: float64(oy) * sy,
				Y1: float64(oy+1) * sy,
			}
			col, ok := sampler.Sample(ov, fp)
			if !ok {
				stats.Transparent++
				continue
			}

			x := bounds.Min.X + left + ox
			if !(image.Point{X: x, Y: y}).In(bounds) {
				stats.Clipped++
				continue
			}
			write(dst, x, y, col, opacity)
			stats.Written++
		}
	}

	if stats.Clipped > 0 {
		c.reportClipped(dst, top, left, stats)
	}
	return stats
}

func (c *Compositor) samplerFor(ov *overlay.Overlay) Sampler {
	b, ok := ov.Blend()
	if !ok {
		b = c.defaultBlend
	}
	if s, found := c.samplers[b]; found {
		return s
	}
	return SamplerFor(b)
}

func (c *Compositor) reportClipped(dst draw.Image, top, left int, stats Stats) {
	switch c.policy {
	case BoundsClip:
		if c.logger != nil {
			c.logger.Debug("overlay clipped", "top", top, "left", left, "clipped", stats.Clipped)
		}
	case BoundsDiagnose:
		if c.logger != nil {
			c.logger.Warn("overlay out of bounds", "top", top, "left", left, "clipped", stats.Clipped)
		}
		drawWarningGlyph(dst)
	}
}

// drawWarningGlyph paints a dark-to-grey diagonal from the canvas origin.
func drawWarningGlyph(dst draw.Image) {
	b := dst.Bounds()
	for i := 0; i < glyphLength; i++ {
		p := image.Point{X: b.Min.X + i, Y: b.Min.Y + i}
		if !p.In(b) {
			return
		}
		v := uint8(i)
		dst.Set(p.X, p.Y, core.RGB{R: v, G: v, B: v}.RGBA())
	}
}

// write stores col at (x, y), mixed with the existing pixel by opacity:
// result = src*opacity + dst*(1-opacity).
func write(dst draw.Image, x, y int, col core.RGB, opacity float64) {
	if opacity <= 0 {
		return
	}
	if opacity < 1 {
		col = mix(readRGB(dst, x, y), col, opacity)
	}
	if rgba, ok := dst.(*image.RGBA); ok {
		rgba.SetRGBA(x, y, col.RGBA())
		return
	}
	dst.Set(x, y, col.RGBA())
}

func readRGB(dst draw.Image, x, y int) core.RGB {
	if rgba, ok := dst.(*image.RGBA); ok {
		c := rgba.RGBAAt(x, y)
		return core.RGB{R: c.R, G: c.G, B: c.B}
	}
	return core.RGBOf(dst.At(x, y))
}

func mix(under, over core.RGB, alpha float64) core.RGB {
	inv := 1.0 - alpha
	return core.RGB{
		R: channel(float64(over.R)*alpha + float64(under.R)*inv),
		G: channel(float64(over.G)*alpha + float64(under.G)*inv),
		B: channel(float64(over.B)*alpha + float64(under.B)*inv),
	}
}

var std = New()

// Composite blits ov onto dst with the default compositor (clip, no blend).
func Composite(dst draw.Image, top, left int, widthScale, heightScale float64, ov *overlay.Overlay) Stats {
	return std.Composite(dst, top, left, widthScale, heightScale, ov)
}
