// Package overlay implements a sparse raster layer: every pixel is either
// absent (transparent) or an RGB color, with one opacity and an optional
// blend-mode tag for the whole layer.
package overlay

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vovakirdan/overlay-arena/internal/core"
)

// ErrOutOfBounds is returned by Set for coordinates outside the overlay.
var ErrOutOfBounds = errors.New("overlay: pixel out of bounds")

// Blend tags how a compositor samples the overlay when the target footprint
// differs in size from the source.
type Blend int

const (
	BlendNone   Blend = iota // Same relative index, exact at scale 1
	BlendLinear              // Area-weighted average of covered pixels
	BlendLog                 // Area-weighted average in log space
	BlendCubic               // Reserved
)

// String returns the config name of the blend mode.
func (b Blend) String() string {
	switch b {
	case BlendNone:
		return "none"
	case BlendLinear:
		return "linear"
	case BlendLog:
		return "log"
	case BlendCubic:
		return "cubic"
	default:
		return "unknown"
	}
}

// ParseBlend maps a config name to a blend mode.
func ParseBlend(s string) (Blend, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return BlendNone, nil
	case "linear":
		return BlendLinear, nil
	case "log":
		return BlendLog, nil
	case "cubic":
		return BlendCubic, nil
	}
	return BlendNone, fmt.Errorf("overlay: unknown blend mode %q", s)
}

// Pixel is one overlay cell. OK is false for transparent cells.
type Pixel struct {
	Color core.RGB
	OK    bool
}

// Overlay is a sparse raster buffer.
// len(pixels) == width*height holds for the lifetime of the value.
type Overlay struct {
	width   int
	height  int
	pixels  []Pixel
	opacity float64
	blend   Blend
	tagged  bool // blend was set explicitly
}

// New allocates a fully transparent overlay. Non-positive dimensions are
// raised to 1 so the buffer invariant always has a row to index.
func New(width, height int) *Overlay {
	width = max(1, width)
	height = max(1, height)
	return &Overlay{
		width:   width,
		height:  height,
		pixels:  make([]Pixel, width*height),
		opacity: 1.0,
	}
}

// Width returns the overlay width in pixels.
func (o *Overlay) Width() int {
	return o.width
}

// Height returns the overlay height in pixels.
func (o *Overlay) Height() int {
	return o.height
}

// Len returns the number of pixel slots.
func (o *Overlay) Len() int {
	return len(o.pixels)
}

// stride derives the row length from the buffer itself. Read and write paths
// both go through index so they can never disagree.
func (o *Overlay) stride() int {
	return len(o.pixels) / o.height
}

func (o *Overlay) index(x, y int) int {
	return o.stride()*y + x
}

// InBounds reports whether (x, y) addresses a pixel of the overlay.
func (o *Overlay) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < o.width && y < o.height
}

// At returns the pixel at (x, y). It performs no bounds check; callers
// iterating a known range must stay inside Width x Height.
func (o *Overlay) At(x, y int) (core.RGB, bool) {
	p := o.pixels[o.index(x, y)]
	return p.Color, p.OK
}

// Set stores c at (x, y). Out-of-range coordinates leave the buffer untouched
// and return ErrOutOfBounds.
func (o *Overlay) Set(x, y int, c core.RGB) error {
	if !o.InBounds(x, y) {
		return fmt.Errorf("%w: (%d, %d) in %dx%d", ErrOutOfBounds, x, y, o.width, o.height)
	}
	o.pixels[o.index(x, y)] = Pixel{Color: c, OK: true}
	return nil
}

// Clear makes (x, y) transparent. Out-of-range coordinates are ignored.
func (o *Overlay) Clear(x, y int) {
	if o.InBounds(x, y) {
		o.pixels[o.index(x, y)] = Pixel{}
	}
}

// FillRect sets every in-bounds pixel of the rectangle [x0,x1) x [y0,y1).
// Returns the number of pixels written.
func (o *Overlay) FillRect(x0, y0, x1, y1 int, c core.RGB) int {
	x0, y0 = max(0, x0), max(0, y0)
	x1, y1 = min(o.width, x1), min(o.height, y1)
	n := 0
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			o.pixels[o.index(x, y)] = Pixel{Color: c, OK: true}
			n++
		}
	}
	return n
}

// Fill sets every pixel to c.
func (o *Overlay) Fill(c core.RGB) {
	o.FillRect(0, 0, o.width, o.height, c)
}

// Present returns the number of non-transparent pixels.
func (o *Overlay) Present() int {
	n := 0
	for _, p := range o.pixels {
		if p.OK {
			n++
		}
	}
	return n
}

// Opacity returns the layer opacity in [0, 1].
func (o *Overlay) Opacity() float64 {
	return o.opacity
}

// SetOpacity clamps v to [0, 1] and stores it.
func (o *Overlay) SetOpacity(v float64) *Overlay {
	o.opacity = core.ClampF(v, 0.0, 1.0)
	return o
}

// Blend returns the blend tag and whether one is set.
func (o *Overlay) Blend() (Blend, bool) {
	return o.blend, o.tagged
}

// SetBlend tags the overlay with a blend mode. Pixels are not touched.
func (o *Overlay) SetBlend(b Blend) *Overlay {
	o.blend = b
	o.tagged = true
	return o
}

// ClearBlend removes the blend tag.
func (o *Overlay) ClearBlend() *Overlay {
	o.blend = BlendNone
	o.tagged = false
	return o
}

// Clone returns a deep copy.
func (o *Overlay) Clone() *Overlay {
	c := *o
	c.pixels = make([]Pixel, len(o.pixels))
	copy(c.pixels, o.pixels)
	return &c
}
