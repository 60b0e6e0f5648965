package compositor

import (
	"math"

	"github.com/vovakirdan/overlay-arena/internal/core"
	"github.com/vovakirdan/overlay-arena/internal/overlay"
)

// Footprint describes one destination pixel of a composite.
// X, Y is the pixel's index inside the target footprint; X0..X1, Y0..Y1 is
// the source rectangle it covers in overlay coordinates.
type Footprint struct {
	X, Y           int
	X0, Y0, X1, Y1 float64
}

// Sampler turns a footprint of source pixels into one destination color.
// The second result is false when the destination must not be written.
type Sampler interface {
	Sample(src *overlay.Overlay, fp Footprint) (core.RGB, bool)
}

// SamplerFunc adapts a function to the Sampler interface.
type SamplerFunc func(src *overlay.Overlay, fp Footprint) (core.RGB, bool)

// Sample calls f.
func (f SamplerFunc) Sample(src *overlay.Overlay, fp Footprint) (core.RGB, bool) {
	return f(src, fp)
}

// Built-in samplers.
var (
	Nearest Sampler = SamplerFunc(sampleNearest)
	Linear  Sampler = SamplerFunc(sampleLinear)
	Log     Sampler = SamplerFunc(sampleLog)
)

// SamplerFor selects the sampling strategy for a blend tag.
// Cubic is reserved and samples like None.
func SamplerFor(b overlay.Blend) Sampler {
	switch b {
	case overlay.BlendNone:
		return Nearest
	case overlay.BlendLinear:
		return Linear
	case overlay.BlendLog:
		return Log
	case overlay.BlendCubic:
		return Nearest
	}
	return Nearest
}

// sampleNearest reads the source at the same relative index as the target
// pixel, assuming 1:1 density. Indices past the source edge are transparent.
func sampleNearest(src *overlay.Overlay, fp Footprint) (core.RGB, bool) {
	if !src.InBounds(fp.X, fp.Y) {
		return core.RGB{}, false
	}
	return src.At(fp.X, fp.Y)
}

// minCoverage is the share of a footprint that must be covered by present
// source pixels for the averaged samplers to write anything.
const minCoverage = 0.5

// accumulate walks every source pixel overlapping the footprint and hands
// its color and overlap weight to add. It returns the total footprint weight
// and the weight carried by present pixels.
func accumulate(src *overlay.Overlay, fp Footprint, add func(c core.RGB, w float64)) (total, present float64) {
	x0 := max(0, int(math.Floor(fp.X0)))
	y0 := max(0, int(math.Floor(fp.Y0)))
	x1 := min(src.Width(), int(math.Ceil(fp.X1)))
	y1 := min(src.Height(), int(math.Ceil(fp.Y1)))

	for sy := y0; sy < y1; sy++ {
		wy := overlap(float64(sy), fp.Y0, fp.Y1)
		for sx := x0; sx < x1; sx++ {
			w := overlap(float64(sx), fp.X0, fp.X1) * wy
			if w <= 0 {
				continue
			}
			total += w
			if c, ok := src.At(sx, sy); ok {
				present += w
				add(c, w)
			}
		}
	}
	return total, present
}

// overlap returns the length of [p, p+1) ∩ [a, b).
func overlap(p, a, b float64) float64 {
	lo := math.Max(p, a)
	hi := math.Min(p+1, b)
	if hi <= lo {
		return 0
	}
	return hi - lo
}

func sampleLinear(src *overlay.Overlay, fp Footprint) (core.RGB, bool) {
	var r, g, b float64
	total, present := accumulate(src, fp, func(c core.RGB, w float64) {
		r += float64(c.R) * w
		g += float64(c.G) * w
		b += float64(c.B) * w
	})
	if present == 0 || present < total*minCoverage {
		return core.RGB{}, false
	}
	return core.RGB{
		R: channel(r / present),
		G: channel(g / present),
		B: channel(b / present),
	}, true
}

func sampleLog(src *overlay.Overlay, fp Footprint) (core.RGB, bool) {
	var r, g, b float64
	total, present := accumulate(src, fp, func(c core.RGB, w float64) {
		r += math.Log1p(float64(c.R)) * w
		g += math.Log1p(float64(c.G)) * w
		b += math.Log1p(float64(c.B)) * w
	})
	if present == 0 || present < total*minCoverage {
		return core.RGB{}, false
	}
	return core.RGB{
		R: channel(math.Expm1(r / present)),
		G: channel(math.Expm1(g / present)),
		B: channel(math.Expm1(b / present)),
	}, true
}

// channel rounds and clamps a float channel value to uint8.
func channel(v float64) uint8 {
	if v >= 255.0 {
		return 255
	}
	if v <= 0.0 {
		return 0
	}
	return uint8(v + 0.5)
}
