// Package core holds the small types shared by the arena packages:
// colors, geometry, command slots and canvases.
package core

import "math"

// Vec2 is a point in world coordinates (top-left origin, y grows downward).
type Vec2 struct {
	X, Y float64
}

// Dist returns the Euclidean distance between two points.
func (v Vec2) Dist(o Vec2) float64 {
	return math.Sqrt((v.X-o.X)*(v.X-o.X) + (v.Y-o.Y)*(v.Y-o.Y))
}

// Box is an axis-aligned square footprint centered on a point.
type Box struct {
	Center Vec2
	Size   float64 // Side length
}

// NewBox creates a box of the given side centered at (x, y).
func NewBox(x, y, size float64) Box {
	return Box{Center: Vec2{X: x, Y: y}, Size: size}
}

// Corners returns the four corners: top-left, top-right, bottom-left, bottom-right.
func (b Box) Corners() [4]Vec2 {
	m := b.Size / 2
	c := b.Center
	return [4]Vec2{
		{c.X - m, c.Y - m},
		{c.X + m, c.Y - m},
		{c.X - m, c.Y + m},
		{c.X + m, c.Y + m},
	}
}

// ContainsStrict reports whether p lies inside the open interior of the box.
// Points on an edge are outside.
func (b Box) ContainsStrict(p Vec2) bool {
	m := b.Size / 2
	return p.X > b.Center.X-m && p.Y > b.Center.Y-m &&
		p.X < b.Center.X+m && p.Y < b.Center.Y+m
}

// CornerInside reports whether any corner of b lies strictly inside other.
// This is not a full overlap test: a box that swallows other without any of
// its own corners landing inside is not detected, and the test is asymmetric.
func (b Box) CornerInside(other Box) bool {
	for _, corner := range b.Corners() {
		if other.ContainsStrict(corner) {
			return true
		}
	}
	return false
}

// PixelSpan returns the integer pixel range [start, end) covered by the box
// along one axis centered at c.
func PixelSpan(c, size float64) (start, end int) {
	return int(math.Floor(c - size/2)), int(math.Floor(c + size/2))
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// RoundHalfUp rounds a non-negative value to the nearest integer, halves up.
func RoundHalfUp(v float64) int {
	if v <= 0 {
		return 0
	}
	return int(v + 0.5)
}
