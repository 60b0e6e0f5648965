package core

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// RGB is an opaque 24-bit color as stored in overlays and canvases.
type RGB struct {
	R, G, B uint8
}

// Predefined colors for scene elements.
var (
	Black   = RGB{0, 0, 0}
	White   = RGB{255, 255, 255}
	Red     = RGB{255, 30, 30}
	Gray    = RGB{150, 150, 150}
	Orange  = RGB{255, 165, 0}
	Magenta = RGB{200, 40, 200}
	Cyan    = RGB{40, 180, 220}
)

// namedColors backs ParseColor for config values.
var namedColors = map[string]RGB{
	"black":   Black,
	"white":   White,
	"red":     Red,
	"gray":    Gray,
	"grey":    Gray,
	"orange":  Orange,
	"magenta": Magenta,
	"cyan":    Cyan,
}

// RGBA converts the color to an opaque color.RGBA.
func (c RGB) RGBA() color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
}

// Hex returns the color as "#rrggbb".
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// RGBOf drops the alpha channel of any color.Color.
func RGBOf(c color.Color) RGB {
	r, g, b, _ := c.RGBA()
	return RGB{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8)}
}

// ParseColor accepts a color name ("white") or a hex triple ("#ff1e1e").
func ParseColor(s string) (RGB, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if c, ok := namedColors[s]; ok {
		return c, nil
	}
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 {
		return RGB{}, fmt.Errorf("core: unknown color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return RGB{}, fmt.Errorf("core: bad hex color %q: %w", s, err)
	}
	return RGB{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}
