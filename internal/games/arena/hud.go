package arena

import (
	"fmt"
	"image"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/vovakirdan/overlay-arena/internal/core"
)

// HUD layout
const (
	hudPadding  = 4
	hudBaseline = 13
)

// HUDColor is the status line text color.
var HUDColor = core.RGB{R: 40, G: 40, B: 40}

// HUDState holds the values shown on the status line.
type HUDState struct {
	HP      float64
	MaxHP   float64
	Enemies int
	Kills   int
}

// String formats the status line.
func (h HUDState) String() string {
	return fmt.Sprintf("HP %.0f/%.0f  ENEMIES %d  KILLS %d", h.HP, h.MaxHP, h.Enemies, h.Kills)
}

// DrawHUD writes the status line in the top-left corner of dst.
func DrawHUD(dst draw.Image, h HUDState) {
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(HUDColor.RGBA()),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(dst.Bounds().Min.X+hudPadding, dst.Bounds().Min.Y+hudBaseline),
	}
	d.DrawString(h.String())
}
