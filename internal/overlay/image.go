package overlay

import (
	"image"
	"image/draw"

	"github.com/vovakirdan/overlay-arena/internal/core"
)

// FromImage imports a dense raster. Every pixel becomes present; alpha is dropped.
func FromImage(img image.Image) *Overlay {
	b := img.Bounds()
	o := New(b.Dx(), b.Dy())
	for y := 0; y < o.height; y++ {
		for x := 0; x < o.width; x++ {
			o.pixels[o.index(x, y)] = Pixel{
				Color: core.RGBOf(img.At(b.Min.X+x, b.Min.Y+y)),
				OK:    true,
			}
		}
	}
	return o
}

// DrawOnto writes every present pixel into dst at the same coordinates
// (relative to dst's origin). Absent pixels leave dst untouched. Opacity and
// blend are ignored; use the compositor for those.
func (o *Overlay) DrawOnto(dst draw.Image) {
	b := dst.Bounds()
	for y := 0; y < o.height && b.Min.Y+y < b.Max.Y; y++ {
		for x := 0; x < o.width && b.Min.X+x < b.Max.X; x++ {
			p := o.pixels[o.index(x, y)]
			if p.OK {
				dst.Set(b.Min.X+x, b.Min.Y+y, p.Color.RGBA())
			}
		}
	}
}

// ToImage renders the overlay over a background-filled canvas of the same size.
func (o *Overlay) ToImage(bg core.RGB) *image.RGBA {
	img := core.NewCanvas(o.width, o.height, bg)
	o.DrawOnto(img)
	return img
}
