package core

import "image"

// NewCanvas allocates a canvas filled with the background color.
func NewCanvas(width, height int, bg RGB) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	Fill(img, bg)
	return img
}

// Fill paints every pixel of img with c. Sub-images share Pix with their
// parent up to its end, so the copy path only runs when Pix is exactly
// the image's own rows.
func Fill(img *image.RGBA, c RGB) {
	if len(img.Pix) < 4 {
		return
	}
	if img.Stride != 4*img.Rect.Dx() || len(img.Pix) != img.Stride*img.Rect.Dy() {
		b := img.Bounds()
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				img.SetRGBA(x, y, c.RGBA())
			}
		}
		return
	}
	img.Pix[0], img.Pix[1], img.Pix[2], img.Pix[3] = c.R, c.G, c.B, 255
	// Exponential copy
	for filled := 4; filled < len(img.Pix); filled *= 2 {
		copy(img.Pix[filled:], img.Pix[:filled])
	}
}
