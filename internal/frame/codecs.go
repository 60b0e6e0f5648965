package frame

import (
	"image"
	"image/jpeg"
	"image/png"
	"io"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/vovakirdan/overlay-arena/internal/core"
	"github.com/vovakirdan/overlay-arena/internal/registry"
)

// DefaultQuality matches the classic full-quality JPEG stream.
const DefaultQuality = 100

func init() {
	registry.Register("jpeg", func() registry.Codec { return jpegCodec{} })
	registry.Register("png", func() registry.Codec { return pngCodec{} })
	registry.Register("bmp", func() registry.Codec { return bmpCodec{} })
	registry.Register("tiff", func() registry.Codec { return tiffCodec{} })
}

type jpegCodec struct{}

func (jpegCodec) ID() string     { return "jpeg" }
func (jpegCodec) Title() string  { return "JPEG (quality 1-100)" }
func (jpegCodec) Lossless() bool { return false }

func (jpegCodec) Encode(w io.Writer, img image.Image, quality int) error {
	if quality <= 0 {
		quality = DefaultQuality
	}
	return jpeg.Encode(w, img, &jpeg.Options{Quality: core.Clamp(quality, 1, 100)})
}

func (jpegCodec) Decode(r io.Reader) (image.Image, error) {
	return jpeg.Decode(r)
}

type pngCodec struct{}

func (pngCodec) ID() string     { return "png" }
func (pngCodec) Title() string  { return "PNG" }
func (pngCodec) Lossless() bool { return true }

func (pngCodec) Encode(w io.Writer, img image.Image, _ int) error {
	enc := png.Encoder{CompressionLevel: png.BestSpeed}
	return enc.Encode(w, img)
}

func (pngCodec) Decode(r io.Reader) (image.Image, error) {
	return png.Decode(r)
}

type bmpCodec struct{}

func (bmpCodec) ID() string     { return "bmp" }
func (bmpCodec) Title() string  { return "BMP (uncompressed)" }
func (bmpCodec) Lossless() bool { return true }

func (bmpCodec) Encode(w io.Writer, img image.Image, _ int) error {
	return bmp.Encode(w, img)
}

func (bmpCodec) Decode(r io.Reader) (image.Image, error) {
	return bmp.Decode(r)
}

type tiffCodec struct{}

func (tiffCodec) ID() string     { return "tiff" }
func (tiffCodec) Title() string  { return "TIFF (deflate)" }
func (tiffCodec) Lossless() bool { return true }

func (tiffCodec) Encode(w io.Writer, img image.Image, _ int) error {
	return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate, Predictor: true})
}

func (tiffCodec) Decode(r io.Reader) (image.Image, error) {
	return tiff.Decode(r)
}
