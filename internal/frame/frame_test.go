package frame

import (
	"bytes"
	"image"
	"strings"
	"testing"

	"github.com/vovakirdan/overlay-arena/internal/core"
	"github.com/vovakirdan/overlay-arena/internal/registry"
)

func testCanvas() *image.RGBA {
	img := core.NewCanvas(16, 12, core.White)
	for y := 2; y < 6; y++ {
		for x := 3; x < 9; x++ {
			img.SetRGBA(x, y, core.Red.RGBA())
		}
	}
	return img
}

func TestCodecsRegistered(t *testing.T) {
	for _, id := range []string{"jpeg", "png", "bmp", "tiff"} {
		if !registry.Exists(id) {
			t.Errorf("codec %q not registered", id)
		}
	}
}

func TestLosslessRoundTrip(t *testing.T) {
	src := testCanvas()

	for _, info := range registry.List() {
		if !info.Lossless {
			continue
		}
		t.Run(info.ID, func(t *testing.T) {
			enc, err := NewEncoder(info.ID, 0)
			if err != nil {
				t.Fatal(err)
			}
			f, err := enc.Frame(7, src)
			if err != nil {
				t.Fatalf("Frame() failed: %v", err)
			}
			if f.Seq != 7 || f.Format != info.ID {
				t.Errorf("frame header = (%d, %q), expected (7, %q)", f.Seq, f.Format, info.ID)
			}

			img, err := Decode(f)
			if err != nil {
				t.Fatalf("Decode() failed: %v", err)
			}
			if img.Bounds().Dx() != 16 || img.Bounds().Dy() != 12 {
				t.Fatalf("decoded size %v, expected 16x12", img.Bounds())
			}
			for y := 0; y < 12; y++ {
				for x := 0; x < 16; x++ {
					got := core.RGBOf(img.At(img.Bounds().Min.X+x, img.Bounds().Min.Y+y))
					want := core.RGBOf(src.At(x, y))
					if got != want {
						t.Fatalf("pixel (%d, %d) = %v, expected %v", x, y, got, want)
					}
				}
			}
		})
	}
}

func TestJPEGApproximates(t *testing.T) {
	enc, err := NewEncoder("JPEG", 100)
	if err != nil {
		t.Fatal(err)
	}
	f, err := enc.Frame(1, testCanvas())
	if err != nil {
		t.Fatal(err)
	}
	img, err := Decode(f)
	if err != nil {
		t.Fatal(err)
	}

	// Far from the edge the block is flat enough to survive compression
	got := core.RGBOf(img.At(0, 11))
	if got.R < 240 || got.G < 240 || got.B < 240 {
		t.Errorf("background pixel = %v, expected near white", got)
	}
}

func TestPayloadIsBase64(t *testing.T) {
	f := New(1, "png", []byte{0xff, 0x00, 0x10})
	if f.Payload != "/wAQ" {
		t.Errorf("Payload = %q, expected /wAQ", f.Payload)
	}
	b, err := f.Bytes()
	if err != nil || len(b) != 3 || b[0] != 0xff {
		t.Errorf("Bytes() = %v, %v", b, err)
	}
	if f.Size() != 4 {
		t.Errorf("Size() = %d, expected 4", f.Size())
	}
}

func TestDecodeErrors(t *testing.T) {
	if _, err := Decode(Frame{Format: "png", Payload: "not base64!"}); err == nil {
		t.Error("Decode() should reject a bad payload")
	}
	if _, err := Decode(New(1, "gif", []byte{1})); err == nil || !strings.Contains(err.Error(), "gif") {
		t.Errorf("Decode() error for unknown format = %v", err)
	}
	if _, err := Decode(New(1, "png", []byte("garbage"))); err == nil {
		t.Error("Decode() should reject garbage bytes")
	}
}

func TestNewEncoderUnknown(t *testing.T) {
	if _, err := NewEncoder("webp", 0); err == nil {
		t.Error("NewEncoder() should fail for an unregistered format")
	}
}

func TestEncodeReturnsOwnedSlice(t *testing.T) {
	enc, err := NewEncoder("bmp", 0)
	if err != nil {
		t.Fatal(err)
	}
	a, err := enc.Encode(testCanvas())
	if err != nil {
		t.Fatal(err)
	}
	saved := bytes.Clone(a)
	if _, err := enc.Encode(core.NewCanvas(2, 2, core.Black)); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a, saved) {
		t.Error("second Encode() overwrote the first result")
	}
}
