// Package frame encodes composited canvases into base64 text frames and
// decodes them back for display surfaces.
package frame

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"strings"

	"github.com/vovakirdan/overlay-arena/internal/registry"
)

// Frame is one encoded canvas as sent to a display surface.
type Frame struct {
	Seq      uint64 // Render sequence number, starting at 1
	Format   string // Codec ID
	Payload  string // Base64 (standard encoding) of the encoded image
	GameOver bool   // The step that produced this frame ended the run
}

// Size returns the payload length in bytes.
func (f Frame) Size() int {
	return len(f.Payload)
}

// Bytes returns the decoded payload.
func (f Frame) Bytes() ([]byte, error) {
	b, err := base64.StdEncoding.DecodeString(f.Payload)
	if err != nil {
		return nil, fmt.Errorf("frame: bad payload: %w", err)
	}
	return b, nil
}

// Encoder turns canvases into frames with one codec.
type Encoder struct {
	codec   registry.Codec
	quality int
	buf     bytes.Buffer
}

// NewEncoder looks up format in the codec registry.
func NewEncoder(format string, quality int) (*Encoder, error) {
	c, err := registry.Create(strings.ToLower(format))
	if err != nil {
		return nil, fmt.Errorf("frame: %w", err)
	}
	return &Encoder{codec: c, quality: quality}, nil
}

// Format returns the codec ID.
func (e *Encoder) Format() string {
	return e.codec.ID()
}

// Encode returns the raw encoded bytes of img.
// The returned slice is owned by the caller.
func (e *Encoder) Encode(img image.Image) ([]byte, error) {
	e.buf.Reset()
	if err := e.codec.Encode(&e.buf, img, e.quality); err != nil {
		return nil, fmt.Errorf("frame: encode %s: %w", e.codec.ID(), err)
	}
	return bytes.Clone(e.buf.Bytes()), nil
}

// Frame encodes img and wraps it as a base64 frame.
func (e *Encoder) Frame(seq uint64, img image.Image) (Frame, error) {
	raw, err := e.Encode(img)
	if err != nil {
		return Frame{}, err
	}
	return New(seq, e.codec.ID(), raw), nil
}

// New wraps already encoded bytes as a frame.
func New(seq uint64, format string, raw []byte) Frame {
	return Frame{
		Seq:     seq,
		Format:  format,
		Payload: base64.StdEncoding.EncodeToString(raw),
	}
}

// Decode turns a frame back into an image using its format's codec.
func Decode(f Frame) (image.Image, error) {
	raw, err := f.Bytes()
	if err != nil {
		return nil, err
	}
	c, err := registry.Create(f.Format)
	if err != nil {
		return nil, fmt.Errorf("frame: %w", err)
	}
	img, err := c.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("frame: decode %s: %w", f.Format, err)
	}
	return img, nil
}
