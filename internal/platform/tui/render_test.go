package tui

import (
	"image"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/vovakirdan/overlay-arena/internal/core"
)

func TestFitCells(t *testing.T) {
	tests := []struct {
		name             string
		w, h, cols, rows int
		wantC, wantR     int
	}{
		{"square in wide terminal", 500, 500, 200, 50, 100, 50},
		{"square in tall terminal", 500, 500, 40, 100, 40, 20},
		{"exact fit", 80, 48, 80, 24, 80, 24},
		{"empty image", 0, 10, 80, 24, 0, 0},
		{"no room", 10, 10, 0, 24, 0, 0},
		{"tiny never collapses", 1000, 10, 10, 10, 10, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, r := FitCells(tt.w, tt.h, tt.cols, tt.rows)
			if c != tt.wantC || r != tt.wantR {
				t.Errorf("got %dx%d, expected %dx%d", c, r, tt.wantC, tt.wantR)
			}
		})
	}
}

func TestScale(t *testing.T) {
	img := core.NewCanvas(10, 10, core.Red)
	out := Scale(img, 4, 3)
	if b := out.Bounds(); b.Dx() != 4 || b.Dy() != 6 {
		t.Fatalf("got %v, expected 4x6", b)
	}
	if got := core.RGBOf(out.RGBAAt(2, 3)); got != core.Red {
		t.Errorf("got %v, expected red", got)
	}
}

func TestRenderImage(t *testing.T) {
	r := lipgloss.NewRenderer(&strings.Builder{})
	r.SetColorProfile(termenv.Ascii)

	img := core.NewCanvas(8, 8, core.White)
	out := RenderImage(r, img, 8, 4)

	lines := strings.Split(out, "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, expected 4", len(lines))
	}
	for i, line := range lines {
		if got := strings.Count(line, halfBlock); got != 8 {
			t.Errorf("line %d: got %d cells, expected 8", i, got)
		}
	}
}

func TestRenderImageEmpty(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 0, 0))
	if out := RenderImage(nil, img, 80, 24); out != "" {
		t.Errorf("got %q, expected empty output", out)
	}
}
