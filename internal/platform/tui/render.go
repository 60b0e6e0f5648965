package tui

import (
	"image"
	"strings"

	"github.com/charmbracelet/lipgloss"
	xdraw "golang.org/x/image/draw"

	"github.com/vovakirdan/overlay-arena/internal/core"
)

// halfBlock draws the top pixel as foreground and the bottom as background.
const halfBlock = "▀"

// FitCells returns the largest cell grid that shows a w x h image inside
// cols x rows terminal cells, keeping the aspect ratio. Each cell covers
// one pixel column and two pixel rows.
func FitCells(w, h, cols, rows int) (int, int) {
	if w <= 0 || h <= 0 || cols <= 0 || rows <= 0 {
		return 0, 0
	}
	// Compare w/h against cols/(rows*2)
	if w*rows*2 > cols*h {
		return cols, max(1, cols*h/(w*2))
	}
	return max(1, rows*2*w/h), rows
}

// Scale resamples img to cols x rows*2 pixels.
func Scale(img image.Image, cols, rows int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, cols, rows*2))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, img.Bounds(), xdraw.Src, nil)
	return dst
}

// RenderImage converts img into half-block cells fitted to cols x rows.
// Runs of cells with the same color pair share one style to minimize
// ANSI escape sequences. r may be nil for the default renderer.
func RenderImage(r *lipgloss.Renderer, img image.Image, cols, rows int) string {
	b := img.Bounds()
	cw, ch := FitCells(b.Dx(), b.Dy(), cols, rows)
	if cw == 0 || ch == 0 {
		return ""
	}
	px := Scale(img, cw, ch)

	newStyle := lipgloss.NewStyle
	if r != nil {
		newStyle = r.NewStyle
	}

	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(cw*ch*24 + ch)

	for y := range ch {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < cw {
			top := core.RGBOf(px.RGBAAt(x, y*2))
			bottom := core.RGBOf(px.RGBAAt(x, y*2+1))

			// Collect consecutive cells with the same colors
			n := 0
			for x < cw && core.RGBOf(px.RGBAAt(x, y*2)) == top && core.RGBOf(px.RGBAAt(x, y*2+1)) == bottom {
				n++
				x++
			}

			style := newStyle().
				Foreground(lipgloss.Color(top.Hex())).
				Background(lipgloss.Color(bottom.Hex()))
			sb.WriteString(style.Render(strings.Repeat(halfBlock, n)))
		}
	}
	return sb.String()
}
