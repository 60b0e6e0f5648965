//go:build !ebiten

package window

import (
	"context"

	"github.com/vovakirdan/overlay-arena/internal/session"
)

// Run reports ErrUnavailable; the window needs the ebiten build tag.
func Run(context.Context, *session.Run, Options) error {
	return ErrUnavailable
}
