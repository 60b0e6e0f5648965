// Package window shows an arena run in a desktop window. The window itself
// needs the ebiten build tag; without it Run reports ErrUnavailable.
package window

import (
	"errors"

	"github.com/vovakirdan/overlay-arena/internal/core"
)

// ErrUnavailable is returned by Run in builds without the ebiten tag.
var ErrUnavailable = errors.New("window: built without the ebiten tag, rebuild with -tags ebiten")

// Options configure the window.
type Options struct {
	Title string
	Scale float64 // Window pixels per canvas pixel
}

// DefaultOptions returns a 1:1 window titled "overlay arena".
func DefaultOptions() Options {
	return Options{Title: "overlay arena", Scale: 1}
}

// Held keys repeat after repeatDelay ticks, then every repeatEvery ticks.
const (
	repeatDelay = 15
	repeatEvery = 4
)

// keyCommands maps ebiten key names to arena commands.
var keyCommands = map[string]core.Command{
	"ArrowUp":    core.CommandUp,
	"W":          core.CommandUp,
	"ArrowDown":  core.CommandDown,
	"S":          core.CommandDown,
	"ArrowLeft":  core.CommandLeft,
	"A":          core.CommandLeft,
	"ArrowRight": core.CommandRight,
	"D":          core.CommandRight,
	"Y":          core.CommandUpLeft,
	"U":          core.CommandUpRight,
	"B":          core.CommandDownLeft,
	"N":          core.CommandDownRight,
	"Space":      core.CommandAbility,
	"F":          core.CommandAbility,
	"Q":          core.CommandExit,
	"Escape":     core.CommandExit,
}

// CommandForKey returns the command bound to an ebiten key name.
func CommandForKey(name string) core.Command {
	if cmd, ok := keyCommands[name]; ok {
		return cmd
	}
	return core.CommandNone
}

// shouldFire reports whether a key held for d ticks emits its command on
// this tick. Only movement repeats.
func shouldFire(cmd core.Command, d int) bool {
	if d == 1 {
		return true
	}
	if !cmd.IsMovement() || d < repeatDelay {
		return false
	}
	return (d-repeatDelay)%repeatEvery == 0
}
