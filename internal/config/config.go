// Package config provides YAML-based arena configuration loading and
// difficulty management.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ArenaConfig contains all configuration for an arena session.
type ArenaConfig struct {
	Canvas     CanvasConfig     `yaml:"canvas"`
	Timing     TimingConfig     `yaml:"timing"`
	Player     PlayerConfig     `yaml:"player"`
	Enemies    EnemyConfig      `yaml:"enemies"`
	Compositor CompositorConfig `yaml:"compositor"`
	Encoding   EncodingConfig   `yaml:"encoding"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// CanvasConfig defines the raster the scene is composited onto.
type CanvasConfig struct {
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Background string `yaml:"background"` // Color name or #rrggbb
	HUD        bool   `yaml:"hud"`        // Draw the status line
	ShowRange  bool   `yaml:"show_range"` // Draw the ability radius around the player
}

// TimingConfig defines the driving loop.
type TimingConfig struct {
	TickMS    int    `yaml:"tick_ms"`
	Handshake string `yaml:"handshake"` // "strict" or "buffered"
}

// TickInterval returns the driving loop interval.
func (t TimingConfig) TickInterval() time.Duration {
	return time.Duration(t.TickMS) * time.Millisecond
}

// Strict reports whether a ready token waits for the previous frame.
func (t TimingConfig) Strict() bool {
	return !strings.EqualFold(t.Handshake, "buffered")
}

// PlayerConfig defines the player object.
type PlayerConfig struct {
	Size      float64 `yaml:"size"`
	MaxHP     float64 `yaml:"max_hp"`
	Magnitude float64 `yaml:"magnitude"` // Projectile damage, also sets the range
	Step      float64 `yaml:"step"`      // Movement per command
}

// EnemyConfig defines the spawned batch and pursuit parameters.
type EnemyConfig struct {
	Count       int              `yaml:"count"`
	FirstIndex  int              `yaml:"first_index"` // Diagonal slot of the first enemy
	Spacing     float64          `yaml:"spacing"`     // Distance between diagonal slots
	Size        float64          `yaml:"size"`
	MaxHP       float64          `yaml:"max_hp"`
	Magnitude   float64          `yaml:"magnitude"`
	Mix         []string         `yaml:"mix"` // Enemy types cycled over spawn order
	Multipliers MultiplierConfig `yaml:"multipliers"`
	MinDistance float64          `yaml:"min_distance"` // Floor of the scaled pursuit distance
}

// MultiplierConfig scales the pursuit distance per enemy type.
type MultiplierConfig struct {
	Weak   float64 `yaml:"weak"`
	Medium float64 `yaml:"medium"`
	Strong float64 `yaml:"strong"`
}

// CompositorConfig selects sampling and bounds behavior.
type CompositorConfig struct {
	Blend  string `yaml:"blend"`  // none, linear, log, cubic
	Bounds string `yaml:"bounds"` // clip, diagnose
}

// EncodingConfig selects the frame codec.
type EncodingConfig struct {
	Format  string `yaml:"format"`  // Any registered codec name
	Quality int    `yaml:"quality"` // JPEG quality 1-100
}

// DifficultyConfig defines pursuit speed progression.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over a run.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "kills", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Kills/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Added to pursuit speed at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset validates a preset name. The empty string means no preset.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(strings.ToLower(s)); p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	}
	return "", fmt.Errorf("config: unknown difficulty %q", s)
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// Validate reports every invalid field at once.
func (c ArenaConfig) Validate() error {
	var errs []error
	if c.Canvas.Width <= 0 || c.Canvas.Height <= 0 {
		errs = append(errs, fmt.Errorf("canvas size must be positive, got %dx%d", c.Canvas.Width, c.Canvas.Height))
	}
	if c.Timing.TickMS <= 0 {
		errs = append(errs, fmt.Errorf("tick_ms must be positive, got %d", c.Timing.TickMS))
	}
	switch strings.ToLower(c.Timing.Handshake) {
	case "", "strict", "buffered":
	default:
		errs = append(errs, fmt.Errorf("unknown handshake %q", c.Timing.Handshake))
	}
	if c.Player.Size <= 0 {
		errs = append(errs, fmt.Errorf("player size must be positive, got %v", c.Player.Size))
	}
	if c.Enemies.Count < 0 {
		errs = append(errs, fmt.Errorf("enemy count must not be negative, got %d", c.Enemies.Count))
	}
	for _, name := range c.Enemies.Mix {
		switch strings.ToLower(name) {
		case "weak", "medium", "strong":
		default:
			errs = append(errs, fmt.Errorf("unknown enemy type %q", name))
		}
	}
	if c.Encoding.Quality < 0 || c.Encoding.Quality > 100 {
		errs = append(errs, fmt.Errorf("quality must be within 0-100, got %d", c.Encoding.Quality))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: invalid arena config: %w", errors.Join(errs...))
	}
	return nil
}
