package config

import (
	_ "embed"
)

//go:embed defaults/arena.yaml
var defaultArenaYAML []byte

// DefaultArenaConfig returns the built-in arena configuration.
func DefaultArenaConfig() ArenaConfig {
	return ArenaConfig{
		Canvas: CanvasConfig{
			Width:      500,
			Height:     500,
			Background: "white",
			HUD:        true,
		},
		Timing: TimingConfig{
			TickMS:    33,
			Handshake: "strict",
		},
		Player: PlayerConfig{
			Size:      10,
			MaxHP:     20,
			Magnitude: 2.0,
			Step:      5.0,
		},
		Enemies: EnemyConfig{
			Count:      31,
			FirstIndex: 9,
			Spacing:    10,
			Size:       10,
			MaxHP:      5,
			Magnitude:  0.5,
			Mix:        []string{"weak"},
			Multipliers: MultiplierConfig{
				Weak:   1.8,
				Medium: 1.5,
				Strong: 1.2,
			},
			MinDistance: 1.0,
		},
		Compositor: CompositorConfig{
			Blend:  "none",
			Bounds: "clip",
		},
		Encoding: EncodingConfig{
			Format:  "jpeg",
			Quality: 100,
		},
		Difficulty: DifficultyConfig{
			Enabled:      false,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "kills",
				MaxAt: 31,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 1.0,
			},
		},
	}
}

// DefaultYAML returns the embedded default arena YAML.
func DefaultYAML() []byte {
	return defaultArenaYAML
}
