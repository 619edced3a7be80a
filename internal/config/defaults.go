package config

import (
	_ "embed"
)

//go:embed defaults/gyromaze.yaml
var defaultYAML []byte

// DefaultConfig returns the stock tuning. It is the last-resort
// fallback when even the embedded YAML fails to parse.
func DefaultConfig() Config {
	return Config{
		Physics: Physics{
			Gravity:     0.55,
			Friction:    0.93,
			Bounce:      0.55,
			MaxSpeed:    11,
			Sensitivity: 1.0,
		},
		Gameplay: Gameplay{
			StartingLives: 3,
			MaxLevel:      100,
			TickRate:      60,
		},
		Effects: Effects{
			ShieldMs:      8000,
			MagnetMs:      6000,
			SlowMotionMs:  5000,
			ShrinkMs:      7000,
			GhostMs:       4000,
			DoubleCoinsMs: 10000,
		},
		Input: Input{
			TiltRamp:  3.5,
			TiltDecay: 5.0,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	out := make([]byte, len(defaultYAML))
	copy(out, defaultYAML)
	return out
}
