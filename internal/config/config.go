// Package config provides YAML-based configuration for the maze game:
// physics tuning, session rules, effect durations, input feel and the
// assist presets. It is plain data; the platform layer maps it onto the
// core's constructor tables.
package config

// Config is the full gyromaze configuration.
type Config struct {
	Physics  Physics  `yaml:"physics"`
	Gameplay Gameplay `yaml:"gameplay"`
	Effects  Effects  `yaml:"effects"`
	Input    Input    `yaml:"input"`
}

// Physics tunes the ball simulation. Velocities are pixels per frame at
// the reference 60 fps.
type Physics struct {
	Gravity     float64 `yaml:"gravity"`
	Friction    float64 `yaml:"friction"`
	Bounce      float64 `yaml:"bounce"`
	MaxSpeed    float64 `yaml:"max_speed"`
	Sensitivity float64 `yaml:"sensitivity"`
}

// Gameplay tunes session-level rules.
type Gameplay struct {
	StartingLives int `yaml:"starting_lives"`
	MaxLevel      int `yaml:"max_level"`
	TickRate      int `yaml:"tick_rate"` // frames per second
}

// Effects sets powerup durations in milliseconds of real session time.
type Effects struct {
	ShieldMs      int64 `yaml:"shield_ms"`
	MagnetMs      int64 `yaml:"magnet_ms"`
	SlowMotionMs  int64 `yaml:"slow_motion_ms"`
	ShrinkMs      int64 `yaml:"shrink_ms"`
	GhostMs       int64 `yaml:"ghost_ms"`
	DoubleCoinsMs int64 `yaml:"double_coins_ms"`
}

// Input tunes the keyboard tilt emulation: held keys ramp a virtual
// tilt toward full deflection, released axes decay back to zero.
type Input struct {
	TiltRamp  float64 `yaml:"tilt_ramp"`  // deflection gained per second held
	TiltDecay float64 `yaml:"tilt_decay"` // deflection lost per second released
	InvertY   bool    `yaml:"invert_y"`
}

// AssistPreset names a gameplay feel.
type AssistPreset string

const (
	AssistCasual  AssistPreset = "casual"
	AssistClassic AssistPreset = "classic"
	AssistExpert  AssistPreset = "expert"
)

// KnownPreset reports whether name is a recognized assist preset.
func KnownPreset(name string) bool {
	switch AssistPreset(name) {
	case AssistCasual, AssistClassic, AssistExpert:
		return true
	}
	return false
}
