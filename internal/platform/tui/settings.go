package tui

import (
	"github.com/TheAppMakerPro/gyro-maze/internal/config"
	"github.com/TheAppMakerPro/gyro-maze/internal/game"
	"github.com/TheAppMakerPro/gyro-maze/internal/levels"
)

// Settings is the platform-side digest of the YAML config: the
// constructor tables the core packages take, plus the input feel and
// loop rate the UI needs. The config package stays pure data; this is
// the one place it gets mapped onto the game.
type Settings struct {
	Physics       game.PhysicsConfig
	Durations     game.EffectDurations
	TiltRamp      float64
	TiltDecay     float64
	InvertY       bool
	FPS           int
	StartingLives int
	MaxLevel      int

	// Seed overrides the bounce-perturbation stream. Zero keeps the
	// per-level default, which replays a level identically.
	Seed int64
}

// SettingsFromConfig maps a loaded config onto runtime settings.
func SettingsFromConfig(cfg *config.Config) Settings {
	s := Settings{
		Physics: game.PhysicsConfig{
			Gravity:     cfg.Physics.Gravity,
			Friction:    cfg.Physics.Friction,
			Bounce:      cfg.Physics.Bounce,
			MaxSpeed:    cfg.Physics.MaxSpeed,
			Sensitivity: cfg.Physics.Sensitivity,
		},
		Durations: game.EffectDurations{
			Shield:      cfg.Effects.ShieldMs,
			Magnet:      cfg.Effects.MagnetMs,
			SlowMotion:  cfg.Effects.SlowMotionMs,
			Shrink:      cfg.Effects.ShrinkMs,
			Ghost:       cfg.Effects.GhostMs,
			DoubleCoins: cfg.Effects.DoubleCoinsMs,
		},
		TiltRamp:      cfg.Input.TiltRamp,
		TiltDecay:     cfg.Input.TiltDecay,
		InvertY:       cfg.Input.InvertY,
		FPS:           cfg.Gameplay.TickRate,
		StartingLives: cfg.Gameplay.StartingLives,
		MaxLevel:      cfg.Gameplay.MaxLevel,
	}
	if s.FPS <= 0 {
		s.FPS = DefaultFPS
	}
	if s.StartingLives <= 0 {
		s.StartingLives = 3
	}
	if s.MaxLevel <= 0 || s.MaxLevel > levels.MaxLevel {
		s.MaxLevel = levels.MaxLevel
	}
	return s
}

// NewLevelSession builds a ready-to-start session for one level.
func NewLevelSession(catalog *levels.Catalog, level int, st Settings, collab game.Collaborator) (*game.Session, error) {
	def, err := catalog.Get(level)
	if err != nil {
		return nil, err
	}
	opts := []game.Option{game.WithEffectDurations(st.Durations)}
	if st.Seed != 0 {
		opts = append(opts, game.WithSeed(st.Seed))
	}
	return game.NewSession(def, st.Physics, collab, opts...)
}
