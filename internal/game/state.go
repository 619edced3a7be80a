package game

import (
	"github.com/TheAppMakerPro/gyro-maze/internal/core"
	"github.com/TheAppMakerPro/gyro-maze/internal/maze"
)

// Ball is the simulated marble. Velocity is expressed in pixels per
// frame at the reference 60 fps; the engine rescales by the actual
// frame delta. Mass is uniform, so forces act on velocity directly.
type Ball struct {
	Pos      core.Vec
	Vel      core.Vec
	Radius   float64 // base radius before shrink effects
	Friction float64
	Bounce   float64
}

// RuntimeCoin is a live coin. The magnet effect can drag it away from
// its spawn point, so position is per-attempt state.
type RuntimeCoin struct {
	Pos   core.Vec
	Index int // position in the definition's coin list
}

// RuntimeLife is an uncollected extra-life pickup.
type RuntimeLife struct {
	Pos   core.Vec
	Index int
}

// RuntimePowerup wraps a spawn with its collected flag. Collected
// pickups stay in the slice so a restart respawns them in place.
type RuntimePowerup struct {
	Spawn     maze.PowerupSpawn
	Index     int
	Collected bool
}

// LevelState is the mutable half of a level: everything that changes
// frame to frame, rebuilt from the immutable definition on every load
// and restart. The engine mutates it; the session owns it.
type LevelState struct {
	Ball     Ball
	Coins    []RuntimeCoin
	Lives    []RuntimeLife
	Powerups []RuntimePowerup
	Effects  []ActiveEffect
	Trail    []TrailSample

	// GameTime accumulates scaled seconds and drives gameplay motion
	// such as moving walls, so slow-motion stretches the world.
	GameTime float64

	// Snapshot holds the persistent upgrade grants this attempt began
	// with. The shield flag flips off when it is spent.
	Snapshot EffectSnapshot

	CoinsCollected int
	WallHits       int

	elapsed   float64 // real seconds, unaffected by time scaling
	warpUntil int64   // elapsed-ms until which the time warp runs
	warpUsed  bool
}

// NewLevelState builds the runtime state for one attempt from the
// definition, the physics tuning and the player's persistent grants.
func NewLevelState(def *maze.Definition, cfg PhysicsConfig, snap EffectSnapshot) *LevelState {
	st := &LevelState{
		Ball: Ball{
			Pos:      def.Start,
			Radius:   def.BallRadius,
			Friction: cfg.Friction,
			Bounce:   cfg.Bounce,
		},
		Snapshot: snap,
	}
	st.Coins = make([]RuntimeCoin, len(def.Coins))
	for i, c := range def.Coins {
		st.Coins[i] = RuntimeCoin{Pos: c, Index: i}
	}
	st.Lives = make([]RuntimeLife, len(def.Lives))
	for i, l := range def.Lives {
		st.Lives[i] = RuntimeLife{Pos: l, Index: i}
	}
	st.Powerups = make([]RuntimePowerup, len(def.Powerups))
	for i, p := range def.Powerups {
		st.Powerups[i] = RuntimePowerup{Spawn: p, Index: i}
	}
	return st
}

// ElapsedMs is the real time this attempt has been running, in
// milliseconds. Time-scale effects do not slow it down.
func (s *LevelState) ElapsedMs() int64 {
	return int64(s.elapsed * 1000)
}

// timeScale composes every active slow-down source and keeps the
// strongest (smallest) one. Sources never stack multiplicatively.
func (s *LevelState) timeScale() float64 {
	scale := 1.0
	if s.Snapshot.SlowMotion {
		scale = min(scale, upgradeSlowScale)
	}
	if s.effectActive(maze.PowerupSlowMotion) {
		scale = min(scale, slowMotionScale)
	}
	if s.warpUntil > 0 && s.ElapsedMs() < s.warpUntil {
		scale = min(scale, timeWarpScale)
	}
	return scale
}

// effectiveRadius applies shrink sources to the base ball radius.
func (s *LevelState) effectiveRadius() float64 {
	r := s.Ball.Radius
	if m := s.Snapshot.ShrinkBallMultiplier; m > 0 && m < 1 {
		r *= m
	}
	if s.effectActive(maze.PowerupShrink) {
		r *= shrinkScale
	}
	return r
}

func (s *LevelState) ghostActive() bool {
	return s.Snapshot.Ghost || s.effectActive(maze.PowerupGhost)
}

func (s *LevelState) shieldAvailable() bool {
	return s.Snapshot.Shield || s.effectActive(maze.PowerupShield)
}

// consumeShield burns one shield source, preferring the timed pickup
// over the persistent upgrade. Reports whether the upgrade was spent.
func (s *LevelState) consumeShield() (fromUpgrade bool) {
	if s.effectActive(maze.PowerupShield) {
		s.removeEffect(maze.PowerupShield)
		return false
	}
	s.Snapshot.Shield = false
	return true
}

// magnetRadius is the strongest active coin-pull radius, zero when no
// magnet source is on.
func (s *LevelState) magnetRadius() float64 {
	r := 0.0
	if s.Snapshot.MagnetRadius > 0 {
		r = s.Snapshot.MagnetRadius
	}
	if s.effectActive(maze.PowerupMagnet) && pickupMagnetRadius > r {
		r = pickupMagnetRadius
	}
	return r
}
