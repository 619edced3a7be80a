package game

import "math"

// Snapshot flattens the deterministic runtime state to integers. Two
// simulations fed identical definitions, seeds and inputs produce
// identical snapshots, so a desync shows up as a single hash mismatch
// instead of a field-by-field diff.
type Snapshot struct {
	BallPosX  uint64
	BallPosY  uint64
	BallVelX  uint64
	BallVelY  uint64
	GameTime  uint64
	ElapsedMs int64
	Coins     int    // remaining on the floor
	Collected int    // picked up this attempt
	Lives     int    // life pickups remaining
	Powerups  uint64 // collected bitmask in definition order
	Effects   int    // active effect count
	WallHits  int
	RNG       uint64 // perturbation stream position
}

// Snapshot captures the state of st as driven by this engine.
func (e *Engine) Snapshot(st *LevelState) Snapshot {
	var mask uint64
	for i, p := range st.Powerups {
		if p.Collected && i < 64 {
			mask |= 1 << uint(i)
		}
	}
	return Snapshot{
		BallPosX:  math.Float64bits(st.Ball.Pos.X),
		BallPosY:  math.Float64bits(st.Ball.Pos.Y),
		BallVelX:  math.Float64bits(st.Ball.Vel.X),
		BallVelY:  math.Float64bits(st.Ball.Vel.Y),
		GameTime:  math.Float64bits(st.GameTime),
		ElapsedMs: st.ElapsedMs(),
		Coins:     len(st.Coins),
		Collected: st.CoinsCollected,
		Lives:     len(st.Lives),
		Powerups:  mask,
		Effects:   len(st.Effects),
		WallHits:  st.WallHits,
		RNG:       e.rng.State(),
	}
}

// Hash folds the snapshot into one comparable value.
func (s Snapshot) Hash() uint64 {
	vals := []uint64{
		s.BallPosX, s.BallPosY, s.BallVelX, s.BallVelY, s.GameTime,
		uint64(s.ElapsedMs), uint64(s.Coins), uint64(s.Collected),
		uint64(s.Lives), s.Powerups, uint64(s.Effects),
		uint64(s.WallHits), s.RNG,
	}
	var h uint64 = 17
	for _, v := range vals {
		h = h*31 + v
	}
	return h
}
