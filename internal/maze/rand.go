// Package maze generates deterministic tilt-maze levels: a perfect maze
// carved by recursive backtracking, extra loop edges, pixel-space wall
// rectangles and rejection-sampled hazards and rewards, all derived from
// nothing but the level number.
package maze

// Source is the pseudo-random stream generation draws from. Every
// randomized decision (carving order, loop edges, placement, powerup
// types) consumes this stream in a fixed call order, so substituting a
// recorded stream reproduces a layout exactly.
type Source interface {
	// Float64 returns the next value in [0, 1).
	Float64() float64
}

// Linear-congruential parameters. The modulus is small, but the stream
// only steers layout decisions, so period length is not a concern.
const (
	lcgMultiplier = 9301
	lcgIncrement  = 49297
	lcgModulus    = 233280
)

// SeedMultiplier spreads adjacent level numbers across the seed space so
// neighboring levels do not produce correlated layouts.
const SeedMultiplier = 7919

// LCG is the deterministic linear-congruential Source used for level
// generation. Use NewLCG or NewLevelSource to seed it.
type LCG struct {
	state int64
}

// NewLCG returns a Source starting from the given seed.
func NewLCG(seed int64) *LCG {
	return &LCG{state: seed}
}

// NewLevelSource returns the canonical Source for a level number,
// seeded with level * SeedMultiplier.
func NewLevelSource(level int) *LCG {
	return NewLCG(int64(level) * SeedMultiplier)
}

// Float64 advances the stream and returns the next value in [0, 1).
func (l *LCG) Float64() float64 {
	l.state = (l.state*lcgMultiplier + lcgIncrement) % lcgModulus
	return float64(l.state) / lcgModulus
}

// State exposes the raw generator state for snapshotting.
func (l *LCG) State() int64 {
	return l.state
}
