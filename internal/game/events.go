// Package game simulates a tilt-maze level: per-frame ball physics
// against the generated geometry, timed effects, and the session state
// machine that turns raw collisions into wins, losses and scores.
package game

import "github.com/TheAppMakerPro/gyro-maze/internal/maze"

// Event is a discrete occurrence reported by a tick. The interface is
// sealed: the set of kinds is fixed at compile time and consumers
// switch on the concrete types. Events are returned, never delivered
// through assignable callbacks, so the stream itself is testable.
type Event interface {
	event()
}

// WallHit is emitted at most once per axis per frame, however many wall
// rectangles the ball touched on that axis.
type WallHit struct {
	Axis maze.Axis
}

// FellInHole reports the ball dropping into a hazard. It is the last
// event of its frame and ends the attempt.
type FellInHole struct {
	Hole int // index into the definition's hole list
}

// ShieldBurst reports a hole save: a shield absorbed the fall and the
// ball was pushed clear. FromUpgrade distinguishes the persistent
// upgrade from a timed pickup.
type ShieldBurst struct {
	Hole        int
	FromUpgrade bool
}

// ReachedGoal reports the winning touch. It is the last gameplay event
// of its frame.
type ReachedGoal struct{}

// CoinCollected reports one coin pickup and the running total for this
// attempt.
type CoinCollected struct {
	Index int // index into the definition's coin list
	Total int
}

// LifeCollected reports an extra-life pickup on the floor.
type LifeCollected struct {
	Index int
}

// PowerupCollected reports a pickup; its effect is already active when
// the event is delivered.
type PowerupCollected struct {
	Type maze.PowerupType
}

// PowerupExpired reports a timed effect running out.
type PowerupExpired struct {
	Type maze.PowerupType
}

// BouncePadTriggered reports a pad launching the ball.
type BouncePadTriggered struct {
	Index int
}

// LevelStarted opens an attempt.
type LevelStarted struct {
	Level int
}

// TimeUpdated carries the real elapsed time, emitted once per running
// tick.
type TimeUpdated struct {
	ElapsedMs int64
}

// CoinsChanged carries the wallet balance after a credit.
type CoinsChanged struct {
	Total int
}

// LifeGained reports the wallet's new life total after a pickup.
type LifeGained struct {
	Total int
}

// TimeWarpActivated reports the purchased slow-time burst kicking in.
type TimeWarpActivated struct{}

// LifeLost reports the wallet's remaining lives after a fall.
type LifeLost struct {
	Remaining int
}

// Won closes a successful attempt with its score breakdown.
type Won struct {
	TimeMs    int64
	Stars     int
	Coins     int // coins collected during the attempt
	IsNewBest bool
	Reward    int // wallet coins credited for the win
}

// Lost closes a failed attempt that can be retried.
type Lost struct {
	Remaining int
}

// GameOver closes a failed attempt with no lives left.
type GameOver struct{}

func (WallHit) event()            {}
func (FellInHole) event()         {}
func (ShieldBurst) event()        {}
func (ReachedGoal) event()        {}
func (CoinCollected) event()      {}
func (LifeCollected) event()      {}
func (PowerupCollected) event()   {}
func (PowerupExpired) event()     {}
func (BouncePadTriggered) event() {}
func (LevelStarted) event()       {}
func (TimeUpdated) event()        {}
func (CoinsChanged) event()       {}
func (LifeGained) event()         {}
func (TimeWarpActivated) event()  {}
func (LifeLost) event()           {}
func (Won) event()                {}
func (Lost) event()               {}
func (GameOver) event()           {}
