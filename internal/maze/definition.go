package maze

import (
	"errors"
	"fmt"
	"math"

	"github.com/TheAppMakerPro/gyro-maze/internal/core"
)

// Geometry constants shared by generation and simulation, in world units.
const (
	WallThickness = 8.0
	HoleRadius    = 12.0
	CoinRadius    = 6.0
	LifeRadius    = 8.0
	PowerupRadius = 9.0
)

// PowerupType enumerates the timed pickups a maze can spawn. The roster
// unlocks progressively with the level number.
type PowerupType int

const (
	PowerupShield PowerupType = iota
	PowerupMagnet
	PowerupSlowMotion
	PowerupShrink
	PowerupGhost
	PowerupDoubleCoins
)

// String returns a stable identifier used in logs and exports.
func (p PowerupType) String() string {
	switch p {
	case PowerupShield:
		return "shield"
	case PowerupMagnet:
		return "magnet"
	case PowerupSlowMotion:
		return "slowmo"
	case PowerupShrink:
		return "shrink"
	case PowerupGhost:
		return "ghost"
	case PowerupDoubleCoins:
		return "doublecoins"
	default:
		return "unknown"
	}
}

// Axis identifies the coordinate a moving wall oscillates on.
type Axis int

const (
	AxisX Axis = iota
	AxisY
)

// String returns "x" or "y".
func (a Axis) String() string {
	if a == AxisX {
		return "x"
	}
	return "y"
}

// PadDirection is the launch direction of a bounce pad.
type PadDirection int

const (
	PadUp PadDirection = iota
	PadDown
	PadLeft
	PadRight
)

// Axis returns the velocity axis the pad acts on.
func (d PadDirection) Axis() Axis {
	if d == PadLeft || d == PadRight {
		return AxisX
	}
	return AxisY
}

// Sign returns the direction sign along the pad's axis. Screen
// coordinates grow rightward and downward.
func (d PadDirection) Sign() float64 {
	if d == PadUp || d == PadLeft {
		return -1
	}
	return 1
}

// String returns a stable identifier used in logs and exports.
func (d PadDirection) String() string {
	switch d {
	case PadUp:
		return "up"
	case PadDown:
		return "down"
	case PadLeft:
		return "left"
	default:
		return "right"
	}
}

// Hole is a circular floor hazard. Falling in loses the attempt.
type Hole struct {
	Pos    core.Vec
	Radius float64
}

// PowerupSpawn is a typed pickup location.
type PowerupSpawn struct {
	Pos    core.Vec
	Type   PowerupType
	Radius float64
}

// BouncePad launches the ball along its direction when overlapped.
type BouncePad struct {
	Rect      core.Rect
	Direction PadDirection
	Force     float64 // velocity magnitude applied on the pad's axis
}

// SpeedZoneKind distinguishes accelerating from braking zones.
type SpeedZoneKind int

const (
	ZoneFast SpeedZoneKind = iota
	ZoneSlow
)

// String returns "fast" or "slow".
func (k SpeedZoneKind) String() string {
	if k == ZoneFast {
		return "fast"
	}
	return "slow"
}

// SpeedZone scales the ball's velocity every frame its center is inside
// the rect. The factor compounds per frame rather than applying once.
type SpeedZone struct {
	Rect       core.Rect
	Kind       SpeedZoneKind
	Multiplier float64
}

// MovingWall oscillates sinusoidally around an origin rectangle. Its
// position is a pure function of game time, so restarting a level resets
// it by resetting the clock.
type MovingWall struct {
	Rect  core.Rect // origin rectangle (phase reference)
	Axis  Axis
	Range float64 // oscillation amplitude in world units
	Speed float64 // angular speed; the offset uses speed/50 rad per second
	Phase float64
}

// RectAt returns the wall's rectangle at the given game time in seconds.
func (m MovingWall) RectAt(gameTime float64) core.Rect {
	offset := math.Sin(gameTime*(m.Speed/50)+m.Phase) * m.Range
	if m.Axis == AxisX {
		return m.Rect.Translate(core.V(offset, 0))
	}
	return m.Rect.Translate(core.V(0, offset))
}

// Definition is the immutable output of the generator: everything a
// session needs to play one level. Generation is a pure function of the
// level number, so definitions can be cached and shared freely.
type Definition struct {
	ID         int
	Name       string
	Tier       Tier
	Width      float64
	Height     float64
	CellSize   float64
	Cols       int
	Rows       int
	OffsetX    float64
	OffsetY    float64
	BallRadius float64

	Start      core.Vec
	Goal       core.Vec
	GoalRadius float64

	Walls       []core.Rect
	Holes       []Hole
	Coins       []core.Vec
	Lives       []core.Vec
	Powerups    []PowerupSpawn
	BouncePads  []BouncePad
	SpeedZones  []SpeedZone
	MovingWalls []MovingWall

	// StarTimes holds the 1/2/3-star time thresholds in milliseconds,
	// largest first. Finishing under StarTimes[2] earns three stars.
	StarTimes [3]int64

	// Cells carries the final wall flags, row-major. Renderers draw from
	// the wall rects; the cells serve path checks and minimaps.
	Cells []Cell
}

// ErrInvalidDefinition marks configuration errors that must abort a
// level load. Wrapped errors carry the specific reason.
var ErrInvalidDefinition = errors.New("maze: invalid definition")

// Validate checks the structural invariants a session relies on. A
// failed validation is fatal for the load but retriable by the caller.
func (d *Definition) Validate() error {
	if d == nil {
		return fmt.Errorf("%w: nil definition", ErrInvalidDefinition)
	}
	if d.Width <= 0 || d.Height <= 0 {
		return fmt.Errorf("%w: canvas %gx%g", ErrInvalidDefinition, d.Width, d.Height)
	}
	if d.BallRadius <= 0 {
		return fmt.Errorf("%w: ball radius %g", ErrInvalidDefinition, d.BallRadius)
	}
	if d.GoalRadius <= 0 {
		return fmt.Errorf("%w: missing goal", ErrInvalidDefinition)
	}
	if len(d.Walls) == 0 {
		return fmt.Errorf("%w: empty wall list", ErrInvalidDefinition)
	}
	bounds := core.NewRect(0, 0, d.Width, d.Height)
	if !bounds.Contains(d.Start) {
		return fmt.Errorf("%w: start %v outside canvas", ErrInvalidDefinition, d.Start)
	}
	if !bounds.Contains(d.Goal) {
		return fmt.Errorf("%w: goal %v outside canvas", ErrInvalidDefinition, d.Goal)
	}
	for _, w := range d.Walls {
		if w.Contains(d.Start) {
			return fmt.Errorf("%w: start inside wall at (%g,%g)", ErrInvalidDefinition, w.X, w.Y)
		}
		if w.Contains(d.Goal) {
			return fmt.Errorf("%w: goal inside wall at (%g,%g)", ErrInvalidDefinition, w.X, w.Y)
		}
	}
	return nil
}

// CellAt returns the published cell at (col, row), nil when out of range.
func (d *Definition) CellAt(col, row int) *Cell {
	if col < 0 || col >= d.Cols || row < 0 || row >= d.Rows {
		return nil
	}
	return &d.Cells[row*d.Cols+col]
}

// CellCenter returns the world-space center of a grid cell.
func (d *Definition) CellCenter(col, row int) core.Vec {
	return core.V(
		d.OffsetX+(float64(col)+0.5)*d.CellSize,
		d.OffsetY+(float64(row)+0.5)*d.CellSize,
	)
}

// StarsFor converts a completion time to a star rating. A completed
// level always earns at least one star, however long it took.
func (d *Definition) StarsFor(elapsedMs int64) int {
	switch {
	case elapsedMs <= d.StarTimes[2]:
		return 3
	case elapsedMs <= d.StarTimes[1]:
		return 2
	default:
		return 1
	}
}
