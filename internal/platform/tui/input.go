package tui

import (
	"time"

	"github.com/TheAppMakerPro/gyro-maze/internal/core"
)

// keyHoldWindow is how long a single key press counts as "held".
// Terminals deliver no key-up events, only repeats, so a press keeps
// its axis deflected until the repeat stream goes quiet.
const keyHoldWindow = 250 * time.Millisecond

// TiltController turns discrete arrow-key presses into the continuous
// tilt signal the engine expects. A held direction ramps the virtual
// tilt toward full deflection; a released axis decays back to rest.
type TiltController struct {
	ramp    float64 // deflection gained per second held
	decay   float64 // deflection lost per second released
	invertY bool

	x, y         float64
	dirX, dirY   float64
	heldX, heldY time.Time // hold-window expiry per axis
}

// NewTiltController creates a controller with the given feel. Non
// positive rates fall back to a playable default.
func NewTiltController(ramp, decay float64, invertY bool) *TiltController {
	if ramp <= 0 {
		ramp = 3.5
	}
	if decay <= 0 {
		decay = 5.0
	}
	return &TiltController{ramp: ramp, decay: decay, invertY: invertY}
}

// PressX registers a horizontal press: sign -1 tilts left, +1 right.
func (t *TiltController) PressX(sign float64, at time.Time) {
	t.dirX = sign
	t.heldX = at.Add(keyHoldWindow)
}

// PressY registers a vertical press: sign -1 tilts up, +1 down, in
// screen coordinates.
func (t *TiltController) PressY(sign float64, at time.Time) {
	t.dirY = sign
	t.heldY = at.Add(keyHoldWindow)
}

// Step advances the deflection by dt seconds and returns the tilt to
// feed the engine this frame.
func (t *TiltController) Step(dt float64, now time.Time) core.Tilt {
	if now.After(t.heldX) {
		t.dirX = 0
	}
	if now.After(t.heldY) {
		t.dirY = 0
	}
	t.x = advanceAxis(t.x, t.dirX, t.ramp, t.decay, dt)
	t.y = advanceAxis(t.y, t.dirY, t.ramp, t.decay, dt)
	return t.Value()
}

// Value returns the current tilt without advancing it.
func (t *TiltController) Value() core.Tilt {
	y := t.y
	if t.invertY {
		y = -y
	}
	return core.Tilt{X: t.x, Y: y}
}

// Reset drops all deflection, for level restarts.
func (t *TiltController) Reset() {
	t.x, t.y = 0, 0
	t.dirX, t.dirY = 0, 0
	t.heldX, t.heldY = time.Time{}, time.Time{}
}

// advanceAxis moves one axis toward its held direction, or back toward
// rest when released. Reversing direction ramps through zero rather
// than snapping.
func advanceAxis(v, dir, ramp, decay, dt float64) float64 {
	switch {
	case dir > 0:
		return core.Clamp(v+ramp*dt, -1, 1)
	case dir < 0:
		return core.Clamp(v-ramp*dt, -1, 1)
	case v > 0:
		return max(0, v-decay*dt)
	case v < 0:
		return min(0, v+decay*dt)
	}
	return v
}
