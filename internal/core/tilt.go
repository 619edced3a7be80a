package core

// Tilt is one frame of tilt input with components normalized to [-1, 1].
// The engine is agnostic to where the tilt comes from: a device sensor,
// a touch drag or keyboard emulation all produce the same shape.
// A missing sample is represented by the zero value (no tilt).
type Tilt struct {
	X float64
	Y float64
}

// Clamped returns the tilt with both components limited to [-1, 1].
func (t Tilt) Clamped() Tilt {
	return Tilt{
		X: Clamp(t.X, -1, 1),
		Y: Clamp(t.Y, -1, 1),
	}
}

// IsZero reports whether no tilt is applied this frame.
func (t Tilt) IsZero() bool {
	return t.X == 0 && t.Y == 0
}
