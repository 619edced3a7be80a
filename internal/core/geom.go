// Package core contains pure geometry and input primitives shared by the
// maze generator, the physics engine and the terminal renderer.
// It has no external dependencies to keep game logic pure and testable.
package core

import "math"

// Vec is a 2D point or vector in world units (pixels).
type Vec struct {
	X float64
	Y float64
}

// V is a shorthand constructor for Vec.
func V(x, y float64) Vec {
	return Vec{X: x, Y: y}
}

// Add returns v + w.
func (v Vec) Add(w Vec) Vec {
	return Vec{v.X + w.X, v.Y + w.Y}
}

// Sub returns v - w.
func (v Vec) Sub(w Vec) Vec {
	return Vec{v.X - w.X, v.Y - w.Y}
}

// Scale returns v scaled by s.
func (v Vec) Scale(s float64) Vec {
	return Vec{v.X * s, v.Y * s}
}

// Len returns the vector length.
func (v Vec) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Normalize returns a unit-length copy of v. The zero vector normalizes
// to itself so callers never divide by zero.
func (v Vec) Normalize() Vec {
	l := v.Len()
	if l == 0 {
		return Vec{}
	}
	return Vec{v.X / l, v.Y / l}
}

// Dist returns the distance between two points.
func Dist(a, b Vec) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// Rect is an axis-aligned rectangle in world units.
type Rect struct {
	X float64
	Y float64
	W float64
	H float64
}

// NewRect creates a rectangle from its top-left corner and size.
func NewRect(x, y, w, h float64) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the X coordinate of the right edge.
func (r Rect) Right() float64 {
	return r.X + r.W
}

// Bottom returns the Y coordinate of the bottom edge.
func (r Rect) Bottom() float64 {
	return r.Y + r.H
}

// Center returns the center point of the rectangle.
func (r Rect) Center() Vec {
	return Vec{r.X + r.W/2, r.Y + r.H/2}
}

// Contains reports whether the point lies inside the rectangle.
// Edges are half-open: top/left edges are inside, right/bottom are not.
func (r Rect) Contains(p Vec) bool {
	return p.X >= r.X && p.X < r.Right() && p.Y >= r.Y && p.Y < r.Bottom()
}

// Intersects reports whether two rectangles overlap. Rectangles that
// merely touch along an edge do not intersect.
func (r Rect) Intersects(o Rect) bool {
	return r.X < o.Right() && r.Right() > o.X && r.Y < o.Bottom() && r.Bottom() > o.Y
}

// ClosestPoint returns the point inside the rectangle nearest to p.
// For a point already inside, that is p itself.
func (r Rect) ClosestPoint(p Vec) Vec {
	return Vec{
		X: Clamp(p.X, r.X, r.Right()),
		Y: Clamp(p.Y, r.Y, r.Bottom()),
	}
}

// CircleOverlaps reports whether a circle at c with radius rad overlaps
// the rectangle. The test is strict: touching exactly does not count.
func (r Rect) CircleOverlaps(c Vec, rad float64) bool {
	cp := r.ClosestPoint(c)
	dx := c.X - cp.X
	dy := c.Y - cp.Y
	return dx*dx+dy*dy < rad*rad
}

// Translate returns a copy of the rectangle shifted by d.
func (r Rect) Translate(d Vec) Rect {
	return Rect{r.X + d.X, r.Y + d.Y, r.W, r.H}
}

// Clamp limits v to the inclusive range [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ClampI limits v to the inclusive integer range [lo, hi].
func ClampI(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
