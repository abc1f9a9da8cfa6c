package vmath

import "math"

// normEpsilon is the magnitude below which a vector is treated as zero.
// Keeps Normalize total; degenerate directions are resolved by callers
// that need a concrete axis (see RefAxis).
const normEpsilon = 1e-8

// Vec2 is a 2D float64 vector. Value type, no identity.
type Vec2 struct {
	X, Y float64
}

// Zero is the zero vector.
var Zero = Vec2{}

// RefAxis is the fallback direction used when a unit direction is required
// but the source vector is degenerate (zero length).
var RefAxis = Vec2{X: 1, Y: 0}

// V constructs a Vec2.
func V(x, y float64) Vec2 { return Vec2{X: x, Y: y} }

// Add returns v + u.
func (v Vec2) Add(u Vec2) Vec2 { return Vec2{v.X + u.X, v.Y + u.Y} }

// Sub returns v - u.
func (v Vec2) Sub(u Vec2) Vec2 { return Vec2{v.X - u.X, v.Y - u.Y} }

// Scale returns v scaled by s.
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

// Dot returns the dot product of v and u.
func (v Vec2) Dot(u Vec2) float64 { return v.X*u.X + v.Y*u.Y }

// Length returns the Euclidean magnitude of v.
func (v Vec2) Length() float64 { return math.Hypot(v.X, v.Y) }

// LengthSq returns the squared magnitude without the sqrt.
func (v Vec2) LengthSq() float64 { return v.X*v.X + v.Y*v.Y }

// Distance returns |v - u|.
func (v Vec2) Distance(u Vec2) float64 { return v.Sub(u).Length() }

// Normalize returns the unit vector of v, or Zero when v is degenerate.
func (v Vec2) Normalize() Vec2 {
	n := v.Length()
	if n < normEpsilon {
		return Zero
	}
	return Vec2{v.X / n, v.Y / n}
}

// NormalizeOr returns the unit vector of v, or fallback when v is degenerate.
func (v Vec2) NormalizeOr(fallback Vec2) Vec2 {
	n := v.Length()
	if n < normEpsilon {
		return fallback
	}
	return Vec2{v.X / n, v.Y / n}
}

// IsZero reports whether v is degenerate (below the normalization epsilon).
func (v Vec2) IsZero() bool { return v.Length() < normEpsilon }

// Neg returns -v.
func (v Vec2) Neg() Vec2 { return Vec2{-v.X, -v.Y} }

// Perp returns v rotated 90 degrees counter-clockwise.
func (v Vec2) Perp() Vec2 { return Vec2{-v.Y, v.X} }

// ClampMagnitude limits v to maxMag while preserving direction.
// Returns v unchanged if its magnitude is <= maxMag.
func (v Vec2) ClampMagnitude(maxMag float64) Vec2 {
	mag := v.Length()
	if mag <= maxMag || mag < normEpsilon {
		return v
	}
	return v.Scale(maxMag / mag)
}
