// Package vmath provides the float64 vector and scalar primitives used by
// the geometry and shaping code. All operations are total: degenerate
// inputs produce defined defaults instead of NaN or division by zero.
package vmath

// Clamp returns x clamped to [lo, hi].
func Clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// Clamp01 returns x clamped to [0, 1].
func Clamp01(x float64) float64 { return Clamp(x, 0, 1) }

// Lerp returns the linear interpolation between a and b at t (unclamped).
func Lerp(a, b, t float64) float64 { return a + (b-a)*t }
