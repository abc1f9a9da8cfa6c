package vmath

import (
	"math"
	"testing"
)

const eps = 1e-9

func almostEqual(a, b float64) bool { return math.Abs(a-b) < eps }

func TestNormalizeZeroSafe(t *testing.T) {
	v := Vec2{}.Normalize()
	if v != Zero {
		t.Errorf("expected zero vector, got %+v", v)
	}

	v = Vec2{X: 1e-12, Y: -1e-12}.Normalize()
	if v != Zero {
		t.Errorf("expected zero vector for sub-epsilon input, got %+v", v)
	}
}

func TestNormalizeOrFallback(t *testing.T) {
	v := Zero.NormalizeOr(RefAxis)
	if v != RefAxis {
		t.Errorf("expected fallback axis, got %+v", v)
	}

	v = V(0, 3).NormalizeOr(RefAxis)
	if !almostEqual(v.X, 0) || !almostEqual(v.Y, 1) {
		t.Errorf("expected (0,1), got %+v", v)
	}
}

func TestNormalizeUnitLength(t *testing.T) {
	v := V(3, 4).Normalize()
	if !almostEqual(v.Length(), 1) {
		t.Errorf("expected unit length, got %f", v.Length())
	}
	if !almostEqual(v.X, 0.6) || !almostEqual(v.Y, 0.8) {
		t.Errorf("expected (0.6,0.8), got %+v", v)
	}
}

func TestDotAndPerp(t *testing.T) {
	a := V(2, 1)
	if !almostEqual(a.Dot(a.Perp()), 0) {
		t.Errorf("perpendicular dot should be zero, got %f", a.Dot(a.Perp()))
	}
	if !almostEqual(V(1, 2).Dot(V(3, 4)), 11) {
		t.Error("dot product mismatch")
	}
}

func TestClampMagnitude(t *testing.T) {
	v := V(30, 40).ClampMagnitude(10)
	if !almostEqual(v.Length(), 10) {
		t.Errorf("expected magnitude 10, got %f", v.Length())
	}
	// Direction preserved.
	if !almostEqual(v.X, 6) || !almostEqual(v.Y, 8) {
		t.Errorf("expected (6,8), got %+v", v)
	}

	// Under the cap: unchanged.
	u := V(1, 1)
	if u.ClampMagnitude(10) != u {
		t.Error("vector under cap should be unchanged")
	}
}

func TestClampScalar(t *testing.T) {
	if Clamp(5, 0, 1) != 1 || Clamp(-5, 0, 1) != 0 || Clamp(0.5, 0, 1) != 0.5 {
		t.Error("scalar clamp mismatch")
	}
}
