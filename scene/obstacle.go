package scene

import (
	"math"

	"github.com/slowbox/slowbox/vmath"
)

// Kind discriminates obstacle variants. A closed set: distance math is a
// flat switch over the tag, no dynamic dispatch.
type Kind uint8

const (
	KindCircle Kind = iota
	KindRect
	KindSegment
	KindWall
)

// WallSide identifies which playfield boundary a wall guards.
type WallSide uint8

const (
	WallLeft WallSide = iota
	WallRight
	WallTop
	WallBottom
)

// Obstacle is a tagged union over the four variants. Only the fields of
// the active Kind are meaningful. Obstacles are immutable once placed in
// a Scene.
type Obstacle struct {
	Kind Kind

	// Circle
	Center vmath.Vec2
	Radius float64

	// Rect: center + half extents, rotated by Rotation radians.
	Half     vmath.Vec2
	Rotation float64

	// Segment endpoints.
	A, B vmath.Vec2

	// Wall: boundary plane. Axis 0 constrains X, axis 1 constrains Y.
	// Sign +1 means the playable region lies toward increasing coordinate.
	Axis   int
	Offset float64
	Sign   float64
	Side   WallSide
}

// Hit is the result of a point-to-obstacle query.
type Hit struct {
	// Distance from the query point to the obstacle surface, >= 0.
	// Zero when the point is on or inside the surface.
	Distance float64
	// Away is the unit direction from the obstacle toward the point.
	// This is the repulsion direction. Never zero: degenerate geometry
	// falls back to vmath.RefAxis.
	Away vmath.Vec2
	// Inside reports that the point has crossed the surface.
	Inside bool
	// Depth is how far the point sits beyond the surface when Inside,
	// zero otherwise. Used by the integration backstop to push out.
	Depth float64
}

// Circle builds a circle obstacle.
func Circle(center vmath.Vec2, radius float64) Obstacle {
	return Obstacle{Kind: KindCircle, Center: center, Radius: radius}
}

// Rect builds a rectangle obstacle from center, half extents and rotation.
func Rect(center, half vmath.Vec2, rotation float64) Obstacle {
	return Obstacle{Kind: KindRect, Center: center, Half: half, Rotation: rotation}
}

// RectXYWH builds an axis-aligned rectangle from a top-left corner and size.
func RectXYWH(x, y, w, h float64) Obstacle {
	return Rect(vmath.V(x+w/2, y+h/2), vmath.V(w/2, h/2), 0)
}

// Segment builds a line segment obstacle.
func Segment(a, b vmath.Vec2) Obstacle {
	return Obstacle{Kind: KindSegment, A: a, B: b}
}

// Wall builds a boundary wall for one playfield side.
func Wall(side WallSide, width, height float64) Obstacle {
	o := Obstacle{Kind: KindWall, Side: side}
	switch side {
	case WallLeft:
		o.Axis, o.Offset, o.Sign = 0, 0, 1
	case WallRight:
		o.Axis, o.Offset, o.Sign = 0, width, -1
	case WallTop:
		o.Axis, o.Offset, o.Sign = 1, 0, 1
	case WallBottom:
		o.Axis, o.Offset, o.Sign = 1, height, -1
	}
	return o
}

// Normal returns the wall's inward normal. Zero for non-wall obstacles.
func (o Obstacle) Normal() vmath.Vec2 {
	if o.Kind != KindWall {
		return vmath.Zero
	}
	if o.Axis == 0 {
		return vmath.V(o.Sign, 0)
	}
	return vmath.V(0, o.Sign)
}

// DistanceAndDirection returns the shortest distance from p to the obstacle
// surface and the unit direction pointing from the surface toward p.
func (o Obstacle) DistanceAndDirection(p vmath.Vec2) Hit {
	sd, dir := o.signedDistance(p)
	h := Hit{Away: dir}
	if sd < 0 {
		h.Inside = true
		h.Depth = -sd
	} else {
		h.Distance = sd
	}
	return h
}

// SignedDistance returns the distance from p to the surface, negative when
// p is inside. Used by scene generation clearance checks.
func (o Obstacle) SignedDistance(p vmath.Vec2) float64 {
	sd, _ := o.signedDistance(p)
	return sd
}

func (o Obstacle) signedDistance(p vmath.Vec2) (float64, vmath.Vec2) {
	switch o.Kind {
	case KindCircle:
		return o.circleDistance(p)
	case KindRect:
		return o.rectDistance(p)
	case KindSegment:
		return o.segmentDistance(p)
	case KindWall:
		return o.wallDistance(p)
	}
	return math.Inf(1), vmath.RefAxis
}

func (o Obstacle) circleDistance(p vmath.Vec2) (float64, vmath.Vec2) {
	d := p.Sub(o.Center)
	dir := d.NormalizeOr(vmath.RefAxis)
	return d.Length() - o.Radius, dir
}

func (o Obstacle) rectDistance(p vmath.Vec2) (float64, vmath.Vec2) {
	// Work in the rectangle frame.
	d := p.Sub(o.Center)
	if o.Rotation != 0 {
		cos, sin := math.Cos(-o.Rotation), math.Sin(-o.Rotation)
		d = vmath.V(d.X*cos-d.Y*sin, d.X*sin+d.Y*cos)
	}

	qx := vmath.Clamp(d.X, -o.Half.X, o.Half.X)
	qy := vmath.Clamp(d.Y, -o.Half.Y, o.Half.Y)

	if d.X == qx && d.Y == qy {
		// Inside: depth is the distance to the nearest side; the away
		// direction points from the center toward the point so a pushout
		// exits through the nearest half-plane.
		depth := math.Min(o.Half.X-math.Abs(d.X), o.Half.Y-math.Abs(d.Y))
		return -depth, p.Sub(o.Center).NormalizeOr(vmath.RefAxis)
	}

	diff := vmath.V(d.X-qx, d.Y-qy)
	dir := diff.NormalizeOr(vmath.RefAxis)
	if o.Rotation != 0 {
		cos, sin := math.Cos(o.Rotation), math.Sin(o.Rotation)
		dir = vmath.V(dir.X*cos-dir.Y*sin, dir.X*sin+dir.Y*cos)
	}
	return diff.Length(), dir
}

func (o Obstacle) segmentDistance(p vmath.Vec2) (float64, vmath.Vec2) {
	ab := o.B.Sub(o.A)
	abLenSq := ab.LengthSq()
	if abLenSq < 1e-8 {
		// Degenerate segment behaves as a point.
		d := p.Sub(o.A)
		return d.Length(), d.NormalizeOr(vmath.RefAxis)
	}
	t := vmath.Clamp01(p.Sub(o.A).Dot(ab) / abLenSq)
	closest := o.A.Add(ab.Scale(t))
	d := p.Sub(closest)
	return d.Length(), d.NormalizeOr(vmath.RefAxis)
}

func (o Obstacle) wallDistance(p vmath.Vec2) (float64, vmath.Vec2) {
	coord := p.X
	if o.Axis == 1 {
		coord = p.Y
	}
	// Signed distance along the inward normal; the away direction is the
	// inward normal itself, pointing back into the playable region.
	return o.Sign * (coord - o.Offset), o.Normal()
}
