// Package scene models the static obstacle field: the four variant
// obstacle type, the playfield-bounded scene, and the nearest-obstacle
// query the shaping engine runs every tick.
package scene

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"

	"github.com/slowbox/slowbox/vmath"
)

// Scene is an immutable set of obstacles inside a bounded playfield.
// Obstacles never change after construction; a randomize request builds a
// whole new Scene and the simulation swaps the pointer between ticks.
type Scene struct {
	Width, Height float64
	obstacles     []Obstacle
}

// New builds a scene from a fixed obstacle list.
func New(width, height float64, obstacles []Obstacle) *Scene {
	return &Scene{Width: width, Height: height, obstacles: obstacles}
}

// Obstacles returns the obstacle list. Callers must treat it as read-only.
func (s *Scene) Obstacles() []Obstacle { return s.obstacles }

// Nearest scans all obstacles and returns the index and hit of the one
// closest to p. Iteration order is fixed; on a tie the first minimum wins,
// so repeated queries from the same point never oscillate.
// Penetrated obstacles sort before everything else, deepest first.
func (s *Scene) Nearest(p vmath.Vec2) (int, Hit) {
	bestIdx := -1
	best := Hit{Distance: math.Inf(1), Away: vmath.RefAxis}
	for i, o := range s.obstacles {
		h := o.DistanceAndDirection(p)
		if hitCloser(h, best) {
			bestIdx = i
			best = h
		}
	}
	return bestIdx, best
}

// hitCloser reports whether a is strictly closer than b, treating
// penetration depth as negative distance.
func hitCloser(a, b Hit) bool {
	return effectiveDistance(a) < effectiveDistance(b)
}

func effectiveDistance(h Hit) float64 {
	if h.Inside {
		return -h.Depth
	}
	return h.Distance
}

// IsFree reports whether a disc of radius r centered at p keeps at least
// clearance from every obstacle.
func (s *Scene) IsFree(p vmath.Vec2, r, clearance float64) bool {
	for _, o := range s.obstacles {
		if o.SignedDistance(p)-r < clearance {
			return false
		}
	}
	return true
}

// Fingerprint returns a stable hash of the obstacle layout, logged so a
// randomized scene can be identified across runs.
func (s *Scene) Fingerprint() uint64 {
	d := xxhash.New()
	var buf [8]byte
	put := func(f float64) {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(f))
		d.Write(buf[:])
	}
	for _, o := range s.obstacles {
		d.Write([]byte{byte(o.Kind)})
		switch o.Kind {
		case KindCircle:
			put(o.Center.X)
			put(o.Center.Y)
			put(o.Radius)
		case KindRect:
			put(o.Center.X)
			put(o.Center.Y)
			put(o.Half.X)
			put(o.Half.Y)
			put(o.Rotation)
		case KindSegment:
			put(o.A.X)
			put(o.A.Y)
			put(o.B.X)
			put(o.B.Y)
		case KindWall:
			d.Write([]byte{byte(o.Side)})
			put(o.Offset)
		}
	}
	return d.Sum64()
}
