package scene

import (
	"math/rand"

	"github.com/slowbox/slowbox/parameter"
	"github.com/slowbox/slowbox/vmath"
)

// GenConfig controls scene generation.
type GenConfig struct {
	Width, Height float64
	Circles       int
	RadiusMin     float64
	RadiusMax     float64
	Margin        float64 // keep random circles this far from the boundary
	Clearance     float64 // minimum gap between placed obstacles
}

// DefaultGenConfig returns the generation parameters of the stock scene.
func DefaultGenConfig() GenConfig {
	return GenConfig{
		Width:     parameter.FieldWidth,
		Height:    parameter.FieldHeight,
		Circles:   parameter.RandomCircles,
		RadiusMin: parameter.CircleRadiusMin,
		RadiusMax: parameter.CircleRadiusMax,
		Margin:    parameter.CircleMargin,
		Clearance: parameter.PlaceClearance,
	}
}

// Generate builds a fresh scene: boundary walls, the fixed block-and-rail
// layout, and cfg.Circles randomly placed circles that keep cfg.Clearance
// from everything already placed.
func Generate(rng *rand.Rand, cfg GenConfig) *Scene {
	obstacles := []Obstacle{
		Wall(WallLeft, cfg.Width, cfg.Height),
		Wall(WallRight, cfg.Width, cfg.Height),
		Wall(WallTop, cfg.Width, cfg.Height),
		Wall(WallBottom, cfg.Width, cfg.Height),
	}
	obstacles = append(obstacles, fixedLayout()...)

	s := &Scene{Width: cfg.Width, Height: cfg.Height, obstacles: obstacles}
	for i := 0; i < cfg.Circles; i++ {
		o, ok := placeCircle(rng, s, cfg)
		if !ok {
			break
		}
		s.obstacles = append(s.obstacles, o)
	}
	return s
}

// fixedLayout returns the table blocks and rail segments present in every
// scene regardless of randomization.
func fixedLayout() []Obstacle {
	return []Obstacle{
		RectXYWH(120, 380, 240, 40),
		RectXYWH(520, 120, 220, 40),
		RectXYWH(420, 260, 40, 200),
		Segment(vmath.V(80, 140), vmath.V(300, 140)),
		Segment(vmath.V(600, 460), vmath.V(820, 520)),
		Segment(vmath.V(200, 50), vmath.V(400, 250)),
		Segment(vmath.V(650, 300), vmath.V(750, 100)),
		Segment(vmath.V(100, 480), vmath.V(350, 350)),
	}
}

func placeCircle(rng *rand.Rand, s *Scene, cfg GenConfig) (Obstacle, bool) {
	for attempt := 0; attempt < parameter.PlaceAttempts; attempt++ {
		r := cfg.RadiusMin + rng.Float64()*(cfg.RadiusMax-cfg.RadiusMin)
		x := r + cfg.Margin + rng.Float64()*(cfg.Width-2*(r+cfg.Margin))
		y := r + cfg.Margin + rng.Float64()*(cfg.Height-2*(r+cfg.Margin))
		c := vmath.V(x, y)
		if s.IsFree(c, r, cfg.Clearance) {
			return Circle(c, r), true
		}
	}
	return Obstacle{}, false
}

// SpawnPoint finds a free position for an agent of radius r, falling back
// to the field center when no free spot is found.
func SpawnPoint(rng *rand.Rand, s *Scene, r float64) vmath.Vec2 {
	lo := r + parameter.SpawnMargin
	for attempt := 0; attempt < parameter.SpawnAttempts; attempt++ {
		p := vmath.V(
			lo+rng.Float64()*(s.Width-2*lo),
			lo+rng.Float64()*(s.Height-2*lo),
		)
		if s.IsFree(p, r, parameter.PlaceClearance) {
			return p
		}
	}
	return vmath.V(s.Width/2, s.Height/2)
}
