package sim

import (
	"errors"
	"math"
	"testing"

	"github.com/slowbox/slowbox/scene"
	"github.com/slowbox/slowbox/shaping"
	"github.com/slowbox/slowbox/vmath"
)

const dt = 1.0 / 60.0

// wallOnly replaces the generated scene with just the boundary walls so
// tests control the geometry exactly.
func wallOnly(s *Simulator) {
	s.scene = scene.New(900, 600, []scene.Obstacle{
		scene.Wall(scene.WallLeft, 900, 600),
		scene.Wall(scene.WallRight, 900, 600),
		scene.Wall(scene.WallTop, 900, 600),
		scene.Wall(scene.WallBottom, 900, 600),
	})
}

func newTestSim() *Simulator {
	s := New(DefaultOptions())
	wallOnly(s)
	s.agent.Pos = vmath.V(450, 300)
	s.agent.Vel = vmath.Zero
	return s
}

func TestHeadOnApproachStopsAtContactDistance(t *testing.T) {
	for _, m := range shaping.Models() {
		s := newTestSim()
		s.SetModel(m)
		s.agent.Pos = vmath.V(100, 300)

		var last Diagnostics
		for i := 0; i < 1200; i++ {
			last = s.Step(vmath.V(-1, 0), dt)
		}

		// The agent must never cross the wall, and the steady state must
		// sit at or above the contact distance band.
		if s.agent.Pos.X < s.agent.Radius {
			t.Errorf("%v: agent crossed the boundary wall, x=%v", m, s.agent.Pos.X)
		}
		if last.Distance > s.params.DSlow {
			t.Errorf("%v: agent never reached the slowing band, clearance %v", m, last.Distance)
		}
		if last.AppliedSpeed > 1.0 {
			t.Errorf("%v: expected near-zero speed at the wall, got %v", m, last.AppliedSpeed)
		}
	}
}

func TestTangentialSlideAtFullSpeed(t *testing.T) {
	s := newTestSim()
	// Park the agent in the contact zone of the left wall, then drive
	// parallel to it. Tangential motion must be unconstrained.
	s.agent.Pos = vmath.V(s.agent.Radius+0.5, 300)

	// Long enough to reach the speed cap, short enough that the bottom
	// wall never enters the slowing band.
	var last Diagnostics
	for i := 0; i < 50; i++ {
		last = s.Step(vmath.V(0, 1), dt)
	}
	if math.Abs(last.AppliedSpeed-s.opts.MaxSpeed) > 1e-6 {
		t.Errorf("expected full tangential speed %v, got %v", s.opts.MaxSpeed, last.AppliedSpeed)
	}
	if s.agent.Pos.X > s.agent.Radius+1 {
		t.Errorf("agent drifted away from the wall, x=%v", s.agent.Pos.X)
	}
}

func TestAgentStaysInsideField(t *testing.T) {
	s := New(DefaultOptions())
	dirs := []vmath.Vec2{
		vmath.V(-1, 0), vmath.V(1, 0), vmath.V(0, -1), vmath.V(0, 1),
		vmath.V(-1, -1).Normalize(), vmath.V(1, 1).Normalize(),
	}
	for _, dir := range dirs {
		for i := 0; i < 600; i++ {
			s.Step(dir, dt)
			p := s.Agent().Pos
			r := s.Agent().Radius
			if p.X < r-1e-6 || p.X > s.scene.Width-r+1e-6 ||
				p.Y < r-1e-6 || p.Y > s.scene.Height-r+1e-6 {
				t.Fatalf("agent left the field at %+v driving %+v", p, dir)
			}
		}
	}
}

func TestPenetrationBackstop(t *testing.T) {
	s := newTestSim()
	s.scene = scene.New(900, 600, []scene.Obstacle{
		scene.Wall(scene.WallLeft, 900, 600),
		scene.Wall(scene.WallRight, 900, 600),
		scene.Wall(scene.WallTop, 900, 600),
		scene.Wall(scene.WallBottom, 900, 600),
		scene.Circle(vmath.V(400, 300), 50),
	})
	// Teleport the agent inside the circle: the backstop must project it
	// back out on the next step.
	s.agent.Pos = vmath.V(410, 300)
	s.agent.Vel = vmath.Zero
	s.Step(vmath.Zero, dt)

	d := s.agent.Pos.Distance(vmath.V(400, 300))
	if d < 50+s.agent.Radius {
		t.Errorf("agent still penetrates the circle: center distance %v", d)
	}
}

func TestLargeTimestepDoesNotTunnel(t *testing.T) {
	s := newTestSim()
	s.agent.Pos = vmath.V(120, 300)
	// One giant step at full speed toward the wall.
	s.agent.Vel = vmath.V(-s.opts.MaxSpeed, 0)
	s.Step(vmath.V(-1, 0), 0.5)
	if s.agent.Pos.X < s.agent.Radius {
		t.Errorf("agent tunneled through the wall, x=%v", s.agent.Pos.X)
	}
}

func TestRandomizeReplacesSceneAtomically(t *testing.T) {
	s := New(DefaultOptions())
	before := s.Scene()
	beforePrint := before.Fingerprint()

	s.Randomize()
	after := s.Scene()

	if before == after {
		t.Fatal("randomize must install a new scene value")
	}
	if beforePrint != before.Fingerprint() {
		t.Error("previous scene mutated by randomize")
	}
	if !after.IsFree(s.Agent().Pos, s.Agent().Radius, 0) {
		t.Error("agent respawned inside an obstacle")
	}
	if s.Agent().Vel != vmath.Zero {
		t.Error("velocity must reset on randomize")
	}
}

func TestNudgeRejectionKeepsParams(t *testing.T) {
	s := New(DefaultOptions())
	before := s.Params()
	// Stock params: DSlow 30, DStop 1. Driving DStop up repeatedly must
	// eventually reject and leave everything as-is.
	var err error
	for i := 0; i < 20; i++ {
		if err = s.NudgeStop(1); err != nil {
			break
		}
	}
	if !errors.Is(err, shaping.ErrInvalidParameter) {
		t.Fatalf("expected eventual rejection, got %v", err)
	}
	after := s.Params()
	if after.DSlow != before.DSlow || after.RepelGain != before.RepelGain {
		t.Errorf("rejected nudge changed unrelated parameters: %+v", after)
	}
	if after.DStop >= after.DSlow {
		t.Errorf("invariant broken: %+v", after)
	}
}

type countingRecorder struct {
	n    int
	last Diagnostics
}

func (c *countingRecorder) Record(d Diagnostics) {
	c.n++
	c.last = d
}

func TestRecorderReceivesOneRecordPerTick(t *testing.T) {
	s := newTestSim()
	rec := &countingRecorder{}
	s.SetRecorder(rec)
	for i := 0; i < 10; i++ {
		s.Step(vmath.V(1, 0), dt)
	}
	if rec.n != 10 {
		t.Errorf("expected 10 records, got %d", rec.n)
	}
	if rec.last.Tick != 10 {
		t.Errorf("expected tick 10, got %d", rec.last.Tick)
	}
	if math.Abs(rec.last.Time-10*dt) > 1e-9 {
		t.Errorf("expected time %v, got %v", 10*dt, rec.last.Time)
	}
}

func TestFrictionDtScaling(t *testing.T) {
	// Two simulators coasting with no input: one at 60 Hz, one at 30 Hz.
	// After the same elapsed time the decayed speeds must match closely.
	a := newTestSim()
	b := newTestSim()
	a.agent.Vel = vmath.V(100, 0)
	b.agent.Vel = vmath.V(100, 0)

	for i := 0; i < 60; i++ {
		a.Step(vmath.Zero, 1.0/60.0)
	}
	for i := 0; i < 30; i++ {
		b.Step(vmath.Zero, 1.0/30.0)
	}

	va := a.Agent().Vel.Length()
	vb := b.Agent().Vel.Length()
	if math.Abs(va-vb) > 0.5 {
		t.Errorf("friction is not dt-scale-correct: 60Hz %v vs 30Hz %v", va, vb)
	}
}
