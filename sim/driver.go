// Package sim drives the simulation: one Step per tick integrates the
// commanded velocity, shapes it against the nearest obstacle, moves the
// agent and emits a diagnostics record.
package sim

import (
	"math"
	"math/rand"

	"github.com/slowbox/slowbox/parameter"
	"github.com/slowbox/slowbox/scene"
	"github.com/slowbox/slowbox/shaping"
	"github.com/slowbox/slowbox/vmath"
)

// refDT is the reference tick the friction constant is calibrated for.
const refDT = 1.0 / 60.0

// Agent is the controllable dot.
type Agent struct {
	Pos    vmath.Vec2
	Vel    vmath.Vec2
	Radius float64
}

// Diagnostics is the per-tick record handed to the recorder and the
// presentation layer.
type Diagnostics struct {
	Tick  int64
	Time  float64
	Model shaping.Model
	// Distance is the clearance between the agent surface and the
	// nearest obstacle after the move, >= 0.
	Distance float64
	// RawSpeed is the commanded speed before shaping.
	RawSpeed float64
	// AppliedSpeed is the shaped speed actually integrated.
	AppliedSpeed float64
	// Factor is the damping factor applied to the approach component.
	Factor float64
	// Contact reports that the agent is within the stop distance.
	Contact bool
	Pos     vmath.Vec2
}

// Recorder receives one record per tick.
type Recorder interface {
	Record(Diagnostics)
}

// Options configure a Simulator.
type Options struct {
	MaxSpeed     float64
	Accel        float64
	IdleFriction float64
	AgentRadius  float64
	Params       shaping.Params
	Model        shaping.Model
	Gen          scene.GenConfig
	Seed         int64
}

// DefaultOptions returns the stock tuning.
func DefaultOptions() Options {
	return Options{
		MaxSpeed:     parameter.MaxSpeed,
		Accel:        parameter.Accel,
		IdleFriction: parameter.IdleFriction,
		AgentRadius:  parameter.AgentRadius,
		Params:       shaping.DefaultParams(),
		Model:        shaping.ModelLinear,
		Gen:          scene.DefaultGenConfig(),
	}
}

// Simulator owns the scene, the shaping parameters and the agent state.
// Single-threaded: all methods are called from the tick loop.
type Simulator struct {
	opts     Options
	scene    *scene.Scene
	params   shaping.Params
	model    shaping.Model
	agent    Agent
	rng      *rand.Rand
	tick     int64
	now      float64
	recorder Recorder
}

// New builds a simulator with a freshly generated scene and the agent
// spawned in free space.
func New(opts Options) *Simulator {
	rng := rand.New(rand.NewSource(opts.Seed))
	s := &Simulator{
		opts:   opts,
		params: opts.Params,
		model:  opts.Model,
		rng:    rng,
	}
	s.scene = scene.Generate(rng, opts.Gen)
	s.agent = Agent{
		Pos:    scene.SpawnPoint(rng, s.scene, opts.AgentRadius),
		Radius: opts.AgentRadius,
	}
	return s
}

// SetRecorder installs the per-tick record sink. A nil recorder disables
// emission.
func (s *Simulator) SetRecorder(r Recorder) { s.recorder = r }

// Scene returns the current obstacle set for rendering.
func (s *Simulator) Scene() *scene.Scene { return s.scene }

// Agent returns the current agent state.
func (s *Simulator) Agent() Agent { return s.agent }

// Model returns the active shaping model.
func (s *Simulator) Model() shaping.Model { return s.model }

// SetModel switches the active model. Switching is stateless; no
// per-model state survives the switch.
func (s *Simulator) SetModel(m shaping.Model) {
	if m.Valid() {
		s.model = m
	}
}

// Params returns a snapshot of the shaping parameters.
func (s *Simulator) Params() shaping.Params { return s.params }

// NudgeSlow adjusts the slowing distance; rejected updates leave all
// parameters unchanged.
func (s *Simulator) NudgeSlow(sign int) error { return s.params.NudgeSlow(sign) }

// NudgeStop adjusts the contact distance.
func (s *Simulator) NudgeStop(sign int) error { return s.params.NudgeStop(sign) }

// NudgeRepel adjusts the repulsion gain.
func (s *Simulator) NudgeRepel(sign int) error { return s.params.NudgeRepel(sign) }

// Randomize replaces the obstacle set wholesale and respawns the agent.
// Called between ticks only, so no tick ever observes a partial scene.
func (s *Simulator) Randomize() {
	s.scene = scene.Generate(s.rng, s.opts.Gen)
	s.agent.Pos = scene.SpawnPoint(s.rng, s.scene, s.agent.Radius)
	s.agent.Vel = vmath.Zero
}

// Step advances the simulation by dt seconds. dir is the normalized input
// direction for this tick (zero when no key is held).
func (s *Simulator) Step(dir vmath.Vec2, dt float64) Diagnostics {
	// Integrate commanded acceleration into the raw velocity.
	if dir.IsZero() {
		// Soft friction, rescaled so variable frame rates decay at the
		// same rate per second.
		s.agent.Vel = s.agent.Vel.Scale(math.Pow(s.opts.IdleFriction, dt/refDT))
	} else {
		s.agent.Vel = s.agent.Vel.Add(dir.Scale(s.opts.Accel * dt))
	}
	s.agent.Vel = s.agent.Vel.ClampMagnitude(s.opts.MaxSpeed)
	raw := s.agent.Vel

	// Shape against the nearest obstacle, measured from the agent
	// surface rather than its center.
	_, hit := s.scene.Nearest(s.agent.Pos)
	res := shaping.Shape(raw, inflate(hit, s.agent.Radius), s.params, s.model)

	// First-order position integration.
	s.agent.Pos = s.agent.Pos.Add(res.Applied.Scale(dt))
	s.resolvePenetration()
	s.clampToField()

	// The shaped velocity is the starting point of the next tick.
	s.agent.Vel = res.Applied

	s.tick++
	s.now += dt

	_, after := s.scene.Nearest(s.agent.Pos)
	clearance := math.Max(0, effective(after)-s.agent.Radius)
	diag := Diagnostics{
		Tick:         s.tick,
		Time:         s.now,
		Model:        s.model,
		Distance:     clearance,
		RawSpeed:     raw.Length(),
		AppliedSpeed: res.Applied.Length(),
		Factor:       res.Factor,
		Contact:      clearance <= s.params.DStop,
		Pos:          s.agent.Pos,
	}
	if s.recorder != nil {
		s.recorder.Record(diag)
	}
	return diag
}

// inflate converts a point hit into a hit for a disc of radius r: the
// surface distance shrinks by r and contact becomes penetration.
func inflate(h scene.Hit, r float64) scene.Hit {
	sd := effective(h) - r
	out := scene.Hit{Away: h.Away}
	if sd < 0 {
		out.Inside = true
		out.Depth = -sd
	} else {
		out.Distance = sd
	}
	return out
}

// effective folds the inside flag back into a signed distance.
func effective(h scene.Hit) float64 {
	if h.Inside {
		return -h.Depth
	}
	return h.Distance
}

// resolvePenetration is the correctness backstop for discrete
// integration: if a large dt or numerical error pushed the agent into an
// obstacle, project it back out along the surface normal. Multiple
// iterations handle concave corners where several obstacles constrain
// the agent at once. Not part of the shaping models.
func (s *Simulator) resolvePenetration() {
	for iter := 0; iter < parameter.ResolveIterations; iter++ {
		moved := false
		for _, o := range s.scene.Obstacles() {
			h := o.DistanceAndDirection(s.agent.Pos)
			sd := effective(h) - s.agent.Radius
			if sd < 0 {
				s.agent.Pos = s.agent.Pos.Add(h.Away.Scale(-sd + parameter.ResolveSlack))
				moved = true
			}
		}
		if !moved {
			return
		}
	}
}

// clampToField keeps the agent inside the boundary walls even if the
// pushout chain left it outside.
func (s *Simulator) clampToField() {
	r := s.agent.Radius
	s.agent.Pos.X = vmath.Clamp(s.agent.Pos.X, r, s.scene.Width-r)
	s.agent.Pos.Y = vmath.Clamp(s.agent.Pos.Y, r, s.scene.Height-r)
}
