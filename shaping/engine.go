// Package shaping implements the velocity-shaping core: four damping
// models that reduce the approach component of a raw velocity as the
// agent nears an obstacle.
//
// All four models share the same contract: the damping factor f(d) is 1
// for d >= DSlow (exact passthrough), exactly 0 at d <= DStop, and
// monotonically non-decreasing in d. Only the approach component is ever
// damped; tangential and receding motion always passes through unchanged,
// so the agent can slide along a surface at full speed.
package shaping

import (
	"math"

	"github.com/slowbox/slowbox/parameter"
	"github.com/slowbox/slowbox/scene"
	"github.com/slowbox/slowbox/vmath"
)

// Result reports what Shape did to the raw velocity.
type Result struct {
	// Applied is the shaped output velocity.
	Applied vmath.Vec2
	// Factor is the damping factor in [0,1] applied to the approach
	// component; 1 when the agent was not approaching.
	Factor float64
	// ApproachSpeed is the raw speed toward the obstacle, <= 0 when
	// moving away or tangentially.
	ApproachSpeed float64
}

// Shape reshapes raw according to the active model, given the nearest
// obstacle hit for the agent's current clearance. hit.Distance must
// already account for the agent radius. Total over its domain: no error
// returns once Params validate.
func Shape(raw vmath.Vec2, hit scene.Hit, p Params, m Model) Result {
	toward := hit.Away.Neg()
	approach := raw.Dot(toward)
	if approach <= 0 {
		// Moving away or tangentially: never constrained.
		return Result{Applied: raw, Factor: 1, ApproachSpeed: approach}
	}

	d := hit.Distance
	if hit.Inside {
		d = 0
	}

	f := factor(m, d, approach, p)
	approachVec := toward.Scale(approach)
	tangential := raw.Sub(approachVec)
	return Result{
		Applied:       tangential.Add(approachVec.Scale(f)),
		Factor:        f,
		ApproachSpeed: approach,
	}
}

// Factor returns the damping factor alone, for plotting and the HUD.
// approach is the raw approach speed; the repulsion models reduce speed
// by an absolute amount, so their relative factor depends on it.
func Factor(m Model, d, approach float64, p Params) float64 {
	if approach <= 0 {
		return 1
	}
	return factor(m, d, approach, p)
}

func factor(m Model, d, approach float64, p Params) float64 {
	switch m {
	case ModelCosine:
		return cosineFactor(d, p)
	case ModelRepel:
		return repelFactor(d, approach, p)
	case ModelHybrid:
		return vmath.Clamp01(linearFactor(d, p) * repelFactor(d, approach, p))
	default:
		return linearFactor(d, p)
	}
}

// linearFactor ramps from 0 at DStop to 1 at DSlow.
func linearFactor(d float64, p Params) float64 {
	return vmath.Clamp01((d - p.DStop) / math.Max(1e-6, p.DSlow-p.DStop))
}

// cosineFactor applies a cosine ease to the linear fraction, giving zero
// slope at both band edges.
func cosineFactor(d float64, p Params) float64 {
	t := linearFactor(d, p)
	return 0.5 - 0.5*math.Cos(math.Pi*t)
}

// repelFactor subtracts an inverse-square repulsion term from the
// approach speed. The term K*(1/d - 1/DSlow)/d^2 vanishes at the band
// edge, so passthrough at d >= DSlow is exact, and DStop remains a hard
// floor regardless of the computed value.
func repelFactor(d, approach float64, p Params) float64 {
	if d <= p.DStop {
		return 0
	}
	if d >= p.DSlow {
		return 1
	}
	reduction := p.RepelGain * (1/d - 1/p.DSlow) / (d * d)
	reduction = vmath.Clamp(reduction, 0, parameter.RepelMax)
	return vmath.Clamp01((approach - reduction) / approach)
}
