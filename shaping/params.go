package shaping

import (
	"errors"
	"fmt"

	"github.com/slowbox/slowbox/parameter"
)

// ErrInvalidParameter marks a rejected parameter update. The prior values
// are always retained on rejection; no partial update is ever committed.
var ErrInvalidParameter = errors.New("invalid shaping parameter")

// Params are the live-tunable shaping thresholds, read as a snapshot once
// per tick. Invariant: 0 <= DStop < DSlow, RepelGain >= 0.
type Params struct {
	// DSlow is the distance at which slowing begins.
	DSlow float64
	// DStop is the distance at which motion toward the obstacle is fully
	// blocked.
	DStop float64
	// RepelGain scales the inverse-square repulsion term of the
	// repulsion and hybrid models.
	RepelGain float64
}

// DefaultParams returns the stock shipping thresholds.
func DefaultParams() Params {
	return Params{
		DSlow:     parameter.SlowDist,
		DStop:     parameter.StopDist,
		RepelGain: parameter.RepelGain,
	}
}

// Validate checks the parameter invariant.
func (p Params) Validate() error {
	if p.DStop < 0 {
		return fmt.Errorf("%w: d_stop %.2f < 0", ErrInvalidParameter, p.DStop)
	}
	if p.DSlow <= p.DStop {
		return fmt.Errorf("%w: d_slow %.2f must exceed d_stop %.2f", ErrInvalidParameter, p.DSlow, p.DStop)
	}
	if p.RepelGain < 0 {
		return fmt.Errorf("%w: repulsion gain %.2f < 0", ErrInvalidParameter, p.RepelGain)
	}
	return nil
}

// NudgeSlow moves DSlow by sign steps of the distance increment. The
// update is rejected wholesale when it would break the invariant.
func (p *Params) NudgeSlow(sign int) error {
	next := *p
	next.DSlow += float64(sign) * parameter.DistStep
	return p.commit(next)
}

// NudgeStop moves DStop by sign steps of the distance increment.
func (p *Params) NudgeStop(sign int) error {
	next := *p
	next.DStop += float64(sign) * parameter.DistStep
	return p.commit(next)
}

// NudgeRepel moves RepelGain by sign steps of the gain increment.
func (p *Params) NudgeRepel(sign int) error {
	next := *p
	next.RepelGain += float64(sign) * parameter.RepelStep
	return p.commit(next)
}

func (p *Params) commit(next Params) error {
	if err := next.Validate(); err != nil {
		return err
	}
	*p = next
	return nil
}
