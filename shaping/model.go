package shaping

import "fmt"

// Model selects the active damping curve. Exactly one model is active at a
// time; switching is stateless, nothing carries across a switch.
type Model uint8

const (
	// ModelLinear scales the approach component linearly from full speed
	// at DSlow down to zero at DStop.
	ModelLinear Model = iota + 1
	// ModelCosine uses a cosine ease over the same band, removing the
	// slope discontinuity at DSlow.
	ModelCosine
	// ModelRepel subtracts an inverse-square repulsion term from the
	// approach speed inside the band.
	ModelRepel
	// ModelHybrid composes the linear clamp with the repulsion factor
	// multiplicatively.
	ModelHybrid
)

var modelNames = map[Model]string{
	ModelLinear: "Linear Ramp",
	ModelCosine: "Cosine Ramp",
	ModelRepel:  "Repulsion",
	ModelHybrid: "Hybrid",
}

// String returns the display name of the model.
func (m Model) String() string {
	if name, ok := modelNames[m]; ok {
		return name
	}
	return fmt.Sprintf("Model(%d)", uint8(m))
}

// Valid reports whether m is one of the four defined models.
func (m Model) Valid() bool { return m >= ModelLinear && m <= ModelHybrid }

// ParseModel maps the numeric selector keys "1".."4" to a model.
func ParseModel(s string) (Model, error) {
	switch s {
	case "1":
		return ModelLinear, nil
	case "2":
		return ModelCosine, nil
	case "3":
		return ModelRepel, nil
	case "4":
		return ModelHybrid, nil
	}
	return 0, fmt.Errorf("unknown model %q", s)
}

// Models lists the four models in selector order, for HUD and figures.
func Models() []Model {
	return []Model{ModelLinear, ModelCosine, ModelRepel, ModelHybrid}
}
