// Package parameter holds the default tuning values for the sandbox.
// Everything here is overridable through the config file; these are the
// values the simulator ships with.
package parameter

// Playfield dimensions in world units.
const (
	FieldWidth  = 900.0
	FieldHeight = 600.0
)

// Agent movement limits.
const (
	AgentRadius = 12.0
	MaxSpeed    = 240.0
	Accel       = 900.0
	// Friction applied per tick to the commanded velocity when no
	// direction key is held. Matches a 60 FPS reference tick.
	IdleFriction = 0.92
)

// Shaping thresholds and repulsion tuning.
const (
	SlowDist  = 30.0
	StopDist  = 1.0
	RepelGain = 6000.0
	// RepelMax caps the repulsion-induced speed reduction so a single
	// near-contact sample cannot produce an unbounded correction.
	RepelMax = 600.0

	// Keyboard nudge step sizes.
	DistStep  = 5.0
	RepelStep = 500.0
)

// Simulation loop timing.
const (
	DefaultFPS = 60
)

// Scene generation.
const (
	RandomCircles     = 6
	CircleRadiusMin   = 20.0
	CircleRadiusMax   = 60.0
	CircleMargin      = 50.0
	PlaceClearance    = 2.0
	PlaceAttempts     = 200
	SpawnAttempts     = 500
	SpawnMargin       = 10.0
	ResolveIterations = 3
	ResolveSlack      = 0.1
)

// Input handling.
const (
	// Terminals report key presses only; a held direction is considered
	// released once its auto-repeat stream has been silent this long.
	HoldTimeoutMs = 180
)
