package input

import "github.com/slowbox/slowbox/shaping"

// Action is a discrete command decoded from a key press. Movement is not
// an Action; held directions are tracked continuously and sampled per
// tick.
type Action uint8

const (
	ActionNone Action = iota
	ActionQuit
	ActionRandomize
	ActionSelectModel
	ActionSlowDown
	ActionSlowUp
	ActionStopDown
	ActionStopUp
	ActionRepelDown
	ActionRepelUp
	ActionToggleMute
	ActionTogglePause
)

// Command pairs an action with its payload.
type Command struct {
	Action Action
	// Model is set for ActionSelectModel.
	Model shaping.Model
}
