// Package input decodes tcell key events into per-tick snapshots: a
// normalized movement direction plus the discrete commands issued since
// the previous tick. The snapshot decouples simulation stepping from the
// terminal's event dispatch timing.
package input

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/slowbox/slowbox/parameter"
	"github.com/slowbox/slowbox/shaping"
	"github.com/slowbox/slowbox/vmath"
)

// direction indexes the four held movement axes.
type direction uint8

const (
	dirLeft direction = iota
	dirRight
	dirUp
	dirDown
	dirCount
)

// Frame is the per-tick input snapshot.
type Frame struct {
	// Dir is the normalized movement direction, zero when nothing is
	// held. +Y points down, matching world coordinates.
	Dir vmath.Vec2
	// Commands are the discrete actions issued since the last snapshot,
	// in arrival order.
	Commands []Command
}

// Machine accumulates key events between ticks. Terminals report key
// presses but never releases, so a held direction is inferred from the
// auto-repeat stream: it stays active until no repeat has arrived for
// the hold timeout.
type Machine struct {
	holdTimeout time.Duration
	lastSeen    [dirCount]time.Time
	pending     []Command
}

// NewMachine builds an input machine with the default hold timeout.
func NewMachine() *Machine {
	return &Machine{holdTimeout: parameter.HoldTimeoutMs * time.Millisecond}
}

// HandleEvent consumes one terminal event. Returns false when the event
// requests quitting.
func (m *Machine) HandleEvent(ev tcell.Event, now time.Time) bool {
	key, ok := ev.(*tcell.EventKey)
	if !ok {
		return true
	}

	switch key.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		m.pending = append(m.pending, Command{Action: ActionQuit})
		return false
	case tcell.KeyLeft:
		m.lastSeen[dirLeft] = now
		return true
	case tcell.KeyRight:
		m.lastSeen[dirRight] = now
		return true
	case tcell.KeyUp:
		m.lastSeen[dirUp] = now
		return true
	case tcell.KeyDown:
		m.lastSeen[dirDown] = now
		return true
	case tcell.KeyRune:
		return m.handleRune(key.Rune(), now)
	}
	return true
}

func (m *Machine) handleRune(r rune, now time.Time) bool {
	switch r {
	case 'a', 'A':
		m.lastSeen[dirLeft] = now
	case 'd', 'D':
		m.lastSeen[dirRight] = now
	case 'w', 'W':
		m.lastSeen[dirUp] = now
	case 's', 'S':
		m.lastSeen[dirDown] = now
	case 'q', 'Q':
		m.pending = append(m.pending, Command{Action: ActionQuit})
		return false
	case 'r', 'R':
		m.pending = append(m.pending, Command{Action: ActionRandomize})
	case '1', '2', '3', '4':
		model, err := shaping.ParseModel(string(r))
		if err == nil {
			m.pending = append(m.pending, Command{Action: ActionSelectModel, Model: model})
		}
	case '[':
		m.pending = append(m.pending, Command{Action: ActionSlowDown})
	case ']':
		m.pending = append(m.pending, Command{Action: ActionSlowUp})
	case '-', '_':
		m.pending = append(m.pending, Command{Action: ActionStopDown})
	case '=', '+':
		m.pending = append(m.pending, Command{Action: ActionStopUp})
	case ',':
		m.pending = append(m.pending, Command{Action: ActionRepelDown})
	case '.':
		m.pending = append(m.pending, Command{Action: ActionRepelUp})
	case 'm', 'M':
		m.pending = append(m.pending, Command{Action: ActionToggleMute})
	case ' ', 'p', 'P':
		m.pending = append(m.pending, Command{Action: ActionTogglePause})
	}
	return true
}

// Snapshot returns the current input frame and drains pending commands.
func (m *Machine) Snapshot(now time.Time) Frame {
	var dir vmath.Vec2
	if m.held(dirLeft, now) {
		dir.X -= 1
	}
	if m.held(dirRight, now) {
		dir.X += 1
	}
	if m.held(dirUp, now) {
		dir.Y -= 1
	}
	if m.held(dirDown, now) {
		dir.Y += 1
	}

	frame := Frame{Dir: dir.Normalize(), Commands: m.pending}
	m.pending = nil
	return frame
}

func (m *Machine) held(d direction, now time.Time) bool {
	t := m.lastSeen[d]
	return !t.IsZero() && now.Sub(t) < m.holdTimeout
}
