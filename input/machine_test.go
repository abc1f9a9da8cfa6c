package input

import (
	"math"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/slowbox/slowbox/shaping"
)

func keyRune(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func key(k tcell.Key) *tcell.EventKey {
	return tcell.NewEventKey(k, 0, tcell.ModNone)
}

func TestHeldDirectionExpires(t *testing.T) {
	m := NewMachine()
	t0 := time.Now()

	m.HandleEvent(keyRune('d'), t0)
	f := m.Snapshot(t0.Add(50 * time.Millisecond))
	if f.Dir.X != 1 || f.Dir.Y != 0 {
		t.Errorf("expected (1,0) while held, got %+v", f.Dir)
	}

	// Past the hold timeout with no repeat: released.
	f = m.Snapshot(t0.Add(400 * time.Millisecond))
	if !f.Dir.IsZero() {
		t.Errorf("expected release after repeat silence, got %+v", f.Dir)
	}
}

func TestRepeatKeepsDirectionAlive(t *testing.T) {
	m := NewMachine()
	t0 := time.Now()
	for i := 0; i < 10; i++ {
		m.HandleEvent(key(tcell.KeyUp), t0.Add(time.Duration(i)*100*time.Millisecond))
	}
	f := m.Snapshot(t0.Add(950 * time.Millisecond))
	if f.Dir.Y != -1 {
		t.Errorf("expected up direction, got %+v", f.Dir)
	}
}

func TestDiagonalNormalized(t *testing.T) {
	m := NewMachine()
	t0 := time.Now()
	m.HandleEvent(keyRune('d'), t0)
	m.HandleEvent(keyRune('s'), t0)

	f := m.Snapshot(t0)
	if math.Abs(f.Dir.Length()-1) > 1e-9 {
		t.Errorf("diagonal must be normalized, got length %v", f.Dir.Length())
	}
	if f.Dir.X <= 0 || f.Dir.Y <= 0 {
		t.Errorf("expected down-right, got %+v", f.Dir)
	}
}

func TestOpposedKeysCancel(t *testing.T) {
	m := NewMachine()
	t0 := time.Now()
	m.HandleEvent(keyRune('a'), t0)
	m.HandleEvent(keyRune('d'), t0)
	if f := m.Snapshot(t0); !f.Dir.IsZero() {
		t.Errorf("opposed keys must cancel, got %+v", f.Dir)
	}
}

func TestCommandsDrainInOrder(t *testing.T) {
	m := NewMachine()
	t0 := time.Now()
	m.HandleEvent(keyRune('3'), t0)
	m.HandleEvent(keyRune(']'), t0)
	m.HandleEvent(keyRune('r'), t0)

	f := m.Snapshot(t0)
	if len(f.Commands) != 3 {
		t.Fatalf("expected 3 commands, got %d", len(f.Commands))
	}
	if f.Commands[0].Action != ActionSelectModel || f.Commands[0].Model != shaping.ModelRepel {
		t.Errorf("expected model select 3, got %+v", f.Commands[0])
	}
	if f.Commands[1].Action != ActionSlowUp || f.Commands[2].Action != ActionRandomize {
		t.Errorf("wrong command order: %+v", f.Commands)
	}

	// Drained: next snapshot is empty.
	if f = m.Snapshot(t0); len(f.Commands) != 0 {
		t.Errorf("commands must drain, got %+v", f.Commands)
	}
}

func TestQuitKeys(t *testing.T) {
	for _, ev := range []*tcell.EventKey{key(tcell.KeyEscape), key(tcell.KeyCtrlC), keyRune('q')} {
		m := NewMachine()
		if m.HandleEvent(ev, time.Now()) {
			t.Errorf("expected quit for %v", ev.Name())
		}
	}
}

func TestNonKeyEventsIgnored(t *testing.T) {
	m := NewMachine()
	if !m.HandleEvent(tcell.NewEventResize(80, 24), time.Now()) {
		t.Error("resize must not quit")
	}
	if f := m.Snapshot(time.Now()); len(f.Commands) != 0 || !f.Dir.IsZero() {
		t.Errorf("resize must not produce input, got %+v", f)
	}
}
