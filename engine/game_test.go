package engine

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/slowbox/slowbox/input"
	"github.com/slowbox/slowbox/shaping"
	"github.com/slowbox/slowbox/sim"
	"github.com/slowbox/slowbox/vmath"
)

func newTestGame(t *testing.T) *Game {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("simulation screen init: %v", err)
	}
	screen.SetSize(100, 30)
	t.Cleanup(screen.Fini)
	return New(screen, sim.New(sim.DefaultOptions()), nil, zap.NewNop(), 60)
}

func TestApplyModelSwitch(t *testing.T) {
	g := newTestGame(t)
	g.apply(input.Command{Action: input.ActionSelectModel, Model: shaping.ModelHybrid})
	if g.sim.Model() != shaping.ModelHybrid {
		t.Errorf("expected hybrid model, got %v", g.sim.Model())
	}
}

func TestApplyRandomizeSwapsScene(t *testing.T) {
	g := newTestGame(t)
	before := g.sim.Scene()
	g.apply(input.Command{Action: input.ActionRandomize})
	if g.sim.Scene() == before {
		t.Error("randomize must install a new scene")
	}
}

func TestApplyNudgeRejectionKeepsRunning(t *testing.T) {
	g := newTestGame(t)
	before := g.sim.Params()
	// Stock d_stop is 1; stepping it down would go negative and must be
	// rejected without disturbing the loop or the parameters.
	g.apply(input.Command{Action: input.ActionStopDown})
	if g.sim.Params() != before {
		t.Errorf("rejected nudge changed parameters: %+v", g.sim.Params())
	}
}

func TestApplyMuteWithoutAudio(t *testing.T) {
	g := newTestGame(t)
	// No audio engine attached: must not panic.
	g.apply(input.Command{Action: input.ActionToggleMute})
}

func TestPauseStopsStepping(t *testing.T) {
	g := newTestGame(t)
	now := time.Now()
	g.apply(input.Command{Action: input.ActionTogglePause})
	g.tick(now, 1.0/60.0)
	g.tick(now.Add(16*time.Millisecond), 1.0/60.0)
	// Paused ticks must not advance the simulator.
	d := g.sim.Step(vmath.Zero, 1.0/60.0)
	if d.Tick != 1 {
		t.Errorf("expected tick 1 after two paused ticks, got %d", d.Tick)
	}
	g.apply(input.Command{Action: input.ActionTogglePause})
	g.tick(now.Add(32*time.Millisecond), 1.0/60.0)
	if got := g.sim.Step(vmath.Zero, 1.0/60.0); got.Tick != 3 {
		t.Errorf("expected stepping to resume at tick 3, got %d", got.Tick)
	}
}

func TestTickAdvancesSimulation(t *testing.T) {
	g := newTestGame(t)
	now := time.Now()
	g.tick(now, 1.0/60.0)
	g.tick(now.Add(16*time.Millisecond), 1.0/60.0)
	// Two ticks stepped: diagnostics in the simulator moved on.
	d := g.sim.Step(vmath.Zero, 1.0/60.0)
	if d.Tick != 3 {
		t.Errorf("expected tick 3 after two game ticks and one direct step, got %d", d.Tick)
	}
}
