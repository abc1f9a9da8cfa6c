// Package engine wires the simulator, input machine, renderer and sinks
// into the tick loop. One goroutine polls terminal events into a
// channel; the loop itself is single-threaded, so every tick runs input
// snapshot, shaping, integration and logging to completion before the
// next render.
package engine

import (
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/slowbox/slowbox/audio"
	"github.com/slowbox/slowbox/input"
	"github.com/slowbox/slowbox/render"
	"github.com/slowbox/slowbox/sim"
)

// Game owns the loop state.
type Game struct {
	screen   tcell.Screen
	sim      *sim.Simulator
	machine  *input.Machine
	renderer *render.Renderer
	sound    *audio.Engine
	log      *zap.Logger

	fps       int
	inContact bool
	paused    bool
}

// New assembles a game. sound may be nil for silent operation.
func New(screen tcell.Screen, simulator *sim.Simulator, sound *audio.Engine, log *zap.Logger, fps int) *Game {
	return &Game{
		screen:   screen,
		sim:      simulator,
		machine:  input.NewMachine(),
		renderer: render.New(screen),
		sound:    sound,
		log:      log,
		fps:      fps,
	}
}

// Run drives the loop until a quit command arrives. Blocks the calling
// goroutine.
func (g *Game) Run() {
	ticker := time.NewTicker(time.Second / time.Duration(g.fps))
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := g.screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	g.log.Info("simulation started",
		zap.Int("fps", g.fps),
		zap.Uint64("scene", g.sim.Scene().Fingerprint()),
		zap.String("model", g.sim.Model().String()))

	last := time.Now()
	for {
		select {
		case ev := <-eventChan:
			if _, ok := ev.(*tcell.EventResize); ok {
				g.renderer.Resize()
				g.screen.Sync()
				continue
			}
			if !g.machine.HandleEvent(ev, time.Now()) {
				g.log.Info("quit requested")
				return
			}

		case now := <-ticker.C:
			// dt is measured, not assumed: a stalled terminal must not
			// change steady-state behavior.
			dt := now.Sub(last).Seconds()
			last = now
			if dt <= 0 || dt > 0.25 {
				dt = 1.0 / float64(g.fps)
			}
			g.tick(now, dt)
		}
	}
}

func (g *Game) tick(now time.Time, dt float64) {
	frame := g.machine.Snapshot(now)
	for _, cmd := range frame.Commands {
		g.apply(cmd)
	}
	if g.paused {
		return
	}

	diag := g.sim.Step(frame.Dir, dt)

	// Edge-triggered contact blip.
	if diag.Contact && !g.inContact && g.sound != nil {
		g.sound.PlayContact()
	}
	g.inContact = diag.Contact

	view := render.View{
		Scene:  g.sim.Scene(),
		Agent:  g.sim.Agent(),
		Diag:   diag,
		Params: g.sim.Params(),
		Model:  g.sim.Model(),
	}
	if g.sound != nil {
		view.Muted = g.sound.Muted()
	}
	g.renderer.Draw(&view)
}

// apply executes one discrete command between ticks, so the scene and
// parameters are stable for the whole of every step.
func (g *Game) apply(cmd input.Command) {
	switch cmd.Action {
	case input.ActionSelectModel:
		g.sim.SetModel(cmd.Model)
		g.log.Info("model switched", zap.String("model", cmd.Model.String()))
	case input.ActionRandomize:
		g.sim.Randomize()
		g.log.Info("scene randomized", zap.Uint64("scene", g.sim.Scene().Fingerprint()))
	case input.ActionSlowDown:
		g.nudge("d_slow", g.sim.NudgeSlow(-1))
	case input.ActionSlowUp:
		g.nudge("d_slow", g.sim.NudgeSlow(1))
	case input.ActionStopDown:
		g.nudge("d_stop", g.sim.NudgeStop(-1))
	case input.ActionStopUp:
		g.nudge("d_stop", g.sim.NudgeStop(1))
	case input.ActionRepelDown:
		g.nudge("repel_gain", g.sim.NudgeRepel(-1))
	case input.ActionRepelUp:
		g.nudge("repel_gain", g.sim.NudgeRepel(1))
	case input.ActionToggleMute:
		if g.sound != nil {
			g.log.Info("mute toggled", zap.Bool("muted", g.sound.ToggleMute()))
		}
	case input.ActionTogglePause:
		g.paused = !g.paused
		g.log.Info("pause toggled", zap.Bool("paused", g.paused))
	}
}

func (g *Game) nudge(name string, err error) {
	p := g.sim.Params()
	if err != nil {
		g.log.Warn("parameter nudge rejected", zap.String("param", name), zap.Error(err))
		return
	}
	g.log.Info("parameter changed",
		zap.String("param", name),
		zap.Float64("d_slow", p.DSlow),
		zap.Float64("d_stop", p.DStop),
		zap.Float64("repel_gain", p.RepelGain))
}
