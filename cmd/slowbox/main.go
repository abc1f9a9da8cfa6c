package main

import (
	"flag"
	"fmt"
	"os"
	"runtime/debug"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/slowbox/slowbox/audio"
	"github.com/slowbox/slowbox/config"
	"github.com/slowbox/slowbox/engine"
	"github.com/slowbox/slowbox/logging"
	"github.com/slowbox/slowbox/recorder"
	"github.com/slowbox/slowbox/scene"
	"github.com/slowbox/slowbox/sim"
)

var (
	configFlag = flag.String("config", "", "Path to YAML config file")
	csvFlag    = flag.String("csv", "", "Per-tick CSV log path (overrides config)")
	logFlag    = flag.String("log", "", "Structured event log path (overrides config)")
	fpsFlag    = flag.Int("fps", 0, "Simulation frame rate (overrides config)")
	seedFlag   = flag.Int64("seed", 0, "Scene generation seed (overrides config)")
	silentFlag = flag.Bool("silent", false, "Disable audio")
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}
	if *csvFlag != "" {
		cfg.Log.CSVPath = *csvFlag
	}
	if *logFlag != "" {
		cfg.Log.EventLog = *logFlag
	}
	if *fpsFlag > 0 {
		cfg.FPS = *fpsFlag
	}
	if *seedFlag != 0 {
		cfg.Seed = *seedFlag
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	log, err := logging.New(cfg.Log.EventLog)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open event log: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// The terminal is a hard dependency: without it no tick ever runs.
	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create terminal screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize terminal: %v\n", err)
		os.Exit(1)
	}

	// Terminal must be restored even when the loop panics, or the shell
	// is left in raw mode with the crash invisible.
	defer func() {
		if r := recover(); r != nil {
			screen.Fini()
			fmt.Fprintf(os.Stderr, "slowbox crashed: %v\n", r)
			fmt.Fprintf(os.Stderr, "%s\n", debug.Stack())
			os.Exit(1)
		}
		screen.Fini()
	}()

	simulator := sim.New(sim.Options{
		MaxSpeed:     cfg.Agent.MaxSpeed,
		Accel:        cfg.Agent.Accel,
		IdleFriction: cfg.Agent.Friction,
		AgentRadius:  cfg.Agent.Radius,
		Params:       cfg.Params(),
		Model:        cfg.Model(),
		Gen:  genConfig(cfg),
		Seed: cfg.Seed,
	})

	csv, err := recorder.NewCSV(cfg.Log.CSVPath)
	if err != nil {
		panic(err)
	}
	defer csv.Close()
	simulator.SetRecorder(csv)
	log.Info("recording started",
		zap.String("run_id", csv.RunID()),
		zap.String("path", cfg.Log.CSVPath),
		zap.Int64("seed", cfg.Seed))

	var sound *audio.Engine
	if !*silentFlag {
		if sound, err = audio.New(); err != nil {
			// Audio is optional; the blip just stays silent.
			log.Warn("audio unavailable", zap.Error(err))
		}
	}
	if sound != nil {
		defer sound.Close()
	}

	engine.New(screen, simulator, sound, log, cfg.FPS).Run()
	log.Info("shutdown", zap.Int64("rows", csv.Rows()))
}

// genConfig maps the configured field and circle tuning onto scene
// generation, keeping the stock placement margins.
func genConfig(cfg config.Config) scene.GenConfig {
	gen := scene.DefaultGenConfig()
	gen.Width = cfg.Field.Width
	gen.Height = cfg.Field.Height
	gen.Circles = cfg.Scene.Circles
	gen.RadiusMin = cfg.Scene.RadiusMin
	gen.RadiusMax = cfg.Scene.RadiusMax
	return gen
}
