// Command figures renders the shaping curves to PNG: one damping-factor
// plot per model, the raw repulsion magnitude, and a simulated head-on
// approach trace. Useful for tuning thresholds without watching the
// terminal view.
package main

import (
	"flag"
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/slowbox/slowbox/parameter"
	"github.com/slowbox/slowbox/scene"
	"github.com/slowbox/slowbox/shaping"
	"github.com/slowbox/slowbox/vmath"
)

var (
	outFlag  = flag.String("out", "docs/figures", "Output directory for PNG files")
	slowFlag = flag.Float64("slow", parameter.SlowDist, "Slowing distance")
	stopFlag = flag.Float64("stop", parameter.StopDist, "Contact distance")
	gainFlag = flag.Float64("gain", parameter.RepelGain, "Repulsion gain")
)

var palette = []color.Color{
	color.RGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff},
	color.RGBA{R: 0xff, G: 0x7f, B: 0x0e, A: 0xff},
	color.RGBA{R: 0x2c, G: 0xa0, B: 0x2c, A: 0xff},
	color.RGBA{R: 0xd6, G: 0x27, B: 0x28, A: 0xff},
}

func main() {
	flag.Parse()

	p := shaping.Params{DSlow: *slowFlag, DStop: *stopFlag, RepelGain: *gainFlag}
	if err := p.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid parameters: %v\n", err)
		os.Exit(1)
	}
	if err := os.MkdirAll(*outFlag, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "create output directory: %v\n", err)
		os.Exit(1)
	}

	steps := []struct {
		name string
		fn   func(shaping.Params, string) error
	}{
		{"factor.png", factorPlot},
		{"repulsion.png", repulsionPlot},
		{"approach.png", approachPlot},
	}
	for _, s := range steps {
		path := filepath.Join(*outFlag, s.name)
		if err := s.fn(p, path); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", s.name, err)
			os.Exit(1)
		}
		fmt.Println("wrote", path)
	}
}

// factorPlot draws f(d) for every model over [0, 2*DSlow]. The repulsion
// models dampen by an absolute speed reduction, so the factor is plotted
// for a full-speed approach.
func factorPlot(p shaping.Params, path string) error {
	pl := plot.New()
	pl.Title.Text = "Approach damping factor"
	pl.X.Label.Text = "distance"
	pl.Y.Label.Text = "f(d)"
	pl.Y.Max = 1.05
	pl.Legend.Top = true

	for i, m := range shaping.Models() {
		pts := make(plotter.XYs, 0, 400)
		for d := 0.0; d <= 2*p.DSlow; d += p.DSlow / 200 {
			pts = append(pts, plotter.XY{X: d, Y: shaping.Factor(m, d, parameter.MaxSpeed, p)})
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return err
		}
		line.Color = palette[i%len(palette)]
		pl.Add(line)
		pl.Legend.Add(m.String(), line)
	}
	return pl.Save(16*vg.Centimeter, 7*vg.Centimeter, path)
}

// repulsionPlot draws the uncapped-then-clamped repulsion magnitude
// k*(1/d - 1/DSlow)/d^2 inside the slowing band.
func repulsionPlot(p shaping.Params, path string) error {
	pl := plot.New()
	pl.Title.Text = "Repulsion magnitude"
	pl.X.Label.Text = "distance"
	pl.Y.Label.Text = "speed reduction"
	pl.Y.Max = parameter.RepelMax

	pts := make(plotter.XYs, 0, 400)
	for d := p.DStop; d <= p.DSlow; d += p.DSlow / 400 {
		mag := p.RepelGain * (1/d - 1/p.DSlow) / (d * d)
		pts = append(pts, plotter.XY{X: d, Y: vmath.Clamp(mag, 0, parameter.RepelMax)})
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	line.Color = palette[3]
	pl.Add(line)
	return pl.Save(16*vg.Centimeter, 7*vg.Centimeter, path)
}

// approachPlot runs a head-on approach against a single wall for every
// model and plots applied speed against remaining clearance.
func approachPlot(p shaping.Params, path string) error {
	pl := plot.New()
	pl.Title.Text = "Head-on approach speed"
	pl.X.Label.Text = "distance"
	pl.Y.Label.Text = "applied speed"
	pl.Legend.Top = true

	const dt = 1.0 / parameter.DefaultFPS
	for i, m := range shaping.Models() {
		pos := 3 * p.DSlow
		pts := plotter.XYs{}
		for tick := 0; tick < 1200 && pos > 0; tick++ {
			hit := scene.Hit{Distance: pos, Away: vmath.V(1, 0)}
			res := shaping.Shape(vmath.V(-parameter.MaxSpeed, 0), hit, p, m)
			speed := res.Applied.Length()
			pts = append(pts, plotter.XY{X: pos, Y: speed})
			pos -= speed * dt
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return err
		}
		line.Color = palette[i%len(palette)]
		pl.Add(line)
		pl.Legend.Add(m.String(), line)
	}
	return pl.Save(16*vg.Centimeter, 7*vg.Centimeter, path)
}
