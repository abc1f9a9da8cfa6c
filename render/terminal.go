// Package render draws the scene, the agent and the HUD onto a tcell
// screen. Read-only over simulation state: rendering never feeds back
// into stepping.
package render

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/slowbox/slowbox/scene"
	"github.com/slowbox/slowbox/shaping"
	"github.com/slowbox/slowbox/sim"
	"github.com/slowbox/slowbox/vmath"
)

// hudLines is the number of text rows reserved above the playfield.
const hudLines = 2

var (
	styleObstacle = tcell.StyleDefault.Foreground(tcell.ColorLightGray)
	styleAgent    = tcell.StyleDefault.Foreground(tcell.NewRGBColor(0x7c, 0xd4, 0xff))
	styleHUD      = tcell.StyleDefault.Foreground(tcell.ColorLightGray)
	styleHelp     = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleWarn     = tcell.StyleDefault.Foreground(tcell.NewRGBColor(0xff, 0x7c, 0x7c))
	styleBorder   = tcell.StyleDefault.Foreground(tcell.ColorGray)
)

// View is everything one frame needs.
type View struct {
	Scene  *scene.Scene
	Agent  sim.Agent
	Diag   sim.Diagnostics
	Params shaping.Params
	Model  shaping.Model
	Muted  bool
}

// Renderer owns the screen geometry and the world-to-cell transform.
type Renderer struct {
	screen tcell.Screen
	width  int
	height int
}

// New builds a renderer for the screen's current size.
func New(screen tcell.Screen) *Renderer {
	r := &Renderer{screen: screen}
	r.Resize()
	return r
}

// Resize re-reads the screen dimensions after a terminal resize.
func (r *Renderer) Resize() {
	r.width, r.height = r.screen.Size()
}

// fieldArea returns the cell rectangle available for the playfield.
func (r *Renderer) fieldArea() (x, y, w, h int) {
	w = r.width
	h = r.height - hudLines - 1
	if w < 2 {
		w = 2
	}
	if h < 2 {
		h = 2
	}
	return 0, hudLines, w, h
}

// toCell maps a world position into screen cells. The playfield is
// stretched to the available area; terminal cells are not square, so the
// vertical stretch differs from the horizontal one.
func (r *Renderer) toCell(v *View, p vmath.Vec2) (int, int) {
	fx, fy, fw, fh := r.fieldArea()
	cx := fx + int(p.X/v.Scene.Width*float64(fw-1)+0.5)
	cy := fy + int(p.Y/v.Scene.Height*float64(fh-1)+0.5)
	return cx, cy
}

// Draw renders one frame and flushes it to the terminal.
func (r *Renderer) Draw(v *View) {
	r.screen.Clear()
	r.drawBorder(v)
	for _, o := range v.Scene.Obstacles() {
		r.drawObstacle(v, o)
	}
	r.drawAgent(v)
	r.drawHUD(v)
	r.screen.Show()
}

func (r *Renderer) drawBorder(v *View) {
	fx, fy, fw, fh := r.fieldArea()
	for x := fx; x < fx+fw; x++ {
		r.screen.SetContent(x, fy, tcell.RuneHLine, nil, styleBorder)
		r.screen.SetContent(x, fy+fh-1, tcell.RuneHLine, nil, styleBorder)
	}
	for y := fy; y < fy+fh; y++ {
		r.screen.SetContent(fx, y, tcell.RuneVLine, nil, styleBorder)
		r.screen.SetContent(fx+fw-1, y, tcell.RuneVLine, nil, styleBorder)
	}
	r.screen.SetContent(fx, fy, tcell.RuneULCorner, nil, styleBorder)
	r.screen.SetContent(fx+fw-1, fy, tcell.RuneURCorner, nil, styleBorder)
	r.screen.SetContent(fx, fy+fh-1, tcell.RuneLLCorner, nil, styleBorder)
	r.screen.SetContent(fx+fw-1, fy+fh-1, tcell.RuneLRCorner, nil, styleBorder)
}

func (r *Renderer) drawObstacle(v *View, o scene.Obstacle) {
	switch o.Kind {
	case scene.KindCircle:
		r.drawCircle(v, o.Center, o.Radius)
	case scene.KindRect:
		r.drawRect(v, o)
	case scene.KindSegment:
		r.drawSegment(v, o.A, o.B, 'x')
	case scene.KindWall:
		// Walls coincide with the playfield border.
	}
}

// drawCircle plots the outline by sampling the circumference densely
// enough that adjacent samples land on neighboring cells.
func (r *Renderer) drawCircle(v *View, center vmath.Vec2, radius float64) {
	_, _, fw, _ := r.fieldArea()
	cellsPerUnit := float64(fw-1) / v.Scene.Width
	steps := int(2*math.Pi*radius*cellsPerUnit) * 2
	if steps < 24 {
		steps = 24
	}
	for i := 0; i < steps; i++ {
		a := 2 * math.Pi * float64(i) / float64(steps)
		p := center.Add(vmath.V(math.Cos(a)*radius, math.Sin(a)*radius))
		x, y := r.toCell(v, p)
		r.setField(x, y, 'o', styleObstacle)
	}
}

// drawRect draws the four edges, honoring rotation.
func (r *Renderer) drawRect(v *View, o scene.Obstacle) {
	corners := [4]vmath.Vec2{
		{X: -o.Half.X, Y: -o.Half.Y},
		{X: o.Half.X, Y: -o.Half.Y},
		{X: o.Half.X, Y: o.Half.Y},
		{X: -o.Half.X, Y: o.Half.Y},
	}
	cos, sin := math.Cos(o.Rotation), math.Sin(o.Rotation)
	for i := range corners {
		c := corners[i]
		corners[i] = o.Center.Add(vmath.V(c.X*cos-c.Y*sin, c.X*sin+c.Y*cos))
	}
	for i := 0; i < 4; i++ {
		r.drawSegment(v, corners[i], corners[(i+1)%4], '#')
	}
}

// drawSegment steps along the world-space segment at sub-cell
// granularity and plots every covered cell.
func (r *Renderer) drawSegment(v *View, a, b vmath.Vec2, ch rune) {
	_, _, fw, _ := r.fieldArea()
	cellsPerUnit := float64(fw-1) / v.Scene.Width
	steps := int(a.Distance(b)*cellsPerUnit)*2 + 2
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		p := a.Add(b.Sub(a).Scale(t))
		x, y := r.toCell(v, p)
		r.setField(x, y, ch, styleObstacle)
	}
}

func (r *Renderer) drawAgent(v *View) {
	// Fill the agent disc; at typical terminal sizes it covers a few
	// cells at most.
	rad := v.Agent.Radius
	for dy := -rad; dy <= rad; dy += rad / 2 {
		for dx := -rad; dx <= rad; dx += rad / 2 {
			if dx*dx+dy*dy > rad*rad {
				continue
			}
			x, y := r.toCell(v, v.Agent.Pos.Add(vmath.V(dx, dy)))
			r.setField(x, y, '█', styleAgent)
		}
	}
	x, y := r.toCell(v, v.Agent.Pos)
	r.setField(x, y, '@', styleAgent.Reverse(true))
}

func (r *Renderer) drawHUD(v *View) {
	info := fmt.Sprintf("Mode %d: %s   d=%.1f  f=%.2f  v=%.0f/%.0f",
		v.Model, v.Model, v.Diag.Distance, v.Diag.Factor, v.Diag.AppliedSpeed, v.Diag.RawSpeed)
	r.drawText(0, 0, info, styleHUD)
	if v.Muted {
		r.drawText(len(info)+3, 0, "[muted]", styleHelp)
	}

	params := fmt.Sprintf("d_slow=%.0f []  d_stop=%.0f -=  repel=%.0f ,.", v.Params.DSlow, v.Params.DStop, v.Params.RepelGain)
	r.drawText(0, 1, params, styleHelp)

	help := "Move: WASD/Arrows   Model: 1-4   Randomize: r   Quit: q"
	if v.Diag.Contact {
		help = "CONTACT ZONE"
	}
	style := styleHelp
	if v.Diag.Contact {
		style = styleWarn
	}
	r.drawText(0, r.height-1, help, style)
}

func (r *Renderer) drawText(x, y int, s string, style tcell.Style) {
	for i, ch := range s {
		if x+i >= r.width {
			break
		}
		r.screen.SetContent(x+i, y, ch, nil, style)
	}
}

// setField plots a rune, clipped to the playfield interior.
func (r *Renderer) setField(x, y int, ch rune, style tcell.Style) {
	fx, fy, fw, fh := r.fieldArea()
	if x <= fx || x >= fx+fw-1 || y <= fy || y >= fy+fh-1 {
		return
	}
	r.screen.SetContent(x, y, ch, nil, style)
}
