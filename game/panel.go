package game

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/driftfield/field"
)

const (
	panelWidth  = 260
	panelMargin = 10
)

// panelRect returns the control panel bounds in screen coordinates.
func (g *Game) panelRect() rl.Rectangle {
	return rl.Rectangle{
		X:      float32(g.width) - panelWidth - panelMargin,
		Y:      panelMargin,
		Width:  panelWidth,
		Height: 420,
	}
}

// drawPanel draws the tuning panel and applies slider changes.
func (g *Game) drawPanel() {
	if !g.showPanel {
		return
	}

	rect := g.panelRect()
	rl.DrawRectangleRec(rect, rl.Fade(rl.Black, 0.6))
	rl.DrawRectangleLinesEx(rect, 1, rl.DarkGray)

	x := rect.X + 10
	y := rect.Y + 10
	sliderW := rect.Width - 70

	rl.DrawText("Controls", int32(x), int32(y), 18, rl.RayWhite)
	y += 30

	g.speedMult = float64(g.slider(x, &y, sliderW, "speed", float32(g.speedMult), 0, 3, "%.2f"))

	fade := g.slider(x, &y, sliderW, "fade", float32(g.render.fadeAlpha), 0, 60, "%.0f")
	g.render.fadeAlpha = uint8(fade)

	g.render.thickness = g.slider(x, &y, sliderW, "thickness", g.render.thickness, 0.5, 4, "%.1f")

	p := g.field.Pointer()
	radius := g.slider(x, &y, sliderW, "repel radius", float32(p.Radius), 50, 400, "%.0f")
	if float64(radius) != p.Radius {
		g.field.SetPointerRadius(float64(radius))
	}
	strength := g.slider(x, &y, sliderW, "repel strength", float32(p.Strength), 0, 1, "%.2f")
	if float64(strength) != p.Strength {
		g.field.SetPointerStrength(float64(strength))
	}

	count := g.slider(x, &y, sliderW, "particles", float32(g.count), 100, 3000, "%.0f")
	if int(count) != g.count {
		g.SetTargetCount(int(count))
	}

	// Mode buttons
	for i, m := range field.Modes() {
		bx := x + float32(i%2)*115
		by := y + float32(i/2)*34
		label := m.String()
		if m == g.field.Mode() {
			label = "> " + label
		}
		if gui.Button(rl.Rectangle{X: bx, Y: by, Width: 105, Height: 28}, label) {
			g.SetMode(m)
		}
	}
	y += 72

	if gui.Button(rl.Rectangle{X: x, Y: y, Width: 105, Height: 28}, "Reset") {
		g.ResetParticles()
	}
}

// slider draws one labeled slider row and advances the y cursor.
func (g *Game) slider(x float32, y *float32, w float32, label string, value, min, max float32, format string) float32 {
	rl.DrawText(label, int32(x), int32(*y), 12, rl.Gray)
	*y += 14
	v := gui.SliderBar(
		rl.Rectangle{X: x, Y: *y, Width: w, Height: 16},
		"", "",
		value, min, max,
	)
	rl.DrawText(fmt.Sprintf(format, v), int32(x+w+8), int32(*y), 14, rl.LightGray)
	*y += 24
	return v
}
