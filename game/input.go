package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/driftfield/field"
)

// handleInput processes keyboard and mouse input.
func (g *Game) handleInput() {
	g.handleResize()

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}
	if rl.IsKeyPressed(rl.KeySpace) {
		g.paused = !g.paused
	}
	if rl.IsKeyPressed(rl.KeyR) {
		g.ResetParticles()
	}
	if rl.IsKeyPressed(rl.KeyTab) {
		g.showPanel = !g.showPanel
	}

	switch {
	case rl.IsKeyPressed(rl.KeyOne):
		g.SetMode(field.ModeFlow)
	case rl.IsKeyPressed(rl.KeyTwo):
		g.SetMode(field.ModeGalaxy)
	case rl.IsKeyPressed(rl.KeyThree):
		g.SetMode(field.ModeVortex)
	case rl.IsKeyPressed(rl.KeyFour):
		g.SetMode(field.ModeChaos)
	}

	// Holding the left button repels particles around the cursor. Clicks
	// over the control panel are not forwarded to the field.
	mouse := rl.GetMousePosition()
	held := rl.IsMouseButtonDown(rl.MouseButtonLeft)
	if held && g.showPanel && rl.CheckCollisionPointRec(mouse, g.panelRect()) {
		held = false
	}
	if held {
		g.field.SetPointer(float64(mouse.X), float64(mouse.Y))
	}
	if held != g.pointerHeld {
		g.field.SetPointerActive(held)
		g.pointerHeld = held
	}
}

// handleResize propagates window size changes to the field, the particles,
// and the trail texture.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := float64(rl.GetScreenWidth())
	h := float64(rl.GetScreenHeight())
	if w == g.width && h == g.height {
		return
	}
	g.width = w
	g.height = h

	g.field.Resize(w, h)

	query := g.particleFilter.Query()
	for query.Next() {
		query.Get().SetBounds(w, h)
	}

	g.render.resize()
}
