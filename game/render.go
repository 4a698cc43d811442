package game

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/driftfield/config"
	"github.com/pthm-cable/driftfield/particle"
)

// renderState holds the trail accumulation target and draw parameters.
// Trails are composited by drawing into a persistent render texture that is
// faded a little each frame instead of cleared.
type renderState struct {
	trail  rl.RenderTexture2D
	loaded bool

	fadeAlpha  uint8
	thickness  float32
	saturation float32
	value      float32
}

func newRenderState(cfg *config.Config) renderState {
	return renderState{
		fadeAlpha:  uint8(cfg.Render.FadeAlpha),
		thickness:  float32(cfg.Render.TrailThickness),
		saturation: float32(cfg.Render.Saturation),
		value:      float32(cfg.Render.Value),
	}
}

// ensureTarget lazily creates the trail texture, so headless runs never
// touch the GPU.
func (r *renderState) ensureTarget(w, h int32) {
	if r.loaded {
		return
	}
	r.trail = rl.LoadRenderTexture(w, h)
	rl.BeginTextureMode(r.trail)
	rl.ClearBackground(rl.Black)
	rl.EndTextureMode()
	r.loaded = true
}

// resize discards the trail texture; it is recreated at the new size on the
// next frame.
func (r *renderState) resize() {
	r.unload()
}

func (r *renderState) unload() {
	if !r.loaded {
		return
	}
	rl.UnloadRenderTexture(r.trail)
	r.loaded = false
}

// Draw renders the current frame: fade the accumulated trails, draw each
// particle's trail on top, then composite to the screen.
func (g *Game) Draw() {
	w := int32(g.width)
	h := int32(g.height)
	r := &g.render
	r.ensureTarget(w, h)

	rl.BeginTextureMode(r.trail)
	rl.DrawRectangle(0, 0, w, h, rl.Color{R: 0, G: 0, B: 0, A: r.fadeAlpha})

	query := g.particleFilter.Query()
	for query.Next() {
		g.drawTrail(query.Get())
	}
	rl.EndTextureMode()

	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)

	// Render textures are stored upside down; flip on composite.
	rl.DrawTextureRec(
		r.trail.Texture,
		rl.Rectangle{X: 0, Y: 0, Width: float32(w), Height: -float32(h)},
		rl.Vector2{},
		rl.White,
	)

	if g.pointerHeld {
		p := g.field.Pointer()
		rl.DrawCircleLines(int32(p.X), int32(p.Y), float32(p.Radius), rl.Fade(rl.White, 0.25))
	}

	g.drawHUD()
	g.drawPanel()

	rl.EndDrawing()
}

// drawTrail draws one particle's history as a polyline with alpha rising
// toward the head.
func (g *Game) drawTrail(p *particle.Particle) {
	g.histBuf = g.histBuf[:0]
	g.histBuf = p.History(g.histBuf)
	n := len(g.histBuf)
	if n == 0 {
		return
	}

	color := rl.ColorFromHSV(float32(p.Hue), g.render.saturation, g.render.value)

	prev := rl.Vector2{X: float32(g.histBuf[0].X), Y: float32(g.histBuf[0].Y)}
	for i := 1; i <= n; i++ {
		var cur rl.Vector2
		if i < n {
			cur = rl.Vector2{X: float32(g.histBuf[i].X), Y: float32(g.histBuf[i].Y)}
		} else {
			cur = rl.Vector2{X: float32(p.X), Y: float32(p.Y)}
		}

		t := float32(i) / float32(n)
		rl.DrawLineEx(prev, cur, g.render.thickness, rl.Fade(color, t*t))
		prev = cur
	}
}

// drawHUD draws the mode name and basic run info.
func (g *Game) drawHUD() {
	text := fmt.Sprintf("%s | %d particles | %d fps", g.field.Mode(), g.count, rl.GetFPS())
	if g.paused {
		text += " | paused"
	}
	rl.DrawText(text, 10, int32(g.height)-24, 16, rl.Gray)
	rl.DrawText("1-4 mode  R reset  Tab panel  Space pause  hold LMB to repel", 10, 10, 14, rl.DarkGray)
}
