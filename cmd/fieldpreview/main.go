// Field preview tool - interactive visualization of the direction field.
//
// Usage: go run ./cmd/fieldpreview
package main

import (
	"fmt"
	"image/color"
	"math"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/driftfield/field"
)

const (
	windowWidth  = 900
	windowHeight = 600
	previewSize  = 512
	panelWidth   = windowWidth - previewSize - 30
)

// canvas dimensions the field is sampled over; matches the default screen.
const (
	canvasW = 1280.0
	canvasH = 720.0
)

func main() {
	rl.InitWindow(windowWidth, windowHeight, "Field Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	gridSize := 256
	pixels := make([]color.RGBA, gridSize*gridSize)
	img := rl.GenImageColor(gridSize, gridSize, rl.Black)
	texture := rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	defer rl.UnloadTexture(texture)

	var seed int64 = 12345
	f := field.New(canvasW, canvasH, field.ModeFlow, seed)

	scale := float32(field.DefaultNoiseScale)
	timeSteps := float32(10) // field updates per preview frame when animating
	animating := false
	showNoise := false // raw noise slice instead of direction map

	regen := func() {
		if showNoise {
			generateNoise(pixels, gridSize, f)
		} else {
			generateDirections(pixels, gridSize, f)
		}
		rl.UpdateTexture(texture, pixels)
	}
	regen()

	for !rl.WindowShouldClose() {
		if animating {
			for i := 0; i < int(timeSteps); i++ {
				f.Update()
			}
		}
		regen()

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		rl.DrawTexturePro(
			texture,
			rl.Rectangle{X: 0, Y: 0, Width: float32(gridSize), Height: float32(gridSize)},
			rl.Rectangle{X: 10, Y: 10, Width: previewSize, Height: previewSize * canvasH / canvasW},
			rl.Vector2{},
			0,
			rl.White,
		)

		rl.DrawText(fmt.Sprintf("mode: %s  time: %.4f", f.Mode(), f.Time()), 15, previewSize*canvasH/canvasW+20, 16, rl.DarkGray)

		panelX := float32(previewSize + 20)
		panelY := float32(10)

		rl.DrawText("Direction Field Parameters", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		// Mode buttons
		for i, m := range field.Modes() {
			bx := panelX + float32(i%2)*125
			by := panelY + float32(i/2)*38
			label := m.String()
			if m == f.Mode() {
				label = "> " + label
			}
			if gui.Button(rl.Rectangle{X: bx, Y: by, Width: 115, Height: 30}, label) {
				f.SetMode(m)
			}
		}
		panelY += 90

		rl.DrawText("Noise scale (spatial frequency divisor)", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newScale := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"20", "300",
			scale, 20, 300,
		)
		rl.DrawText(fmt.Sprintf("%.0f", scale), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
		if newScale != scale {
			scale = newScale
			f.SetNoiseScale(float64(scale))
		}
		panelY += 35

		rl.DrawText("Animation speed (updates per frame)", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		timeSteps = gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"1", "60",
			timeSteps, 1, 60,
		)
		rl.DrawText(fmt.Sprintf("%.0f", timeSteps), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
		panelY += 45

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 115, Height: 30}, toggleText(animating, "Stop", "Animate")) {
			animating = !animating
		}
		if gui.Button(rl.Rectangle{X: panelX + 125, Y: panelY, Width: 115, Height: 30}, toggleText(showNoise, "Directions", "Raw noise")) {
			showNoise = !showNoise
		}
		panelY += 40

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 115, Height: 30}, "Random seed") {
			seed = int64(rl.GetRandomValue(1, 99999))
			mode := f.Mode()
			f = field.New(canvasW, canvasH, mode, seed)
			f.SetNoiseScale(float64(scale))
		}
		rl.DrawText(fmt.Sprintf("seed %d", seed), int32(panelX+130), int32(panelY+8), 14, rl.Gray)

		rl.EndDrawing()
	}
}

// generateDirections maps the field's angle at each cell to a hue.
func generateDirections(pixels []color.RGBA, size int, f *field.Field) {
	for y := 0; y < size; y++ {
		wy := (float64(y) + 0.5) / float64(size) * canvasH
		for x := 0; x < size; x++ {
			wx := (float64(x) + 0.5) / float64(size) * canvasW

			v := f.VectorAt(wx, wy)
			angle := math.Atan2(v.Y, v.X)
			hue := float32((angle + math.Pi) / (2 * math.Pi) * 360)
			c := rl.ColorFromHSV(hue, 0.75, 0.9)
			pixels[y*size+x] = color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
		}
	}
}

// generateNoise draws a grayscale slice of the 3D noise animated by field
// time.
func generateNoise(pixels []color.RGBA, size int, f *field.Field) {
	noise := f.Noise()
	scale := f.NoiseScale()
	t := f.Time()

	for y := 0; y < size; y++ {
		wy := (float64(y) + 0.5) / float64(size) * canvasH
		for x := 0; x < size; x++ {
			wx := (float64(x) + 0.5) / float64(size) * canvasW

			n := noise.Noise3D(wx/scale, wy/scale, t*100)
			g := uint8((n + 1) * 0.5 * 255)
			pixels[y*size+x] = color.RGBA{R: g, G: g, B: g, A: 255}
		}
	}
}

func toggleText(cond bool, ifTrue, ifFalse string) string {
	if cond {
		return ifTrue
	}
	return ifFalse
}
