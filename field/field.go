package field

import (
	"fmt"
	"math"
)

// Mode selects the angle formula the field uses.
type Mode uint8

const (
	ModeFlow Mode = iota
	ModeGalaxy
	ModeVortex
	ModeChaos
)

// Default per-mode time advance rates.
const (
	flowTimeRate   = 0.0003
	galaxyTimeRate = 0.0001
	vortexTimeRate = 0.0005
	chaosTimeRate  = 0.001
)

// DefaultNoiseScale is the spatial frequency divisor applied to sample
// coordinates before noise lookup.
const DefaultNoiseScale = 100.0

// Default pointer interaction parameters.
const (
	DefaultPointerRadius   = 150.0
	DefaultPointerStrength = 0.5
)

// String returns the mode name as used in config files.
func (m Mode) String() string {
	switch m {
	case ModeFlow:
		return "flow"
	case ModeGalaxy:
		return "galaxy"
	case ModeVortex:
		return "vortex"
	case ModeChaos:
		return "chaos"
	}
	return "unknown"
}

// timeRate returns the default time advance per update tick for the mode.
// Unknown modes do not animate.
func (m Mode) timeRate() float64 {
	switch m {
	case ModeFlow:
		return flowTimeRate
	case ModeGalaxy:
		return galaxyTimeRate
	case ModeVortex:
		return vortexTimeRate
	case ModeChaos:
		return chaosTimeRate
	}
	return 0
}

// ParseMode converts a config string to a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "flow":
		return ModeFlow, nil
	case "galaxy":
		return ModeGalaxy, nil
	case "vortex":
		return ModeVortex, nil
	case "chaos":
		return ModeChaos, nil
	}
	return ModeFlow, fmt.Errorf("unknown field mode %q", s)
}

// Modes lists all recognized modes in display order.
func Modes() []Mode {
	return []Mode{ModeFlow, ModeGalaxy, ModeVortex, ModeChaos}
}

// Vec2 is a 2D vector.
type Vec2 struct {
	X, Y float64
}

// Pointer holds the interactive perturbation state. It is written by the
// input layer and only read by VectorAt.
type Pointer struct {
	X, Y     float64
	Radius   float64
	Strength float64
	Active   bool
}

// Field maps (x, y) to a unit direction vector derived from gradient noise.
// VectorAt is a pure function of the field state; Update is the only
// mutator of time.
type Field struct {
	width, height float64
	mode          Mode
	time          float64
	timeRate      float64
	scale         float64
	noise         *Perlin
	pointer       Pointer
}

// New creates a field over a width x height canvas with a seed-shuffled
// permutation table.
func New(width, height float64, mode Mode, seed int64) *Field {
	return newField(width, height, mode, NewPerlin(seed))
}

// NewFromTable creates a field with an explicit permutation table, for
// reproducible output.
func NewFromTable(width, height float64, mode Mode, table [256]int) *Field {
	return newField(width, height, mode, NewPerlinFromTable(table))
}

func newField(width, height float64, mode Mode, noise *Perlin) *Field {
	return &Field{
		width:    width,
		height:   height,
		mode:     mode,
		timeRate: mode.timeRate(),
		scale:    DefaultNoiseScale,
		noise:    noise,
		pointer: Pointer{
			X:        width / 2,
			Y:        height / 2,
			Radius:   DefaultPointerRadius,
			Strength: DefaultPointerStrength,
		},
	}
}

// VectorAt returns the unit direction vector at (x, y). Out-of-canvas
// coordinates are valid; noise lattice indices wrap.
func (f *Field) VectorAt(x, y float64) Vec2 {
	angle := f.angleAt(x, y)

	if f.pointer.Active {
		dx := x - f.pointer.X
		dy := y - f.pointer.Y
		dist := math.Hypot(dx, dy)
		if dist < f.pointer.Radius {
			// Linear falloff, 1 at the pointer center, 0 at the radius edge.
			influence := 1 - dist/f.pointer.Radius
			repulsion := math.Atan2(dy, dx) + math.Pi
			// Direct angular interpolation. When the two angles differ by
			// close to pi this takes the long way around; kept to match the
			// original visual behavior.
			mix := influence * f.pointer.Strength
			angle = angle*(1-mix) + repulsion*mix
		}
	}

	return Vec2{X: math.Cos(angle), Y: math.Sin(angle)}
}

// angleAt computes the raw steering angle for the current mode.
func (f *Field) angleAt(x, y float64) float64 {
	cx := f.width / 2
	cy := f.height / 2
	dx := x - cx
	dy := y - cy

	switch f.mode {
	case ModeFlow:
		return f.noise.Noise2D(x/f.scale, y/f.scale+f.time) * 2 * math.Pi

	case ModeGalaxy:
		// Quasi-static rotation around the canvas center plus fixed
		// spatial jitter; time does not enter the noise term.
		dist := math.Hypot(dx, dy)
		return math.Atan2(dy, dx) + dist*0.01 + f.noise.Noise2D(x/f.scale, y/f.scale)*0.5

	case ModeVortex:
		dist := math.Hypot(dx, dy)
		base := math.Atan2(dy, dx) + math.Pi/2 + dist*0.005
		return base + f.noise.Noise2D(x/(f.scale*2), y/(f.scale*2)+f.time)*1.5

	case ModeChaos:
		// Two noise layers at different spatial and temporal frequencies.
		a := f.noise.Noise2D(x/(f.scale*0.3), y/(f.scale*0.3)+f.time*2) * 4 * math.Pi
		b := f.noise.Noise2D(x/(f.scale*0.5), y/(f.scale*0.5)-f.time) * 2 * math.Pi
		return a + b
	}
	return 0
}

// Update advances field time by the current mode's rate. Called once per
// frame tick by the driver.
func (f *Field) Update() {
	f.time += f.timeRate
}

// SetMode switches the angle formula and resets the time advance rate to
// the mode's default.
func (f *Field) SetMode(mode Mode) {
	f.mode = mode
	f.timeRate = mode.timeRate()
}

// Mode returns the active mode.
func (f *Field) Mode() Mode {
	return f.mode
}

// Time returns the current field time.
func (f *Field) Time() float64 {
	return f.time
}

// Resize updates the canvas dimensions and recenters the pointer. Noise
// tables are not rebuilt.
func (f *Field) Resize(width, height float64) {
	f.width = width
	f.height = height
	f.pointer.X = width / 2
	f.pointer.Y = height / 2
}

// Size returns the canvas dimensions.
func (f *Field) Size() (width, height float64) {
	return f.width, f.height
}

// SetPointer moves the interactive pointer.
func (f *Field) SetPointer(x, y float64) {
	f.pointer.X = x
	f.pointer.Y = y
}

// SetPointerActive toggles the pointer perturbation.
func (f *Field) SetPointerActive(active bool) {
	f.pointer.Active = active
}

// SetPointerRadius sets the pointer influence radius.
func (f *Field) SetPointerRadius(r float64) {
	f.pointer.Radius = r
}

// SetPointerStrength sets the pointer influence strength.
func (f *Field) SetPointerStrength(s float64) {
	f.pointer.Strength = s
}

// Pointer returns the current pointer state.
func (f *Field) Pointer() Pointer {
	return f.pointer
}

// SetNoiseScale sets the spatial frequency divisor.
func (f *Field) SetNoiseScale(scale float64) {
	f.scale = scale
}

// NoiseScale returns the spatial frequency divisor.
func (f *Field) NoiseScale() float64 {
	return f.scale
}

// Noise returns the underlying noise generator, shared read-only with
// visualization tools.
func (f *Field) Noise() *Perlin {
	return f.noise
}
