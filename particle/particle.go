// Package particle implements the kinematics of a single trail particle.
package particle

import (
	"math"
	"math/rand"
)

// HistoryCap is the maximum number of past positions kept for trail
// rendering.
const HistoryCap = 20

// Default kinematics parameters.
const (
	DefaultMaxSpeed      = 2.0
	DefaultForceGain     = 0.3
	DefaultEdgeMargin    = 2.0
	DefaultBounceDamping = 0.7
	DefaultSpawnInset    = 50.0
)

// HueMax is the upper bound of the hue range derived from speed.
const HueMax = 120.0

// Params holds the tunable kinematics constants. The zero value is not
// usable; start from DefaultParams.
type Params struct {
	MaxSpeed      float64 // velocity magnitude cap, units per step
	ForceGain     float64 // force-to-acceleration gain
	EdgeMargin    float64 // bounce margin from canvas edges
	BounceDamping float64 // velocity retained after a bounce
	SpawnInset    float64 // inset of the random spawn region
}

// DefaultParams returns the standard kinematics constants.
func DefaultParams() Params {
	return Params{
		MaxSpeed:      DefaultMaxSpeed,
		ForceGain:     DefaultForceGain,
		EdgeMargin:    DefaultEdgeMargin,
		BounceDamping: DefaultBounceDamping,
		SpawnInset:    DefaultSpawnInset,
	}
}

// Point is a recorded trail position.
type Point struct {
	X, Y float64
}

// Particle is a single particle driven by an external force field. It keeps
// a bounded ring of past positions for trail rendering. The struct is plain
// data and safe to store by value.
type Particle struct {
	X, Y   float64
	VX, VY float64

	// Hue in [0, HueMax], derived from speed each update.
	Hue float64

	params        Params
	width, height float64

	hist      [HistoryCap]Point
	histStart int
	histLen   int
}

// New creates a particle at a uniformly random position inside the spawn
// inset of a width x height canvas.
func New(width, height float64, params Params, rng *rand.Rand) Particle {
	p := Particle{params: params}
	p.Reset(width, height, rng)
	return p
}

// NewAt creates a particle at an explicit position.
func NewAt(x, y, width, height float64, params Params) Particle {
	return Particle{
		X: x, Y: y,
		params: params,
		width:  width,
		height: height,
	}
}

// Reset reinitializes the particle exactly as construction does: random
// position inside the spawn inset, zero velocity, empty history.
func (p *Particle) Reset(width, height float64, rng *rand.Rand) {
	inset := p.params.SpawnInset
	p.X = inset + rng.Float64()*(width-2*inset)
	p.Y = inset + rng.Float64()*(height-2*inset)
	p.VX = 0
	p.VY = 0
	p.Hue = 0
	p.width = width
	p.height = height
	p.ClearHistory()
}

// Update advances the particle one step under the given force vector and
// speed multiplier. Returns true if the particle bounced off a canvas edge.
func (p *Particle) Update(fx, fy, speedMult float64) bool {
	p.VX += fx * p.params.ForceGain
	p.VY += fy * p.params.ForceGain

	// Cap speed preserving direction
	speed := math.Hypot(p.VX, p.VY)
	if speed > p.params.MaxSpeed {
		k := p.params.MaxSpeed / speed
		p.VX *= k
		p.VY *= k
	}

	p.pushHistory(p.X, p.Y)

	p.X += p.VX * speedMult
	p.Y += p.VY * speedMult

	bounced := false
	m := p.params.EdgeMargin
	d := p.params.BounceDamping
	if p.X < m {
		p.X = m
		p.VX = -p.VX * d
		bounced = true
	} else if p.X > p.width-m {
		p.X = p.width - m
		p.VX = -p.VX * d
		bounced = true
	}
	if p.Y < m {
		p.Y = m
		p.VY = -p.VY * d
		bounced = true
	} else if p.Y > p.height-m {
		p.Y = p.height - m
		p.VY = -p.VY * d
		bounced = true
	}

	// The clamp teleports the particle; a trail segment across the jump
	// would smear the whole canvas.
	if bounced {
		p.ClearHistory()
	}

	p.Hue = math.Hypot(p.VX, p.VY) / p.params.MaxSpeed * HueMax

	return bounced
}

// SetBounds updates the canvas dimensions the particle bounces against.
func (p *Particle) SetBounds(width, height float64) {
	p.width = width
	p.height = height
}

// Speed returns the current velocity magnitude.
func (p *Particle) Speed() float64 {
	return math.Hypot(p.VX, p.VY)
}

// HistoryLen returns the number of recorded trail positions.
func (p *Particle) HistoryLen() int {
	return p.histLen
}

// History appends the recorded trail positions to dst, oldest first, and
// returns the extended slice. Pass a reused buffer to avoid allocation.
func (p *Particle) History(dst []Point) []Point {
	for i := 0; i < p.histLen; i++ {
		dst = append(dst, p.hist[(p.histStart+i)%HistoryCap])
	}
	return dst
}

// ClearHistory drops all recorded trail positions.
func (p *Particle) ClearHistory() {
	p.histStart = 0
	p.histLen = 0
}

// pushHistory records a position, evicting the oldest when full.
func (p *Particle) pushHistory(x, y float64) {
	if p.histLen < HistoryCap {
		p.hist[(p.histStart+p.histLen)%HistoryCap] = Point{X: x, Y: y}
		p.histLen++
		return
	}
	p.hist[p.histStart] = Point{X: x, Y: y}
	p.histStart = (p.histStart + 1) % HistoryCap
}
