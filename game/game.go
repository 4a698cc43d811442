// Package game wires the direction field and the particle population into
// a frame-driven visualization.
package game

import (
	"log/slog"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/driftfield/config"
	"github.com/pthm-cable/driftfield/field"
	"github.com/pthm-cable/driftfield/particle"
	"github.com/pthm-cable/driftfield/telemetry"
)

// DT is the simulation timestep in seconds per tick.
const DT = 1.0 / 60.0

// Options configures a Game instance.
type Options struct {
	Seed           int64
	LogStats       bool
	StatsWindowSec float64
	OutputDir      string
	StepsPerUpdate int
}

// Game holds the complete visualization state. Update advances the field
// and every particle once per tick, strictly sequentially.
type Game struct {
	world *ecs.World
	rng   *rand.Rand

	particleMap    *ecs.Map1[particle.Particle]
	particleFilter *ecs.Filter1[particle.Particle]

	field     *field.Field
	params    particle.Params
	speedMult float64

	collector *telemetry.Collector
	output    *telemetry.OutputManager
	logStats  bool

	tick           int64
	paused         bool
	stepsPerUpdate int
	count          int

	width, height float64

	// Rendering state, unused in headless mode
	render      renderState
	showPanel   bool
	pointerHeld bool

	// Reused buffers
	histBuf     []particle.Point
	speedBuf    []float64
	trailLenBuf []int
}

// NewGame creates a game from the loaded configuration and options.
func NewGame(opts Options) *Game {
	cfg := config.Cfg()

	mode, err := field.ParseMode(cfg.Field.Mode)
	if err != nil {
		slog.Warn("invalid field mode in config, using flow", "mode", cfg.Field.Mode)
		mode = field.ModeFlow
	}

	seed := cfg.Field.Seed
	if seed == 0 {
		seed = opts.Seed
	}

	w := float64(cfg.Screen.Width)
	h := float64(cfg.Screen.Height)

	f := field.New(w, h, mode, seed)
	f.SetNoiseScale(cfg.Field.NoiseScale)
	f.SetPointerRadius(cfg.Pointer.Radius)
	f.SetPointerStrength(cfg.Pointer.Strength)

	stepsPerUpdate := opts.StepsPerUpdate
	if stepsPerUpdate < 1 {
		stepsPerUpdate = 1
	}

	statsWindow := opts.StatsWindowSec
	if statsWindow <= 0 {
		statsWindow = cfg.Telemetry.StatsWindow
	}

	output, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		slog.Error("failed to create output manager", "error", err)
		output = nil
	}
	if err := output.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config snapshot", "error", err)
	}

	world := ecs.NewWorld()

	g := &Game{
		world:          world,
		rng:            rand.New(rand.NewSource(opts.Seed)),
		particleMap:    ecs.NewMap1[particle.Particle](world),
		particleFilter: ecs.NewFilter1[particle.Particle](world),
		field:          f,
		params: particle.Params{
			MaxSpeed:      cfg.Particles.MaxSpeed,
			ForceGain:     cfg.Particles.ForceGain,
			EdgeMargin:    cfg.Particles.EdgeMargin,
			BounceDamping: cfg.Particles.BounceDamping,
			SpawnInset:    cfg.Particles.SpawnInset,
		},
		speedMult:      cfg.Particles.SpeedMultiplier,
		collector:      telemetry.NewCollector(statsWindow, DT),
		output:         output,
		logStats:       opts.LogStats,
		stepsPerUpdate: stepsPerUpdate,
		width:          w,
		height:         h,
		render:         newRenderState(cfg),
	}

	g.spawn(cfg.Particles.Count)

	return g
}

// spawn adds n particles at random positions inside the spawn inset.
func (g *Game) spawn(n int) {
	for i := 0; i < n; i++ {
		p := particle.New(g.width, g.height, g.params, g.rng)
		g.particleMap.NewEntity(&p)
	}
	g.count += n
}

// SetTargetCount grows or shrinks the particle population to n.
func (g *Game) SetTargetCount(n int) {
	if n > g.count {
		g.spawn(n - g.count)
		return
	}
	if n >= g.count {
		return
	}

	excess := make([]ecs.Entity, 0, g.count-n)
	query := g.particleFilter.Query()
	for query.Next() {
		if len(excess) >= g.count-n {
			// Entities to remove are collected first; removal during
			// iteration would invalidate the query.
			continue
		}
		excess = append(excess, query.Entity())
	}
	for _, e := range excess {
		g.world.RemoveEntity(e)
	}
	g.count -= len(excess)
}

// SetSpeedMultiplier sets the global speed multiplier applied to every
// particle step.
func (g *Game) SetSpeedMultiplier(m float64) {
	g.speedMult = m
}

// Count returns the current particle count.
func (g *Game) Count() int {
	return g.count
}

// Tick returns the current tick number.
func (g *Game) Tick() int64 {
	return g.tick
}

// Field returns the direction field, for the input and panel layers.
func (g *Game) Field() *field.Field {
	return g.field
}

// SetMode switches the field mode.
func (g *Game) SetMode(m field.Mode) {
	if m == g.field.Mode() {
		return
	}
	g.field.SetMode(m)
	g.collector.RecordModeSwitch()
}

// ResetParticles respawns every particle, discarding velocity and history.
func (g *Game) ResetParticles() {
	query := g.particleFilter.Query()
	for query.Next() {
		query.Get().Reset(g.width, g.height, g.rng)
	}
	g.collector.RecordReset()
}

// step advances the simulation one tick: field time first, then one pass
// over all particles.
func (g *Game) step() {
	g.field.Update()

	query := g.particleFilter.Query()
	for query.Next() {
		p := query.Get()
		v := g.field.VectorAt(p.X, p.Y)
		if p.Update(v.X, v.Y, g.speedMult) {
			g.collector.RecordBounce()
		}
	}

	g.tick++
}

// Update runs one graphical frame: input, simulation steps, telemetry.
func (g *Game) Update() {
	g.handleInput()

	if !g.paused {
		for i := 0; i < g.stepsPerUpdate; i++ {
			g.step()
		}
	}

	g.flushTelemetry()
}

// UpdateHeadless runs simulation steps without any input or rendering.
func (g *Game) UpdateHeadless() {
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.step()
	}
	g.flushTelemetry()
}

// flushTelemetry closes the stats window if due and emits the record.
func (g *Game) flushTelemetry() {
	if !g.collector.WindowComplete(g.tick) {
		return
	}

	g.speedBuf = g.speedBuf[:0]
	g.trailLenBuf = g.trailLenBuf[:0]
	query := g.particleFilter.Query()
	for query.Next() {
		p := query.Get()
		g.speedBuf = append(g.speedBuf, p.Speed())
		g.trailLenBuf = append(g.trailLenBuf, p.HistoryLen())
	}

	stats := g.collector.EndWindow(g.tick, g.field.Mode().String(), g.speedBuf, g.trailLenBuf)
	if g.logStats {
		stats.Log()
	}
	if err := g.output.WriteWindow(stats); err != nil {
		slog.Error("failed to write telemetry", "error", err)
	}
}

// Unload releases rendering resources and closes output files.
func (g *Game) Unload() {
	g.render.unload()
	if err := g.output.Close(); err != nil {
		slog.Error("failed to close telemetry output", "error", err)
	}
}
