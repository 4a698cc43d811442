// Package telemetry aggregates windowed run statistics and writes them to
// structured logs and CSV files.
package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for one stats window.
type WindowStats struct {
	WindowEndTick int64   `csv:"window_end"`
	SimTimeSec    float64 `csv:"sim_time"`
	Mode          string  `csv:"mode"`

	ParticleCount int `csv:"particles"`

	// Events during the window
	Bounces      int `csv:"bounces"`
	ModeSwitches int `csv:"mode_switches"`
	Resets       int `csv:"resets"`

	// Speed distribution sampled at window end
	SpeedMean float64 `csv:"speed_mean"`
	SpeedStd  float64 `csv:"speed_std"`
	SpeedP50  float64 `csv:"speed_p50"`
	SpeedP90  float64 `csv:"speed_p90"`

	// Trail occupancy sampled at window end
	TrailLenMean float64 `csv:"trail_len_mean"`
}

// Log emits the stats through slog.
func (s WindowStats) Log() {
	slog.Info("window stats",
		"window_end", s.WindowEndTick,
		"sim_time", s.SimTimeSec,
		"mode", s.Mode,
		"particles", s.ParticleCount,
		"bounces", s.Bounces,
		"mode_switches", s.ModeSwitches,
		"resets", s.Resets,
		"speed_mean", s.SpeedMean,
		"speed_std", s.SpeedStd,
		"speed_p50", s.SpeedP50,
		"speed_p90", s.SpeedP90,
		"trail_len_mean", s.TrailLenMean,
	)
}

// Collector accumulates events within time windows and produces WindowStats.
type Collector struct {
	windowTicks int64
	dt          float64

	windowStartTick int64

	bounces      int
	modeSwitches int
	resets       int
}

// NewCollector creates a stats collector.
// windowSec: duration of each stats window in simulation seconds.
// dt: seconds per tick.
func NewCollector(windowSec, dt float64) *Collector {
	ticks := int64(windowSec / dt)
	if ticks < 1 {
		ticks = 1
	}
	return &Collector{
		windowTicks: ticks,
		dt:          dt,
	}
}

// RecordBounce records a boundary bounce.
func (c *Collector) RecordBounce() {
	c.bounces++
}

// RecordModeSwitch records a field mode change.
func (c *Collector) RecordModeSwitch() {
	c.modeSwitches++
}

// RecordReset records a population reset.
func (c *Collector) RecordReset() {
	c.resets++
}

// WindowComplete reports whether the current window ends at the given tick.
func (c *Collector) WindowComplete(tick int64) bool {
	return tick-c.windowStartTick >= c.windowTicks
}

// EndWindow closes the current window, computing distribution stats from
// the per-particle speed and trail length samples, and starts a new one.
func (c *Collector) EndWindow(tick int64, mode string, speeds []float64, trailLens []int) WindowStats {
	s := WindowStats{
		WindowEndTick: tick,
		SimTimeSec:    float64(tick) * c.dt,
		Mode:          mode,
		ParticleCount: len(speeds),
		Bounces:       c.bounces,
		ModeSwitches:  c.modeSwitches,
		Resets:        c.resets,
	}

	if len(speeds) > 0 {
		s.SpeedMean = stat.Mean(speeds, nil)
		s.SpeedStd = stat.StdDev(speeds, nil)

		sorted := make([]float64, len(speeds))
		copy(sorted, speeds)
		sort.Float64s(sorted)
		s.SpeedP50 = stat.Quantile(0.5, stat.Empirical, sorted, nil)
		s.SpeedP90 = stat.Quantile(0.9, stat.Empirical, sorted, nil)
	}

	if len(trailLens) > 0 {
		var sum int
		for _, l := range trailLens {
			sum += l
		}
		s.TrailLenMean = float64(sum) / float64(len(trailLens))
	}

	c.windowStartTick = tick
	c.bounces = 0
	c.modeSwitches = 0
	c.resets = 0

	return s
}
