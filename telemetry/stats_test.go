package telemetry

import (
	"math"
	"testing"
)

func TestWindowComplete(t *testing.T) {
	c := NewCollector(1.0, 1.0/60.0) // 60-tick windows

	if c.WindowComplete(59) {
		t.Error("window complete at tick 59, want incomplete")
	}
	if !c.WindowComplete(60) {
		t.Error("window incomplete at tick 60, want complete")
	}

	c.EndWindow(60, "flow", nil, nil)
	if c.WindowComplete(119) {
		t.Error("second window complete at tick 119, want incomplete")
	}
	if !c.WindowComplete(120) {
		t.Error("second window incomplete at tick 120, want complete")
	}
}

func TestEndWindowStats(t *testing.T) {
	c := NewCollector(1.0, 1.0/60.0)
	c.RecordBounce()
	c.RecordBounce()
	c.RecordModeSwitch()

	speeds := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	trails := []int{10, 20}

	s := c.EndWindow(60, "vortex", speeds, trails)

	if s.WindowEndTick != 60 || s.Mode != "vortex" {
		t.Errorf("window end %d mode %q, want 60 and vortex", s.WindowEndTick, s.Mode)
	}
	if math.Abs(s.SimTimeSec-1.0) > 1e-9 {
		t.Errorf("sim time = %v, want 1.0", s.SimTimeSec)
	}
	if s.ParticleCount != 10 {
		t.Errorf("particle count = %d, want 10", s.ParticleCount)
	}
	if s.Bounces != 2 || s.ModeSwitches != 1 || s.Resets != 0 {
		t.Errorf("events = %d/%d/%d, want 2/1/0", s.Bounces, s.ModeSwitches, s.Resets)
	}
	if math.Abs(s.SpeedMean-5.5) > 1e-9 {
		t.Errorf("speed mean = %v, want 5.5", s.SpeedMean)
	}
	// Sample standard deviation of 1..10
	if math.Abs(s.SpeedStd-math.Sqrt(82.5/9)) > 1e-9 {
		t.Errorf("speed std = %v, want %v", s.SpeedStd, math.Sqrt(82.5/9))
	}
	if s.SpeedP50 != 5 {
		t.Errorf("speed p50 = %v, want 5", s.SpeedP50)
	}
	if s.SpeedP90 != 9 {
		t.Errorf("speed p90 = %v, want 9", s.SpeedP90)
	}
	if s.TrailLenMean != 15 {
		t.Errorf("trail length mean = %v, want 15", s.TrailLenMean)
	}
}

func TestEndWindowResetsCounters(t *testing.T) {
	c := NewCollector(1.0, 1.0/60.0)
	c.RecordBounce()
	c.RecordReset()
	c.EndWindow(60, "flow", nil, nil)

	s := c.EndWindow(120, "flow", nil, nil)
	if s.Bounces != 0 || s.Resets != 0 || s.ModeSwitches != 0 {
		t.Errorf("counters carried over: %d/%d/%d, want zeros", s.Bounces, s.Resets, s.ModeSwitches)
	}
}

func TestEndWindowEmptyPopulation(t *testing.T) {
	c := NewCollector(1.0, 1.0/60.0)

	s := c.EndWindow(60, "chaos", nil, nil)
	if s.SpeedMean != 0 || s.SpeedStd != 0 || s.SpeedP50 != 0 || s.SpeedP90 != 0 {
		t.Errorf("speed stats for empty population = %+v, want zeros", s)
	}
	if s.TrailLenMean != 0 {
		t.Errorf("trail mean for empty population = %v, want 0", s.TrailLenMean)
	}
}

func TestCollectorMinimumWindow(t *testing.T) {
	// A window shorter than one tick still advances.
	c := NewCollector(0.001, 1.0/60.0)
	if !c.WindowComplete(1) {
		t.Error("sub-tick window not complete after one tick")
	}
}
