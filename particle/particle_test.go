package particle

import (
	"math"
	"math/rand"
	"testing"
)

const (
	testW = 1280.0
	testH = 720.0
)

func newTestParticle(rng *rand.Rand) Particle {
	return New(testW, testH, DefaultParams(), rng)
}

func TestSpawnInsideInset(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 200; i++ {
		p := newTestParticle(rng)
		if p.X < DefaultSpawnInset || p.X > testW-DefaultSpawnInset ||
			p.Y < DefaultSpawnInset || p.Y > testH-DefaultSpawnInset {
			t.Fatalf("spawn at (%v, %v), want inside %v-unit inset", p.X, p.Y, DefaultSpawnInset)
		}
		if p.VX != 0 || p.VY != 0 {
			t.Fatalf("spawn velocity (%v, %v), want zero", p.VX, p.VY)
		}
		if p.HistoryLen() != 0 {
			t.Fatalf("spawn history length %d, want 0", p.HistoryLen())
		}
	}
}

func TestSpeedCap(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	p := newTestParticle(rng)

	for i := 0; i < 500; i++ {
		angle := rng.Float64() * 2 * math.Pi
		p.Update(math.Cos(angle), math.Sin(angle), 1.0)
		if s := p.Speed(); s > DefaultMaxSpeed+1e-9 {
			t.Fatalf("speed %v after update %d, want <= %v", s, i, DefaultMaxSpeed)
		}
	}
}

func TestBoundaryContainment(t *testing.T) {
	rng := rand.New(rand.NewSource(3))

	for trial := 0; trial < 10; trial++ {
		p := newTestParticle(rng)
		// Constant outward force pushes the particle into the walls.
		fx := math.Cos(float64(trial))
		fy := math.Sin(float64(trial))
		for i := 0; i < 2000; i++ {
			p.Update(fx, fy, 1.5)
			if p.X < DefaultEdgeMargin || p.X > testW-DefaultEdgeMargin ||
				p.Y < DefaultEdgeMargin || p.Y > testH-DefaultEdgeMargin {
				t.Fatalf("position (%v, %v) escaped canvas on step %d", p.X, p.Y, i)
			}
		}
	}
}

func TestHistoryBounded(t *testing.T) {
	p := NewAt(testW/2, testH/2, testW, testH, DefaultParams())

	for i := 0; i < 100; i++ {
		// Gentle rotating force keeps the particle away from walls.
		angle := float64(i) * 0.1
		p.Update(math.Cos(angle)*0.1, math.Sin(angle)*0.1, 1.0)
		if p.HistoryLen() > HistoryCap {
			t.Fatalf("history length %d after step %d, want <= %d", p.HistoryLen(), i, HistoryCap)
		}
	}
	if p.HistoryLen() != HistoryCap {
		t.Errorf("history length %d after 100 steps, want full %d", p.HistoryLen(), HistoryCap)
	}
}

func TestHistoryOrderedMostRecentLast(t *testing.T) {
	p := NewAt(testW/2, testH/2, testW, testH, DefaultParams())

	var lastX, lastY float64
	for i := 0; i < 30; i++ {
		lastX, lastY = p.X, p.Y
		p.Update(0.05, 0, 1.0)
	}

	hist := p.History(nil)
	if len(hist) != HistoryCap {
		t.Fatalf("history length %d, want %d", len(hist), HistoryCap)
	}
	tail := hist[len(hist)-1]
	if tail.X != lastX || tail.Y != lastY {
		t.Errorf("most recent history entry = (%v, %v), want pre-update position (%v, %v)",
			tail.X, tail.Y, lastX, lastY)
	}
	// Entries advance monotonically along +x under a +x force
	for i := 1; i < len(hist); i++ {
		if hist[i].X <= hist[i-1].X {
			t.Fatalf("history not ordered oldest first: x[%d]=%v <= x[%d]=%v",
				i, hist[i].X, i-1, hist[i-1].X)
		}
	}
}

func TestBounceClearsHistoryAndDampsVelocity(t *testing.T) {
	p := NewAt(testW-10, testH/2, testW, testH, DefaultParams())

	bounced := false
	for i := 0; i < 50 && !bounced; i++ {
		bounced = p.Update(1, 0, 1.0)
	}
	if !bounced {
		t.Fatal("particle never bounced off the right wall")
	}
	if p.HistoryLen() != 0 {
		t.Errorf("history length %d after bounce, want 0", p.HistoryLen())
	}
	if p.VX >= 0 {
		t.Errorf("VX = %v after right-wall bounce, want reflected negative", p.VX)
	}
	if p.X != testW-DefaultEdgeMargin {
		t.Errorf("X = %v after bounce, want clamped to %v", p.X, testW-DefaultEdgeMargin)
	}
}

func TestResetIdempotence(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	p := newTestParticle(rng)

	for i := 0; i < 200; i++ {
		p.Update(1, 0.5, 2.0)
	}

	p.Reset(testW, testH, rng)

	if p.Speed() != 0 {
		t.Errorf("speed after reset = %v, want 0", p.Speed())
	}
	if p.HistoryLen() != 0 {
		t.Errorf("history length after reset = %d, want 0", p.HistoryLen())
	}
	if p.X < DefaultSpawnInset || p.X > testW-DefaultSpawnInset ||
		p.Y < DefaultSpawnInset || p.Y > testH-DefaultSpawnInset {
		t.Errorf("position after reset = (%v, %v), want inside spawn inset", p.X, p.Y)
	}
	if p.Hue != 0 {
		t.Errorf("hue after reset = %v, want 0", p.Hue)
	}
}

func TestHueTracksSpeed(t *testing.T) {
	p := NewAt(testW/2, testH/2, testW, testH, DefaultParams())

	// Zero force on a resting particle: speed ratio 0
	p.Update(0, 0, 1.0)
	if p.Hue != 0 {
		t.Errorf("hue with zero velocity = %v, want 0", p.Hue)
	}

	// Saturate speed: hue reaches the top of the range
	for i := 0; i < 50; i++ {
		p.Update(1, 0, 1.0)
	}
	if math.Abs(p.Hue-HueMax) > 1e-9 {
		t.Errorf("hue at max speed = %v, want %v", p.Hue, HueMax)
	}
	if p.Hue < 0 || p.Hue > HueMax {
		t.Errorf("hue %v outside [0, %v]", p.Hue, HueMax)
	}
}

func TestRingEviction(t *testing.T) {
	p := NewAt(0, 0, testW, testH, DefaultParams())

	for i := 0; i < 25; i++ {
		p.pushHistory(float64(i), float64(i))
	}

	hist := p.History(nil)
	if len(hist) != HistoryCap {
		t.Fatalf("length %d, want %d", len(hist), HistoryCap)
	}
	// Oldest five entries were evicted
	for i, pt := range hist {
		want := float64(i + 5)
		if pt.X != want || pt.Y != want {
			t.Fatalf("hist[%d] = (%v, %v), want (%v, %v)", i, pt.X, pt.Y, want, want)
		}
	}
}
