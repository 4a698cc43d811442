// Package field implements the noise-driven direction field that steers
// particle motion.
package field

import (
	"math"
	"math/rand"
)

// grad3 holds the 12 gradient directions of improved Perlin noise,
// the edge midpoints of a cube.
var grad3 = [12][3]float64{
	{1, 1, 0}, {-1, 1, 0}, {1, -1, 0}, {-1, -1, 0},
	{1, 0, 1}, {-1, 0, 1}, {1, 0, -1}, {-1, 0, -1},
	{0, 1, 1}, {0, -1, 1}, {0, 1, -1}, {0, -1, -1},
}

// Perlin generates coherent gradient noise from a permutation table.
type Perlin struct {
	perm  [512]int
	grads [512][3]float64
}

// NewPerlin creates a noise generator with a seed-shuffled permutation table.
func NewPerlin(seed int64) *Perlin {
	rng := rand.New(rand.NewSource(seed))

	var base [256]int
	for i := range base {
		base[i] = i
	}
	rng.Shuffle(256, func(i, j int) {
		base[i], base[j] = base[j], base[i]
	})

	return fromBase(base)
}

// NewPerlinFromTable creates a noise generator from an explicit 256-entry
// permutation. Every entry must be in [0,256). Useful for reproducible
// fixtures.
func NewPerlinFromTable(table [256]int) *Perlin {
	return fromBase(table)
}

func fromBase(base [256]int) *Perlin {
	p := &Perlin{}
	// Duplicate to 512 entries so corner hashing never wraps an index.
	for i := 0; i < 256; i++ {
		p.perm[i] = base[i]
		p.perm[i+256] = base[i]
	}
	for i := range p.perm {
		p.grads[i] = grad3[p.perm[i]%12]
	}
	return p
}

// Noise2D computes 2D gradient noise at (x, y). Output is in [-1, 1] and is
// fully determined by the permutation table and the input coordinates.
func (p *Perlin) Noise2D(x, y float64) float64 {
	// Unit grid cell containing the point
	xi := int(math.Floor(x)) & 255
	yi := int(math.Floor(y)) & 255

	// Fractional offsets within the cell
	xf := x - math.Floor(x)
	yf := y - math.Floor(y)

	// Quintic fade curves
	u := fade(xf)
	v := fade(yf)

	// Hash the four cell corners
	aa := p.perm[p.perm[xi]+yi]
	ab := p.perm[p.perm[xi]+yi+1]
	ba := p.perm[p.perm[xi+1]+yi]
	bb := p.perm[p.perm[xi+1]+yi+1]

	// Interpolate corner gradients, x first then y
	x1 := lerp(u, grad2(aa, xf, yf), grad2(ba, xf-1, yf))
	x2 := lerp(u, grad2(ab, xf, yf-1), grad2(bb, xf-1, yf-1))
	return lerp(v, x1, x2)
}

// Noise3D computes 3D gradient noise at (x, y, z) using the precomputed
// gradient table. Useful for sampling a 2D slice animated over time.
func (p *Perlin) Noise3D(x, y, z float64) float64 {
	xi := int(math.Floor(x)) & 255
	yi := int(math.Floor(y)) & 255
	zi := int(math.Floor(z)) & 255

	xf := x - math.Floor(x)
	yf := y - math.Floor(y)
	zf := z - math.Floor(z)

	u := fade(xf)
	v := fade(yf)
	w := fade(zf)

	a := p.perm[xi] + yi
	aa := p.perm[a] + zi
	ab := p.perm[a+1] + zi
	b := p.perm[xi+1] + yi
	ba := p.perm[b] + zi
	bb := p.perm[b+1] + zi

	return lerp(w,
		lerp(v,
			lerp(u, p.dot3(aa, xf, yf, zf), p.dot3(ba, xf-1, yf, zf)),
			lerp(u, p.dot3(ab, xf, yf-1, zf), p.dot3(bb, xf-1, yf-1, zf))),
		lerp(v,
			lerp(u, p.dot3(aa+1, xf, yf, zf-1), p.dot3(ba+1, xf-1, yf, zf-1)),
			lerp(u, p.dot3(ab+1, xf, yf-1, zf-1), p.dot3(bb+1, xf-1, yf-1, zf-1))))
}

// dot3 is the dot product of the hashed gradient with the offset vector.
func (p *Perlin) dot3(hash int, x, y, z float64) float64 {
	g := p.grads[hash]
	return g[0]*x + g[1]*y + g[2]*z
}

// grad2 selects a diagonal gradient from the low 2 bits of the hash and
// returns its dot product with the offset vector.
func grad2(hash int, x, y float64) float64 {
	switch hash & 3 {
	case 0:
		return x + y
	case 1:
		return -x + y
	case 2:
		return x - y
	default:
		return -x - y
	}
}

// fade is the quintic smoothing curve 6t^5 - 15t^4 + 10t^3.
func fade(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

func lerp(t, a, b float64) float64 {
	return a + t*(b-a)
}
