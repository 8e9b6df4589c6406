package glyphswarm

import (
	perlin "github.com/aquilax/go-perlin"
)

// Perlin parameters: alpha is the weight of each octave, beta the frequency
// multiplier, n the octave count.
const (
	twinkleAlpha   = 2
	twinkleBeta    = 2
	twinkleOctaves = 3
	// twinkleRate is noise units per second along the time axis.
	twinkleRate = 1.5
	// twinkleSpread separates neighbouring particle indices in noise space.
	twinkleSpread = 0.37
)

// twinkle modulates per-particle disc radius with smooth 2D perlin noise
// sampled at (index, time).
type twinkle struct {
	amount float64
	noise  *perlin.Perlin
}

func newTwinkle(amount float64, seed int64) *twinkle {
	if amount <= 0 {
		return nil
	}
	return &twinkle{
		amount: min(amount, 1),
		noise:  perlin.NewPerlin(twinkleAlpha, twinkleBeta, twinkleOctaves, seed),
	}
}

// radius returns base scaled by 1 + amount*noise, never below zero.
// A nil twinkle returns base unchanged.
func (t *twinkle) radius(base float64, index int, seconds float64) float64 {
	if t == nil {
		return base
	}
	n := t.noise.Noise2D(float64(index)*twinkleSpread, seconds*twinkleRate)
	return max(base*(1+t.amount*n), 0)
}
