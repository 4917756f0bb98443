package config

import "math"

// DeltaCurve maps a cumulative score to the lightness delta of the next level.
// Each doubling of the score removes Slope percent, so early levels tighten
// quickly and later ones approach the Min floor slowly.
type DeltaCurve struct {
	Initial float64 // Delta at score 0
	Min     float64 // Floor, never undercut
	Slope   float64 // Percent removed per doubling of score+1
}

// NewDeltaCurve creates a curve from difficulty settings.
func NewDeltaCurve(cfg DifficultyConfig) DeltaCurve {
	return DeltaCurve{
		Initial: cfg.InitialDelta,
		Min:     cfg.MinDelta,
		Slope:   cfg.Slope,
	}
}

// DefaultDeltaCurve returns the curve of the built-in rules.
func DefaultDeltaCurve() DeltaCurve {
	return NewDeltaCurve(DefaultConfig().Difficulty)
}

// NextDelta returns the delta for the level generated after score correct picks.
// Negative scores are treated as zero.
func (c DeltaCurve) NextDelta(score int) float64 {
	if score < 0 {
		score = 0
	}
	delta := c.Initial - c.Slope*math.Log2(float64(score)+1)
	return math.Max(c.Min, delta)
}
