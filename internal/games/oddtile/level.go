package oddtile

import "math"

// Grid dimensions. The grid size is fixed.
const (
	GridCols = 5
	GridRows = 5
	GridSize = GridCols * GridRows
)

// FallbackDelta is the floor used when the caller supplies no usable one.
const FallbackDelta = 1.5

// Level is one grid with exactly one odd tile. It is a value type;
// copies never share state.
type Level struct {
	Base   Color
	Tiles  [GridSize]Color
	Target int     // Index of the odd tile
	Delta  float64 // Lightness delta requested for the odd tile
}

// GenerateLevel builds a level: a random base colour in every cell, except
// one uniformly chosen cell holding the base shifted by delta.
// A non-positive, NaN or infinite delta is replaced by floor, the curve's
// minimum delta, so the level always has an odd tile.
func GenerateLevel(r Rand, delta, floor float64) Level {
	if !usableDelta(floor) {
		floor = FallbackDelta
	}
	if !usableDelta(delta) {
		delta = floor
	}

	base := GenerateBaseColor(r)

	var lvl Level
	lvl.Base = base
	lvl.Delta = delta
	for i := range lvl.Tiles {
		lvl.Tiles[i] = base
	}

	lvl.Target = r.Intn(GridSize)
	lvl.Tiles[lvl.Target] = DeriveShiftedColor(r, base, delta)

	return lvl
}

func usableDelta(d float64) bool {
	return d > 0 && !math.IsInf(d, 1)
}

// EffectiveDelta returns the actual lightness difference of the odd tile,
// which is smaller than Delta when clamping hit 0 or 100.
func (l Level) EffectiveDelta() float64 {
	return math.Abs(l.Tiles[l.Target].Lightness - l.Base.Lightness)
}

// OddCount returns how many tiles differ from the base colour.
func (l Level) OddCount() int {
	n := 0
	for _, c := range l.Tiles {
		if !c.Equal(l.Base) {
			n++
		}
	}
	return n
}
