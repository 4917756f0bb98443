// Package oddtile implements the OddTile game engine: a 5x5 grid of
// near-identical colours with one tile of different lightness.
//
// The package is pure logic. Time, rendering and persistence are driven
// from outside through Start, Tick, Click and Snapshot.
package oddtile

import (
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/vovakirdan/oddtile/internal/core"
)

// Colour ranges used for base colours.
const (
	MinSaturation = 40.0
	MaxSaturation = 80.0
	MinLightness  = 30.0
	MaxLightness  = 70.0
)

// Rand is the random source used by the engine.
// *rand.Rand satisfies it; tests substitute scripted sources.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// Color is an HSL colour. Hue is in degrees [0, 360), saturation and
// lightness are percentages.
type Color struct {
	Hue        float64
	Saturation float64
	Lightness  float64
}

// GenerateBaseColor returns a random colour with hue in [0, 360),
// saturation in [40, 80] and lightness in [30, 70].
func GenerateBaseColor(r Rand) Color {
	return Color{
		Hue:        r.Float64() * 360,
		Saturation: MinSaturation + r.Float64()*(MaxSaturation-MinSaturation),
		Lightness:  MinLightness + r.Float64()*(MaxLightness-MinLightness),
	}
}

// DeriveShiftedColor returns base with its lightness moved by delta in a
// random direction and clamped to [0, 100]. Near the range boundary the
// clamp can shrink the visible difference; that is left as is.
func DeriveShiftedColor(r Rand, base Color, delta float64) Color {
	shift := delta
	if r.Float64() < 0.5 {
		shift = -delta
	}
	shifted := base
	shifted.Lightness = core.ClampF(base.Lightness+shift, 0, 100)
	return shifted
}

// Equal reports whether two colours are exactly the same.
func (c Color) Equal(other Color) bool {
	return c == other
}

// toColorful converts to go-colorful's representation (fractions, wrapped hue).
func (c Color) toColorful() colorful.Color {
	hue := c.Hue
	for hue < 0 {
		hue += 360
	}
	for hue >= 360 {
		hue -= 360
	}
	return colorful.Hsl(hue, c.Saturation/100, core.ClampF(c.Lightness, 0, 100)/100).Clamped()
}

// Hex returns the colour as a #rrggbb string.
func (c Color) Hex() string {
	return c.toColorful().Hex()
}

// RGB returns the colour as 8-bit channels.
func (c Color) RGB() (r, g, b uint8) {
	return c.toColorful().RGB255()
}
