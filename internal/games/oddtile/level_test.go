package oddtile

import (
	"math"
	"math/rand"
	"testing"
)

// scriptedRand replays fixed values; once exhausted it returns midpoints.
type scriptedRand struct {
	floats []float64
	ints   []int
}

func (s *scriptedRand) Float64() float64 {
	if len(s.floats) == 0 {
		return 0.5
	}
	v := s.floats[0]
	s.floats = s.floats[1:]
	return v
}

func (s *scriptedRand) Intn(n int) int {
	if len(s.ints) == 0 {
		return n / 2
	}
	v := s.ints[0]
	s.ints = s.ints[1:]
	return v % n
}

func TestGenerateBaseColorRanges(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 1000; i++ {
		c := GenerateBaseColor(rng)
		if c.Hue < 0 || c.Hue >= 360 {
			t.Fatalf("hue %v out of [0,360)", c.Hue)
		}
		if c.Saturation < MinSaturation || c.Saturation > MaxSaturation {
			t.Fatalf("saturation %v out of [40,80]", c.Saturation)
		}
		if c.Lightness < MinLightness || c.Lightness > MaxLightness {
			t.Fatalf("lightness %v out of [30,70]", c.Lightness)
		}
	}
}

func TestDeriveShiftedColor(t *testing.T) {
	base := Color{Hue: 200, Saturation: 60, Lightness: 50}

	tests := []struct {
		name      string
		base      Color
		coin      float64
		delta     float64
		lightness float64
	}{
		{"shift down", base, 0.2, 10, 40},
		{"shift up", base, 0.7, 10, 60},
		{"clamped at top", Color{Hue: 10, Saturation: 50, Lightness: 95}, 0.9, 20, 100},
		{"clamped at bottom", Color{Hue: 10, Saturation: 50, Lightness: 4}, 0.1, 20, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := DeriveShiftedColor(&scriptedRand{floats: []float64{tc.coin}}, tc.base, tc.delta)
			if got.Lightness != tc.lightness {
				t.Errorf("Lightness = %v, expected %v", got.Lightness, tc.lightness)
			}
			if got.Hue != tc.base.Hue || got.Saturation != tc.base.Saturation {
				t.Errorf("hue/saturation changed: %+v from %+v", got, tc.base)
			}
		})
	}
}

func TestGenerateLevelScripted(t *testing.T) {
	rng := &scriptedRand{
		floats: []float64{0.5, 0.25, 0.5, 0.9}, // hue, saturation, lightness, shift sign
		ints:   []int{7},                       // target
	}

	lvl := GenerateLevel(rng, 20, 1.5)

	want := Color{Hue: 180, Saturation: 50, Lightness: 50}
	if lvl.Base != want {
		t.Fatalf("Base = %+v, expected %+v", lvl.Base, want)
	}
	if lvl.Target != 7 {
		t.Fatalf("Target = %d, expected 7", lvl.Target)
	}
	if lvl.Delta != 20 {
		t.Errorf("Delta = %v, expected 20", lvl.Delta)
	}

	for i, c := range lvl.Tiles {
		if i == 7 {
			odd := Color{Hue: 180, Saturation: 50, Lightness: 70}
			if c != odd {
				t.Errorf("Tiles[7] = %+v, expected %+v", c, odd)
			}
			continue
		}
		if c != want {
			t.Errorf("Tiles[%d] = %+v, expected base", i, c)
		}
	}
}

func TestGenerateLevelInvariant(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 500; i++ {
		delta := 1.5 + float64(i%20)
		lvl := GenerateLevel(rng, delta, 1.5)

		if lvl.Target < 0 || lvl.Target >= GridSize {
			t.Fatalf("Target %d out of range", lvl.Target)
		}
		if n := lvl.OddCount(); n != 1 {
			t.Fatalf("level %d has %d odd tiles, expected 1", i, n)
		}

		odd := lvl.Tiles[lvl.Target]
		if odd.Hue != lvl.Base.Hue || odd.Saturation != lvl.Base.Saturation {
			t.Fatalf("odd tile changed hue/saturation: %+v vs %+v", odd, lvl.Base)
		}
		if math.Abs(lvl.EffectiveDelta()-delta) > 1e-9 {
			t.Fatalf("effective delta %v, expected %v", lvl.EffectiveDelta(), delta)
		}
	}
}

func TestGenerateLevelNonPositiveDelta(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	tests := []struct {
		delta    float64
		floor    float64
		expected float64
	}{
		{0, 1.5, 1.5},
		{-3, 4, 4},
		{math.NaN(), 2.5, 2.5},
		{math.Inf(1), 3, 3},
		{-1, 0, FallbackDelta},
		{-1, math.NaN(), FallbackDelta},
	}

	for _, tc := range tests {
		lvl := GenerateLevel(rng, tc.delta, tc.floor)
		if lvl.Delta != tc.expected {
			t.Errorf("GenerateLevel(%v, %v).Delta = %v, expected %v", tc.delta, tc.floor, lvl.Delta, tc.expected)
		}
		if lvl.OddCount() != 1 {
			t.Errorf("GenerateLevel(%v, %v) has %d odd tiles", tc.delta, tc.floor, lvl.OddCount())
		}
	}
}

func TestColorHex(t *testing.T) {
	tests := []struct {
		c    Color
		want string
	}{
		{Color{Hue: 0, Saturation: 100, Lightness: 50}, "#ff0000"},
		{Color{Hue: 120, Saturation: 100, Lightness: 50}, "#00ff00"},
		{Color{Hue: 0, Saturation: 0, Lightness: 100}, "#ffffff"},
		{Color{Hue: 360, Saturation: 100, Lightness: 50}, "#ff0000"}, // hue wraps
	}

	for _, tc := range tests {
		if got := tc.c.Hex(); got != tc.want {
			t.Errorf("%+v.Hex() = %s, expected %s", tc.c, got, tc.want)
		}
	}
}
