package core

import "testing"

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 20, 15)

	tests := []struct {
		name     string
		x, y     int
		expected bool
	}{
		{"inside", 15, 15, true},
		{"top-left corner", 10, 10, true},
		{"last cell", 29, 24, true},
		{"bottom-right edge (exclusive)", 30, 25, false},
		{"outside left", 5, 15, false},
		{"outside right", 35, 15, false},
		{"outside top", 15, 5, false},
		{"outside bottom", 15, 30, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := r.Contains(tc.x, tc.y)
			if result != tc.expected {
				t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, result, tc.expected)
			}
		})
	}
}

func TestGridRects(t *testing.T) {
	rects := GridRects(2, 1, 5, 5, 6, 3, 2)

	if len(rects) != 25 {
		t.Fatalf("GridRects returned %d rects, expected 25", len(rects))
	}

	first := rects[0]
	if first != NewRect(2, 1, 6, 3) {
		t.Errorf("first rect = %+v, expected {2 1 6 3}", first)
	}

	// Second column starts after cell width plus gap
	if rects[1].X != 10 || rects[1].Y != 1 {
		t.Errorf("rects[1] at (%d, %d), expected (10, 1)", rects[1].X, rects[1].Y)
	}

	// Second row starts after cell height plus half gap
	if rects[5].X != 2 || rects[5].Y != 5 {
		t.Errorf("rects[5] at (%d, %d), expected (2, 5)", rects[5].X, rects[5].Y)
	}

	// No two cells overlap
	for i := range rects {
		for j := i + 1; j < len(rects); j++ {
			a, b := rects[i], rects[j]
			if a.X < b.Right() && b.X < a.Right() && a.Y < b.Bottom() && b.Y < a.Bottom() {
				t.Errorf("rects %d and %d overlap: %+v %+v", i, j, a, b)
			}
		}
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},   // within range
		{-5, 0, 10, 0},  // below min
		{15, 0, 10, 10}, // above max
		{0, 0, 10, 0},   // at min
		{10, 0, 10, 10}, // at max
	}

	for _, tc := range tests {
		result := Clamp(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}

func TestClampF(t *testing.T) {
	tests := []struct {
		val, min, max, expected float64
	}{
		{55.5, 0.0, 100.0, 55.5},
		{-3.5, 0.0, 100.0, 0.0},
		{104.0, 0.0, 100.0, 100.0},
	}

	for _, tc := range tests {
		result := ClampF(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("ClampF(%f, %f, %f) = %f, expected %f", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}

func TestResolveSeed(t *testing.T) {
	cfg := RuntimeConfig{Seed: 42}
	if cfg.ResolveSeed() != 42 {
		t.Errorf("ResolveSeed() = %d, expected 42", cfg.ResolveSeed())
	}

	cfg.Seed = 0
	if cfg.ResolveSeed() == 0 {
		t.Error("ResolveSeed() should derive a non-zero seed when unset")
	}
}
