// Package core provides small shared types for the game and its frontends.
// It has no external dependencies so the engine stays pure and testable.
package core

// Rect is an axis-aligned cell rectangle, used for tile hit-testing.
type Rect struct {
	X, Y int // Top-left corner
	W, H int
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate one past the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate one past the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains reports whether the point (x, y) lies inside the rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// GridRects lays out rows×cols cells of size cellW×cellH starting at (x, y),
// separated by gap columns horizontally and gap/2 rows vertically.
// Cells are returned in row-major order.
func GridRects(x, y, rows, cols, cellW, cellH, gap int) []Rect {
	rects := make([]Rect, 0, rows*cols)
	vgap := gap / 2
	for row := range rows {
		for col := range cols {
			rects = append(rects, Rect{
				X: x + col*(cellW+gap),
				Y: y + row*(cellH+vgap),
				W: cellW,
				H: cellH,
			})
		}
	}
	return rects
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
