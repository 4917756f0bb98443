package tui

import (
	"github.com/vovakirdan/oddtile/internal/core"
	"github.com/vovakirdan/oddtile/internal/games/oddtile"
)

// Screen layout constants
const (
	boardTop      = 3  // HUD line, banner line, blank line
	footerLines   = 4  // Blank line, two status lines, help bar
	defaultWidth  = 80 // Used until the first WindowSizeMsg
	defaultHeight = 24
)

// tileSizes lists candidate tile sizes, largest first.
var tileSizes = []struct{ w, h, gap int }{
	{10, 4, 2},
	{8, 3, 2},
	{6, 3, 2},
	{6, 2, 2},
	{4, 2, 1},
	{2, 1, 1},
}

// boardLayout is where the tile grid sits on screen.
// View and mouse handling share it, so a click always lands on the tile drawn there.
type boardLayout struct {
	tiles []core.Rect
	left  int
	cellW int
	cellH int
	gap   int
}

// computeLayout picks the largest tile size that fits the screen and
// centers the grid horizontally.
func computeLayout(width, height int) boardLayout {
	if width <= 0 {
		width = defaultWidth
	}
	if height <= 0 {
		height = defaultHeight
	}

	size := tileSizes[len(tileSizes)-1]
	for _, s := range tileSizes {
		boardW := oddtile.GridCols*s.w + (oddtile.GridCols-1)*s.gap
		boardH := oddtile.GridRows*s.h + (oddtile.GridRows-1)*(s.gap/2)
		if boardW <= width && boardTop+boardH+footerLines <= height {
			size = s
			break
		}
	}

	boardW := oddtile.GridCols*size.w + (oddtile.GridCols-1)*size.gap
	left := max(0, (width-boardW)/2)

	return boardLayout{
		tiles: core.GridRects(left, boardTop, oddtile.GridRows, oddtile.GridCols, size.w, size.h, size.gap),
		left:  left,
		cellW: size.w,
		cellH: size.h,
		gap:   size.gap,
	}
}

// TileAt returns the tile index under screen cell (x, y), or -1.
func (l boardLayout) TileAt(x, y int) int {
	for i, r := range l.tiles {
		if r.Contains(x, y) {
			return i
		}
	}
	return -1
}

// height returns the number of screen lines the grid occupies.
func (l boardLayout) height() int {
	if len(l.tiles) == 0 {
		return 0
	}
	return l.tiles[len(l.tiles)-1].Bottom() - boardTop
}
