package core

// Action is a semantic player intent, abstracted from physical keys and mouse.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // W, K, Up arrow - move tile cursor up
	ActionDown           // S, J, Down arrow - move tile cursor down
	ActionLeft           // A, H, Left arrow - move tile cursor left
	ActionRight          // D, L, Right arrow - move tile cursor right
	ActionPick           // Enter, Space - pick the tile under the cursor
	ActionRestart        // R - start a fresh session
	ActionQuit           // Q, Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionPick:
		return "Pick"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// MoveCursor returns the new cursor index after applying a movement action
// on a cols-wide grid of size cells. The cursor stops at the edges.
func MoveCursor(cursor, size, cols int, a Action) int {
	if size <= 0 || cols <= 0 {
		return 0
	}
	cursor = Clamp(cursor, 0, size-1)
	row, col := cursor/cols, cursor%cols
	rows := (size + cols - 1) / cols

	switch a {
	case ActionUp:
		row--
	case ActionDown:
		row++
	case ActionLeft:
		col--
	case ActionRight:
		col++
	default:
		return cursor
	}

	row = Clamp(row, 0, rows-1)
	col = Clamp(col, 0, cols-1)
	return Clamp(row*cols+col, 0, size-1)
}
