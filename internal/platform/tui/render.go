package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/oddtile/internal/games/oddtile"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229"))
	hudStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
	bannerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).
			Padding(0, 1)
	hitStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("10"))
	missStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("9"))
	overStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("208"))
	emptyTileStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("237"))
)

// tileMarks are the labels drawn inside a tile.
const (
	markCursor = "[ ]"
	markHit    = "✓"
	markMiss   = "✗"
	markOdd    = "◆"
)

// renderHUD renders the top status line.
func renderHUD(snap oddtile.Snapshot) string {
	title := titleStyle.Render("ODDTILE")
	if snap.State == oddtile.StateIdle {
		return title + dimStyle.Render("  starting...")
	}

	timeText := fmt.Sprintf("%d:%02d", snap.TimeLeft/60, snap.TimeLeft%60)
	if snap.State == oddtile.StateOver {
		timeText = overStyle.Render("TIME UP")
	}

	stats := fmt.Sprintf("  score %d  time %s  level %d  Δ %.1f  grade %s",
		snap.Score, timeText, snap.Level, snap.Delta, snap.Grade)
	return title + hudStyle.Render(stats)
}

// renderBanner renders the line between the HUD and the board.
func (m Model) renderBanner() string {
	if m.banner != "" {
		return bannerStyle.Render(m.banner)
	}
	if m.flashIndex < 0 {
		return ""
	}
	switch m.flashOutcome {
	case oddtile.OutcomeHit:
		return hitStyle.Render("hit!")
	case oddtile.OutcomeMiss:
		return missStyle.Render(fmt.Sprintf("miss  -%ds", m.penalty))
	}
	return ""
}

// renderBoard draws the tile grid line by line at the positions in l.
func (m Model) renderBoard(l boardLayout) string {
	var b strings.Builder
	pad := strings.Repeat(" ", l.left)
	gap := strings.Repeat(" ", l.gap)
	vgap := l.gap / 2
	labelLine := (l.cellH - 1) / 2

	for row := range oddtile.GridRows {
		if row > 0 {
			for range vgap {
				b.WriteString("\n")
			}
		}
		for line := range l.cellH {
			if row > 0 || line > 0 {
				b.WriteString("\n")
			}
			b.WriteString(pad)
			for col := range oddtile.GridCols {
				if col > 0 {
					b.WriteString(gap)
				}
				i := row*oddtile.GridCols + col
				label := ""
				if line == labelLine {
					label = m.tileLabel(i, l.cellW)
				}
				b.WriteString(m.tileStyle(i).Render(centerIn(label, l.cellW)))
			}
		}
	}
	return b.String()
}

// tileStyle returns the style of tile i: its colour as background and a
// contrasting foreground for labels.
func (m Model) tileStyle(i int) lipgloss.Style {
	if m.snap.State == oddtile.StateIdle {
		return emptyTileStyle
	}
	tile := m.snap.Tiles[i]
	fg := "#ffffff"
	if tile.Lightness > 55 {
		fg = "#000000"
	}
	return lipgloss.NewStyle().
		Background(lipgloss.Color(tile.Hex())).
		Foreground(lipgloss.Color(fg)).
		Bold(true)
}

// tileLabel returns the mark drawn in tile i, if any.
func (m Model) tileLabel(i, width int) string {
	switch {
	case m.snap.State == oddtile.StateOver && i == m.snap.Target:
		return markOdd
	case i == m.flashIndex && m.flashOutcome == oddtile.OutcomeHit:
		return markHit
	case i == m.flashIndex && m.flashOutcome == oddtile.OutcomeMiss:
		return markMiss
	case i == m.cursor && m.snap.State == oddtile.StateActive:
		if width < lipgloss.Width(markCursor) {
			return "[]"
		}
		return markCursor
	}
	return ""
}

// renderStatus renders the two lines below the board.
func (m Model) renderStatus() string {
	snap := m.snap
	switch snap.State {
	case oddtile.StateOver:
		summary := fmt.Sprintf("GAME OVER  score %d  grade %s  accuracy %.0f%%  (%d hits, %d misses)",
			snap.Score, snap.Grade, snap.Accuracy()*100, snap.Hits, snap.Misses)
		return overStyle.Render(summary) + "\n" +
			dimStyle.Render(fmt.Sprintf("The odd tile was %s.  r: play again   q: quit", markOdd))
	case oddtile.StateActive:
		return dimStyle.Render("Find the tile that differs in lightness.") + "\n" +
			dimStyle.Render(fmt.Sprintf("Wrong picks cost %d seconds.", m.penalty))
	}
	return "\n"
}

// centerIn pads s with spaces to exactly width cells, centered.
// Longer strings are returned unchanged.
func centerIn(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	left := (width - w) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-w-left)
}

// centerText centers text within the given width.
func centerText(text string, width int) string {
	textLen := lipgloss.Width(text)
	if textLen >= width {
		return text
	}
	return strings.Repeat(" ", (width-textLen)/2) + text
}
