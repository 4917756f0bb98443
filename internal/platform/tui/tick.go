// Package tui provides the Bubble Tea frontend for OddTile.
// It renders engine snapshots and turns keys and mouse clicks into engine commands.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/oddtile/internal/engine"
)

const (
	flashDuration  = 300 * time.Millisecond
	bannerDuration = 1500 * time.Millisecond
)

// updateMsg carries an engine update into the Bubble Tea loop.
type updateMsg engine.Update

// updatesClosedMsg is sent once the engine subscription ends.
type updatesClosedMsg struct{}

// flashDoneMsg clears the hit/miss flash with the matching id.
type flashDoneMsg struct{ id int }

// bannerDoneMsg clears the milestone banner with the matching id.
type bannerDoneMsg struct{ id int }

// waitForUpdate returns a command that waits for the next engine update.
func waitForUpdate(sub *engine.Subscription) tea.Cmd {
	return func() tea.Msg {
		if sub == nil {
			return updatesClosedMsg{}
		}
		u, ok := <-sub.Updates()
		if !ok {
			return updatesClosedMsg{}
		}
		return updateMsg(u)
	}
}

func flashTimeout(id int) tea.Cmd {
	return tea.Tick(flashDuration, func(time.Time) tea.Msg {
		return flashDoneMsg{id: id}
	})
}

func bannerTimeout(id int) tea.Cmd {
	return tea.Tick(bannerDuration, func(time.Time) tea.Msg {
		return bannerDoneMsg{id: id}
	})
}
