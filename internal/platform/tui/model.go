package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/oddtile/internal/core"
	"github.com/vovakirdan/oddtile/internal/engine"
	"github.com/vovakirdan/oddtile/internal/games/oddtile"
)

// Model is the Bubble Tea model for an OddTile session.
// All game state lives in the engine; the model only mirrors its snapshots.
type Model struct {
	engine  *engine.Engine
	sub     *engine.Subscription
	snap    oddtile.Snapshot
	penalty int

	cursor int
	width  int
	height int
	keys   KeyMap
	help   help.Model

	flashIndex   int // Tile of the last click, -1 when no flash
	flashOutcome oddtile.Outcome
	flashID      int
	banner       string
	bannerID     int

	quitting bool
}

// NewModel creates a model bound to a started engine.
func NewModel(eng *engine.Engine, width, height int) Model {
	h := help.New()
	h.Width = width

	return Model{
		engine:     eng,
		sub:        eng.Subscribe(32),
		snap:       eng.Snapshot(),
		penalty:    eng.Config().Session.MissPenalty,
		cursor:     oddtile.GridSize / 2,
		width:      width,
		height:     height,
		keys:       DefaultKeyMap(),
		help:       h,
		flashIndex: -1,
	}
}

// Init subscribes to engine updates and starts the first session.
func (m Model) Init() tea.Cmd {
	return tea.Batch(waitForUpdate(m.sub), m.newGame())
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case updateMsg:
		return m.handleUpdate(engine.Update(msg))

	case updatesClosedMsg:
		return m, nil

	case flashDoneMsg:
		if msg.id == m.flashID {
			m.flashIndex = -1
		}
		return m, nil

	case bannerDoneMsg:
		if msg.id == m.bannerID {
			m.banner = ""
		}
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keys.MapKey(msg)

	switch action {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case core.ActionUp, core.ActionDown, core.ActionLeft, core.ActionRight:
		m.cursor = core.MoveCursor(m.cursor, oddtile.GridSize, oddtile.GridCols, action)
	case core.ActionPick:
		if m.snap.State == oddtile.StateActive {
			return m, m.pick(m.cursor)
		}
	case core.ActionRestart:
		if m.snap.State != oddtile.StateActive {
			return m, m.newGame()
		}
	}

	return m, nil
}

// handleMouse maps a left click to the tile drawn under it.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}

	i := computeLayout(m.width, m.height).TileAt(msg.X, msg.Y)
	if i < 0 {
		return m, nil
	}
	m.cursor = i
	if m.snap.State != oddtile.StateActive {
		return m, nil
	}
	return m, m.pick(i)
}

// handleUpdate mirrors an engine update and keeps listening.
func (m Model) handleUpdate(u engine.Update) (tea.Model, tea.Cmd) {
	m.snap = u.Snapshot
	cmds := []tea.Cmd{waitForUpdate(m.sub)}

	switch u.Kind {
	case engine.UpdateStart:
		m.flashIndex = -1
		m.banner = ""

	case engine.UpdateClick:
		m.flashID++
		m.flashIndex = u.Click.Index
		m.flashOutcome = u.Click.Outcome
		cmds = append(cmds, flashTimeout(m.flashID))

		if u.Click.Milestone {
			m.bannerID++
			m.banner = fmt.Sprintf("★ %d found! Keep going", u.Click.Score)
			cmds = append(cmds, bannerTimeout(m.bannerID))
		}

	case engine.UpdateExpired:
		m.banner = ""
	}

	return m, tea.Batch(cmds...)
}

// pick sends a click to the engine. The outcome arrives as an update.
func (m Model) pick(i int) tea.Cmd {
	eng := m.engine
	return func() tea.Msg {
		eng.Click(i)
		return nil
	}
}

// newGame asks the engine for a fresh session.
func (m Model) newGame() tea.Cmd {
	eng := m.engine
	return func() tea.Msg {
		eng.NewGame()
		return nil
	}
}

// Snapshot returns the last snapshot the model received.
func (m Model) Snapshot() oddtile.Snapshot {
	return m.snap
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	width := m.width
	if width <= 0 {
		width = defaultWidth
	}
	line := lipgloss.NewStyle().MaxWidth(width)
	layout := computeLayout(m.width, m.height)

	var b strings.Builder
	b.WriteString(line.Render(renderHUD(m.snap)))
	b.WriteString("\n")
	b.WriteString(line.Render(centerText(m.renderBanner(), width)))
	b.WriteString("\n\n")
	b.WriteString(m.renderBoard(layout))
	b.WriteString("\n\n")
	b.WriteString(m.renderStatus())
	b.WriteString("\n")
	b.WriteString(line.Render(m.help.View(m.keys)))

	return b.String()
}

// Run starts the Bubble Tea program for eng, which must already be started.
func Run(eng *engine.Engine, width, height int) error {
	model := NewModel(eng, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Tile picking by mouse
	)

	_, err := p.Run()
	return err
}
