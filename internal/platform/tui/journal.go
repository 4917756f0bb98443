package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/oddtile/internal/storage"
)

// JournalKeyMap defines the key bindings for the journal screen.
type JournalKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Quit key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k JournalKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k JournalKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down, k.Quit}}
}

// DefaultJournalKeyMap returns default key bindings.
func DefaultJournalKeyMap() JournalKeyMap {
	return JournalKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// JournalModel shows hit rates per delta band from the perception journal.
type JournalModel struct {
	buckets   []storage.DeltaBucket
	threshold *storage.DeltaBucket
	loadErr   error
	table     table.Model
	help      help.Model
	keys      JournalKeyMap
	width     int
	height    int
	quitting  bool
}

// NewJournalModel loads the journal and builds the table.
// A nil store shows an empty journal.
func NewJournalModel(store *storage.Store, width, height int) JournalModel {
	m := JournalModel{
		keys:   DefaultJournalKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}

	if store != nil {
		m.buckets, m.loadErr = store.DeltaBuckets(storage.DefaultBandWidth)
	}
	if b, ok := storage.FindThreshold(m.buckets, storage.DefaultMinSamples, storage.DefaultHitRate); ok {
		m.threshold = &b
	}

	m.table = m.createTable()
	m.updateTableRows()
	return m
}

// createTable creates a new table sized to the screen.
func (m *JournalModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Delta", Width: 12},
		{Title: "Rounds", Width: 8},
		{Title: "Hit rate", Width: 10},
		{Title: "Avg time", Width: 10},
		{Title: "", Width: 20},
	}

	height := m.height - 10
	if height < 3 {
		height = 3
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// updateTableRows fills the table from the loaded buckets.
func (m *JournalModel) updateTableRows() {
	rows := make([]table.Row, len(m.buckets))
	for i, b := range m.buckets {
		rows[i] = table.Row{
			fmt.Sprintf("%4.1f-%4.1f", b.Low, b.High),
			fmt.Sprintf("%d", b.Total()),
			fmt.Sprintf("%.0f%%", b.HitRate()*100),
			fmt.Sprintf("%.2fs", b.AvgReactionMS/1000),
			rateBar(b.HitRate(), 20),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// rateBar renders a hit rate as a bar of width cells.
func rateBar(rate float64, width int) string {
	filled := int(rate*float64(width) + 0.5)
	filled = max(0, min(width, filled))
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// Init initializes the journal model.
func (m JournalModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the journal.
func (m JournalModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			m.quitting = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the journal.
func (m JournalModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.MarginBottom(1).Render(centerText("PERCEPTION JOURNAL", m.width)))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(tableStyle.Render(m.renderTableContent()))
	b.WriteString("\n")

	b.WriteString(m.thresholdLine())
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderTableContent renders the table or an empty message.
func (m JournalModel) renderTableContent() string {
	if m.loadErr != nil {
		return missStyle.Render(fmt.Sprintf("Could not read the journal: %v", m.loadErr))
	}
	if len(m.buckets) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		return emptyStyle.Render("No rounds recorded yet.\nPlay a session to start the journal!")
	}
	return m.table.View()
}

// thresholdLine describes the smallest delta the player reliably spots.
func (m JournalModel) thresholdLine() string {
	if m.threshold == nil {
		return dimStyle.Render(fmt.Sprintf("Threshold: not enough data (needs %d rounds at %.0f%% hits in one band)",
			storage.DefaultMinSamples, storage.DefaultHitRate*100))
	}
	return hudStyle.Render(fmt.Sprintf("Threshold: you spot a %.1f-%.1f%% lightness shift %.0f%% of the time",
		m.threshold.Low, m.threshold.High, m.threshold.HitRate()*100))
}

// RunJournal runs the journal screen.
func RunJournal(store *storage.Store, width, height int) error {
	model := NewJournalModel(store, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
