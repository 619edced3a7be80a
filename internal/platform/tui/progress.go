package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/TheAppMakerPro/gyro-maze/internal/maze"
	"github.com/TheAppMakerPro/gyro-maze/internal/storage"
)

// Progress table layout constants
const (
	progressTableMinWidth = 50 // Minimum table width
)

// ProgressKeyMap defines the key bindings for the progress screen.
type ProgressKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Back key.Binding
	Quit key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ProgressKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ProgressKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Back, k.Quit},
	}
}

// DefaultProgressKeyMap returns default key bindings.
func DefaultProgressKeyMap() ProgressKeyMap {
	return ProgressKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b", "tab"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ProgressModel is the Bubble Tea model for the progress screen.
type ProgressModel struct {
	store     *storage.Store // May be nil when persistence is disabled
	progress  []storage.LevelProgress
	stats     storage.Stats
	table     table.Model
	help      help.Model
	keys      ProgressKeyMap
	width     int
	height    int
	quitting  bool
	goingBack bool
	wideTable bool // Whether the completion date column fits
}

// NewProgressModel creates a new progress model.
func NewProgressModel(store *storage.Store, width, height int) ProgressModel {
	keys := DefaultProgressKeyMap()
	h := help.New()
	h.ShowAll = false

	m := ProgressModel{
		store:  store,
		keys:   keys,
		help:   h,
		width:  width,
		height: height,
	}

	m.table = m.createTable()
	m.loadProgress()

	return m
}

// createTable creates a new table with appropriate columns.
func (m *ProgressModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Level", Width: 6},
		{Title: "Tier", Width: 10},
		{Title: "Best", Width: 9},
		{Title: "Stars", Width: 6},
		{Title: "Tries", Width: 6},
	}

	tableWidth := m.width - 4 // Margins
	m.wideTable = tableWidth > progressTableMinWidth
	if m.wideTable {
		columns = append(columns, table.Column{Title: "Completed", Width: 14})
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(m.height-9), // Leave room for header, stats, help, and margins
	)

	// Table styles
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

// loadProgress loads level results and summary stats from the store.
func (m *ProgressModel) loadProgress() {
	if m.store == nil {
		m.progress = nil
		m.stats = storage.Stats{}
		m.updateTableRows()
		return
	}

	progress, err := m.store.AllProgress()
	if err != nil {
		m.progress = nil
	} else {
		m.progress = progress
	}

	stats, err := m.store.GetStats()
	if err != nil || stats == nil {
		m.stats = storage.Stats{}
	} else {
		m.stats = *stats
	}

	m.updateTableRows()
}

// updateTableRows updates the table with current progress rows.
func (m *ProgressModel) updateTableRows() {
	rows := make([]table.Row, len(m.progress))
	for i, p := range m.progress {
		best := "—"
		stars := "—"
		completed := "—"
		if p.Completed {
			best = fmt.Sprintf("%.2fs", float64(p.BestTimeMs)/1000)
			stars = strings.Repeat("★", p.Stars)
			completed = p.CompletedAt.Format("Jan 02 15:04")
		}

		row := table.Row{
			fmt.Sprintf("%d", p.Level),
			maze.TierFor(p.Level).Name,
			best,
			stars,
			fmt.Sprintf("%d", p.Attempts),
		}
		if m.wideTable {
			row = append(row, completed)
		}
		rows[i] = row
	}
	m.table.SetRows(rows)

	// Reset cursor to top
	m.table.GotoTop()
}

// Init initializes the progress model.
func (m ProgressModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the progress screen.
func (m ProgressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			// Pass to table for scrolling
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	// Pass other messages to table
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the progress screen.
func (m ProgressModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	// Title
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)

	b.WriteString(titleStyle.Render(centerText("LEVEL PROGRESS", m.width)))
	b.WriteString("\n\n")

	// Table
	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	b.WriteString(centerText(tableStyle.Render(m.renderTableContent()), m.width))
	b.WriteString("\n")

	// Stats footer
	statsStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("245"))
	statsLine := fmt.Sprintf("Completed %d · Stars %d · Attempts %d · Highest level %d",
		m.stats.LevelsCompleted, m.stats.TotalStars, m.stats.TotalAttempts, m.stats.HighestLevel)
	b.WriteString(statsStyle.Render(centerText(statsLine, m.width)))
	b.WriteString("\n\n")

	// Help bar
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderTableContent renders the table or empty message.
func (m ProgressModel) renderTableContent() string {
	if len(m.progress) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		return emptyStyle.Render("No attempts recorded yet.\nPlay a level to start your record!")
	}

	return m.table.View()
}

// IsGoingBack returns true if user wants to go back to the level picker.
func (m ProgressModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ProgressModel) IsQuitting() bool {
	return m.quitting
}

// RunProgress runs the progress screen.
// Returns true if user wants to go back to the picker, false if quitting.
func RunProgress(store *storage.Store, width, height int) (goBack bool, err error) {
	model := NewProgressModel(store, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(ProgressModel)
	if !ok {
		return false, nil
	}

	return m.IsGoingBack(), nil
}
