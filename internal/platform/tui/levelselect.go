package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/TheAppMakerPro/gyro-maze/internal/game"
	"github.com/TheAppMakerPro/gyro-maze/internal/maze"
)

// Progression is what the level picker needs from the persistence
// layer: completion gating and best results. A nil Progression unlocks
// everything, for store-less runs.
type Progression interface {
	Best(level int) (game.BestEntry, bool)
	MaxUnlocked() int
}

// SelectResult holds the outcome of the level picker.
type SelectResult struct {
	Level        int // 0 when nothing was chosen
	ShowProgress bool
	Quit         bool
}

// LevelSelectModel is the Bubble Tea model for the level picker.
type LevelSelectModel struct {
	prog     Progression // may be nil
	maxLevel int
	cursor   int // 1-based level number
	width    int
	height   int
	theme    Theme
	flash    string

	selected     int
	showProgress bool
	quitting     bool
}

// NewLevelSelectModel creates a picker positioned on the frontier
// level: the first one not yet completed.
func NewLevelSelectModel(prog Progression, maxLevel, width, height int) LevelSelectModel {
	cursor := 1
	if prog != nil {
		cursor = min(prog.MaxUnlocked(), maxLevel)
	}
	return LevelSelectModel{
		prog:     prog,
		maxLevel: maxLevel,
		cursor:   cursor,
		width:    width,
		height:   height,
		theme:    GetTheme(),
	}
}

func (m LevelSelectModel) unlocked(level int) bool {
	if m.prog == nil {
		return true
	}
	return level <= m.prog.MaxUnlocked()
}

// Init initializes the picker.
func (m LevelSelectModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the picker.
func (m LevelSelectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}
	return m, nil
}

func (m LevelSelectModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.flash = ""

	switch msg.String() {
	case "ctrl+c", "q", "esc":
		m.quitting = true
		return m, tea.Quit

	case "up", "k", "w":
		m.cursor = max(1, m.cursor-1)
	case "down", "j", "s":
		m.cursor = min(m.maxLevel, m.cursor+1)
	case "left", "h":
		m.cursor = max(1, m.cursor-10)
	case "right", "l":
		m.cursor = min(m.maxLevel, m.cursor+10)
	case "pgup":
		m.cursor = max(1, m.cursor-m.visibleRows())
	case "pgdown":
		m.cursor = min(m.maxLevel, m.cursor+m.visibleRows())

	case "enter", " ":
		if !m.unlocked(m.cursor) {
			m.flash = "complete the previous level first"
			return m, nil
		}
		m.selected = m.cursor
		return m, tea.Quit

	case "tab":
		m.showProgress = true
		return m, tea.Quit
	}

	return m, nil
}

func (m LevelSelectModel) visibleRows() int {
	return max(5, m.height-8)
}

// View renders the picker.
func (m LevelSelectModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(m.theme.MenuTitle.Render(centerText("G Y R O  M A Z E", m.width)))
	b.WriteString("\n\n")
	b.WriteString(m.theme.MenuDescription.Render(centerText("Select a level", m.width)))
	b.WriteString("\n\n")

	visible := m.visibleRows()
	start := m.cursor - visible/2
	start = max(1, min(start, m.maxLevel-visible+1))
	end := min(m.maxLevel, start+visible-1)

	for level := start; level <= end; level++ {
		cursor := "  "
		style := m.theme.MenuItemNormal
		if level == m.cursor {
			cursor = "> "
			style = m.theme.MenuItemActive
		}
		if !m.unlocked(level) {
			style = m.theme.MenuItemLocked
		}

		line := fmt.Sprintf("%sLevel %3d · %-9s %s", cursor, level, maze.TierFor(level).Name, m.describe(level))
		// Center the plain text before styling so the escape codes
		// don't skew the padding math.
		b.WriteString(style.Render(centerText(line, m.width)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.flash != "" {
		b.WriteString(m.theme.Notice.Render(centerText(m.flash, m.width)))
		b.WriteString("\n")
	}
	controls := "Up/Down: Navigate  |  Left/Right: Jump 10  |  Enter: Play  |  Tab: Progress  |  Q: Quit"
	b.WriteString(centerText(controls, m.width))
	b.WriteString("\n")

	return b.String()
}

// describe renders the best result or the lock marker for one level.
func (m LevelSelectModel) describe(level int) string {
	if !m.unlocked(level) {
		return "locked"
	}
	if m.prog == nil {
		return ""
	}
	best, ok := m.prog.Best(level)
	if !ok {
		return "unplayed"
	}
	return fmt.Sprintf("%-3s %.2fs", strings.Repeat("★", best.Stars), float64(best.TimeMs)/1000)
}

// Selected returns the chosen level, 0 when none.
func (m LevelSelectModel) Selected() int { return m.selected }

// WantsProgress reports whether the progress screen was requested.
func (m LevelSelectModel) WantsProgress() bool { return m.showProgress }

// IsQuitting reports whether the player quit the picker.
func (m LevelSelectModel) IsQuitting() bool { return m.quitting }

// RunLevelSelect runs the picker as its own program.
func RunLevelSelect(prog Progression, maxLevel, width, height int) (SelectResult, error) {
	model := NewLevelSelectModel(prog, maxLevel, width, height)

	p := tea.NewProgram(model, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return SelectResult{Quit: true}, err
	}

	m, ok := final.(LevelSelectModel)
	if !ok {
		return SelectResult{Quit: true}, nil
	}
	if m.WantsProgress() {
		return SelectResult{ShowProgress: true}, nil
	}
	if m.Selected() > 0 {
		return SelectResult{Level: m.Selected()}, nil
	}
	return SelectResult{Quit: true}, nil
}
