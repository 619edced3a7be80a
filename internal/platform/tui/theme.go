package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/TheAppMakerPro/gyro-maze/internal/core"
)

// Theme bundles the board cell colors and the chrome styles around the
// board. Board elements carry core.Color tags so the same drawing code
// serves every theme; chrome text is styled with lipgloss directly.
type Theme struct {
	// Board cell colors
	Wall     core.Color
	Mover    core.Color
	Hole     core.Color
	Coin     core.Color
	Life     core.Color
	Pad      core.Color
	Goal     core.Color
	Ball     core.Color
	Trail    core.Color
	ZoneFast core.Color
	ZoneSlow core.Color
	Overlay  core.Color

	// HUD styles
	HUDTitle lipgloss.Style
	HUDValue lipgloss.Style
	HUDDim   lipgloss.Style
	Notice   lipgloss.Style

	// Menu and list styles
	MenuTitle       lipgloss.Style
	MenuItemNormal  lipgloss.Style
	MenuItemActive  lipgloss.Style
	MenuItemLocked  lipgloss.Style
	MenuDescription lipgloss.Style
}

// DefaultTheme returns the stock look.
func DefaultTheme() Theme {
	return Theme{
		Wall:     core.ColorGray,
		Mover:    core.ColorBrightWhite,
		Hole:     core.ColorBrightRed,
		Coin:     core.ColorBrightYellow,
		Life:     core.ColorBrightRed,
		Pad:      core.ColorOrange,
		Goal:     core.ColorBrightGreen,
		Ball:     core.ColorBrightCyan,
		Trail:    core.ColorGray,
		ZoneFast: core.ColorOrange,
		ZoneSlow: core.ColorBlue,
		Overlay:  core.ColorBrightYellow,

		HUDTitle: lipgloss.NewStyle().Foreground(lipgloss.Color("51")).Bold(true),
		HUDValue: lipgloss.NewStyle().Foreground(lipgloss.Color("255")),
		HUDDim:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Notice:   lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),

		MenuTitle:       lipgloss.NewStyle().Foreground(lipgloss.Color("51")).Bold(true),
		MenuItemNormal:  lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		MenuItemActive:  lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		MenuItemLocked:  lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		MenuDescription: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	}
}

// MonochromeTheme returns a grayscale look for limited terminals.
func MonochromeTheme() Theme {
	theme := DefaultTheme()
	theme.Wall = core.ColorWhite
	theme.Mover = core.ColorBrightWhite
	theme.Hole = core.ColorGray
	theme.Coin = core.ColorBrightWhite
	theme.Life = core.ColorWhite
	theme.Pad = core.ColorWhite
	theme.Goal = core.ColorBrightWhite
	theme.Ball = core.ColorBrightWhite
	theme.Trail = core.ColorGray
	theme.ZoneFast = core.ColorGray
	theme.ZoneSlow = core.ColorGray
	return theme
}

// Global theme variable (can be changed at runtime)
var activeTheme = DefaultTheme()

// SetTheme sets the global theme.
func SetTheme(theme Theme) {
	activeTheme = theme
}

// GetTheme returns the current global theme.
func GetTheme() Theme {
	return activeTheme
}
