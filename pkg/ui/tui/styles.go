package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Colors follow the cafe's own green on a dark terminal
var (
	cafeGreen = lipgloss.Color("#03C75A")
	mintGreen = lipgloss.Color("#8CE0A8")
	skyBlue   = lipgloss.Color("#6EC1E4")
	amber     = lipgloss.Color("#F5C451")
	coral     = lipgloss.Color("#F2855E")
	alertRed  = lipgloss.Color("#E5484D")
	slate     = lipgloss.Color("#A3ACB5")
	mutedGray = lipgloss.Color("#6B7280")
	inkBg     = lipgloss.Color("#111418")
	panelBg   = lipgloss.Color("#1A1F24")
)

var (
	baseStyle = lipgloss.NewStyle().Background(inkBg).Foreground(slate)

	logoStyle = lipgloss.NewStyle().
			Foreground(cafeGreen).
			Bold(true).
			Padding(1, 0).
			Align(lipgloss.Center)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(cafeGreen).
			Background(panelBg).
			Padding(1, 2)

	titleStyle = lipgloss.NewStyle().
			Background(cafeGreen).
			Foreground(inkBg).
			Bold(true).
			Padding(0, 1)

	statsLabelStyle = lipgloss.NewStyle().Foreground(skyBlue).Bold(true)
	statsValueStyle = lipgloss.NewStyle().Foreground(amber)

	successStyle = lipgloss.NewStyle().Foreground(mintGreen).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(alertRed).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(coral).Bold(true)

	postItemStyle = lipgloss.NewStyle().Foreground(mintGreen).PaddingLeft(1)

	logTimestampStyle = lipgloss.NewStyle().Foreground(mutedGray)
	logMessageStyle   = lipgloss.NewStyle().Foreground(slate)

	helpStyle = lipgloss.NewStyle().Foreground(mutedGray).Padding(1, 0, 0, 2)
)

// pageCounterStyle colors the page counter by how much of the page limit is scanned
func pageCounterStyle(fraction float64) lipgloss.Style {
	style := lipgloss.NewStyle().Background(inkBg)
	switch {
	case fraction >= 1:
		return style.Foreground(mintGreen)
	case fraction >= 0.5:
		return style.Foreground(amber)
	default:
		return style.Foreground(skyBlue)
	}
}
