package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"cafecrawler/pkg/crawler"
)

// View renders the entire TUI
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	var sections []string
	sections = append(sections, m.renderLogo())

	mainContent := lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.renderLeftColumn(),
		"  ",
		m.renderRightColumn(),
	)
	sections = append(sections, mainContent)

	if m.showHelp {
		sections = append(sections, m.renderHelp())
	} else {
		sections = append(sections, helpStyle.Render("Press ? for help"))
	}

	return baseStyle.Width(m.width).Height(m.height).Render(
		lipgloss.JoinVertical(lipgloss.Left, sections...),
	)
}

func (m *Model) renderLogo() string {
	logo := `
╔════════════════════════════════════════════════╗
║   C A F E   C R A W L E R                      ║
║   author archive - naver cafe to markdown      ║
╚════════════════════════════════════════════════╝`

	return logoStyle.Width(m.width).Render(logo)
}

func (m *Model) renderLeftColumn() string {
	width := (m.width - 4) / 2

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderStatsPanel(width),
		m.renderPostsPanel(width),
	)
}

func (m *Model) renderRightColumn() string {
	width := (m.width - 4) / 2

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderPagesPanel(width),
		m.renderLogsPanel(width),
	)
}

func (m *Model) renderStatsPanel(width int) string {
	stats := m.Stats()

	m.mu.RLock()
	elapsed := m.elapsed()
	author := m.author
	m.mu.RUnlock()

	title := titleStyle.Render(" CRAWL STATS ")

	stage := stageStyle(stats.Stage).Render(strings.ToUpper(stats.Stage.String()))
	if !stats.Stage.Terminal() {
		stage = m.spinner.View() + " " + stage
	}

	lines := []string{
		fmt.Sprintf("%s %s", statsLabelStyle.Render("Author:"), statsValueStyle.Render(author)),
		fmt.Sprintf("%s %s", statsLabelStyle.Render("Stage:"), stage),
		fmt.Sprintf("%s %s", statsLabelStyle.Render("Elapsed:"), statsValueStyle.Render(formatDuration(elapsed))),
		fmt.Sprintf("%s %s", statsLabelStyle.Render("Posts:"), statsValueStyle.Render(fmt.Sprintf("%d", stats.Posts))),
		fmt.Sprintf("%s %s", statsLabelStyle.Render("Comments:"), statsValueStyle.Render(fmt.Sprintf("%d", stats.Comments))),
	}
	if stats.Skipped > 0 {
		lines = append(lines, warningStyle.Render(fmt.Sprintf("⚠  %d entries skipped", stats.Skipped)))
	}

	return panelStyle.Width(width).Render(
		lipgloss.JoinVertical(lipgloss.Left, title, lipgloss.JoinVertical(lipgloss.Left, lines...)),
	)
}

func (m *Model) renderPostsPanel(width int) string {
	title := titleStyle.Render(" COLLECTED POSTS ")

	recent := m.RecentPosts(m.maxShown)
	if len(recent) == 0 {
		content := lipgloss.NewStyle().Foreground(slate).Render("No posts yet")
		return panelStyle.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left, title, content))
	}

	maxTitle := width - 20
	if maxTitle < 10 {
		maxTitle = 10
	}

	items := make([]string, 0, len(recent))
	for _, p := range recent {
		items = append(items, fmt.Sprintf("%s %s",
			postItemStyle.Render("✓ "+truncate(p.Title, maxTitle)),
			lipgloss.NewStyle().Foreground(slate).Render(fmt.Sprintf("💬 %d", p.Comments)),
		))
	}

	return panelStyle.Width(width).Render(
		lipgloss.JoinVertical(lipgloss.Left, title, lipgloss.JoinVertical(lipgloss.Left, items...)),
	)
}

func (m *Model) renderPagesPanel(width int) string {
	m.mu.RLock()
	page, limit := m.page, m.pageLimit
	fraction := m.pageProgress()
	m.mu.RUnlock()

	title := titleStyle.Render(" LISTING PAGES ")

	bar := m.pageBar
	bar.Width = width - 8

	content := []string{
		fmt.Sprintf("%s %s", statsLabelStyle.Render("Scanned:"),
			pageCounterStyle(fraction).Render(fmt.Sprintf("%d/%d", page, limit))),
		bar.ViewAs(fraction),
	}

	return panelStyle.Width(width).Render(
		lipgloss.JoinVertical(lipgloss.Left, title, strings.Join(content, "\n")),
	)
}

func (m *Model) renderLogsPanel(width int) string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	title := titleStyle.Render(" LOG ")

	start := len(m.logMessages) - 10
	if start < 0 {
		start = 0
	}

	maxMsgLen := width - 25
	if maxMsgLen < 10 {
		maxMsgLen = 10
	}

	var logs []string
	for _, entry := range m.logMessages[start:] {
		timestamp := logTimestampStyle.Render(entry.Time.Format("15:04:05"))
		level := lipgloss.NewStyle().Foreground(entry.Color).Bold(true).Render(fmt.Sprintf("[%-7s]", entry.Level))
		message := logMessageStyle.Render(truncate(entry.Message, maxMsgLen))
		logs = append(logs, fmt.Sprintf("%s %s %s", timestamp, level, message))
	}

	content := strings.Join(logs, "\n")
	if content == "" {
		content = lipgloss.NewStyle().Foreground(slate).Render("No logs yet...")
	}

	logsHeight := m.height - 30
	if logsHeight < 5 {
		logsHeight = 5
	}

	return panelStyle.Width(width).Height(logsHeight).Render(
		lipgloss.JoinVertical(lipgloss.Left, title, content),
	)
}

func (m *Model) renderHelp() string {
	help := `
  Keys:
    q/Q      - Quit the monitor
    ctrl+l   - Clear the log panel
    ?        - Toggle this help

  Stages:
    ` + statsValueStyle.Render("AUTHENTICATING") + ` - checking the login cookies
    ` + statsValueStyle.Render("COLLECTING") + `     - walking the author's listing
    ` + statsValueStyle.Render("EXPORTING") + `      - writing markdown files
    ` + successStyle.Render("DONE") + ` / ` + errorStyle.Render("FAILED") + `
`

	return panelStyle.Width(m.width).Render(help)
}

func stageStyle(s crawler.State) lipgloss.Style {
	switch s {
	case crawler.StateDone:
		return successStyle
	case crawler.StateFailed:
		return errorStyle
	default:
		return warningStyle
	}
}

// formatDuration formats a duration as a clock
func formatDuration(d time.Duration) string {
	if d < 0 {
		return "00:00"
	}

	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60

	if h > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
