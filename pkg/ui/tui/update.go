package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"cafecrawler/pkg/crawler"
)

// StageMsg is sent when the run moves to another stage
type StageMsg struct {
	From crawler.State
	To   crawler.State
}

// PageMsg is sent when a listing page has been scanned
type PageMsg struct {
	Page    int
	Entries int
}

// PostMsg is sent when a post has been collected
type PostMsg struct {
	Item PostItem
}

// SkipMsg is sent when a listing entry is skipped
type SkipMsg struct {
	URL   string
	Error error
}

// LogMsg is sent to add a log message
type LogMsg struct {
	Level   string
	Message string
}

// TickMsg is sent periodically to update the UI
type TickMsg time.Time

// Update handles all messages and updates the model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case TickMsg:
		return m, tea.Batch(
			tickCmd(),
			m.spinner.Tick,
		)

	case StageMsg:
		m.SetStage(msg.To)
		switch msg.To {
		case crawler.StateDone:
			m.AddLogMessage("SUCCESS", "Run finished, press q to exit")
		case crawler.StateFailed:
			m.AddLogMessage("ERROR", "Run failed, press q to exit")
		default:
			m.AddLogMessage("INFO", "Stage: "+msg.To.String())
		}
		return m, nil

	case PageMsg:
		m.PageFetched(msg.Page)
		m.AddLogMessage("INFO", fmt.Sprintf("Page %d: %d entries", msg.Page, msg.Entries))
		return m, nil

	case PostMsg:
		m.AddPost(msg.Item)
		return m, nil

	case SkipMsg:
		m.SkipEntry(msg.URL, msg.Error)
		m.AddLogMessage("WARN", fmt.Sprintf("Skipped %s: %v", msg.URL, msg.Error))
		return m, nil

	case LogMsg:
		m.AddLogMessage(msg.Level, msg.Message)
		return m, nil
	}

	return m, nil
}

// handleKeyPress handles keyboard input
func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "Q", "ctrl+c":
		return m, tea.Quit

	case "?":
		m.showHelp = !m.showHelp
		return m, nil

	case "ctrl+l":
		m.mu.Lock()
		m.logMessages = []LogMessage{}
		m.mu.Unlock()
		return m, nil
	}

	return m, nil
}

// tickCmd returns a command that sends a tick message
func tickCmd() tea.Cmd {
	return tea.Tick(time.Millisecond*100, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
