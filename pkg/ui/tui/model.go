package tui

import (
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"cafecrawler/pkg/crawler"
)

// PostItem is one collected post as shown in the monitor
type PostItem struct {
	Title    string
	Date     string
	Comments int
}

// SkippedItem is one listing entry that could not be collected
type SkippedItem struct {
	URL   string
	Error error
}

// Stats is a snapshot of the counters the monitor shows
type Stats struct {
	Stage    crawler.State
	Page     int
	Posts    int
	Comments int
	Skipped  int
}

// Model represents the TUI model
type Model struct {
	// UI components
	spinner  spinner.Model
	pageBar  progress.Model
	maxShown int

	// Crawl state
	author    string
	pageLimit int
	page      int
	stage     crawler.State
	posts     []PostItem
	skipped   []SkippedItem
	comments  int
	startTime time.Time
	endTime   time.Time

	// UI state
	width          int
	height         int
	showHelp       bool
	logMessages    []LogMessage
	maxLogMessages int

	mu sync.RWMutex
}

// LogMessage represents a log entry
type LogMessage struct {
	Time    time.Time
	Level   string
	Message string
	Color   lipgloss.Color
}

// NewModel creates a monitor for one author crawl
func NewModel(author string, pageLimit int) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(cafeGreen)

	bar := progress.New(progress.WithDefaultGradient())
	bar.Width = 40

	return Model{
		spinner:        s,
		pageBar:        bar,
		maxShown:       8,
		author:         author,
		pageLimit:      pageLimit,
		startTime:      time.Now(),
		logMessages:    []LogMessage{},
		maxLogMessages: 50,
	}
}

// Init initializes the model
func (m *Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// SetStage records a stage transition
func (m *Model) SetStage(to crawler.State) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.stage = to
	if to.Terminal() {
		m.endTime = time.Now()
	}
}

// PageFetched records a scanned listing page
func (m *Model) PageFetched(page int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.page = page
}

// AddPost records a collected post
func (m *Model) AddPost(item PostItem) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.posts = append(m.posts, item)
	m.comments += item.Comments
}

// SkipEntry records a listing entry that was skipped
func (m *Model) SkipEntry(url string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.skipped = append(m.skipped, SkippedItem{URL: url, Error: err})
}

// AddLogMessage adds a log message
func (m *Model) AddLogMessage(level, message string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	color := slate
	switch level {
	case "ERROR":
		color = alertRed
	case "WARN":
		color = coral
	case "SUCCESS":
		color = mintGreen
	case "INFO":
		color = skyBlue
	}

	m.logMessages = append(m.logMessages, LogMessage{
		Time:    time.Now(),
		Level:   level,
		Message: message,
		Color:   color,
	})

	// Keep only the last N messages
	if len(m.logMessages) > m.maxLogMessages {
		m.logMessages = m.logMessages[len(m.logMessages)-m.maxLogMessages:]
	}
}

// Stats returns the current counters
func (m *Model) Stats() Stats {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return Stats{
		Stage:    m.stage,
		Page:     m.page,
		Posts:    len(m.posts),
		Comments: m.comments,
		Skipped:  len(m.skipped),
	}
}

// RecentPosts returns up to n of the latest posts, oldest first
func (m *Model) RecentPosts(n int) []PostItem {
	m.mu.RLock()
	defer m.mu.RUnlock()

	start := len(m.posts) - n
	if start < 0 {
		start = 0
	}
	out := make([]PostItem, len(m.posts)-start)
	copy(out, m.posts[start:])
	return out
}

// pageProgress returns the fraction of the page limit scanned so far
func (m *Model) pageProgress() float64 {
	if m.pageLimit <= 0 {
		return 0
	}
	if m.stage == crawler.StateExporting || m.stage == crawler.StateDone {
		return 1
	}
	p := float64(m.page) / float64(m.pageLimit)
	if p > 1 {
		p = 1
	}
	return p
}

// elapsed returns the run time so far, frozen once the run ends
func (m *Model) elapsed() time.Duration {
	if !m.endTime.IsZero() {
		return m.endTime.Sub(m.startTime)
	}
	return time.Since(m.startTime)
}
