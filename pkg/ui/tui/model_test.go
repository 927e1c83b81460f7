package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"cafecrawler/pkg/crawler"
)

func TestModelTracksCrawl(t *testing.T) {
	model := NewModel("writer01", 4)
	m := &model

	m.Update(StageMsg{From: crawler.StateIdle, To: crawler.StateCollecting})
	m.Update(PageMsg{Page: 1, Entries: 3})
	m.Update(PostMsg{Item: PostItem{Title: "one", Comments: 2}})
	m.Update(PostMsg{Item: PostItem{Title: "two", Comments: 1}})
	m.Update(SkipMsg{URL: "https://cafe.example/3", Error: errors.New("boom")})

	stats := m.Stats()
	if stats.Stage != crawler.StateCollecting {
		t.Errorf("Expected stage collecting, got %s", stats.Stage)
	}
	if stats.Page != 1 {
		t.Errorf("Expected page 1, got %d", stats.Page)
	}
	if stats.Posts != 2 || stats.Comments != 3 {
		t.Errorf("Expected 2 posts and 3 comments, got %d and %d", stats.Posts, stats.Comments)
	}
	if stats.Skipped != 1 {
		t.Errorf("Expected 1 skipped entry, got %d", stats.Skipped)
	}

	if got := m.pageProgress(); got != 0.25 {
		t.Errorf("Expected page progress 0.25, got %f", got)
	}
	m.Update(StageMsg{From: crawler.StateCollecting, To: crawler.StateExporting})
	if got := m.pageProgress(); got != 1 {
		t.Errorf("Expected full progress while exporting, got %f", got)
	}
}

func TestModelRecentPosts(t *testing.T) {
	model := NewModel("writer01", 4)
	for _, title := range []string{"a", "b", "c"} {
		model.AddPost(PostItem{Title: title})
	}

	recent := model.RecentPosts(2)
	if len(recent) != 2 || recent[0].Title != "b" || recent[1].Title != "c" {
		t.Errorf("Expected [b c], got %+v", recent)
	}
}

func TestModelLogLimit(t *testing.T) {
	model := NewModel("writer01", 4)
	for i := 0; i < 60; i++ {
		model.AddLogMessage("INFO", "line")
	}
	if len(model.logMessages) != 50 {
		t.Errorf("Expected 50 log messages, got %d", len(model.logMessages))
	}

	model.Update(tea.KeyMsg{Type: tea.KeyCtrlL})
	if len(model.logMessages) != 0 {
		t.Errorf("Expected logs to be cleared, got %d", len(model.logMessages))
	}
}

func TestModelQuitKey(t *testing.T) {
	model := NewModel("writer01", 4)

	_, cmd := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("Expected a quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("Expected tea.QuitMsg")
	}
}

func TestModelView(t *testing.T) {
	model := NewModel("writer01", 4)
	if got := model.View(); got != "Initializing..." {
		t.Errorf("Expected placeholder before the first resize, got %q", got)
	}

	model.Update(tea.WindowSizeMsg{Width: 140, Height: 50})
	model.Update(StageMsg{From: crawler.StateExporting, To: crawler.StateDone})
	model.Update(PostMsg{Item: PostItem{Title: "first post", Comments: 4}})

	view := model.View()
	for _, want := range []string{"writer01", "DONE", "first post", "Run finished"} {
		if !strings.Contains(view, want) {
			t.Errorf("Expected view to contain %q", want)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		seconds  int
		expected string
	}{
		{5, "00:05"},
		{125, "02:05"},
		{3725, "01:02:05"},
	}

	for _, test := range tests {
		result := formatDuration(time.Duration(test.seconds) * time.Second)
		if result != test.expected {
			t.Errorf("formatDuration(%ds) = %s, expected %s", test.seconds, result, test.expected)
		}
	}
}

func TestSendQueuesUntilStarted(t *testing.T) {
	monitor := NewTUI("writer01", 3, tea.WithoutRenderer())

	monitor.Log("INFO", "Login confirmed")
	monitor.PageFetched(1, 4)

	monitor.mu.Lock()
	queued := len(monitor.pending)
	monitor.mu.Unlock()
	if queued != 2 {
		t.Errorf("expected 2 queued messages before start, got %d", queued)
	}
}

func TestPageCounterStyleByFraction(t *testing.T) {
	tests := []struct {
		fraction float64
		want     lipgloss.TerminalColor
	}{
		{0, skyBlue},
		{0.49, skyBlue},
		{0.5, amber},
		{0.99, amber},
		{1, mintGreen},
	}
	for _, tt := range tests {
		if got := pageCounterStyle(tt.fraction).GetForeground(); got != tt.want {
			t.Errorf("pageCounterStyle(%v) foreground = %v, want %v", tt.fraction, got, tt.want)
		}
	}
}
