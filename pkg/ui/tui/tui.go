package tui

import (
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"cafecrawler/pkg/crawler"
	"cafecrawler/pkg/models"
)

// TUI is a full-screen monitor for one crawl. It implements crawler.Observer
// so it can be handed to the paginator and the coordinator directly.
type TUI struct {
	program *tea.Program
	model   *Model

	mu      sync.Mutex
	running bool
	pending []tea.Msg
}

var _ crawler.Observer = (*TUI)(nil)

// NewTUI creates a monitor for author's crawl of up to pageLimit pages
func NewTUI(author string, pageLimit int, opts ...tea.ProgramOption) *TUI {
	model := NewModel(author, pageLimit)
	if len(opts) == 0 {
		opts = []tea.ProgramOption{tea.WithAltScreen()}
	}

	return &TUI{
		program: tea.NewProgram(&model, opts...),
		model:   &model,
	}
}

// Start runs the TUI until the user quits
func (t *TUI) Start() error {
	go func() {
		// Send initial tick to start the spinner
		time.Sleep(100 * time.Millisecond)
		t.program.Send(TickMsg(time.Now()))

		t.mu.Lock()
		defer t.mu.Unlock()
		for _, msg := range t.pending {
			t.program.Send(msg)
		}
		t.pending = nil
		t.running = true
	}()

	_, err := t.program.Run()
	return err
}

// Stop stops the TUI gracefully
func (t *TUI) Stop() {
	t.program.Quit()
}

// Send sends a message to the TUI. Messages sent before Start are queued.
func (t *TUI) Send(msg tea.Msg) {
	if t.program == nil {
		return
	}

	t.mu.Lock()
	if !t.running {
		t.pending = append(t.pending, msg)
		t.mu.Unlock()
		return
	}
	t.mu.Unlock()
	t.program.Send(msg)
}

// Stats returns the counters shown by the monitor
func (t *TUI) Stats() Stats {
	return t.model.Stats()
}

func (t *TUI) StageChanged(from, to crawler.State) {
	t.Send(StageMsg{From: from, To: to})
}

func (t *TUI) PageFetched(page, entries int) {
	t.Send(PageMsg{Page: page, Entries: entries})
}

func (t *TUI) PostCollected(post *models.PostRecord) {
	t.Send(PostMsg{Item: PostItem{Title: post.Title, Date: post.Date, Comments: len(post.Comments)}})
}

func (t *TUI) EntrySkipped(url string, err error) {
	t.Send(SkipMsg{URL: url, Error: err})
}

// Log sends a log line to the monitor
func (t *TUI) Log(level, message string) {
	t.Send(LogMsg{Level: level, Message: message})
}
