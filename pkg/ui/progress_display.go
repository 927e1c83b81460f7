package ui

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"cafecrawler/pkg/crawler"
	"cafecrawler/pkg/models"
)

// ProgressDisplay prints a single progress line while a run collects posts.
// In verbose mode every page, post and skip gets its own line instead.
type ProgressDisplay struct {
	mu        sync.Mutex
	out       io.Writer
	author    string
	pageLimit int
	page      int
	posts     int
	comments  int
	skipped   int
	stage     crawler.State
	startTime time.Time
	verbose   bool
}

var _ crawler.Observer = (*ProgressDisplay)(nil)

// NewProgressDisplay creates a progress display for one author crawl
func NewProgressDisplay(out io.Writer, author string, pageLimit int, verbose bool) *ProgressDisplay {
	return &ProgressDisplay{
		out:       out,
		author:    author,
		pageLimit: pageLimit,
		startTime: time.Now(),
		verbose:   verbose,
	}
}

func (p *ProgressDisplay) StageChanged(_, to crawler.State) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.stage = to
	switch {
	case p.verbose:
		fmt.Fprintf(p.out, "%s %s\n", Magenta("→"), strings.ToUpper(to.String()))
	case to.Terminal():
		p.printProgress()
		fmt.Fprintln(p.out)
	default:
		p.printProgress()
	}
}

func (p *ProgressDisplay) PageFetched(page, entries int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.page = page
	if p.verbose {
		fmt.Fprintf(p.out, "%s Page %d: %d entries\n", Magenta("→"), page, entries)
		return
	}
	p.printProgress()
}

func (p *ProgressDisplay) PostCollected(post *models.PostRecord) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.posts++
	p.comments += len(post.Comments)
	if p.verbose {
		fmt.Fprintf(p.out, "%s %s %s\n", Green("✓"), truncate(post.Title, 50),
			Dim(fmt.Sprintf("• %s • %d comments", post.Date, len(post.Comments))))
		return
	}
	p.printProgress()
}

func (p *ProgressDisplay) EntrySkipped(url string, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.skipped++
	if p.verbose {
		fmt.Fprintf(p.out, "%s Skipped %s - %v\n", Red("✗"), url, err)
		return
	}
	p.printProgress()
}

// Counts returns the posts, comments and skips seen so far
func (p *ProgressDisplay) Counts() (posts, comments, skipped int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.posts, p.comments, p.skipped
}

func (p *ProgressDisplay) printProgress() {
	line := fmt.Sprintf("%s [%s] page %d/%d • %d posts • %d comments • %s • %s",
		Cyan(p.author),
		progressBar(p.page, p.pageLimit, 20),
		p.page,
		p.pageLimit,
		p.posts,
		p.comments,
		p.stage.String(),
		formatDuration(time.Since(p.startTime)),
	)
	if p.skipped > 0 {
		line += fmt.Sprintf(" • %s", Red(fmt.Sprintf("%d skipped", p.skipped)))
	}

	fmt.Fprintf(p.out, "\r%s\r%s", strings.Repeat(" ", 120), line)
}
