package models

import (
	"errors"
	"time"
)

// Sentinel values used when a field cannot be determined
const (
	UnknownTitle    = "Unknown"
	UnknownDate     = "Unknown"
	AnonymousAuthor = "Anonymous"
)

// PostRecord is one post written by the target author
type PostRecord struct {
	URL       string          `json:"url"`
	Title     string          `json:"title"`
	Author    string          `json:"author"`
	Date      string          `json:"date"`
	Content   string          `json:"content"`
	Images    []string        `json:"images"`
	ViewCount int             `json:"view_count"`
	Comments  []CommentRecord `json:"comments,omitempty"`
}

// CommentRecord is one entry of a flat comment thread
type CommentRecord struct {
	Author  string `json:"author"`
	Date    string `json:"date"`
	Content string `json:"content"`
}

// RawEntry is a reference to a post as found on a listing page
type RawEntry struct {
	URL   string `json:"url"`
	Title string `json:"title"`
	Date  string `json:"date"`
}

// RunConfig is the immutable input of one crawl run
type RunConfig struct {
	Community         string
	Author            string
	AuthorDisplayName string
	PageLimit         int
	RecencyDays       int
	IncludeComments   bool
	OutputDir         string
}

// Validate checks the run invariants
func (c RunConfig) Validate() error {
	var errs []error
	if c.Community == "" {
		errs = append(errs, errors.New("community id is required"))
	}
	if c.Author == "" {
		errs = append(errs, errors.New("author id is required"))
	}
	if c.PageLimit < 1 {
		errs = append(errs, errors.New("page limit must be at least 1"))
	}
	if c.RecencyDays < 0 {
		errs = append(errs, errors.New("recency window cannot be negative"))
	}
	if c.OutputDir == "" {
		errs = append(errs, errors.New("output directory is required"))
	}
	return errors.Join(errs...)
}

// Cutoff returns the oldest publication time still eligible at now
func (c RunConfig) Cutoff(now time.Time) time.Time {
	return now.AddDate(0, 0, -c.RecencyDays)
}

// DisplayName returns the author name used in exported documents
func (c RunConfig) DisplayName() string {
	if c.AuthorDisplayName != "" {
		return c.AuthorDisplayName
	}
	return c.Author
}

// RunStats summarizes one run
type RunStats struct {
	RunID        string    `json:"run_id"`
	Posts        int       `json:"posts"`
	Comments     int       `json:"comments"`
	Images       int       `json:"images"`
	Views        int       `json:"views"`
	PagesScanned int       `json:"pages_scanned"`
	Skipped      int       `json:"skipped"`
	Exported     int       `json:"exported"`
	ExportFailed int       `json:"export_failed"`
	Truncated    bool      `json:"truncated"`
	StartTime    time.Time `json:"start_time"`
	EndTime      time.Time `json:"end_time"`
}

// Duration returns the wall time of the run, or zero while it is still running
func (s RunStats) Duration() time.Duration {
	if s.EndTime.IsZero() {
		return 0
	}
	return s.EndTime.Sub(s.StartTime)
}

// Tally recomputes the corpus totals from the collected posts
func (s *RunStats) Tally(posts []*PostRecord) {
	s.Posts, s.Comments, s.Images, s.Views = 0, 0, 0, 0
	for _, p := range posts {
		if p == nil {
			continue
		}
		s.Posts++
		s.Comments += len(p.Comments)
		s.Images += len(p.Images)
		s.Views += p.ViewCount
	}
}
