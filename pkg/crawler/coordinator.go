package crawler

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"cafecrawler/pkg/checkpoint"
	errs "cafecrawler/pkg/errors"
	"cafecrawler/pkg/logger"
	"cafecrawler/pkg/models"
)

// State is a stage of a run
type State int

const (
	StateIdle State = iota
	StateAuthenticating
	StateCollecting
	StateExporting
	StateDone
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAuthenticating:
		return "authenticating"
	case StateCollecting:
		return "collecting"
	case StateExporting:
		return "exporting"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Terminal reports whether no further transition can happen
func (s State) Terminal() bool {
	return s == StateDone || s == StateFailed
}

// Coordinator sequences authenticate, collect and export for one run
type Coordinator struct {
	auth      Authenticator
	collector Collector
	exporter  Exporter
	logger    logger.Logger
	observer  Observer
	now       func() time.Time

	checkpoints CheckpointStore
	resume      bool

	journal       *logger.Journal
	logExportPath string

	state State
	stats models.RunStats
}

// CoordinatorOption configures a Coordinator
type CoordinatorOption func(*Coordinator)

// WithCheckpoints saves partial runs to store. With resume set, a stored
// checkpoint seeds the collection.
func WithCheckpoints(store CheckpointStore, resume bool) CoordinatorOption {
	return func(c *Coordinator) {
		c.checkpoints = store
		c.resume = resume
	}
}

// WithLogExport writes the journal as JSON to path when the run ends
func WithLogExport(journal *logger.Journal, path string) CoordinatorOption {
	return func(c *Coordinator) {
		c.journal = journal
		c.logExportPath = path
	}
}

// WithStageObserver reports stage changes to o
func WithStageObserver(o Observer) CoordinatorOption {
	return func(c *Coordinator) {
		c.observer = orNopObserver(o)
	}
}

// WithRunClock overrides the clock used for run timestamps
func WithRunClock(now func() time.Time) CoordinatorOption {
	return func(c *Coordinator) {
		c.now = now
	}
}

// NewCoordinator creates a coordinator over its three collaborators
func NewCoordinator(auth Authenticator, collector Collector, exporter Exporter, log logger.Logger, opts ...CoordinatorOption) *Coordinator {
	c := &Coordinator{
		auth:      auth,
		collector: collector,
		exporter:  exporter,
		logger:    logger.OrNop(log),
		observer:  nopObserver{},
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns the current stage
func (c *Coordinator) State() State {
	return c.state
}

// Stats returns the statistics of the last run
func (c *Coordinator) Stats() models.RunStats {
	return c.stats
}

// Run executes one crawl and reports whether it succeeded. Failures of any
// stage, including panics, are logged and turned into false. The session is
// closed on every path.
func (c *Coordinator) Run(ctx context.Context, cfg models.RunConfig) (ok bool) {
	c.state = StateIdle
	c.stats = models.RunStats{RunID: uuid.New().String(), StartTime: c.now()}
	log := c.logger.WithField("run_id", c.stats.RunID)

	var session Session
	defer func() {
		if r := recover(); r != nil {
			ok = c.fail(log, errs.New(errs.KindFatal, "run", fmt.Sprint(r)))
		}
		if session != nil {
			if err := session.Close(); err != nil {
				log.WarnWithFields("Failed to close session", map[string]interface{}{
					"error": err.Error(),
				})
			}
		}
		c.stats.EndTime = c.now()

		log.InfoWithFields("Run finished", map[string]interface{}{
			"state":    c.state.String(),
			"posts":    c.stats.Posts,
			"comments": c.stats.Comments,
			"exported": c.stats.Exported,
			"duration": c.stats.Duration().String(),
		})
		c.exportLogs(log)
	}()

	if err := cfg.Validate(); err != nil {
		return c.fail(log, errs.Wrap(errs.KindConfig, "run", err))
	}

	log.InfoWithFields("Run started", map[string]interface{}{
		"community":  cfg.Community,
		"author":     cfg.Author,
		"page_limit": cfg.PageLimit,
		"days":       cfg.RecencyDays,
		"comments":   cfg.IncludeComments,
	})

	c.transition(log, StateAuthenticating)
	s, err := c.auth.Authenticate(ctx)
	if err != nil {
		return c.fail(log, errs.Wrap(errs.KindAuth, "authenticate", err))
	}
	if s == nil {
		return c.fail(log, errs.New(errs.KindAuth, "authenticate", "no session returned"))
	}
	session = s

	c.transition(log, StateCollecting)
	collection, err := c.collector.Collect(ctx, session, cfg, c.resumeCursor(log))
	if err != nil {
		return c.fail(log, err)
	}

	c.stats.PagesScanned = collection.PagesScanned
	c.stats.Skipped = collection.Skipped
	c.stats.Truncated = collection.Truncated
	c.stats.Tally(collection.Posts)

	if collection.Truncated {
		log.WarnWithFields("Collection truncated, exporting partial corpus", map[string]interface{}{
			"posts":     len(collection.Posts),
			"next_page": collection.Next.NextPage,
		})
		c.saveCheckpoint(log, cfg, collection.Next)
	}

	c.transition(log, StateExporting)
	report, err := c.exporter.Export(collection.Posts, cfg.OutputDir, cfg.DisplayName())
	if report != nil {
		c.stats.Exported = report.Exported
		c.stats.ExportFailed = report.Failed
	}
	if err != nil {
		c.saveCheckpoint(log, cfg, collection.Next)
		return c.fail(log, errs.Wrap(errs.KindExport, "export", err))
	}

	if !collection.Truncated {
		c.clearCheckpoint(log)
	}

	c.transition(log, StateDone)
	return true
}

func (c *Coordinator) transition(log logger.Logger, to State) {
	from := c.state
	c.state = to
	logger.LogStage(log, c.stats.RunID, from.String(), to.String())
	c.observer.StageChanged(from, to)
}

func (c *Coordinator) fail(log logger.Logger, err error) bool {
	log.ErrorWithFields("Run failed", map[string]interface{}{
		"stage": c.state.String(),
		"kind":  string(errs.KindOf(err)),
		"error": err.Error(),
	})
	c.transition(log, StateFailed)
	return false
}

func (c *Coordinator) resumeCursor(log logger.Logger) Cursor {
	if c.checkpoints == nil || !c.resume {
		return Cursor{}
	}

	cp, err := c.checkpoints.Load()
	if err != nil {
		log.WarnWithFields("Cannot load checkpoint, starting from the first page", map[string]interface{}{
			"error": err.Error(),
		})
		return Cursor{}
	}
	if cp == nil {
		return Cursor{}
	}

	log.InfoWithFields("Resuming from checkpoint", map[string]interface{}{
		"next_page": cp.NextPage,
		"posts":     len(cp.Posts),
	})
	return Cursor{NextPage: cp.NextPage, Posts: cp.Posts}
}

func (c *Coordinator) saveCheckpoint(log logger.Logger, cfg models.RunConfig, next Cursor) {
	if c.checkpoints == nil {
		return
	}

	err := c.checkpoints.Save(&checkpoint.Checkpoint{
		Community: cfg.Community,
		Author:    cfg.Author,
		NextPage:  next.NextPage,
		Posts:     next.Posts,
	})
	if err != nil {
		log.WarnWithFields("Failed to save checkpoint", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}
	log.Info("Checkpoint saved, rerun with --resume to continue")
}

func (c *Coordinator) clearCheckpoint(log logger.Logger) {
	if c.checkpoints == nil {
		return
	}
	if err := c.checkpoints.Delete(); err != nil {
		log.WarnWithFields("Failed to delete checkpoint", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

func (c *Coordinator) exportLogs(log logger.Logger) {
	if c.journal == nil || c.logExportPath == "" {
		return
	}
	if err := c.journal.ExportJSON(c.logExportPath); err != nil {
		log.WarnWithFields("Failed to export logs", map[string]interface{}{
			"path":  c.logExportPath,
			"error": err.Error(),
		})
	}
}
