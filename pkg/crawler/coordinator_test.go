package crawler_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"cafecrawler/pkg/checkpoint"
	"cafecrawler/pkg/config"
	"cafecrawler/pkg/crawler"
	"cafecrawler/pkg/crawler/mocks"
	errs "cafecrawler/pkg/errors"
	"cafecrawler/pkg/export"
	"cafecrawler/pkg/logger"
	"cafecrawler/pkg/models"
)

type CoordinatorTestSuite struct {
	suite.Suite
	ctrl *gomock.Controller

	auth        *mocks.MockAuthenticator
	session     *mocks.MockSession
	collector   *mocks.MockCollector
	exporter    *mocks.MockExporter
	checkpoints *mocks.MockCheckpointStore

	cfg    models.RunConfig
	logger *logger.TestLogger
}

func (s *CoordinatorTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())

	s.auth = mocks.NewMockAuthenticator(s.ctrl)
	s.session = mocks.NewMockSession(s.ctrl)
	s.collector = mocks.NewMockCollector(s.ctrl)
	s.exporter = mocks.NewMockExporter(s.ctrl)
	s.checkpoints = mocks.NewMockCheckpointStore(s.ctrl)

	s.cfg = models.RunConfig{
		Community:         "10050146",
		Author:            "writer01",
		AuthorDisplayName: "Writer",
		PageLimit:         5,
		RecencyDays:       30,
		IncludeComments:   true,
		OutputDir:         s.T().TempDir(),
	}
	s.logger = logger.NewTestLogger()
}

func (s *CoordinatorTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestCoordinatorTestSuite(t *testing.T) {
	suite.Run(t, new(CoordinatorTestSuite))
}

func (s *CoordinatorTestSuite) coordinator(opts ...crawler.CoordinatorOption) *crawler.Coordinator {
	return crawler.NewCoordinator(s.auth, s.collector, s.exporter, s.logger, opts...)
}

func corpus(commentCounts ...int) []*models.PostRecord {
	posts := make([]*models.PostRecord, 0, len(commentCounts))
	for i, n := range commentCounts {
		p := &models.PostRecord{
			URL:       fmt.Sprintf("https://cafe.example/ArticleRead.nhn?clubid=1&articleid=%d", i+1),
			Title:     "post",
			ViewCount: 1,
			Images:    []string{},
			Comments:  []models.CommentRecord{},
		}
		for j := 0; j < n; j++ {
			p.Comments = append(p.Comments, models.CommentRecord{Author: "r", Content: "c"})
		}
		posts = append(posts, p)
	}
	return posts
}

func (s *CoordinatorTestSuite) TestRun_Success() {
	ctx := context.Background()
	posts := corpus(0, 2, 1, 0, 3)

	stages := mocks.NewMockObserver(s.ctrl)
	gomock.InOrder(
		stages.EXPECT().StageChanged(crawler.StateIdle, crawler.StateAuthenticating),
		stages.EXPECT().StageChanged(crawler.StateAuthenticating, crawler.StateCollecting),
		stages.EXPECT().StageChanged(crawler.StateCollecting, crawler.StateExporting),
		stages.EXPECT().StageChanged(crawler.StateExporting, crawler.StateDone),
	)

	s.auth.EXPECT().Authenticate(ctx).Return(s.session, nil)
	s.collector.EXPECT().Collect(ctx, s.session, s.cfg, crawler.Cursor{}).
		Return(&crawler.Collection{Posts: posts, PagesScanned: 2, Skipped: 1, Next: crawler.Cursor{NextPage: 2, Posts: posts}}, nil)
	s.exporter.EXPECT().Export(posts, s.cfg.OutputDir, "Writer").
		Return(&export.Report{Attempted: 5, Exported: 5}, nil)
	s.checkpoints.EXPECT().Delete().Return(nil)
	s.session.EXPECT().Close().Return(nil).Times(1)

	c := s.coordinator(crawler.WithCheckpoints(s.checkpoints, false), crawler.WithStageObserver(stages))
	s.True(c.Run(ctx, s.cfg))

	stats := c.Stats()
	s.Equal(crawler.StateDone, c.State())
	s.NotEmpty(stats.RunID)
	s.Equal(5, stats.Posts)
	s.Equal(6, stats.Comments)
	s.Equal(5, stats.Exported)
	s.Equal(2, stats.PagesScanned)
	s.Equal(1, stats.Skipped)
	s.False(stats.Truncated)
	s.False(stats.EndTime.Before(stats.StartTime))
	s.False(s.logger.HasError())
}

func (s *CoordinatorTestSuite) TestRun_AuthFailure() {
	ctx := context.Background()
	s.auth.EXPECT().Authenticate(ctx).Return(nil, errs.New(errs.KindAuth, "login check", "cookies have expired"))

	c := s.coordinator()
	s.False(c.Run(ctx, s.cfg))
	s.Equal(crawler.StateFailed, c.State())
	s.Zero(c.Stats().Posts)
	s.True(s.logger.HasMessage("Run failed"))
}

func (s *CoordinatorTestSuite) TestRun_AuthReturnsNoSession() {
	ctx := context.Background()
	s.auth.EXPECT().Authenticate(ctx).Return(nil, nil)

	c := s.coordinator()
	s.False(c.Run(ctx, s.cfg))
	s.Equal(crawler.StateFailed, c.State())
}

func (s *CoordinatorTestSuite) TestRun_CollectorError() {
	ctx := context.Background()
	s.auth.EXPECT().Authenticate(ctx).Return(s.session, nil)
	s.collector.EXPECT().Collect(ctx, s.session, s.cfg, gomock.Any()).
		Return(nil, errors.New("collector exploded"))
	s.session.EXPECT().Close().Return(nil)

	c := s.coordinator()
	s.False(c.Run(ctx, s.cfg))
	s.Equal(crawler.StateFailed, c.State())
}

func (s *CoordinatorTestSuite) TestRun_TruncatedCollectionIsExported() {
	ctx := context.Background()
	posts := corpus(1, 1)
	next := crawler.Cursor{NextPage: 3, Posts: posts}

	s.auth.EXPECT().Authenticate(ctx).Return(s.session, nil)
	s.collector.EXPECT().Collect(ctx, s.session, s.cfg, crawler.Cursor{}).
		Return(&crawler.Collection{
			Posts:        posts,
			PagesScanned: 2,
			Truncated:    true,
			Err:          errs.New(errs.KindPageFetch, "fetch listing page 3", "bad gateway"),
			Next:         next,
		}, nil)
	s.checkpoints.EXPECT().Save(gomock.Any()).DoAndReturn(func(cp *checkpoint.Checkpoint) error {
		s.Equal("10050146", cp.Community)
		s.Equal("writer01", cp.Author)
		s.Equal(3, cp.NextPage)
		s.Len(cp.Posts, 2)
		return nil
	})
	s.exporter.EXPECT().Export(posts, s.cfg.OutputDir, "Writer").
		Return(&export.Report{Attempted: 2, Exported: 2}, nil)
	s.session.EXPECT().Close().Return(nil)

	c := s.coordinator(crawler.WithCheckpoints(s.checkpoints, false))
	s.True(c.Run(ctx, s.cfg))
	s.True(c.Stats().Truncated)
	s.Equal(2, c.Stats().Posts)
	s.True(s.logger.HasMessage("Collection truncated"))
}

func (s *CoordinatorTestSuite) TestRun_ExportError() {
	ctx := context.Background()
	posts := corpus(0)

	s.auth.EXPECT().Authenticate(ctx).Return(s.session, nil)
	s.collector.EXPECT().Collect(ctx, s.session, s.cfg, gomock.Any()).
		Return(&crawler.Collection{Posts: posts, PagesScanned: 1, Next: crawler.Cursor{NextPage: 2, Posts: posts}}, nil)
	s.exporter.EXPECT().Export(posts, s.cfg.OutputDir, "Writer").
		Return(&export.Report{Attempted: 1, Failed: 1}, errors.New("disk full"))
	s.checkpoints.EXPECT().Save(gomock.Any()).Return(nil)
	s.session.EXPECT().Close().Return(nil)

	c := s.coordinator(crawler.WithCheckpoints(s.checkpoints, false))
	s.False(c.Run(ctx, s.cfg))
	s.Equal(crawler.StateFailed, c.State())
	s.Equal(1, c.Stats().ExportFailed)
}

func (s *CoordinatorTestSuite) TestRun_PanicIsContained() {
	ctx := context.Background()
	posts := corpus(0)

	s.auth.EXPECT().Authenticate(ctx).Return(s.session, nil)
	s.collector.EXPECT().Collect(ctx, s.session, s.cfg, gomock.Any()).
		Return(&crawler.Collection{Posts: posts, PagesScanned: 1}, nil)
	s.exporter.EXPECT().Export(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func([]*models.PostRecord, string, string) (*export.Report, error) {
			panic("renderer bug")
		})
	s.session.EXPECT().Close().Return(errors.New("already closed"))

	c := s.coordinator()
	var ok bool
	s.NotPanics(func() { ok = c.Run(ctx, s.cfg) })
	s.False(ok)
	s.Equal(crawler.StateFailed, c.State())
	s.True(s.logger.HasMessage("Failed to close session"))
}

func (s *CoordinatorTestSuite) TestRun_ResumeSeedsCursor() {
	ctx := context.Background()
	earlier := corpus(1)
	cp := &checkpoint.Checkpoint{Community: s.cfg.Community, Author: s.cfg.Author, NextPage: 4, Posts: earlier}
	all := append(earlier, corpus(0)...)

	s.checkpoints.EXPECT().Load().Return(cp, nil)
	s.auth.EXPECT().Authenticate(ctx).Return(s.session, nil)
	s.collector.EXPECT().Collect(ctx, s.session, s.cfg, crawler.Cursor{NextPage: 4, Posts: earlier}).
		Return(&crawler.Collection{Posts: all, PagesScanned: 1, Next: crawler.Cursor{NextPage: 5, Posts: all}}, nil)
	s.exporter.EXPECT().Export(all, s.cfg.OutputDir, "Writer").
		Return(&export.Report{Attempted: 2, Exported: 2}, nil)
	s.checkpoints.EXPECT().Delete().Return(nil)
	s.session.EXPECT().Close().Return(nil)

	c := s.coordinator(crawler.WithCheckpoints(s.checkpoints, true))
	s.True(c.Run(ctx, s.cfg))
	s.Equal(2, c.Stats().Posts)
}

func (s *CoordinatorTestSuite) TestRun_UnreadableCheckpointStartsOver() {
	ctx := context.Background()

	s.checkpoints.EXPECT().Load().Return(nil, errors.New("corrupted"))
	s.auth.EXPECT().Authenticate(ctx).Return(s.session, nil)
	s.collector.EXPECT().Collect(ctx, s.session, s.cfg, crawler.Cursor{}).
		Return(&crawler.Collection{PagesScanned: 1}, nil)
	s.exporter.EXPECT().Export(gomock.Any(), s.cfg.OutputDir, "Writer").
		Return(&export.Report{}, nil)
	s.checkpoints.EXPECT().Delete().Return(nil)
	s.session.EXPECT().Close().Return(nil)

	c := s.coordinator(crawler.WithCheckpoints(s.checkpoints, true))
	s.True(c.Run(ctx, s.cfg))
	s.True(s.logger.HasMessage("Cannot load checkpoint"))
}

func (s *CoordinatorTestSuite) TestRun_InvalidConfig() {
	cfg := s.cfg
	cfg.Author = ""

	c := s.coordinator()
	s.False(c.Run(context.Background(), cfg))
	s.Equal(crawler.StateFailed, c.State())
}

func (s *CoordinatorTestSuite) TestRun_ExportsJournal() {
	ctx := context.Background()
	journal := logger.NewJournal()
	log, err := logger.New(&config.LoggingConfig{Level: "info"}, logger.WithJournal(journal), logger.WithWriter(io.Discard))
	s.Require().NoError(err)
	path := filepath.Join(s.T().TempDir(), "logs", "run.json")

	s.auth.EXPECT().Authenticate(ctx).Return(nil, errors.New("no cookies"))

	c := crawler.NewCoordinator(s.auth, s.collector, s.exporter, log, crawler.WithLogExport(journal, path))
	s.False(c.Run(ctx, s.cfg))

	data, err := os.ReadFile(path)
	s.Require().NoError(err)

	var entries []logger.Entry
	s.Require().NoError(json.Unmarshal(data, &entries))
	s.NotEmpty(entries)

	messages := make([]string, 0, len(entries))
	for _, e := range entries {
		messages = append(messages, e.Message)
	}
	s.Contains(messages, "Run failed")
	s.Contains(messages, "Run finished")
}

func TestStateNames(t *testing.T) {
	assert.Equal(t, "collecting", crawler.StateCollecting.String())
	assert.Equal(t, "state(42)", crawler.State(42).String())
	assert.True(t, crawler.StateDone.Terminal())
	assert.True(t, crawler.StateFailed.Terminal())
	assert.False(t, crawler.StateExporting.Terminal())
}
