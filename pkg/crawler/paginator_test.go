package crawler

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cafecrawler/pkg/cafe"
	"cafecrawler/pkg/cafe/cafetest"
	errs "cafecrawler/pkg/errors"
	"cafecrawler/pkg/logger"
	"cafecrawler/pkg/models"
	"cafecrawler/pkg/retry"
)

const testClub = "10050146"

var testNow = time.Date(2024, 3, 20, 12, 0, 0, 0, models.KST)

func fixedNow() time.Time { return testNow }

func testConfig() models.RunConfig {
	return models.RunConfig{
		Community:       testClub,
		Author:          "writer01",
		PageLimit:       5,
		RecencyDays:     30,
		IncludeComments: true,
		OutputDir:       "out",
	}
}

func post(id, title, date string) cafetest.Post {
	return cafetest.Post{ID: id, Title: title, Author: "writer", Date: date, Content: "body " + id, Views: "7"}
}

func newTestSession(t *testing.T) *cafe.Session {
	t.Helper()
	s, err := cafe.NewSession(cafe.SessionConfig{
		Timeout: 2 * time.Second,
		Retry: &retry.Config{
			MaxAttempts: 2,
			Backoff:     &retry.ConstantBackoff{Delay: time.Millisecond},
		},
	}, nil, nil)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func newTestPaginator(server *cafetest.MockCafeServer, log logger.Logger, opts ...PaginatorOption) *Paginator {
	extractor := &cafe.Extractor{Now: fixedNow}
	endpoints := cafe.NewEndpoints(server.URL())
	opts = append([]PaginatorOption{WithPageDelay(0), WithClock(fixedNow)}, opts...)
	return NewPaginator(extractor, endpoints, NewCommentAggregator(extractor, endpoints, log), log, opts...)
}

func titles(posts []*models.PostRecord) []string {
	out := make([]string, 0, len(posts))
	for _, p := range posts {
		out = append(out, p.Title)
	}
	return out
}

type recordingObserver struct {
	pages   []int
	posts   int
	skipped []string
	stages  []State
}

func (r *recordingObserver) StageChanged(_, to State)         { r.stages = append(r.stages, to) }
func (r *recordingObserver) PageFetched(page, _ int)          { r.pages = append(r.pages, page) }
func (r *recordingObserver) PostCollected(*models.PostRecord) { r.posts++ }
func (r *recordingObserver) EntrySkipped(url string, _ error) { r.skipped = append(r.skipped, url) }

func TestCollectStopsAtEmptyPage(t *testing.T) {
	server := cafetest.NewMockCafeServer(testClub)
	defer server.Close()
	server.AddPage(post("1", "one", "2024.03.19."), post("2", "two", "2024.03.18."))
	server.AddPage(post("3", "three", "2024.03.17."))

	obs := &recordingObserver{}
	result, err := newTestPaginator(server, nil, WithObserver(obs)).Collect(context.Background(), newTestSession(t), testConfig(), Cursor{})
	require.NoError(t, err)

	assert.Equal(t, []string{"one", "two", "three"}, titles(result.Posts))
	assert.Equal(t, 3, result.PagesScanned)
	assert.Equal(t, 3, server.ListingHits())
	assert.False(t, result.Truncated)
	assert.Equal(t, 3, result.Next.NextPage)
	assert.Equal(t, []int{1, 2, 3}, obs.pages)
	assert.Equal(t, 3, obs.posts)
}

func TestCollectHonorsPageLimit(t *testing.T) {
	server := cafetest.NewMockCafeServer(testClub)
	defer server.Close()
	server.AddPage(post("1", "one", "2024.03.19."))
	server.AddPage(post("2", "two", "2024.03.19."))
	server.AddPage(post("3", "three", "2024.03.19."))

	cfg := testConfig()
	cfg.PageLimit = 2
	result, err := newTestPaginator(server, nil).Collect(context.Background(), newTestSession(t), cfg, Cursor{})
	require.NoError(t, err)

	assert.Equal(t, []string{"one", "two"}, titles(result.Posts))
	assert.Equal(t, 2, server.ListingHits())
	assert.Equal(t, 3, result.Next.NextPage)
}

func TestCollectRecencyFilter(t *testing.T) {
	server := cafetest.NewMockCafeServer(testClub)
	defer server.Close()

	detailOld := post("4", "old by detail", "2020.01.01.")
	detailOld.ListingDate = "방금"
	undated := post("5", "undated", "sometime")

	server.AddPage(
		post("1", "recent", "2024.03.19. 08:00"),
		post("2", "ancient", "2023.01.01."),
		post("3", "today", "09:15"),
		detailOld,
		undated,
	)

	result, err := newTestPaginator(server, nil).Collect(context.Background(), newTestSession(t), testConfig(), Cursor{})
	require.NoError(t, err)

	assert.Equal(t, []string{"recent", "today", "undated"}, titles(result.Posts))
	assert.Zero(t, result.Skipped)

	cutoff := testConfig().Cutoff(testNow)
	for _, p := range result.Posts {
		if date, ok := models.ParseDate(p.Date, testNow); ok {
			assert.False(t, date.Before(cutoff), "%s is older than the cutoff", p.Title)
		} else {
			assert.Equal(t, models.UnknownDate, p.Date)
		}
	}
}

func TestCollectIsolatesEntryFailures(t *testing.T) {
	server := cafetest.NewMockCafeServer(testClub)
	defer server.Close()
	server.AddPage(
		post("1", "one", "2024.03.19."),
		post("2", "two", "2024.03.19."),
		post("3", "three", "2024.03.19."),
		post("4", "four", "2024.03.19."),
	)
	server.AddPage(post("5", "five", "2024.03.19."))
	server.FailArticle("2", http.StatusInternalServerError)
	server.FailArticle("4", http.StatusNotFound)

	log := logger.NewTestLogger()
	obs := &recordingObserver{}
	result, err := newTestPaginator(server, log, WithObserver(obs)).Collect(context.Background(), newTestSession(t), testConfig(), Cursor{})
	require.NoError(t, err)

	assert.Equal(t, []string{"one", "three", "five"}, titles(result.Posts))
	assert.Equal(t, 2, result.Skipped)
	assert.Len(t, obs.skipped, 2)
	warnings := log.GetMessagesByLevel("WARN")
	require.Len(t, warnings, 2)
	assert.Equal(t, "Skipping entry", warnings[0].Message)
	assert.Equal(t, server.ArticleURL("2"), warnings[0].Fields["url"])
}

func TestCollectCommentFailureKeepsPost(t *testing.T) {
	server := cafetest.NewMockCafeServer(testClub)
	defer server.Close()

	withComments := post("1", "one", "2024.03.19.")
	withComments.Comments = []cafetest.Comment{{Author: "r1", Date: "2024.03.19. 10:00", Content: "hello"}, {Author: "r2", Date: "2024.03.19. 11:00", Content: "bye"}}
	server.AddPage(withComments, post("2", "two", "2024.03.19."))
	server.FailComments("2", http.StatusServiceUnavailable)

	result, err := newTestPaginator(server, nil).Collect(context.Background(), newTestSession(t), testConfig(), Cursor{})
	require.NoError(t, err)
	require.Len(t, result.Posts, 2)

	assert.Len(t, result.Posts[0].Comments, 2)
	assert.Equal(t, "hello", result.Posts[0].Comments[0].Content)
	assert.NotNil(t, result.Posts[1].Comments)
	assert.Empty(t, result.Posts[1].Comments)
	assert.Zero(t, result.Skipped)
}

func TestCollectWithoutComments(t *testing.T) {
	server := cafetest.NewMockCafeServer(testClub)
	defer server.Close()
	p := post("1", "one", "2024.03.19.")
	p.Comments = []cafetest.Comment{{Author: "r", Content: "c"}}
	server.AddPage(p)

	cfg := testConfig()
	cfg.IncludeComments = false
	result, err := newTestPaginator(server, nil).Collect(context.Background(), newTestSession(t), cfg, Cursor{})
	require.NoError(t, err)
	require.Len(t, result.Posts, 1)

	assert.Nil(t, result.Posts[0].Comments)
	// two listing pages and one article, no comment requests
	assert.Equal(t, 3, server.RequestCount())
}

func TestCollectTruncatesOnListingFailure(t *testing.T) {
	server := cafetest.NewMockCafeServer(testClub)
	defer server.Close()
	server.AddPage(post("1", "one", "2024.03.19."), post("2", "two", "2024.03.19."))
	server.AddPage(post("3", "three", "2024.03.19."))
	server.AddPage(post("4", "four", "2024.03.19."))
	server.FailListingPage(2, http.StatusBadGateway)

	result, err := newTestPaginator(server, nil).Collect(context.Background(), newTestSession(t), testConfig(), Cursor{})
	require.NoError(t, err)

	assert.True(t, result.Truncated)
	assert.True(t, errs.IsKind(result.Err, errs.KindPageFetch))
	assert.Equal(t, []string{"one", "two"}, titles(result.Posts))
	assert.Equal(t, 1, result.PagesScanned)
	assert.Equal(t, 2, result.Next.NextPage)
	assert.Len(t, result.Next.Posts, 2)
}

func TestCollectResumesFromCursor(t *testing.T) {
	server := cafetest.NewMockCafeServer(testClub)
	defer server.Close()
	server.AddPage(post("1", "one", "2024.03.19."))
	server.AddPage(post("2", "two", "2024.03.19."), post("1", "one again", "2024.03.19."))

	earlier := &models.PostRecord{URL: server.ArticleURL("1"), Title: "one", Images: []string{}}
	from := Cursor{NextPage: 2, Posts: []*models.PostRecord{earlier}}

	result, err := newTestPaginator(server, nil).Collect(context.Background(), newTestSession(t), testConfig(), from)
	require.NoError(t, err)

	assert.Equal(t, []string{"one", "two"}, titles(result.Posts))
	assert.Same(t, earlier, result.Posts[0])
	// page 2 and the empty page 3
	assert.Equal(t, 2, server.ListingHits())
}

func TestCollectSkipsDuplicates(t *testing.T) {
	server := cafetest.NewMockCafeServer(testClub)
	defer server.Close()
	server.AddPage(post("1", "one", "2024.03.19."), post("2", "two", "2024.03.19."))
	server.AddPage(post("2", "two", "2024.03.19."), post("3", "three", "2024.03.19."))

	result, err := newTestPaginator(server, nil).Collect(context.Background(), newTestSession(t), testConfig(), Cursor{})
	require.NoError(t, err)

	assert.Equal(t, []string{"one", "two", "three"}, titles(result.Posts))
	assert.Zero(t, result.Skipped)
}

func TestCollectSpacesPageRequests(t *testing.T) {
	server := cafetest.NewMockCafeServer(testClub)
	defer server.Close()
	server.AddPage(post("1", "one", "2024.03.19."))
	server.AddPage(post("2", "two", "2024.03.19."))

	cfg := testConfig()
	cfg.IncludeComments = false

	start := time.Now()
	_, err := newTestPaginator(server, nil, WithPageDelay(40*time.Millisecond)).Collect(context.Background(), newTestSession(t), cfg, Cursor{})
	require.NoError(t, err)

	// three listing requests, two pauses between them
	assert.Equal(t, 3, server.ListingHits())
	assert.GreaterOrEqual(t, time.Since(start), 80*time.Millisecond)
}

func TestCollectCancelledContextTruncates(t *testing.T) {
	server := cafetest.NewMockCafeServer(testClub)
	defer server.Close()
	server.AddPage(post("1", "one", "2024.03.19."), post("2", "two", "2024.03.19."), post("3", "three", "2024.03.19."))
	server.AddPage(post("4", "four", "2024.03.19."))

	ctx, cancel := context.WithCancel(context.Background())
	obs := &cancelOnFirstPost{cancel: cancel}

	session := newTestSession(t)
	result, err := newTestPaginator(server, nil, WithObserver(obs)).Collect(ctx, session, testConfig(), Cursor{})
	require.NoError(t, err)
	assert.True(t, result.Truncated)
	assert.True(t, errs.IsKind(result.Err, errs.KindPageFetch))
	assert.Equal(t, []string{"one"}, titles(result.Posts))
	assert.Zero(t, result.Skipped)
	assert.Empty(t, obs.skipped)
	assert.Equal(t, 1, result.Next.NextPage)

	resumed, err := newTestPaginator(server, nil).Collect(context.Background(), session, testConfig(), result.Next)
	require.NoError(t, err)
	assert.False(t, resumed.Truncated)
	assert.Equal(t, []string{"one", "two", "three", "four"}, titles(resumed.Posts))
}

type cancelOnFirstPost struct {
	recordingObserver
	cancel context.CancelFunc
}

func (c *cancelOnFirstPost) PostCollected(p *models.PostRecord) {
	c.recordingObserver.PostCollected(p)
	c.cancel()
}

func TestCollectRejectsInvalidConfig(t *testing.T) {
	server := cafetest.NewMockCafeServer(testClub)
	defer server.Close()

	cfg := testConfig()
	cfg.PageLimit = 0
	_, err := newTestPaginator(server, nil).Collect(context.Background(), newTestSession(t), cfg, Cursor{})
	require.Error(t, err)
	assert.True(t, errs.IsKind(err, errs.KindConfig))
	assert.Zero(t, server.RequestCount())
}
