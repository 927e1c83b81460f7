package crawler

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cafecrawler/pkg/cafe"
	"cafecrawler/pkg/cafe/cafetest"
	errs "cafecrawler/pkg/errors"
	"cafecrawler/pkg/logger"
)

// stubSession serves canned bodies by URL
type stubSession struct {
	bodies   map[string]string
	requests []string
}

func (s *stubSession) Get(_ context.Context, url string) (int, []byte, error) {
	s.requests = append(s.requests, url)
	body, ok := s.bodies[url]
	if !ok {
		return http.StatusNotFound, nil, errs.FromStatus("get "+url, http.StatusNotFound)
	}
	return http.StatusOK, []byte(body), nil
}

func (s *stubSession) Close() error { return nil }

func newAggregator(log logger.Logger) (*CommentAggregator, cafe.Endpoints) {
	endpoints := cafe.NewEndpoints("https://cafe.example")
	return NewCommentAggregator(&cafe.Extractor{Now: fixedNow}, endpoints, log), endpoints
}

func TestFetchCommentsInDisplayOrder(t *testing.T) {
	agg, endpoints := newAggregator(nil)
	postURL := endpoints.ArticleURL(testClub, "77")
	commentsURL, err := endpoints.CommentsURL(postURL)
	require.NoError(t, err)

	session := &stubSession{bodies: map[string]string{
		commentsURL: cafetest.CommentsHTML([]cafetest.Comment{
			{Author: "first", Date: "2024.03.19. 10:00", Content: "a"},
			{Author: "second", Date: "2024.03.19. 10:05", Content: "b"},
			{Author: "third", Date: "2024.03.19. 10:10", Content: "c"},
		}),
	}}

	comments := agg.FetchComments(context.Background(), session, postURL)
	require.Len(t, comments, 3)
	assert.Equal(t, "first", comments[0].Author)
	assert.Equal(t, "c", comments[2].Content)
	assert.Equal(t, "2024-03-19T10:05:00+09:00", comments[1].Date)
	assert.Equal(t, []string{commentsURL}, session.requests)
}

func TestFetchCommentsFetchFailure(t *testing.T) {
	log := logger.NewTestLogger()
	agg, endpoints := newAggregator(log)

	comments := agg.FetchComments(context.Background(), &stubSession{}, endpoints.ArticleURL(testClub, "77"))
	assert.NotNil(t, comments)
	assert.Empty(t, comments)
	assert.True(t, log.HasMessage("Failed to fetch comments"))
}

func TestFetchCommentsUnderivableURL(t *testing.T) {
	log := logger.NewTestLogger()
	agg, _ := newAggregator(log)
	session := &stubSession{}

	comments := agg.FetchComments(context.Background(), session, "https://elsewhere.example/profile")
	assert.NotNil(t, comments)
	assert.Empty(t, comments)
	assert.Empty(t, session.requests)
	assert.True(t, log.HasMessage("Cannot derive comment URL"))
}

func TestFetchCommentsEmptyThread(t *testing.T) {
	agg, endpoints := newAggregator(nil)
	postURL := endpoints.ArticleURL(testClub, "77")
	commentsURL, _ := endpoints.CommentsURL(postURL)

	session := &stubSession{bodies: map[string]string{commentsURL: cafetest.CommentsHTML(nil)}}
	comments := agg.FetchComments(context.Background(), session, postURL)
	assert.NotNil(t, comments)
	assert.Empty(t, comments)
}
