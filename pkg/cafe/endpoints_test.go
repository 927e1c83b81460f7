package cafe

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListingURL(t *testing.T) {
	e := NewEndpoints("")
	raw := e.ListingURL("10050146", "writer01", 3)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "cafe.naver.com", u.Host)
	assert.Equal(t, MemberArticlesPath, u.Path)
	assert.Equal(t, "10050146", u.Query().Get("search.clubid"))
	assert.Equal(t, "writer01", u.Query().Get("search.writerid"))
	assert.Equal(t, "3", u.Query().Get("search.page"))
}

func TestNewEndpointsTrimsSlash(t *testing.T) {
	e := NewEndpoints("http://127.0.0.1:8080/")
	assert.Equal(t, "http://127.0.0.1:8080", e.BaseURL)
}

func TestCommentsURL(t *testing.T) {
	e := NewEndpoints("https://cafe.naver.com")

	raw, err := e.CommentsURL(e.ArticleURL("10050146", "998877"))
	require.NoError(t, err)
	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, CommentsPath, u.Path)
	assert.Equal(t, "10050146", u.Query().Get("search.clubid"))
	assert.Equal(t, "998877", u.Query().Get("search.articleid"))

	_, err = e.CommentsURL("https://cafe.naver.com/somecafe")
	assert.Error(t, err)
}

func TestParseArticleURL(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		community string
		article   string
		wantErr   bool
	}{
		{"query form", "https://cafe.naver.com/ArticleRead.nhn?clubid=1&articleid=2", "1", "2", false},
		{"search prefix", "https://cafe.naver.com/ArticleRead.nhn?search.clubid=1&search.articleid=2", "1", "2", false},
		{"short path form", "https://cafe.naver.com/somecafe/4567?clubid=1", "1", "4567", false},
		{"no club", "https://cafe.naver.com/somecafe/4567", "", "", true},
		{"no article", "https://cafe.naver.com/somecafe?clubid=1", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			community, article, err := ParseArticleURL(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.community, community)
			assert.Equal(t, tt.article, article)
		})
	}
}
