package cafe

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

const (
	// DefaultBaseURL is the community host
	DefaultBaseURL = "https://cafe.naver.com"

	// MemberArticlesPath lists one member's articles, page by page
	MemberArticlesPath = "/CafeMemberNetworkArticleList.nhn"

	// ArticlePath renders a single article
	ArticlePath = "/ArticleRead.nhn"

	// CommentsPath renders the comment thread of an article
	CommentsPath = "/CommentView.nhn"
)

// Endpoints builds community URLs against a base URL
type Endpoints struct {
	BaseURL string
}

// NewEndpoints creates URL builders for baseURL (DefaultBaseURL when empty)
func NewEndpoints(baseURL string) Endpoints {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return Endpoints{BaseURL: strings.TrimRight(baseURL, "/")}
}

// ListingURL returns page (1-based) of author's article list in community
func (e Endpoints) ListingURL(community, author string, page int) string {
	params := url.Values{}
	params.Set("search.clubid", community)
	params.Set("search.writerid", author)
	params.Set("search.page", strconv.Itoa(page))
	return fmt.Sprintf("%s%s?%s", e.BaseURL, MemberArticlesPath, params.Encode())
}

// ArticleURL returns the canonical URL of an article
func (e Endpoints) ArticleURL(community, articleID string) string {
	params := url.Values{}
	params.Set("clubid", community)
	params.Set("articleid", articleID)
	return fmt.Sprintf("%s%s?%s", e.BaseURL, ArticlePath, params.Encode())
}

// CommentsURL derives the comment thread URL from an article URL
func (e Endpoints) CommentsURL(postURL string) (string, error) {
	community, articleID, err := ParseArticleURL(postURL)
	if err != nil {
		return "", err
	}

	params := url.Values{}
	params.Set("search.clubid", community)
	params.Set("search.articleid", articleID)
	return fmt.Sprintf("%s%s?%s", e.BaseURL, CommentsPath, params.Encode()), nil
}

// ParseArticleURL extracts the community and article ids from an article URL.
// Both the query form (?clubid=..&articleid=..) and the short path form
// (/{cafe}/{articleid}?clubid=..) are understood.
func ParseArticleURL(postURL string) (community, articleID string, err error) {
	u, err := url.Parse(postURL)
	if err != nil {
		return "", "", fmt.Errorf("invalid article URL %q: %w", postURL, err)
	}

	q := u.Query()
	community = firstNonEmpty(q.Get("clubid"), q.Get("search.clubid"))
	articleID = firstNonEmpty(q.Get("articleid"), q.Get("search.articleid"))

	if articleID == "" {
		segments := strings.Split(strings.Trim(u.Path, "/"), "/")
		if last := segments[len(segments)-1]; isDigits(last) {
			articleID = last
		}
	}

	if community == "" || articleID == "" {
		return "", "", fmt.Errorf("article URL %q has no club or article id", postURL)
	}
	return community, articleID, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
