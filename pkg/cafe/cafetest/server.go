// Package cafetest provides an in-process fake of the community's pages for tests.
package cafetest

import (
	"fmt"
	"html"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
)

// Paths served by MockCafeServer besides the article endpoints
const (
	LoginCheckPath = "/MyCafeIntro.nhn"
	LoginPagePath  = "/nidlogin.login"
)

// Post is one fake article
type Post struct {
	ID       string
	Title    string
	Author   string
	Date     string
	Content  string
	Images   []string
	Views    string
	Comments []Comment

	// ListingDate is shown in the listing instead of Date when set
	ListingDate string
}

// Comment is one fake comment
type Comment struct {
	Author  string
	Date    string
	Content string
}

// MockCafeServer serves listing, article and comment pages for a single club
type MockCafeServer struct {
	server *httptest.Server
	club   string

	mu           sync.RWMutex
	pages        [][]Post
	listingFails map[int]int
	articleFails map[string]int
	commentFails map[string]int
	loginCookie  string

	requestCount int32
	listingHits  int32
}

// NewMockCafeServer starts a server for club. Stop it with Close.
func NewMockCafeServer(club string) *MockCafeServer {
	m := &MockCafeServer{
		club:         club,
		listingFails: make(map[int]int),
		articleFails: make(map[string]int),
		commentFails: make(map[string]int),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/CafeMemberNetworkArticleList.nhn", m.handleListing)
	mux.HandleFunc("/ArticleRead.nhn", m.handleArticle)
	mux.HandleFunc("/CommentView.nhn", m.handleComments)
	mux.HandleFunc(LoginCheckPath, m.handleLoginCheck)
	mux.HandleFunc(LoginPagePath, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html><body>login</body></html>")
	})

	m.server = httptest.NewServer(countRequests(&m.requestCount, mux))
	return m
}

func countRequests(n *int32, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(n, 1)
		next.ServeHTTP(w, r)
	})
}

// AddPage appends a listing page holding posts, in display order
func (m *MockCafeServer) AddPage(posts ...Post) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pages = append(m.pages, posts)
}

// FailListingPage makes listing page respond with code
func (m *MockCafeServer) FailListingPage(page, code int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listingFails[page] = code
}

// FailArticle makes the article page of id respond with code
func (m *MockCafeServer) FailArticle(id string, code int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.articleFails[id] = code
}

// FailComments makes the comment thread of id respond with code
func (m *MockCafeServer) FailComments(id string, code int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.commentFails[id] = code
}

// RequireLoginCookie makes the login check pass only with this NID_AUT value
func (m *MockCafeServer) RequireLoginCookie(value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loginCookie = value
}

// URL returns the base URL of the server
func (m *MockCafeServer) URL() string {
	return m.server.URL
}

// Club returns the club id the server answers for
func (m *MockCafeServer) Club() string {
	return m.club
}

// ArticleURL returns the canonical URL of article id
func (m *MockCafeServer) ArticleURL(id string) string {
	return fmt.Sprintf("%s/ArticleRead.nhn?articleid=%s&clubid=%s", m.server.URL, id, m.club)
}

// RequestCount returns the number of requests served
func (m *MockCafeServer) RequestCount() int {
	return int(atomic.LoadInt32(&m.requestCount))
}

// ListingHits returns the number of listing pages served
func (m *MockCafeServer) ListingHits() int {
	return int(atomic.LoadInt32(&m.listingHits))
}

// Close shuts the server down
func (m *MockCafeServer) Close() {
	m.server.Close()
}

func (m *MockCafeServer) handleListing(w http.ResponseWriter, r *http.Request) {
	atomic.AddInt32(&m.listingHits, 1)
	page, _ := strconv.Atoi(r.URL.Query().Get("search.page"))

	m.mu.RLock()
	code := m.listingFails[page]
	var posts []Post
	if page >= 1 && page <= len(m.pages) {
		posts = m.pages[page-1]
	}
	m.mu.RUnlock()

	if code != 0 {
		http.Error(w, http.StatusText(code), code)
		return
	}
	fmt.Fprint(w, ListingHTML(m.club, posts))
}

func (m *MockCafeServer) handleArticle(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("articleid")

	m.mu.RLock()
	code := m.articleFails[id]
	post, ok := m.find(id)
	m.mu.RUnlock()

	switch {
	case code != 0:
		http.Error(w, http.StatusText(code), code)
	case !ok:
		http.NotFound(w, r)
	default:
		fmt.Fprint(w, ArticleHTML(post))
	}
}

func (m *MockCafeServer) handleComments(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("search.articleid")

	m.mu.RLock()
	code := m.commentFails[id]
	post, ok := m.find(id)
	m.mu.RUnlock()

	switch {
	case code != 0:
		http.Error(w, http.StatusText(code), code)
	case !ok:
		http.NotFound(w, r)
	default:
		fmt.Fprint(w, CommentsHTML(post.Comments))
	}
}

func (m *MockCafeServer) handleLoginCheck(w http.ResponseWriter, r *http.Request) {
	m.mu.RLock()
	want := m.loginCookie
	m.mu.RUnlock()

	if want != "" {
		c, err := r.Cookie("NID_AUT")
		if err != nil || c.Value != want {
			http.Redirect(w, r, LoginPagePath+"?mode=form", http.StatusFound)
			return
		}
	}
	fmt.Fprint(w, "<html><body>my cafes</body></html>")
}

// find looks an article up across pages; callers hold mu
func (m *MockCafeServer) find(id string) (Post, bool) {
	for _, page := range m.pages {
		for _, p := range page {
			if p.ID == id {
				return p, true
			}
		}
	}
	return Post{}, false
}

// ListingHTML renders a member article list page
func ListingHTML(club string, posts []Post) string {
	var b strings.Builder
	b.WriteString("<html><body><div class=\"article-board\"><table><tbody>\n")
	b.WriteString("<tr><th>title</th><th>date</th></tr>\n")
	for _, p := range posts {
		fmt.Fprintf(&b, "<tr><td class=\"td_article\"><a class=\"article\" href=\"/ArticleRead.nhn?articleid=%s&amp;clubid=%s\">%s</a></td><td class=\"td_date\">%s</td></tr>\n",
			p.ID, club, html.EscapeString(p.Title), html.EscapeString(listingDate(p)))
	}
	b.WriteString("</tbody></table></div></body></html>")
	return b.String()
}

func listingDate(p Post) string {
	if p.ListingDate != "" {
		return p.ListingDate
	}
	return p.Date
}

// ArticleHTML renders an article page
func ArticleHTML(p Post) string {
	var b strings.Builder
	b.WriteString("<html><body><div class=\"article-head\">\n")
	fmt.Fprintf(&b, "<h3 class=\"article-title\">%s</h3>\n", html.EscapeString(p.Title))
	fmt.Fprintf(&b, "<span class=\"nickname\">%s</span>\n", html.EscapeString(p.Author))
	fmt.Fprintf(&b, "<span class=\"date\">%s</span>\n", html.EscapeString(p.Date))
	fmt.Fprintf(&b, "<span class=\"view-count\">%s</span>\n", html.EscapeString(p.Views))
	b.WriteString("</div><div class=\"article-content\">\n")
	fmt.Fprintf(&b, "<p>%s</p>\n", html.EscapeString(p.Content))
	for _, src := range p.Images {
		fmt.Fprintf(&b, "<img src=\"%s\">\n", html.EscapeString(src))
	}
	b.WriteString("</div></body></html>")
	return b.String()
}

// CommentsHTML renders a comment thread
func CommentsHTML(comments []Comment) string {
	var b strings.Builder
	b.WriteString("<html><body><ul class=\"comment_list\">\n")
	for _, c := range comments {
		fmt.Fprintf(&b, "<li class=\"CommentItem\"><span class=\"comment_nickname\">%s</span><span class=\"comment_info_date\">%s</span><span class=\"text_comment\">%s</span></li>\n",
			html.EscapeString(c.Author), html.EscapeString(c.Date), html.EscapeString(c.Content))
	}
	b.WriteString("</ul></body></html>")
	return b.String()
}
