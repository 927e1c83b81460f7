package cafe

import (
	"bytes"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/PuerkitoBio/goquery"

	errs "cafecrawler/pkg/errors"
	"cafecrawler/pkg/models"
)

// Selectors for the community's server-rendered pages
const (
	selListingRow  = "div.article-board tr"
	selListingLink = "a.article"
	selListingDate = ".td_date"

	selTitle   = "h3.article-title"
	selAuthor  = "span.nickname"
	selDate    = "span.date"
	selContent = "div.article-content"
	selViews   = "span.view-count"

	selCommentItem    = "ul.comment_list li.CommentItem"
	selCommentAuthor  = ".comment_nickname"
	selCommentDate    = ".comment_info_date"
	selCommentContent = ".text_comment"
)

// Extractor turns cafe markup into records. It has no side effects.
type Extractor struct {
	// Now anchors time-only dates ("14:05" means today); defaults to time.Now
	Now func() time.Time
}

// NewExtractor creates an extractor using the wall clock
func NewExtractor() *Extractor {
	return &Extractor{Now: time.Now}
}

func (x *Extractor) now() time.Time {
	if x.Now == nil {
		return time.Now()
	}
	return x.Now()
}

// ExtractListing returns the entries of a listing page in display order.
// Relative links are resolved against pageURL. Rows without an article link
// (headers, notices rendered as plain text) are ignored.
func (x *Extractor) ExtractListing(html []byte, pageURL string) ([]models.RawEntry, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return nil, errs.Wrap(errs.KindParsing, "parse listing", err)
	}

	base, _ := url.Parse(pageURL)

	var entries []models.RawEntry
	doc.Find(selListingRow).Each(func(_ int, row *goquery.Selection) {
		link := row.Find(selListingLink).First()
		href, ok := link.Attr("href")
		if !ok || strings.TrimSpace(href) == "" {
			return
		}

		entries = append(entries, models.RawEntry{
			URL:   resolve(base, href),
			Title: cleanText(link.Text()),
			Date:  cleanText(row.Find(selListingDate).First().Text()),
		})
	})

	return entries, nil
}

// ExtractPost parses an article page. ok is false when the page is not an
// article at all (no title and no body), e.g. a login wall or error page.
// Missing fields fall back to sentinel values.
func (x *Extractor) ExtractPost(html []byte, postURL string) (*models.PostRecord, bool) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return nil, false
	}

	titleSel := doc.Find(selTitle).First()
	contentSel := doc.Find(selContent).First()
	if titleSel.Length() == 0 && contentSel.Length() == 0 {
		return nil, false
	}

	post := &models.PostRecord{
		URL:       postURL,
		Title:     orDefault(cleanText(titleSel.Text()), models.UnknownTitle),
		Author:    orDefault(cleanText(doc.Find(selAuthor).First().Text()), models.AnonymousAuthor),
		Date:      models.NormalizeDate(cleanText(doc.Find(selDate).First().Text()), x.now()),
		Content:   strings.TrimSpace(contentSel.Text()),
		Images:    []string{},
		ViewCount: parseCount(doc.Find(selViews).First().Text()),
	}

	base, _ := url.Parse(postURL)
	contentSel.Find("img").Each(func(_ int, img *goquery.Selection) {
		src, ok := img.Attr("src")
		if !ok {
			return
		}
		abs := resolve(base, strings.TrimSpace(src))
		if strings.HasPrefix(abs, "http://") || strings.HasPrefix(abs, "https://") {
			post.Images = append(post.Images, abs)
		}
	})

	return post, true
}

// ExtractComments returns the flat comment thread in display order.
// Items without text (deleted comments) are dropped.
func (x *Extractor) ExtractComments(html []byte) ([]models.CommentRecord, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return nil, errs.Wrap(errs.KindParsing, "parse comments", err)
	}

	comments := []models.CommentRecord{}
	now := x.now()
	doc.Find(selCommentItem).Each(func(_ int, item *goquery.Selection) {
		content := strings.TrimSpace(item.Find(selCommentContent).First().Text())
		if content == "" {
			return
		}

		date := cleanText(item.Find(selCommentDate).First().Text())
		if t, ok := models.ParseDate(date, now); ok {
			date = t.Format(time.RFC3339)
		}

		comments = append(comments, models.CommentRecord{
			Author:  orDefault(cleanText(item.Find(selCommentAuthor).First().Text()), models.AnonymousAuthor),
			Date:    orDefault(date, models.UnknownDate),
			Content: content,
		})
	})

	return comments, nil
}

func resolve(base *url.URL, href string) string {
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	if base == nil {
		return ref.String()
	}
	return base.ResolveReference(ref).String()
}

// cleanText collapses runs of whitespace into single spaces
func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

// parseCount keeps the digits of s ("조회 1,234" is 1234); no digits means 0
func parseCount(s string) int {
	digits := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) && r < unicode.MaxASCII {
			return r
		}
		return -1
	}, s)
	if digits == "" {
		return 0
	}
	n, err := strconv.Atoi(digits)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
