package crawler

import (
	"context"
	"fmt"
	"time"

	errs "cafecrawler/pkg/errors"
	"cafecrawler/pkg/logger"
	"cafecrawler/pkg/models"
	"cafecrawler/pkg/ratelimit"
)

// DefaultPageDelay separates successive listing requests
const DefaultPageDelay = time.Second

// Cursor is where a collection starts. The zero value starts at page 1 with
// an empty corpus.
type Cursor struct {
	NextPage int                  `json:"next_page"`
	Posts    []*models.PostRecord `json:"posts,omitempty"`
}

// Collection is the outcome of one pass over the author's listing
type Collection struct {
	Posts        []*models.PostRecord
	PagesScanned int
	Skipped      int
	// Truncated is set when a listing page could not be fetched; Posts holds
	// everything collected before it
	Truncated bool
	// Err is the listing failure behind Truncated
	Err error
	// Next continues the crawl where this pass stopped
	Next Cursor
}

// Paginator walks the author's listing page by page and assembles the corpus
type Paginator struct {
	extractor Extractor
	endpoints Endpoints
	comments  *CommentAggregator
	pacer     *ratelimit.Interval
	now       func() time.Time
	observer  Observer
	logger    logger.Logger
}

// PaginatorOption configures a Paginator
type PaginatorOption func(*Paginator)

// WithPageDelay sets the minimum pause between finishing one page and requesting the next
func WithPageDelay(d time.Duration) PaginatorOption {
	return func(p *Paginator) {
		p.pacer = ratelimit.NewInterval(d)
	}
}

// WithClock overrides the clock the recency cutoff is computed from
func WithClock(now func() time.Time) PaginatorOption {
	return func(p *Paginator) {
		p.now = now
	}
}

// WithObserver reports progress to o
func WithObserver(o Observer) PaginatorOption {
	return func(p *Paginator) {
		p.observer = orNopObserver(o)
	}
}

// NewPaginator creates a paginator. comments may be nil when no run enables comment inclusion.
func NewPaginator(extractor Extractor, endpoints Endpoints, comments *CommentAggregator, log logger.Logger, opts ...PaginatorOption) *Paginator {
	log = logger.OrNop(log)
	if comments == nil {
		comments = NewCommentAggregator(extractor, endpoints, log)
	}

	p := &Paginator{
		extractor: extractor,
		endpoints: endpoints,
		comments:  comments,
		pacer:     ratelimit.NewInterval(DefaultPageDelay),
		now:       time.Now,
		observer:  nopObserver{},
		logger:    log,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Collect gathers the author's posts starting at from. Listing failures do
// not fail the call: they truncate the collection, which is returned with
// everything gathered so far. The only error is an invalid cfg.
func (p *Paginator) Collect(ctx context.Context, session Session, cfg models.RunConfig, from Cursor) (*Collection, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errs.Wrap(errs.KindConfig, "collect", err)
	}

	now := p.now()
	cutoff := cfg.Cutoff(now)

	result := &Collection{Posts: append([]*models.PostRecord(nil), from.Posts...)}
	seen := make(map[string]bool, len(result.Posts))
	for _, post := range result.Posts {
		seen[post.URL] = true
	}

	page := from.NextPage
	if page < 1 {
		page = 1
	}

	p.logger.InfoWithFields("Collecting posts", map[string]interface{}{
		"community":  cfg.Community,
		"author":     cfg.Author,
		"first_page": page,
		"page_limit": cfg.PageLimit,
		"cutoff":     cutoff.Format(time.RFC3339),
		"resumed":    len(from.Posts),
	})

	for ; page <= cfg.PageLimit; page++ {
		entries, err := p.fetchListing(ctx, session, cfg, page)
		if err != nil {
			p.logger.ErrorWithFields("Listing fetch failed, keeping posts collected so far", map[string]interface{}{
				"page":  page,
				"posts": len(result.Posts),
				"error": err.Error(),
			})
			result.Truncated = true
			result.Err = err
			break
		}

		result.PagesScanned++
		p.observer.PageFetched(page, len(entries))

		if len(entries) == 0 {
			p.logger.InfoWithFields("Reached the end of the author's listing", map[string]interface{}{
				"page": page,
			})
			break
		}

		for _, entry := range entries {
			if ctx.Err() != nil {
				break
			}
			p.processEntry(ctx, session, cfg, entry, cutoff, now, seen, result)
		}

		// an interrupted page is scanned again on resume; seen posts are not refetched
		if err := ctx.Err(); err != nil {
			p.logger.ErrorWithFields("Collection interrupted, keeping posts collected so far", map[string]interface{}{
				"page":  page,
				"posts": len(result.Posts),
				"error": err.Error(),
			})
			result.Truncated = true
			result.Err = errs.Wrap(errs.KindPageFetch, fmt.Sprintf("collect page %d", page), err)
			break
		}
		p.pacer.Mark()
	}

	result.Next = Cursor{NextPage: page, Posts: result.Posts}

	p.logger.InfoWithFields("Collection finished", map[string]interface{}{
		"posts":         len(result.Posts),
		"pages_scanned": result.PagesScanned,
		"skipped":       result.Skipped,
		"truncated":     result.Truncated,
	})
	return result, nil
}

func (p *Paginator) fetchListing(ctx context.Context, session Session, cfg models.RunConfig, page int) ([]models.RawEntry, error) {
	op := fmt.Sprintf("fetch listing page %d", page)

	if err := p.pacer.Wait(ctx); err != nil {
		return nil, errs.Wrap(errs.KindPageFetch, op, err)
	}

	listingURL := p.endpoints.ListingURL(cfg.Community, cfg.Author, page)
	_, body, err := session.Get(ctx, listingURL)
	if err != nil {
		return nil, errs.Wrap(errs.KindPageFetch, op, err)
	}

	entries, err := p.extractor.ExtractListing(body, listingURL)
	if err != nil {
		return nil, errs.Wrap(errs.KindPageFetch, op, err)
	}

	p.logger.DebugWithFields("Listing page fetched", map[string]interface{}{
		"page":    page,
		"entries": len(entries),
	})
	return entries, nil
}

// processEntry turns one listing entry into a post. Every failure is
// contained here: the entry is skipped and the page carries on.
func (p *Paginator) processEntry(ctx context.Context, session Session, cfg models.RunConfig, entry models.RawEntry,
	cutoff, now time.Time, seen map[string]bool, result *Collection) {
	defer func() {
		if r := recover(); r != nil {
			p.skip(result, entry.URL, errs.New(errs.KindEntry, "process entry", fmt.Sprint(r)))
		}
	}()

	if seen[entry.URL] {
		p.logger.DebugWithFields("Skipping duplicate entry", map[string]interface{}{
			"url": entry.URL,
		})
		return
	}

	listingDate, listingDated := models.ParseDate(entry.Date, now)
	if listingDated && listingDate.Before(cutoff) {
		p.logger.DebugWithFields("Entry older than cutoff", map[string]interface{}{
			"url":  entry.URL,
			"date": entry.Date,
		})
		return
	}

	post, err := p.fetchPost(ctx, session, entry)
	if err != nil {
		if ctx.Err() == nil {
			p.skip(result, entry.URL, err)
		}
		return
	}

	if !listingDated {
		if date, ok := models.ParseDate(post.Date, now); ok && date.Before(cutoff) {
			p.logger.DebugWithFields("Post older than cutoff", map[string]interface{}{
				"url":  entry.URL,
				"date": post.Date,
			})
			return
		}
	}

	if post.Title == models.UnknownTitle && entry.Title != "" {
		post.Title = entry.Title
	}

	if cfg.IncludeComments {
		post.Comments = p.comments.FetchComments(ctx, session, post.URL)
		if ctx.Err() != nil {
			return
		}
	}

	seen[entry.URL] = true
	result.Posts = append(result.Posts, post)
	p.observer.PostCollected(post)
}

func (p *Paginator) fetchPost(ctx context.Context, session Session, entry models.RawEntry) (*models.PostRecord, error) {
	_, body, err := session.Get(ctx, entry.URL)
	if err != nil {
		return nil, errs.Wrap(errs.KindEntry, "fetch post", err)
	}

	post, ok := p.extractor.ExtractPost(body, entry.URL)
	if !ok || post == nil {
		return nil, errs.New(errs.KindEntry, "extract post", "page is not an article")
	}
	return post, nil
}

func (p *Paginator) skip(result *Collection, url string, err error) {
	result.Skipped++
	p.logger.WarnWithFields("Skipping entry", map[string]interface{}{
		"url":   url,
		"error": err.Error(),
	})
	p.observer.EntrySkipped(url, err)
}
