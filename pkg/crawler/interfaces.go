package crawler

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"cafecrawler/pkg/checkpoint"
	"cafecrawler/pkg/export"
	"cafecrawler/pkg/models"
)

// Session issues authenticated GET requests
type Session interface {
	Get(ctx context.Context, url string) (int, []byte, error)
	Close() error
}

// Authenticator produces a logged-in Session
type Authenticator interface {
	Authenticate(ctx context.Context) (Session, error)
}

// AuthenticatorFunc adapts a function to Authenticator
type AuthenticatorFunc func(ctx context.Context) (Session, error)

func (f AuthenticatorFunc) Authenticate(ctx context.Context) (Session, error) {
	return f(ctx)
}

// Extractor turns markup into records
type Extractor interface {
	ExtractListing(html []byte, pageURL string) ([]models.RawEntry, error)
	ExtractPost(html []byte, postURL string) (*models.PostRecord, bool)
	ExtractComments(html []byte) ([]models.CommentRecord, error)
}

// Endpoints builds the URLs the crawl requests
type Endpoints interface {
	ListingURL(community, author string, page int) string
	CommentsURL(postURL string) (string, error)
}

// Collector gathers the corpus of one run
type Collector interface {
	Collect(ctx context.Context, session Session, cfg models.RunConfig, from Cursor) (*Collection, error)
}

// Exporter renders the corpus to disk
type Exporter interface {
	Export(posts []*models.PostRecord, outputRoot, author string) (*export.Report, error)
}

// CheckpointStore persists partial runs for one community and author
type CheckpointStore interface {
	Load() (*checkpoint.Checkpoint, error)
	Save(cp *checkpoint.Checkpoint) error
	Delete() error
}

// Observer receives progress events. Calls happen on the crawl goroutine.
type Observer interface {
	StageChanged(from, to State)
	PageFetched(page, entries int)
	PostCollected(post *models.PostRecord)
	EntrySkipped(url string, err error)
}
