package crawler

import (
	"context"

	"cafecrawler/pkg/logger"
	"cafecrawler/pkg/models"
)

// CommentAggregator fetches and flattens the comment thread of one post
type CommentAggregator struct {
	extractor Extractor
	endpoints Endpoints
	logger    logger.Logger
}

// NewCommentAggregator creates an aggregator
func NewCommentAggregator(extractor Extractor, endpoints Endpoints, log logger.Logger) *CommentAggregator {
	return &CommentAggregator{
		extractor: extractor,
		endpoints: endpoints,
		logger:    logger.OrNop(log),
	}
}

// FetchComments returns the thread of postURL in display order. It never
// returns nil: a thread that cannot be fetched or parsed after the session's
// retries is logged and reported as empty.
func (a *CommentAggregator) FetchComments(ctx context.Context, session Session, postURL string) []models.CommentRecord {
	empty := []models.CommentRecord{}

	commentsURL, err := a.endpoints.CommentsURL(postURL)
	if err != nil {
		a.warn(postURL, "Cannot derive comment URL", err)
		return empty
	}

	_, body, err := session.Get(ctx, commentsURL)
	if err != nil {
		a.warn(postURL, "Failed to fetch comments", err)
		return empty
	}

	comments, err := a.extractor.ExtractComments(body)
	if err != nil {
		a.warn(postURL, "Failed to parse comments", err)
		return empty
	}
	if comments == nil {
		return empty
	}

	a.logger.DebugWithFields("Comments fetched", map[string]interface{}{
		"url":   postURL,
		"count": len(comments),
	})
	return comments
}

func (a *CommentAggregator) warn(postURL, msg string, err error) {
	a.logger.WarnWithFields(msg, map[string]interface{}{
		"url":   postURL,
		"error": err.Error(),
	})
}
