package cafe

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"time"

	errs "cafecrawler/pkg/errors"
	"cafecrawler/pkg/logger"
	"cafecrawler/pkg/ratelimit"
	"cafecrawler/pkg/retry"
)

// maxBodySize caps a single page read; cafe pages are well under this
const maxBodySize = 16 << 20

// SessionConfig configures an authenticated session
type SessionConfig struct {
	UserAgent string
	Timeout   time.Duration
	// CookieURLs are the origins the login cookies are attached to
	CookieURLs []string
	// Limiter spaces every request of the session; nil disables it
	Limiter ratelimit.Limiter
	// Retry governs transient failures; nil uses retry.DefaultConfig
	Retry *retry.Config
}

// Session issues authenticated GET requests with a cookie jar
type Session struct {
	httpClient *http.Client
	headers    map[string]string
	limiter    ratelimit.Limiter
	retry      *retry.Config
	logger     logger.Logger
}

// NewSession creates a session carrying cookies for each of cfg.CookieURLs
func NewSession(cfg SessionConfig, cookies []*http.Cookie, log logger.Logger) (*Session, error) {
	log = logger.OrNop(log)

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}
	for _, raw := range cfg.CookieURLs {
		u, err := url.Parse(raw)
		if err != nil || u.Host == "" {
			return nil, fmt.Errorf("invalid cookie URL %q", raw)
		}
		jar.SetCookies(u, cookies)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	retryCfg := cfg.Retry
	if retryCfg == nil {
		retryCfg = retry.DefaultConfig()
	}
	if retryCfg.Logger == nil {
		rc := *retryCfg
		rc.Logger = log
		retryCfg = &rc
	}

	headers := map[string]string{
		"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
		"Accept-Language": "ko-KR,ko;q=0.9,en-US;q=0.8,en;q=0.7",
		"Cache-Control":   "no-cache",
	}
	if cfg.UserAgent != "" {
		headers["User-Agent"] = cfg.UserAgent
	}

	return &Session{
		httpClient: &http.Client{Timeout: timeout, Jar: jar},
		headers:    headers,
		limiter:    cfg.Limiter,
		retry:      retryCfg,
		logger:     log,
	}, nil
}

// SetHeader sets a header sent with every request
func (s *Session) SetHeader(key, value string) {
	s.headers[key] = value
}

// Get fetches url and returns the status and body. Statuses of 400 and
// above come back as a typed error alongside the status; network errors,
// 429 and 5xx are retried first.
func (s *Session) Get(ctx context.Context, rawURL string) (int, []byte, error) {
	type result struct {
		status int
		body   []byte
	}

	res, err := retry.DoWithResult(ctx, s.retry, func(ctx context.Context) (result, error) {
		resp, err := s.do(ctx, rawURL)
		if err != nil {
			return result{}, err
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
		if err != nil {
			return result{status: resp.StatusCode}, errs.Wrap(errs.KindNetwork, "read body", err)
		}

		if statusErr := errs.FromStatus("get "+rawURL, resp.StatusCode); statusErr != nil {
			return result{status: resp.StatusCode, body: body}, statusErr
		}
		return result{status: resp.StatusCode, body: body}, nil
	})
	return res.status, res.body, err
}

// Probe fetches url once, following redirects, and reports where it ended up.
// Non-2xx statuses are not errors here; the caller interprets them.
func (s *Session) Probe(ctx context.Context, rawURL string) (string, int, error) {
	resp, err := s.do(ctx, rawURL)
	if err != nil {
		return "", 0, err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodySize))

	return resp.Request.URL.String(), resp.StatusCode, nil
}

// Close releases idle connections held by the session
func (s *Session) Close() error {
	s.httpClient.CloseIdleConnections()
	return nil
}

func (s *Session) do(ctx context.Context, rawURL string) (*http.Response, error) {
	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			return nil, errs.Wrap(errs.KindNetwork, "rate limit wait", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, errs.Wrap(errs.KindUnknown, "build request", err)
	}
	for key, value := range s.headers {
		req.Header.Set(key, value)
	}

	start := time.Now()
	resp, err := s.httpClient.Do(req)
	if err != nil {
		s.logger.WarnWithFields("HTTP request failed", map[string]interface{}{
			"url":      rawURL,
			"error":    err.Error(),
			"duration": time.Since(start),
		})
		return nil, errs.Wrap(errs.KindNetwork, "get "+rawURL, err)
	}

	logger.LogRequest(s.logger, req.Method, rawURL, resp.StatusCode, time.Since(start))
	return resp, nil
}
