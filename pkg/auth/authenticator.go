package auth

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"cafecrawler/pkg/cafe"
	errs "cafecrawler/pkg/errors"
	"cafecrawler/pkg/logger"
)

// loginPageMarker appears in every URL of the identity provider's login form
const loginPageMarker = "nidlogin"

// Authenticator turns a stored account into a confirmed session
type Authenticator struct {
	account  *Account
	session  cafe.SessionConfig
	baseURL  string
	checkURL string
	timeout  time.Duration
	logger   logger.Logger
}

// NewAuthenticator creates an authenticator that confirms the login by
// fetching checkURL within timeout
func NewAuthenticator(account *Account, baseURL, checkURL string, timeout time.Duration, session cafe.SessionConfig, log logger.Logger) *Authenticator {
	if account != nil && account.UserAgent != "" {
		session.UserAgent = account.UserAgent
	}
	return &Authenticator{
		account:  account,
		session:  session,
		baseURL:  baseURL,
		checkURL: checkURL,
		timeout:  timeout,
		logger:   logger.OrNop(log),
	}
}

// Authenticate opens a session carrying the account cookies and confirms it
// is logged in. Every failure is returned as an auth error and no session
// is left open.
func (a *Authenticator) Authenticate(ctx context.Context) (*cafe.Session, error) {
	const op = "authenticate"

	if err := a.account.Validate(); err != nil {
		return nil, errs.Wrap(errs.KindAuth, op, err)
	}

	cfg := a.session
	cfg.CookieURLs = cookieOrigins(append(append([]string(nil), cfg.CookieURLs...), a.baseURL, a.checkURL))

	session, err := cafe.NewSession(cfg, a.account.Cookies(), a.logger)
	if err != nil {
		return nil, errs.Wrap(errs.KindAuth, op, err)
	}

	if err := a.confirm(ctx, session); err != nil {
		_ = session.Close()
		return nil, err
	}

	// article and comment views are rejected without a cafe referer
	if a.baseURL != "" {
		session.SetHeader("Referer", strings.TrimSuffix(a.baseURL, "/")+"/")
	}

	a.logger.InfoWithFields("Login confirmed", map[string]interface{}{
		"account": a.account.Name,
	})
	return session, nil
}

func (a *Authenticator) confirm(ctx context.Context, session *cafe.Session) error {
	const op = "confirm login"

	if a.checkURL == "" {
		return nil
	}

	timeout := a.timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	finalURL, status, err := session.Probe(ctx, a.checkURL)
	if err != nil {
		return errs.Wrap(errs.KindAuth, op, err)
	}

	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return &errs.Error{Kind: errs.KindAuth, Op: op, Code: status, Message: "login cookies were rejected"}
	case strings.Contains(strings.ToLower(finalURL), loginPageMarker):
		return errs.New(errs.KindAuth, op, "redirected to the login page, cookies have expired")
	case status >= 400:
		return &errs.Error{Kind: errs.KindAuth, Op: op, Code: status, Message: "login check failed"}
	}
	return nil
}

// cookieOrigins reduces urls to their distinct scheme://host origins
func cookieOrigins(urls []string) []string {
	seen := make(map[string]bool)
	var origins []string
	for _, raw := range urls {
		u, err := url.Parse(raw)
		if err != nil || u.Host == "" {
			continue
		}
		origin := u.Scheme + "://" + u.Host + "/"
		if !seen[origin] {
			seen[origin] = true
			origins = append(origins, origin)
		}
	}
	return origins
}
