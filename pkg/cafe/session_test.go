package cafe

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "cafecrawler/pkg/errors"
	"cafecrawler/pkg/logger"
	"cafecrawler/pkg/ratelimit"
	"cafecrawler/pkg/retry"
)

func fastRetry() *retry.Config {
	return &retry.Config{
		MaxAttempts: 3,
		Backoff:     &retry.ConstantBackoff{Delay: time.Millisecond},
		RetryIf:     retry.DefaultRetryIf,
	}
}

func TestSessionSendsCookiesAndHeaders(t *testing.T) {
	var gotCookie, gotAgent, gotLang string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if c, err := r.Cookie("NID_AUT"); err == nil {
			gotCookie = c.Value
		}
		gotAgent = r.Header.Get("User-Agent")
		gotLang = r.Header.Get("Accept-Language")
		w.Write([]byte("ok"))
	}))
	defer server.Close()

	session, err := NewSession(SessionConfig{
		UserAgent:  "TestAgent/1.0",
		CookieURLs: []string{server.URL},
	}, []*http.Cookie{{Name: "NID_AUT", Value: "secret", Path: "/"}}, logger.NewTestLogger())
	require.NoError(t, err)
	defer session.Close()

	status, body, err := session.Get(context.Background(), server.URL+"/page")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", string(body))
	assert.Equal(t, "secret", gotCookie)
	assert.Equal(t, "TestAgent/1.0", gotAgent)
	assert.Contains(t, gotLang, "ko-KR")
}

func TestSessionSetHeaderAppliesToLaterRequests(t *testing.T) {
	var referers []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		referers = append(referers, r.Header.Get("Referer"))
		w.Write([]byte("ok"))
	}))
	defer server.Close()

	session, err := NewSession(SessionConfig{}, nil, nil)
	require.NoError(t, err)
	defer session.Close()

	_, _, err = session.Get(context.Background(), server.URL+"/first")
	require.NoError(t, err)

	session.SetHeader("Referer", "https://cafe.naver.com/")
	_, _, err = session.Get(context.Background(), server.URL+"/second")
	require.NoError(t, err)

	assert.Equal(t, []string{"", "https://cafe.naver.com/"}, referers)
}

func TestSessionRetriesServerErrors(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&hits, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("recovered"))
	}))
	defer server.Close()

	session, err := NewSession(SessionConfig{Retry: fastRetry()}, nil, nil)
	require.NoError(t, err)

	status, body, err := session.Get(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "recovered", string(body))
	assert.Equal(t, int32(3), atomic.LoadInt32(&hits))
}

func TestSessionDoesNotRetryNotFound(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		http.NotFound(w, r)
	}))
	defer server.Close()

	session, err := NewSession(SessionConfig{Retry: fastRetry()}, nil, nil)
	require.NoError(t, err)

	status, _, err := session.Get(context.Background(), server.URL)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, errs.KindNotFound, errs.KindOf(err))
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
}

func TestSessionGivesUpAfterMaxAttempts(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	session, err := NewSession(SessionConfig{Retry: fastRetry()}, nil, nil)
	require.NoError(t, err)

	_, _, err = session.Get(context.Background(), server.URL)
	require.Error(t, err)
	assert.True(t, errs.IsKind(err, errs.KindServerError))
	assert.Contains(t, err.Error(), "max retry attempts")
	assert.Equal(t, int32(3), atomic.LoadInt32(&hits))
}

func TestSessionProbeFollowsRedirect(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/check", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/nidlogin.login", http.StatusFound)
	})
	mux.HandleFunc("/nidlogin.login", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("login"))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	session, err := NewSession(SessionConfig{}, nil, nil)
	require.NoError(t, err)

	finalURL, status, err := session.Probe(context.Background(), server.URL+"/check")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, server.URL+"/nidlogin.login", finalURL)
}

func TestSessionHonorsLimiterCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer server.Close()

	limiter := ratelimit.NewInterval(time.Hour)
	session, err := NewSession(SessionConfig{Limiter: limiter, Retry: fastRetry()}, nil, nil)
	require.NoError(t, err)

	_, _, err = session.Get(context.Background(), server.URL)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, _, err = session.Get(ctx, server.URL)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestNewSessionRejectsBadCookieURL(t *testing.T) {
	_, err := NewSession(SessionConfig{CookieURLs: []string{"not-a-url"}}, nil, nil)
	assert.Error(t, err)
}
