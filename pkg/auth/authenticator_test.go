package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cafecrawler/pkg/cafe"
	"cafecrawler/pkg/cafe/cafetest"
	errs "cafecrawler/pkg/errors"
	"cafecrawler/pkg/logger"
)

func newTestAuthenticator(server *cafetest.MockCafeServer, account *Account) *Authenticator {
	return NewAuthenticator(account, server.URL(), server.URL()+cafetest.LoginCheckPath,
		2*time.Second, cafe.SessionConfig{Timeout: 2 * time.Second}, logger.NewTestLogger())
}

func TestAuthenticateSuccess(t *testing.T) {
	server := cafetest.NewMockCafeServer("123")
	defer server.Close()
	server.RequireLoginCookie("aut_value_1234567890")

	session, err := newTestAuthenticator(server, testAccount("main")).Authenticate(context.Background())
	require.NoError(t, err)
	require.NotNil(t, session)
	defer session.Close()

	assert.Equal(t, 1, server.RequestCount())
}

func TestAuthenticatedSessionSendsCafeReferer(t *testing.T) {
	var referer string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/article" {
			referer = r.Header.Get("Referer")
		}
		w.Write([]byte("<html></html>"))
	}))
	defer server.Close()

	a := NewAuthenticator(testAccount("main"), server.URL, server.URL+"/check", time.Second, cafe.SessionConfig{}, nil)
	session, err := a.Authenticate(context.Background())
	require.NoError(t, err)
	defer session.Close()

	_, _, err = session.Get(context.Background(), server.URL+"/article")
	require.NoError(t, err)
	assert.Equal(t, server.URL+"/", referer)
}

func TestAuthenticateDoesNotMutateSharedCookieURLs(t *testing.T) {
	server := cafetest.NewMockCafeServer("123")
	defer server.Close()

	shared := make([]string, 1, 4)
	shared[0] = server.URL()
	cfg := cafe.SessionConfig{Timeout: 2 * time.Second, CookieURLs: shared}

	a := NewAuthenticator(testAccount("main"), "https://base.example", server.URL()+cafetest.LoginCheckPath, 2*time.Second, cfg, nil)
	session, err := a.Authenticate(context.Background())
	require.NoError(t, err)
	defer session.Close()

	assert.Equal(t, []string{server.URL()}, shared)
	assert.Equal(t, []string{server.URL(), "", "", ""}, shared[:4])
}

func TestAuthenticateExpiredCookies(t *testing.T) {
	server := cafetest.NewMockCafeServer("123")
	defer server.Close()
	server.RequireLoginCookie("a_different_cookie")

	session, err := newTestAuthenticator(server, testAccount("main")).Authenticate(context.Background())
	require.Error(t, err)
	assert.Nil(t, session)
	assert.True(t, errs.IsKind(err, errs.KindAuth))
	assert.Contains(t, err.Error(), "login page")
}

func TestAuthenticateInvalidAccount(t *testing.T) {
	server := cafetest.NewMockCafeServer("123")
	defer server.Close()

	_, err := newTestAuthenticator(server, &Account{Name: "main"}).Authenticate(context.Background())
	require.Error(t, err)
	assert.True(t, errs.IsKind(err, errs.KindAuth))
	assert.Zero(t, server.RequestCount())
}

func TestAuthenticateForbidden(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	a := NewAuthenticator(testAccount("main"), server.URL, server.URL+"/check", time.Second, cafe.SessionConfig{}, nil)
	_, err := a.Authenticate(context.Background())
	require.Error(t, err)

	var e *errs.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, errs.KindAuth, e.Kind)
	assert.Equal(t, http.StatusForbidden, e.Code)
}

func TestAuthenticateTimeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	a := NewAuthenticator(testAccount("main"), server.URL, server.URL+"/check", 50*time.Millisecond, cafe.SessionConfig{}, nil)
	_, err := a.Authenticate(context.Background())
	require.Error(t, err)
	assert.True(t, errs.IsKind(err, errs.KindAuth))
}

func TestCookieOrigins(t *testing.T) {
	origins := cookieOrigins([]string{
		"https://cafe.naver.com",
		"https://cafe.naver.com/MyCafeIntro.nhn",
		"https://nid.naver.com/nidlogin.login",
		"::not a url",
	})
	assert.Equal(t, []string{"https://cafe.naver.com/", "https://nid.naver.com/"}, origins)
}
