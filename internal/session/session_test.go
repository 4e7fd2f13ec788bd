package session_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"fa-helper/internal/domain"
	"fa-helper/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requestWithCookie(name, value string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: name, Value: value})
	return r
}

func TestFromRequestPlainCookie(t *testing.T) {
	raw, _ := json.Marshal(domain.Session{PUUID: "puuid-1", GameName: "Ada", TagLine: "EUW"})
	r := requestWithCookie(session.CookieName, url.QueryEscape(string(raw)))

	sess := session.FromRequest(r)
	require.NotNil(t, sess)
	assert.Equal(t, "puuid-1", sess.PUUID)
	assert.Equal(t, "Ada", sess.GameName)
}

func TestFromRequestAuthCookiePreferred(t *testing.T) {
	plain, _ := json.Marshal(domain.Session{PUUID: "plain-puuid"})
	auth := `{"user":{"puuid":"auth-puuid","gameName":"Ada","tagLine":"EUW"}}`

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: session.AuthCookieName, Value: url.QueryEscape(auth)})
	r.AddCookie(&http.Cookie{Name: session.CookieName, Value: url.QueryEscape(string(plain))})

	sess := session.FromRequest(r)
	require.NotNil(t, sess)
	assert.Equal(t, "auth-puuid", sess.PUUID)
}

func TestFromRequestMalformedAuthFallsBack(t *testing.T) {
	plain, _ := json.Marshal(domain.Session{PUUID: "plain-puuid"})

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: session.AuthCookieName, Value: "not-json"})
	r.AddCookie(&http.Cookie{Name: session.CookieName, Value: url.QueryEscape(string(plain))})

	sess := session.FromRequest(r)
	require.NotNil(t, sess)
	assert.Equal(t, "plain-puuid", sess.PUUID)
}

func TestFromRequestNoCookies(t *testing.T) {
	assert.Nil(t, session.FromRequest(httptest.NewRequest(http.MethodGet, "/", nil)))
}

func TestFromRequestMalformedPlainCookie(t *testing.T) {
	assert.Nil(t, session.FromRequest(requestWithCookie(session.CookieName, "%%%garbage")))
	assert.Nil(t, session.FromRequest(requestWithCookie(session.CookieName, url.QueryEscape(`{"gameName":"no-puuid"}`))))
}

func TestWriteRoundTrip(t *testing.T) {
	w := httptest.NewRecorder()
	require.NoError(t, session.Write(w, &domain.Session{PUUID: "puuid-1", GameName: "Ada"}, false))

	resp := w.Result()
	cookies := resp.Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, session.CookieName, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)
	assert.Positive(t, cookies[0].MaxAge)

	r := requestWithCookie(cookies[0].Name, cookies[0].Value)
	sess := session.FromRequest(r)
	require.NotNil(t, sess)
	assert.Equal(t, "puuid-1", sess.PUUID)
}

func TestWriteAuthRoundTrip(t *testing.T) {
	w := httptest.NewRecorder()
	require.NoError(t, session.WriteAuth(w, &domain.Session{PUUID: "puuid-1", TagLine: "EUW"}, false))

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, session.AuthCookieName, cookies[0].Name)

	r := requestWithCookie(cookies[0].Name, cookies[0].Value)
	sess := session.FromRequest(r)
	require.NotNil(t, sess)
	assert.Equal(t, "puuid-1", sess.PUUID)
	assert.Equal(t, "EUW", sess.TagLine)
}
