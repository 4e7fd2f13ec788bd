package server_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"testing"

	"fa-helper/internal/aggregator"
	"fa-helper/internal/config"
	"fa-helper/internal/database"
	"fa-helper/internal/domain"
	"fa-helper/internal/oauth"
	"fa-helper/internal/repository"
	"fa-helper/internal/riot"
	"fa-helper/internal/server"
	"fa-helper/internal/service"
	"fa-helper/internal/session"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, cfg *config.Config) *server.Server {
	t.Helper()

	db, err := database.Open(filepath.Join(t.TempDir(), "test.db"), zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	log := zerolog.Nop()
	repo := repository.NewProfileRepository(db, log)
	riotClient := riot.NewClient(cfg)
	agg := aggregator.New(riotClient, log)

	return server.New(
		cfg,
		service.NewProfileService(repo, log),
		service.NewAggregateService(agg, repo, log),
		riotClient,
		oauth.NewFlow(cfg, log),
		log,
	)
}

func doJSON(t *testing.T, srv http.Handler, method, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	r := httptest.NewRequest(method, path, &buf)
	r.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		r.AddCookie(c)
	}
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, r)
	return w
}

func sessionCookie(t *testing.T, puuid string) *http.Cookie {
	t.Helper()
	raw, err := json.Marshal(domain.Session{PUUID: puuid})
	require.NoError(t, err)
	return &http.Cookie{Name: session.CookieName, Value: url.QueryEscape(string(raw))}
}

func sampleProfile(puuid, name string) map[string]any {
	return map[string]any{
		"puuid":       puuid,
		"name":        name,
		"description": "mid main",
		"qualities":   []string{"shotcalling", "vision control"},
		"roles":       []string{"mid", "top"},
		"vods": []map[string]string{
			{"url": "https://youtu.be/dQw4w9WgXcQ", "title": "ranked vod"},
		},
		"contact": "discord: ada#1234",
	}
}

func TestUpsertRequiresPUUID(t *testing.T) {
	srv := newTestServer(t, &config.Config{})

	w := doJSON(t, srv, http.MethodPost, "/api/profiles", map[string]any{"name": "Ada#EUW"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpsertRejectsDuplicateQualities(t *testing.T) {
	srv := newTestServer(t, &config.Config{})

	p := sampleProfile("puuid-1", "Ada#EUW")
	p["qualities"] = []string{"shotcalling", "shotcalling"}
	w := doJSON(t, srv, http.MethodPost, "/api/profiles", p)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpsertRejectsUnknownRole(t *testing.T) {
	srv := newTestServer(t, &config.Config{})

	p := sampleProfile("puuid-1", "Ada#EUW")
	p["roles"] = []string{"coach"}
	w := doJSON(t, srv, http.MethodPost, "/api/profiles", p)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProfileRoundTripBySlug(t *testing.T) {
	srv := newTestServer(t, &config.Config{})

	w := doJSON(t, srv, http.MethodPost, "/api/profiles", sampleProfile("puuid-1", "Ada#EUW"))
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, srv, http.MethodGet, "/api/profiles/ada-euw", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var got struct {
		domain.Profile
		IsOwner bool `json:"isOwner"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "puuid-1", got.PUUID)
	assert.Equal(t, "Ada#EUW", got.Name)
	assert.Equal(t, []string{"shotcalling", "vision control"}, got.Qualities)
	assert.Equal(t, []string{"Mid", "Top"}, got.Roles, "roles are normalized")
	require.Len(t, got.VODs, 1)
	assert.Equal(t, "dQw4w9WgXcQ", got.VODs[0].ID, "vod id derived from url")
	assert.NotEmpty(t, got.VODs[0].Thumbnail)
	assert.Equal(t, "discord: ada#1234", got.Contact, "contact visible to other viewers")
	assert.False(t, got.IsOwner)
}

func TestProfileDetailHidesContactFromOwner(t *testing.T) {
	srv := newTestServer(t, &config.Config{})

	require.Equal(t, http.StatusOK,
		doJSON(t, srv, http.MethodPost, "/api/profiles", sampleProfile("puuid-1", "Ada#EUW")).Code)

	w := doJSON(t, srv, http.MethodGet, "/api/profiles/ada-euw", nil, sessionCookie(t, "puuid-1"))
	require.Equal(t, http.StatusOK, w.Code)

	var got struct {
		Contact string `json:"contact"`
		IsOwner bool   `json:"isOwner"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.True(t, got.IsOwner)
	assert.Empty(t, got.Contact)
}

func TestGetUnknownSlugReturns404(t *testing.T) {
	srv := newTestServer(t, &config.Config{})

	w := doJSON(t, srv, http.MethodGet, "/api/profiles/no-such-player", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListTrimsSnapshots(t *testing.T) {
	srv := newTestServer(t, &config.Config{})

	p := sampleProfile("puuid-1", "Ada#EUW")
	p["riot"] = map[string]any{
		"soloRank":          "GOLD II 10 LP",
		"championMasteries": []map[string]any{{"championId": 103}},
		"recentMatchDetails": []map[string]any{
			{"metadata": map[string]any{"matchId": "m1"}, "info": map[string]any{"gameMode": "CLASSIC", "gameDuration": 1800}},
			{"metadata": map[string]any{"matchId": "m2"}, "info": map[string]any{"gameMode": "ARAM", "gameDuration": 1200}},
			{"metadata": map[string]any{"matchId": "m3"}, "info": map[string]any{"gameMode": "CLASSIC", "gameDuration": 2000}},
		},
	}
	require.Equal(t, http.StatusOK, doJSON(t, srv, http.MethodPost, "/api/profiles", p).Code)

	w := doJSON(t, srv, http.MethodGet, "/api/profiles", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var list []struct {
		PUUID string `json:"puuid"`
		Riot  struct {
			SoloRank           string            `json:"soloRank"`
			ChampionMasteries  []json.RawMessage `json:"championMasteries"`
			RecentMatchDetails []json.RawMessage `json:"recentMatchDetails"`
		} `json:"riot"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, "GOLD II 10 LP", list[0].Riot.SoloRank)
	assert.Empty(t, list[0].Riot.ChampionMasteries)
	assert.Len(t, list[0].Riot.RecentMatchDetails, 2)
}

func TestDeleteRequiresMatchingSession(t *testing.T) {
	srv := newTestServer(t, &config.Config{})

	require.Equal(t, http.StatusOK,
		doJSON(t, srv, http.MethodPost, "/api/profiles", sampleProfile("puuid-1", "Ada#EUW")).Code)

	t.Run("no session", func(t *testing.T) {
		w := doJSON(t, srv, http.MethodDelete, "/api/profiles/by-puuid/puuid-1", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("other player's session", func(t *testing.T) {
		w := doJSON(t, srv, http.MethodDelete, "/api/profiles/by-puuid/puuid-1", nil, sessionCookie(t, "puuid-2"))
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("owner", func(t *testing.T) {
		w := doJSON(t, srv, http.MethodDelete, "/api/profiles/by-puuid/puuid-1", nil, sessionCookie(t, "puuid-1"))
		assert.Equal(t, http.StatusOK, w.Code)

		w = doJSON(t, srv, http.MethodGet, "/api/profiles/ada-euw", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("deleting an absent profile is a no-op", func(t *testing.T) {
		w := doJSON(t, srv, http.MethodDelete, "/api/profiles/by-puuid/puuid-1", nil, sessionCookie(t, "puuid-1"))
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestDeleteAll(t *testing.T) {
	srv := newTestServer(t, &config.Config{})

	require.Equal(t, http.StatusOK,
		doJSON(t, srv, http.MethodPost, "/api/profiles", sampleProfile("puuid-1", "Ada#EUW")).Code)
	require.Equal(t, http.StatusOK,
		doJSON(t, srv, http.MethodPost, "/api/profiles", sampleProfile("puuid-2", "Bob#NA")).Code)

	w := doJSON(t, srv, http.MethodDelete, "/api/profiles", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, srv, http.MethodGet, "/api/profiles", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list []json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Empty(t, list)
}

func TestSessionEndpoints(t *testing.T) {
	srv := newTestServer(t, &config.Config{})

	t.Run("no session", func(t *testing.T) {
		w := doJSON(t, srv, http.MethodGet, "/api/session", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"session":null}`, w.Body.String())
	})

	t.Run("post requires puuid", func(t *testing.T) {
		w := doJSON(t, srv, http.MethodPost, "/api/session", map[string]string{"gameName": "Ada"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("round trip", func(t *testing.T) {
		w := doJSON(t, srv, http.MethodPost, "/api/session", domain.Session{PUUID: "puuid-1", GameName: "Ada", TagLine: "EUW"})
		require.Equal(t, http.StatusOK, w.Code)
		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)

		w = doJSON(t, srv, http.MethodGet, "/api/session", nil, cookies[0])
		require.Equal(t, http.StatusOK, w.Code)

		var got struct {
			Session *domain.Session `json:"session"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		require.NotNil(t, got.Session)
		assert.Equal(t, "puuid-1", got.Session.PUUID)
		assert.Equal(t, "EUW", got.Session.TagLine)
	})
}

func TestRiotEndpointsRequireConfiguration(t *testing.T) {
	srv := newTestServer(t, &config.Config{})

	paths := []string{
		"/api/riot/aggregate/by-name/euw1/Ada%23EUW",
		"/api/riot/account/by-riot-id/Ada/EUW",
		"/api/riot/summoner/by-id/euw1/summ-1",
		"/api/riot/summoner/by-name/euw1/Ada",
		"/api/riot/account/region/by-game/lol/by-puuid/puuid-1",
	}
	for _, path := range paths {
		w := doJSON(t, srv, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusInternalServerError, w.Code, "path %s", path)
	}
}

func TestAuthorizeRequiresOAuthConfig(t *testing.T) {
	srv := newTestServer(t, &config.Config{})

	w := doJSON(t, srv, http.MethodGet, "/api/riot/authorize", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestAuthorizeSetsHandshakeCookies(t *testing.T) {
	cfg := &config.Config{
		RiotClientID:     "client-id",
		RiotClientSecret: "client-secret",
		RiotRedirectURI:  "https://fa-helper.example/api/riot/callback",
		RiotAuthURL:      "https://auth.riotgames.com/authorize",
		RiotTokenURL:     "https://auth.riotgames.com/token",
	}
	srv := newTestServer(t, cfg)

	w := doJSON(t, srv, http.MethodGet, "/api/riot/authorize", nil)
	require.Equal(t, http.StatusTemporaryRedirect, w.Code)

	names := map[string]bool{}
	for _, c := range w.Result().Cookies() {
		names[c.Name] = true
	}
	assert.True(t, names[oauth.StateCookie])
	assert.True(t, names[oauth.NonceCookie])
	assert.True(t, names[oauth.VerifierCookie])

	location := w.Header().Get("Location")
	assert.Contains(t, location, "code_challenge_method=S256")
}

func TestCallbackRejectsStateMismatch(t *testing.T) {
	cfg := &config.Config{
		RiotClientID:     "client-id",
		RiotClientSecret: "client-secret",
		RiotRedirectURI:  "https://fa-helper.example/api/riot/callback",
		RiotAuthURL:      "https://auth.riotgames.com/authorize",
		RiotTokenURL:     "https://auth.riotgames.com/token",
	}
	srv := newTestServer(t, cfg)

	path := fmt.Sprintf("/api/riot/callback?code=abc&state=%s", "mismatched")
	w := doJSON(t, srv, http.MethodGet, path, nil, &http.Cookie{Name: oauth.StateCookie, Value: "expected"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
