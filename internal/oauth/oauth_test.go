package oauth_test

import (
	"encoding/base64"
	"net/url"
	"testing"

	"fa-helper/internal/config"
	"fa-helper/internal/oauth"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		RiotClientID:     "client-id",
		RiotClientSecret: "client-secret",
		RiotRedirectURI:  "https://fa-helper.example/api/riot/callback",
		RiotAuthURL:      "https://auth.riotgames.com/authorize",
		RiotTokenURL:     "https://auth.riotgames.com/token",
	}
}

func TestChallengeKnownVector(t *testing.T) {
	// RFC 7636 appendix B.
	verifier := "dBjftJeZ4CVP-mB92K27uhbUJU1p1r_wW1gFWFOEjXk"
	assert.Equal(t, "E9Melhoa2OwvFrEMTJguCHaoeK1t8URWbuGJSstw-cM", oauth.Challenge(verifier))
}

func TestBegin(t *testing.T) {
	flow := oauth.NewFlow(testConfig(), zerolog.Nop())

	hs, err := flow.Begin()
	require.NoError(t, err)

	assert.Len(t, hs.State, 32)
	assert.Len(t, hs.Nonce, 32)
	assert.Len(t, hs.CodeVerifier, 64)

	u, err := url.Parse(hs.AuthorizeURL)
	require.NoError(t, err)
	q := u.Query()
	assert.Equal(t, "client-id", q.Get("client_id"))
	assert.Equal(t, "code", q.Get("response_type"))
	assert.Equal(t, "openid offline_access", q.Get("scope"))
	assert.Equal(t, hs.State, q.Get("state"))
	assert.Equal(t, oauth.Challenge(hs.CodeVerifier), q.Get("code_challenge"))
	assert.Equal(t, "S256", q.Get("code_challenge_method"))
}

func TestBeginUniquePerAttempt(t *testing.T) {
	flow := oauth.NewFlow(testConfig(), zerolog.Nop())

	first, err := flow.Begin()
	require.NoError(t, err)
	second, err := flow.Begin()
	require.NoError(t, err)

	assert.NotEqual(t, first.State, second.State)
	assert.NotEqual(t, first.CodeVerifier, second.CodeVerifier)
}

func fakeIDToken(t *testing.T, payload string) string {
	t.Helper()
	enc := base64.RawURLEncoding.EncodeToString
	return enc([]byte(`{"alg":"none"}`)) + "." + enc([]byte(payload)) + ".sig"
}

func TestTokensIdentity(t *testing.T) {
	tokens := &oauth.Tokens{
		IDToken: fakeIDToken(t, `{"sub":"puuid-1","game_name":"Ada","tag_line":"EUW"}`),
	}

	identity, err := tokens.Identity()
	require.NoError(t, err)
	assert.Equal(t, "puuid-1", identity.PUUID)
	assert.Equal(t, "Ada", identity.GameName)
	assert.Equal(t, "EUW", identity.TagLine)
}

func TestTokensIdentityRejectsBadTokens(t *testing.T) {
	_, err := (&oauth.Tokens{IDToken: "garbage"}).Identity()
	assert.Error(t, err)

	_, err = (&oauth.Tokens{IDToken: fakeIDToken(t, `{"game_name":"no-subject"}`)}).Identity()
	assert.Error(t, err)
}
