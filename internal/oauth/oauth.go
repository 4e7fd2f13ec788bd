// Package oauth implements the authorization-code-plus-PKCE login handshake
// against the Riot identity provider.
package oauth

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"fa-helper/internal/config"
	"fa-helper/internal/domain"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"
)

const (
	StateCookie    = "riot_oauth_state"
	NonceCookie    = "riot_oauth_nonce"
	VerifierCookie = "riot_pkce_verifier"
)

type Flow struct {
	cfg    *config.Config
	client *fasthttp.Client
	logger zerolog.Logger
}

func NewFlow(cfg *config.Config, logger zerolog.Logger) *Flow {
	return &Flow{
		cfg: cfg,
		client: &fasthttp.Client{
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
		},
		logger: logger,
	}
}

// Handshake carries the transient values of one authorization attempt.
type Handshake struct {
	State        string
	Nonce        string
	CodeVerifier string
	AuthorizeURL string
}

// Begin generates the state/nonce/verifier triple and builds the authorize
// redirect URL with an S256 code challenge.
func (f *Flow) Begin() (*Handshake, error) {
	state, err := gonanoid.New(32)
	if err != nil {
		return nil, fmt.Errorf("failed to generate state: %w", err)
	}
	nonce, err := gonanoid.New(32)
	if err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}
	verifier, err := gonanoid.New(64)
	if err != nil {
		return nil, fmt.Errorf("failed to generate verifier: %w", err)
	}

	u, err := url.Parse(f.cfg.RiotAuthURL)
	if err != nil {
		return nil, fmt.Errorf("invalid auth url: %w", err)
	}
	q := u.Query()
	q.Set("client_id", f.cfg.RiotClientID)
	q.Set("redirect_uri", f.cfg.RiotRedirectURI)
	q.Set("response_type", "code")
	q.Set("scope", "openid offline_access")
	q.Set("state", state)
	q.Set("nonce", nonce)
	q.Set("code_challenge", Challenge(verifier))
	q.Set("code_challenge_method", "S256")
	q.Set("prompt", "consent")
	u.RawQuery = q.Encode()

	return &Handshake{
		State:        state,
		Nonce:        nonce,
		CodeVerifier: verifier,
		AuthorizeURL: u.String(),
	}, nil
}

// Challenge computes the S256 code challenge for a PKCE verifier.
func Challenge(verifier string) string {
	sum := sha256.Sum256([]byte(verifier))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}

// Tokens is the identity provider's token response.
type Tokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	IDToken      string `json:"id_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
}

// Exchange trades the authorization code for tokens using the stored PKCE
// verifier.
func (f *Flow) Exchange(ctx context.Context, code, verifier string) (*Tokens, error) {
	form := url.Values{}
	form.Set("grant_type", "authorization_code")
	form.Set("code", code)
	form.Set("redirect_uri", f.cfg.RiotRedirectURI)
	form.Set("code_verifier", verifier)

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(f.cfg.RiotTokenURL)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/x-www-form-urlencoded")
	basic := base64.StdEncoding.EncodeToString([]byte(f.cfg.RiotClientID + ":" + f.cfg.RiotClientSecret))
	req.Header.Set("Authorization", "Basic "+basic)
	req.SetBodyString(form.Encode())

	deadline, ok := ctx.Deadline()
	if ok {
		if err := f.client.DoDeadline(req, resp, deadline); err != nil {
			return nil, fmt.Errorf("token exchange request failed: %w", err)
		}
	} else {
		if err := f.client.Do(req, resp); err != nil {
			return nil, fmt.Errorf("token exchange request failed: %w", err)
		}
	}

	if resp.StatusCode() != fasthttp.StatusOK {
		f.logger.Warn().Int("status", resp.StatusCode()).Msg("token exchange rejected")
		return nil, fmt.Errorf("token exchange failed with status %d", resp.StatusCode())
	}

	var tokens Tokens
	if err := json.Unmarshal(resp.Body(), &tokens); err != nil {
		return nil, fmt.Errorf("token response decode failed: %w", err)
	}
	return &tokens, nil
}

// Identity extracts the player identity from the ID token's claims. The
// token was just received over TLS from the provider, so the signature is
// not re-verified here.
func (t *Tokens) Identity() (*domain.Session, error) {
	parts := strings.Split(t.IDToken, ".")
	if len(parts) != 3 {
		return nil, errors.New("malformed id token")
	}
	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return nil, fmt.Errorf("id token payload decode failed: %w", err)
	}
	var claims struct {
		Sub      string `json:"sub"`
		GameName string `json:"game_name"`
		TagLine  string `json:"tag_line"`
	}
	if err := json.Unmarshal(payload, &claims); err != nil {
		return nil, fmt.Errorf("id token claims decode failed: %w", err)
	}
	if claims.Sub == "" {
		return nil, errors.New("id token missing subject")
	}
	return &domain.Session{PUUID: claims.Sub, GameName: claims.GameName, TagLine: claims.TagLine}, nil
}
