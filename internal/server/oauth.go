package server

import (
	"net/http"

	"fa-helper/internal/constants"
	"fa-helper/internal/oauth"
	"fa-helper/internal/session"
)

func (s *Server) requireOAuth(w http.ResponseWriter) bool {
	if !s.cfg.HasOAuth() {
		respondError(w, http.StatusInternalServerError, "riot oauth not configured")
		return false
	}
	return true
}

func (s *Server) handleAuthorize(w http.ResponseWriter, r *http.Request) {
	if !s.requireOAuth(w) {
		return
	}

	hs, err := s.flow.Begin()
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}

	secure := r.TLS != nil
	setTransientCookie(w, oauth.StateCookie, hs.State, secure)
	setTransientCookie(w, oauth.NonceCookie, hs.Nonce, secure)
	setTransientCookie(w, oauth.VerifierCookie, hs.CodeVerifier, secure)

	if r.URL.Query().Get("debug") == "1" {
		respondJSON(w, http.StatusOK, map[string]string{"authorizeUrl": hs.AuthorizeURL})
		return
	}
	http.Redirect(w, r, hs.AuthorizeURL, http.StatusTemporaryRedirect)
}

func (s *Server) handleCallback(w http.ResponseWriter, r *http.Request) {
	if !s.requireOAuth(w) {
		return
	}

	code := r.URL.Query().Get("code")
	state := r.URL.Query().Get("state")
	if code == "" || state == "" {
		respondError(w, http.StatusBadRequest, "missing code or state")
		return
	}

	stateCookie, err := r.Cookie(oauth.StateCookie)
	if err != nil || stateCookie.Value != state {
		respondError(w, http.StatusBadRequest, "invalid state")
		return
	}
	verifierCookie, err := r.Cookie(oauth.VerifierCookie)
	if err != nil || verifierCookie.Value == "" {
		respondError(w, http.StatusBadRequest, "missing pkce verifier")
		return
	}

	tokens, err := s.flow.Exchange(r.Context(), code, verifierCookie.Value)
	if err != nil {
		s.logger.Warn().Err(err).Msg("token exchange failed")
		respondError(w, http.StatusBadGateway, "token exchange failed")
		return
	}

	secure := r.TLS != nil
	clearCookie(w, oauth.StateCookie)
	clearCookie(w, oauth.NonceCookie)
	clearCookie(w, oauth.VerifierCookie)

	if identity, err := tokens.Identity(); err != nil {
		s.logger.Warn().Err(err).Msg("id token had no usable identity")
	} else if err := session.WriteAuth(w, identity, secure); err != nil {
		s.respondServiceError(w, r, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:   "riot_connected",
		Value:  "1",
		Path:   "/",
		MaxAge: 3600,
	})
	http.Redirect(w, r, "/create-profile", http.StatusTemporaryRedirect)
}

func setTransientCookie(w http.ResponseWriter, name, value string, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(constants.OAuthCookieMaxAge.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearCookie(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{Name: name, Path: "/", MaxAge: -1})
}
