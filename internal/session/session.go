// Package session derives the current player identity from request cookies.
package session

import (
	"encoding/json"
	"net/http"
	"net/url"

	"fa-helper/internal/constants"
	"fa-helper/internal/domain"
)

const (
	// CookieName holds a plain session payload set by the manual login form.
	CookieName = "fa_helper_session"
	// AuthCookieName holds the structured payload set by the OAuth callback.
	AuthCookieName = "auth_session"
)

// authPayload is the structured cookie shape, with the identity nested under
// a user object.
type authPayload struct {
	User domain.Session `json:"user"`
}

// FromRequest resolves the session from the request's cookies. The OAuth
// cookie takes priority over the plain one. Malformed cookie content means
// "no session", never an error.
func FromRequest(r *http.Request) *domain.Session {
	if c, err := r.Cookie(AuthCookieName); err == nil {
		if s := decodeAuth(c.Value); s != nil {
			return s
		}
	}

	c, err := r.Cookie(CookieName)
	if err != nil {
		return nil
	}
	raw, err := url.QueryUnescape(c.Value)
	if err != nil {
		return nil
	}
	var s domain.Session
	if err := json.Unmarshal([]byte(raw), &s); err != nil || s.PUUID == "" {
		return nil
	}
	return &s
}

func decodeAuth(value string) *domain.Session {
	raw, err := url.QueryUnescape(value)
	if err != nil {
		return nil
	}
	var payload authPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil || payload.User.PUUID == "" {
		return nil
	}
	return &payload.User
}

// Write sets the plain session cookie on the response.
func Write(w http.ResponseWriter, s *domain.Session, secure bool) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    url.QueryEscape(string(raw)),
		Path:     "/",
		MaxAge:   int(constants.SessionCookieMaxAge.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// WriteAuth sets the structured OAuth session cookie on the response.
func WriteAuth(w http.ResponseWriter, s *domain.Session, secure bool) error {
	raw, err := json.Marshal(authPayload{User: *s})
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     AuthCookieName,
		Value:    url.QueryEscape(string(raw)),
		Path:     "/",
		MaxAge:   int(constants.SessionCookieMaxAge.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}
