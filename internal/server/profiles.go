package server

import (
	"net/http"

	"fa-helper/internal/domain"
	"fa-helper/internal/session"

	"github.com/go-chi/chi/v5"
)

func (s *Server) handleListProfiles(w http.ResponseWriter, r *http.Request) {
	summaries, err := s.profiles.List(r.Context())
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, summaries)
}

func (s *Server) handleUpsertProfile(w http.ResponseWriter, r *http.Request) {
	var profile domain.Profile
	if err := decodeJSON(r, &profile); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if profile.PUUID == "" {
		respondError(w, http.StatusBadRequest, "puuid is required")
		return
	}

	if err := s.profiles.Upsert(r.Context(), &profile); err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// profileView is the detail-view shape: the stored profile plus an ownership
// flag, with the contact hidden from its owner (it is only meant for other
// viewers).
type profileView struct {
	*domain.Profile
	IsOwner bool `json:"isOwner"`
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	profile, err := s.profiles.GetBySlug(r.Context(), slug)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}

	view := profileView{Profile: profile}
	if sess := session.FromRequest(r); sess != nil && sess.PUUID == profile.PUUID {
		view.IsOwner = true
		view.Contact = ""
	}
	respondJSON(w, http.StatusOK, view)
}

// handleDeleteProfile removes one profile. Only the session owning the puuid
// may delete it; there is no slug-based fallback.
func (s *Server) handleDeleteProfile(w http.ResponseWriter, r *http.Request) {
	puuid := chi.URLParam(r, "puuid")

	sess := session.FromRequest(r)
	if sess == nil {
		respondError(w, http.StatusUnauthorized, "no session")
		return
	}
	if sess.PUUID != puuid {
		respondError(w, http.StatusForbidden, "profile belongs to another player")
		return
	}

	if err := s.profiles.Delete(r.Context(), puuid); err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (s *Server) handleDeleteAllProfiles(w http.ResponseWriter, r *http.Request) {
	if err := s.profiles.DeleteAll(r.Context()); err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
