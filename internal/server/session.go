package server

import (
	"net/http"

	"fa-helper/internal/domain"
	"fa-helper/internal/session"
)

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess := session.FromRequest(r)
	respondJSON(w, http.StatusOK, map[string]*domain.Session{"session": sess})
}

func (s *Server) handlePostSession(w http.ResponseWriter, r *http.Request) {
	var sess domain.Session
	if err := decodeJSON(r, &sess); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if sess.PUUID == "" {
		respondError(w, http.StatusBadRequest, "puuid is required")
		return
	}

	if err := session.Write(w, &sess, r.TLS != nil); err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
