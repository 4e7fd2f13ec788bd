package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"fa-helper/internal/repository"
	"fa-helper/internal/riot"
	"fa-helper/internal/service"
)

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	// The status line is already written, nothing useful to do on encode
	// failure.
	_ = json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

func decodeJSON(r *http.Request, dst any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(dst)
}

// respondServiceError maps an error onto the response taxonomy: validation
// errors become 400, missing records 404, upstream rejections keep their
// status and message, everything else is a generic 500.
func (s *Server) respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var apiErr *riot.APIError
	switch {
	case errors.Is(err, service.ErrValidation):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, repository.ErrNotFound):
		respondError(w, http.StatusNotFound, "not found")
	case errors.As(err, &apiErr):
		respondError(w, apiErr.StatusCode, apiErr.Message)
	default:
		s.logger.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		respondError(w, http.StatusInternalServerError, "internal error")
	}
}
