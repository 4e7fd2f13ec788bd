package server

import (
	"net/http"
	"net/url"
	"strings"

	"fa-helper/internal/domain"
	"fa-helper/internal/riot"

	"github.com/go-chi/chi/v5"
)

func (s *Server) requireRiotKey(w http.ResponseWriter) bool {
	if !s.cfg.HasRiotKey() {
		respondError(w, http.StatusInternalServerError, "riot api not configured")
		return false
	}
	return true
}

// aggregateResponse pairs the resolved account with the stats snapshot.
type aggregateResponse struct {
	Account *riot.Account        `json:"account"`
	Riot    *domain.RiotSnapshot `json:"riot"`
}

func (s *Server) handleAggregate(w http.ResponseWriter, r *http.Request) {
	if !s.requireRiotKey(w) {
		return
	}

	platform := chi.URLParam(r, "platform")
	name, err := url.PathUnescape(chi.URLParam(r, "name"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid name")
		return
	}
	if platform == "" || name == "" {
		respondError(w, http.StatusBadRequest, "platform and name are required")
		return
	}

	// Name comes in as "gameName#tagLine"; a missing tag is tolerated.
	gameName := name
	tagLine := ""
	if i := strings.Index(name, "#"); i >= 0 {
		gameName = name[:i]
		tagLine = name[i+1:]
	}

	result, err := s.aggregate.ByName(r.Context(), platform, gameName, tagLine)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, aggregateResponse{Account: result.Account, Riot: result.Snapshot})
}

func (s *Server) handleAccountByRiotID(w http.ResponseWriter, r *http.Request) {
	if !s.requireRiotKey(w) {
		return
	}

	gameName, _ := url.PathUnescape(chi.URLParam(r, "gameName"))
	tagLine, _ := url.PathUnescape(chi.URLParam(r, "tagLine"))

	account, err := s.riot.AccountByRiotID(r.Context(), riot.DefaultRoutingRegion, gameName, tagLine)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, account)
}

func (s *Server) handleActiveRegion(w http.ResponseWriter, r *http.Request) {
	if !s.requireRiotKey(w) {
		return
	}

	game := chi.URLParam(r, "game")
	puuid := chi.URLParam(r, "puuid")

	shard, err := s.riot.ActiveShard(r.Context(), game, puuid)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, shard)
}

// summonerResponse adds the resolved profile-icon URL to the raw summoner.
type summonerResponse struct {
	IconURL  string         `json:"iconUrl"`
	IconID   int            `json:"iconId"`
	Summoner *riot.Summoner `json:"summoner"`
}

func (s *Server) handleSummonerByID(w http.ResponseWriter, r *http.Request) {
	if !s.requireRiotKey(w) {
		return
	}

	platform := chi.URLParam(r, "platform")
	id, _ := url.PathUnescape(chi.URLParam(r, "id"))

	summoner, err := s.riot.SummonerByID(r.Context(), platform, id)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, s.summonerView(r, summoner))
}

func (s *Server) handleSummonerByName(w http.ResponseWriter, r *http.Request) {
	if !s.requireRiotKey(w) {
		return
	}

	platform := chi.URLParam(r, "platform")
	name, _ := url.PathUnescape(chi.URLParam(r, "name"))

	summoner, err := s.riot.SummonerByName(r.Context(), platform, name)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, s.summonerView(r, summoner))
}

func (s *Server) summonerView(r *http.Request, summoner *riot.Summoner) summonerResponse {
	version := "14.1.1"
	if versions, err := s.riot.DataDragonVersions(r.Context()); err == nil && len(versions) > 0 {
		version = versions[0]
	} else {
		s.logger.Debug().Err(err).Msg("data dragon version lookup failed, using fallback")
	}
	return summonerResponse{
		IconURL:  riot.IconURL(version, summoner.ProfileIconID),
		IconID:   summoner.ProfileIconID,
		Summoner: summoner,
	}
}
