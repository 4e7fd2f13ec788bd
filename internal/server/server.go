// Package server exposes the JSON HTTP surface.
package server

import (
	"net/http"

	"fa-helper/internal/config"
	"fa-helper/internal/oauth"
	"fa-helper/internal/riot"
	"fa-helper/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

type Server struct {
	cfg       *config.Config
	profiles  *service.ProfileService
	aggregate *service.AggregateService
	riot      *riot.Client
	flow      *oauth.Flow
	router    chi.Router
	logger    zerolog.Logger
}

func New(
	cfg *config.Config,
	profiles *service.ProfileService,
	aggregate *service.AggregateService,
	riotClient *riot.Client,
	flow *oauth.Flow,
	logger zerolog.Logger,
) *Server {
	s := &Server{
		cfg:       cfg,
		profiles:  profiles,
		aggregate: aggregate,
		riot:      riotClient,
		flow:      flow,
		router:    chi.NewRouter(),
		logger:    logger,
	}
	s.routes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Get("/health", s.handleHealth)

	s.router.Route("/api", func(r chi.Router) {
		r.Route("/profiles", func(r chi.Router) {
			r.Get("/", s.handleListProfiles)
			r.Post("/", s.handleUpsertProfile)
			r.Delete("/", s.handleDeleteAllProfiles)
			r.Get("/{slug}", s.handleGetProfile)
			r.Delete("/by-puuid/{puuid}", s.handleDeleteProfile)
		})

		r.Get("/session", s.handleGetSession)
		r.Post("/session", s.handlePostSession)

		r.Route("/riot", func(r chi.Router) {
			r.Get("/aggregate/by-name/{platform}/{name}", s.handleAggregate)
			r.Get("/account/by-riot-id/{gameName}/{tagLine}", s.handleAccountByRiotID)
			r.Get("/account/region/by-game/{game}/by-puuid/{puuid}", s.handleActiveRegion)
			r.Get("/summoner/by-id/{platform}/{id}", s.handleSummonerByID)
			r.Get("/summoner/by-name/{platform}/{name}", s.handleSummonerByName)
			r.Get("/authorize", s.handleAuthorize)
			r.Get("/callback", s.handleCallback)
		})
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
