package fx

import (
	"fa-helper/internal/aggregator"
	"fa-helper/internal/config"
	"fa-helper/internal/database"
	"fa-helper/internal/logger"
	"fa-helper/internal/oauth"
	"fa-helper/internal/repository"
	"fa-helper/internal/riot"
	"fa-helper/internal/server"
	"fa-helper/internal/service"

	"go.uber.org/fx"
)

func provideRiotAPI(client *riot.Client) aggregator.RiotAPI {
	return client
}

var Module = fx.Options(
	fx.Provide(logger.New),
	fx.Provide(config.Load),
	fx.Provide(database.New),
	// repos
	fx.Provide(repository.NewProfileRepository),
	// api client + login flow
	fx.Provide(riot.NewClient),
	fx.Provide(provideRiotAPI),
	fx.Provide(oauth.NewFlow),
	fx.Provide(aggregator.New),
	// svc
	fx.Provide(service.NewProfileService),
	fx.Provide(service.NewAggregateService),
	// server
	fx.Provide(server.New),
)
