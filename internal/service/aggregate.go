package service

import (
	"context"
	"errors"

	"fa-helper/internal/aggregator"
	"fa-helper/internal/constants"
	"fa-helper/internal/rank"
	"fa-helper/internal/repository"

	"github.com/rs/zerolog"
)

// AggregateService runs the stats aggregation for a player, seeding it with
// the best standings already on record so a bad streak never erases them.
type AggregateService struct {
	agg    *aggregator.Aggregator
	repo   *repository.ProfileRepository
	logger zerolog.Logger
}

func NewAggregateService(agg *aggregator.Aggregator, repo *repository.ProfileRepository, logger zerolog.Logger) *AggregateService {
	return &AggregateService{agg: agg, repo: repo, logger: logger}
}

// ByName aggregates stats for "gameName#tagLine" on the given platform. The
// result is returned to the caller, not persisted: the client owns the
// profile write.
func (s *AggregateService) ByName(ctx context.Context, platform, gameName, tagLine string) (*aggregator.Result, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	in := aggregator.Input{
		Platform: platform,
		GameName: gameName,
		TagLine:  tagLine,
	}

	result, err := s.agg.Aggregate(ctx, in)
	if err != nil {
		return nil, err
	}

	// Second pass against the store: the puuid is only known after the
	// account resolves, and the stored bests cap how far ranks may drop.
	existing, err := s.repo.GetByPUUID(ctx, result.Account.PUUID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		s.logger.Warn().Err(err).Str("puuid", result.Account.PUUID).Msg("best rank lookup failed")
	}
	if existing != nil && existing.Riot != nil {
		result.Snapshot.BestSoloRank = rank.PickBest(existing.Riot.BestSoloRank, result.Snapshot.SoloRank)
		result.Snapshot.BestFlexRank = rank.PickBest(existing.Riot.BestFlexRank, result.Snapshot.FlexRank)
	}

	s.logger.Info().
		Str("puuid", result.Account.PUUID).
		Str("platform", platform).
		Str("rank", result.Snapshot.Rank).
		Msg("aggregation completed")
	return result, nil
}
