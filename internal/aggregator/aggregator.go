// Package aggregator assembles one profile-stats snapshot from an ordered
// sequence of Riot API calls, tolerating partial failure: only the initial
// account lookup is fatal, every later step degrades to a default.
package aggregator

import (
	"context"
	"encoding/json"
	"strings"

	"fa-helper/internal/constants"
	"fa-helper/internal/domain"
	"fa-helper/internal/rank"
	"fa-helper/internal/riot"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

const (
	queueSolo = "RANKED_SOLO_5x5"
	queueFlex = "RANKED_FLEX_SR"
)

// fallbackDataDragonVersion is used when the live version list is
// unreachable.
const fallbackDataDragonVersion = "14.1.1"

// RiotAPI is the slice of the Riot client the aggregator needs.
type RiotAPI interface {
	AccountByRiotID(ctx context.Context, region, gameName, tagLine string) (*riot.Account, error)
	SummonerByPUUID(ctx context.Context, platform, puuid string) (*riot.Summoner, error)
	LeagueEntriesBySummoner(ctx context.Context, platform, summonerID string) ([]riot.LeagueEntry, error)
	ChampionMasteriesByPUUID(ctx context.Context, platform, puuid string) ([]riot.ChampionMastery, error)
	MasteryScoreByPUUID(ctx context.Context, platform, puuid string) (int, error)
	ActiveShard(ctx context.Context, game, puuid string) (*riot.ActiveShard, error)
	MatchIDsByPUUID(ctx context.Context, region, puuid string, start, count int) ([]string, error)
	MatchByID(ctx context.Context, region, matchID string) (json.RawMessage, error)
	DataDragonVersions(ctx context.Context) ([]string, error)
}

type Aggregator struct {
	riot   RiotAPI
	logger zerolog.Logger
}

func New(client RiotAPI, logger zerolog.Logger) *Aggregator {
	return &Aggregator{riot: client, logger: logger}
}

// Input names the player and carries the previously stored best standings so
// they never move down.
type Input struct {
	Platform     string
	GameName     string
	TagLine      string
	PrevBestSolo string
	PrevBestFlex string
}

// Result pairs the resolved account with the assembled snapshot.
type Result struct {
	Account  *riot.Account
	Snapshot *domain.RiotSnapshot
}

// Aggregate runs the full sequence. The account lookup is the only hard
// dependency: its failure is returned as-is (a *riot.APIError for upstream
// rejections). Everything after it degrades gracefully.
func (a *Aggregator) Aggregate(ctx context.Context, in Input) (*Result, error) {
	routing := riot.RoutingRegionForPlatform(in.Platform)

	account, err := a.riot.AccountByRiotID(ctx, routing, in.GameName, in.TagLine)
	if err != nil {
		a.logger.Error().Err(err).
			Str("game_name", in.GameName).
			Str("tag_line", in.TagLine).
			Msg("account lookup failed")
		return nil, err
	}

	snap := &domain.RiotSnapshot{
		Platform:      in.Platform,
		RoutingRegion: routing,
		Rank:          rank.Unranked,
		SoloRank:      rank.Unranked,
		FlexRank:      rank.Unranked,
	}

	summoner, err := a.riot.SummonerByPUUID(ctx, in.Platform, account.PUUID)
	if err != nil {
		a.logger.Warn().Err(err).Str("puuid", account.PUUID).Msg("summoner lookup failed, continuing without")
		summoner = nil
	}
	if summoner != nil {
		snap.SummonerID = summoner.ID
		snap.AccountID = summoner.AccountID
		snap.IconID = summoner.ProfileIconID
		snap.IconURL = riot.IconURL(a.dataDragonVersion(ctx), summoner.ProfileIconID)
		snap.SummonerLevel = summoner.SummonerLevel
	}

	a.resolveStandings(ctx, snap, summoner)
	snap.BestSoloRank = rank.PickBest(in.PrevBestSolo, snap.SoloRank)
	snap.BestFlexRank = rank.PickBest(in.PrevBestFlex, snap.FlexRank)

	a.resolveMasteries(ctx, snap, account.PUUID)
	a.resolveMatches(ctx, snap, account.PUUID)

	return &Result{Account: account, Snapshot: snap}, nil
}

func (a *Aggregator) resolveStandings(ctx context.Context, snap *domain.RiotSnapshot, summoner *riot.Summoner) {
	if summoner == nil {
		return
	}
	entries, err := a.riot.LeagueEntriesBySummoner(ctx, snap.Platform, summoner.ID)
	if err != nil {
		a.logger.Warn().Err(err).Str("summoner_id", summoner.ID).Msg("league entries lookup failed")
		return
	}
	if len(entries) == 0 {
		return
	}

	var solo, flex *riot.LeagueEntry
	for i := range entries {
		switch entries[i].QueueType {
		case queueSolo:
			solo = &entries[i]
		case queueFlex:
			flex = &entries[i]
		}
	}

	if solo != nil {
		snap.SoloRank = rank.Format(solo.Tier, solo.Rank, solo.LeaguePoints)
	}
	if flex != nil {
		snap.FlexRank = rank.Format(flex.Tier, flex.Rank, flex.LeaguePoints)
	}

	// Generic rank: solo queue first, then flex, then whatever entry exists.
	selected := solo
	if selected == nil {
		selected = flex
	}
	if selected == nil {
		selected = &entries[0]
	}
	snap.Rank = rank.Format(selected.Tier, selected.Rank, selected.LeaguePoints)
}

func (a *Aggregator) resolveMasteries(ctx context.Context, snap *domain.RiotSnapshot, puuid string) {
	masteries, err := a.riot.ChampionMasteriesByPUUID(ctx, snap.Platform, puuid)
	if err != nil {
		a.logger.Warn().Err(err).Str("puuid", puuid).Msg("champion mastery lookup failed")
	} else {
		if len(masteries) > constants.MasteryKeepLimit {
			masteries = masteries[:constants.MasteryKeepLimit]
		}
		snap.ChampionMasteries = make([]domain.ChampionMastery, 0, len(masteries))
		for _, m := range masteries {
			snap.ChampionMasteries = append(snap.ChampionMasteries, domain.ChampionMastery{
				ChampionID:     m.ChampionID,
				ChampionLevel:  m.ChampionLevel,
				ChampionPoints: m.ChampionPoints,
				LastPlayTime:   m.LastPlayTime,
			})
		}
	}

	score, err := a.riot.MasteryScoreByPUUID(ctx, snap.Platform, puuid)
	if err != nil {
		a.logger.Warn().Err(err).Str("puuid", puuid).Msg("mastery score lookup failed")
		return
	}
	snap.MasteryScore = score
}

func (a *Aggregator) resolveMatches(ctx context.Context, snap *domain.RiotSnapshot, puuid string) {
	matchRegion := riot.DefaultRoutingRegion
	shard, err := a.riot.ActiveShard(ctx, "lol", puuid)
	if err != nil {
		a.logger.Warn().Err(err).Str("puuid", puuid).Msg("active shard lookup failed, using default region")
	} else if shard.Region != "" {
		matchRegion = strings.ToLower(shard.Region)
	}

	ids, err := a.riot.MatchIDsByPUUID(ctx, matchRegion, puuid, 0, constants.RecentMatchCount)
	if err != nil {
		a.logger.Warn().Err(err).Str("puuid", puuid).Str("region", matchRegion).Msg("match ids lookup failed")
		return
	}
	snap.RecentMatchIDs = ids

	if len(ids) > constants.MatchDetailLimit {
		ids = ids[:constants.MatchDetailLimit]
	}

	// Each detail lookup is independent: failures leave a gap, the rest is
	// kept.
	details := make([]*domain.MatchDetail, len(ids))
	g := new(errgroup.Group)
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			raw, err := a.riot.MatchByID(ctx, matchRegion, id)
			if err != nil {
				a.logger.Warn().Err(err).Str("match_id", id).Msg("match detail lookup failed")
				return nil
			}
			var detail domain.MatchDetail
			if err := json.Unmarshal(raw, &detail); err != nil {
				a.logger.Warn().Err(err).Str("match_id", id).Msg("match detail decode failed")
				return nil
			}
			details[i] = &detail
			return nil
		})
	}
	_ = g.Wait()

	for _, d := range details {
		if d != nil {
			snap.RecentMatchDetails = append(snap.RecentMatchDetails, *d)
		}
	}
}

func (a *Aggregator) dataDragonVersion(ctx context.Context) string {
	versions, err := a.riot.DataDragonVersions(ctx)
	if err != nil || len(versions) == 0 {
		a.logger.Debug().Err(err).Msg("data dragon version lookup failed, using fallback")
		return fallbackDataDragonVersion
	}
	return versions[0]
}
