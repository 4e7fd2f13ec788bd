// Package riot wraps outbound calls to the Riot REST APIs behind a uniform
// contract: parsed JSON on success, a typed *APIError on upstream failure.
package riot

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"fa-helper/internal/config"

	"github.com/valyala/fasthttp"
)

// APIError carries the upstream status code and message for a failed call.
type APIError struct {
	StatusCode int    `json:"status"`
	Message    string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("riot api error: %d %s", e.StatusCode, e.Message)
}

// errorBody is the shape Riot uses for error responses.
type errorBody struct {
	Status struct {
		Message    string `json:"message"`
		StatusCode int    `json:"status_code"`
	} `json:"status"`
}

type Client struct {
	apiKey string
	client *fasthttp.Client
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		apiKey: cfg.RiotAPIKey,
		client: &fasthttp.Client{
			MaxConnsPerHost:     100,
			ReadTimeout:         10 * time.Second,
			WriteTimeout:        10 * time.Second,
			MaxIdleConnDuration: 1 * time.Minute,
		},
	}
}

// Account is the riot account-v1 payload.
type Account struct {
	PUUID    string `json:"puuid"`
	GameName string `json:"gameName"`
	TagLine  string `json:"tagLine"`
}

// Summoner is the lol summoner-v4 payload.
type Summoner struct {
	ID            string `json:"id"`
	AccountID     string `json:"accountId"`
	PUUID         string `json:"puuid"`
	ProfileIconID int    `json:"profileIconId"`
	SummonerLevel int64  `json:"summonerLevel"`
	RevisionDate  int64  `json:"revisionDate"`
}

// LeagueEntry is one ranked-queue standing from league-v4.
type LeagueEntry struct {
	QueueType    string `json:"queueType"`
	Tier         string `json:"tier"`
	Rank         string `json:"rank"`
	LeaguePoints int    `json:"leaguePoints"`
	Wins         int    `json:"wins"`
	Losses       int    `json:"losses"`
}

// ChampionMastery is one champion-mastery-v4 entry.
type ChampionMastery struct {
	ChampionID     int64 `json:"championId"`
	ChampionLevel  int   `json:"championLevel"`
	ChampionPoints int64 `json:"championPoints"`
	LastPlayTime   int64 `json:"lastPlayTime"`
}

// ActiveShard is the account-v1 active-shards payload, used for regional
// routing of match-history lookups.
type ActiveShard struct {
	PUUID    string `json:"puuid"`
	Game     string `json:"game"`
	Platform string `json:"platform"`
	Region   string `json:"region"`
}

func (c *Client) AccountByRiotID(ctx context.Context, region, gameName, tagLine string) (*Account, error) {
	u := fmt.Sprintf("https://%s.api.riotgames.com/riot/account/v1/accounts/by-riot-id/%s/%s",
		region, url.PathEscape(gameName), url.PathEscape(tagLine))
	return doRequest[Account](ctx, c, u)
}

func (c *Client) SummonerByPUUID(ctx context.Context, platform, puuid string) (*Summoner, error) {
	u := fmt.Sprintf("https://%s.api.riotgames.com/lol/summoner/v4/summoners/by-puuid/%s",
		platform, url.PathEscape(puuid))
	return doRequest[Summoner](ctx, c, u)
}

func (c *Client) SummonerByID(ctx context.Context, platform, summonerID string) (*Summoner, error) {
	u := fmt.Sprintf("https://%s.api.riotgames.com/lol/summoner/v4/summoners/%s",
		platform, url.PathEscape(summonerID))
	return doRequest[Summoner](ctx, c, u)
}

func (c *Client) SummonerByName(ctx context.Context, platform, name string) (*Summoner, error) {
	u := fmt.Sprintf("https://%s.api.riotgames.com/lol/summoner/v4/summoners/by-name/%s",
		platform, url.PathEscape(name))
	return doRequest[Summoner](ctx, c, u)
}

func (c *Client) LeagueEntriesBySummoner(ctx context.Context, platform, summonerID string) ([]LeagueEntry, error) {
	u := fmt.Sprintf("https://%s.api.riotgames.com/lol/league/v4/entries/by-summoner/%s",
		platform, url.PathEscape(summonerID))
	entries, err := doRequest[[]LeagueEntry](ctx, c, u)
	if err != nil {
		return nil, err
	}
	return *entries, nil
}

func (c *Client) ChampionMasteriesByPUUID(ctx context.Context, platform, puuid string) ([]ChampionMastery, error) {
	u := fmt.Sprintf("https://%s.api.riotgames.com/lol/champion-mastery/v4/champion-masteries/by-puuid/%s",
		platform, url.PathEscape(puuid))
	masteries, err := doRequest[[]ChampionMastery](ctx, c, u)
	if err != nil {
		return nil, err
	}
	return *masteries, nil
}

func (c *Client) MasteryScoreByPUUID(ctx context.Context, platform, puuid string) (int, error) {
	u := fmt.Sprintf("https://%s.api.riotgames.com/lol/champion-mastery/v4/scores/by-puuid/%s",
		platform, url.PathEscape(puuid))
	score, err := doRequest[int](ctx, c, u)
	if err != nil {
		return 0, err
	}
	return *score, nil
}

func (c *Client) ActiveShard(ctx context.Context, game, puuid string) (*ActiveShard, error) {
	u := fmt.Sprintf("https://europe.api.riotgames.com/riot/account/v1/active-shards/by-game/%s/by-puuid/%s",
		url.PathEscape(game), url.PathEscape(puuid))
	return doRequest[ActiveShard](ctx, c, u)
}

func (c *Client) MatchIDsByPUUID(ctx context.Context, region, puuid string, start, count int) ([]string, error) {
	u := fmt.Sprintf("https://%s.api.riotgames.com/lol/match/v5/matches/by-puuid/%s/ids?start=%d&count=%d",
		region, url.PathEscape(puuid), start, count)
	ids, err := doRequest[[]string](ctx, c, u)
	if err != nil {
		return nil, err
	}
	return *ids, nil
}

// MatchByID returns the raw match-v5 payload. Callers decode the parts they
// need into domain types.
func (c *Client) MatchByID(ctx context.Context, region, matchID string) (json.RawMessage, error) {
	u := fmt.Sprintf("https://%s.api.riotgames.com/lol/match/v5/matches/%s",
		region, url.PathEscape(matchID))
	raw, err := doRequest[json.RawMessage](ctx, c, u)
	if err != nil {
		return nil, err
	}
	return *raw, nil
}

// DataDragonVersions lists game-data versions, newest first. Unauthenticated.
func (c *Client) DataDragonVersions(ctx context.Context) ([]string, error) {
	versions, err := doRequest[[]string](ctx, c, "https://ddragon.leagueoflegends.com/api/versions.json")
	if err != nil {
		return nil, err
	}
	return *versions, nil
}

// IconURL builds the Data Dragon profile-icon URL for a given version.
func IconURL(version string, iconID int) string {
	return fmt.Sprintf("https://ddragon.leagueoflegends.com/cdn/%s/img/profileicon/%d.png", version, iconID)
}

func doRequest[T any](ctx context.Context, client *Client, url string) (*T, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(url)
	req.Header.SetMethod(fasthttp.MethodGet)
	if client.apiKey != "" {
		req.Header.Set("X-Riot-Token", client.apiKey)
	}

	deadline, ok := ctx.Deadline()
	if ok {
		if err := client.client.DoDeadline(req, resp, deadline); err != nil {
			return nil, fmt.Errorf("riot request failed: %w", err)
		}
	} else {
		if err := client.client.Do(req, resp); err != nil {
			return nil, fmt.Errorf("riot request failed: %w", err)
		}
	}

	if resp.StatusCode() < 200 || resp.StatusCode() > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode(), Message: "upstream error"}
		var body errorBody
		if err := json.Unmarshal(resp.Body(), &body); err == nil && body.Status.Message != "" {
			apiErr.Message = body.Status.Message
		}
		return nil, apiErr
	}

	var result T
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, fmt.Errorf("riot response decode failed: %w", err)
	}
	return &result, nil
}
