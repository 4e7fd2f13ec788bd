package domain

import (
	"time"
)

// Profile is the central entity: one record per player, keyed by puuid.
type Profile struct {
	PUUID       string        `json:"puuid"`
	Name        string        `json:"name"`
	GameName    string        `json:"gameName,omitempty"`
	TagLine     string        `json:"tagLine,omitempty"`
	Description string        `json:"description,omitempty"`
	Qualities   []string      `json:"qualities"`
	Roles       []string      `json:"roles"`
	VODs        []VOD         `json:"vods"`
	Contact     string        `json:"contact,omitempty"`
	Riot        *RiotSnapshot `json:"riot,omitempty"`
	CreatedAt   time.Time     `json:"createdAt,omitempty"`
	UpdatedAt   time.Time     `json:"updatedAt,omitempty"`
}

// VOD is one published gameplay video. ID is derived from the URL, so the
// same URL always maps to the same VOD.
type VOD struct {
	ID        string `json:"id"`
	URL       string `json:"url"`
	Title     string `json:"title,omitempty"`
	Thumbnail string `json:"thumbnail,omitempty"`
}

// RiotSnapshot is the last-fetched state from the Riot API. Every field is
// optional in the sense that a partial aggregation fills in what it could get.
type RiotSnapshot struct {
	SummonerID    string `json:"summonerId,omitempty"`
	AccountID     string `json:"accountId,omitempty"`
	Platform      string `json:"platform,omitempty"`
	RoutingRegion string `json:"routingRegion,omitempty"`
	IconID        int    `json:"iconId,omitempty"`
	IconURL       string `json:"iconUrl,omitempty"`
	SummonerLevel int64  `json:"summonerLevel,omitempty"`

	// Standing strings: "TIER DIVISION POINTS LP" or "Unranked".
	Rank         string `json:"rank,omitempty"`
	SoloRank     string `json:"soloRank,omitempty"`
	FlexRank     string `json:"flexRank,omitempty"`
	BestSoloRank string `json:"bestSoloRank,omitempty"`
	BestFlexRank string `json:"bestFlexRank,omitempty"`

	ChampionMasteries  []ChampionMastery `json:"championMasteries,omitempty"`
	MasteryScore       int               `json:"masteryScore"`
	RecentMatchIDs     []string          `json:"recentMatchIds,omitempty"`
	RecentMatchDetails []MatchDetail     `json:"recentMatchDetails,omitempty"`
}

type ChampionMastery struct {
	ChampionID     int64 `json:"championId"`
	ChampionLevel  int   `json:"championLevel"`
	ChampionPoints int64 `json:"championPoints"`
	LastPlayTime   int64 `json:"lastPlayTime,omitempty"`
}

// MatchDetail mirrors the interesting parts of a match-v5 payload.
type MatchDetail struct {
	Metadata MatchMetadata `json:"metadata"`
	Info     MatchInfo     `json:"info"`
}

type MatchMetadata struct {
	MatchID      string   `json:"matchId"`
	Participants []string `json:"participants,omitempty"`
}

type MatchInfo struct {
	GameMode     string        `json:"gameMode,omitempty"`
	GameDuration int64         `json:"gameDuration,omitempty"`
	GameCreation int64         `json:"gameCreation,omitempty"`
	QueueID      int           `json:"queueId,omitempty"`
	Participants []Participant `json:"participants,omitempty"`
}

type Participant struct {
	PUUID        string `json:"puuid"`
	ChampionName string `json:"championName,omitempty"`
	Kills        int    `json:"kills"`
	Deaths       int    `json:"deaths"`
	Assists      int    `json:"assists"`
	Win          bool   `json:"win"`
	TeamPosition string `json:"teamPosition,omitempty"`
}

// Session identifies the player behind the current browser session.
type Session struct {
	PUUID    string `json:"puuid"`
	GameName string `json:"gameName,omitempty"`
	TagLine  string `json:"tagLine,omitempty"`
}

/// ProfileSummary is the lightweight list-view shape: champion masteries are
// dropped and match details are truncated to keep responses small. The outer
// Riot field shadows the embedded one for JSON encoding.
type ProfileSummary struct {
	Profile
	Riot *RiotSummary `json:"riot,omitempty"`
}

type RiotSummary struct {
	RiotSnapshot
	RecentMatchDetails []MatchDetailSlim `json:"recentMatchDetails,omitempty"`
}

type MatchDetailSlim struct {
	Metadata MatchMetadata `json:"metadata"`
	Info     MatchInfoSlim `json:"info"`
}

type MatchInfoSlim struct {
	GameMode     string `json:"gameMode,omitempty"`
	GameDuration int64  `json:"gameDuration,omitempty"`
}

// Summary trims a profile for list views: the mastery payload is dropped and
// match details are cut to maxMatches entries of id + mode + duration.
func (p Profile) Summary(maxMatches int) ProfileSummary {
	summary := ProfileSummary{Profile: p}
	summary.Profile.Riot = nil
	if p.Riot == nil {
		return summary
	}

	riot := *p.Riot
	riot.ChampionMasteries = nil
	riot.RecentMatchDetails = nil

	details := p.Riot.RecentMatchDetails
	if len(details) > maxMatches {
		details = details[:maxMatches]
	}
	slim := make([]MatchDetailSlim, 0, len(details))
	for _, d := range details {
		slim = append(slim, MatchDetailSlim{
			Metadata: MatchMetadata{MatchID: d.Metadata.MatchID},
			Info: MatchInfoSlim{
				GameMode:     d.Info.GameMode,
				GameDuration: d.Info.GameDuration,
			},
		})
	}

	summary.Riot = &RiotSummary{RiotSnapshot: riot, RecentMatchDetails: slim}
	return summary
}
