package constants

import "time"

const (
	ExternalAPITimeout = 10 * time.Second
	DatabaseTimeout    = 5 * time.Second
	RequestTimeout     = 30 * time.Second
)

const (
	DBMaxOpenConns    = 100
	DBMaxIdleConns    = 10
	DBConnMaxLifetime = 1 * time.Hour
	DBMaxIdleTime     = 10 * time.Minute
)

const (
	ShutdownTimeout = 5 * time.Second
)

const (
	// MatchDetailLimit bounds how many recent matches get a full detail lookup.
	MatchDetailLimit = 5
	// MasteryKeepLimit bounds how many champion masteries are stored per profile.
	MasteryKeepLimit = 10
	// SummaryMatchLimit bounds match details embedded in list-view summaries.
	SummaryMatchLimit = 2
	// RecentMatchCount is the page size for the match-id history lookup.
	RecentMatchCount = 5
)

const (
	SessionCookieMaxAge = 30 * 24 * time.Hour
	OAuthCookieMaxAge   = 10 * time.Minute
)
