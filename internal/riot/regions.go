package riot

import "strings"

// DefaultRoutingRegion routes account and match lookups when no active shard
// is known.
const DefaultRoutingRegion = "europe"

var tagToPlatform = map[string]string{
	"EUW":  "euw1",
	"EUNE": "eun1",
	"NA":   "na1",
	"KR":   "kr",
	"BR":   "br1",
	"OCE":  "oc1",
	"JP":   "jp1",
	"RU":   "ru",
	"LAN":  "la1",
	"LAS":  "la2",
	"TR":   "tr1",
}

// PlatformForTag maps a human region tag ("EUW") to its platform code
// ("euw1"). Unknown tags pass through lowercased, so raw platform codes work
// too.
func PlatformForTag(tag string) string {
	t := strings.ToUpper(strings.TrimSpace(tag))
	if p, ok := tagToPlatform[t]; ok {
		return p
	}
	return strings.ToLower(t)
}

// RoutingRegionForPlatform maps a platform code to the broader routing region
// used by account and match-v5 endpoints.
func RoutingRegionForPlatform(platform string) string {
	switch strings.ToLower(platform) {
	case "na1", "br1", "la1", "la2":
		return "americas"
	case "kr", "jp1":
		return "asia"
	case "euw1", "eun1", "tr1", "ru":
		return "europe"
	case "oc1":
		return "sea"
	default:
		return "americas"
	}
}
