// Package rank compares ranked-queue standing strings under the League tier
// ordering, so a stored "best rank" never moves down after a refresh.
package rank

import (
	"fmt"
	"strings"
)

// Unranked is the standing used when no league entry exists for a queue.
const Unranked = "Unranked"

var tiers = []string{
	"IRON", "BRONZE", "SILVER", "GOLD", "PLATINUM",
	"EMERALD", "DIAMOND", "MASTER", "GRANDMASTER", "CHALLENGER",
}

// Division I sits closest to promotion, so it scores highest.
var divisions = map[string]int{
	"I":   3,
	"II":  2,
	"III": 1,
	"IV":  0,
}

// Score converts a standing string like "GOLD I 50 LP" into a comparable
// score. Anything that does not tokenize into at least "TIER DIVISION" with a
// known tier scores -1, below every real standing. "Unranked" scores -1 too.
func Score(standing string) int {
	if standing == "" {
		return -1
	}
	parts := strings.Fields(standing)
	if len(parts) < 2 {
		return -1
	}
	tierIdx := -1
	tier := strings.ToUpper(parts[0])
	for i, t := range tiers {
		if t == tier {
			tierIdx = i
			break
		}
	}
	if tierIdx == -1 {
		return -1
	}
	return tierIdx*10 + divisions[strings.ToUpper(parts[1])]
}

// PickBest returns the higher of two standing strings. Equal scores return
// next, so a refresh at the same rank keeps the fresher LP count.
func PickBest(prev, next string) string {
	if Score(next) >= Score(prev) {
		return next
	}
	return prev
}

// Format renders a league entry as the canonical standing string.
func Format(tier, division string, leaguePoints int) string {
	return fmt.Sprintf("%s %s %d LP", tier, division, leaguePoints)
}
