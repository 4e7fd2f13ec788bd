package domain

import "strings"

// Canonical role names in display order.
var Roles = []string{"Top", "Jungle", "Mid", "ADC", "Support"}

var roleAliases = map[string]string{
	"top":     "Top",
	"jungle":  "Jungle",
	"jgl":     "Jungle",
	"mid":     "Mid",
	"middle":  "Mid",
	"adc":     "ADC",
	"bot":     "ADC",
	"bottom":  "ADC",
	"support": "Support",
	"supp":    "Support",
}

// NormalizeRole maps a user-supplied role label onto the canonical vocabulary.
// Returns "" for an unknown role.
func NormalizeRole(role string) string {
	return roleAliases[strings.ToLower(strings.TrimSpace(role))]
}
