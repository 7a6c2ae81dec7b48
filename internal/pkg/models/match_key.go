package models

import (
	"strings"
	"time"
)

// CanonicalMatchID builds a stable cross-source match identifier.
//
// IMPORTANT: this assumes team names are in the same language/format across
// sources. Both scrapers emit English team names, so normalization is limited
// to case, whitespace and separator cleanup.
// Format: home|away|time.
func CanonicalMatchID(homeTeam, awayTeam string, startTime time.Time) string {
	home := normalizeKeyPart(homeTeam)
	away := normalizeKeyPart(awayTeam)

	// Kickoff times can differ by a minute or two between sources, so round
	// to the nearest half hour before keying.
	ts := "unknown-time"
	if !startTime.IsZero() {
		ts = startTime.UTC().Round(30 * time.Minute).Format(time.RFC3339)
	}

	return home + "|" + away + "|" + ts
}

func normalizeKeyPart(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ""
	}
	s = strings.Join(strings.Fields(s), " ")
	s = strings.ReplaceAll(s, "/", " ")
	s = strings.ReplaceAll(s, "\\", " ")
	s = strings.ReplaceAll(s, "|", " ")
	s = strings.Join(strings.Fields(s), " ")
	return s
}
