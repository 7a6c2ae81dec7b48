package validation

import (
	"regexp"
	"strings"

	"github.com/malingi/accabot/internal/pkg/models"
)

var (
	controlRe    = regexp.MustCompile(`[\x00-\x1F\x7F]`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// SanitizeMatch cleans up scraped match data in place: trimmed team names
// without control characters, and odds clamped to a sane range. Scraped
// HTML occasionally leaks markup artifacts into text nodes.
func SanitizeMatch(match *models.Match) {
	if match == nil {
		return
	}

	match.HomeTeam = sanitizeTeamName(match.HomeTeam)
	match.AwayTeam = sanitizeTeamName(match.AwayTeam)
	match.Tournament = sanitizeTeamName(match.Tournament)

	for outcome, odd := range match.Odds {
		switch {
		case odd < 0:
			match.Odds[outcome] = 0
		case odd > 1000:
			match.Odds[outcome] = 1000
		}
	}
}

func sanitizeTeamName(name string) string {
	s := controlRe.ReplaceAllString(name, "")
	s = whitespaceRe.ReplaceAllString(s, " ")
	// Trim last: stripping a control character can expose new edge whitespace
	s = strings.TrimSpace(s)
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}
