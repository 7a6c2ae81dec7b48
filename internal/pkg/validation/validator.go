package validation

import (
	"fmt"

	"github.com/malingi/accabot/internal/pkg/models"
)

// ValidateMatch checks whether a scraped match is usable for the builder.
func ValidateMatch(match *models.Match) error {
	if match == nil {
		return fmt.Errorf("match cannot be nil")
	}
	if match.ID == "" {
		return fmt.Errorf("match ID cannot be empty")
	}
	if match.HomeTeam == "" {
		return fmt.Errorf("home team cannot be empty")
	}
	if match.AwayTeam == "" {
		return fmt.Errorf("away team cannot be empty")
	}
	if len(match.Odds) == 0 {
		return fmt.Errorf("match %s has no odds", match.ID)
	}
	for outcome, odd := range match.Odds {
		if odd < 1.0 {
			return fmt.Errorf("match %s has invalid odds for %s: %v", match.ID, outcome, odd)
		}
	}
	if !match.HasFullMarket() {
		return fmt.Errorf("match %s is missing 1X2 outcomes", match.ID)
	}
	return nil
}

// FilterValid sanitizes matches and drops the unusable ones.
func FilterValid(matches []models.Match) []models.Match {
	out := matches[:0]
	for i := range matches {
		SanitizeMatch(&matches[i])
		if err := ValidateMatch(&matches[i]); err != nil {
			continue
		}
		out = append(out, matches[i])
	}
	return out
}
