package scraper

import (
	"sort"

	"github.com/malingi/accabot/internal/pkg/models"
)

// MergeMatchLists merges match lists from several sources by canonical match
// ID. When two sources carry the same match, the higher odds per outcome win
// (the accumulator wants the best available price) and the earlier kickoff
// time is kept.
func MergeMatchLists(lists [][]models.Match) []models.Match {
	byID := make(map[string]*models.Match)
	for _, list := range lists {
		for i := range list {
			mergeMatchInto(byID, &list[i])
		}
	}

	out := make([]models.Match, 0, len(byID))
	for _, m := range byID {
		out = append(out, *m)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].StartTime.Equal(out[j].StartTime) {
			return out[i].StartTime.Before(out[j].StartTime)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func mergeMatchInto(byID map[string]*models.Match, match *models.Match) {
	existing, ok := byID[match.ID]
	if !ok {
		cp := *match
		cp.Odds = make(map[string]float64, len(match.Odds))
		for k, v := range match.Odds {
			cp.Odds[k] = v
		}
		byID[match.ID] = &cp
		return
	}

	for outcome, odds := range match.Odds {
		if odds > existing.Odds[outcome] {
			existing.Odds[outcome] = odds
		}
	}
	if !match.StartTime.IsZero() && (existing.StartTime.IsZero() || match.StartTime.Before(existing.StartTime)) {
		existing.StartTime = match.StartTime
	}
	if existing.Tournament == "" {
		existing.Tournament = match.Tournament
	}
	if match.ScrapedAt.After(existing.ScrapedAt) {
		existing.ScrapedAt = match.ScrapedAt
	}
}
