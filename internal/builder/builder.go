package builder

import (
	"sort"

	"github.com/malingi/accabot/internal/pkg/config"
	"github.com/malingi/accabot/internal/pkg/models"
)

// Builder assembles a 3-4 leg accumulator whose combined odds target the
// configured [target_min, target_max] range.
type Builder struct {
	cfg config.BuilderConfig
}

func New(cfg config.BuilderConfig) *Builder {
	return &Builder{cfg: cfg}
}

// Candidates expands matches into one selection per outcome, scored by the
// implied probability 1/odds. Outcomes at or below the min odds cutoff are
// discarded: they add almost no compounding and usually signal a dead market.
func (b *Builder) Candidates(matches []models.Match) []models.Selection {
	var cand []models.Selection
	for i := range matches {
		m := &matches[i]
		for _, outcome := range models.Outcomes {
			odd := m.Odds[outcome]
			if odd <= b.cfg.MinOdds {
				continue
			}
			cand = append(cand, models.Selection{
				MatchID:     m.ID,
				HomeTeam:    m.HomeTeam,
				AwayTeam:    m.AwayTeam,
				Outcome:     outcome,
				Odds:        odd,
				ImpliedProb: 1.0 / odd,
			})
		}
	}
	return cand
}

// Build greedily picks the highest-scoring non-conflicting selections
// (favorites first) until the product lands in the target range with at
// least legs_min legs, or legs_max is reached. If the product is still
// below target_min afterwards, a second pass adds the highest-odds
// non-conflicting candidates to push it up.
//
// Returns nil when no legs could be picked at all. The result can fall
// short of the target range when the candidate pool is too thin; callers
// check InTargetRange when that matters.
func (b *Builder) Build(candidates []models.Selection) *models.Accumulator {
	if len(candidates) == 0 {
		return nil
	}

	byScore := make([]models.Selection, len(candidates))
	copy(byScore, candidates)
	sort.SliceStable(byScore, func(i, j int) bool {
		si, sj := byScore[i].Score(), byScore[j].Score()
		if si != sj {
			return si > sj
		}
		if byScore[i].Odds != byScore[j].Odds {
			return byScore[i].Odds > byScore[j].Odds
		}
		return byScore[i].MatchID < byScore[j].MatchID
	})

	var legs []models.Selection
	product := 1.0
	used := make(map[string]struct{})

	for _, c := range byScore {
		if _, ok := used[c.MatchID]; ok {
			continue
		}
		legs = append(legs, c)
		used[c.MatchID] = struct{}{}
		product *= c.Odds

		if len(legs) >= b.cfg.LegsMin && product >= b.cfg.TargetMin && product <= b.cfg.TargetMax {
			break
		}
		if len(legs) >= b.cfg.LegsMax {
			break
		}
	}

	if product < b.cfg.TargetMin {
		byOdds := make([]models.Selection, len(candidates))
		copy(byOdds, candidates)
		sort.SliceStable(byOdds, func(i, j int) bool {
			if byOdds[i].Odds != byOdds[j].Odds {
				return byOdds[i].Odds > byOdds[j].Odds
			}
			return byOdds[i].MatchID < byOdds[j].MatchID
		})

		for _, c := range byOdds {
			if len(legs) >= b.cfg.LegsMax || product >= b.cfg.TargetMin {
				break
			}
			if _, ok := used[c.MatchID]; ok {
				continue
			}
			legs = append(legs, c)
			used[c.MatchID] = struct{}{}
			product *= c.Odds
		}
	}

	if len(legs) == 0 {
		return nil
	}

	acc := &models.Accumulator{Legs: legs}
	acc.TotalOdds = acc.Product()
	return acc
}
