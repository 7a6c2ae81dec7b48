package models

import (
	"math"
	"time"
)

// Selection represents one predicted outcome of one match with its odds
type Selection struct {
	MatchID     string  `json:"match_id"`
	HomeTeam    string  `json:"home"`
	AwayTeam    string  `json:"away"`
	Outcome     string  `json:"outcome"` // "home", "draw", "away"
	Odds        float64 `json:"odds"`
	ImpliedProb float64 `json:"implied_prob"`
	// ModelProb is filled by the predictor when available, nil otherwise
	ModelProb *float64 `json:"model_prob,omitempty"`
}

// Score returns the probability used for ranking: the model probability
// when the predictor supplied one, the implied probability otherwise.
func (s *Selection) Score() float64 {
	if s.ModelProb != nil {
		return *s.ModelProb
	}
	return s.ImpliedProb
}

// Accumulator is a combined bet over 3-4 selections. It wins only if every
// leg wins; its payout odds are the product of the legs' odds.
type Accumulator struct {
	ID        string      `json:"id,omitempty"`
	CreatedAt time.Time   `json:"timestamp"`
	Legs      []Selection `json:"accumulator"`
	TotalOdds float64     `json:"total_odds"`
	Stake     float64     `json:"stake"`
	// Won stays nil until the pick is settled manually
	Won *bool `json:"won"`
}

// Product recomputes the combined odds from the legs, rounded to 3 decimals.
func (a *Accumulator) Product() float64 {
	p := 1.0
	for _, leg := range a.Legs {
		p *= leg.Odds
	}
	return math.Round(p*1000) / 1000
}

// InTargetRange reports whether the combined odds landed in [min, max].
func (a *Accumulator) InTargetRange(min, max float64) bool {
	return a.TotalOdds >= min && a.TotalOdds <= max
}

// HasConflicts reports whether two legs bet on the same match.
func (a *Accumulator) HasConflicts() bool {
	seen := make(map[string]struct{}, len(a.Legs))
	for _, leg := range a.Legs {
		if _, ok := seen[leg.MatchID]; ok {
			return true
		}
		seen[leg.MatchID] = struct{}{}
	}
	return false
}
