package models

import (
	"time"
)

// Outcome keys for the 1X2 market.
const (
	OutcomeHome = "home"
	OutcomeDraw = "draw"
	OutcomeAway = "away"
)

// Outcomes lists the 1X2 outcomes in display order.
var Outcomes = []string{OutcomeHome, OutcomeDraw, OutcomeAway}

// Match represents an upcoming football match with scraped 1X2 odds
type Match struct {
	ID         string             `json:"id"`
	HomeTeam   string             `json:"home_team"`
	AwayTeam   string             `json:"away_team"`
	StartTime  time.Time          `json:"start_time"`
	Tournament string             `json:"tournament,omitempty"`
	Source     string             `json:"source"`
	Odds       map[string]float64 `json:"odds"` // {"home": 2.05, "draw": 3.20, "away": 3.10}
	ScrapedAt  time.Time          `json:"scraped_at"`
}

// Name returns a human-readable match name
func (m *Match) Name() string {
	return m.HomeTeam + " vs " + m.AwayTeam
}

// HasFullMarket reports whether all three 1X2 outcomes carry usable odds.
func (m *Match) HasFullMarket() bool {
	for _, o := range Outcomes {
		if m.Odds[o] <= 1.0 {
			return false
		}
	}
	return true
}
