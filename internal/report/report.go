package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/malingi/accabot/internal/pkg/models"
)

// WeeklyStats summarizes pick performance over a window.
type WeeklyStats struct {
	Total   int
	Wins    int
	Losses  int
	Pending int
	Balance float64
	ROI     float64
}

// Weekly computes stats over picks from the last 7 days before now.
// Balance uses naive rollover bookkeeping: a win sets the balance to
// stake x total odds, a loss resets it to the start bankroll, unsettled
// picks change nothing. Picks must be ordered oldest first for the
// rollover to replay correctly.
func Weekly(picks []models.Accumulator, startBankroll float64, now time.Time) WeeklyStats {
	cutoff := now.AddDate(0, 0, -7)

	stats := WeeklyStats{Balance: startBankroll}
	for _, p := range picks {
		if p.CreatedAt.Before(cutoff) {
			continue
		}
		stats.Total++
		switch {
		case p.Won == nil:
			stats.Pending++
		case *p.Won:
			stats.Wins++
			stake := p.Stake
			if stake <= 0 {
				stake = startBankroll
			}
			stats.Balance = stake * p.TotalOdds
		default:
			stats.Losses++
			stats.Balance = startBankroll
		}
	}

	if startBankroll > 0 {
		stats.ROI = (stats.Balance - startBankroll) / startBankroll * 100.0
	}
	return stats
}

// FormatWeekly renders the weekly block for the email body.
func FormatWeekly(stats WeeklyStats) string {
	if stats.Total == 0 {
		return "Weekly Performance (last 7 days):\nNo picks logged.\n"
	}
	return fmt.Sprintf(
		"Weekly Performance (last 7 days):\n"+
			"Total picks logged: %d\n"+
			"Wins: %d\n"+
			"Losses: %d\n"+
			"Pending: %d\n"+
			"Current Balance: %.2f\n"+
			"ROI: %.2f%%\n",
		stats.Total, stats.Wins, stats.Losses, stats.Pending, stats.Balance, stats.ROI,
	)
}

// FormatDaily renders the daily pick section: one line per leg, then the
// combined odds and stake.
func FormatDaily(pick *models.Accumulator) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Accumulator generated (UTC %s):\n\n", pick.CreatedAt.UTC().Format(time.RFC3339))
	for _, leg := range pick.Legs {
		fmt.Fprintf(&b, "%s vs %s -> %s @ %v\n", leg.HomeTeam, leg.AwayTeam, leg.Outcome, leg.Odds)
	}
	fmt.Fprintf(&b, "\nTotal odds: %v\nStake: %v\n", pick.TotalOdds, pick.Stake)
	return b.String()
}

// Body assembles the full email body: the daily pick plus the weekly block.
func Body(pick *models.Accumulator, stats WeeklyStats) string {
	return FormatDaily(pick) + "\n" + FormatWeekly(stats)
}
