package oddsportal

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/malingi/accabot/internal/pkg/models"
)

// ParseMatches extracts matches and 1X2 odds from a rendered OddsPortal
// matches page. Rows without both participants and three odds are skipped.
func ParseMatches(html string, limit int, scrapedAt time.Time) ([]models.Match, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	var matches []models.Match
	doc.Find(`div[data-testid="game-row"], .eventRow`).EachWithBreak(func(_ int, row *goquery.Selection) bool {
		names := row.Find(`p[data-testid="participant-name"], .participant-name`)
		if names.Length() < 2 {
			return true
		}
		home := strings.TrimSpace(names.Eq(0).Text())
		away := strings.TrimSpace(names.Eq(1).Text())
		if home == "" || away == "" {
			return true
		}

		var odds []float64
		row.Find(`p[data-testid="odd-container-default"], .odds-nowrp`).EachWithBreak(func(_ int, n *goquery.Selection) bool {
			txt := strings.ReplaceAll(strings.TrimSpace(n.Text()), ",", ".")
			if v, err := strconv.ParseFloat(txt, 64); err == nil {
				odds = append(odds, v)
			}
			return len(odds) < 3
		})
		if len(odds) < 3 {
			return true
		}

		start := kickoffTime(row, scrapedAt)
		matches = append(matches, models.Match{
			ID:        models.CanonicalMatchID(home, away, start),
			HomeTeam:  home,
			AwayTeam:  away,
			StartTime: start,
			Source:    sourceName,
			Odds: map[string]float64{
				models.OutcomeHome: odds[0],
				models.OutcomeDraw: odds[1],
				models.OutcomeAway: odds[2],
			},
			ScrapedAt: scrapedAt,
		})
		return limit <= 0 || len(matches) < limit
	})

	return matches, nil
}

func kickoffTime(row *goquery.Selection, now time.Time) time.Time {
	txt := strings.TrimSpace(row.Find(`p[data-testid="time-item"], .table-time`).First().Text())
	if txt == "" {
		return time.Time{}
	}
	if t, err := time.Parse("15:04", txt); err == nil {
		d := now.UTC()
		return time.Date(d.Year(), d.Month(), d.Day(), t.Hour(), t.Minute(), 0, 0, time.UTC)
	}
	return time.Time{}
}
