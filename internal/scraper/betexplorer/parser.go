package betexplorer

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/malingi/accabot/internal/pkg/models"
)

// ParseMatches extracts upcoming matches with 1X2 odds from the next-soccer
// page. The site changes its layout occasionally, so selectors are tried in
// order of likelihood; rows that don't yield two team names and three odds
// are skipped.
func ParseMatches(html []byte, limit int, scrapedAt time.Time) ([]models.Match, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	var matches []models.Match
	doc.Find("div.table-main__row, tr.event, tr").EachWithBreak(func(_ int, row *goquery.Selection) bool {
		home, away, ok := teamNames(row)
		if !ok {
			return true
		}

		odds := rowOdds(row)
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

func teamNames(row *goquery.Selection) (home, away string, ok bool) {
	homeEl := row.Find(".table-main__team--home, .team-home, .home").First()
	awayEl := row.Find(".table-main__team--away, .team-away, .away").First()
	if homeEl.Length() > 0 && awayEl.Length() > 0 {
		home = strings.TrimSpace(homeEl.Text())
		away = strings.TrimSpace(awayEl.Text())
	} else {
		names := row.Find(".name, .team-name")
		if names.Length() < 2 {
			return "", "", false
		}
		home = strings.TrimSpace(names.Eq(0).Text())
		away = strings.TrimSpace(names.Eq(1).Text())
	}
	if home == "" || away == "" {
		return "", "", false
	}
	return home, away, true
}

// rowOdds collects the first three numeric-looking odds in the row.
func rowOdds(row *goquery.Selection) []float64 {
	var parsed []float64
	row.Find(".odds, .odd, .table-main__odds, .odds__value").EachWithBreak(func(_ int, n *goquery.Selection) bool {
		if v, ok := parseOdd(n.Text()); ok {
			parsed = append(parsed, v)
		}
		return len(parsed) < 3
	})
	return parsed
}

// parseOdd parses a decimal odd ("2.05", "2,05") or a fractional one ("7/2").
func parseOdd(text string) (float64, bool) {
	txt := strings.ReplaceAll(strings.TrimSpace(text), ",", ".")
	if txt == "" {
		return 0, false
	}
	if v, err := strconv.ParseFloat(txt, 64); err == nil {
		return v, true
	}
	if num, den, found := strings.Cut(txt, "/"); found {
		a, errA := strconv.ParseFloat(strings.TrimSpace(num), 64)
		b, errB := strconv.ParseFloat(strings.TrimSpace(den), 64)
		if errA == nil && errB == nil && b != 0 {
			dec := 1 + a/b
			return float64(int(dec*100+0.5)) / 100, true
		}
	}
	return 0, false
}

// kickoffTime parses the row's time cell ("15:30" today, or "05.09. 15:30").
// Falls back to zero time when the cell is missing; the canonical ID then
// carries "unknown-time" and the match still participates in the build.
func kickoffTime(row *goquery.Selection, now time.Time) time.Time {
	txt := strings.TrimSpace(row.Find(".table-main__time, .time, .date").First().Text())
	if txt == "" {
		return time.Time{}
	}

	if t, err := time.Parse("15:04", txt); err == nil {
		d := now.UTC()
		return time.Date(d.Year(), d.Month(), d.Day(), t.Hour(), t.Minute(), 0, 0, time.UTC)
	}
	if t, err := time.Parse("02.01. 15:04", txt); err == nil {
		return withNearestYear(t, now.UTC())
	}
	return time.Time{}
}

// withNearestYear places a year-less date in whichever adjacent year puts it
// closest to now, so a January fixture scraped in late December lands in the
// coming year rather than the past one.
func withNearestYear(t, now time.Time) time.Time {
	best := time.Date(now.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), 0, 0, time.UTC)
	for _, year := range []int{now.Year() - 1, now.Year() + 1} {
		cand := time.Date(year, t.Month(), t.Day(), t.Hour(), t.Minute(), 0, 0, time.UTC)
		if absDuration(cand.Sub(now)) < absDuration(best.Sub(now)) {
			best = cand
		}
	}
	return best
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
