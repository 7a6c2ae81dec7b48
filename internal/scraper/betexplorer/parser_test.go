package betexplorer

import (
	"testing"
	"time"
)

const fixtureHTML = `
<table>
  <tr class="event">
    <td class="table-main__time">15:30</td>
    <td><span class="table-main__team--home">Arsenal</span></td>
    <td><span class="table-main__team--away">Chelsea</span></td>
    <td class="odds">2.05</td>
    <td class="odds">3,40</td>
    <td class="odds">3.60</td>
  </tr>
  <tr class="event">
    <td><span class="name">Lyon</span><span class="name">Nice</span></td>
    <td class="odd">7/2</td>
    <td class="odd">3.30</td>
    <td class="odd">2.10</td>
  </tr>
  <tr class="event">
    <td><span class="table-main__team--home">Porto</span></td>
    <td><span class="table-main__team--away">Braga</span></td>
    <td class="odds">1.80</td>
    <td class="odds">n/a</td>
  </tr>
  <tr><td>header row without teams</td></tr>
</table>
`

func TestParseMatches_Fixture(t *testing.T) {
	scrapedAt := time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC)

	matches, err := ParseMatches([]byte(fixtureHTML), 0, scrapedAt)
	if err != nil {
		t.Fatalf("ParseMatches: %v", err)
	}

	// Porto vs Braga only has two parseable odds and must be dropped.
	if len(matches) != 2 {
		t.Fatalf("expected 2 matches, got %d: %+v", len(matches), matches)
	}

	first := matches[0]
	if first.HomeTeam != "Arsenal" || first.AwayTeam != "Chelsea" {
		t.Errorf("unexpected teams: %s vs %s", first.HomeTeam, first.AwayTeam)
	}
	if first.Odds["home"] != 2.05 || first.Odds["draw"] != 3.40 || first.Odds["away"] != 3.60 {
		t.Errorf("unexpected odds: %+v", first.Odds)
	}
	if first.StartTime.Hour() != 15 || first.StartTime.Minute() != 30 {
		t.Errorf("kickoff not parsed: %v", first.StartTime)
	}
	if first.Source != "betexplorer" {
		t.Errorf("source = %q", first.Source)
	}

	// Fractional 7/2 converts to decimal 4.5.
	second := matches[1]
	if second.Odds["home"] != 4.5 {
		t.Errorf("fractional odds: got %v, want 4.5", second.Odds["home"])
	}
}

func TestParseMatches_Limit(t *testing.T) {
	matches, err := ParseMatches([]byte(fixtureHTML), 1, time.Now().UTC())
	if err != nil {
		t.Fatalf("ParseMatches: %v", err)
	}
	if len(matches) != 1 {
		t.Errorf("limit 1 returned %d matches", len(matches))
	}
}

func TestParseOdd(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"2.05", 2.05, true},
		{"2,05", 2.05, true},
		{" 3.40 ", 3.40, true},
		{"7/2", 4.5, true},
		{"1/4", 1.25, true},
		{"n/a", 0, false},
		{"", 0, false},
		{"-", 0, false},
	}
	for _, tt := range tests {
		got, ok := parseOdd(tt.in)
		if ok != tt.ok || (ok && got != tt.want) {
			t.Errorf("parseOdd(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestWithNearestYear(t *testing.T) {
	date := func(y int, m time.Month, d, h, min int) time.Time {
		return time.Date(y, m, d, h, min, 0, 0, time.UTC)
	}

	tests := []struct {
		name string
		t    time.Time
		now  time.Time
		want time.Time
	}{
		{
			name: "same year",
			t:    date(0, time.September, 5, 15, 30),
			now:  date(2025, time.September, 1, 12, 0),
			want: date(2025, time.September, 5, 15, 30),
		},
		{
			name: "january fixture scraped in december",
			t:    date(0, time.January, 2, 18, 0),
			now:  date(2025, time.December, 30, 12, 0),
			want: date(2026, time.January, 2, 18, 0),
		},
		{
			name: "december date scraped in early january",
			t:    date(0, time.December, 30, 20, 0),
			now:  date(2026, time.January, 2, 12, 0),
			want: date(2025, time.December, 30, 20, 0),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := withNearestYear(tt.t, tt.now); !got.Equal(tt.want) {
				t.Errorf("withNearestYear = %v, want %v", got, tt.want)
			}
		})
	}
}
