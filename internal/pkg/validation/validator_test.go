package validation

import (
	"testing"

	"github.com/malingi/accabot/internal/pkg/models"
)

func TestSanitizeMatch_CleansTeamNames(t *testing.T) {
	m := &models.Match{
		ID:       "a",
		HomeTeam: "  Real \tMadrid \x00",
		AwayTeam: "Barcelona   FC",
		Odds:     map[string]float64{"home": 1.5, "draw": -2, "away": 2000},
	}

	SanitizeMatch(m)

	if m.HomeTeam != "Real Madrid" {
		t.Errorf("HomeTeam = %q", m.HomeTeam)
	}
	if m.AwayTeam != "Barcelona FC" {
		t.Errorf("AwayTeam = %q", m.AwayTeam)
	}
	if m.Odds["draw"] != 0 || m.Odds["away"] != 1000 {
		t.Errorf("odds not clamped: %+v", m.Odds)
	}
}

func TestSanitizeTeamName_EdgeWhitespace(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"trailing control then space", "Real Madrid \x00", "Real Madrid"},
		{"leading control then space", "\x00 Real Madrid", "Real Madrid"},
		{"control between spaces", "Arsenal \x1F ", "Arsenal"},
		{"only controls and spaces", " \x00\t ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sanitizeTeamName(tt.in); got != tt.want {
				t.Errorf("sanitizeTeamName(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFilterValid(t *testing.T) {
	matches := []models.Match{
		{ID: "good", HomeTeam: "A", AwayTeam: "B", Odds: map[string]float64{"home": 1.5, "draw": 3.4, "away": 3.6}},
		{ID: "", HomeTeam: "A", AwayTeam: "B", Odds: map[string]float64{"home": 1.5}},
		{ID: "noteams", HomeTeam: "", AwayTeam: "B", Odds: map[string]float64{"home": 1.5}},
		{ID: "badodds", HomeTeam: "A", AwayTeam: "B", Odds: map[string]float64{"home": 0.5}},
		{ID: "partial", HomeTeam: "A", AwayTeam: "B", Odds: map[string]float64{"home": 1.5, "away": 3.6}},
	}

	valid := FilterValid(matches)

	if len(valid) != 1 || valid[0].ID != "good" {
		t.Errorf("FilterValid kept %+v", valid)
	}
}

func TestValidateMatch_RequiresFullMarket(t *testing.T) {
	m := &models.Match{
		ID:       "m1",
		HomeTeam: "A",
		AwayTeam: "B",
		Odds:     map[string]float64{models.OutcomeHome: 1.5, models.OutcomeDraw: 3.4},
	}
	if err := ValidateMatch(m); err == nil {
		t.Error("expected error for match missing an outcome")
	}

	m.Odds[models.OutcomeAway] = 3.6
	if err := ValidateMatch(m); err != nil {
		t.Errorf("ValidateMatch: %v", err)
	}
}
