package scraper

import (
	"testing"
	"time"

	"github.com/malingi/accabot/internal/pkg/models"
)

func TestMergeMatchLists_BestOddsWin(t *testing.T) {
	start := time.Date(2026, 9, 5, 19, 30, 0, 0, time.UTC)
	id := models.CanonicalMatchID("Arsenal", "Chelsea", start)

	lists := [][]models.Match{
		{
			{ID: id, HomeTeam: "Arsenal", AwayTeam: "Chelsea", StartTime: start, Source: "betexplorer",
				Odds: map[string]float64{"home": 2.00, "draw": 3.40, "away": 3.60}},
		},
		{
			{ID: id, HomeTeam: "Arsenal", AwayTeam: "Chelsea", StartTime: start, Source: "oddsportal",
				Odds: map[string]float64{"home": 2.10, "draw": 3.35, "away": 3.70}},
		},
	}

	merged := MergeMatchLists(lists)
	if len(merged) != 1 {
		t.Fatalf("expected 1 merged match, got %d", len(merged))
	}

	odds := merged[0].Odds
	if odds["home"] != 2.10 || odds["draw"] != 3.40 || odds["away"] != 3.70 {
		t.Errorf("best odds not kept: %+v", odds)
	}
}

func TestMergeMatchLists_DistinctMatchesSortedByKickoff(t *testing.T) {
	early := time.Date(2026, 9, 5, 15, 0, 0, 0, time.UTC)
	late := time.Date(2026, 9, 5, 20, 0, 0, 0, time.UTC)

	lists := [][]models.Match{
		{{ID: "b", StartTime: late, Odds: map[string]float64{"home": 2.0}}},
		{{ID: "a", StartTime: early, Odds: map[string]float64{"home": 1.5}}},
	}

	merged := MergeMatchLists(lists)
	if len(merged) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(merged))
	}
	if merged[0].ID != "a" || merged[1].ID != "b" {
		t.Errorf("not sorted by kickoff: %v, %v", merged[0].ID, merged[1].ID)
	}
}

func TestMergeMatchLists_DoesNotMutateInput(t *testing.T) {
	src := []models.Match{{ID: "a", Odds: map[string]float64{"home": 2.0}}}
	other := []models.Match{{ID: "a", Odds: map[string]float64{"home": 3.0}}}

	_ = MergeMatchLists([][]models.Match{src, other})

	if src[0].Odds["home"] != 2.0 {
		t.Errorf("input list mutated: %v", src[0].Odds)
	}
}
