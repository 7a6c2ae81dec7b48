package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/malingi/accabot/internal/pkg/models"
)

func testPick(id string, createdAt time.Time) *models.Accumulator {
	return &models.Accumulator{
		ID:        id,
		CreatedAt: createdAt,
		Legs: []models.Selection{
			{MatchID: "a", HomeTeam: "Arsenal", AwayTeam: "Chelsea", Outcome: models.OutcomeHome, Odds: 1.5},
			{MatchID: "b", HomeTeam: "Lyon", AwayTeam: "Nice", Outcome: models.OutcomeDraw, Odds: 1.5},
			{MatchID: "c", HomeTeam: "Porto", AwayTeam: "Braga", Outcome: models.OutcomeAway, Odds: 1.5},
		},
		TotalOdds: 3.375,
		Stake:     1000,
	}
}

func newTestLog(t *testing.T) *JSONLog {
	t.Helper()
	log, err := NewJSONLog(filepath.Join(t.TempDir(), "picks.json"))
	if err != nil {
		t.Fatalf("NewJSONLog: %v", err)
	}
	return log
}

func TestJSONLog_MissingFileReadsEmpty(t *testing.T) {
	log := newTestLog(t)

	picks, err := log.GetRecentPicks(context.Background(), 10)
	if err != nil {
		t.Fatalf("GetRecentPicks: %v", err)
	}
	if len(picks) != 0 {
		t.Errorf("expected empty log, got %d picks", len(picks))
	}
}

func TestJSONLog_StoreAndReadBack(t *testing.T) {
	log := newTestLog(t)
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Second)
	if err := log.StorePick(ctx, testPick("p1", now.Add(-48*time.Hour))); err != nil {
		t.Fatalf("StorePick: %v", err)
	}
	if err := log.StorePick(ctx, testPick("p2", now)); err != nil {
		t.Fatalf("StorePick: %v", err)
	}

	picks, err := log.GetPicksSince(ctx, now.Add(-24*time.Hour))
	if err != nil {
		t.Fatalf("GetPicksSince: %v", err)
	}
	if len(picks) != 1 || picks[0].ID != "p2" {
		t.Fatalf("expected only p2 in window, got %+v", picks)
	}
	if picks[0].Won != nil {
		t.Error("fresh pick should be unsettled")
	}
	if len(picks[0].Legs) != 3 {
		t.Errorf("legs lost on round trip: %d", len(picks[0].Legs))
	}
}

func TestJSONLog_RecentPicksNewestFirst(t *testing.T) {
	log := newTestLog(t)
	ctx := context.Background()

	base := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	for i, id := range []string{"old", "mid", "new"} {
		if err := log.StorePick(ctx, testPick(id, base.Add(time.Duration(i)*24*time.Hour))); err != nil {
			t.Fatalf("StorePick: %v", err)
		}
	}

	picks, err := log.GetRecentPicks(ctx, 2)
	if err != nil {
		t.Fatalf("GetRecentPicks: %v", err)
	}
	if len(picks) != 2 || picks[0].ID != "new" || picks[1].ID != "mid" {
		t.Errorf("unexpected order: %+v", picks)
	}
}

func TestJSONLog_SettlePick(t *testing.T) {
	log := newTestLog(t)
	ctx := context.Background()

	if err := log.StorePick(ctx, testPick("p1", time.Now())); err != nil {
		t.Fatalf("StorePick: %v", err)
	}
	if err := log.SettlePick(ctx, "p1", true); err != nil {
		t.Fatalf("SettlePick: %v", err)
	}

	picks, err := log.GetRecentPicks(ctx, 1)
	if err != nil {
		t.Fatalf("GetRecentPicks: %v", err)
	}
	if picks[0].Won == nil || !*picks[0].Won {
		t.Error("pick should be settled as won")
	}

	if err := log.SettlePick(ctx, "nope", false); err == nil {
		t.Error("settling an unknown pick should fail")
	}
}

func TestJSONLog_SnapshotEmpty(t *testing.T) {
	log := newTestLog(t)

	snap, err := log.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if snap != "[]" {
		t.Errorf("empty snapshot = %q, want []", snap)
	}
}
