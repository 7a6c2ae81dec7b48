package models

import (
	"testing"
	"time"
)

func TestCanonicalMatchID_NormalizesNamesAndTime(t *testing.T) {
	start := time.Date(2026, 9, 5, 19, 29, 0, 0, time.UTC)

	id1 := CanonicalMatchID("  Arsenal ", "Chelsea", start)
	id2 := CanonicalMatchID("arsenal", "CHELSEA", start.Add(2*time.Minute))

	if id1 != id2 {
		t.Errorf("same match should produce same ID: %q vs %q", id1, id2)
	}
}

func TestCanonicalMatchID_SeparatorsStripped(t *testing.T) {
	start := time.Date(2026, 9, 5, 20, 0, 0, 0, time.UTC)

	id := CanonicalMatchID("Paris/SG", "Ol|ympique", start)
	want := "paris sg|ol ympique|2026-09-05T20:00:00Z"
	if id != want {
		t.Errorf("CanonicalMatchID = %q, want %q", id, want)
	}
}

func TestCanonicalMatchID_ZeroTime(t *testing.T) {
	id := CanonicalMatchID("A", "B", time.Time{})
	want := "a|b|unknown-time"
	if id != want {
		t.Errorf("CanonicalMatchID = %q, want %q", id, want)
	}
}

func TestAccumulator_ProductAndRange(t *testing.T) {
	acc := Accumulator{
		Legs: []Selection{
			{MatchID: "a", Odds: 1.5},
			{MatchID: "b", Odds: 1.4},
			{MatchID: "c", Odds: 1.6},
		},
	}
	acc.TotalOdds = acc.Product()

	if acc.TotalOdds != 3.36 {
		t.Errorf("Product = %v, want 3.36", acc.TotalOdds)
	}
	if !acc.InTargetRange(3.0, 4.0) {
		t.Errorf("expected %v to be in [3.0, 4.0]", acc.TotalOdds)
	}
}

func TestAccumulator_HasConflicts(t *testing.T) {
	acc := Accumulator{
		Legs: []Selection{
			{MatchID: "a", Outcome: OutcomeHome},
			{MatchID: "a", Outcome: OutcomeDraw},
		},
	}
	if !acc.HasConflicts() {
		t.Error("two legs on the same match should conflict")
	}
}
