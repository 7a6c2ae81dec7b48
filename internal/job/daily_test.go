package job

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/malingi/accabot/internal/pkg/config"
	"github.com/malingi/accabot/internal/pkg/interfaces"
	"github.com/malingi/accabot/internal/pkg/models"
	"github.com/malingi/accabot/internal/pkg/storage"
)

type stubSource struct {
	name    string
	matches []models.Match
	err     error
}

func (s *stubSource) Name() string { return s.name }

func (s *stubSource) FetchMatches(_ context.Context) ([]models.Match, error) {
	return s.matches, s.err
}

type recordingNotifier struct {
	subject string
	body    string
	calls   int
}

func (n *recordingNotifier) SendPick(_ context.Context, subject, body string) error {
	n.subject = subject
	n.body = body
	n.calls++
	return nil
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Builder.TargetMin = 3.0
	cfg.Builder.TargetMax = 4.0
	cfg.Builder.LegsMin = 3
	cfg.Builder.LegsMax = 4
	cfg.Builder.MinOdds = 1.01
	cfg.Builder.Stake = 10
	cfg.Builder.StartBankroll = 1000
	cfg.Email.Subject = "Daily Accumulator Picks"
	return cfg
}

func testMatches() []models.Match {
	kickoff := time.Date(2025, 3, 1, 15, 0, 0, 0, time.UTC)
	out := make([]models.Match, 0, 3)
	for i, teams := range [][2]string{{"Arsenal", "Chelsea"}, {"Lyon", "Nice"}, {"Porto", "Braga"}} {
		m := models.Match{
			HomeTeam:  teams[0],
			AwayTeam:  teams[1],
			StartTime: kickoff.Add(time.Duration(i) * time.Hour),
			Source:    "stub",
			Odds: map[string]float64{
				models.OutcomeHome: 1.50,
				models.OutcomeDraw: 3.80,
				models.OutcomeAway: 5.00,
			},
		}
		m.ID = models.CanonicalMatchID(m.HomeTeam, m.AwayTeam, m.StartTime)
		out = append(out, m)
	}
	return out
}

func TestRunEndToEnd(t *testing.T) {
	log, err := storage.NewJSONLog(filepath.Join(t.TempDir(), "picks.json"))
	if err != nil {
		t.Fatalf("NewJSONLog: %v", err)
	}

	notifier := &recordingNotifier{}
	j := NewDaily(testConfig(), []interfaces.Source{&stubSource{name: "stub", matches: testMatches()}}, log, Options{
		Notifiers: []interfaces.Notifier{notifier},
	})

	if err := j.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	picks, err := log.GetRecentPicks(context.Background(), 10)
	if err != nil {
		t.Fatalf("GetRecentPicks: %v", err)
	}
	if len(picks) != 1 {
		t.Fatalf("expected 1 stored pick, got %d", len(picks))
	}
	// 1.50^3 = 3.375, inside the target range with exactly 3 legs.
	if got := picks[0].TotalOdds; got != 3.375 {
		t.Errorf("TotalOdds = %v, want 3.375", got)
	}
	if picks[0].Stake != 10 {
		t.Errorf("Stake = %v, want 10", picks[0].Stake)
	}

	if notifier.calls != 1 {
		t.Fatalf("notifier called %d times, want 1", notifier.calls)
	}
	if notifier.subject != "Daily Accumulator Picks" {
		t.Errorf("subject = %q", notifier.subject)
	}
	if !strings.Contains(notifier.body, "Arsenal vs Chelsea") {
		t.Errorf("body missing leg line:\n%s", notifier.body)
	}
	if !strings.Contains(notifier.body, "Weekly Performance") {
		t.Errorf("body missing weekly block:\n%s", notifier.body)
	}
}

func TestRunNoMatches(t *testing.T) {
	log, err := storage.NewJSONLog(filepath.Join(t.TempDir(), "picks.json"))
	if err != nil {
		t.Fatalf("NewJSONLog: %v", err)
	}

	notifier := &recordingNotifier{}
	j := NewDaily(testConfig(), []interfaces.Source{&stubSource{name: "stub"}}, log, Options{
		Notifiers: []interfaces.Notifier{notifier},
	})

	if err := j.Run(context.Background()); err == nil {
		t.Fatal("expected error when no matches scraped")
	}
	if notifier.calls != 0 {
		t.Errorf("notifier should not be called, got %d calls", notifier.calls)
	}
}

func TestRunDryRunStoresNothing(t *testing.T) {
	log, err := storage.NewJSONLog(filepath.Join(t.TempDir(), "picks.json"))
	if err != nil {
		t.Fatalf("NewJSONLog: %v", err)
	}

	notifier := &recordingNotifier{}
	j := NewDaily(testConfig(), []interfaces.Source{&stubSource{name: "stub", matches: testMatches()}}, log, Options{
		Notifiers: []interfaces.Notifier{notifier},
		DryRun:    true,
	})

	if err := j.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	picks, err := log.GetRecentPicks(context.Background(), 10)
	if err != nil {
		t.Fatalf("GetRecentPicks: %v", err)
	}
	if len(picks) != 0 {
		t.Errorf("dry run stored %d picks, want 0", len(picks))
	}
	if notifier.calls != 0 {
		t.Errorf("dry run sent %d notifications, want 0", notifier.calls)
	}
}

func TestRunRejectsOverlap(t *testing.T) {
	log, err := storage.NewJSONLog(filepath.Join(t.TempDir(), "picks.json"))
	if err != nil {
		t.Fatalf("NewJSONLog: %v", err)
	}
	j := NewDaily(testConfig(), nil, log, Options{})
	j.running.Store(true)
	if err := j.Run(context.Background()); err == nil {
		t.Fatal("expected error while another run is in progress")
	}
	if j.TryRun(context.Background()) {
		t.Fatal("TryRun should refuse while another run is in progress")
	}
}
