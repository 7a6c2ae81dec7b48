package performance

import (
	"sync"
	"time"
)

// Tracker tracks metrics for pipeline runs
type Tracker struct {
	mu sync.RWMutex

	TotalRuns     int
	TotalMatches  int
	TotalPicks    int
	PicksInRange  int
	EmailsSent    int
	TelegramsSent int

	ScrapeDuration time.Duration
	BuildDuration  time.Duration
	TotalDuration  time.Duration

	LastRunAt    time.Time
	LastRunError string
}

var globalTracker = &Tracker{}

// GetTracker returns the global metrics tracker
func GetTracker() *Tracker {
	return globalTracker
}

// RecordRun records one complete pipeline run.
func (t *Tracker) RecordRun(scrape, build, total time.Duration, matches int, inRange bool, runErr error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.TotalRuns++
	t.TotalMatches += matches
	t.ScrapeDuration += scrape
	t.BuildDuration += build
	t.TotalDuration += total
	t.LastRunAt = time.Now().UTC()

	if runErr != nil {
		t.LastRunError = runErr.Error()
		return
	}
	t.LastRunError = ""
	t.TotalPicks++
	if inRange {
		t.PicksInRange++
	}
}

// RecordEmail records a successful email delivery.
func (t *Tracker) RecordEmail() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.EmailsSent++
}

// RecordTelegram records a successful Telegram delivery.
func (t *Tracker) RecordTelegram() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.TelegramsSent++
}

// Metrics is the snapshot served by the /metrics endpoint.
type Metrics struct {
	TotalRuns     int       `json:"total_runs"`
	TotalMatches  int       `json:"total_matches"`
	TotalPicks    int       `json:"total_picks"`
	PicksInRange  int       `json:"picks_in_range"`
	EmailsSent    int       `json:"emails_sent"`
	TelegramsSent int       `json:"telegrams_sent"`
	AvgScrapeMs   int64     `json:"avg_scrape_ms"`
	AvgBuildMs    int64     `json:"avg_build_ms"`
	AvgTotalMs    int64     `json:"avg_total_ms"`
	LastRunAt     time.Time `json:"last_run_at"`
	LastRunError  string    `json:"last_run_error,omitempty"`
}

// GetMetrics returns a consistent snapshot of the counters.
func (t *Tracker) GetMetrics() Metrics {
	t.mu.RLock()
	defer t.mu.RUnlock()

	m := Metrics{
		TotalRuns:     t.TotalRuns,
		TotalMatches:  t.TotalMatches,
		TotalPicks:    t.TotalPicks,
		PicksInRange:  t.PicksInRange,
		EmailsSent:    t.EmailsSent,
		TelegramsSent: t.TelegramsSent,
		LastRunAt:     t.LastRunAt,
		LastRunError:  t.LastRunError,
	}
	if t.TotalRuns > 0 {
		n := int64(t.TotalRuns)
		m.AvgScrapeMs = t.ScrapeDuration.Milliseconds() / n
		m.AvgBuildMs = t.BuildDuration.Milliseconds() / n
		m.AvgTotalMs = t.TotalDuration.Milliseconds() / n
	}
	return m
}
