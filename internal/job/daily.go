package job

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/malingi/accabot/internal/builder"
	"github.com/malingi/accabot/internal/notify"
	"github.com/malingi/accabot/internal/pkg/config"
	"github.com/malingi/accabot/internal/pkg/interfaces"
	"github.com/malingi/accabot/internal/pkg/models"
	"github.com/malingi/accabot/internal/pkg/performance"
	"github.com/malingi/accabot/internal/pkg/storage"
	"github.com/malingi/accabot/internal/pkg/validation"
	"github.com/malingi/accabot/internal/report"
	"github.com/malingi/accabot/internal/scraper"
)

// Daily runs the full pipeline: scrape, build, persist, notify. One instance
// is shared between the cron schedule and the manual /run trigger; Run is
// guarded so overlapping triggers are rejected instead of queued.
type Daily struct {
	cfg       *config.Config
	sources   []interfaces.Source
	cache     storage.MatchCache
	builder   *builder.Builder
	predictor interfaces.Predictor
	log       *storage.JSONLog
	db        storage.PickStorage
	gist      *storage.GistMirror
	notifiers []interfaces.Notifier
	dryRun    bool

	running atomic.Bool
}

type Options struct {
	Cache     storage.MatchCache    // optional
	DB        storage.PickStorage   // optional secondary store
	Gist      *storage.GistMirror   // optional
	Predictor interfaces.Predictor  // optional
	Notifiers []interfaces.Notifier
	DryRun    bool
}

func NewDaily(cfg *config.Config, sources []interfaces.Source, log *storage.JSONLog, opts Options) *Daily {
	return &Daily{
		cfg:       cfg,
		sources:   sources,
		cache:     opts.Cache,
		builder:   builder.New(cfg.Builder),
		predictor: opts.Predictor,
		log:       log,
		db:        opts.DB,
		gist:      opts.Gist,
		notifiers: opts.Notifiers,
		dryRun:    opts.DryRun,
	}
}

// TryRun starts a run unless one is already in progress. Used by the manual
// /run endpoint.
func (j *Daily) TryRun(ctx context.Context) bool {
	if !j.running.CompareAndSwap(false, true) {
		return false
	}
	go func() {
		defer j.running.Store(false)
		if err := j.run(ctx); err != nil {
			slog.Error("Pipeline run failed", "error", err)
		}
	}()
	return true
}

// Run executes one pipeline run and blocks until it finishes.
func (j *Daily) Run(ctx context.Context) error {
	if !j.running.CompareAndSwap(false, true) {
		return fmt.Errorf("a run is already in progress")
	}
	defer j.running.Store(false)
	return j.run(ctx)
}

func (j *Daily) run(ctx context.Context) error {
	started := time.Now()
	tracker := performance.GetTracker()

	// 1) Scrape
	matches := scraper.FetchAll(ctx, j.sources, j.cache)
	matches = validation.FilterValid(matches)
	scrapeDone := time.Now()
	if len(matches) == 0 {
		err := fmt.Errorf("no matches scraped from any source")
		tracker.RecordRun(scrapeDone.Sub(started), 0, time.Since(started), 0, false, err)
		return err
	}
	slog.Info("Matches ready", "count", len(matches))

	// 2) Candidates, optional model enrichment
	candidates := j.builder.Candidates(matches)
	if j.predictor != nil && j.predictor.Enabled() {
		candidates = builder.Enrich(ctx, candidates, matches, j.predictor, j.cfg.Predictor.MaxCalls)
	}

	// 3) Build the accumulator
	pick := j.builder.Build(candidates)
	buildDone := time.Now()
	if pick == nil {
		err := fmt.Errorf("no accumulator could be built from %d candidates", len(candidates))
		tracker.RecordRun(scrapeDone.Sub(started), buildDone.Sub(scrapeDone), time.Since(started), len(matches), false, err)
		return err
	}

	pick.CreatedAt = time.Now().UTC()
	pick.ID = pick.CreatedAt.Format("20060102-150405")
	pick.Stake = j.cfg.Builder.Stake

	inRange := pick.InTargetRange(j.cfg.Builder.TargetMin, j.cfg.Builder.TargetMax)
	slog.Info("Accumulator built",
		"legs", len(pick.Legs),
		"total_odds", pick.TotalOdds,
		"in_target_range", inRange,
	)
	if !inRange {
		slog.Warn("Combined odds outside target range; sending best effort",
			"total_odds", pick.TotalOdds,
			"target_min", j.cfg.Builder.TargetMin,
			"target_max", j.cfg.Builder.TargetMax,
		)
	}

	if j.dryRun {
		slog.Info("Dry run: skipping persistence and notifications")
		fmt.Print(report.FormatDaily(pick))
		tracker.RecordRun(scrapeDone.Sub(started), buildDone.Sub(scrapeDone), time.Since(started), len(matches), inRange, nil)
		return nil
	}

	// 4) Persist
	j.persist(ctx, pick)

	// 5) Notify
	j.notify(ctx, pick)

	tracker.RecordRun(scrapeDone.Sub(started), buildDone.Sub(scrapeDone), time.Since(started), len(matches), inRange, nil)
	slog.Info("Pipeline run finished", "duration", time.Since(started).Round(time.Millisecond))
	return nil
}

// persist writes the pick everywhere it should go. Storage failures are
// logged, not fatal: losing one backend must not stop the email going out.
func (j *Daily) persist(ctx context.Context, pick *models.Accumulator) {
	if err := j.log.StorePick(ctx, pick); err != nil {
		slog.Error("Failed to append pick to JSON log", "error", err)
	}
	if j.db != nil {
		if err := j.db.StorePick(ctx, pick); err != nil {
			slog.Error("Failed to store pick in database", "error", err)
		}
	}
	if j.gist != nil {
		snapshot, err := j.log.Snapshot()
		if err != nil {
			slog.Error("Failed to snapshot pick log for gist", "error", err)
		} else if err := j.gist.Upload(ctx, snapshot); err != nil {
			slog.Error("Failed to mirror pick log to gist", "error", err)
		}
	}
}

func (j *Daily) notify(ctx context.Context, pick *models.Accumulator) {
	stats := j.weeklyStats(ctx)
	body := report.Body(pick, stats)
	tracker := performance.GetTracker()

	for _, n := range j.notifiers {
		if n == nil {
			continue
		}
		if err := n.SendPick(ctx, j.cfg.Email.Subject, body); err != nil {
			slog.Error("Notification failed", "error", err)
			continue
		}
		if _, ok := n.(*notify.TelegramNotifier); ok {
			tracker.RecordTelegram()
		} else {
			tracker.RecordEmail()
		}
	}
}

func (j *Daily) weeklyStats(ctx context.Context) report.WeeklyStats {
	store := storage.PickStorage(j.log)
	if j.db != nil {
		store = j.db
	}

	picks, err := store.GetPicksSince(ctx, time.Now().UTC().AddDate(0, 0, -7))
	if err != nil {
		slog.Warn("Failed to load picks for weekly report", "error", err)
		return report.WeeklyStats{Balance: j.cfg.Builder.StartBankroll}
	}

	// GetPicksSince returns newest first; the rollover replays oldest first.
	for i, k := 0, len(picks)-1; i < k; i, k = i+1, k-1 {
		picks[i], picks[k] = picks[k], picks[i]
	}
	return report.Weekly(picks, j.cfg.Builder.StartBankroll, time.Now().UTC())
}
