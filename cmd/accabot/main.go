package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"github.com/malingi/accabot/internal/job"
	"github.com/malingi/accabot/internal/notify"
	"github.com/malingi/accabot/internal/pkg/config"
	"github.com/malingi/accabot/internal/pkg/health"
	"github.com/malingi/accabot/internal/pkg/interfaces"
	"github.com/malingi/accabot/internal/pkg/logging"
	"github.com/malingi/accabot/internal/pkg/storage"
	"github.com/malingi/accabot/internal/predictor"
	"github.com/malingi/accabot/internal/scraper"

	// Register all supported sources via init().
	_ "github.com/malingi/accabot/internal/scraper/all"
)

const (
	defaultConfigPath = "configs/production.yaml"
)

type flags struct {
	configPath string
	daemon     bool
	dryRun     bool
	source     string // Override scraper.enabled_sources (e.g. "betexplorer")
}

func main() {
	if err := run(); err != nil {
		slog.Error("Bot failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// .env is optional; real deployments set env vars directly
	_ = godotenv.Load()

	cfg := parseFlags()
	slog.Info("Loading config", "path", cfg.configPath)

	appConfig, err := config.Load(cfg.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	_, err = logging.SetupLogger(&appConfig.Logging, "accabot")
	if err != nil {
		slog.Warn("Failed to setup logging, continuing with default logger", "error", err)
	}

	if cfg.source != "" {
		appConfig.Scraper.EnabledSources = []string{cfg.source}
	}
	sources, err := scraper.SelectSources(appConfig)
	if err != nil {
		return err
	}
	printSelectedSources(sources)

	pickLog, err := storage.NewJSONLog(appConfig.Storage.JSONLogPath)
	if err != nil {
		return fmt.Errorf("failed to open pick log: %w", err)
	}

	opts := buildOptions(appConfig, cfg.dryRun)
	defer closeOptions(opts)

	daily := job.NewDaily(appConfig, sources, pickLog, opts)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	setupSignalHandler(ctx, cancel)

	if !cfg.daemon {
		return daily.Run(ctx)
	}
	return runDaemon(ctx, appConfig, daily, pickLog, opts)
}

// buildOptions wires the optional backends: each one is skipped with a log
// line when its config is absent, so a bare config still produces a working
// scrape-and-email bot.
func buildOptions(cfg *config.Config, dryRun bool) job.Options {
	opts := job.Options{DryRun: dryRun}

	if dsn := cfg.Storage.PostgresDSN; dsn != "" {
		db, err := storage.NewPostgresPickStorage(dsn)
		if err != nil {
			slog.Error("Postgres unavailable, falling back to JSON log only", "error", err)
		} else {
			opts.DB = db
		}
	} else {
		slog.Info("Postgres DSN not configured, using JSON log only")
	}

	if addr := cfg.Storage.Redis.Addr; addr != "" {
		cache, err := storage.NewRedisMatchCache(addr, cfg.Storage.Redis.Password, cfg.Storage.Redis.DB, cfg.Storage.Redis.TTL)
		if err != nil {
			slog.Warn("Redis unavailable, scraping without match cache", "error", err)
		} else {
			opts.Cache = cache
		}
	}

	if token := cfg.Storage.Gist.Token; token != "" {
		opts.Gist = storage.NewGistMirror(token, cfg.Storage.Gist.ID, "accumulator_log.json")
	} else {
		slog.Info("GIST_TOKEN not set, skipping gist mirror")
	}

	hf := predictor.NewHuggingFace(cfg.Predictor)
	if hf.Enabled() {
		opts.Predictor = hf
	} else {
		slog.Info("HF_API_KEY not set, ranking selections by implied probability")
	}

	if email := notify.NewEmailNotifier(cfg.Email); email != nil {
		opts.Notifiers = append(opts.Notifiers, email)
	}
	if tg := notify.NewTelegramNotifier(cfg.Telegram); tg != nil {
		opts.Notifiers = append(opts.Notifiers, tg)
	}

	return opts
}

func closeOptions(opts job.Options) {
	if opts.DB != nil {
		if err := opts.DB.Close(); err != nil {
			slog.Warn("Failed to close database", "error", err)
		}
	}
	if opts.Cache != nil {
		if err := opts.Cache.Close(); err != nil {
			slog.Warn("Failed to close match cache", "error", err)
		}
	}
}

// runDaemon keeps the process alive: cron fires pipeline runs on the
// configured schedule and the health server exposes status plus a manual
// /run trigger.
func runDaemon(ctx context.Context, cfg *config.Config, daily *job.Daily, pickLog *storage.JSONLog, opts job.Options) error {
	expr := cfg.Schedule.CronExpr
	if expr == "" {
		return fmt.Errorf("schedule.cron_expr must be set in daemon mode")
	}

	c := cron.New()
	_, err := c.AddFunc(expr, func() {
		if !daily.TryRun(ctx) {
			slog.Warn("Scheduled run skipped: previous run still in progress")
		}
	})
	if err != nil {
		return fmt.Errorf("invalid cron expression %q: %w", expr, err)
	}

	if port := cfg.Health.Port; port > 0 {
		var picksBackend storage.PickStorage = pickLog
		if opts.DB != nil {
			picksBackend = opts.DB
		}
		health.RegisterPickStorage(picksBackend)
		health.RegisterRunTrigger(func() bool { return daily.TryRun(ctx) })
		health.Run(ctx, health.AddrFor(port), cfg.Health.ReadHeaderTimeout)
	}

	c.Start()
	slog.Info("Daemon started", "cron", expr)

	<-ctx.Done()
	slog.Info("Shutting down...")
	stopCtx := c.Stop()
	<-stopCtx.Done()
	return nil
}

func parseFlags() flags {
	var cfg flags

	defaultConfig := os.Getenv("CONFIG_PATH")
	if defaultConfig == "" {
		defaultConfig = defaultConfigPath
	}

	flag.StringVar(&cfg.configPath, "config", defaultConfig, "Path to config file (can be set via CONFIG_PATH env var)")
	flag.BoolVar(&cfg.daemon, "daemon", false, "Run on the configured cron schedule instead of once")
	flag.BoolVar(&cfg.dryRun, "dry-run", false, "Build and print the accumulator without storing or sending it")
	flag.StringVar(&cfg.source, "source", "", "Override scraper.enabled_sources: specify one source name. Empty = use config")
	flag.Parse()
	return cfg
}

func printSelectedSources(sources []interfaces.Source) {
	names := make([]string, 0, len(sources))
	for _, s := range sources {
		names = append(names, s.Name())
	}
	sort.Strings(names)
	slog.Info("Using sources", "sources", strings.Join(names, ", "))
}

func setupSignalHandler(ctx context.Context, cancel context.CancelFunc) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case sig := <-sigChan:
			slog.Info("Received signal, shutting down...", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()
}
