// Command settle marks a logged pick as won or lost so the weekly report
// can roll the balance forward.
//
// Usage:
//
//	settle -id 20250301-090000 -result won
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/malingi/accabot/internal/pkg/config"
	"github.com/malingi/accabot/internal/pkg/storage"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Settle failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	defaultConfig := os.Getenv("CONFIG_PATH")
	if defaultConfig == "" {
		defaultConfig = "configs/production.yaml"
	}

	configPath := flag.String("config", defaultConfig, "Path to config file")
	pickID := flag.String("id", "", "Pick ID to settle (see /picks or the JSON log)")
	result := flag.String("result", "", "Outcome: 'won' or 'lost'")
	flag.Parse()

	if *pickID == "" {
		return fmt.Errorf("-id is required")
	}
	var won bool
	switch *result {
	case "won":
		won = true
	case "lost":
		won = false
	default:
		return fmt.Errorf("-result must be 'won' or 'lost', got %q", *result)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	pickLog, err := storage.NewJSONLog(cfg.Storage.JSONLogPath)
	if err != nil {
		return fmt.Errorf("failed to open pick log: %w", err)
	}
	if err := pickLog.SettlePick(ctx, *pickID, won); err != nil {
		return fmt.Errorf("failed to settle pick in JSON log: %w", err)
	}

	if dsn := cfg.Storage.PostgresDSN; dsn != "" {
		db, err := storage.NewPostgresPickStorage(dsn)
		if err != nil {
			slog.Warn("Postgres unavailable, settled JSON log only", "error", err)
		} else {
			defer db.Close()
			if err := db.SettlePick(ctx, *pickID, won); err != nil {
				slog.Warn("Failed to settle pick in database", "error", err)
			}
		}
	}

	slog.Info("Pick settled", "id", *pickID, "result", *result)
	return nil
}
