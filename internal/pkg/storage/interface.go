package storage

import (
	"context"
	"time"

	"github.com/malingi/accabot/internal/pkg/models"
)

// PickStorage interface for persisting daily accumulator picks
type PickStorage interface {
	// StorePick appends a new accumulator pick
	StorePick(ctx context.Context, pick *models.Accumulator) error

	// GetPicksSince returns picks created at or after the given time,
	// newest first
	GetPicksSince(ctx context.Context, since time.Time) ([]models.Accumulator, error)

	// GetRecentPicks returns up to limit most recent picks
	GetRecentPicks(ctx context.Context, limit int) ([]models.Accumulator, error)

	// SettlePick marks a pick as won or lost
	SettlePick(ctx context.Context, pickID string, won bool) error

	// Close releases the underlying resources
	Close() error
}

// MatchCache interface for short-lived caching of scraped matches
type MatchCache interface {
	// StoreMatches caches matches from one source for the configured TTL
	StoreMatches(ctx context.Context, source string, matches []models.Match) error

	// GetMatches returns cached matches for a source, nil when the cache
	// is cold or expired
	GetMatches(ctx context.Context, source string) ([]models.Match, error)

	// Close releases the underlying connection
	Close() error
}
