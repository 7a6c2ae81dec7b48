package interfaces

import (
	"context"

	"github.com/malingi/accabot/internal/pkg/models"
)

// Source interface for odds site scrapers
type Source interface {
	// Name returns the source name
	Name() string

	// FetchMatches fetches upcoming football matches with 1X2 odds
	FetchMatches(ctx context.Context) ([]models.Match, error)
}

// Predictor interface for optional model probability enrichment
type Predictor interface {
	// Enabled reports whether the predictor is configured
	Enabled() bool

	// Probabilities returns outcome probabilities for a match, keyed by
	// "home"/"draw"/"away". A nil map with nil error means the model could
	// not produce usable numbers; the caller falls back to implied odds.
	Probabilities(ctx context.Context, match *models.Match) (map[string]float64, error)
}

// Notifier interface for daily pick delivery channels
type Notifier interface {
	// SendPick delivers a formatted daily pick message
	SendPick(ctx context.Context, subject, body string) error
}
