package betexplorer

import (
	"context"
	"fmt"
	"time"

	"github.com/malingi/accabot/internal/pkg/config"
	"github.com/malingi/accabot/internal/pkg/interfaces"
	"github.com/malingi/accabot/internal/pkg/models"
	"github.com/malingi/accabot/internal/scraper"
)

const sourceName = "betexplorer"

func init() {
	scraper.Register(sourceName, func(cfg *config.Config) interfaces.Source {
		return New(cfg)
	})
}

// Ensure Source implements interfaces.Source
var _ interfaces.Source = (*Source)(nil)

// Source scrapes upcoming soccer matches and 1X2 odds from BetExplorer.
type Source struct {
	client *Client
	limit  int
}

func New(cfg *config.Config) *Source {
	return &Source{
		client: NewClient(cfg.Scraper.BetExplorer.BaseURL, cfg.Scraper.UserAgent, cfg.Scraper.Timeout),
		limit:  cfg.Scraper.MatchLimit,
	}
}

func (s *Source) Name() string {
	return sourceName
}

func (s *Source) FetchMatches(ctx context.Context) ([]models.Match, error) {
	html, err := s.client.GetNextSoccer(ctx)
	if err != nil {
		return nil, fmt.Errorf("betexplorer fetch failed: %w", err)
	}
	return ParseMatches(html, s.limit, time.Now().UTC())
}
