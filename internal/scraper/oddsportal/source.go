package oddsportal

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/malingi/accabot/internal/pkg/config"
	"github.com/malingi/accabot/internal/pkg/interfaces"
	"github.com/malingi/accabot/internal/pkg/models"
	"github.com/malingi/accabot/internal/scraper"
)

const (
	sourceName     = "oddsportal"
	defaultBaseURL = "https://www.oddsportal.com"
)

func init() {
	scraper.Register(sourceName, func(cfg *config.Config) interfaces.Source {
		return New(cfg)
	})
}

// Ensure Source implements interfaces.Source
var _ interfaces.Source = (*Source)(nil)

// Source scrapes OddsPortal's next-matches football page. OddsPortal draws
// its odds table client-side, so the page is rendered in headless Chrome
// first and the resulting DOM is parsed with goquery.
type Source struct {
	baseURL       string
	userAgent     string
	renderTimeout time.Duration
	limit         int
	driverOpts    []chromedp.ExecAllocatorOption
}

func New(cfg *config.Config) *Source {
	baseURL := cfg.Scraper.OddsPortal.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	renderTimeout := cfg.Scraper.OddsPortal.RenderTimeout
	if renderTimeout <= 0 {
		renderTimeout = 45 * time.Second
	}

	// Desktop viewport so the site does not fall back to the mobile layout.
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("force-device-scale-factor", "1"),
		chromedp.Flag("window-size", "1920,1080"),
		chromedp.UserAgent(cfg.Scraper.UserAgent),
	)

	return &Source{
		baseURL:       strings.TrimSuffix(baseURL, "/"),
		userAgent:     cfg.Scraper.UserAgent,
		renderTimeout: renderTimeout,
		limit:         cfg.Scraper.MatchLimit,
		driverOpts:    opts,
	}
}

func (s *Source) Name() string {
	return sourceName
}

func (s *Source) FetchMatches(ctx context.Context) ([]models.Match, error) {
	html, err := s.renderNextMatches(ctx)
	if err != nil {
		return nil, fmt.Errorf("oddsportal render failed: %w", err)
	}
	return ParseMatches(html, s.limit, time.Now().UTC())
}

func (s *Source) renderNextMatches(ctx context.Context) (string, error) {
	allocCtx, cancel := chromedp.NewExecAllocator(ctx, s.driverOpts...)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, s.renderTimeout)
	defer cancel()

	url := s.baseURL + "/matches/football/"

	var html string
	err := chromedp.Run(
		browserCtx,
		chromedp.Navigate(url),
		chromedp.WaitVisible(`div[data-testid="game-row"], .eventRow`, chromedp.ByQuery),
		chromedp.InnerHTML("body", &html, chromedp.ByQuery),
	)
	if err != nil {
		return "", err
	}
	return html, nil
}
