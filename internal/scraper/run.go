package scraper

import (
	"context"
	"log/slog"
	"sync"

	"github.com/malingi/accabot/internal/pkg/interfaces"
	"github.com/malingi/accabot/internal/pkg/models"
	"github.com/malingi/accabot/internal/pkg/storage"
)

// FetchAll runs every source in parallel, consults the match cache first,
// and merges the results by canonical match ID. A failing source is logged
// and skipped; the run only fails when no source produced anything.
func FetchAll(ctx context.Context, sources []interfaces.Source, cache storage.MatchCache) []models.Match {
	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)
	lists := make([][]models.Match, 0, len(sources))

	for _, src := range sources {
		src := src
		wg.Add(1)
		go func() {
			defer wg.Done()

			matches := fromCache(ctx, cache, src.Name())
			if matches == nil {
				var err error
				matches, err = src.FetchMatches(ctx)
				if err != nil && ctx.Err() == nil {
					slog.Error("Source failed", "source", src.Name(), "error", err)
					return
				}
				toCache(ctx, cache, src.Name(), matches)
			}

			slog.Info("Source finished", "source", src.Name(), "matches", len(matches))
			mu.Lock()
			lists = append(lists, matches)
			mu.Unlock()
		}()
	}
	wg.Wait()

	return MergeMatchLists(lists)
}

func fromCache(ctx context.Context, cache storage.MatchCache, source string) []models.Match {
	if cache == nil {
		return nil
	}
	matches, err := cache.GetMatches(ctx, source)
	if err != nil {
		slog.Warn("Match cache read failed", "source", source, "error", err)
		return nil
	}
	if matches != nil {
		slog.Info("Using cached matches", "source", source, "matches", len(matches))
	}
	return matches
}

func toCache(ctx context.Context, cache storage.MatchCache, source string, matches []models.Match) {
	if cache == nil || len(matches) == 0 {
		return
	}
	if err := cache.StoreMatches(ctx, source, matches); err != nil {
		slog.Warn("Match cache write failed", "source", source, "error", err)
	}
}
