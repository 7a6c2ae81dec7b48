package builder

import (
	"context"
	"log/slog"

	"github.com/malingi/accabot/internal/pkg/interfaces"
	"github.com/malingi/accabot/internal/pkg/models"
)

// Enrich fills model probabilities for candidates from up to maxCalls
// distinct matches. Inference quota is limited, so the budget caps how many
// matches get a model opinion; the rest keep their implied probability.
// Failures are logged and skipped, never fatal.
func Enrich(ctx context.Context, candidates []models.Selection, matches []models.Match, predictor interfaces.Predictor, maxCalls int) []models.Selection {
	if predictor == nil || !predictor.Enabled() || maxCalls <= 0 {
		return candidates
	}

	called := 0
	for i := range matches {
		if called >= maxCalls {
			break
		}
		m := &matches[i]

		probs, err := predictor.Probabilities(ctx, m)
		if err != nil {
			slog.Warn("Predictor call failed", "match", m.Name(), "error", err)
			continue
		}
		if probs == nil {
			continue
		}
		called++

		for j := range candidates {
			if candidates[j].MatchID != m.ID {
				continue
			}
			if p, ok := probs[candidates[j].Outcome]; ok {
				prob := p
				candidates[j].ModelProb = &prob
			}
		}
	}

	if called > 0 {
		slog.Info("Candidates enriched with model probabilities", "matches", called)
	}
	return candidates
}
