package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/malingi/accabot/internal/pkg/models"
)

// Ensure JSONLog implements PickStorage
var _ PickStorage = (*JSONLog)(nil)

// JSONLog is the append-only local pick log: a single JSON array file,
// read whole and rewritten on every append. Cron environments persist the
// working directory between runs, which is all this needs.
type JSONLog struct {
	path string
	mu   sync.Mutex
}

// NewJSONLog creates a JSON file log at the given path. The file is created
// lazily on first append; a missing file reads as an empty log.
func NewJSONLog(path string) (*JSONLog, error) {
	if path == "" {
		return nil, fmt.Errorf("json log path is required")
	}
	return &JSONLog{path: path}, nil
}

func (l *JSONLog) readAll() ([]models.Accumulator, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read pick log: %w", err)
	}
	var picks []models.Accumulator
	if err := json.Unmarshal(data, &picks); err != nil {
		return nil, fmt.Errorf("failed to parse pick log: %w", err)
	}
	return picks, nil
}

func (l *JSONLog) writeAll(picks []models.Accumulator) error {
	data, err := json.MarshalIndent(picks, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal pick log: %w", err)
	}
	tmp := l.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write pick log: %w", err)
	}
	return os.Rename(tmp, l.path)
}

// StorePick appends a pick to the log file.
func (l *JSONLog) StorePick(_ context.Context, pick *models.Accumulator) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	picks, err := l.readAll()
	if err != nil {
		return err
	}
	picks = append(picks, *pick)
	return l.writeAll(picks)
}

// GetPicksSince returns picks created at or after since, newest first.
func (l *JSONLog) GetPicksSince(_ context.Context, since time.Time) ([]models.Accumulator, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	picks, err := l.readAll()
	if err != nil {
		return nil, err
	}
	out := make([]models.Accumulator, 0, len(picks))
	for _, p := range picks {
		if !p.CreatedAt.Before(since) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// GetRecentPicks returns up to limit most recent picks.
func (l *JSONLog) GetRecentPicks(ctx context.Context, limit int) ([]models.Accumulator, error) {
	picks, err := l.GetPicksSince(ctx, time.Time{})
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(picks) > limit {
		picks = picks[:limit]
	}
	return picks, nil
}

// SettlePick marks the pick with the given ID as won or lost.
func (l *JSONLog) SettlePick(_ context.Context, pickID string, won bool) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	picks, err := l.readAll()
	if err != nil {
		return err
	}
	for i := range picks {
		if picks[i].ID == pickID {
			picks[i].Won = &won
			return l.writeAll(picks)
		}
	}
	return fmt.Errorf("pick %q not found in log", pickID)
}

// Snapshot returns the raw log content for mirroring (e.g. to a Gist).
// Returns "[]" when the log is empty.
func (l *JSONLog) Snapshot() (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	picks, err := l.readAll()
	if err != nil {
		return "", err
	}
	if picks == nil {
		return "[]", nil
	}
	data, err := json.MarshalIndent(picks, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Close is a no-op; the log has no open handles between calls.
func (l *JSONLog) Close() error {
	return nil
}
