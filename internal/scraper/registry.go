package scraper

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/malingi/accabot/internal/pkg/config"
	"github.com/malingi/accabot/internal/pkg/interfaces"
)

type Factory func(cfg *config.Config) interfaces.Source

var (
	registryMu sync.RWMutex
	registry   = map[string]Factory{}
)

func Register(name string, f Factory) {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" {
		panic("scraper: empty name in Register")
	}
	if f == nil {
		panic("scraper: nil factory in Register for " + n)
	}

	registryMu.Lock()
	defer registryMu.Unlock()
	if _, exists := registry[n]; exists {
		panic("scraper: duplicate registration for " + n)
	}
	registry[n] = f
}

func FactoryByName(name string) (Factory, bool) {
	n := strings.ToLower(strings.TrimSpace(name))
	registryMu.RLock()
	defer registryMu.RUnlock()
	f, ok := registry[n]
	return f, ok
}

func AvailableNames() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	out := make([]string, 0, len(registry))
	for k := range registry {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// SelectSources resolves the configured source names to instances.
func SelectSources(cfg *config.Config) ([]interfaces.Source, error) {
	names := cfg.Scraper.EnabledSources
	if len(names) == 0 {
		names = AvailableNames()
	}
	sources := make([]interfaces.Source, 0, len(names))
	for _, name := range names {
		f, ok := FactoryByName(name)
		if !ok {
			return nil, fmt.Errorf("unknown source %q (available: %v)", name, AvailableNames())
		}
		sources = append(sources, f(cfg))
	}
	return sources, nil
}
