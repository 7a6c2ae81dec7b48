package health

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/malingi/accabot/internal/pkg/health/handlers"
	"github.com/malingi/accabot/internal/pkg/models"
	"github.com/malingi/accabot/internal/pkg/storage"
)

// RegisterPickStorage wires the pick storage into the /picks endpoint.
func RegisterPickStorage(store storage.PickStorage) {
	handlers.SetGetPicksFunc(func(limit int) ([]models.Accumulator, error) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return store.GetRecentPicks(ctx, limit)
	})
}

// RegisterRunTrigger wires the manual run trigger into POST /run.
func RegisterRunTrigger(trigger handlers.TriggerRunFunc) {
	handlers.SetTriggerRunFunc(trigger)
}

// AddrFor returns the listen address for a port.
func AddrFor(port int) string {
	return fmt.Sprintf(":%d", port)
}

// Run starts the health server in the background and shuts it down when the
// context is cancelled.
func Run(ctx context.Context, addr string, readHeaderTimeout time.Duration) {
	mux := http.NewServeMux()

	// Health endpoints
	mux.HandleFunc("/ping", handlers.HandlePing)
	mux.HandleFunc("/health", handlers.HandleHealth)

	// Metrics endpoint
	mux.HandleFunc("/metrics", handlers.HandleMetrics)

	// Recent picks
	mux.HandleFunc("/picks", handlers.HandlePicks)

	// Manual run trigger (daemon mode)
	mux.HandleFunc("/run", handlers.HandleRun)

	if readHeaderTimeout <= 0 {
		slog.Error("read_header_timeout must be specified in config")
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	go func() {
		slog.Info("Health server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Health server failed", "error", err)
		}
	}()
}
