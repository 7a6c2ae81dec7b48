package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/malingi/accabot/internal/pkg/models"
)

// GetPicksFunc returns recent picks for the /picks endpoint
type GetPicksFunc func(limit int) ([]models.Accumulator, error)

var getPicks GetPicksFunc

// SetGetPicksFunc injects the pick retrieval function (avoids an import
// cycle with the health package)
func SetGetPicksFunc(f GetPicksFunc) {
	getPicks = f
}

// HandlePicks handles /picks endpoint. Optional ?limit=N, default 20.
func HandlePicks(w http.ResponseWriter, r *http.Request) {
	if getPicks == nil {
		http.Error(w, "pick storage not configured", http.StatusServiceUnavailable)
		return
	}

	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	picks, err := getPicks(limit)
	if err != nil {
		http.Error(w, fmt.Sprintf("failed to load picks: %v", err), http.StatusInternalServerError)
		return
	}
	if picks == nil {
		picks = []models.Accumulator{}
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if err := json.NewEncoder(w).Encode(picks); err != nil {
		http.Error(w, fmt.Sprintf("failed to encode picks: %v", err), http.StatusInternalServerError)
		return
	}
}
