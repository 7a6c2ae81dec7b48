package handlers

import (
	"net/http"
)

// TriggerRunFunc requests one pipeline run; returns false when a run is
// already in progress
type TriggerRunFunc func() bool

var triggerRun TriggerRunFunc

// SetTriggerRunFunc injects the manual run trigger
func SetTriggerRunFunc(f TriggerRunFunc) {
	triggerRun = f
}

// HandleRun handles POST /run: triggers one pipeline run in daemon mode.
func HandleRun(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "POST required", http.StatusMethodNotAllowed)
		return
	}
	if triggerRun == nil {
		http.Error(w, "manual runs not available", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if triggerRun() {
		w.WriteHeader(http.StatusAccepted)
		_, _ = w.Write([]byte("run triggered\n"))
		return
	}
	http.Error(w, "run already in progress", http.StatusConflict)
}
