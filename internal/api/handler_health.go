package api

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"
)

// Pinger is satisfied by *pgxpool.Pool and *storage.PostgresStore.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler serves liveness and readiness checks.
type HealthHandler struct {
	backends map[string]Pinger
	timeout  time.Duration
	logger   *slog.Logger
}

// NewHealthHandler creates a HealthHandler; timeout bounds the whole
// readiness check, zero means no bound.
func NewHealthHandler(backends map[string]Pinger, timeout time.Duration, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{backends: backends, timeout: timeout, logger: logger}
}

type backendStatus struct {
	Status    string `json:"status"`
	LatencyMs int64  `json:"latency_ms,omitempty"`
	Error     string `json:"error,omitempty"`
}

type readyzResponse struct {
	Status   string                   `json:"status"`
	Backends map[string]backendStatus `json:"backends,omitempty"`
}

// Livez reports that the process can serve HTTP.
func (h *HealthHandler) Livez(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Readyz pings every backend concurrently and reports each one.
func (h *HealthHandler) Readyz(w http.ResponseWriter, r *http.Request) {
	if len(h.backends) == 0 {
		writeJSON(w, http.StatusOK, readyzResponse{Status: "ok"})
		return
	}

	ctx := r.Context()
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	var (
		mu   sync.Mutex
		wg   sync.WaitGroup
		resp = readyzResponse{Status: "ok", Backends: make(map[string]backendStatus, len(h.backends))}
	)

	for name, p := range h.backends {
		wg.Add(1)
		go func(name string, p Pinger) {
			defer wg.Done()
			start := time.Now()
			err := p.Ping(ctx)
			st := backendStatus{Status: "ok", LatencyMs: time.Since(start).Milliseconds()}
			if err != nil {
				st.Status = "error"
				st.Error = err.Error()
			}
			mu.Lock()
			resp.Backends[name] = st
			if err != nil {
				resp.Status = "unavailable"
			}
			mu.Unlock()
		}(name, p)
	}
	wg.Wait()

	if resp.Status != "ok" {
		h.logger.Warn("readiness check failed", "backends", resp.Backends)
		writeJSON(w, http.StatusServiceUnavailable, resp)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
