package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/ryanbastic/classtrak/internal/metrics"
	"github.com/ryanbastic/classtrak/internal/storage"
)

// NewServer creates an HTTP server with all routes configured.
// backends are pinged by the readiness check within readyTimeout.
func NewServer(logger *slog.Logger, store storage.StudentStore, backends map[string]Pinger, readyTimeout time.Duration) http.Handler {
	mux := chi.NewRouter()

	mux.Use(RequestID)
	mux.Use(metrics.Metrics)
	mux.Use(Logging(logger))
	mux.Use(Recovery(logger))
	mux.Use(CORS)

	health := NewHealthHandler(backends, readyTimeout, logger)
	mux.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte("Hello World!"))
	})
	mux.Get("/livez", health.Livez)
	mux.Get("/readyz", health.Readyz)
	mux.Handle("/metrics", promhttp.Handler())

	// Response bodies must match the wire format exactly, so skip the
	// $schema link huma adds by default.
	cfg := huma.DefaultConfig("ClassTrak API", "1.0.0")
	cfg.CreateHooks = nil
	api := humachi.New(mux, cfg)

	registerStudentRoutes(api, NewStudentHandler(store, logger))

	return mux
}
