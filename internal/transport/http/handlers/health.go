package handlers

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db    *sql.DB
	cache Pinger
}

func NewHealthHandler(db *sql.DB, cache Pinger) *HealthHandler {
	return &HealthHandler{db: db, cache: cache}
}

// Healthz handles GET /healthz
func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// Readyz handles GET /readyz. Readiness requires the database; the cache is
// reported but not gating, the service degrades without it.
func (h *HealthHandler) Readyz(w http.ResponseWriter, r *http.Request) {
	if h.db != nil {
		if err := h.db.PingContext(r.Context()); err != nil {
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			w.WriteHeader(http.StatusServiceUnavailable)
			_ = json.NewEncoder(w).Encode(map[string]string{
				"status": "unavailable",
				"error":  "database unavailable",
			})
			return
		}
	}

	cacheStatus := "ok"
	if h.cache != nil {
		if err := h.cache.Ping(r.Context()); err != nil {
			cacheStatus = "unavailable"
		}
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"status": "ready",
		"cache":  cacheStatus,
	})
}
