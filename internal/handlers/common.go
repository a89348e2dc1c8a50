package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/bytedance/sonic"

	"github.com/fireballs/brady-stats/internal/models"
)

// Health check endpoint
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.jsonResponse(w, http.StatusOK, map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().UTC(),
	})
}

// Ready check endpoint
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	checks := map[string]bool{}
	if h.upstream != nil {
		checks["upstream"] = h.upstream.Ping(ctx) == nil
	}
	if h.redis != nil {
		checks["redis"] = h.redis.Ping(ctx).Err() == nil
	}

	allHealthy := true
	for name, ok := range checks {
		if !ok {
			h.logger.Warnw("Readiness check failed", "dependency", name)
			allHealthy = false
		}
	}

	status := http.StatusOK
	if !allHealthy {
		status = http.StatusServiceUnavailable
	}
	h.jsonResponse(w, status, map[string]interface{}{
		"ready":  allHealthy,
		"checks": checks,
	})
}

func (h *Handler) jsonResponse(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = sonic.ConfigDefault.NewEncoder(w).Encode(data)
}

func (h *Handler) errorResponse(w http.ResponseWriter, status int, message string) {
	h.jsonResponse(w, status, map[string]string{"error": message})
}

// serviceError maps a view service error to a response. Missing upstream
// records are 404; anything else means the upstream API failed us.
func (h *Handler) serviceError(w http.ResponseWriter, r *http.Request, err error, what string, keysAndValues ...interface{}) {
	if errors.Is(err, models.ErrNotFound) {
		h.errorResponse(w, http.StatusNotFound, what+" not found")
		return
	}
	if errors.Is(err, context.Canceled) && r.Context().Err() != nil {
		// client went away
		return
	}
	h.logger.Errorw("Failed to load "+what, append(keysAndValues, "error", err)...)
	h.errorResponse(w, http.StatusBadGateway, "Failed to load "+what)
}
