package handler

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
)

const healthCheckTimeout = 3 * time.Second

// Pinger is a dependency that can report whether it is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler reports the state of the local store and the remote record sources
type HealthHandler struct {
	local   Pinger
	remotes map[string]Pinger
}

// NewHealthHandler creates a new health handler. remotes may be empty.
func NewHealthHandler(local Pinger, remotes map[string]Pinger) *HealthHandler {
	return &HealthHandler{local: local, remotes: remotes}
}

// GetHealth handles GET /health.
// A failing local store is unhealthy (503); a failing remote only degrades,
// since training falls back to local records.
func (h *HealthHandler) GetHealth(c *gin.Context) {
	checks := make(map[string]string, len(h.remotes)+1)

	status := "ok"
	code := http.StatusOK

	if h.local != nil {
		if err := h.ping(c.Request.Context(), h.local); err != nil {
			checks["local"] = err.Error()
			status = "unhealthy"
			code = http.StatusServiceUnavailable
		} else {
			checks["local"] = "ok"
		}
	}

	names := make([]string, 0, len(h.remotes))
	for name := range h.remotes {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := h.ping(c.Request.Context(), h.remotes[name]); err != nil {
			checks[name] = err.Error()
			if status == "ok" {
				status = "degraded"
			}
			continue
		}
		checks[name] = "ok"
	}

	c.JSON(code, gin.H{
		"status":  status,
		"message": "Disease Risk API is running",
		"checks":  checks,
	})
}

func (h *HealthHandler) ping(ctx context.Context, p Pinger) error {
	ctx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()
	return p.Ping(ctx)
}
