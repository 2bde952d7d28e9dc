package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger is anything whose liveness the health endpoint reports on.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler serves liveness and readiness probes.
type HealthHandler struct {
	version string
	cache   Pinger // nil when caching is disabled
}

// NewHealthHandler constructs the handler.  cache may be nil.
func NewHealthHandler(version string, cache Pinger) *HealthHandler {
	return &HealthHandler{version: version, cache: cache}
}

// RegisterRoutes mounts the probes at the router root.
func (h *HealthHandler) RegisterRoutes(r *gin.Engine) {
	r.GET("/healthz", h.Healthz)
	r.GET("/readyz", h.Readyz)
}

// Healthz is the liveness probe: the process is up.
func (h *HealthHandler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "version": h.version})
}

// Readyz is the readiness probe: dependencies are reachable.  A degraded
// cache is reported but does not fail readiness, the service works
// without it.
func (h *HealthHandler) Readyz(c *gin.Context) {
	resp := gin.H{"status": "ok", "version": h.version}

	if h.cache != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := h.cache.Ping(ctx); err != nil {
			resp["cache"] = "unavailable"
		} else {
			resp["cache"] = "ok"
		}
	}
	c.JSON(http.StatusOK, resp)
}
