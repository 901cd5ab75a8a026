package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rentora/internal/infrastructure/storage/postgres"
)

// Version is reported by /health/info.
var Version = "dev"

// HealthHandler provides health check endpoints.
type HealthHandler struct {
	driver string
	pool   *postgres.Pool // nil for the in-memory driver
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(driver string, pool *postgres.Pool) *HealthHandler {
	return &HealthHandler{driver: driver, pool: pool}
}

// Live handles liveness probe (is the process alive?).
// GET /health/live
func (h *HealthHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Ready handles readiness probe (is the service ready to accept traffic?).
// GET /health/ready
func (h *HealthHandler) Ready(c *gin.Context) {
	if h.pool == nil {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"checks": map[string]string{"storage": h.driver},
		})
		return
	}

	if err := h.pool.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "error",
			"checks": map[string]string{
				"database": "unhealthy: " + err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"checks": map[string]string{"database": "healthy"},
	})
}

// Info returns application information.
// GET /health/info
func (h *HealthHandler) Info(c *gin.Context) {
	info := gin.H{
		"app":     "rentora",
		"version": Version,
		"storage": h.driver,
	}
	if h.pool != nil {
		stats := h.pool.Stats()
		info["database"] = map[string]any{
			"total_conns":    stats.TotalConns,
			"acquired_conns": stats.AcquiredConns,
			"idle_conns":     stats.IdleConns,
			"max_conns":      stats.MaxConns,
		}
	}
	c.JSON(http.StatusOK, info)
}
