package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jrjohn/moviedb-api/internal/dto/response"
)

// readyTimeout bounds the store ping of the readiness probe.
const readyTimeout = 2 * time.Second

// Pinger checks that a backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingerFunc adapts a function to Pinger.
type PingerFunc func(ctx context.Context) error

// Ping calls f(ctx).
func (f PingerFunc) Ping(ctx context.Context) error {
	return f(ctx)
}

// HealthController serves the liveness and readiness probes
type HealthController struct {
	version string
	store   Pinger
}

// NewHealthController creates a new HealthController instance
func NewHealthController(version string, store Pinger) *HealthController {
	return &HealthController{version: version, store: store}
}

// RegisterRoutes registers the probe routes
func (c *HealthController) RegisterRoutes(router gin.IRouter) {
	router.GET("/health", c.Health)
	router.GET("/ready", c.Ready)
}

// Health reports that the process is up
func (c *HealthController) Health(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, response.HealthResponse{Status: "healthy", Version: c.version})
}

// Ready reports whether MongoDB answers a ping
func (c *HealthController) Ready(ctx *gin.Context) {
	pingCtx, cancel := context.WithTimeout(ctx.Request.Context(), readyTimeout)
	defer cancel()

	if err := c.store.Ping(pingCtx); err != nil {
		ctx.JSON(http.StatusServiceUnavailable, response.HealthResponse{
			Status: "unavailable",
			Checks: map[string]string{"mongodb": err.Error()},
		})
		return
	}

	ctx.JSON(http.StatusOK, response.HealthResponse{
		Status: "ready",
		Checks: map[string]string{"mongodb": "ok"},
	})
}
