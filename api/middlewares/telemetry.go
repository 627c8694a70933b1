package middlewares

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mcp-bridge/mcp-bridge/config"
	"github.com/mcp-bridge/mcp-bridge/logger"
)

type Telemetry interface {
	Middleware() gin.HandlerFunc
}

type TelemetryImpl struct {
	cfg    config.Config
	logger logger.Logger
}

func NewTelemetryMiddleware(cfg config.Config, logger logger.Logger) (Telemetry, error) {
	return &TelemetryImpl{
		cfg:    cfg,
		logger: logger,
	}, nil
}

// Middleware logs every request with its latency and status. Loop and
// tool metrics are recorded by the agent itself; this layer only covers
// the HTTP surface.
func (t *TelemetryImpl) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		t.logger.Info("Request handled",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start).String(),
		)
	}
}
