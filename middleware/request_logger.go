package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/anashalam/music-app-backend/logger"
)

// RequestLogger emits one structured entry per request after it completes.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := logger.Fields(
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
			"ip", c.ClientIP(),
		)
		if c.Writer.Status() >= 500 {
			logger.Error(logger.EventGeneral, "request failed", fields)
			return
		}
		logger.Info(logger.EventGeneral, "request handled", fields)
	}
}
