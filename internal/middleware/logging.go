package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/yukikurage/task-tracker-api/internal/logger"
)

// Logging writes one structured line per request
func Logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		entry := logger.WithRequestID(logger.Logger, GetRequestID(c))

		entry.Debugf("request started: %s %s", c.Request.Method, c.Request.URL.Path)

		c.Next()

		entry.WithFields(logrus.Fields{
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"status":      c.Writer.Status(),
			"duration_ms": time.Since(start).Milliseconds(),
			"remote_ip":   c.ClientIP(),
			"user_agent":  c.Request.UserAgent(),
		}).Info("request completed")
	}
}
