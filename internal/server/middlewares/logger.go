package middlewares

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Logger logs the start and the end of every request.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := zap.S().Named("http")
		start := time.Now()

		fields := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"query", c.Request.URL.RawQuery,
			"ip", c.ClientIP(),
			"user-agent", c.Request.UserAgent(),
			"time", start.Format(time.RFC3339),
		}
		logger.Debugw("request started", fields...)

		c.Next()

		fields = append(fields,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
		)
		if len(c.Errors) > 0 {
			logger.Errorw("request failed", append(fields, "errors", c.Errors.String())...)
			return
		}
		logger.Infow("request completed", fields...)
	}
}
