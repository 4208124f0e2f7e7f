package middleware

import (
	"strconv"
	"strings"
	"time"

	"milestone-dashboard/internal/metrics"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestLogger пишет одну строку на запрос и время ответа в метрики.
func RequestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		d := time.Since(start)
		status := c.Writer.Status()
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		method := strings.ToUpper(c.Request.Method)
		metrics.RecordHTTPRequestDuration(method, path, strconv.Itoa(status), d)

		fields := []zap.Field{
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Int64("duration_ms", d.Milliseconds()),
		}
		if uid := c.GetHeader("X-User-Id"); uid != "" {
			fields = append(fields, zap.String("user_id", uid))
		}

		switch {
		case status >= 500:
			log.Error("HTTP request", fields...)
		case status >= 400:
			log.Warn("HTTP request", fields...)
		default:
			log.Info("HTTP request", fields...)
		}
	}
}
