package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"resume-analyzer/internal/shared/telemetry"
)

// Logging emits one structured log line per request.
func Logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		latency := time.Since(start)

		fields := map[string]any{
			"request_id":  RequestIDFromContext(c),
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"route":       c.FullPath(),
			"status":      c.Writer.Status(),
			"duration_ms": float64(latency.Microseconds()) / 1000.0,
			"session_id":  SessionIDFromContext(c),
			"client_ip":   c.ClientIP(),
			"user_agent":  c.Request.UserAgent(),
		}
		if documentID := c.GetString("documentId"); documentID != "" {
			fields["document_id"] = documentID
		}
		if analysisID := c.GetString("analysisId"); analysisID != "" {
			fields["analysis_id"] = analysisID
		}
		telemetry.Info("request.complete", fields)
	}
}
