package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	requestIDKey = "requestId"

	// RequestIDHeader carries the request ID in both directions.
	RequestIDHeader = "X-Request-Id"
)

// RequestID tags each request with an ID, reusing a well-formed inbound
// X-Request-Id so callers can correlate their own logs.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := validID(c.GetHeader(RequestIDHeader))
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Writer.Header().Set(RequestIDHeader, id)
		c.Next()
	}
}

// RequestIDFromContext fetches the request ID stored by RequestID middleware.
func RequestIDFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	if id, ok := c.Get(requestIDKey); ok {
		s, _ := id.(string)
		return s
	}
	return ""
}
