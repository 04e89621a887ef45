package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	sessionIDKey = "sessionId"

	// SessionHeader carries the session for API clients.
	SessionHeader = "X-Session-Id"
	// SessionCookie carries the session for the browser UI.
	SessionCookie = "ra_session"

	sessionCookieMaxAge = 30 * 24 * 60 * 60
	maxIDLen            = 128
)

// Session resolves the caller's session from the X-Session-Id header or the
// ra_session cookie, issuing a new one when neither is present.
func Session() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		id := validID(c.GetHeader(SessionHeader))
		if id == "" {
			if cookie, err := c.Cookie(SessionCookie); err == nil {
				id = validID(cookie)
			}
		}
		if id == "" {
			id = uuid.NewString()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(SessionCookie, id, sessionCookieMaxAge, "/", "", false, true)
		}

		c.Set(sessionIDKey, id)
		c.Writer.Header().Set(SessionHeader, id)
		c.Next()
	}
}

// SessionIDFromContext fetches the session ID stored by the Session middleware.
func SessionIDFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	val, _ := c.Get(sessionIDKey)
	if id, ok := val.(string); ok {
		return id
	}
	return ""
}

// validID accepts short tokens of URL-safe characters and returns "" otherwise.
func validID(raw string) string {
	id := strings.TrimSpace(raw)
	if id == "" || len(id) > maxIDLen {
		return ""
	}
	for _, r := range id {
		if !(r == '-' || r == '_' || r == '.' || (r >= '0' && r <= '9') || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')) {
			return ""
		}
	}
	return id
}
