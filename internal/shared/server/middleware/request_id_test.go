package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func newRequestIDRouter(seen *string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.GET("/ping", func(c *gin.Context) {
		*seen = RequestIDFromContext(c)
		c.Status(http.StatusNoContent)
	})
	return r
}

func TestRequestIDGeneratedWhenMissing(t *testing.T) {
	var seen string
	r := newRequestIDRouter(&seen)

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/ping", nil))

	if seen == "" || resp.Header().Get(RequestIDHeader) != seen {
		t.Fatalf("expected generated id echoed in header, got %q / %q", seen, resp.Header().Get(RequestIDHeader))
	}
}

func TestRequestIDReusesInbound(t *testing.T) {
	var seen string
	r := newRequestIDRouter(&seen)

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(RequestIDHeader, "client-req-42")
	r.ServeHTTP(httptest.NewRecorder(), req)

	if seen != "client-req-42" {
		t.Fatalf("expected inbound id, got %q", seen)
	}
}

func TestRequestIDReplacesMalformedInbound(t *testing.T) {
	var seen string
	r := newRequestIDRouter(&seen)

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(RequestIDHeader, "bad id\" \n"+strings.Repeat("x", 200))
	r.ServeHTTP(httptest.NewRecorder(), req)

	if seen == "" || strings.ContainsAny(seen, " \"\n") {
		t.Fatalf("expected a fresh id, got %q", seen)
	}
}

func TestRequestIDFromContextWithoutMiddleware(t *testing.T) {
	if got := RequestIDFromContext(nil); got != "" {
		t.Fatalf("expected empty id, got %q", got)
	}
}
