package respond

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestErrorWritesEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	called := false
	router.GET("/x", func(c *gin.Context) {
		Error(c, http.StatusNotFound, CodeNotFound, "document not found", nil)
	}, func(c *gin.Context) {
		called = true
	})

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/x", nil))

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
	if called {
		t.Fatalf("expected chain to abort")
	}
	var body ErrorResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Error.Code != CodeNotFound || body.Error.Message != "document not found" {
		t.Fatalf("unexpected body: %+v", body)
	}
	if body.Error.Details != nil {
		t.Fatalf("expected details omitted, got %v", body.Error.Details)
	}
}
