package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"resume-analyzer/internal/analyses"
	"resume-analyzer/internal/documents"
	"resume-analyzer/internal/llm"
	"resume-analyzer/internal/shared/config"
	"resume-analyzer/internal/shared/server/middleware"
	localstore "resume-analyzer/internal/shared/storage/object/local"
	"resume-analyzer/internal/web"
)

func newTestRouter(t *testing.T, perMin int) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	docSvc := &documents.Service{Store: localstore.New(t.TempDir()), Repo: documents.NewMemoryRepo()}
	analysisSvc := &analyses.Service{
		Repo: analyses.NewMemoryRepo(),
		Docs: docSvc,
		LLM: llm.GeneratorFunc(func(context.Context, string) (string, error) {
			return "Summary: ok", nil
		}),
	}
	return NewRouter(RouterDeps{
		Config:          config.Config{AnalyzePerMin: perMin, CORSAllowOrigin: []string{"http://localhost:5173"}},
		DocumentHandler: documents.NewHandler(docSvc, 0),
		AnalysisHandler: analyses.NewHandler(analysisSvc),
		WebHandler:      web.NewHandler(docSvc, analysisSvc, 0),
	})
}

func request(router *gin.Engine, method, path, session string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if session != "" {
		req.Header.Set(middleware.SessionHeader, session)
	}
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestHealth(t *testing.T) {
	router := newTestRouter(t, 0)
	resp := request(router, http.MethodGet, "/api/v1/health", "")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if resp.Header().Get("X-Request-Id") == "" {
		t.Fatalf("expected request id header")
	}
}

func TestMetricsEndpoint(t *testing.T) {
	router := newTestRouter(t, 0)
	resp := request(router, http.MethodGet, "/metrics", "")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "analysis_started_total") {
		t.Fatalf("expected analysis counters in metrics output")
	}
}

func TestAnalyzeRoutesShareRateLimit(t *testing.T) {
	router := newTestRouter(t, 2)

	if resp := request(router, http.MethodPost, "/api/v1/analyze", "limited"); resp.Code != http.StatusOK {
		t.Fatalf("expected first analyze to succeed, got %d", resp.Code)
	}
	if resp := request(router, http.MethodPost, "/analyze", "limited"); resp.Code != http.StatusOK {
		t.Fatalf("expected page analyze to succeed, got %d", resp.Code)
	}
	resp := request(router, http.MethodPost, "/api/v1/analyze", "limited")
	if resp.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", resp.Code)
	}
	if resp.Header().Get("Retry-After") == "" {
		t.Fatalf("expected Retry-After header")
	}

	if resp := request(router, http.MethodPost, "/api/v1/analyze", "other"); resp.Code != http.StatusOK {
		t.Fatalf("expected other session to be unaffected, got %d", resp.Code)
	}
	if resp := request(router, http.MethodGet, "/api/v1/documents", "limited"); resp.Code != http.StatusOK {
		t.Fatalf("expected listing to bypass the analyze limit, got %d", resp.Code)
	}
}

func TestIndexPageIsMounted(t *testing.T) {
	router := newTestRouter(t, 0)
	resp := request(router, http.MethodGet, "/", "")
	if resp.Code != http.StatusOK || !strings.Contains(resp.Body.String(), "Resume Analyzer") {
		t.Fatalf("expected index page, got %d", resp.Code)
	}
	if !strings.Contains(resp.Header().Get("Set-Cookie"), middleware.SessionCookie) {
		t.Fatalf("expected a session cookie to be issued")
	}
}

func TestAddr(t *testing.T) {
	tests := map[string]string{"": ":8080", "9090": ":9090", ":7000": ":7000"}
	for in, want := range tests {
		if got := Addr(in); got != want {
			t.Fatalf("Addr(%q) = %q, want %q", in, got, want)
		}
	}
}
