package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-analyzer/internal/analyses"
	"resume-analyzer/internal/documents"
	"resume-analyzer/internal/services/health"
	"resume-analyzer/internal/shared/config"
	"resume-analyzer/internal/shared/metrics"
	"resume-analyzer/internal/shared/server/middleware"
	"resume-analyzer/internal/shared/server/respond"
	"resume-analyzer/internal/web"
)

const analyzeGroup = "ANALYZE"

// RouterDeps carries the handlers the router mounts. Nil handlers are skipped.
type RouterDeps struct {
	Config          config.Config
	DocumentHandler *documents.Handler
	AnalysisHandler *analyses.Handler
	WebHandler      *web.Handler
	Health          *health.Service
	RateLimiter     *middleware.RateLimiter
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.Session(),
		middleware.RateLimit(middleware.RateLimitConfig{
			Rules: map[string]middleware.RateLimitRule{
				analyzeGroup: middleware.PerMinute(deps.Config.AnalyzePerMin),
			},
			GroupFor: rateLimitGroup,
			Limiter:  deps.RateLimiter,
		}),
	)

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		status, ok := deps.Health.Status(c.Request.Context())
		if !ok {
			respond.JSON(c, http.StatusServiceUnavailable, status)
			return
		}
		respond.JSON(c, http.StatusOK, status)
	})
	if deps.DocumentHandler != nil {
		deps.DocumentHandler.RegisterRoutes(api)
	}
	if deps.AnalysisHandler != nil {
		deps.AnalysisHandler.RegisterRoutes(api)
	}
	if deps.WebHandler != nil {
		deps.WebHandler.RegisterRoutes(r)
	}

	return r
}

// rateLimitGroup puts every route that triggers a generation call in one bucket.
func rateLimitGroup(c *gin.Context) string {
	if c.Request.Method != http.MethodPost {
		return ""
	}
	switch c.FullPath() {
	case "/api/v1/analyze", "/api/v1/documents/:id/analyze", "/analyze":
		return analyzeGroup
	default:
		return ""
	}
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
