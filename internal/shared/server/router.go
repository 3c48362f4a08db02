package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"job-assistant/internal/analyses"
	"job-assistant/internal/interview"
	"job-assistant/internal/services/health"
	"job-assistant/internal/shared/config"
	"job-assistant/internal/shared/metrics"
	"job-assistant/internal/shared/server/middleware"
	"job-assistant/internal/shared/server/respond"
	"job-assistant/internal/tailoring"
)

const analyzeRateGroup = "analyze"

// APIDeps are the handlers served by the analysis API.
type APIDeps struct {
	Config           config.Config
	Health           *health.Service
	AnalysisHandler  *analyses.Handler
	InterviewHandler *interview.Handler
	Limiter          *middleware.RateLimiter
}

// WebDeps are the handlers served by the tailoring front end.
type WebDeps struct {
	Config           config.Config
	Health           *health.Service
	TailoringHandler *tailoring.Handler
}

func newEngine(cfg config.Config) *gin.Engine {
	if cfg.Env != "dev" && cfg.Env != "local" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
	)
	return r
}

// NewAPIRouter constructs the analysis API engine.
func NewAPIRouter(deps APIDeps) *gin.Engine {
	r := newEngine(deps.Config)
	registerHealth(r, deps.Health)
	r.GET("/metrics", metrics.Handler())

	resume := r.Group("/api/resume", AnalyzeRateLimit(deps.Config, deps.Limiter))
	deps.AnalysisHandler.RegisterRoutes(resume)

	deps.InterviewHandler.RegisterRoutes(r.Group("/api/interview"))
	return r
}

// NewWebRouter constructs the tailoring front end engine.
func NewWebRouter(deps WebDeps) *gin.Engine {
	r := newEngine(deps.Config)
	registerHealth(r, deps.Health)
	r.GET("/metrics", metrics.Handler())
	r.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/tailor")
	})
	deps.TailoringHandler.RegisterRoutes(&r.RouterGroup)
	return r
}

// AnalyzeRateLimit limits analysis requests per client; other routes in the
// group pass through.
func AnalyzeRateLimit(cfg config.Config, limiter *middleware.RateLimiter) gin.HandlerFunc {
	return middleware.RateLimit(middleware.RateLimitConfig{
		Rules: map[string]middleware.RateLimitRule{
			analyzeRateGroup: {Rate: cfg.RateLimitRPS, Burst: cfg.RateLimitBurst},
		},
		GroupFor: func(c *gin.Context) string {
			path := strings.TrimSuffix(c.Request.URL.Path, "/")
			if strings.HasSuffix(path, "/analyze") || strings.HasSuffix(path, "/retry") {
				return analyzeRateGroup
			}
			return "unlimited"
		},
		Limiter: limiter,
	})
}

func registerHealth(r *gin.Engine, svc *health.Service) {
	r.GET("/healthz", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, svc.Status())
	})
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
