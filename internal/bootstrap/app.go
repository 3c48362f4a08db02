package bootstrap

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"

	"job-assistant/internal/analyses"
	"job-assistant/internal/analyses/matching"
	"job-assistant/internal/interview"
	"job-assistant/internal/resumeclient"
	"job-assistant/internal/services/health"
	"job-assistant/internal/shared/cache"
	"job-assistant/internal/shared/config"
	"job-assistant/internal/shared/server"
	"job-assistant/internal/shared/server/middleware"
	"job-assistant/internal/tailoring"
)

// API holds the analysis service and its dependencies.
type API struct {
	Config           config.Config
	Router           *gin.Engine
	Cache            *cache.Cache
	AnalysesService  *analyses.Service
	AnalysisHandler  *analyses.Handler
	InterviewHandler *interview.Handler
}

// BuildAPI wires the analysis API. A configured but unreachable Redis leaves
// the memory cache in place.
func BuildAPI(ctx context.Context, cfg config.Config) (*API, error) {
	c := cache.New(ctx, cache.Options{
		RedisURL:   cfg.RedisURL,
		TTL:        cfg.CacheTTL,
		MaxEntries: cfg.CacheMaxEntries,
	})

	svc := analyses.NewService(matching.NewAnalyzer(nil), c)
	app := &API{
		Config:           cfg,
		Cache:            c,
		AnalysesService:  svc,
		AnalysisHandler:  analyses.NewHandler(svc, cfg.MaxUploadBytes),
		InterviewHandler: interview.NewHandler(interview.DefaultFAQ()),
	}

	checks := map[string]health.Check{}
	if cfg.RedisURL != "" {
		checks["redis"] = func() bool { return c.RedisHealthy(context.Background()) }
	}
	healthSvc := health.NewService("api", checks)
	app.Router = server.NewAPIRouter(server.APIDeps{
		Config:           cfg,
		Health:           healthSvc,
		AnalysisHandler:  app.AnalysisHandler,
		InterviewHandler: app.InterviewHandler,
		Limiter:          middleware.NewRateLimiter(nil),
	})
	return app, nil
}

// Close releases the cache connection.
func (a *API) Close() error {
	return a.Cache.Close()
}

// Web holds the tailoring front end and its dependencies.
type Web struct {
	Config           config.Config
	Router           *gin.Engine
	Client           *resumeclient.Client
	Sessions         *tailoring.SessionStore
	TailoringHandler *tailoring.Handler
}

// BuildWeb wires the tailoring front end against the configured analysis API.
func BuildWeb(cfg config.Config) (*Web, error) {
	client, err := resumeclient.NewClient(cfg.AnalysisAPIURL, cfg.AnalysisTimeout)
	if err != nil {
		return nil, fmt.Errorf("analysis client: %w", err)
	}

	sessions := tailoring.NewSessionStore(client, cfg.SessionTTL, tailoring.WithMaxSessions(cfg.MaxSessions))
	handler := tailoring.NewHandler(
		sessions,
		cfg.MaxUploadBytes,
		cfg.Env == "production",
		server.AnalyzeRateLimit(cfg, middleware.NewRateLimiter(nil)),
	)

	healthSvc := health.NewService("web", nil)
	return &Web{
		Config:           cfg,
		Client:           client,
		Sessions:         sessions,
		TailoringHandler: handler,
		Router: server.NewWebRouter(server.WebDeps{
			Config:           cfg,
			Health:           healthSvc,
			TailoringHandler: handler,
		}),
	}, nil
}
