package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"job-assistant/internal/bootstrap"
	"job-assistant/internal/shared/config"
	"job-assistant/internal/shared/server"
	"job-assistant/internal/shared/telemetry"
)

func main() {
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.BuildWeb(cfg)
	if err != nil {
		telemetry.Error("bootstrap.failed", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
	telemetry.Info("web.analysis_api", map[string]any{"url": cfg.AnalysisAPIURL})

	if err := server.Run(ctx, "web", server.Addr(cfg.WebPort), app.Router); err != nil {
		telemetry.Error("server.error", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
}
