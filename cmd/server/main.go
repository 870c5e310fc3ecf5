package main

import (
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"mktintel/internal/config"
	"mktintel/internal/dashboard"
	"mktintel/internal/httpx"
	"mktintel/internal/ingest"
	"mktintel/internal/insight"
	"mktintel/internal/store"
)

func main() {
	cfg := config.FromEnv()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	channels := make([]ingest.ChannelSource, 0, len(cfg.Channels))
	for _, ch := range cfg.Channels {
		channels = append(channels, ingest.ChannelSource{
			Channel: ch,
			Source:  ingest.NewFileSource(ch, filepath.Join(cfg.DataDir, ch+".csv")),
		})
	}
	business := ingest.NewFileSource("business", filepath.Join(cfg.DataDir, cfg.BusinessFile))

	loader := ingest.New(channels, business, logger)
	cache := store.NewCache(loader)

	insightCfg := insight.DefaultConfig()
	insightCfg.HealthyCAC = cfg.HealthyCAC
	svc := dashboard.New(cache, logger, insightCfg)

	r := httpx.NewRouter(logger, svc)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("starting server", slog.String("port", cfg.Port))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server error", slog.String("err", err.Error()))
		os.Exit(1)
	}
}
