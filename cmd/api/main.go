package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"disruption-stats-go/internal/config"
	"disruption-stats-go/internal/dashboard"
	"disruption-stats-go/internal/dataset"
	"disruption-stats-go/internal/logger"
	"disruption-stats-go/internal/server"
)

func main() {
	_ = godotenv.Load() // loads .env

	log := logger.New()
	log.WithField("service", "disruption-stats-go").Info("starting service")

	cfg, err := config.FromEnv()
	if err != nil {
		log.WithError(err).Fatal("invalid configuration")
	}

	var src dataset.Source
	if cfg.DataURL != "" {
		log.WithField("data_url", cfg.DataURL).Info("serving data from url")
		src = dataset.NewHTTPSource(cfg.DataURL, cfg.FetchTimeout, cfg.MaxRetryTime, log)
	} else {
		log.WithField("data_dir", cfg.DataDir).Info("serving data from directory")
		src = dataset.NewFileSource(cfg.DataDir)
	}
	src = dataset.NewCachedSource(src, cfg.CacheSize, cfg.CacheTTL)

	svc := dashboard.NewService(src, cfg.Location, log)
	srv := server.New(":"+cfg.Port, svc, log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.WithField("addr", srv.Addr).Info("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server terminated")
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("graceful shutdown failed")
	}
}
