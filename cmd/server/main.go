// cmd/server/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/48d31kh413k/NavixAI/internal/activity"
	"github.com/48d31kh413k/NavixAI/internal/common/cache"
	"github.com/48d31kh413k/NavixAI/internal/common/config"
	"github.com/48d31kh413k/NavixAI/internal/common/logger"
	"github.com/48d31kh413k/NavixAI/internal/common/observability"
	"github.com/48d31kh413k/NavixAI/internal/genai"
	"github.com/48d31kh413k/NavixAI/internal/keywords"
	"github.com/48d31kh413k/NavixAI/internal/places"
	"github.com/48d31kh413k/NavixAI/internal/preferences"
	"github.com/48d31kh413k/NavixAI/internal/server"
	"github.com/48d31kh413k/NavixAI/internal/travel"
	"github.com/48d31kh413k/NavixAI/internal/weather"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		zap.NewExample().Fatal("failed to load configuration", zap.Error(err))
	}

	zapLogger := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLogger.Sync()
	log := logger.NewZapAdapter(zapLogger).With(map[string]interface{}{
		"app":         cfg.App.Name,
		"environment": cfg.App.Environment,
	})

	store := cache.NewRedis(cfg.Redis)
	defer store.Close()

	ctx := context.Background()
	if err := store.Ping(ctx); err != nil {
		log.Error("redis unreachable", map[string]interface{}{
			"address": cfg.Redis.Address,
			"error":   err.Error(),
		})
		os.Exit(1)
	}

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	weatherProvider := weather.NewProvider(cfg.APIs.Weather, cfg.Cache, store, log)

	var generator keywords.Generator
	if cfg.APIs.GenAI.APIKey != "" {
		generator = genai.NewClient(cfg.APIs.GenAI, log)
	} else {
		log.Warn("genai credential absent, keyword proposals use the deterministic fallback", nil)
	}
	proposer := keywords.NewProposer(generator, log)

	estimator := travel.NewEstimator(cfg.APIs.Places, log)
	placesClient := places.NewClient(cfg.APIs.Places, cfg.Cache, store, estimator, log)

	pipeline := activity.NewPipeline(cfg.Pipeline, cfg.Cache, store, weatherProvider, proposer, placesClient, obs, log)
	prefStore := preferences.NewStore(cfg.Cache, store, log)

	handler := server.NewHandler(weatherProvider, pipeline, placesClient, prefStore, log)
	srv := server.New(cfg.Server, handler, log)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			log.Error("server failed", map[string]interface{}{"error": err.Error()})
			os.Exit(1)
		}
	case sig := <-quit:
		log.Info("shutting down", map[string]interface{}{"signal": sig.String()})
		shutdownCtx, cancel := context.WithTimeout(ctx, cfg.Server.ShutdownTimeoutDuration())
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("graceful shutdown failed", map[string]interface{}{"error": err.Error()})
		}
	}
}
