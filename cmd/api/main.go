package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"greenops-insights/internal/api"
	"greenops-insights/internal/api/handlers"
	"greenops-insights/internal/api/models"
	"greenops-insights/internal/config"
	"greenops-insights/internal/data"
	"greenops-insights/internal/insights"
	"greenops-insights/internal/logger"

	"github.com/gin-gonic/gin"
)

func main() {
	// Get configuration from environment (and .env, if present)
	srv := config.LoadServer()
	logger.Setup(os.Stderr, srv.LogLevel, srv.LogFormat)

	opts := insights.DefaultOptions()
	if srv.ConfigFile != "" {
		c, err := config.Load(srv.ConfigFile)
		if err != nil {
			logger.Error("failed to load config", "path", srv.ConfigFile, "error", err)
			os.Exit(1)
		}
		opts = c.Options()
		logger.Info("config loaded", "path", srv.ConfigFile)
	}
	live := config.NewLive(opts)

	if srv.ConfigFile != "" {
		w, err := config.Watch(srv.ConfigFile, live)
		if err != nil {
			logger.Warn("config hot reload disabled", "path", srv.ConfigFile, "error", err)
		} else {
			defer w.Close()
		}
	}

	var store *data.StoreClient
	if srv.StoreURL != "" {
		store = data.NewStoreClient(srv.StoreURL, srv.StoreTimeout)
		logger.Info("reading store configured", "url", srv.StoreURL)
	} else {
		logger.Info("STORE_URL not set, GET /api/v1/insights is disabled")
	}

	cache := data.NewCache[*models.InsightsResponse](srv.CacheTTL, time.Minute)
	defer cache.Close()

	// Set up Gin router
	if srv.Production() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := api.NewRouter(handlers.NewInsightsHandler(live, store, cache), srv.CORSOrigins)

	addr := fmt.Sprintf(":%s", srv.Port)
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("starting API server", "addr", addr, "env", srv.Env)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("failed to start server", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", "error", err)
	}
}
