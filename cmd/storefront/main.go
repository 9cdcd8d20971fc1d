// Package main runs the storefront HTTP server.
package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	app "github.com/shoplane/storefront/internal/app"
	"github.com/shoplane/storefront/internal/app/httpapi"
	"github.com/shoplane/storefront/internal/app/metrics"
	"github.com/shoplane/storefront/internal/config"
	"github.com/shoplane/storefront/pkg/logger"
)

func main() {
	configPath := flag.String("config", "config/storefront.yaml", "Path to YAML configuration")
	addr := flag.String("addr", "", "Listen address (overrides config)")
	flag.Parse()

	// .env is optional; env values feed the config loader.
	_ = godotenv.Load()

	log := logger.NewDefault("storefront")

	cfg, err := config.LoadFromPath(*configPath)
	if err != nil {
		log.WithError(err).Fatal("load configuration")
	}
	if *addr != "" {
		cfg.Addr = *addr
	}
	if cfg.IsDevSecret() {
		log.Warn("using development JWT secret; set STOREFRONT_JWT_SECRET in production")
	}

	application, err := app.New(app.Stores{}, app.Options{
		JWTSecret:   cfg.JWTSecret,
		TokenTTL:    cfg.TokenTTL.Std(),
		CatalogFile: cfg.CatalogFile,
	}, log)
	if err != nil {
		log.WithError(err).Fatal("initialise application")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := application.Start(ctx); err != nil {
		log.WithError(err).Fatal("start application")
	}

	handler, err := httpapi.NewHandler(application, httpapi.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AuthRatePerSec: cfg.AuthRatePerSec,
		AuthRateBurst:  cfg.AuthRateBurst,
		AuditPath:      cfg.AuditPath,
		AuditMax:       cfg.AuditMax,
	}, log)
	if err != nil {
		log.WithError(err).Fatal("initialise http api")
	}

	server := &http.Server{
		Addr:         cfg.Addr,
		Handler:      metrics.InstrumentHandler(handler),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.WithField("addr", cfg.Addr).Info("storefront listening")
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			log.WithError(err).Fatal("server error")
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Warn("server shutdown")
	}
	if err := application.Stop(shutdownCtx); err != nil {
		log.WithError(err).Warn("application stop")
	}

	log.Info("storefront stopped")
}
