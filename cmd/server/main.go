package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lmittmann/tint"

	"github.com/Mynor454-s/iccsa-admin/internal/archive"
	"github.com/Mynor454-s/iccsa-admin/internal/config"
	"github.com/Mynor454-s/iccsa-admin/internal/handlers"
	"github.com/Mynor454-s/iccsa-admin/internal/health"
	h "github.com/Mynor454-s/iccsa-admin/internal/http"
	"github.com/Mynor454-s/iccsa-admin/internal/middleware"
	"github.com/Mynor454-s/iccsa-admin/internal/monitoring"
	"github.com/Mynor454-s/iccsa-admin/internal/reconcile"
	"github.com/Mynor454-s/iccsa-admin/internal/session"
	"github.com/Mynor454-s/iccsa-admin/internal/upstream"
)

func main() {
	port := flag.Int("port", 0, "Server port (overrides config)")
	upstreamURL := flag.String("upstream", "", "Print-shop API base URL (overrides config)")
	flag.Parse()

	slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      slog.LevelInfo,
		TimeFormat: time.Kitchen,
	})))

	cfg := config.Load()
	if *port != 0 {
		cfg.Server.Port = *port
	}
	if *upstreamURL != "" {
		cfg.Upstream.BaseURL = *upstreamURL
	}

	// Upstream client: the only way the gateway talks to the backend
	client := upstream.New(cfg.Upstream.BaseURL, cfg.UpstreamTimeout())
	slog.Info("upstream configured", "base_url", cfg.Upstream.BaseURL)

	// Sessions, optionally persisted to Redis
	store := session.NewStore(client.Auth, cfg.SessionTTL(), cfg.Redis.Addr, cfg.Redis.Password)

	// One reconciliation controller per session; logout tears it down
	registry := reconcile.NewRegistry(client.Quotes, client.Payments)
	store.OnLogout(registry.Drop)

	// Export archive, no-op when unconfigured
	archiver, err := archive.New(context.Background(), cfg.Archive)
	if err != nil {
		slog.Error("archive setup failed", "error", err)
		os.Exit(1)
	}
	if archiver.Enabled() {
		slog.Info("export archive enabled", "bucket", cfg.Archive.Bucket)
	}

	healthChecker := health.NewHealthChecker(client)

	// Monitoring side server: metrics scrape, live stats, alert push
	go monitoring.NewServer(client.Ping, cfg.Monitoring.Port).Start()

	authMiddleware := middleware.NewAuthMiddleware(store)
	corsMiddleware := middleware.NewCORS(cfg)

	authHandler := handlers.NewAuthHandler(store)
	quoteAdminHandler := handlers.NewQuoteAdminHandler(registry)
	quoteHandler := handlers.NewQuoteHandler(client.Quotes)
	paymentHandler := handlers.NewPaymentHandler(client.Payments)
	catalogHandler := handlers.NewCatalogHandler(client.Clients)
	userHandler := handlers.NewUserHandler(client.Users)
	exportHandler := handlers.NewExportHandler(registry, client.Quotes, archiver)
	healthHandler := handlers.NewHealthHandler(healthChecker)

	router := h.NewRouter(
		authHandler,
		quoteAdminHandler,
		quoteHandler,
		paymentHandler,
		catalogHandler,
		userHandler,
		exportHandler,
		healthHandler,
		authMiddleware,
	)

	handler := middleware.PanicRecovery(
		middleware.RequestLogging(
			middleware.MetricsMiddleware(
				corsMiddleware(router))))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	go func() {
		slog.Info("server running", "addr", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	slog.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("shutdown failed", "error", err)
	}
}
