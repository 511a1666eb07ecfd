// Package app wires configuration, the fetch pipeline, the websocket hub,
// and the HTTP server into one runnable application.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"opsdash/internal/config"
	"opsdash/internal/fetch"
	"opsdash/internal/infrastructure"
	customMiddleware "opsdash/internal/middleware"
	"opsdash/internal/services"
	handlers "opsdash/internal/transport/http"
	ws "opsdash/internal/websocket"
)

const Version = "1.0.0"

// Application is the main application container.
type Application struct {
	Config       *config.Config
	Router       *chi.Mux
	Server       *http.Server
	WebSocketHub *ws.Hub
	Dashboard    *services.DashboardService
	Logger       *slog.Logger
}

// NewApplication loads configuration and wires every component together.
func NewApplication() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	logger.Info("application starting",
		slog.String("version", Version),
		slog.Int("port", cfg.Server.Port))

	hub := ws.NewHub(logger)

	fetcher := fetch.NewClient(fetch.Options{
		BaseURL: cfg.Sheets.BaseURL,
		Timeout: cfg.Fetch.Timeout,
		RPS:     cfg.Fetch.RPS,
		Burst:   cfg.Fetch.Burst,
	}, logger)

	dashboard := services.NewDashboardService(fetcher, cfg.Sheets.GIDs, hub, logger)

	app := &Application{
		Config:       cfg,
		WebSocketHub: hub,
		Dashboard:    dashboard,
		Logger:       logger,
	}
	app.setupRouter()

	app.Server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      app.Router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return app, nil
}

// setupRouter configures the HTTP router with all routes.
func (a *Application) setupRouter() {
	r := chi.NewRouter()

	// Minimal middleware only; anything that wraps the ResponseWriter
	// breaks the websocket upgrade.
	r.Use(customMiddleware.RequestID)
	r.Use(customMiddleware.RealIP)

	r.HandleFunc("/ws", ws.ServeWS(a.WebSocketHub, a.Logger))
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(customMiddleware.StructuredLogger(a.Logger))
		r.Use(customMiddleware.Recoverer(a.Logger))
		r.Use(customMiddleware.Compress(5))
		r.Use(customMiddleware.NewRateLimiter(
			a.Config.Server.RateLimitRPS,
			a.Config.Server.RateLimitBurst,
			a.Logger,
		).Handler)

		dashboardHandler := handlers.NewDashboardHandler(a.Dashboard, a.Logger)
		healthHandler := handlers.NewHealthHandler(a.Dashboard, Version)

		r.Get("/api/health", healthHandler.ServeHTTP)
		r.Mount("/api", dashboardHandler.Routes())
	})

	a.Router = r
}

// Start launches background services, performs the initial data load, and
// starts the HTTP server. It blocks until the context is cancelled.
func (a *Application) Start(ctx context.Context) error {
	a.WebSocketHub.Start()

	// The initial load is best effort; the server still comes up when the
	// sheets are unreachable and /api/reload can retry later.
	loadCtx, cancel := context.WithTimeout(ctx, a.Config.Fetch.Timeout*2)
	if err := a.Dashboard.Reload(loadCtx); err != nil {
		a.Logger.WarnContext(ctx, "initial data load failed",
			slog.String("error", err.Error()))
	}
	cancel()

	errCh := make(chan error, 1)
	go func() {
		a.Logger.Info("server listening", slog.String("addr", a.Server.Addr))
		if err := a.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		return a.Stop(context.Background())
	}
}

// Stop gracefully stops the application.
func (a *Application) Stop(ctx context.Context) error {
	a.Logger.InfoContext(ctx, "shutting down application")

	shutdownCtx, cancel := context.WithTimeout(ctx, a.Config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	a.WebSocketHub.Stop()

	if err := infrastructure.CloseLogFile(); err != nil {
		a.Logger.Warn("failed to close log file", slog.String("error", err.Error()))
	}

	a.Logger.InfoContext(ctx, "application stopped")
	return nil
}
