package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/chris/contact-unlock/pkg/admin"
	"github.com/chris/contact-unlock/pkg/api"
	"github.com/chris/contact-unlock/pkg/bootstrap"
	"github.com/chris/contact-unlock/pkg/config"
	"github.com/chris/contact-unlock/pkg/handlers"
	adminhandler "github.com/chris/contact-unlock/pkg/handlers/admin"
	paymenthandler "github.com/chris/contact-unlock/pkg/handlers/payments"
	"github.com/chris/contact-unlock/pkg/handlers/properties"
	wshandler "github.com/chris/contact-unlock/pkg/handlers/websockets"
	"github.com/chris/contact-unlock/pkg/identity"
	"github.com/chris/contact-unlock/pkg/middleware"
	"github.com/chris/contact-unlock/pkg/scheduler"
	"github.com/chris/contact-unlock/pkg/telemetry"
	"github.com/chris/contact-unlock/pkg/websockets"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if err := cfg.RequireAPI(); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := telemetry.NewLogger(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.InitTracing(cfg.Tracing.ServiceName, cfg.Tracing.JaegerEndpoint, logger)
	if err != nil {
		logger.Fatal("failed to initialize tracing", zap.Error(err))
	}

	deps, err := bootstrap.New(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to initialize storage", zap.Error(err))
	}
	defer deps.Close()

	sched, err := deps.Scheduler(ctx)
	if err != nil {
		logger.Fatal("failed to initialize scheduler", zap.Error(err))
	}
	publisher, err := deps.Events()
	if err != nil {
		logger.Fatal("failed to initialize event publisher", zap.Error(err))
	}
	notifier, err := deps.Notifier(ctx)
	if err != nil {
		logger.Fatal("failed to initialize websocket publisher", zap.Error(err))
	}

	// Without an API Gateway endpoint, websocket clients connect to this process.
	var hub *websockets.LocalHub
	if notifier == nil {
		hub = websockets.NewLocalHub(logger)
		notifier = hub
	}

	paymentService := deps.PaymentService(deps.CompletionSource(sched), publisher, notifier)
	if local, ok := sched.(*scheduler.LocalScheduler); ok {
		local.Bind(paymentService.CompleteScheduled)
	}

	verifier := identity.NewVerifier(cfg.Auth.JWTSecret)
	adminGate := admin.NewGate(cfg.Auth.AdminEmail, cfg.Auth.AdminPasswordHash, deps.Store, logger)

	handler := handlers.NewApiHandler(
		properties.NewPropertiesHandler(deps.Catalog, deps.Resolver(), logger),
		paymenthandler.NewPaymentsHandler(paymentService, cfg.Stripe.WebhookSecret, logger),
		adminhandler.NewAdminHandler(adminGate, logger),
	)

	router := chi.NewRouter()
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.NewStructuredLogger(logger))
	router.Use(middleware.Metrics)

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	router.Handle("/metrics", promhttp.Handler())
	if hub != nil {
		router.Handle("/ws", wshandler.NewLocalHandler(hub, verifier, logger))
	}

	router.Group(func(r chi.Router) {
		r.Use(middleware.Identity(verifier))
		api.HandlerWithOptions(handler, api.ChiServerOptions{
			BaseRouter:  r,
			Middlewares: []api.MiddlewareFunc{middleware.RequireAdmin(adminGate, logger)},
		})
	})

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("starting server",
			zap.String("port", cfg.HTTPPort),
			zap.String("store", cfg.Store.Driver),
			zap.String("completion", cfg.Completion.Mode),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("failed to shut down server", zap.Error(err))
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		logger.Error("failed to shut down tracing", zap.Error(err))
	}
}
