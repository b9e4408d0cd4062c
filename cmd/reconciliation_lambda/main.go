package main

import (
	"context"
	"log"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/chris/contact-unlock/pkg/bootstrap"
	"github.com/chris/contact-unlock/pkg/config"
	"github.com/chris/contact-unlock/pkg/telemetry"
	"go.uber.org/zap"
)

// Reaper fails attempts that stayed pending past the timeout.
type Reaper interface {
	ReapAbandoned(ctx context.Context) (int, error)
}

type reconciliationHandler struct {
	payments Reaper
	logger   *zap.Logger
}

// HandleRequest is triggered by an EventBridge Schedule.
func (h *reconciliationHandler) HandleRequest(ctx context.Context) error {
	h.logger.Info("starting reconciliation of abandoned attempts")

	reaped, err := h.payments.ReapAbandoned(ctx)
	if err != nil {
		h.logger.Error("reconciliation finished with errors", zap.Int("reaped", reaped), zap.Error(err))
		return err
	}

	h.logger.Info("reconciliation finished", zap.Int("reaped", reaped))
	return nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	logger, err := telemetry.NewLogger(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}

	ctx := context.Background()
	deps, err := bootstrap.New(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to initialize storage", zap.Error(err))
	}
	publisher, err := deps.Events()
	if err != nil {
		logger.Fatal("failed to initialize event publisher", zap.Error(err))
	}
	notifier, err := deps.Notifier(ctx)
	if err != nil {
		logger.Fatal("failed to initialize websocket publisher", zap.Error(err))
	}

	svc := deps.PaymentService(deps.CompletionSource(nil), publisher, notifier)

	h := &reconciliationHandler{payments: svc, logger: logger}
	lambda.Start(h.HandleRequest)
}
