package main

import (
	"context"
	"encoding/json"
	"log"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/chris/contact-unlock/pkg/bootstrap"
	"github.com/chris/contact-unlock/pkg/config"
	"github.com/chris/contact-unlock/pkg/scheduler"
	"github.com/chris/contact-unlock/pkg/telemetry"
	"go.uber.org/zap"
)

// Completer applies a scheduled completion.
type Completer interface {
	CompleteScheduled(ctx context.Context, attemptID string) error
}

type completionHandler struct {
	payments Completer
	logger   *zap.Logger
}

// HandleRequest completes the attempts named in an SQS batch. Failed records are
// reported individually so SQS redelivers only those.
func (h *completionHandler) HandleRequest(ctx context.Context, sqsEvent events.SQSEvent) (events.SQSEventResponse, error) {
	var resp events.SQSEventResponse
	for _, message := range sqsEvent.Records {
		var msg scheduler.CompletionMessage
		if err := json.Unmarshal([]byte(message.Body), &msg); err != nil || msg.AttemptID == "" {
			// Redelivering a malformed message will not fix it.
			h.logger.Error("dropping malformed completion message", zap.String("message_id", message.MessageId), zap.Error(err))
			continue
		}

		if err := h.payments.CompleteScheduled(ctx, msg.AttemptID); err != nil {
			h.logger.Error("failed to complete attempt",
				zap.String("message_id", message.MessageId),
				zap.String("attempt_id", msg.AttemptID),
				zap.Error(err),
			)
			resp.BatchItemFailures = append(resp.BatchItemFailures, events.SQSBatchItemFailure{ItemIdentifier: message.MessageId})
			continue
		}
		h.logger.Info("completed scheduled attempt", zap.String("attempt_id", msg.AttemptID))
	}
	return resp, nil
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

	// The completion source is never asked to begin a payment here.
	svc := deps.PaymentService(deps.CompletionSource(nil), publisher, notifier)

	h := &completionHandler{payments: svc, logger: logger}
	lambda.Start(h.HandleRequest)
}
