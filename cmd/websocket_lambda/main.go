package main

import (
	"context"
	"log"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/chris/contact-unlock/pkg/bootstrap"
	"github.com/chris/contact-unlock/pkg/config"
	wshandler "github.com/chris/contact-unlock/pkg/handlers/websockets"
	"github.com/chris/contact-unlock/pkg/identity"
	"github.com/chris/contact-unlock/pkg/telemetry"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if cfg.Auth.JWTSecret == "" {
		log.Fatal("JWT_SECRET environment variable not set")
	}
	logger, err := telemetry.NewLogger(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}

	deps, err := bootstrap.New(context.Background(), cfg, logger)
	if err != nil {
		logger.Fatal("failed to initialize storage", zap.Error(err))
	}

	h := wshandler.NewHandler(deps.Store, identity.NewVerifier(cfg.Auth.JWTSecret), logger)
	lambda.Start(func(ctx context.Context, req events.APIGatewayWebsocketProxyRequest) (events.APIGatewayProxyResponse, error) {
		switch req.RequestContext.RouteKey {
		case "$connect":
			return h.HandleConnect(ctx, req)
		case "$disconnect":
			return h.HandleDisconnect(ctx, req)
		default:
			return h.HandleDefault(ctx, req)
		}
	})
}

