package websockets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/apigatewaymanagementapi"
	apigwtypes "github.com/aws/aws-sdk-go-v2/service/apigatewaymanagementapi/types"
	"go.uber.org/zap"
)

// PostToConnectionAPI is the subset of the API Gateway management client used for pushes.
type PostToConnectionAPI interface {
	PostToConnection(ctx context.Context, params *apigatewaymanagementapi.PostToConnectionInput, optFns ...func(*apigatewaymanagementapi.Options)) (*apigatewaymanagementapi.PostToConnectionOutput, error)
}

// DefaultPublisher pushes messages through an API Gateway websocket API.
type DefaultPublisher struct {
	store       UserConnectionsGetter
	connManager ConnectionManager
	apiGwClient PostToConnectionAPI
	logger      *zap.Logger
}

// NewPublisher creates a new DefaultPublisher for the given API Gateway endpoint.
func NewPublisher(ctx context.Context, store UserConnectionsGetter, connManager ConnectionManager, apiEndpoint string, logger *zap.Logger) (*DefaultPublisher, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	apiGwClient := apigatewaymanagementapi.NewFromConfig(cfg, func(o *apigatewaymanagementapi.Options) {
		o.BaseEndpoint = aws.String(apiEndpoint)
	})

	return NewPublisherWithClient(store, connManager, apiGwClient, logger), nil
}

// NewPublisherWithClient creates a DefaultPublisher around an existing client.
func NewPublisherWithClient(store UserConnectionsGetter, connManager ConnectionManager, client PostToConnectionAPI, logger *zap.Logger) *DefaultPublisher {
	return &DefaultPublisher{
		store:       store,
		connManager: connManager,
		apiGwClient: client,
		logger:      logger,
	}
}

var _ Publisher = (*DefaultPublisher)(nil)

// Publish sends a message to every connection the user holds. Gone connections are
// removed; other per-connection failures are logged and skipped.
func (p *DefaultPublisher) Publish(ctx context.Context, userID string, message Message) error {
	connectionIDs, err := p.store.GetConnectionsByUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to get connections for user: %w", err)
	}

	payload, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	for _, connectionID := range connectionIDs {
		_, err := p.apiGwClient.PostToConnection(ctx, &apigatewaymanagementapi.PostToConnectionInput{
			ConnectionId: aws.String(connectionID),
			Data:         payload,
		})
		if err == nil {
			continue
		}

		var goneErr *apigwtypes.GoneException
		if errors.As(err, &goneErr) {
			p.logger.Info("stale connection found, deleting", zap.String("connection_id", connectionID))
			if err := p.connManager.RemoveConnection(ctx, connectionID); err != nil {
				p.logger.Error("failed to delete stale connection", zap.String("connection_id", connectionID), zap.Error(err))
			}
			continue
		}
		p.logger.Error("failed to post to connection", zap.String("connection_id", connectionID), zap.Error(err))
	}

	return nil
}
