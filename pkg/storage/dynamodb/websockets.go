package dynamodb

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// connectionLifetime matches the API Gateway hard limit on websocket connections.
// Rows carry it as a DynamoDB TTL so missed $disconnect events do not linger.
const connectionLifetime = 2 * time.Hour

// WebSocketConnection represents a record in the WebSocket connections table.
type WebSocketConnection struct {
	ConnectionID string `dynamodbav:"connection_id"`
	UserID       string `dynamodbav:"user_id"`
	ConnectedAt  string `dynamodbav:"connected_at,omitempty"`
	ExpiresAt    int64  `dynamodbav:"expires_at,omitempty"`
}

// AddConnection registers a WebSocket connection so entitlement pushes reach the user.
func (s *Store) AddConnection(ctx context.Context, connectionID, userID string) error {
	now := time.Now().UTC()
	item, err := attributevalue.MarshalMap(WebSocketConnection{
		ConnectionID: connectionID,
		UserID:       userID,
		ConnectedAt:  now.Format(time.RFC3339),
		ExpiresAt:    now.Add(connectionLifetime).Unix(),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal connection: %w", err)
	}

	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.WebsocketConnectionsTableName),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("failed to put connection: %w", err)
	}

	return nil
}

// RemoveConnection deletes a WebSocket connection ID.
func (s *Store) RemoveConnection(ctx context.Context, connectionID string) error {
	key, err := attributevalue.MarshalMap(map[string]string{"connection_id": connectionID})
	if err != nil {
		return fmt.Errorf("failed to marshal connection key: %w", err)
	}

	_, err = s.Client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(s.WebsocketConnectionsTableName),
		Key:       key,
	})
	if err != nil {
		return fmt.Errorf("failed to delete connection: %w", err)
	}

	return nil
}

// GetConnectionsByUser returns the connection IDs a user currently holds open.
func (s *Store) GetConnectionsByUser(ctx context.Context, userID string) ([]string, error) {
	queryOutput, err := s.Client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(s.WebsocketConnectionsTableName),
		IndexName:              aws.String("user_id-index"),
		KeyConditionExpression: aws.String("user_id = :user_id"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":user_id": &types.AttributeValueMemberS{Value: userID},
		},
		ProjectionExpression: aws.String("connection_id"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query connections table: %w", err)
	}

	var connections []WebSocketConnection
	if err := attributevalue.UnmarshalListOfMaps(queryOutput.Items, &connections); err != nil {
		return nil, fmt.Errorf("failed to unmarshal connections: %w", err)
	}

	connectionIDs := make([]string, len(connections))
	for i, conn := range connections {
		connectionIDs[i] = conn.ConnectionID
	}

	return connectionIDs, nil
}
