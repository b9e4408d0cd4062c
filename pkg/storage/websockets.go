package storage

import "context"

// WebSocketManager defines the interface for storing and retrieving WebSocket connection IDs.
// Connections are registered per user so entitlement updates only reach their owner.
type WebSocketManager interface {
	AddConnection(ctx context.Context, connectionID, userID string) error
	RemoveConnection(ctx context.Context, connectionID string) error
	GetConnectionsByUser(ctx context.Context, userID string) ([]string, error)
}
