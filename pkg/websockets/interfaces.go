package websockets

import (
	"context"
)

// ConnectionManager defines the interface for managing WebSocket connections.
type ConnectionManager interface {
	AddConnection(ctx context.Context, connectionID, userID string) error
	RemoveConnection(ctx context.Context, connectionID string) error
}

// UserConnectionsGetter looks up the connections a user holds open.
type UserConnectionsGetter interface {
	GetConnectionsByUser(ctx context.Context, userID string) ([]string, error)
}

// Publisher defines the interface for publishing messages to one user's WebSocket clients.
type Publisher interface {
	Publish(ctx context.Context, userID string, message Message) error
}
