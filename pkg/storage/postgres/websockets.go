package postgres

import (
	"context"
	"fmt"
)

// AddConnection records a websocket connection for the user.
func (s *Store) AddConnection(ctx context.Context, connectionID, userID string) error {
	_, err := s.DB.ExecContext(ctx,
		`INSERT INTO websocket_connections (connection_id, user_id) VALUES ($1, $2)
		 ON CONFLICT (connection_id) DO UPDATE SET user_id = EXCLUDED.user_id`,
		connectionID, userID)
	if err != nil {
		return fmt.Errorf("failed to add websocket connection: %w", err)
	}
	return nil
}

// RemoveConnection forgets a websocket connection.
func (s *Store) RemoveConnection(ctx context.Context, connectionID string) error {
	if _, err := s.DB.ExecContext(ctx, "DELETE FROM websocket_connections WHERE connection_id = $1", connectionID); err != nil {
		return fmt.Errorf("failed to remove websocket connection: %w", err)
	}
	return nil
}

// GetConnectionsByUser lists the user's open connections.
func (s *Store) GetConnectionsByUser(ctx context.Context, userID string) ([]string, error) {
	rows, err := s.DB.QueryContext(ctx, "SELECT connection_id FROM websocket_connections WHERE user_id = $1", userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query websocket connections: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan websocket connection: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
