package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/chris/contact-unlock/pkg/models"
	"github.com/chris/contact-unlock/pkg/storage"
)

func (s *Store) CreateSession(ctx context.Context, session *models.AdminSession) error {
	_, err := s.DB.ExecContext(ctx,
		"INSERT INTO admin_sessions (token, email, issued_at) VALUES ($1, $2, $3)",
		session.Token, session.Email, session.IssuedAt)
	if err != nil {
		return fmt.Errorf("failed to create admin session: %w", err)
	}
	return nil
}

func (s *Store) GetSession(ctx context.Context, token string) (*models.AdminSession, error) {
	var session models.AdminSession
	err := s.DB.QueryRowContext(ctx,
		"SELECT token, email, issued_at FROM admin_sessions WHERE token = $1", token).
		Scan(&session.Token, &session.Email, &session.IssuedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get admin session: %w", err)
	}
	session.IssuedAt = session.IssuedAt.UTC()
	return &session, nil
}

func (s *Store) DeleteSession(ctx context.Context, token string) error {
	if _, err := s.DB.ExecContext(ctx, "DELETE FROM admin_sessions WHERE token = $1", token); err != nil {
		return fmt.Errorf("failed to delete admin session: %w", err)
	}
	return nil
}
