package storage

import (
	"context"

	"github.com/chris/contact-unlock/pkg/models"
)

// AdminSessionStore persists admin console sessions.
type AdminSessionStore interface {
	CreateSession(ctx context.Context, session *models.AdminSession) error
	// GetSession returns ErrSessionNotFound for unknown or revoked tokens.
	GetSession(ctx context.Context, token string) (*models.AdminSession, error)
	DeleteSession(ctx context.Context, token string) error
}
