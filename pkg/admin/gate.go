package admin

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/chris/contact-unlock/pkg/models"
	"github.com/chris/contact-unlock/pkg/storage"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidCredentials is returned when the email or password does not match.
	ErrInvalidCredentials = errors.New("invalid admin credentials")

	// ErrInvalidSession is returned for unknown or revoked session tokens.
	ErrInvalidSession = errors.New("invalid admin session")
)

// Gate checks the fixed admin credential and manages admin sessions.
// Sessions never expire on their own; they end when revoked.
type Gate struct {
	email        string
	passwordHash []byte
	sessions     storage.AdminSessionStore
	logger       *zap.Logger
	now          func() time.Time
}

// NewGate creates a Gate for the admin email and bcrypt password hash.
func NewGate(email, passwordHash string, sessions storage.AdminSessionStore, logger *zap.Logger) *Gate {
	return &Gate{
		email:        strings.ToLower(strings.TrimSpace(email)),
		passwordHash: []byte(passwordHash),
		sessions:     sessions,
		logger:       logger,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// HashPassword returns the bcrypt hash to configure as the admin password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// Issue checks the credentials and stores a new session.
func (g *Gate) Issue(ctx context.Context, email, password string) (*models.AdminSession, error) {
	emailOK := subtle.ConstantTimeCompare([]byte(strings.ToLower(strings.TrimSpace(email))), []byte(g.email)) == 1
	// bcrypt runs even when the email is wrong.
	passwordErr := bcrypt.CompareHashAndPassword(g.passwordHash, []byte(password))
	if !emailOK || passwordErr != nil {
		g.logger.Warn("admin login rejected", zap.String("email", email))
		return nil, ErrInvalidCredentials
	}

	session := &models.AdminSession{
		Token:    uuid.New().String(),
		Email:    g.email,
		IssuedAt: g.now().Truncate(time.Second),
	}
	if err := g.sessions.CreateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to issue admin session: %w", err)
	}

	g.logger.Info("admin session issued", zap.String("email", session.Email))
	return session, nil
}

// Validate returns the session for token, or ErrInvalidSession.
func (g *Gate) Validate(ctx context.Context, token string) (*models.AdminSession, error) {
	if token == "" {
		return nil, ErrInvalidSession
	}
	session, err := g.sessions.GetSession(ctx, token)
	if err != nil {
		if errors.Is(err, storage.ErrSessionNotFound) {
			return nil, ErrInvalidSession
		}
		return nil, fmt.Errorf("failed to validate admin session: %w", err)
	}
	return session, nil
}

// Revoke ends a session. Revoking an unknown token is not an error.
func (g *Gate) Revoke(ctx context.Context, token string) error {
	if err := g.sessions.DeleteSession(ctx, token); err != nil {
		return fmt.Errorf("failed to revoke admin session: %w", err)
	}
	return nil
}

type contextKey struct{}

// WithSession returns a copy of ctx carrying the admin session.
func WithSession(ctx context.Context, session *models.AdminSession) context.Context {
	return context.WithValue(ctx, contextKey{}, session)
}

// SessionFromContext returns the admin session on ctx, or nil.
func SessionFromContext(ctx context.Context) *models.AdminSession {
	session, _ := ctx.Value(contextKey{}).(*models.AdminSession)
	return session
}
