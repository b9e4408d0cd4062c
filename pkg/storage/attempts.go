package storage

import (
	"context"
	"time"

	"github.com/chris/contact-unlock/pkg/models"
)

// LedgerReader defines the interface for reading payment attempts.
type LedgerReader interface {
	// GetAttempt retrieves an attempt by its ID. Returns ErrAttemptNotFound if absent.
	GetAttempt(ctx context.Context, attemptID string) (*models.PaymentAttempt, error)

	// FindCompletedAttempt returns the completed attempt for the pair, or
	// ErrAttemptNotFound when the pair has no completed attempt.
	FindCompletedAttempt(ctx context.Context, userID, propertyID string) (*models.PaymentAttempt, error)

	// ListAttemptsByUser retrieves all attempts made by a user.
	ListAttemptsByUser(ctx context.Context, userID string) ([]models.PaymentAttempt, error)

	// ListAttemptsByProperty retrieves all attempts made against a property.
	ListAttemptsByProperty(ctx context.Context, propertyID string) ([]models.PaymentAttempt, error)

	// GetAbandonedAttempts retrieves attempts that have been pending for longer than maxAge.
	GetAbandonedAttempts(ctx context.Context, maxAge time.Duration) ([]models.PaymentAttempt, error)
}

// AttemptCreator persists new pending attempts.
type AttemptCreator interface {
	// CreateAttempt stores a new pending attempt and claims its (user, property) pair.
	// A pending attempt younger than pendingTimeout, or a completed attempt, holds the
	// claim; in that case ErrPairClaimed is returned and nothing is written.
	CreateAttempt(ctx context.Context, attempt *models.PaymentAttempt, pendingTimeout time.Duration) (*models.PaymentAttempt, error)
}
