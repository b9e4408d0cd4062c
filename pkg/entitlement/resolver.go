package entitlement

import (
	"context"
	"errors"
	"fmt"

	"github.com/chris/contact-unlock/pkg/identity"
	"github.com/chris/contact-unlock/pkg/metrics"
	"github.com/chris/contact-unlock/pkg/models"
	"github.com/chris/contact-unlock/pkg/storage"
	"go.uber.org/zap"
)

// Decision is the outcome of resolving a (user, property) pair.
type Decision string

const (
	Locked   Decision = "locked"
	Unlocked Decision = "unlocked"
)

// ErrResolverUnavailable is returned when the ledger cannot be read. It must never
// be treated as Locked.
var ErrResolverUnavailable = errors.New("entitlement resolver unavailable")

// Ledger is the read the resolver needs from the payment ledger.
type Ledger interface {
	FindCompletedAttempt(ctx context.Context, userID, propertyID string) (*models.PaymentAttempt, error)
}

// Resolver decides whether a user may see a property's contact data.
type Resolver struct {
	ledger Ledger
	logger *zap.Logger
}

// NewResolver creates a Resolver backed by the given ledger.
func NewResolver(ledger Ledger, logger *zap.Logger) *Resolver {
	return &Resolver{ledger: ledger, logger: logger}
}

// Resolve returns Unlocked only when a completed attempt exists for the exact pair.
// An absent user is Locked without touching the ledger.
func (r *Resolver) Resolve(ctx context.Context, user *identity.User, propertyID string) (Decision, error) {
	if user == nil || user.ID == "" {
		metrics.RecordResolution(string(Locked))
		return Locked, nil
	}

	attempt, err := r.ledger.FindCompletedAttempt(ctx, user.ID, propertyID)
	switch {
	case errors.Is(err, storage.ErrAttemptNotFound):
		metrics.RecordResolution(string(Locked))
		return Locked, nil
	case err != nil:
		metrics.RecordResolution("error")
		r.logger.Error("failed to read ledger for entitlement",
			zap.String("user_id", user.ID),
			zap.String("property_id", propertyID),
			zap.Error(err),
		)
		return "", fmt.Errorf("%w: %v", ErrResolverUnavailable, err)
	}

	// Guard against a store returning a row for a different pair.
	if attempt.UserId != user.ID || attempt.PropertyId != propertyID || attempt.Status != models.COMPLETED {
		metrics.RecordResolution(string(Locked))
		return Locked, nil
	}

	metrics.RecordResolution(string(Unlocked))
	return Unlocked, nil
}
