package storage

import (
	"context"
	"time"
)

// FinalizationStore defines the privileged interface for moving an attempt out of pending.
// Both operations are conditional on the attempt still being pending and return
// ErrAttemptNotPending when another writer got there first.
// It should only be exposed to the payment workflow.
type FinalizationStore interface {
	LedgerReader

	// CompleteAttempt marks the attempt completed and records the entitlement.
	// Returns ErrEntitlementExists if the pair already has a completed attempt.
	CompleteAttempt(ctx context.Context, attemptID string, gatewayReference *string, at time.Time) error

	// FailAttempt marks the attempt failed and releases its claim on the pair.
	FailAttempt(ctx context.Context, attemptID string, gatewayReference *string, reason string) error
}
