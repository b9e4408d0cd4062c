package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/chris/contact-unlock/pkg/models"
	"github.com/chris/contact-unlock/pkg/storage"
)

// CompleteAttempt moves a pending attempt to completed. The one-completed index
// rejects the update when the pair already holds an entitlement.
func (s *Store) CompleteAttempt(ctx context.Context, attemptID string, gatewayReference *string, at time.Time) error {
	at = at.UTC().Truncate(time.Second)
	res, err := s.DB.ExecContext(ctx,
		`UPDATE payment_attempts SET status = $1, gateway_reference = $2, unlocked_at = $3, updated_at = $3
		 WHERE id = $4 AND status = $5`,
		models.COMPLETED, gatewayReference, at, attemptID, models.PENDING)
	if err != nil {
		if isUniqueViolation(err) {
			return storage.ErrEntitlementExists
		}
		return fmt.Errorf("failed to complete payment attempt: %w", err)
	}
	return s.requireOneRow(ctx, res, attemptID)
}

// FailAttempt moves a pending attempt to failed with the given reason.
func (s *Store) FailAttempt(ctx context.Context, attemptID string, gatewayReference *string, reason string) error {
	res, err := s.DB.ExecContext(ctx,
		`UPDATE payment_attempts SET status = $1, gateway_reference = $2, failure_reason = $3, updated_at = $4
		 WHERE id = $5 AND status = $6`,
		models.FAILED, gatewayReference, reason, timestamp(), attemptID, models.PENDING)
	if err != nil {
		return fmt.Errorf("failed to fail payment attempt: %w", err)
	}
	return s.requireOneRow(ctx, res, attemptID)
}

type rowsAffecter interface {
	RowsAffected() (int64, error)
}

// requireOneRow tells an update that matched nothing apart: ErrAttemptNotFound
// for an unknown id, ErrAttemptNotPending for a row that is already terminal.
func (s *Store) requireOneRow(ctx context.Context, res rowsAffecter, attemptID string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n > 0 {
		return nil
	}

	var exists bool
	if err := s.DB.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM payment_attempts WHERE id = $1)`, attemptID).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check payment attempt: %w", err)
	}
	if !exists {
		return storage.ErrAttemptNotFound
	}
	return storage.ErrAttemptNotPending
}
