package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/chris/contact-unlock/pkg/models"
	"github.com/chris/contact-unlock/pkg/storage"
	"github.com/google/uuid"
)

const attemptColumns = "id, user_id, property_id, amount_minor_units, currency, status, gateway_reference, failure_reason, created_at, updated_at, unlocked_at"

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAttempt(row rowScanner) (*models.PaymentAttempt, error) {
	var (
		a          models.PaymentAttempt
		reference  sql.NullString
		reason     sql.NullString
		unlockedAt sql.NullTime
	)
	err := row.Scan(&a.Id, &a.UserId, &a.PropertyId, &a.AmountMinorUnits, &a.Currency, &a.Status,
		&reference, &reason, &a.CreatedAt, &a.UpdatedAt, &unlockedAt)
	if err != nil {
		return nil, err
	}

	a.PairKey = models.PairKey(a.UserId, a.PropertyId)
	if reference.Valid {
		a.GatewayReference = &reference.String
	}
	if reason.Valid {
		a.FailureReason = &reason.String
	}
	if unlockedAt.Valid {
		t := unlockedAt.Time.UTC()
		a.UnlockedAt = &t
	}
	a.CreatedAt = a.CreatedAt.UTC()
	a.UpdatedAt = a.UpdatedAt.UTC()
	return &a, nil
}

// CreateAttempt inserts a pending attempt. A pending row for the same pair that is
// older than pendingTimeout is failed as abandoned in the same transaction, so
// the insert only conflicts with live pending rows or a completed one.
func (s *Store) CreateAttempt(ctx context.Context, attempt *models.PaymentAttempt, pendingTimeout time.Duration) (*models.PaymentAttempt, error) {
	now := timestamp()
	attempt.Id = uuid.New().String()
	attempt.PairKey = models.PairKey(attempt.UserId, attempt.PropertyId)
	attempt.Status = models.PENDING
	attempt.GatewayReference = nil
	attempt.FailureReason = nil
	attempt.UnlockedAt = nil
	attempt.CreatedAt = now
	attempt.UpdatedAt = now

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`UPDATE payment_attempts SET status = $1, failure_reason = $2, updated_at = $3
		 WHERE user_id = $4 AND property_id = $5 AND status = $6 AND created_at < $7`,
		models.FAILED, "abandoned", now, attempt.UserId, attempt.PropertyId, models.PENDING, now.Add(-pendingTimeout))
	if err != nil {
		return nil, fmt.Errorf("failed to expire abandoned attempts: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO payment_attempts (id, user_id, property_id, amount_minor_units, currency, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		attempt.Id, attempt.UserId, attempt.PropertyId, attempt.AmountMinorUnits, attempt.Currency, attempt.Status, now, now)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, storage.ErrPairClaimed
		}
		return nil, fmt.Errorf("failed to insert payment attempt: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit payment attempt: %w", err)
	}
	return attempt, nil
}

// GetAttempt retrieves a single attempt by ID.
func (s *Store) GetAttempt(ctx context.Context, attemptID string) (*models.PaymentAttempt, error) {
	row := s.DB.QueryRowContext(ctx, "SELECT "+attemptColumns+" FROM payment_attempts WHERE id = $1", attemptID)
	attempt, err := scanAttempt(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrAttemptNotFound
		}
		return nil, fmt.Errorf("failed to get payment attempt: %w", err)
	}
	return attempt, nil
}

// FindCompletedAttempt returns the completed attempt for the pair, or ErrAttemptNotFound.
func (s *Store) FindCompletedAttempt(ctx context.Context, userID, propertyID string) (*models.PaymentAttempt, error) {
	row := s.DB.QueryRowContext(ctx,
		"SELECT "+attemptColumns+" FROM payment_attempts WHERE user_id = $1 AND property_id = $2 AND status = $3",
		userID, propertyID, models.COMPLETED)
	attempt, err := scanAttempt(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrAttemptNotFound
		}
		return nil, fmt.Errorf("failed to find completed attempt: %w", err)
	}
	return attempt, nil
}

// ListAttemptsByUser returns the user's attempts, newest first.
func (s *Store) ListAttemptsByUser(ctx context.Context, userID string) ([]models.PaymentAttempt, error) {
	return s.queryAttempts(ctx,
		"SELECT "+attemptColumns+" FROM payment_attempts WHERE user_id = $1 ORDER BY created_at DESC", userID)
}

// ListAttemptsByProperty returns every attempt against the property, newest first.
func (s *Store) ListAttemptsByProperty(ctx context.Context, propertyID string) ([]models.PaymentAttempt, error) {
	return s.queryAttempts(ctx,
		"SELECT "+attemptColumns+" FROM payment_attempts WHERE property_id = $1 ORDER BY created_at DESC", propertyID)
}

// GetAbandonedAttempts returns pending attempts created more than maxAge ago.
func (s *Store) GetAbandonedAttempts(ctx context.Context, maxAge time.Duration) ([]models.PaymentAttempt, error) {
	return s.queryAttempts(ctx,
		"SELECT "+attemptColumns+" FROM payment_attempts WHERE status = $1 AND created_at < $2 ORDER BY created_at",
		models.PENDING, timestamp().Add(-maxAge))
}

func (s *Store) queryAttempts(ctx context.Context, query string, args ...any) ([]models.PaymentAttempt, error) {
	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query payment attempts: %w", err)
	}
	defer rows.Close()

	var attempts []models.PaymentAttempt
	for rows.Next() {
		attempt, err := scanAttempt(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payment attempt: %w", err)
		}
		attempts = append(attempts, *attempt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payment attempts: %w", err)
	}
	return attempts, nil
}
