package payments

import (
	"context"
	"errors"
	"fmt"

	"github.com/chris/contact-unlock/pkg/events"
	"github.com/chris/contact-unlock/pkg/metrics"
	"github.com/chris/contact-unlock/pkg/models"
	"github.com/chris/contact-unlock/pkg/storage"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const (
	reasonGatewayFailure = "gateway reported failure"
	reasonAbandoned      = "abandoned"
	reasonDuplicate      = "pair already entitled by another attempt"
)

// Finalize moves a pending attempt to the terminal status for outcome. Finalizing a
// terminal attempt with the same outcome is a no-op; with a different outcome it
// returns ErrConflictingFinalize and leaves the row unchanged.
func (s *Service) Finalize(ctx context.Context, attemptID string, outcome models.Outcome, gatewayReference *string) (_ *models.PaymentAttempt, err error) {
	ctx, span := s.tracer.Start(ctx, "payments.Finalize", trace.WithAttributes(
		attribute.String("attempt.id", attemptID),
		attribute.String("outcome", string(outcome)),
	))
	defer func() { endSpan(span, err) }()

	if !outcome.Valid() {
		return nil, ErrInvalidOutcome
	}

	attempt, err := s.ledger.GetAttempt(ctx, attemptID)
	if err != nil {
		if errors.Is(err, storage.ErrAttemptNotFound) {
			return nil, ErrAttemptNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrLedgerUnavailable, err)
	}

	reason := ""
	if outcome == models.OutcomeFailed {
		reason = reasonGatewayFailure
	}
	return s.finalize(ctx, attempt, outcome, gatewayReference, reason)
}

// ReportOutcome is the gateway callback. The gateway echoes the attempt ID it was
// given at hand-off along with its own reference for the payment.
func (s *Service) ReportOutcome(ctx context.Context, attemptID, gatewayReference string, outcome models.Outcome) (*models.PaymentAttempt, error) {
	var ref *string
	if gatewayReference != "" {
		ref = &gatewayReference
	}
	return s.Finalize(ctx, attemptID, outcome, ref)
}

// CompleteScheduled applies a simulated completion. A completion that arrives after
// the attempt already ended, or for a pair another attempt already unlocked, is
// stale and ignored.
func (s *Service) CompleteScheduled(ctx context.Context, attemptID string) error {
	_, err := s.Finalize(ctx, attemptID, models.OutcomeCompleted, nil)
	if errors.Is(err, ErrConflictingFinalize) || errors.Is(err, ErrAlreadyEntitled) {
		s.logger.Info("ignoring stale scheduled completion", zap.String("attempt_id", attemptID))
		return nil
	}
	return err
}

func (s *Service) finalize(ctx context.Context, attempt *models.PaymentAttempt, outcome models.Outcome, gatewayReference *string, reason string) (*models.PaymentAttempt, error) {
	if attempt.Status.IsTerminal() {
		return s.settled(attempt, outcome)
	}
	if err := attempt.Status.CanTransitionTo(outcome.Status()); err != nil {
		return nil, err
	}

	now := s.now()
	var err error
	if outcome == models.OutcomeCompleted {
		err = s.ledger.CompleteAttempt(ctx, attempt.Id, gatewayReference, now)
	} else {
		err = s.ledger.FailAttempt(ctx, attempt.Id, gatewayReference, reason)
	}

	switch {
	case errors.Is(err, storage.ErrAttemptNotFound):
		return nil, ErrAttemptNotFound

	case errors.Is(err, storage.ErrAttemptNotPending):
		// Another finalize won; judge this one against what it wrote.
		current, gerr := s.ledger.GetAttempt(ctx, attempt.Id)
		if gerr != nil {
			return nil, fmt.Errorf("%w: %v", ErrLedgerUnavailable, gerr)
		}
		return s.settled(current, outcome)

	case errors.Is(err, storage.ErrEntitlementExists):
		s.logger.Error("completion would grant a second entitlement for the pair, failing attempt",
			zap.String("attempt_id", attempt.Id),
			zap.String("user_id", attempt.UserId),
			zap.String("property_id", attempt.PropertyId),
		)
		if _, ferr := s.finalize(ctx, attempt, models.OutcomeFailed, gatewayReference, reasonDuplicate); ferr != nil {
			return nil, ferr
		}
		return nil, ErrAlreadyEntitled

	case err != nil:
		return nil, fmt.Errorf("%w: %v", ErrLedgerUnavailable, err)
	}

	updated := *attempt
	updated.Status = outcome.Status()
	updated.UpdatedAt = now
	if gatewayReference != nil {
		ref := *gatewayReference
		updated.GatewayReference = &ref
	}

	eventType := events.AttemptFailed
	if outcome == models.OutcomeCompleted {
		updated.UnlockedAt = &now
		eventType = events.AttemptCompleted
		metrics.RecordPaymentAttempt(metrics.AttemptCompleted)
	} else {
		updated.FailureReason = &reason
		metrics.RecordPaymentAttempt(metrics.AttemptFailed)
	}

	s.logger.Info("payment attempt finalized",
		zap.String("attempt_id", updated.Id),
		zap.String("status", string(updated.Status)),
		zap.String("reason", reason),
	)
	s.publish(ctx, eventType, &updated)
	s.notify(ctx, &updated)

	return &updated, nil
}

// settled handles a finalize against an attempt that is already terminal.
func (s *Service) settled(attempt *models.PaymentAttempt, outcome models.Outcome) (*models.PaymentAttempt, error) {
	if attempt.Status == outcome.Status() {
		s.logger.Debug("finalize is a no-op, attempt already in requested state",
			zap.String("attempt_id", attempt.Id),
			zap.String("status", string(attempt.Status)),
		)
		return attempt, nil
	}

	metrics.RecordPaymentAttempt(metrics.AttemptConflict)
	s.logger.Warn("conflicting finalize ignored",
		zap.String("attempt_id", attempt.Id),
		zap.String("status", string(attempt.Status)),
		zap.String("requested", string(outcome)),
	)
	return attempt, ErrConflictingFinalize
}
