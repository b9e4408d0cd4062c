package payments

import (
	"context"
	"errors"
	"fmt"

	"github.com/chris/contact-unlock/pkg/models"
	"go.uber.org/zap"
)

// ReapAbandoned fails every attempt that has been pending longer than the pending
// timeout and returns how many it failed. Attempts that finalize concurrently are skipped.
func (s *Service) ReapAbandoned(ctx context.Context) (int, error) {
	ctx, span := s.tracer.Start(ctx, "payments.ReapAbandoned")
	var err error
	defer func() { endSpan(span, err) }()

	attempts, err := s.ledger.GetAbandonedAttempts(ctx, s.policy.PendingTimeout)
	if err != nil {
		err = fmt.Errorf("%w: %v", ErrLedgerUnavailable, err)
		return 0, err
	}

	reaped := 0
	var errs []error
	for i := range attempts {
		attempt := &attempts[i]
		if attempt.Status != models.PENDING {
			continue
		}

		updated, ferr := s.finalize(ctx, attempt, models.OutcomeFailed, nil, reasonAbandoned)
		switch {
		case errors.Is(ferr, ErrConflictingFinalize):
			continue
		case ferr != nil:
			s.logger.Error("failed to reap abandoned attempt", zap.String("attempt_id", attempt.Id), zap.Error(ferr))
			errs = append(errs, ferr)
			continue
		}
		if updated.FailureReason != nil && *updated.FailureReason == reasonAbandoned {
			reaped++
		}
	}

	s.logger.Info("abandoned attempts reaped", zap.Int("found", len(attempts)), zap.Int("reaped", reaped))
	err = errors.Join(errs...)
	return reaped, err
}
