package gateway

import (
	"context"
	"fmt"
	"time"

	"github.com/chris/contact-unlock/pkg/models"
	"github.com/chris/contact-unlock/pkg/scheduler"
)

// Simulated completes attempts on its own after a fixed delay. It stands in for a
// gateway in demos and local runs.
type Simulated struct {
	scheduler scheduler.Scheduler
	delay     time.Duration
}

// NewSimulated creates a Simulated completion source.
func NewSimulated(s scheduler.Scheduler, delay time.Duration) *Simulated {
	return &Simulated{scheduler: s, delay: delay}
}

var _ CompletionSource = (*Simulated)(nil)

// Begin schedules the completion. There is nothing for the user to visit.
func (s *Simulated) Begin(ctx context.Context, attempt *models.PaymentAttempt) (Handoff, error) {
	if err := s.scheduler.ScheduleCompletion(ctx, attempt.Id, s.delay); err != nil {
		return Handoff{}, fmt.Errorf("failed to schedule simulated completion: %w", err)
	}
	return Handoff{}, nil
}
