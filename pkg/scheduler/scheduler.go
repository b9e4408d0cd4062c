package scheduler

import (
	"context"
	"time"
)

// Scheduler defines the interface for a component that schedules a simulated
// completion of a payment attempt.
type Scheduler interface {
	// ScheduleCompletion arranges for the attempt to be finalized as completed once delay has elapsed.
	ScheduleCompletion(ctx context.Context, attemptID string, delay time.Duration) error
}

// CompletionMessage is the payload carried by queued completions.
type CompletionMessage struct {
	AttemptID string `json:"attempt_id"`
}
