package scheduler

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
)

// ErrSchedulerClosed is returned when scheduling on a closed LocalScheduler.
var ErrSchedulerClosed = errors.New("scheduler is closed")

// CompleteFunc finalizes an attempt as completed.
type CompleteFunc func(ctx context.Context, attemptID string) error

// LocalScheduler runs completions on an in-process timer. It is meant for local
// runs where no queue is available; scheduled completions are lost on restart.
type LocalScheduler struct {
	complete CompleteFunc
	timeout  time.Duration
	logger   *zap.Logger

	mu      sync.Mutex
	closed  bool
	timers  map[string]*time.Timer
	running sync.WaitGroup
}

// NewLocalScheduler creates a LocalScheduler. The callback is usually bound after
// the payment service is built, see Bind.
func NewLocalScheduler(logger *zap.Logger) *LocalScheduler {
	return &LocalScheduler{logger: logger, timeout: 10 * time.Second, timers: make(map[string]*time.Timer)}
}

// Bind sets the function invoked when a timer fires.
func (s *LocalScheduler) Bind(complete CompleteFunc) {
	s.complete = complete
}

var _ Scheduler = (*LocalScheduler)(nil)

// ScheduleCompletion starts a timer that calls the bound CompleteFunc after delay.
func (s *LocalScheduler) ScheduleCompletion(_ context.Context, attemptID string, delay time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSchedulerClosed
	}
	if old, ok := s.timers[attemptID]; ok {
		old.Stop()
	}
	s.timers[attemptID] = time.AfterFunc(delay, func() { s.fire(attemptID) })
	return nil
}

func (s *LocalScheduler) fire(attemptID string) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	delete(s.timers, attemptID)
	s.running.Add(1)
	s.mu.Unlock()
	defer s.running.Done()

	if s.complete == nil {
		s.logger.Error("local scheduler fired without a completion callback", zap.String("attempt_id", attemptID))
		return
	}

	// The request context is gone by the time the timer fires.
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	if err := s.complete(ctx, attemptID); err != nil {
		s.logger.Warn("scheduled completion failed", zap.String("attempt_id", attemptID), zap.Error(err))
		return
	}
	s.logger.Info("scheduled completion applied", zap.String("attempt_id", attemptID))
}

// Close stops timers that have not fired and waits for running completions.
// Attempts whose timers were stopped stay pending until reconciliation fails them.
func (s *LocalScheduler) Close() error {
	s.mu.Lock()
	s.closed = true
	for id, timer := range s.timers {
		timer.Stop()
		delete(s.timers, id)
	}
	s.mu.Unlock()

	s.running.Wait()
	return nil
}
