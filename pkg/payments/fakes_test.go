package payments

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/chris/contact-unlock/pkg/events"
	"github.com/chris/contact-unlock/pkg/gateway"
	"github.com/chris/contact-unlock/pkg/models"
	"github.com/chris/contact-unlock/pkg/storage"
	"github.com/chris/contact-unlock/pkg/websockets"
)

// memLedger is a ledger with the same pair-claim rules as the real stores.
type memLedger struct {
	mu       sync.Mutex
	now      func() time.Time
	seq      int
	attempts map[string]*models.PaymentAttempt
	order    []string
	claims   map[string]*models.EntitlementClaim
}

func newMemLedger(now func() time.Time) *memLedger {
	return &memLedger{
		now:      now,
		attempts: map[string]*models.PaymentAttempt{},
		claims:   map[string]*models.EntitlementClaim{},
	}
}

var _ storage.Ledger = (*memLedger)(nil)

func (m *memLedger) CreateAttempt(_ context.Context, attempt *models.PaymentAttempt, pendingTimeout time.Duration) (*models.PaymentAttempt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	key := models.PairKey(attempt.UserId, attempt.PropertyId)
	if claim, ok := m.claims[key]; ok {
		expired := claim.Status == models.PENDING && claim.ExpiresAt < now.Unix()
		if claim.Status != models.FAILED && !expired {
			return nil, storage.ErrPairClaimed
		}
	}

	m.seq++
	created := *attempt
	created.Id = fmt.Sprintf("attempt-%d", m.seq)
	created.PairKey = key
	created.Status = models.PENDING
	created.CreatedAt = now
	created.UpdatedAt = now
	m.attempts[created.Id] = &created
	m.order = append(m.order, created.Id)
	m.claims[key] = &models.EntitlementClaim{
		PairKey:   key,
		AttemptId: created.Id,
		Status:    models.PENDING,
		ExpiresAt: now.Add(pendingTimeout).Unix(),
	}

	out := created
	return &out, nil
}

func (m *memLedger) CompleteAttempt(_ context.Context, attemptID string, gatewayReference *string, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	attempt, ok := m.attempts[attemptID]
	if !ok {
		return storage.ErrAttemptNotFound
	}
	if attempt.Status != models.PENDING {
		return storage.ErrAttemptNotPending
	}
	if claim, ok := m.claims[attempt.PairKey]; ok && claim.Status == models.COMPLETED {
		return storage.ErrEntitlementExists
	}

	attempt.Status = models.COMPLETED
	attempt.GatewayReference = gatewayReference
	attempt.UnlockedAt = &at
	m.claims[attempt.PairKey] = &models.EntitlementClaim{PairKey: attempt.PairKey, AttemptId: attemptID, Status: models.COMPLETED}
	return nil
}

func (m *memLedger) FailAttempt(_ context.Context, attemptID string, gatewayReference *string, reason string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	attempt, ok := m.attempts[attemptID]
	if !ok || attempt.Status != models.PENDING {
		return storage.ErrAttemptNotPending
	}
	attempt.Status = models.FAILED
	attempt.GatewayReference = gatewayReference
	attempt.FailureReason = &reason
	if claim, ok := m.claims[attempt.PairKey]; ok && claim.AttemptId == attemptID && claim.Status == models.PENDING {
		claim.Status = models.FAILED
	}
	return nil
}

func (m *memLedger) GetAttempt(_ context.Context, attemptID string) (*models.PaymentAttempt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	attempt, ok := m.attempts[attemptID]
	if !ok {
		return nil, storage.ErrAttemptNotFound
	}
	out := *attempt
	return &out, nil
}

func (m *memLedger) FindCompletedAttempt(_ context.Context, userID, propertyID string) (*models.PaymentAttempt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	claim, ok := m.claims[models.PairKey(userID, propertyID)]
	if !ok || claim.Status != models.COMPLETED {
		return nil, storage.ErrAttemptNotFound
	}
	out := *m.attempts[claim.AttemptId]
	return &out, nil
}

func (m *memLedger) filter(keep func(*models.PaymentAttempt) bool) []models.PaymentAttempt {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []models.PaymentAttempt
	for i := len(m.order) - 1; i >= 0; i-- {
		if a := m.attempts[m.order[i]]; keep(a) {
			out = append(out, *a)
		}
	}
	return out
}

func (m *memLedger) ListAttemptsByUser(_ context.Context, userID string) ([]models.PaymentAttempt, error) {
	return m.filter(func(a *models.PaymentAttempt) bool { return a.UserId == userID }), nil
}

func (m *memLedger) ListAttemptsByProperty(_ context.Context, propertyID string) ([]models.PaymentAttempt, error) {
	return m.filter(func(a *models.PaymentAttempt) bool { return a.PropertyId == propertyID }), nil
}

func (m *memLedger) GetAbandonedAttempts(_ context.Context, maxAge time.Duration) ([]models.PaymentAttempt, error) {
	cutoff := m.now().Add(-maxAge)
	return m.filter(func(a *models.PaymentAttempt) bool {
		return a.Status == models.PENDING && a.CreatedAt.Before(cutoff)
	}), nil
}

func (m *memLedger) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.attempts)
}

func (m *memLedger) completedFor(userID, propertyID string) int {
	return len(m.filter(func(a *models.PaymentAttempt) bool {
		return a.UserId == userID && a.PropertyId == propertyID && a.Status == models.COMPLETED
	}))
}

// fakeClock is a settable time source.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

type fakeCatalog struct {
	properties map[string]*models.Property
	err        error
}

func (f *fakeCatalog) GetProperty(_ context.Context, propertyID string) (*models.Property, error) {
	if f.err != nil {
		return nil, f.err
	}
	p, ok := f.properties[propertyID]
	if !ok {
		return nil, storage.ErrPropertyNotFound
	}
	return p, nil
}

type fakeSource struct {
	mu    sync.Mutex
	err   error
	begun []string
}

func (f *fakeSource) Begin(_ context.Context, attempt *models.PaymentAttempt) (gateway.Handoff, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return gateway.Handoff{}, f.err
	}
	f.begun = append(f.begun, attempt.Id)
	return gateway.Handoff{RedirectURL: "https://pay.example/" + attempt.Id}, nil
}

type recordingEvents struct {
	mu     sync.Mutex
	events []events.LedgerEvent
}

func (r *recordingEvents) PublishLedgerEvent(_ context.Context, e events.LedgerEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

func (r *recordingEvents) types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.events))
	for i, e := range r.events {
		out[i] = e.EventType
	}
	return out
}

type recordingNotifier struct {
	mu    sync.Mutex
	users []string
	msgs  []websockets.Message
}

func (r *recordingNotifier) Publish(_ context.Context, userID string, message websockets.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users = append(r.users, userID)
	r.msgs = append(r.msgs, message)
	return nil
}
