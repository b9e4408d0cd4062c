package events

import (
	"context"
	"time"

	"github.com/chris/contact-unlock/pkg/models"
)

// Event types published for ledger changes.
const (
	AttemptCreated   = "attempt.created"
	AttemptCompleted = "attempt.completed"
	AttemptFailed    = "attempt.failed"
)

// LedgerEvent describes one change to the payment ledger.
type LedgerEvent struct {
	EventType        string               `json:"event_type"`
	AttemptID        string               `json:"attempt_id"`
	UserID           string               `json:"user_id"`
	PropertyID       string               `json:"property_id"`
	Status           models.AttemptStatus `json:"status"`
	AmountMinorUnits int64                `json:"amount_minor_units"`
	Currency         string               `json:"currency"`
	OccurredAt       time.Time            `json:"occurred_at"`
}

// NewLedgerEvent builds an event from the attempt's current state.
func NewLedgerEvent(eventType string, attempt *models.PaymentAttempt, at time.Time) LedgerEvent {
	return LedgerEvent{
		EventType:        eventType,
		AttemptID:        attempt.Id,
		UserID:           attempt.UserId,
		PropertyID:       attempt.PropertyId,
		Status:           attempt.Status,
		AmountMinorUnits: attempt.AmountMinorUnits,
		Currency:         attempt.Currency,
		OccurredAt:       at,
	}
}

// Publisher delivers ledger events to downstream consumers.
type Publisher interface {
	PublishLedgerEvent(ctx context.Context, event LedgerEvent) error
}

// NoopPublisher drops events. Used when no broker is configured.
type NoopPublisher struct{}

// PublishLedgerEvent does nothing.
func (NoopPublisher) PublishLedgerEvent(context.Context, LedgerEvent) error {
	return nil
}
