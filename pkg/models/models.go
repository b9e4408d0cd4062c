package models

import (
	"fmt"
	"time"
)

// AttemptStatus defines the possible states of a payment attempt.
type AttemptStatus string

const (
	PENDING   AttemptStatus = "pending"
	COMPLETED AttemptStatus = "completed"
	FAILED    AttemptStatus = "failed"
)

// IsTerminal reports whether no further transition is allowed from s.
func (s AttemptStatus) IsTerminal() bool {
	return s == COMPLETED || s == FAILED
}

// CanTransitionTo validates a status change. Only pending rows move, and only
// to completed or failed.
func (s AttemptStatus) CanTransitionTo(target AttemptStatus) error {
	if s == PENDING && (target == COMPLETED || target == FAILED) {
		return nil
	}
	return fmt.Errorf("invalid attempt transition from %q to %q", s, target)
}

// Outcome is what a gateway (or the simulated completion) reports for an attempt.
type Outcome string

const (
	OutcomeCompleted Outcome = "completed"
	OutcomeFailed    Outcome = "failed"
)

// Status maps an outcome to the terminal status it produces.
func (o Outcome) Status() AttemptStatus {
	if o == OutcomeCompleted {
		return COMPLETED
	}
	return FAILED
}

// Valid reports whether o is a known outcome.
func (o Outcome) Valid() bool {
	return o == OutcomeCompleted || o == OutcomeFailed
}

// PaymentAttempt is one row of the payment ledger.
// UserID, PropertyID and AmountMinorUnits never change after creation.
type PaymentAttempt struct {
	Id               string        `json:"id" dynamodbav:"id" db:"id"`
	UserId           string        `json:"user_id" dynamodbav:"user_id" db:"user_id"`
	PropertyId       string        `json:"property_id" dynamodbav:"property_id" db:"property_id"`
	PairKey          string        `json:"-" dynamodbav:"pair_key"`
	AmountMinorUnits int64         `json:"amount_minor_units" dynamodbav:"amount_minor_units" db:"amount_minor_units"`
	Currency         string        `json:"currency" dynamodbav:"currency" db:"currency"`
	Status           AttemptStatus `json:"status" dynamodbav:"status" db:"status"`
	GatewayReference *string       `json:"gateway_reference,omitempty" dynamodbav:"gateway_reference,omitempty" db:"gateway_reference"`
	FailureReason    *string       `json:"failure_reason,omitempty" dynamodbav:"failure_reason,omitempty" db:"failure_reason"`
	CreatedAt        time.Time     `json:"created_at" dynamodbav:"created_at" db:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at" dynamodbav:"updated_at" db:"updated_at"`
	UnlockedAt       *time.Time    `json:"unlocked_at,omitempty" dynamodbav:"unlocked_at,omitempty" db:"unlocked_at"`
}

// PairKey builds the key that identifies one (user, property) entitlement.
func PairKey(userID, propertyID string) string {
	return userID + "#" + propertyID
}

// EntitlementClaim is the one-row-per-pair record that enforces that at most
// one attempt per pair can reach completed.
type EntitlementClaim struct {
	PairKey    string        `dynamodbav:"pair_key"`
	UserId     string        `dynamodbav:"user_id"`
	PropertyId string        `dynamodbav:"property_id"`
	AttemptId  string        `dynamodbav:"attempt_id"`
	Status     AttemptStatus `dynamodbav:"status"`
	ExpiresAt  int64         `dynamodbav:"expires_at"`
	UpdatedAt  time.Time     `dynamodbav:"updated_at"`
}

// Property is a catalog listing. OwnerPhone is the gated contact value.
// New listings are checked against the validate tags before they are stored.
type Property struct {
	Id         string    `json:"id" dynamodbav:"id"`
	Name       string    `json:"name" dynamodbav:"name" validate:"required"`
	Price      string    `json:"price" dynamodbav:"price" validate:"required"`
	Location   string    `json:"location" dynamodbav:"location" validate:"required"`
	Image      string    `json:"image" dynamodbav:"image"`
	Bedrooms   int       `json:"bedrooms" dynamodbav:"bedrooms" validate:"gte=0"`
	Bathrooms  int       `json:"bathrooms" dynamodbav:"bathrooms" validate:"gte=0"`
	Area       string    `json:"area" dynamodbav:"area"`
	Type       string    `json:"type" dynamodbav:"type"`
	Details    string    `json:"details" dynamodbav:"details"`
	OwnerName  string    `json:"owner_name" dynamodbav:"owner_name" validate:"required"`
	OwnerPhone string    `json:"owner_phone" dynamodbav:"owner_phone" validate:"required"`
	DatePosted time.Time `json:"date_posted" dynamodbav:"date_posted"`
	CreatedAt  time.Time `json:"created_at" dynamodbav:"created_at"`
}

// AdminSession is an issued admin console session.
type AdminSession struct {
	Token    string    `dynamodbav:"token"`
	Email    string    `dynamodbav:"email"`
	IssuedAt time.Time `dynamodbav:"issued_at"`
}
