package gateway

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/chris/contact-unlock/pkg/models"
	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/webhook"
)

// ErrIgnoredEvent is returned for webhook events that carry no attempt outcome.
var ErrIgnoredEvent = errors.New("webhook event ignored")

// Report is an attempt outcome delivered by the gateway.
type Report struct {
	AttemptID        string
	GatewayReference string
	Outcome          models.Outcome
}

// ParseStripeWebhook verifies the Stripe-Signature header and extracts the outcome
// of a Checkout session. Events that do not settle a session return ErrIgnoredEvent.
func ParseStripeWebhook(payload []byte, signature, secret string) (Report, error) {
	event, err := webhook.ConstructEventWithOptions(payload, signature, secret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
	if err != nil {
		return Report{}, fmt.Errorf("webhook signature verification failed: %w", err)
	}

	var outcome models.Outcome
	switch event.Type {
	case stripe.EventTypeCheckoutSessionCompleted, stripe.EventTypeCheckoutSessionAsyncPaymentSucceeded:
		outcome = models.OutcomeCompleted
	case stripe.EventTypeCheckoutSessionExpired, stripe.EventTypeCheckoutSessionAsyncPaymentFailed:
		outcome = models.OutcomeFailed
	default:
		return Report{}, ErrIgnoredEvent
	}

	var session stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
		return Report{}, fmt.Errorf("failed to parse checkout session: %w", err)
	}
	if session.ClientReferenceID == "" {
		return Report{}, ErrIgnoredEvent
	}

	// A completed session with a delayed payment method settles later through
	// the async_payment events.
	if event.Type == stripe.EventTypeCheckoutSessionCompleted && session.PaymentStatus == stripe.CheckoutSessionPaymentStatusUnpaid {
		return Report{}, ErrIgnoredEvent
	}

	return Report{AttemptID: session.ClientReferenceID, GatewayReference: session.ID, Outcome: outcome}, nil
}
