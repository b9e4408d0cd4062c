package gateway

import (
	"context"

	"github.com/chris/contact-unlock/pkg/models"
)

// Handoff is what the caller needs to continue a payment after an attempt is created.
type Handoff struct {
	// RedirectURL is where the user completes payment. Empty for simulated completion.
	RedirectURL string
	// SessionID identifies the gateway session, when there is one.
	SessionID string
}

// CompletionSource starts the money movement for a pending attempt. The attempt
// stays pending until the outcome comes back through the payment workflow.
type CompletionSource interface {
	Begin(ctx context.Context, attempt *models.PaymentAttempt) (Handoff, error)
}
