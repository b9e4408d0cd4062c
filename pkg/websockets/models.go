package websockets

import "github.com/chris/contact-unlock/pkg/models"

// MessageType defines the type of a WebSocket message.
type MessageType string

const (
	// MessageTypeEntitlementUpdate tells a client to re-resolve contact data for a property.
	MessageTypeEntitlementUpdate MessageType = "entitlementUpdate"
)

// Message represents a generic WebSocket message.
type Message struct {
	Type    MessageType `json:"type"`
	Payload interface{} `json:"payload"`
}

// EntitlementUpdatePayload is the payload for an entitlementUpdate message.
// It carries no contact data; clients fetch the property again to see it.
type EntitlementUpdatePayload struct {
	PropertyID string               `json:"property_id"`
	AttemptID  string               `json:"attempt_id"`
	Status     models.AttemptStatus `json:"status"`
}

// NewEntitlementUpdate builds the message sent when an attempt reaches a terminal state.
func NewEntitlementUpdate(attempt *models.PaymentAttempt) Message {
	return Message{
		Type: MessageTypeEntitlementUpdate,
		Payload: EntitlementUpdatePayload{
			PropertyID: attempt.PropertyId,
			AttemptID:  attempt.Id,
			Status:     attempt.Status,
		},
	}
}
