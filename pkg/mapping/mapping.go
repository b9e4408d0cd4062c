package mapping

import (
	"github.com/chris/contact-unlock/pkg/api"
	"github.com/chris/contact-unlock/pkg/disclosure"
	"github.com/chris/contact-unlock/pkg/models"
)

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func orEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func orZero(i *int) int {
	if i == nil {
		return 0
	}
	return *i
}

// ToApiContact converts a disclosure contact block to the API model.
func ToApiContact(contact disclosure.Contact) api.Contact {
	return api.Contact{
		OwnerName: contact.OwnerName,
		Phone:     contact.Phone,
		Locked:    contact.Locked,
	}
}

// ToApiProperty converts a domain Property to the API model. The owner phone is
// never copied from the property; the caller supplies the contact block it is
// entitled to.
func ToApiProperty(property *models.Property, contact disclosure.Contact) *api.Property {
	return &api.Property{
		Id:         property.Id,
		Name:       property.Name,
		Price:      property.Price,
		Location:   property.Location,
		Image:      optional(property.Image),
		Bedrooms:   property.Bedrooms,
		Bathrooms:  property.Bathrooms,
		Area:       optional(property.Area),
		Type:       optional(property.Type),
		Details:    optional(property.Details),
		DatePosted: property.DatePosted,
		Contact:    ToApiContact(contact),
	}
}

// ToDomainNewProperty converts an API NewProperty to a domain Property.
// ID and timestamps are assigned by the store.
func ToDomainNewProperty(newProperty *api.NewProperty) *models.Property {
	return &models.Property{
		Name:       newProperty.Name,
		Price:      newProperty.Price,
		Location:   newProperty.Location,
		Image:      orEmpty(newProperty.Image),
		Bedrooms:   orZero(newProperty.Bedrooms),
		Bathrooms:  orZero(newProperty.Bathrooms),
		Area:       orEmpty(newProperty.Area),
		Type:       orEmpty(newProperty.Type),
		Details:    orEmpty(newProperty.Details),
		OwnerName:  newProperty.OwnerName,
		OwnerPhone: newProperty.OwnerPhone,
	}
}

// ToApiPaymentAttempt converts a domain PaymentAttempt to the API model.
func ToApiPaymentAttempt(attempt *models.PaymentAttempt) *api.PaymentAttempt {
	return &api.PaymentAttempt{
		Id:               attempt.Id,
		PropertyId:       attempt.PropertyId,
		AmountMinorUnits: attempt.AmountMinorUnits,
		Currency:         attempt.Currency,
		Status:           api.PaymentStatus(attempt.Status),
		GatewayReference: attempt.GatewayReference,
		FailureReason:    attempt.FailureReason,
		CreatedAt:        attempt.CreatedAt,
		UpdatedAt:        attempt.UpdatedAt,
		UnlockedAt:       attempt.UnlockedAt,
	}
}

// ToApiPaymentAttempts converts a slice of attempts, keeping order.
func ToApiPaymentAttempts(attempts []models.PaymentAttempt) []*api.PaymentAttempt {
	out := make([]*api.PaymentAttempt, len(attempts))
	for i := range attempts {
		out[i] = ToApiPaymentAttempt(&attempts[i])
	}
	return out
}

// ToApiAdminSession converts a domain AdminSession to the API model.
func ToApiAdminSession(session *models.AdminSession) *api.AdminSession {
	return &api.AdminSession{
		Token:    session.Token,
		Email:    session.Email,
		IssuedAt: session.IssuedAt,
	}
}
