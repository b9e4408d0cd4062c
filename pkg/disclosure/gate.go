package disclosure

import (
	"context"
	"strings"
	"unicode"

	"github.com/chris/contact-unlock/pkg/entitlement"
	"github.com/chris/contact-unlock/pkg/identity"
	"github.com/chris/contact-unlock/pkg/models"
)

// Contact is the contact block shown for a property. Phone holds either the real
// number or a redacted placeholder of the same shape; only Locked tells them apart.
type Contact struct {
	OwnerName string `json:"owner_name"`
	Phone     string `json:"phone"`
	Locked    bool   `json:"locked"`
}

// Resolver decides entitlement for a (user, property) pair.
type Resolver interface {
	Resolve(ctx context.Context, user *identity.User, propertyID string) (entitlement.Decision, error)
}

// Gate returns real or redacted contact data depending on entitlement.
// Decisions are resolved on every call and never cached.
type Gate struct {
	resolver Resolver
}

// NewGate creates a Gate.
func NewGate(resolver Resolver) *Gate {
	return &Gate{resolver: resolver}
}

// GetDisplayContact resolves the caller's entitlement and builds the contact block.
// A resolver failure is returned as an error, never as a locked contact.
func (g *Gate) GetDisplayContact(ctx context.Context, user *identity.User, property *models.Property) (Contact, error) {
	decision, err := g.resolver.Resolve(ctx, user, property.Id)
	if err != nil {
		return Contact{}, err
	}

	if decision == entitlement.Unlocked {
		return Contact{OwnerName: property.OwnerName, Phone: property.OwnerPhone}, nil
	}
	return LockedContact(property), nil
}

// LockedContact builds the redacted contact block without consulting entitlement.
// Used by listings, which never disclose contact data.
func LockedContact(property *models.Property) Contact {
	return Contact{OwnerName: property.OwnerName, Phone: Redact(property.OwnerPhone), Locked: true}
}

// Redact masks every digit of a phone number, keeping its separators so the
// placeholder has the same shape as the real value.
func Redact(phone string) string {
	var b strings.Builder
	b.Grow(len(phone))
	for _, r := range phone {
		if unicode.IsDigit(r) {
			b.WriteByte('X')
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
