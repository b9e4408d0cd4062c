package properties

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/chris/contact-unlock/pkg/api"
	"github.com/chris/contact-unlock/pkg/disclosure"
	"github.com/chris/contact-unlock/pkg/entitlement"
	"github.com/chris/contact-unlock/pkg/identity"
	"github.com/chris/contact-unlock/pkg/mapping"
	"github.com/chris/contact-unlock/pkg/storage"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Resolver decides entitlement for a (user, property) pair.
type Resolver interface {
	Resolve(ctx context.Context, user *identity.User, propertyID string) (entitlement.Decision, error)
}

// PropertiesHandler serves the property catalog with gated contact data.
type PropertiesHandler struct {
	Catalog  storage.CatalogStore
	Gate     *disclosure.Gate
	Resolver Resolver
	validate *validator.Validate
	logger   *zap.Logger
}

// NewPropertiesHandler creates a new PropertiesHandler.
func NewPropertiesHandler(catalog storage.CatalogStore, resolver Resolver, logger *zap.Logger) *PropertiesHandler {
	return &PropertiesHandler{
		Catalog:  catalog,
		Gate:     disclosure.NewGate(resolver),
		Resolver: resolver,
		validate: validator.New(),
		logger:   logger,
	}
}

// ListProperties returns every listing with its contact redacted.
func (h *PropertiesHandler) ListProperties(w http.ResponseWriter, r *http.Request) {
	domainProperties, err := h.Catalog.ListProperties(r.Context())
	if err != nil {
		h.logger.Error("failed to list properties", zap.Error(err))
		http.Error(w, "Failed to retrieve properties", http.StatusInternalServerError)
		return
	}

	apiProperties := make([]*api.Property, len(domainProperties))
	for i := range domainProperties {
		p := &domainProperties[i]
		apiProperties[i] = mapping.ToApiProperty(p, disclosure.LockedContact(p))
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(apiProperties); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

// GetProperty returns one listing with the contact block the caller may see.
func (h *PropertiesHandler) GetProperty(w http.ResponseWriter, r *http.Request, propertyId api.PropertyId) {
	property, err := h.Catalog.GetProperty(r.Context(), propertyId)
	if err != nil {
		if errors.Is(err, storage.ErrPropertyNotFound) {
			http.Error(w, "Property not found", http.StatusNotFound)
			return
		}
		h.logger.Error("failed to get property", zap.String("property_id", propertyId), zap.Error(err))
		http.Error(w, "Failed to retrieve property", http.StatusInternalServerError)
		return
	}

	contact, err := h.Gate.GetDisplayContact(r.Context(), identity.UserFromContext(r.Context()), property)
	if err != nil {
		http.Error(w, "Entitlement unavailable", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(mapping.ToApiProperty(property, contact)); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

// GetEntitlement reports the caller's decision for a property. Anonymous callers
// are always locked.
func (h *PropertiesHandler) GetEntitlement(w http.ResponseWriter, r *http.Request, propertyId api.PropertyId) {
	decision, err := h.Resolver.Resolve(r.Context(), identity.UserFromContext(r.Context()), propertyId)
	if err != nil {
		http.Error(w, "Entitlement unavailable", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	resp := api.Entitlement{PropertyId: propertyId, Decision: api.EntitlementDecision(decision)}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

// CreateProperty adds a listing. Admin only.
func (h *PropertiesHandler) CreateProperty(w http.ResponseWriter, r *http.Request) {
	var newProperty api.NewProperty
	if err := json.NewDecoder(r.Body).Decode(&newProperty); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	domainProperty := mapping.ToDomainNewProperty(&newProperty)
	if err := h.validate.Struct(domainProperty); err != nil {
		http.Error(w, fmt.Sprintf("Invalid property: %v", err), http.StatusBadRequest)
		return
	}

	created, err := h.Catalog.CreateProperty(r.Context(), domainProperty)
	if err != nil {
		h.logger.Error("failed to create property", zap.Error(err))
		http.Error(w, "Failed to create property", http.StatusInternalServerError)
		return
	}
	h.logger.Info("property created", zap.String("property_id", created.Id))

	// The owner phone is shown unredacted to the admin who created the listing.
	contact := disclosure.Contact{OwnerName: created.OwnerName, Phone: created.OwnerPhone}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(mapping.ToApiProperty(created, contact)); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}
