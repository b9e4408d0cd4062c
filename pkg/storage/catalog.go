package storage

import (
	"context"

	"github.com/chris/contact-unlock/pkg/models"
)

// CatalogStore defines the interface for property listings.
type CatalogStore interface {
	// GetProperty retrieves a property by ID. Returns ErrPropertyNotFound if absent.
	GetProperty(ctx context.Context, propertyID string) (*models.Property, error)

	// ListProperties retrieves all properties, newest first.
	ListProperties(ctx context.Context) ([]models.Property, error)

	// CreateProperty stores a new listing.
	CreateProperty(ctx context.Context, property *models.Property) (*models.Property, error)
}
