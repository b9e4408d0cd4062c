package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/chris/contact-unlock/pkg/models"
	"github.com/chris/contact-unlock/pkg/storage"
	"github.com/google/uuid"
)

const propertyColumns = "id, name, price, location, image, bedrooms, bathrooms, area, type, details, owner_name, owner_phone, date_posted, created_at"

func scanProperty(row rowScanner) (*models.Property, error) {
	var p models.Property
	err := row.Scan(&p.Id, &p.Name, &p.Price, &p.Location, &p.Image, &p.Bedrooms, &p.Bathrooms,
		&p.Area, &p.Type, &p.Details, &p.OwnerName, &p.OwnerPhone, &p.DatePosted, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	p.DatePosted = p.DatePosted.UTC()
	p.CreatedAt = p.CreatedAt.UTC()
	return &p, nil
}

// GetProperty retrieves a listing by ID.
func (s *Store) GetProperty(ctx context.Context, propertyID string) (*models.Property, error) {
	row := s.DB.QueryRowContext(ctx, "SELECT "+propertyColumns+" FROM properties WHERE id = $1", propertyID)
	property, err := scanProperty(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrPropertyNotFound
		}
		return nil, fmt.Errorf("failed to get property: %w", err)
	}
	return property, nil
}

// ListProperties returns every listing, newest first.
func (s *Store) ListProperties(ctx context.Context) ([]models.Property, error) {
	rows, err := s.DB.QueryContext(ctx, "SELECT "+propertyColumns+" FROM properties ORDER BY created_at DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to list properties: %w", err)
	}
	defer rows.Close()

	var properties []models.Property
	for rows.Next() {
		property, err := scanProperty(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan property: %w", err)
		}
		properties = append(properties, *property)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate properties: %w", err)
	}
	return properties, nil
}

// CreateProperty stores a new listing. DatePosted defaults to the creation time.
func (s *Store) CreateProperty(ctx context.Context, property *models.Property) (*models.Property, error) {
	property.Id = uuid.New().String()
	property.CreatedAt = timestamp()
	if property.DatePosted.IsZero() {
		property.DatePosted = property.CreatedAt
	}

	_, err := s.DB.ExecContext(ctx,
		`INSERT INTO properties (`+propertyColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		property.Id, property.Name, property.Price, property.Location, property.Image, property.Bedrooms, property.Bathrooms,
		property.Area, property.Type, property.Details, property.OwnerName, property.OwnerPhone, property.DatePosted, property.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert property: %w", err)
	}
	return property, nil
}
