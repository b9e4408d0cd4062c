package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/chris/contact-unlock/pkg/models"
	"github.com/chris/contact-unlock/pkg/storage"
	"github.com/google/uuid"
)

// GetProperty retrieves a single listing by ID.
func (s *Store) GetProperty(ctx context.Context, propertyID string) (*models.Property, error) {
	key, err := attributevalue.MarshalMap(map[string]string{"id": propertyID})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal property ID: %w", err)
	}

	result, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.PropertiesTableName),
		Key:       key,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get property from DynamoDB: %w", err)
	}
	if result.Item == nil {
		return nil, storage.ErrPropertyNotFound
	}

	var property models.Property
	if err := attributevalue.UnmarshalMap(result.Item, &property); err != nil {
		return nil, fmt.Errorf("failed to unmarshal property: %w", err)
	}

	return &property, nil
}

// ListProperties scans the catalog and returns it newest first.
func (s *Store) ListProperties(ctx context.Context) ([]models.Property, error) {
	input := &dynamodb.ScanInput{
		TableName: aws.String(s.PropertiesTableName),
	}

	var properties []models.Property
	for {
		out, err := s.Client.Scan(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("failed to scan properties table: %w", err)
		}

		var page []models.Property
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			return nil, fmt.Errorf("failed to unmarshal properties: %w", err)
		}
		properties = append(properties, page...)

		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		input.ExclusiveStartKey = out.LastEvaluatedKey
	}

	sort.SliceStable(properties, func(i, j int) bool {
		return properties[i].CreatedAt.After(properties[j].CreatedAt)
	})

	return properties, nil
}

// CreateProperty stores a new listing. The ID and creation time are assigned here.
func (s *Store) CreateProperty(ctx context.Context, property *models.Property) (*models.Property, error) {
	property.Id = uuid.New().String()
	property.CreatedAt = timestamp()
	if property.DatePosted.IsZero() {
		property.DatePosted = property.CreatedAt
	}

	item, err := attributevalue.MarshalMap(property)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal property: %w", err)
	}

	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(s.PropertiesTableName),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(id)"),
	})
	if err != nil {
		var condCheckFailed *types.ConditionalCheckFailedException
		if errors.As(err, &condCheckFailed) {
			return nil, fmt.Errorf("property with ID %s already exists", property.Id)
		}
		return nil, fmt.Errorf("failed to create property in DynamoDB: %w", err)
	}

	return property, nil
}
