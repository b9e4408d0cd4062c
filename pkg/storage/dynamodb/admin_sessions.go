package dynamodb

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/chris/contact-unlock/pkg/models"
	"github.com/chris/contact-unlock/pkg/storage"
)

// CreateSession stores an issued admin session token.
func (s *Store) CreateSession(ctx context.Context, session *models.AdminSession) error {
	item, err := attributevalue.MarshalMap(session)
	if err != nil {
		return fmt.Errorf("failed to marshal admin session: %w", err)
	}

	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(s.AdminSessionsTableName),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(#token)"),
		ExpressionAttributeNames: map[string]string{
			"#token": "token",
		},
	})
	if err != nil {
		var condCheckFailed *types.ConditionalCheckFailedException
		if errors.As(err, &condCheckFailed) {
			return fmt.Errorf("admin session token collision")
		}
		return fmt.Errorf("failed to create admin session in DynamoDB: %w", err)
	}

	return nil
}

// GetSession retrieves an admin session by token.
func (s *Store) GetSession(ctx context.Context, token string) (*models.AdminSession, error) {
	key, err := attributevalue.MarshalMap(map[string]string{"token": token})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal session token: %w", err)
	}

	result, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(s.AdminSessionsTableName),
		Key:            key,
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get admin session from DynamoDB: %w", err)
	}
	if result.Item == nil {
		return nil, storage.ErrSessionNotFound
	}

	var session models.AdminSession
	if err := attributevalue.UnmarshalMap(result.Item, &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal admin session: %w", err)
	}

	return &session, nil
}

// DeleteSession revokes an admin session. Deleting an unknown token is not an error.
func (s *Store) DeleteSession(ctx context.Context, token string) error {
	key, err := attributevalue.MarshalMap(map[string]string{"token": token})
	if err != nil {
		return fmt.Errorf("failed to marshal session token: %w", err)
	}

	_, err = s.Client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(s.AdminSessionsTableName),
		Key:       key,
	})
	if err != nil {
		return fmt.Errorf("failed to delete admin session from DynamoDB: %w", err)
	}

	return nil
}
