package dynamodb

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/chris/contact-unlock/pkg/models"
	"github.com/chris/contact-unlock/pkg/storage"
)

// GetAttempt retrieves a single payment attempt by its ID.
// Reads are strongly consistent so a finalize racing a read sees the latest status.
func (s *Store) GetAttempt(ctx context.Context, attemptID string) (*models.PaymentAttempt, error) {
	key, err := attributevalue.MarshalMap(map[string]string{"id": attemptID})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal attempt ID: %w", err)
	}

	result, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(s.AttemptsTableName),
		Key:            key,
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get payment attempt from DynamoDB: %w", err)
	}

	if result.Item == nil {
		return nil, storage.ErrAttemptNotFound
	}

	var attempt models.PaymentAttempt
	if err := attributevalue.UnmarshalMap(result.Item, &attempt); err != nil {
		return nil, fmt.Errorf("failed to unmarshal payment attempt: %w", err)
	}

	return &attempt, nil
}
