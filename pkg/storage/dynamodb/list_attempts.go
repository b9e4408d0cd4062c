package dynamodb

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/chris/contact-unlock/pkg/models"
)

// ListAttemptsByUser retrieves a user's attempts, newest first.
func (s *Store) ListAttemptsByUser(ctx context.Context, userID string) ([]models.PaymentAttempt, error) {
	return s.queryAttempts(ctx, "user_id-index", "user_id", userID)
}

// ListAttemptsByProperty retrieves the attempts made against a property, newest first.
func (s *Store) ListAttemptsByProperty(ctx context.Context, propertyID string) ([]models.PaymentAttempt, error) {
	return s.queryAttempts(ctx, "property_id-index", "property_id", propertyID)
}

func (s *Store) queryAttempts(ctx context.Context, index, attr, value string) ([]models.PaymentAttempt, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.AttemptsTableName),
		IndexName:              aws.String(index),
		KeyConditionExpression: aws.String("#attr = :value"),
		ExpressionAttributeNames: map[string]string{
			"#attr": attr,
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":value": &types.AttributeValueMemberS{Value: value},
		},
		ScanIndexForward: aws.Bool(false),
	}

	attempts, err := s.collectAttempts(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to query attempts by %s: %w", attr, err)
	}

	return attempts, nil
}

// GetAbandonedAttempts retrieves attempts that have been pending for longer than maxAge.
func (s *Store) GetAbandonedAttempts(ctx context.Context, maxAge time.Duration) ([]models.PaymentAttempt, error) {
	cutoffAV, err := attributevalue.Marshal(timestamp().Add(-maxAge))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal cutoff time: %w", err)
	}

	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.AttemptsTableName),
		IndexName:              aws.String("status-created_at-index"),
		KeyConditionExpression: aws.String("#status = :status AND created_at < :cutoff"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":status": &types.AttributeValueMemberS{Value: string(models.PENDING)},
			":cutoff": cutoffAV,
		},
	}

	attempts, err := s.collectAttempts(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to query for abandoned attempts: %w", err)
	}

	return attempts, nil
}

// collectAttempts runs a query to exhaustion, following LastEvaluatedKey.
func (s *Store) collectAttempts(ctx context.Context, input *dynamodb.QueryInput) ([]models.PaymentAttempt, error) {
	var attempts []models.PaymentAttempt
	for {
		out, err := s.Client.Query(ctx, input)
		if err != nil {
			return nil, err
		}

		var page []models.PaymentAttempt
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			return nil, fmt.Errorf("failed to unmarshal attempts: %w", err)
		}
		attempts = append(attempts, page...)

		if len(out.LastEvaluatedKey) == 0 {
			return attempts, nil
		}
		input.ExclusiveStartKey = out.LastEvaluatedKey
	}
}
