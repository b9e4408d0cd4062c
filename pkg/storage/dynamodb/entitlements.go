package dynamodb

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/chris/contact-unlock/pkg/models"
	"github.com/chris/contact-unlock/pkg/storage"
)

// FindCompletedAttempt looks up the pair claim and returns the attempt behind it when
// the claim is completed.
func (s *Store) FindCompletedAttempt(ctx context.Context, userID, propertyID string) (*models.PaymentAttempt, error) {
	key, err := attributevalue.MarshalMap(map[string]string{"pair_key": models.PairKey(userID, propertyID)})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal pair key: %w", err)
	}

	result, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(s.EntitlementsTableName),
		Key:            key,
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get entitlement claim from DynamoDB: %w", err)
	}
	if result.Item == nil {
		return nil, storage.ErrAttemptNotFound
	}

	var claim models.EntitlementClaim
	if err := attributevalue.UnmarshalMap(result.Item, &claim); err != nil {
		return nil, fmt.Errorf("failed to unmarshal entitlement claim: %w", err)
	}
	if claim.Status != models.COMPLETED {
		return nil, storage.ErrAttemptNotFound
	}

	attempt, err := s.GetAttempt(ctx, claim.AttemptId)
	if err != nil {
		if errors.Is(err, storage.ErrAttemptNotFound) {
			return nil, fmt.Errorf("entitlement claim %s points at missing attempt %s", claim.PairKey, claim.AttemptId)
		}
		return nil, err
	}
	if attempt.Status != models.COMPLETED {
		return nil, storage.ErrAttemptNotFound
	}

	return attempt, nil
}
