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
	"github.com/chris/contact-unlock/pkg/storage"
	"github.com/google/uuid"
)

// CreateAttempt writes a pending attempt and claims its (user, property) pair in a
// single transaction. The claim can be taken over only when the previous holder
// failed or was left pending past its expiry.
func (s *Store) CreateAttempt(ctx context.Context, attempt *models.PaymentAttempt, pendingTimeout time.Duration) (*models.PaymentAttempt, error) {
	now := timestamp()
	attempt.Id = uuid.New().String()
	attempt.PairKey = models.PairKey(attempt.UserId, attempt.PropertyId)
	attempt.Status = models.PENDING
	attempt.GatewayReference = nil
	attempt.FailureReason = nil
	attempt.UnlockedAt = nil
	attempt.CreatedAt = now
	attempt.UpdatedAt = now

	claim := models.EntitlementClaim{
		PairKey:    attempt.PairKey,
		UserId:     attempt.UserId,
		PropertyId: attempt.PropertyId,
		AttemptId:  attempt.Id,
		Status:     models.PENDING,
		ExpiresAt:  now.Add(pendingTimeout).Unix(),
		UpdatedAt:  now,
	}

	claimAV, err := attributevalue.MarshalMap(claim)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal entitlement claim: %w", err)
	}
	attemptAV, err := attributevalue.MarshalMap(attempt)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payment attempt: %w", err)
	}

	input := &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{
				Put: &types.Put{
					TableName:           aws.String(s.EntitlementsTableName),
					Item:                claimAV,
					ConditionExpression: aws.String("attribute_not_exists(pair_key) OR #status = :failed OR (#status = :pending AND expires_at < :now)"),
					ExpressionAttributeNames: map[string]string{
						"#status": "status",
					},
					ExpressionAttributeValues: map[string]types.AttributeValue{
						":failed":  &types.AttributeValueMemberS{Value: string(models.FAILED)},
						":pending": &types.AttributeValueMemberS{Value: string(models.PENDING)},
						":now":     &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", now.Unix())},
					},
				},
			},
			{
				Put: &types.Put{
					TableName:           aws.String(s.AttemptsTableName),
					Item:                attemptAV,
					ConditionExpression: aws.String("attribute_not_exists(id)"),
				},
			},
		},
	}

	if _, err := s.Client.TransactWriteItems(ctx, input); err != nil {
		if canceledByCondition(err, 0) {
			return nil, storage.ErrPairClaimed
		}
		return nil, fmt.Errorf("failed to create payment attempt in DynamoDB: %w", err)
	}

	return attempt, nil
}
