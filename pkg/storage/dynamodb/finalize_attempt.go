package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/chris/contact-unlock/pkg/models"
	"github.com/chris/contact-unlock/pkg/storage"
)

// CompleteAttempt moves a pending attempt to completed and marks its pair claim as
// completed in one transaction. The claim update refuses to overwrite a claim that is
// already completed, which keeps a pair to a single completed attempt.
func (s *Store) CompleteAttempt(ctx context.Context, attemptID string, gatewayReference *string, at time.Time) error {
	attempt, err := s.GetAttempt(ctx, attemptID)
	if err != nil {
		return fmt.Errorf("failed to get attempt for completion: %w", err)
	}
	if attempt.Status != models.PENDING {
		return storage.ErrAttemptNotPending
	}

	atAV, err := attributevalue.Marshal(at.UTC().Truncate(time.Second))
	if err != nil {
		return fmt.Errorf("failed to marshal completion time: %w", err)
	}

	attemptUpdate := "SET #status = :completed, unlocked_at = :at, updated_at = :at"
	attemptValues := map[string]types.AttributeValue{
		":completed": &types.AttributeValueMemberS{Value: string(models.COMPLETED)},
		":pending":   &types.AttributeValueMemberS{Value: string(models.PENDING)},
		":at":        atAV,
	}
	if gatewayReference != nil {
		attemptUpdate += ", gateway_reference = :ref"
		attemptValues[":ref"] = &types.AttributeValueMemberS{Value: *gatewayReference}
	}

	input := &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{
				Update: &types.Update{
					TableName:                 aws.String(s.AttemptsTableName),
					Key:                       map[string]types.AttributeValue{"id": &types.AttributeValueMemberS{Value: attemptID}},
					UpdateExpression:          aws.String(attemptUpdate),
					ConditionExpression:       aws.String("#status = :pending"),
					ExpressionAttributeNames:  map[string]string{"#status": "status"},
					ExpressionAttributeValues: attemptValues,
				},
			},
			{
				Update: &types.Update{
					TableName:           aws.String(s.EntitlementsTableName),
					Key:                 map[string]types.AttributeValue{"pair_key": &types.AttributeValueMemberS{Value: attempt.PairKey}},
					UpdateExpression:    aws.String("SET #status = :completed, attempt_id = :attempt_id, user_id = :user_id, property_id = :property_id, updated_at = :at"),
					ConditionExpression: aws.String("attribute_not_exists(pair_key) OR #status <> :completed"),
					ExpressionAttributeNames: map[string]string{
						"#status": "status",
					},
					ExpressionAttributeValues: map[string]types.AttributeValue{
						":completed":   &types.AttributeValueMemberS{Value: string(models.COMPLETED)},
						":attempt_id":  &types.AttributeValueMemberS{Value: attemptID},
						":user_id":     &types.AttributeValueMemberS{Value: attempt.UserId},
						":property_id": &types.AttributeValueMemberS{Value: attempt.PropertyId},
						":at":          atAV,
					},
				},
			},
		},
	}

	if _, err := s.Client.TransactWriteItems(ctx, input); err != nil {
		switch {
		case canceledByCondition(err, 0):
			return storage.ErrAttemptNotPending
		case canceledByCondition(err, 1):
			return storage.ErrEntitlementExists
		}
		return fmt.Errorf("failed to execute completion transaction: %w", err)
	}

	return nil
}

// FailAttempt moves a pending attempt to failed and releases its pair claim in one
// transaction so the user can try again. The release only touches a claim this
// attempt still holds; when a newer attempt has taken the claim over, the row is
// failed on its own.
func (s *Store) FailAttempt(ctx context.Context, attemptID string, gatewayReference *string, reason string) error {
	attempt, err := s.GetAttempt(ctx, attemptID)
	if err != nil {
		return fmt.Errorf("failed to get attempt for failure: %w", err)
	}
	if attempt.Status != models.PENDING {
		return storage.ErrAttemptNotPending
	}

	nowAV, err := attributevalue.Marshal(timestamp())
	if err != nil {
		return fmt.Errorf("failed to marshal failure time: %w", err)
	}

	attemptUpdate := "SET #status = :failed, failure_reason = :reason, updated_at = :now"
	attemptValues := map[string]types.AttributeValue{
		":failed":  &types.AttributeValueMemberS{Value: string(models.FAILED)},
		":pending": &types.AttributeValueMemberS{Value: string(models.PENDING)},
		":reason":  &types.AttributeValueMemberS{Value: reason},
		":now":     nowAV,
	}
	if gatewayReference != nil {
		attemptUpdate += ", gateway_reference = :ref"
		attemptValues[":ref"] = &types.AttributeValueMemberS{Value: *gatewayReference}
	}
	failRow := types.Update{
		TableName:                 aws.String(s.AttemptsTableName),
		Key:                       map[string]types.AttributeValue{"id": &types.AttributeValueMemberS{Value: attemptID}},
		UpdateExpression:          aws.String(attemptUpdate),
		ConditionExpression:       aws.String("#status = :pending"),
		ExpressionAttributeNames:  map[string]string{"#status": "status"},
		ExpressionAttributeValues: attemptValues,
	}

	input := &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{Update: &failRow},
			{
				Update: &types.Update{
					TableName:           aws.String(s.EntitlementsTableName),
					Key:                 map[string]types.AttributeValue{"pair_key": &types.AttributeValueMemberS{Value: attempt.PairKey}},
					UpdateExpression:    aws.String("SET #status = :failed, updated_at = :now"),
					ConditionExpression: aws.String("attempt_id = :attempt_id AND #status = :pending"),
					ExpressionAttributeNames: map[string]string{
						"#status": "status",
					},
					ExpressionAttributeValues: map[string]types.AttributeValue{
						":failed":     &types.AttributeValueMemberS{Value: string(models.FAILED)},
						":pending":    &types.AttributeValueMemberS{Value: string(models.PENDING)},
						":attempt_id": &types.AttributeValueMemberS{Value: attemptID},
						":now":        nowAV,
					},
				},
			},
		},
	}

	_, err = s.Client.TransactWriteItems(ctx, input)
	switch {
	case err == nil:
		return nil
	case canceledByCondition(err, 0):
		return storage.ErrAttemptNotPending
	case canceledByCondition(err, 1):
		// Claim already moved on to a newer attempt.
		return s.failRowOnly(ctx, failRow)
	}
	return fmt.Errorf("failed to execute failure transaction: %w", err)
}

func (s *Store) failRowOnly(ctx context.Context, update types.Update) error {
	_, err := s.Client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 update.TableName,
		Key:                       update.Key,
		UpdateExpression:          update.UpdateExpression,
		ConditionExpression:       update.ConditionExpression,
		ExpressionAttributeNames:  update.ExpressionAttributeNames,
		ExpressionAttributeValues: update.ExpressionAttributeValues,
	})
	if err != nil {
		var condCheckFailed *types.ConditionalCheckFailedException
		if errors.As(err, &condCheckFailed) {
			return storage.ErrAttemptNotPending
		}
		return fmt.Errorf("failed to mark attempt as failed: %w", err)
	}
	return nil
}
