package scheduler

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
)

// maxSQSDelay is the largest DelaySeconds SQS accepts.
const maxSQSDelay = 15 * time.Minute

// SQSAPI is the subset of the SQS client used by the SQSScheduler.
type SQSAPI interface {
	SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error)
}

// SQSScheduler implements the Scheduler interface using AWS SQS message timers.
type SQSScheduler struct {
	Client   SQSAPI
	QueueURL string
}

// NewSQSScheduler creates a new SQSScheduler.
func NewSQSScheduler(client SQSAPI, queueURL string) *SQSScheduler {
	return &SQSScheduler{
		Client:   client,
		QueueURL: queueURL,
	}
}

// Make sure we conform to the interface
var _ Scheduler = (*SQSScheduler)(nil)

// ScheduleCompletion sends a completion message that becomes visible after delay.
func (s *SQSScheduler) ScheduleCompletion(ctx context.Context, attemptID string, delay time.Duration) error {
	if delay > maxSQSDelay {
		return fmt.Errorf("completion delay %s exceeds the SQS maximum of %s", delay, maxSQSDelay)
	}

	body, err := json.Marshal(CompletionMessage{AttemptID: attemptID})
	if err != nil {
		return fmt.Errorf("failed to marshal completion message for SQS: %w", err)
	}

	_, err = s.Client.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:     aws.String(s.QueueURL),
		MessageBody:  aws.String(string(body)),
		DelaySeconds: int32(delay / time.Second),
	})
	if err != nil {
		return fmt.Errorf("failed to send message to SQS: %w", err)
	}

	return nil
}
