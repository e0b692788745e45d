package aws

import (
	"context"

	"go-weather/internal/domain/gateway/queue"
	"go-weather/pkg/sqs"
)

// SQSSenderAdapter adapts pkg/sqs.Sender to the domain queue.Sender interface
type SQSSenderAdapter struct {
	sqsSender *sqs.Sender
}

// NewSQSSenderAdapter creates a new SQS sender adapter that implements the domain interface
func NewSQSSenderAdapter(sqsClient sqs.SQSClient) queue.Sender {
	return &SQSSenderAdapter{
		sqsSender: sqs.NewSender(sqsClient),
	}
}

// SendMessage implements the domain interface
func (adapter *SQSSenderAdapter) SendMessage(ctx context.Context, queueName string, body any) error {
	return adapter.sqsSender.SendMessage(ctx, queueName, body)
}
