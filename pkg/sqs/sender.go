package sqs

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/aws/aws-sdk-go-v2/service/sqs"
)

// SQSClient defines the SQS operations used by the sender and the worker
type SQSClient interface {
	GetQueueUrl(ctx context.Context, params *sqs.GetQueueUrlInput, optFns ...func(*sqs.Options)) (*sqs.GetQueueUrlOutput, error)
	SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error)
	ReceiveMessage(ctx context.Context, params *sqs.ReceiveMessageInput, optFns ...func(*sqs.Options)) (*sqs.ReceiveMessageOutput, error)
	DeleteMessage(ctx context.Context, params *sqs.DeleteMessageInput, optFns ...func(*sqs.Options)) (*sqs.DeleteMessageOutput, error)
}

// Sender handles sending messages to SQS queues
type Sender struct {
	sqsClient SQSClient
	queueURLs sync.Map
}

// NewSender creates and returns a new Sender
func NewSender(sqsClient SQSClient) *Sender {
	return &Sender{
		sqsClient: sqsClient,
	}
}

// SendMessage serializes the provided body to JSON and sends it to the specified queue
func (s *Sender) SendMessage(ctx context.Context, queueName string, body any) error {
	queueURL, err := s.getQueueURL(ctx, queueName)
	if err != nil {
		return fmt.Errorf("failed to get queue URL for %s: %w", queueName, err)
	}

	jsonBody, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to serialize message body to JSON: %w", err)
	}

	messageBody := string(jsonBody)
	_, err = s.sqsClient.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:    &queueURL,
		MessageBody: &messageBody,
	})
	if err != nil {
		return fmt.Errorf("failed to send message to queue %s: %w", queueName, err)
	}

	return nil
}

// getQueueURL resolves and memoizes the URL for the specified queue name
func (s *Sender) getQueueURL(ctx context.Context, queueName string) (string, error) {
	if cached, ok := s.queueURLs.Load(queueName); ok {
		return cached.(string), nil
	}

	queueURL, err := lookupQueueURL(ctx, s.sqsClient, queueName)
	if err != nil {
		return "", err
	}

	s.queueURLs.Store(queueName, queueURL)
	return queueURL, nil
}

func lookupQueueURL(ctx context.Context, client SQSClient, queueName string) (string, error) {
	result, err := client.GetQueueUrl(ctx, &sqs.GetQueueUrlInput{
		QueueName: &queueName,
	})
	if err != nil {
		return "", err
	}
	if result.QueueUrl == nil {
		return "", fmt.Errorf("queue URL is nil for queue %s", queueName)
	}
	return *result.QueueUrl, nil
}
