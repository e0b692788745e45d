package queue

import "context"

// Sender publishes a JSON-serializable body to a named queue
type Sender interface {
	SendMessage(ctx context.Context, queueName string, body any) error
}
