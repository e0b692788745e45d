package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"

	"go-weather/internal/domain/gateway/queue"
	"go-weather/pkg/log"
)

// Config holds the broker list used by the resolution events producer
type Config struct {
	Brokers []string
	Timeout time.Duration
}

// NewSyncProducer creates a producer that waits for every in-sync replica to ack
func NewSyncProducer(config Config) (sarama.SyncProducer, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Producer.Return.Successes = true
	saramaConfig.Producer.RequiredAcks = sarama.WaitForAll
	if config.Timeout > 0 {
		saramaConfig.Producer.Timeout = config.Timeout
	}

	producer, err := sarama.NewSyncProducer(config.Brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to kafka brokers %v: %w", config.Brokers, err)
	}
	return producer, nil
}

// ProducerSender publishes JSON bodies to the topic named by queueName
type ProducerSender struct {
	producer sarama.SyncProducer
}

var _ queue.Sender = (*ProducerSender)(nil)

// NewProducerSender adapts a sarama producer to queue.Sender
func NewProducerSender(producer sarama.SyncProducer) *ProducerSender {
	return &ProducerSender{producer: producer}
}

func (s *ProducerSender) SendMessage(ctx context.Context, queueName string, body any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal message body: %w", err)
	}

	partition, offset, err := s.producer.SendMessage(&sarama.ProducerMessage{
		Topic: queueName,
		Value: sarama.ByteEncoder(payload),
	})
	if err != nil {
		return fmt.Errorf("failed to send message to topic %s: %w", queueName, err)
	}

	log.Debugw("Message sent to kafka", "topic", queueName, "partition", partition, "offset", offset)
	return nil
}

// Close releases the underlying producer
func (s *ProducerSender) Close() error {
	return s.producer.Close()
}
