package producers

import (
	"context"

	"github.com/segmentio/kafka-go"
)

// MessagePublisher publishes ledger events to the events topic
type MessagePublisher interface {
	Publish(ctx context.Context, key string, value interface{}, headers ...kafka.Header) error
	Close() error
}

// DeadLetterPublisher parks messages the worker could not handle
type DeadLetterPublisher interface {
	PublishToDLQ(ctx context.Context, key string, originalMessageValue []byte, reason string) error
	Close() error
}

// KafkaWriter is the subset of *kafka.Writer the producers use
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}
