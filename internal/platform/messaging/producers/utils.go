package producers

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"
)

const (
	partitionReadAttempts = 5
	partitionReadBackoff  = 2 * time.Second
)

// topicConn is the part of *kafka.Conn needed to ensure a topic exists
type topicConn interface {
	ReadPartitions(topics ...string) ([]kafka.Partition, error)
	CreateTopics(topics ...kafka.TopicConfig) error
}

// ensureTopic creates topic unless the broker already reports partitions for it.
// Partition reads are retried since a freshly started broker may not answer yet.
func ensureTopic(conn topicConn, topic string, numPartitions, replicationFactor int, backoff time.Duration, log *slog.Logger) error {
	var (
		partitions []kafka.Partition
		err        error
	)

	for attempt := 1; attempt <= partitionReadAttempts; attempt++ {
		partitions, err = conn.ReadPartitions(topic)
		if err == nil {
			break
		}
		log.Warn("Failed to read topic partitions, retrying", "topic", topic, "attempt", attempt, "error", err)
		time.Sleep(backoff)
	}

	if len(partitions) > 0 {
		log.Info("Kafka topic already exists", "topic", topic, "partitions", len(partitions))
		return nil
	}

	if numPartitions <= 0 {
		numPartitions = 1
	}
	if replicationFactor <= 0 {
		replicationFactor = 1
	}

	log.Info("Creating Kafka topic", "topic", topic, "partitions", numPartitions, "replication_factor", replicationFactor, "last_read_error", err)
	if err := conn.CreateTopics(kafka.TopicConfig{
		Topic:             topic,
		NumPartitions:     numPartitions,
		ReplicationFactor: replicationFactor,
	}); err != nil {
		return fmt.Errorf("failed to create kafka topic %s: %w", topic, err)
	}
	log.Info("Created Kafka topic", "topic", topic)
	return nil
}

// dialAndEnsureTopic connects to the first reachable broker and makes sure topic exists
func dialAndEnsureTopic(brokers []string, topic string, numPartitions, replicationFactor int, log *slog.Logger) error {
	var lastErr error
	for _, broker := range brokers {
		conn, err := kafka.Dial("tcp", broker)
		if err != nil {
			lastErr = err
			log.Warn("Failed to dial Kafka broker", "broker", broker, "error", err)
			continue
		}
		defer conn.Close()
		return ensureTopic(conn, topic, numPartitions, replicationFactor, partitionReadBackoff, log)
	}
	return fmt.Errorf("failed to dial any kafka broker: %w", lastErr)
}
