// Package config holds the settings of the ledger API and the ledger worker.
// Values come from defaults, an optional .env file and the environment, and are
// validated once at startup.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Config is the complete application configuration
type Config struct {
	Application ApplicationConfig
	Logging     LoggingConfig
	Server      ServerConfig
	Kafka       KafkaConfig
	Postgres    PostgresConfig
	MongoDB     MongoDBConfig
	Outbox      OutboxConfig
	WorkerPool  WorkerPoolConfig
	Ledger      LedgerConfig
}

type ApplicationConfig struct {
	Env  string
	Name string
}

type LoggingConfig struct {
	Level string
}

// ServerConfig contains HTTP server configuration settings
type ServerConfig struct {
	Port            int           // Port to listen on
	ShutdownTimeout time.Duration // Grace period for server shutdown
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
}

// KafkaConfig contains settings for the ledger event topic and its dead letter topic
type KafkaConfig struct {
	Brokers           string
	EventsTopic       string
	NumPartitions     int
	ReplicationFactor int
	ConsumerGroup     string
	MinBytes          int
	MaxBytes          int
	MaxWait           time.Duration
	StartOffset       int64
	DLQTopic          string // Empty disables the dead letter queue
}

// BrokerList splits the comma separated broker addresses
func (k KafkaConfig) BrokerList() []string {
	var brokers []string
	for _, b := range strings.Split(k.Brokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

type PostgresConfig struct {
	URL             string
	MaxConns        int32
	MinConns        int32
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	MigrationsPath  string
}

type MongoDBConfig struct {
	URI             string
	Database        string
	Timeout         time.Duration
	MaxPoolSize     uint64
	MinPoolSize     uint64
	MaxConnIdleTime time.Duration
}

// OutboxConfig controls the relay of ledger events from Postgres to Kafka
type OutboxConfig struct {
	PollingInterval  time.Duration
	BatchSize        int
	MaxRetryAttempts int
}

type WorkerPoolConfig struct {
	Size int
}

// LedgerConfig holds the petty-cash book's presentation settings used in reports
type LedgerConfig struct {
	ReportTitle string
	Institution string
	Currency    string // ISO 4217 code
}

func (c *Config) validate() error {
	var problems []string
	require := func(ok bool, msg string) {
		if !ok {
			problems = append(problems, msg)
		}
	}

	require(c.Server.Port > 0 && c.Server.Port <= 65535, "SERVER_PORT must be between 1 and 65535")
	require(c.Server.ShutdownTimeout > 0, "SERVER_SHUTDOWN_TIMEOUT must be greater than 0")
	require(c.Server.ReadTimeout > 0, "SERVER_READ_TIMEOUT must be greater than 0")
	require(c.Server.WriteTimeout > 0, "SERVER_WRITE_TIMEOUT must be greater than 0")
	require(c.Server.IdleTimeout > 0, "SERVER_IDLE_TIMEOUT must be greater than 0")

	require(len(c.Kafka.BrokerList()) > 0, "KAFKA_BROKERS is required")
	require(c.Kafka.EventsTopic != "", "KAFKA_EVENTS_TOPIC is required")
	require(c.Kafka.DLQTopic == "" || c.Kafka.DLQTopic != c.Kafka.EventsTopic, "KAFKA_DLQ_TOPIC must differ from KAFKA_EVENTS_TOPIC")
	require(c.Kafka.ConsumerGroup != "", "KAFKA_CONSUMER_GROUP is required")
	require(c.Kafka.MinBytes > 0, "KAFKA_CONSUMER_MIN_BYTES must be greater than 0")
	require(c.Kafka.MaxBytes >= c.Kafka.MinBytes, "KAFKA_CONSUMER_MAX_BYTES must not be less than KAFKA_CONSUMER_MIN_BYTES")
	require(c.Kafka.MaxWait > 0, "KAFKA_CONSUMER_MAX_WAIT must be greater than 0")

	require(c.Postgres.URL != "", "POSTGRES_URL is required")
	require(c.Postgres.MaxConns > 0, "POSTGRES_MAX_CONNS must be greater than 0")
	require(c.Postgres.MinConns > 0 && c.Postgres.MinConns <= c.Postgres.MaxConns, "POSTGRES_MIN_CONNS must be between 1 and POSTGRES_MAX_CONNS")
	require(c.Postgres.ConnMaxLifetime > 0, "POSTGRES_MAX_CONN_LIFETIME must be greater than 0")
	require(c.Postgres.ConnMaxIdleTime > 0, "POSTGRES_MAX_CONN_IDLE_TIME must be greater than 0")
	require(c.Postgres.MigrationsPath != "", "POSTGRES_MIGRATIONS_PATH is required")

	require(c.MongoDB.URI != "", "MONGO_URI is required")
	require(c.MongoDB.Database != "", "MONGO_DATABASE is required")
	require(c.MongoDB.Timeout > 0, "MONGO_TIMEOUT must be greater than 0")
	require(c.MongoDB.MaxPoolSize > 0, "MONGO_MAX_POOL_SIZE must be greater than 0")
	require(c.MongoDB.MaxConnIdleTime > 0, "MONGO_MAX_CONN_IDLE_TIME must be greater than 0")

	require(c.Outbox.PollingInterval > 0, "OUTBOX_POLLING_INTERVAL must be greater than 0")
	require(c.Outbox.BatchSize > 0, "OUTBOX_BATCH_SIZE must be greater than 0")
	require(c.Outbox.MaxRetryAttempts > 0, "OUTBOX_MAX_RETRY_ATTEMPTS must be greater than 0")

	require(c.WorkerPool.Size > 0, "WORKER_POOL_SIZE must be greater than 0")

	require(strings.TrimSpace(c.Ledger.ReportTitle) != "", "LEDGER_REPORT_TITLE is required")
	require(len(c.Ledger.Currency) == 3, fmt.Sprintf("LEDGER_CURRENCY must be a 3-letter code, got %q", c.Ledger.Currency))

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, ", "))
	}
	return nil
}
