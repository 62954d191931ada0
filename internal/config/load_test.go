package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "configs"), 0o755))

	originalWD, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(originalWD) })
	return dir
}

func TestLoadConfig_FromEnvFile(t *testing.T) {
	dir := chdirTemp(t)
	content := "APP_NAME=ledger-test\nSERVER_PORT=9090\nLOG_LEVEL=debug\nKAFKA_BROKERS=kafka1:9092, kafka2:9092\nLEDGER_INSTITUTION=Institute of Marine Research\nLEDGER_CURRENCY=usd\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "configs", "ledger_test.env"), []byte(content), 0o644))

	cfg, err := LoadConfig("ledger_test")
	require.NoError(t, err)

	assert.Equal(t, "ledger-test", cfg.Application.Name)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, []string{"kafka1:9092", "kafka2:9092"}, cfg.Kafka.BrokerList())
	assert.Equal(t, "Institute of Marine Research", cfg.Ledger.Institution)
	assert.Equal(t, "USD", cfg.Ledger.Currency)

	// untouched keys keep their defaults
	assert.Equal(t, "development", cfg.Application.Env)
	assert.Equal(t, "ledger_events", cfg.Kafka.EventsTopic)
	assert.Equal(t, "ledger_events_dlq", cfg.Kafka.DLQTopic)
	assert.Equal(t, 2*time.Second, cfg.Outbox.PollingInterval)
	assert.Equal(t, int32(10), cfg.Postgres.MaxConns)
	assert.Equal(t, "Petty Cash Ledger", cfg.Ledger.ReportTitle)
}

func TestLoadConfig_EnvironmentOverridesFile(t *testing.T) {
	dir := chdirTemp(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "configs", "override.env"), []byte("SERVER_PORT=9090\n"), 0o644))
	t.Setenv("SERVER_PORT", "7070")
	t.Setenv("OUTBOX_BATCH_SIZE", "5")

	cfg, err := LoadConfig("override")
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, 5, cfg.Outbox.BatchSize)
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	chdirTemp(t)

	cfg, err := LoadConfig("does_not_exist")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "EUR", cfg.Ledger.Currency)
	assert.Equal(t, 4, cfg.WorkerPool.Size)
}

func TestLoadConfig_InvalidValues(t *testing.T) {
	chdirTemp(t)
	t.Setenv("WORKER_POOL_SIZE", "0")
	t.Setenv("LEDGER_CURRENCY", "EURO")

	cfg, err := LoadConfig("does_not_exist")

	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "WORKER_POOL_SIZE must be greater than 0")
	assert.Contains(t, err.Error(), "LEDGER_CURRENCY must be a 3-letter code")
}

func TestLoadConfigWithNameAndType(t *testing.T) {
	dir := chdirTemp(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "configs", "typed.env"), []byte("APP_NAME=typed\n"), 0o644))

	cfg, err := LoadConfigWithNameAndType("typed.env", "env")
	require.NoError(t, err)
	assert.Equal(t, "typed", cfg.Application.Name)
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		v := viper.New()
		setDefaults(v)
		return fromViper(v)
	}

	t.Run("DefaultsAreValid", func(t *testing.T) {
		assert.NoError(t, valid().validate())
	})

	t.Run("DLQMayBeDisabled", func(t *testing.T) {
		cfg := valid()
		cfg.Kafka.DLQTopic = ""
		assert.NoError(t, cfg.validate())
	})

	t.Run("DLQMustDifferFromEventsTopic", func(t *testing.T) {
		cfg := valid()
		cfg.Kafka.DLQTopic = cfg.Kafka.EventsTopic
		assert.ErrorContains(t, cfg.validate(), "KAFKA_DLQ_TOPIC must differ")
	})

	t.Run("CollectsAllProblems", func(t *testing.T) {
		cfg := valid()
		cfg.Server.Port = 0
		cfg.Postgres.URL = ""
		cfg.Kafka.Brokers = " , "

		err := cfg.validate()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "SERVER_PORT must be between 1 and 65535, ")
		assert.Contains(t, err.Error(), "KAFKA_BROKERS is required")
		assert.Contains(t, err.Error(), "POSTGRES_URL is required")
	})

	t.Run("MinConnsAboveMax", func(t *testing.T) {
		cfg := valid()
		cfg.Postgres.MinConns = cfg.Postgres.MaxConns + 1
		assert.ErrorContains(t, cfg.validate(), "POSTGRES_MIN_CONNS")
	})
}
