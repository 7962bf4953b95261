package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, key := range []string{
		"KAFKA_BROKER", "KAFKA_TOPIC", "KAFKA_GROUP_ID",
		"DB_DSN", "DB_CONNECT_ATTEMPTS", "DB_CONNECT_DELAY",
		"API_PORT", "API_BASE_PATH", "API_RATE_LIMIT", "API_RATE_BURST",
		"LOG_DIR", "LOG_LEVEL", "DASHBOARD_API_URL",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8083", cfg.API.Port)
	assert.Equal(t, "/api", cfg.API.BasePath)
	assert.Equal(t, 50, cfg.API.RateLimit)
	assert.Equal(t, 50, cfg.API.RateBurst)
	assert.Equal(t, "fraud-alerts", cfg.Kafka.Topic)
	assert.Equal(t, "alert-service", cfg.Kafka.GroupID)
	assert.Empty(t, cfg.Kafka.Broker)
	assert.Empty(t, cfg.DB.DSN)
	assert.Equal(t, 5, cfg.DB.ConnectAttempts)
	assert.Equal(t, 2*time.Second, cfg.DB.ConnectDelay)
	assert.Equal(t, "logs", cfg.Logging.Dir)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("KAFKA_BROKER", "kafka:9092")
	t.Setenv("DB_DSN", "postgres://fraud@db/alerts")
	t.Setenv("DB_CONNECT_DELAY", "500ms")
	t.Setenv("API_PORT", ":9000")
	t.Setenv("API_RATE_LIMIT", "0")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "kafka:9092", cfg.Kafka.Broker)
	assert.Equal(t, "postgres://fraud@db/alerts", cfg.DB.DSN)
	assert.Equal(t, 500*time.Millisecond, cfg.DB.ConnectDelay)
	assert.Equal(t, ":9000", cfg.API.Port)
	assert.Equal(t, 0, cfg.API.RateLimit)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadRejectsNegativeRateSettings(t *testing.T) {
	clearEnv(t)
	t.Setenv("API_RATE_LIMIT", "-5")

	_, err := Load()
	assert.ErrorContains(t, err, "API_RATE_LIMIT")
}

func TestLoadDashboard(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadDashboard()
	require.NoError(t, err)
	assert.Equal(t, DefaultAPIURL, cfg.APIURL)

	t.Setenv("DASHBOARD_API_URL", "https://alerts.internal/api")
	cfg, err = LoadDashboard()
	require.NoError(t, err)
	assert.Equal(t, "https://alerts.internal/api", cfg.APIURL)
}
