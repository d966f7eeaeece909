package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "LOG_LEVEL", "ALERT_PUBLISH_DELAY", "STATIC_DIR", "CORS_ALLOWED_ORIGINS", "MAX_BODY_BYTES", "KAFKA_BROKERS", "KAFKA_AUDIT_TOPIC", "ENV"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "3000", cfg.Server.Port)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, int64(10<<20), cfg.Server.MaxBodyBytes)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.Log.Development)
	assert.Equal(t, time.Second, cfg.Alert.PublishDelay)
	assert.Empty(t, cfg.Static.Dir)
	assert.Empty(t, cfg.Kafka.Brokers)
	assert.Equal(t, "alert-audit", cfg.Kafka.Topic)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("ALERT_PUBLISH_DELAY", "250ms")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example ,")
	t.Setenv("MAX_BODY_BYTES", "1024")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")

	cfg := Load()

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 250*time.Millisecond, cfg.Alert.PublishDelay)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, int64(1024), cfg.Server.MaxBodyBytes)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
}

func TestLoadInvalidValuesFallBack(t *testing.T) {
	t.Setenv("ALERT_PUBLISH_DELAY", "-1s")
	t.Setenv("MAX_BODY_BYTES", "lots")

	cfg := Load()

	assert.Equal(t, time.Second, cfg.Alert.PublishDelay)
	assert.Equal(t, int64(10<<20), cfg.Server.MaxBodyBytes)
}
