package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv_Defaults(t *testing.T) {
	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, ":8083", cfg.Enrollment.Addr)
	assert.Equal(t, ":8080", cfg.Gateway.Addr)
	assert.Empty(t, cfg.Database.URL)
	assert.Empty(t, cfg.Redis.URL)
	assert.Empty(t, cfg.Kafka.Brokers)
	assert.Equal(t, "enrollment.events", cfg.Kafka.EventsTopic)
	assert.Equal(t, 3*time.Second, cfg.Catalog.Timeout)
	assert.Equal(t, 3*time.Second, cfg.Directory.Timeout)
	assert.Equal(t, StrategyGuarded, cfg.Validation.Strategy)
	assert.Equal(t, 5, cfg.Validation.FailureThreshold)
	assert.Equal(t, 2, cfg.Validation.SuccessThreshold)
	assert.Equal(t, 30*time.Second, cfg.Validation.Cooldown)
	assert.Equal(t, 5*time.Minute, cfg.Validation.StudentCacheTTL)
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("ENROLLMENT_ADDR", ":9000")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")
	t.Setenv("CATALOG_TIMEOUT", "750ms")
	t.Setenv("VALIDATION_STRATEGY", "DIRECT")
	t.Setenv("BREAKER_FAILURE_THRESHOLD", "3")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.Enrollment.Addr)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, 750*time.Millisecond, cfg.Catalog.Timeout)
	assert.Equal(t, StrategyDirect, cfg.Validation.Strategy)
	assert.Equal(t, 3, cfg.Validation.FailureThreshold)
}

func TestFromEnv_ReportsEveryInvalidValue(t *testing.T) {
	t.Setenv("CATALOG_TIMEOUT", "soon")
	t.Setenv("BREAKER_SUCCESS_THRESHOLD", "two")
	t.Setenv("VALIDATION_STRATEGY", "magic")

	_, err := FromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CATALOG_TIMEOUT")
	assert.Contains(t, err.Error(), "BREAKER_SUCCESS_THRESHOLD")
	assert.Contains(t, err.Error(), "VALIDATION_STRATEGY")
}

func TestFromEnv_RejectsNonPositiveTuning(t *testing.T) {
	t.Setenv("BREAKER_FAILURE_THRESHOLD", "0")
	t.Setenv("DIRECTORY_TIMEOUT", "0s")

	_, err := FromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BREAKER_FAILURE_THRESHOLD")
	assert.Contains(t, err.Error(), "DIRECTORY_TIMEOUT")
}
