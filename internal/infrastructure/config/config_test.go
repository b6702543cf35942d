package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("GRPC_PORT", "")
	t.Setenv("HTTP_PORT", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("KAFKA_BROKERS", "")
	t.Setenv("KAFKA_TOPIC", "")

	cfg := Load()
	assert.Equal(t, 8090, cfg.GRPCPort)
	assert.Equal(t, 9090, cfg.HTTPPort)
	assert.Equal(t, []string{"localhost:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "underwriting.events", cfg.KafkaTopic)
	assert.Equal(t, "underwriting-service", cfg.ServiceName)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("GRPC_PORT", "9001")
	t.Setenv("HTTP_PORT", "9002")
	t.Setenv("DATABASE_URL", "postgres://localhost/underwriting")
	t.Setenv("KAFKA_BROKERS", "broker-1:9092,broker-2:9092")
	t.Setenv("KAFKA_TOPIC", "custom.events")

	cfg := Load()
	assert.Equal(t, 9001, cfg.GRPCPort)
	assert.Equal(t, 9002, cfg.HTTPPort)
	assert.Equal(t, "postgres://localhost/underwriting", cfg.DatabaseURL)
	assert.Equal(t, []string{"broker-1:9092", "broker-2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "custom.events", cfg.KafkaTopic)
}

func TestValidatePanicsOnMissingDatabaseURL(t *testing.T) {
	cfg := Config{KafkaBrokers: []string{"localhost:9092"}}
	assert.PanicsWithValue(t, "DATABASE_URL environment variable is required", func() {
		cfg.Validate()
	})
}

func TestValidatePanicsOnMissingKafkaBrokers(t *testing.T) {
	cfg := Config{DatabaseURL: "postgres://localhost/db"}
	assert.PanicsWithValue(t, "KAFKA_BROKERS environment variable is required", func() {
		cfg.Validate()
	})
}

func TestValidatePassesWithRequiredFields(t *testing.T) {
	cfg := Config{DatabaseURL: "postgres://localhost/db", KafkaBrokers: []string{"localhost:9092"}}
	assert.NotPanics(t, func() {
		cfg.Validate()
	})
}

func TestAddrFormatting(t *testing.T) {
	cfg := Config{GRPCPort: 8090, HTTPPort: 9090}
	assert.Equal(t, ":8090", cfg.GRPCAddr())
	assert.Equal(t, ":9090", cfg.HTTPAddr())
}
