package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Port)
	assert.Equal(t, "development", cfg.AppEnv)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, []string{"localhost:9092"}, cfg.Kafka.Brokers)
	assert.True(t, cfg.Kafka.Enabled)
	assert.Equal(t, 50.0, cfg.HTTP.RateLimitRPS)
	assert.Equal(t, 100, cfg.HTTP.RateLimitBurst)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("RENTHUB_SERVER_PORT", "9090")
	t.Setenv("RENTHUB_DB_NAME", "renthub_staging")
	t.Setenv("RENTHUB_KAFKA_ENABLED", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Port)
	assert.Equal(t, "renthub_staging", cfg.Database.DBName)
	assert.False(t, cfg.Kafka.Enabled)
}

func TestDatabaseDSN(t *testing.T) {
	c := DatabaseConfig{
		Host: "db.internal", Port: 5433, User: "svc",
		Password: "secret", DBName: "renthub", SSLMode: "require",
	}
	assert.Equal(t,
		"host=db.internal port=5433 user=svc password=secret dbname=renthub sslmode=require",
		c.DSN(),
	)
}
