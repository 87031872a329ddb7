package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg := LoadConfig()

	assert.Equal(t, "8080", cfg.AppPort)
	assert.Equal(t, "eshop", cfg.DBName)
	assert.Equal(t, 10, cfg.BCryptCost)
	assert.Equal(t, 24, cfg.TokenTTLHours)
	assert.False(t, cfg.IsProduction())
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("APP_ENV", "production")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("REDIS_ADDR", "redis.internal:6379")
	t.Setenv("BCRYPT_COST", "12")
	t.Setenv("OTEL_EXPORTER_OTLP_INSECURE", "false")

	cfg := LoadConfig()

	assert.Equal(t, "9090", cfg.AppPort)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "db.internal", cfg.DBHost)
	assert.Equal(t, "redis.internal:6379", cfg.RedisAddr)
	assert.Equal(t, 12, cfg.BCryptCost)
	assert.False(t, cfg.OTELExporterOTLPInsecure)
}

func TestGetDSN(t *testing.T) {
	cfg := &Config{
		DBHost:     "localhost",
		DBPort:     "3306",
		DBUser:     "root",
		DBPassword: "secret",
		DBName:     "eshop",
	}

	assert.Equal(t, "root:secret@tcp(localhost:3306)/eshop?parseTime=true&charset=utf8mb4", cfg.GetDSN())
}

func TestGetEnvIntIgnoresGarbage(t *testing.T) {
	t.Setenv("BCRYPT_COST", "not-a-number")
	cfg := LoadConfig()
	assert.Equal(t, 10, cfg.BCryptCost)
}
