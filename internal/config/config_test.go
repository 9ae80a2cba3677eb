package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"catalog/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv(config.EnvFilePath, filepath.Join(t.TempDir(), "missing.env"))

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.AppPort)
	assert.Equal(t, "catalog", cfg.ServiceName)
	assert.Equal(t, config.DriverSQLite, cfg.DBDriver)
	assert.Equal(t, "", cfg.RabbitMQURL)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.LogPretty)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv(config.EnvFilePath, filepath.Join(t.TempDir(), "missing.env"))
	t.Setenv("APP_PORT", ":9090")
	t.Setenv("DB_DRIVER", config.DriverPostgres)
	t.Setenv("DATABASE_DSN", "host=db user=postgres dbname=catalog")
	t.Setenv("LOG_PRETTY", "true")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.AppPort)
	assert.Equal(t, config.DriverPostgres, cfg.DBDriver)
	assert.Equal(t, "host=db user=postgres dbname=catalog", cfg.DatabaseDSN)
	assert.True(t, cfg.LogPretty)
}

func TestLoadFromEnvFile(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(envFile, []byte("RABBITMQ_URL=amqp://guest:guest@mq:5672/\n"), 0o600))
	t.Setenv(config.EnvFilePath, envFile)
	// godotenv only fills unset variables. Setenv registers the restore before we unset it.
	t.Setenv("RABBITMQ_URL", "")
	os.Unsetenv("RABBITMQ_URL")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "amqp://guest:guest@mq:5672/", cfg.RabbitMQURL)
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	t.Setenv(config.EnvFilePath, filepath.Join(t.TempDir(), "missing.env"))
	t.Setenv("DB_DRIVER", "mysql")

	cfg, err := config.Load()
	assert.Nil(t, cfg)
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestLoadRejectsMalformedEnvFile(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), "broken.env")
	require.NoError(t, os.WriteFile(envFile, []byte("BROKEN-KEY=value\n"), 0o600))
	t.Setenv(config.EnvFilePath, envFile)

	cfg, err := config.Load()
	assert.Nil(t, cfg)
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
	assert.ErrorContains(t, err, envFile)
}
