package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	// DriverSQLite selects the embedded SQLite store.
	DriverSQLite = "sqlite"
	// DriverPostgres selects a PostgreSQL server.
	DriverPostgres = "postgres"

	// EnvFilePath names the variable pointing at an optional .env file.
	EnvFilePath        = "ENV_PATH"
	defaultEnvFilePath = ".env"
)

// ErrInvalidConfig is returned when a configuration value is missing or unsupported.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds the service configuration.
type Config struct {
	AppPort      string
	ServiceName  string
	DBDriver     string
	DatabaseDSN  string
	RabbitMQURL  string
	LogLevel     string
	LogPretty    bool
	OTLPEndpoint string
}

// New returns a viper instance with defaults applied and environment lookup enabled.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("SERVICE_NAME", "catalog")
	v.SetDefault("DB_DRIVER", DriverSQLite)
	v.SetDefault("DATABASE_DSN", "file:catalog.db?cache=shared")
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_PRETTY", false)
	v.SetDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	v.AutomaticEnv()
	return v
}

// Load reads the optional .env file and then the environment.
func Load() (*Config, error) {
	envPath := os.Getenv(EnvFilePath)
	if envPath == "" {
		envPath = defaultEnvFilePath
	}
	// A missing .env file is fine; the environment may carry everything.
	if err := godotenv.Load(envPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: reading %s: %v", ErrInvalidConfig, envPath, err)
	}

	return FromViper(New())
}

// FromViper builds and validates a Config from v.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		AppPort:      v.GetString("APP_PORT"),
		ServiceName:  v.GetString("SERVICE_NAME"),
		DBDriver:     v.GetString("DB_DRIVER"),
		DatabaseDSN:  v.GetString("DATABASE_DSN"),
		RabbitMQURL:  v.GetString("RABBITMQ_URL"),
		LogLevel:     v.GetString("LOG_LEVEL"),
		LogPretty:    v.GetBool("LOG_PRETTY"),
		OTLPEndpoint: v.GetString("OTEL_EXPORTER_OTLP_ENDPOINT"),
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.AppPort == "" {
		return fmt.Errorf("%w: APP_PORT is empty", ErrInvalidConfig)
	}
	if c.DatabaseDSN == "" {
		return fmt.Errorf("%w: DATABASE_DSN is empty", ErrInvalidConfig)
	}
	switch c.DBDriver {
	case DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("%w: unsupported DB_DRIVER %q", ErrInvalidConfig, c.DBDriver)
	}
	return nil
}
