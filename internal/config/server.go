package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v9"
	"github.com/joho/godotenv"
)

// ServerConfig holds the HTTP server settings read from the environment
type ServerConfig struct {
	Addr            string        `env:"TAXREGIMES_ADDR" envDefault:":8080"`
	LogLevel        string        `env:"TAXREGIMES_LOG_LEVEL" envDefault:"info"`
	Development     bool          `env:"TAXREGIMES_DEV" envDefault:"false"`
	RulesFile       string        `env:"TAXREGIMES_RULES_FILE"`
	MaxBodyBytes    int64         `env:"TAXREGIMES_MAX_BODY_BYTES" envDefault:"1048576"`
	RequestTimeout  time.Duration `env:"TAXREGIMES_REQUEST_TIMEOUT" envDefault:"30s"`
	ReadTimeout     time.Duration `env:"TAXREGIMES_READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout    time.Duration `env:"TAXREGIMES_WRITE_TIMEOUT" envDefault:"60s"`
	ShutdownTimeout time.Duration `env:"TAXREGIMES_SHUTDOWN_TIMEOUT" envDefault:"10s"`
	OTLPEndpoint    string        `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	ServiceName     string        `env:"OTEL_SERVICE_NAME" envDefault:"taxregimes"`
}

// LoadServerConfig loads the given .env files, if they exist, and parses the environment.
// Variables already set in the environment win over .env values.
func LoadServerConfig(envFiles ...string) (*ServerConfig, error) {
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}

	var cfg ServerConfig
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.MaxBodyBytes <= 0 {
		return nil, fmt.Errorf("TAXREGIMES_MAX_BODY_BYTES must be positive")
	}
	if cfg.RequestTimeout <= 0 {
		return nil, fmt.Errorf("TAXREGIMES_REQUEST_TIMEOUT must be positive")
	}

	return &cfg, nil
}
