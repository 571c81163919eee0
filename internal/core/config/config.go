package config

import (
	"time"

	"github.com/vietddude/relayer/internal/bridge"
	redisclient "github.com/vietddude/relayer/internal/infra/redis"
	"github.com/vietddude/relayer/internal/infra/storage/postgres"
)

// AppConfig represents the top-level configuration.
type AppConfig struct {
	Server    ServerConfig       `yaml:"server"`
	Ledger    LedgerConfig       `yaml:"ledger"`
	Stream    StreamConfig       `yaml:"stream"`
	Submitter bridge.Config      `yaml:"submitter"`
	Redis     redisclient.Config `yaml:"redis"`
	Logging   LoggingConfig      `yaml:"logging"`
	Database  postgres.Config    `yaml:"database"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port int `yaml:"port"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, text
}

// LedgerConfig holds settings for the remote ledger endpoint.
type LedgerConfig struct {
	Name    string        `yaml:"name"`
	URL     string        `yaml:"url"`
	Type    string        `yaml:"type"` // http, grpc
	Timeout time.Duration `yaml:"timeout"`

	MaxAttempts  int           `yaml:"max_attempts"`
	InitialDelay time.Duration `yaml:"initial_delay"`
	MaxDelay     time.Duration `yaml:"max_delay"`
}

// StreamConfig holds settings for the indexer ingestion stream.
type StreamConfig struct {
	URL             string `yaml:"url"`
	StartingVersion uint64 `yaml:"starting_version"`
	BatchSize       uint64 `yaml:"batch_size"`
}
