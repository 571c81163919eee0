package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v2"

	"github.com/vietddude/relayer/internal/bridge"
)

// Load reads configuration from a YAML file.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg AppConfig
	// Expand environment variables in the YAML content
	expandedData := os.ExpandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expandedData), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Set defaults if necessary
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Ledger.Type == "" {
		cfg.Ledger.Type = "http"
	}
	if cfg.Ledger.Timeout == 0 {
		cfg.Ledger.Timeout = 30 * time.Second
	}
	if cfg.Submitter.ChunkSize == 0 {
		cfg.Submitter.ChunkSize = 16
	}
	if cfg.Submitter.MaxRounds == 0 {
		cfg.Submitter.MaxRounds = 5
	}
	if cfg.Submitter.Seed == "" {
		cfg.Submitter.Seed = bridge.SeedSingle
	}
	if cfg.Stream.BatchSize == 0 {
		cfg.Stream.BatchSize = 100
	}

	return &cfg, nil
}
