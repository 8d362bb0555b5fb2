package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"

	"github.com/vietddude/bizday/internal/audit"
	"github.com/vietddude/bizday/internal/registry"
)

// Load reads configuration from a YAML file.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML configuration, expanding environment variables first.
func Parse(data []byte) (*AppConfig, error) {
	var cfg AppConfig
	expandedData := os.ExpandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expandedData), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&cfg)

	switch cfg.Store.Backend {
	case BackendMemory, BackendDynamoDB, BackendRedis, BackendSQL:
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
	return &cfg, nil
}

func applyDefaults(cfg *AppConfig) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "text"
	}
	if cfg.Store.Backend == "" {
		cfg.Store.Backend = BackendMemory
	}
	if cfg.Store.Region == "" {
		cfg.Store.Region = "sa-east-1"
	}
	if cfg.Store.Database.Driver == "" {
		cfg.Store.Database.Driver = "pgx"
	}

	regDef := registry.DefaultConfig()
	if cfg.Registry.MaxPages == 0 {
		cfg.Registry.MaxPages = regDef.MaxPages
	}
	if cfg.Registry.ScanTimeout == 0 {
		cfg.Registry.ScanTimeout = regDef.ScanTimeout
	}
	if cfg.Registry.DateAttribute == "" {
		cfg.Registry.DateAttribute = regDef.DateAttribute
	}

	auditDef := audit.DefaultConfig()
	if cfg.Audit.MaxAttempts == 0 {
		cfg.Audit.MaxAttempts = auditDef.MaxAttempts
	}
	if cfg.Audit.RetryDelay == 0 {
		cfg.Audit.RetryDelay = auditDef.RetryDelay
	}
	if cfg.Audit.PutTimeout == 0 {
		cfg.Audit.PutTimeout = auditDef.PutTimeout
	}
	if cfg.Audit.Region == "" {
		cfg.Audit.Region = cfg.Store.Region
	}
}
