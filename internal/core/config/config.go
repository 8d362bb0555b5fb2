package config

import (
	"github.com/vietddude/bizday/internal/audit"
	"github.com/vietddude/bizday/internal/infra/store/dynamo"
	"github.com/vietddude/bizday/internal/infra/store/memory"
	"github.com/vietddude/bizday/internal/infra/store/redisstore"
	"github.com/vietddude/bizday/internal/infra/store/sqlstore"
	"github.com/vietddude/bizday/internal/registry"
)

// AppConfig represents the top-level configuration.
type AppConfig struct {
	Server   ServerConfig    `yaml:"server"`
	Logging  LoggingConfig   `yaml:"logging"`
	Store    StoreConfig     `yaml:"store"`
	Registry registry.Config `yaml:"registry"`
	Audit    audit.Config    `yaml:"audit"`
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

// Store backends.
const (
	BackendMemory   = "memory"
	BackendDynamoDB = "dynamodb"
	BackendRedis    = "redis"
	BackendSQL      = "sql"
)

// StoreConfig selects the document store backend. Only the section matching
// Backend is used.
type StoreConfig struct {
	Backend  string            `yaml:"backend"`
	Region   string            `yaml:"region"` // default region for CLI commands
	Memory   memory.Config     `yaml:"memory"`
	DynamoDB dynamo.Config     `yaml:"dynamodb"`
	Redis    redisstore.Config `yaml:"redis"`
	Database sqlstore.Config   `yaml:"database"`
}
