// Package config provides centralized configuration management for the
// importer. Settings come from environment variables with sensible
// defaults and are validated on startup to fail fast on misconfiguration.
// The database connection string additionally falls back to a persisted
// config file, see dsn.go.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"ctdload/internal/core"
)

// Config holds all importer configuration.
type Config struct {
	Database DatabaseConfig
	Import   ImportConfig
	Logging  LoggingConfig
}

// DatabaseConfig holds database connection settings.
type DatabaseConfig struct {
	// URL is the PostgreSQL connection string. When unset, the
	// persisted config file (and finally the built-in default) is used.
	URL string `env:"CTDLOAD_DATABASE_URL" envAlt:"DATABASE_URL"`

	// MaxConns is the maximum number of connections in the pool (default: 4)
	MaxConns int `env:"CTDLOAD_DB_MAX_CONNS" default:"4"`

	// ConnectTimeout is the maximum duration to wait for the first ping (default: 15s)
	ConnectTimeout time.Duration `env:"CTDLOAD_DB_CONNECT_TIMEOUT" default:"15s"`
}

// ImportConfig holds pipeline settings.
type ImportConfig struct {
	// ConfigDir is where the persisted config file lives (default: ~/.ctdload)
	ConfigDir string `env:"CTDLOAD_CONFIG_DIR"`

	// DataDir is where downloaded source files are kept (default: <ConfigDir>/data)
	DataDir string `env:"CTDLOAD_DATA_DIR"`

	// TablePrefix is prepended to every destination table name (default: ctd_)
	TablePrefix string `env:"CTDLOAD_TABLE_PREFIX" default:"ctd_"`

	// ChunkSize is the number of rows per in-memory chunk (default: 1000000)
	ChunkSize int `env:"CTDLOAD_CHUNK_SIZE" default:"1000000"`

	// DriftPolicy decides how schema drift is handled: abort, skip or warn (default: abort)
	DriftPolicy string `env:"CTDLOAD_DRIFT_POLICY" default:"abort"`

	// BaseURL is where the CTD bulk exports are downloaded from
	BaseURL string `env:"CTDLOAD_BASE_URL" default:"http://ctdbase.org/reports/"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"CTDLOAD_LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"CTDLOAD_LOG_FORMAT" default:"text"`
}

// Policy returns the parsed drift policy.
func (c *ImportConfig) Policy() core.DriftPolicy {
	p, _ := core.ParseDriftPolicy(c.DriftPolicy)
	return p
}

// Validate checks configuration consistency and resolves the directory
// defaults that cannot be expressed as struct tags.
func (c *Config) Validate() error {
	if c.Import.ConfigDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve home directory: %w", err)
		}
		c.Import.ConfigDir = filepath.Join(home, ".ctdload")
	}
	if c.Import.DataDir == "" {
		c.Import.DataDir = filepath.Join(c.Import.ConfigDir, "data")
	}
	if c.Import.ChunkSize <= 0 {
		return fmt.Errorf("chunk size must be positive, got %d", c.Import.ChunkSize)
	}
	if _, ok := core.ParseDriftPolicy(c.Import.DriftPolicy); !ok {
		return fmt.Errorf("unknown drift policy %q (want abort, skip or warn)", c.Import.DriftPolicy)
	}
	if c.Database.MaxConns < 1 {
		return fmt.Errorf("db max conns must be at least 1, got %d", c.Database.MaxConns)
	}
	return nil
}
