package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultDSN is used when neither the environment nor the config file
// provides a connection string. It is persisted to the config file on
// first use so the fallback is visible and editable.
const DefaultDSN = "postgres://postgres@localhost:5432/ctd?sslmode=disable"

// fileConfig is the on-disk shape of the persisted config file.
type fileConfig struct {
	Database struct {
		URL string `yaml:"url"`
	} `yaml:"database"`
}

// ResolveDSN returns the connection string for this run, resolved in
// order: environment, persisted config file, built-in default. A missing
// config file is created with the default.
func ResolveDSN(cfg *Config) (string, error) {
	if cfg.Database.URL != "" {
		return cfg.Database.URL, nil
	}

	path := filepath.Join(cfg.Import.ConfigDir, "config.yaml")
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		var fc fileConfig
		if err := yaml.Unmarshal(data, &fc); err != nil {
			return "", fmt.Errorf("parse %s: %w", path, err)
		}
		if fc.Database.URL == "" {
			return "", fmt.Errorf("%s: no database url set", path)
		}
		slog.Info("using connection string from config file", "path", path)
		return fc.Database.URL, nil

	case errors.Is(err, fs.ErrNotExist):
		if err := writeDefault(path); err != nil {
			return "", err
		}
		slog.Info("created config file with default connection string", "path", path)
		return DefaultDSN, nil

	default:
		return "", fmt.Errorf("read %s: %w", path, err)
	}
}

func writeDefault(path string) error {
	var fc fileConfig
	fc.Database.URL = DefaultDSN
	data, err := yaml.Marshal(&fc)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
