package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"ctdload/internal/core"
)

// clearEnv unsets every variable the loader reads so tests see only what
// they set themselves.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		"CTDLOAD_DATABASE_URL", "DATABASE_URL",
		"CTDLOAD_DB_MAX_CONNS", "CTDLOAD_DB_CONNECT_TIMEOUT",
		"CTDLOAD_CONFIG_DIR", "CTDLOAD_DATA_DIR",
		"CTDLOAD_TABLE_PREFIX", "CTDLOAD_CHUNK_SIZE",
		"CTDLOAD_DRIFT_POLICY", "CTDLOAD_BASE_URL",
		"CTDLOAD_LOG_LEVEL", "CTDLOAD_LOG_FORMAT",
	} {
		// The loader treats empty as unset, so blanking is enough.
		t.Setenv(name, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	t.Setenv("CTDLOAD_CONFIG_DIR", dir)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Database.MaxConns != 4 {
		t.Errorf("MaxConns = %d, want 4", cfg.Database.MaxConns)
	}
	if cfg.Database.ConnectTimeout != 15*time.Second {
		t.Errorf("ConnectTimeout = %v, want 15s", cfg.Database.ConnectTimeout)
	}
	if cfg.Import.TablePrefix != "ctd_" {
		t.Errorf("TablePrefix = %q", cfg.Import.TablePrefix)
	}
	if cfg.Import.ChunkSize != 1_000_000 {
		t.Errorf("ChunkSize = %d", cfg.Import.ChunkSize)
	}
	if cfg.Import.DataDir != filepath.Join(dir, "data") {
		t.Errorf("DataDir = %q, want under config dir", cfg.Import.DataDir)
	}
	if cfg.Import.Policy() != core.DriftAbort {
		t.Errorf("Policy() = %v, want abort", cfg.Import.Policy())
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "text" {
		t.Errorf("Logging = %+v", cfg.Logging)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("CTDLOAD_CONFIG_DIR", t.TempDir())
	t.Setenv("CTDLOAD_DB_MAX_CONNS", "16")
	t.Setenv("CTDLOAD_CHUNK_SIZE", "500")
	t.Setenv("CTDLOAD_DRIFT_POLICY", "warn")
	t.Setenv("CTDLOAD_TABLE_PREFIX", "stage_")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Database.MaxConns != 16 {
		t.Errorf("MaxConns = %d", cfg.Database.MaxConns)
	}
	if cfg.Import.ChunkSize != 500 {
		t.Errorf("ChunkSize = %d", cfg.Import.ChunkSize)
	}
	if cfg.Import.Policy() != core.DriftWarn {
		t.Errorf("Policy() = %v, want warn", cfg.Import.Policy())
	}
	if cfg.Import.TablePrefix != "stage_" {
		t.Errorf("TablePrefix = %q", cfg.Import.TablePrefix)
	}
}

func TestLoadAlternateDatabaseURL(t *testing.T) {
	clearEnv(t)
	t.Setenv("CTDLOAD_CONFIG_DIR", t.TempDir())
	t.Setenv("DATABASE_URL", "postgres://alt@db/ctd")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Database.URL != "postgres://alt@db/ctd" {
		t.Errorf("URL = %q, want fallback env var honored", cfg.Database.URL)
	}

	t.Setenv("CTDLOAD_DATABASE_URL", "postgres://primary@db/ctd")
	cfg, err = Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Database.URL != "postgres://primary@db/ctd" {
		t.Errorf("URL = %q, want primary env var to win", cfg.Database.URL)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name  string
		env   map[string]string
		wants string
	}{
		{"bad int", map[string]string{"CTDLOAD_DB_MAX_CONNS": "many"}, "invalid"},
		{"bad duration", map[string]string{"CTDLOAD_DB_CONNECT_TIMEOUT": "soon"}, "invalid"},
		{"bad policy", map[string]string{"CTDLOAD_DRIFT_POLICY": "explode"}, "drift policy"},
		{"zero chunk size", map[string]string{"CTDLOAD_CHUNK_SIZE": "0"}, "chunk size"},
		{"zero conns", map[string]string{"CTDLOAD_DB_MAX_CONNS": "0"}, "max conns"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("CTDLOAD_CONFIG_DIR", t.TempDir())
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			if err == nil || !strings.Contains(err.Error(), tt.wants) {
				t.Errorf("Load() error = %v, want containing %q", err, tt.wants)
			}
		})
	}
}

func TestResolveDSN(t *testing.T) {
	t.Run("env wins", func(t *testing.T) {
		cfg := &Config{}
		cfg.Database.URL = "postgres://env@db/ctd"
		cfg.Import.ConfigDir = t.TempDir()
		dsn, err := ResolveDSN(cfg)
		if err != nil || dsn != "postgres://env@db/ctd" {
			t.Errorf("ResolveDSN = %q, %v", dsn, err)
		}
	})

	t.Run("creates file with default on first use", func(t *testing.T) {
		cfg := &Config{}
		cfg.Import.ConfigDir = filepath.Join(t.TempDir(), "nested")

		dsn, err := ResolveDSN(cfg)
		if err != nil {
			t.Fatalf("ResolveDSN: %v", err)
		}
		if dsn != DefaultDSN {
			t.Errorf("dsn = %q, want default", dsn)
		}

		// Second run reads back what the first one persisted.
		dsn, err = ResolveDSN(cfg)
		if err != nil || dsn != DefaultDSN {
			t.Errorf("second ResolveDSN = %q, %v", dsn, err)
		}
	})

	t.Run("reads edited file", func(t *testing.T) {
		cfg := &Config{}
		cfg.Import.ConfigDir = t.TempDir()
		path := filepath.Join(cfg.Import.ConfigDir, "config.yaml")
		if err := os.WriteFile(path, []byte("database:\n  url: postgres://edited@db/ctd\n"), 0o600); err != nil {
			t.Fatal(err)
		}
		dsn, err := ResolveDSN(cfg)
		if err != nil || dsn != "postgres://edited@db/ctd" {
			t.Errorf("ResolveDSN = %q, %v", dsn, err)
		}
	})

	t.Run("empty url in file is an error", func(t *testing.T) {
		cfg := &Config{}
		cfg.Import.ConfigDir = t.TempDir()
		path := filepath.Join(cfg.Import.ConfigDir, "config.yaml")
		if err := os.WriteFile(path, []byte("database: {}\n"), 0o600); err != nil {
			t.Fatal(err)
		}
		if _, err := ResolveDSN(cfg); err == nil {
			t.Error("ResolveDSN = nil error, want missing url error")
		}
	})
}
