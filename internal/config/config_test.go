package config

import (
	"os"
	"path/filepath"
	"testing"
)

// TestDefault verifies default configuration values
func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Listen != ":8080" {
		t.Errorf("Expected listen :8080, got %s", cfg.Listen)
	}
	if cfg.DBPath != "" {
		t.Errorf("Expected empty db_path (memory store), got %s", cfg.DBPath)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("Expected log level info, got %s", cfg.LogLevel)
	}
}

// TestLoad verifies YAML config file parsing
func TestLoad(t *testing.T) {
	t.Run("valid file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "clipd.yaml")
		content := "listen: \":9090\"\ndb_path: /var/lib/clipd/clips.db\nlog_level: debug\n"
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("Failed to write config file: %v", err)
		}

		cfg, err := Load(path)
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}

		if cfg.Listen != ":9090" {
			t.Errorf("Expected :9090, got %s", cfg.Listen)
		}
		if cfg.DBPath != "/var/lib/clipd/clips.db" {
			t.Errorf("Expected db path, got %s", cfg.DBPath)
		}
		if cfg.LogLevel != "debug" {
			t.Errorf("Expected debug, got %s", cfg.LogLevel)
		}
	})

	t.Run("partial file keeps defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "clipd.yaml")
		if err := os.WriteFile(path, []byte("listen: \":7070\"\n"), 0o644); err != nil {
			t.Fatalf("Failed to write config file: %v", err)
		}

		cfg, err := Load(path)
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}

		if cfg.Listen != ":7070" {
			t.Errorf("Expected :7070, got %s", cfg.Listen)
		}
		if cfg.LogLevel != "info" {
			t.Errorf("Expected default log level, got %s", cfg.LogLevel)
		}
	})

	t.Run("missing file errors", func(t *testing.T) {
		if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
			t.Error("Expected error for missing file")
		}
	})

	t.Run("malformed yaml errors", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		if err := os.WriteFile(path, []byte("listen: [unclosed"), 0o644); err != nil {
			t.Fatalf("Failed to write config file: %v", err)
		}

		if _, err := Load(path); err == nil {
			t.Error("Expected error for malformed yaml")
		}
	})
}

// TestFromEnv verifies environment overrides beat file values
func TestFromEnv(t *testing.T) {
	t.Setenv("CLIPD_LISTEN", ":6060")
	t.Setenv("CLIPD_LOG_LEVEL", "warn")

	cfg := Default()
	cfg.DBPath = "/from/file.db"
	cfg = FromEnv(cfg)

	if cfg.Listen != ":6060" {
		t.Errorf("Expected env override :6060, got %s", cfg.Listen)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("Expected env override warn, got %s", cfg.LogLevel)
	}
	if cfg.DBPath != "/from/file.db" {
		t.Errorf("Unset env var should keep existing value, got %s", cfg.DBPath)
	}
}

// TestResolve verifies the full default -> file -> env chain
func TestResolve(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clipd.yaml")
	if err := os.WriteFile(path, []byte("listen: \":5050\"\nlog_level: debug\n"), 0o644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	t.Setenv("CLIPD_CONFIG", path)
	t.Setenv("CLIPD_LOG_LEVEL", "error")

	cfg, err := Resolve()
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	if cfg.Listen != ":5050" {
		t.Errorf("Expected file value :5050, got %s", cfg.Listen)
	}
	if cfg.LogLevel != "error" {
		t.Errorf("Expected env to beat file, got %s", cfg.LogLevel)
	}
}
