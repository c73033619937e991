package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Server.Port != "8080" {
		t.Errorf("Expected default port 8080, got %s", cfg.Server.Port)
	}
	if cfg.Server.Mode != "debug" {
		t.Errorf("Expected default mode debug, got %s", cfg.Server.Mode)
	}
	if cfg.Database.Path != "catalog.db" {
		t.Errorf("Expected default database path catalog.db, got %s", cfg.Database.Path)
	}
	if cfg.Log.Level != "info" || cfg.Log.Format != "console" {
		t.Errorf("Expected default log config info/console, got %s/%s", cfg.Log.Level, cfg.Log.Format)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("CATALOG_SERVER_PORT", "9090")
	t.Setenv("CATALOG_DATABASE_PATH", "/tmp/test.db")
	t.Setenv("CATALOG_LOG_FORMAT", "json")

	cfg := Load()

	if cfg.Server.Port != "9090" {
		t.Errorf("Expected port 9090 from env, got %s", cfg.Server.Port)
	}
	if cfg.Database.Path != "/tmp/test.db" {
		t.Errorf("Expected database path from env, got %s", cfg.Database.Path)
	}
	if cfg.Log.Format != "json" {
		t.Errorf("Expected log format json from env, got %s", cfg.Log.Format)
	}
}
