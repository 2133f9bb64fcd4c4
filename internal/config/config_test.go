package config

import (
	"reflect"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "DATA_DIR", "DATA_SOURCE", "RATE_LIMIT", "RATE_WINDOW", "ALLOWED_ORIGINS", "RELOAD_SCHEDULE"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	if cfg.Port != ":8080" {
		t.Errorf("Port = %q", cfg.Port)
	}
	if cfg.DataDir != "data" || cfg.DataSource != SourceCSV {
		t.Errorf("DataDir = %q DataSource = %q", cfg.DataDir, cfg.DataSource)
	}
	if cfg.RateLimit != 120 || cfg.RateWindow != time.Minute {
		t.Errorf("rate limit = %d/%v", cfg.RateLimit, cfg.RateWindow)
	}
	if !reflect.DeepEqual(cfg.AllowedOrigins, []string{"*"}) {
		t.Errorf("AllowedOrigins = %v", cfg.AllowedOrigins)
	}
	if cfg.ReloadSchedule != "" {
		t.Errorf("ReloadSchedule = %q", cfg.ReloadSchedule)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DATA_SOURCE", "SQLite")
	t.Setenv("RATE_LIMIT", "5")
	t.Setenv("RATE_WINDOW", "30s")
	t.Setenv("ALLOWED_ORIGINS", "http://a.test, http://b.test,")
	t.Setenv("CLICKHOUSE_TABLE", "irradiance")

	cfg := Load()
	if cfg.Port != ":9090" {
		t.Errorf("Port = %q", cfg.Port)
	}
	if cfg.DataSource != SourceSQLite {
		t.Errorf("DataSource = %q", cfg.DataSource)
	}
	if cfg.RateLimit != 5 || cfg.RateWindow != 30*time.Second {
		t.Errorf("rate limit = %d/%v", cfg.RateLimit, cfg.RateWindow)
	}
	if !reflect.DeepEqual(cfg.AllowedOrigins, []string{"http://a.test", "http://b.test"}) {
		t.Errorf("AllowedOrigins = %v", cfg.AllowedOrigins)
	}
	if cfg.ClickHouse.Table != "irradiance" {
		t.Errorf("ClickHouse.Table = %q", cfg.ClickHouse.Table)
	}
}

func TestLoadInvalidNumbersFallBack(t *testing.T) {
	t.Setenv("RATE_LIMIT", "lots")
	t.Setenv("RATE_WINDOW", "soon")

	cfg := Load()
	if cfg.RateLimit != 120 || cfg.RateWindow != time.Minute {
		t.Errorf("rate limit = %d/%v", cfg.RateLimit, cfg.RateWindow)
	}
}
