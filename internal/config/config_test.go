package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoad_DefaultValues(t *testing.T) {
	for _, key := range []string{
		"HTTP_ADDR", "POSTGRES_DSN", "DB_HOST", "DB_PORT", "DB_PASSWORD", "DB_NAME",
		"REDIS_ADDR", "DASHBOARD_PERIOD", "DASHBOARD_STATUS_NAME", "DASHBOARD_TABLE",
		"DASHBOARD_TIMEZONE", "DASHBOARD_CACHE_TTL", "DASHBOARD_QUERY_TIMEOUT", "LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if cfg.HTTP.Addr != ":8080" {
		t.Errorf("Expected HTTP_ADDR default ':8080', got '%s'", cfg.HTTP.Addr)
	}
	if cfg.Database.Host != "localhost" || cfg.Database.Port != 5432 {
		t.Errorf("Expected localhost:5432, got %s:%d", cfg.Database.Host, cfg.Database.Port)
	}
	if cfg.Database.Password != "" {
		t.Errorf("Expected no default password, got '%s'", cfg.Database.Password)
	}
	if cfg.Redis.Enabled() {
		t.Errorf("Expected redis disabled by default")
	}
	if cfg.Dashboard.Period != 30 {
		t.Errorf("Expected DASHBOARD_PERIOD default 30, got %d", cfg.Dashboard.Period)
	}
	if cfg.Dashboard.StatusName != "Detect and Locate" {
		t.Errorf("Expected default status name, got '%s'", cfg.Dashboard.StatusName)
	}
	if cfg.Dashboard.CacheTTL != 0 {
		t.Errorf("Expected cache disabled by default, got %s", cfg.Dashboard.CacheTTL)
	}
	if cfg.Dashboard.QueryTimeout != 15*time.Second {
		t.Errorf("Expected query timeout 15s, got %s", cfg.Dashboard.QueryTimeout)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("Expected LOG_LEVEL default 'info', got '%s'", cfg.Log.Level)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Expected defaults to validate, got %v", err)
	}
}

func TestLoad_EnvironmentVariables(t *testing.T) {
	t.Setenv("DASHBOARD_PERIOD", "7")
	t.Setenv("DASHBOARD_TABLE", "health.dnasoffer_status")
	t.Setenv("DASHBOARD_TIMEZONE", "UTC")
	t.Setenv("DASHBOARD_CACHE_TTL", "45s")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("DB_PASSWORD", "s3cret")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if cfg.Dashboard.Period != 7 {
		t.Errorf("Expected period 7, got %d", cfg.Dashboard.Period)
	}
	if cfg.Dashboard.Table != "health.dnasoffer_status" {
		t.Errorf("Expected table override, got '%s'", cfg.Dashboard.Table)
	}
	if cfg.Dashboard.CacheTTL != 45*time.Second {
		t.Errorf("Expected cache ttl 45s, got %s", cfg.Dashboard.CacheTTL)
	}
	if !cfg.Redis.Enabled() {
		t.Errorf("Expected redis enabled")
	}
	loc, err := cfg.Dashboard.Location()
	if err != nil || loc != time.UTC {
		t.Errorf("Expected UTC location, got %v (%v)", loc, err)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Expected LOG_LEVEL 'debug', got '%s'", cfg.Log.Level)
	}
}

func TestLoad_InvalidNumbers(t *testing.T) {
	t.Setenv("DASHBOARD_PERIOD", "thirty")

	if _, err := Load(); err == nil {
		t.Fatalf("Expected error for non-numeric DASHBOARD_PERIOD")
	}
}

func TestLoad_InvalidDuration(t *testing.T) {
	t.Setenv("DASHBOARD_CACHE_TTL", "soon")

	if _, err := Load(); err == nil {
		t.Fatalf("Expected error for invalid DASHBOARD_CACHE_TTL")
	}
}

func TestValidate(t *testing.T) {
	t.Setenv("DASHBOARD_PERIOD", "")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	cfg.Dashboard.Period = 0
	cfg.Dashboard.Timezone = "Mars/Olympus"
	err = cfg.Validate()
	if err == nil {
		t.Fatalf("Expected validation error")
	}
	if !strings.Contains(err.Error(), "DASHBOARD_PERIOD") || !strings.Contains(err.Error(), "DASHBOARD_TIMEZONE") {
		t.Errorf("Expected both problems reported, got %v", err)
	}
}

func TestDatabaseConfig_RedactedHidesPassword(t *testing.T) {
	c := DatabaseConfig{Host: "db", Port: 5432, User: "root", Password: "July123#", Database: "health", SSLMode: "disable"}

	if !strings.Contains(c.GetDSN(), "July123#") {
		t.Fatalf("Expected DSN to carry the password")
	}
	if strings.Contains(c.Redacted(), "July123#") {
		t.Errorf("Redacted DSN leaked password: %s", c.Redacted())
	}

	c.DSN = "postgres://root:July123%23@db:5432/health?sslmode=disable"
	if c.GetDSN() != c.DSN {
		t.Errorf("Expected POSTGRES_DSN to take precedence")
	}
	if strings.Contains(c.Redacted(), "July123") {
		t.Errorf("Redacted URL DSN leaked password: %s", c.Redacted())
	}
}

func TestGetEnv(t *testing.T) {
	t.Setenv("TEST_VAR", "test-value")

	if v := getEnv("TEST_VAR", "default"); v != "test-value" {
		t.Errorf("Expected 'test-value', got '%s'", v)
	}
	if v := getEnv("NON_EXISTENT_VAR_FOR_TEST", "default-value"); v != "default-value" {
		t.Errorf("Expected 'default-value', got '%s'", v)
	}
}
