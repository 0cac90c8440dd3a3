package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"
)

type DatabaseConfig struct {
	DSN      string // takes precedence over the individual fields
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
	MaxConns int
	MaxIdle  int
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

func (c RedisConfig) Enabled() bool {
	return c.Addr != ""
}

type DashboardConfig struct {
	Period       int
	MaxPeriod    int
	StatusName   string
	Table        string
	Timezone     string
	CacheTTL     time.Duration
	QueryTimeout time.Duration
}

type Config struct {
	HTTP struct {
		Addr string
	}
	Database  DatabaseConfig
	Redis     RedisConfig
	Dashboard DashboardConfig
	Log       struct {
		Level  string
		Format string
	}
}

// GetDSN returns the connection string handed to lib/pq.
func (c *DatabaseConfig) GetDSN() string {
	if c.DSN != "" {
		return c.DSN
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode)
}

// Redacted is GetDSN with the password masked, safe for logs.
func (c *DatabaseConfig) Redacted() string {
	if c.DSN != "" {
		if u, err := url.Parse(c.DSN); err == nil && u.Scheme != "" {
			return u.Redacted()
		}
		return "(dsn from POSTGRES_DSN)"
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=xxxxx dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Database, c.SSLMode)
}

// Location resolves Dashboard.Timezone; "Local" and "" mean the process zone.
func (c DashboardConfig) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Timezone)
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	cfg := &Config{}
	var err error

	cfg.HTTP.Addr = getEnv("HTTP_ADDR", ":8080")

	cfg.Database.DSN = os.Getenv("POSTGRES_DSN")
	cfg.Database.Host = getEnv("DB_HOST", "localhost")
	if cfg.Database.Port, err = getEnvInt("DB_PORT", 5432); err != nil {
		return nil, err
	}
	cfg.Database.User = getEnv("DB_USER", "postgres")
	cfg.Database.Password = getEnv("DB_PASSWORD", "")
	cfg.Database.Database = getEnv("DB_NAME", "health")
	cfg.Database.SSLMode = getEnv("DB_SSLMODE", "disable")
	if cfg.Database.MaxConns, err = getEnvInt("DB_MAX_CONNS", 10); err != nil {
		return nil, err
	}
	if cfg.Database.MaxIdle, err = getEnvInt("DB_MAX_IDLE", 5); err != nil {
		return nil, err
	}

	cfg.Redis.Addr = getEnv("REDIS_ADDR", "")
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", "")
	if cfg.Redis.DB, err = getEnvInt("REDIS_DB", 0); err != nil {
		return nil, err
	}

	if cfg.Dashboard.Period, err = getEnvInt("DASHBOARD_PERIOD", 30); err != nil {
		return nil, err
	}
	if cfg.Dashboard.MaxPeriod, err = getEnvInt("DASHBOARD_MAX_PERIOD", 365); err != nil {
		return nil, err
	}
	cfg.Dashboard.StatusName = getEnv("DASHBOARD_STATUS_NAME", "Detect and Locate")
	cfg.Dashboard.Table = getEnv("DASHBOARD_TABLE", "dnasoffer_status")
	cfg.Dashboard.Timezone = getEnv("DASHBOARD_TIMEZONE", "Local")
	if cfg.Dashboard.CacheTTL, err = getEnvDuration("DASHBOARD_CACHE_TTL", 0); err != nil {
		return nil, err
	}
	if cfg.Dashboard.QueryTimeout, err = getEnvDuration("DASHBOARD_QUERY_TIMEOUT", 15*time.Second); err != nil {
		return nil, err
	}

	cfg.Log.Level = getEnv("LOG_LEVEL", "info")
	cfg.Log.Format = getEnv("LOG_FORMAT", "json")

	return cfg, nil
}

func (c *Config) Validate() error {
	var errs []error

	if c.HTTP.Addr == "" {
		errs = append(errs, errors.New("HTTP_ADDR must not be empty"))
	}
	if c.Dashboard.MaxPeriod < 1 {
		errs = append(errs, fmt.Errorf("DASHBOARD_MAX_PERIOD must be >= 1, got %d", c.Dashboard.MaxPeriod))
	}
	if c.Dashboard.Period < 1 || c.Dashboard.Period > c.Dashboard.MaxPeriod {
		errs = append(errs, fmt.Errorf("DASHBOARD_PERIOD must be between 1 and %d, got %d", c.Dashboard.MaxPeriod, c.Dashboard.Period))
	}
	if c.Dashboard.StatusName == "" {
		errs = append(errs, errors.New("DASHBOARD_STATUS_NAME must not be empty"))
	}
	if c.Dashboard.Table == "" {
		errs = append(errs, errors.New("DASHBOARD_TABLE must not be empty"))
	}
	if c.Dashboard.CacheTTL < 0 {
		errs = append(errs, errors.New("DASHBOARD_CACHE_TTL must not be negative"))
	}
	if _, err := c.Dashboard.Location(); err != nil {
		errs = append(errs, fmt.Errorf("DASHBOARD_TIMEZONE: %w", err))
	}

	return errors.Join(errs...)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid integer %q", key, raw)
	}
	return v, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid duration %q", key, raw)
	}
	return v, nil
}
