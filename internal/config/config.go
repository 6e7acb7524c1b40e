// Package config provides layered configuration: built-in defaults, an
// optional TOML file, then environment variable overrides.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
)

// Default limits.
const (
	DefaultAddr         = ":8080"
	DefaultDBPath       = "jsonformatter.db"
	DefaultRateLimit    = 60      // requests per minute per client
	DefaultMaxBodyBytes = 1 << 20 // 1 MiB request cap
	DefaultIndent       = 2
	DefaultCacheSize    = 256
)

// Config holds all configuration for the server.
type Config struct {
	Addr          string `toml:"addr"`            // JSONFMT_ADDR
	Env           string `toml:"env"`             // JSONFMT_ENV: development or production
	DBPath        string `toml:"db_path"`         // JSONFMT_DB, empty = in-memory store
	RateLimit     int    `toml:"rate_limit"`      // JSONFMT_RATE_LIMIT, requests/minute
	MaxBodyBytes  int64  `toml:"max_body_bytes"`  // JSONFMT_MAX_BODY_BYTES
	DefaultIndent int    `toml:"default_indent"`  // JSONFMT_DEFAULT_INDENT
	CacheSize     int    `toml:"cache_size"`      // JSONFMT_CACHE_SIZE
	CSRFKey       string `toml:"csrf_key"`        // JSONFMT_CSRF_KEY

	LogLevel      string `toml:"log_level"`       // LOG_LEVEL
	LogFile       string `toml:"log_file"`        // LOG_FILE, empty = stderr
	LogMaxSizeMB  int    `toml:"log_max_size_mb"` // LOG_MAX_SIZE_MB
	LogMaxBackups int    `toml:"log_max_backups"` // LOG_MAX_BACKUPS
	LogMaxAgeDays int    `toml:"log_max_age"`     // LOG_MAX_AGE_DAYS
	LogCompress   bool   `toml:"log_compress"`    // LOG_COMPRESS
}

// Load builds the configuration. Precedence, lowest to highest: defaults,
// the TOML file named by JSONFMT_CONFIG, individual env vars.
func Load() (*Config, error) {
	cfg := &Config{
		Addr:          DefaultAddr,
		Env:           "development",
		DBPath:        DefaultDBPath,
		RateLimit:     DefaultRateLimit,
		MaxBodyBytes:  DefaultMaxBodyBytes,
		DefaultIndent: DefaultIndent,
		CacheSize:     DefaultCacheSize,
		LogLevel:      "info",
		LogMaxSizeMB:  10,
		LogMaxBackups: 5,
		LogMaxAgeDays: 28,
		LogCompress:   true,
	}

	if path := os.Getenv("JSONFMT_CONFIG"); path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("config file %s: %w", path, err)
		}
	}

	cfg.Addr = getEnvString("JSONFMT_ADDR", cfg.Addr)
	cfg.Env = getEnvString("JSONFMT_ENV", cfg.Env)
	cfg.DBPath = getEnvString("JSONFMT_DB", cfg.DBPath)
	cfg.RateLimit = getEnvInt("JSONFMT_RATE_LIMIT", cfg.RateLimit)
	cfg.MaxBodyBytes = getEnvInt64("JSONFMT_MAX_BODY_BYTES", cfg.MaxBodyBytes)
	cfg.DefaultIndent = getEnvInt("JSONFMT_DEFAULT_INDENT", cfg.DefaultIndent)
	cfg.CacheSize = getEnvInt("JSONFMT_CACHE_SIZE", cfg.CacheSize)
	cfg.CSRFKey = getEnvString("JSONFMT_CSRF_KEY", cfg.CSRFKey)

	cfg.LogLevel = getEnvString("LOG_LEVEL", cfg.LogLevel)
	cfg.LogFile = getEnvString("LOG_FILE", cfg.LogFile)
	cfg.LogMaxSizeMB = getEnvInt("LOG_MAX_SIZE_MB", cfg.LogMaxSizeMB)
	cfg.LogMaxBackups = getEnvInt("LOG_MAX_BACKUPS", cfg.LogMaxBackups)
	cfg.LogMaxAgeDays = getEnvInt("LOG_MAX_AGE_DAYS", cfg.LogMaxAgeDays)
	cfg.LogCompress = getEnvBool("LOG_COMPRESS", cfg.LogCompress)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations the server cannot run with.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("addr must not be empty")
	}
	if c.Env != "development" && c.Env != "production" {
		return fmt.Errorf("env must be development or production, got %q", c.Env)
	}
	if c.RateLimit <= 0 {
		return fmt.Errorf("rate_limit must be positive, got %d", c.RateLimit)
	}
	if c.MaxBodyBytes <= 0 {
		return fmt.Errorf("max_body_bytes must be positive, got %d", c.MaxBodyBytes)
	}
	if c.DefaultIndent < 0 || c.DefaultIndent > 10 {
		return fmt.Errorf("default_indent must be 0..10, got %d", c.DefaultIndent)
	}
	if c.CacheSize <= 0 {
		return fmt.Errorf("cache_size must be positive, got %d", c.CacheSize)
	}
	return nil
}

// IsProduction reports whether the server runs with production settings.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnvString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvInt64(key string, defaultVal int64) int64 {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.ParseInt(v, 10, 64); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if v := os.Getenv(key); v != "" {
		switch v {
		case "1", "true", "yes", "on":
			return true
		case "0", "false", "no", "off":
			return false
		}
	}
	return defaultVal
}
