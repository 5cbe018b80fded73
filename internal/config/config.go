package config

import (
	"fmt"
	"os"
	"time"
)

const (
	DriverSQLite = "sqlite"
	DriverMemory = "memory"
	DriverRedis  = "redis"
)

// Config holds runtime settings for the notekeeper CLI.
type Config struct {
	StorageDriver  string
	DatabasePath   string
	RedisAddr      string
	RedisDB        int
	StorageTimeout time.Duration
	LogLevel       string
	LogPretty      bool
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.StorageDriver = DriverSQLite
	c.DatabasePath = "notes.db"
	c.RedisAddr = "127.0.0.1:6379"
	c.RedisDB = 0
	c.StorageTimeout = 5 * time.Second
	c.LogLevel = "warn"
	c.LogPretty = true
}

// Validate reports settings that cannot be used to open a store.
func (c *Config) Validate() error {
	switch c.StorageDriver {
	case DriverSQLite:
		if c.DatabasePath == "" {
			return fmt.Errorf("database path is required for the %s driver", c.StorageDriver)
		}
	case DriverRedis:
		if c.RedisAddr == "" {
			return fmt.Errorf("redis address is required for the %s driver", c.StorageDriver)
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unknown storage driver %q", c.StorageDriver)
	}
	if c.StorageTimeout <= 0 {
		return fmt.Errorf("storage timeout must be positive, got %s", c.StorageTimeout)
	}
	return nil
}

// LoadConfig builds a Config from os.Args and the process environment.
func LoadConfig() (*Config, error) {
	return load(os.Args[1:])
}

func load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
