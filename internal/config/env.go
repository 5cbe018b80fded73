package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// EnvConfig mirrors Config for cleanenv. Variables that are not set leave
// the pre-filled values untouched.
type EnvConfig struct {
	StorageDriver  string        `env:"NOTEKEEPER_STORAGE"`
	DatabasePath   string        `env:"NOTEKEEPER_DATABASE_PATH"`
	RedisAddr      string        `env:"NOTEKEEPER_REDIS_ADDR"`
	RedisDB        int           `env:"NOTEKEEPER_REDIS_DB"`
	StorageTimeout time.Duration `env:"NOTEKEEPER_STORAGE_TIMEOUT"`
	LogLevel       string        `env:"NOTEKEEPER_LOG_LEVEL"`
	LogPretty      bool          `env:"NOTEKEEPER_LOG_PRETTY"`
}

// dotenvFiles is a test seam; godotenv never overrides variables that are
// already present in the environment.
var dotenvFiles = []string{".env"}

func parseEnv(cfg *Config) error {
	_ = godotenv.Load(dotenvFiles...)

	ec := EnvConfig{
		StorageDriver:  cfg.StorageDriver,
		DatabasePath:   cfg.DatabasePath,
		RedisAddr:      cfg.RedisAddr,
		RedisDB:        cfg.RedisDB,
		StorageTimeout: cfg.StorageTimeout,
		LogLevel:       cfg.LogLevel,
		LogPretty:      cfg.LogPretty,
	}
	if err := cleanenv.ReadEnv(&ec); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}

	cfg.StorageDriver = ec.StorageDriver
	cfg.DatabasePath = ec.DatabasePath
	cfg.RedisAddr = ec.RedisAddr
	cfg.RedisDB = ec.RedisDB
	cfg.StorageTimeout = ec.StorageTimeout
	cfg.LogLevel = ec.LogLevel
	cfg.LogPretty = ec.LogPretty
	return nil
}
