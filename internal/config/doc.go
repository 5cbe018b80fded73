// Package config loads runtime configuration for the notekeeper CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via -c or -config.
//  3. Environment variables (NOTEKEEPER_*), optionally from a .env file.
//  4. Command-line flags, which override everything else.
//
// Supported flags
//
//	-s string   storage driver: sqlite, memory or redis
//	-d string   path of the SQLite database file
//	-r string   redis address (host:port)
//	-t int      storage operation timeout (seconds)
//	-l string   log level: debug, info, warn, error
//
// # JSON schema
//
// Durations use timex.Duration, so "5s" and integer nanoseconds both work:
//
//	{
//	  "storage_driver": "sqlite",
//	  "database_path": "notes.db",
//	  "redis_addr": "127.0.0.1:6379",
//	  "redis_db": 0,
//	  "storage_timeout": "5s",
//	  "log_level": "info",
//	  "log_pretty": true
//	}
package config
