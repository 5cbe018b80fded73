// Package kv is the key-value adapter underneath every notekeeper store.
//
// # Overview
//
// Store exposes Get/Set/Remove over string keys and string values. Each call
// is atomic on its own; callers never rely on multi-key transactions.
// Backends:
//
//   - SQLiteStore: the on-device default, a single kv table in a SQLite file
//   - MemoryStore: process-local map, for tests and throwaway sessions
//   - RedisStore : a local redis-server acting as the device store
//
// # Errors
//
// Get reports a missing key with ErrNotFound. Every backend failure is
// wrapped with common.ErrStorage so callers can match it with errors.Is
// without knowing the backend.
package kv
