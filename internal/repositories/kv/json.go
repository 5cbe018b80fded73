package kv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/notekeeper/internal/common"
	"github.com/dmitrijs2005/notekeeper/internal/syncx"
)

// GetJSON decodes the value under key into a T. exists is false when the key
// is absent; an undecodable value is reported as a storage error.
func GetJSON[T any](ctx context.Context, s Store, key string) (v T, exists bool, err error) {
	raw, err := s.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return v, false, nil
	}
	if err != nil {
		return v, false, err
	}
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return v, false, fmt.Errorf("%w: decode %s: %w", common.ErrStorage, key, err)
	}
	return v, true, nil
}

// SetJSON encodes v and stores it under key with a single Set.
func SetJSON[T any](ctx context.Context, s Store, key string, v T) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return s.Set(ctx, key, string(b))
}

// MutateFunc receives the current value and whether it existed. It returns
// the next value and whether it must be written. A non-nil error aborts the
// cycle without writing.
type MutateFunc[T any] func(cur T, exists bool) (next T, write bool, err error)

// MutateJSON runs a read-modify-write of the JSON value under key while
// holding the key's lock, so concurrent mutations of one key are applied one
// after another. It returns the value that is stored when it finishes.
func MutateJSON[T any](ctx context.Context, s Store, locks *syncx.KeyedLocker, key string, fn MutateFunc[T]) (T, error) {
	var result T

	err := locks.WithLock(ctx, key, func(ctx context.Context) error {
		cur, exists, err := GetJSON[T](ctx, s, key)
		if err != nil {
			return err
		}

		next, write, err := fn(cur, exists)
		if err != nil {
			return err
		}
		if !write {
			result = cur
			return nil
		}

		if err := SetJSON(ctx, s, key, next); err != nil {
			return err
		}
		result = next
		return nil
	})

	return result, err
}
