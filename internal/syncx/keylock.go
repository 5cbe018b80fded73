// Package syncx provides per-key serialization for read-modify-write cycles
// against the key-value store.
package syncx

import (
	"context"
	"sync"

	"golang.org/x/sync/semaphore"
)

type keyEntry struct {
	sem  *semaphore.Weighted
	refs int
}

// KeyedLocker hands out one exclusive lock per key. Waiters for the same key
// queue; different keys never block each other. Entries are dropped once no
// holder or waiter references them. The zero value is ready to use.
type KeyedLocker struct {
	mu    sync.Mutex
	locks map[string]*keyEntry
}

func NewKeyedLocker() *KeyedLocker {
	return &KeyedLocker{}
}

// Lock blocks until key is free or ctx is done. The returned unlock func is
// safe to call more than once.
func (l *KeyedLocker) Lock(ctx context.Context, key string) (unlock func(), err error) {
	e := l.acquireEntry(key)

	if err := e.sem.Acquire(ctx, 1); err != nil {
		l.releaseEntry(key, e)
		return nil, err
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			e.sem.Release(1)
			l.releaseEntry(key, e)
		})
	}, nil
}

// WithLock runs fn while holding the lock for key.
func (l *KeyedLocker) WithLock(ctx context.Context, key string, fn func(ctx context.Context) error) error {
	unlock, err := l.Lock(ctx, key)
	if err != nil {
		return err
	}
	defer unlock()
	return fn(ctx)
}

func (l *KeyedLocker) acquireEntry(key string) *keyEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.locks == nil {
		l.locks = make(map[string]*keyEntry)
	}
	e, ok := l.locks[key]
	if !ok {
		e = &keyEntry{sem: semaphore.NewWeighted(1)}
		l.locks[key] = e
	}
	e.refs++
	return e
}

func (l *KeyedLocker) releaseEntry(key string, e *keyEntry) {
	l.mu.Lock()
	defer l.mu.Unlock()

	e.refs--
	if e.refs == 0 {
		delete(l.locks, key)
	}
}

func (l *KeyedLocker) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
