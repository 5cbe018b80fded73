package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/dmitrijs2005/notekeeper/internal/common"
	"github.com/dmitrijs2005/notekeeper/internal/logging"
	"github.com/dmitrijs2005/notekeeper/internal/repositories/kv"
	"github.com/dmitrijs2005/notekeeper/internal/repositories/notes"
	"github.com/dmitrijs2005/notekeeper/internal/repositories/session"
	"github.com/dmitrijs2005/notekeeper/internal/repositories/users"
	"github.com/dmitrijs2005/notekeeper/internal/syncx"
)

// brokenStore fails every Set, wrapping the failure the way real backends do.
type brokenStore struct {
	kv.Store
	failSet bool
}

func (b *brokenStore) Set(ctx context.Context, key, value string) error {
	if b.failSet {
		return fmt.Errorf("%w: set %s: %w", common.ErrStorage, key, errors.New("disk full"))
	}
	return b.Store.Set(ctx, key, value)
}

type fixture struct {
	store kv.Store
	auth  AuthService
	notes NoteService
	logs  *bytes.Buffer
}

func newFixture(t *testing.T, store kv.Store, opts ...NoteOption) *fixture {
	t.Helper()

	buf := &bytes.Buffer{}
	log := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	locks := syncx.NewKeyedLocker()

	return &fixture{
		store: store,
		auth:  NewAuthService(users.NewRepository(store, locks), session.NewRepository(store), log),
		notes: NewNoteService(notes.NewRepository(store, locks), log, opts...),
		logs:  buf,
	}
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}
