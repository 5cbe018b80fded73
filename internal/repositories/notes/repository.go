// Package notes persists one note sequence per user. The sequence is kept
// most-recent-first and always written back whole.
package notes

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/notekeeper/internal/common"
	"github.com/dmitrijs2005/notekeeper/internal/models"
	"github.com/dmitrijs2005/notekeeper/internal/repositories/kv"
	"github.com/dmitrijs2005/notekeeper/internal/syncx"
)

// MutateFunc edits a user's sequence. exists is false when nothing was
// stored yet. Returning write=false leaves storage untouched.
type MutateFunc func(list []models.Note, exists bool) (next []models.Note, write bool, err error)

type Repository interface {
	Read(ctx context.Context, email string) (list []models.Note, exists bool, err error)
	Mutate(ctx context.Context, email string, fn MutateFunc) ([]models.Note, error)
}

type kvRepository struct {
	store kv.Store
	locks *syncx.KeyedLocker
}

func NewRepository(store kv.Store, locks *syncx.KeyedLocker) Repository {
	return &kvRepository{store: store, locks: locks}
}

// Key is the storage key holding the notes of email.
func Key(email string) string {
	return common.NotesKeyPrefix + models.NormalizeEmail(email)
}

func (r *kvRepository) Read(ctx context.Context, email string) ([]models.Note, bool, error) {
	list, exists, err := kv.GetJSON[[]models.Note](ctx, r.store, Key(email))
	if err != nil {
		return nil, false, fmt.Errorf("read notes: %w", err)
	}
	if list == nil {
		list = []models.Note{}
	}
	return list, exists, nil
}

// Mutate runs fn under the lock of the user's key, so concurrent edits of
// one user's notes are applied in turn.
func (r *kvRepository) Mutate(ctx context.Context, email string, fn MutateFunc) ([]models.Note, error) {
	list, err := kv.MutateJSON(ctx, r.store, r.locks, Key(email), kv.MutateFunc[[]models.Note](fn))
	if err != nil {
		return nil, fmt.Errorf("write notes: %w", err)
	}
	if list == nil {
		list = []models.Note{}
	}
	return list, nil
}
