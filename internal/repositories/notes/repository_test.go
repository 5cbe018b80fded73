package notes

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/notekeeper/internal/common"
	"github.com/dmitrijs2005/notekeeper/internal/models"
	"github.com/dmitrijs2005/notekeeper/internal/repositories/kv"
	"github.com/dmitrijs2005/notekeeper/internal/syncx"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKey(t *testing.T) {
	assert.Equal(t, "notes_demo@example.com", Key(" demo@example.com "))
	assert.Equal(t, "notes_Demo@Example.com", Key("Demo@Example.com"))
}

func TestReadAbsent(t *testing.T) {
	r := NewRepository(kv.NewMemoryStore(), syncx.NewKeyedLocker())

	list, exists, err := r.Read(context.Background(), "demo@example.com")
	require.NoError(t, err)
	assert.False(t, exists)
	assert.Empty(t, list)
}

func TestMutateThenRead_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemoryStore()
	r := NewRepository(store, syncx.NewKeyedLocker())

	created := time.Date(2025, 3, 1, 10, 30, 0, 0, time.UTC)
	updated := created.Add(time.Hour)
	want := []models.Note{
		{ID: "b", Title: "", Text: "second", Category: "Personal", Created: created},
		{ID: "a", Title: "first", Text: "body", Category: "Work", Created: created, Updated: &updated},
	}

	_, err := r.Mutate(ctx, "demo@example.com", func(list []models.Note, exists bool) ([]models.Note, bool, error) {
		assert.False(t, exists)
		return want, true, nil
	})
	require.NoError(t, err)

	got, exists, err := r.Read(ctx, "demo@example.com")
	require.NoError(t, err)
	assert.True(t, exists)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("notes mismatch (-want +got):\n%s", diff)
	}

	raw, err := store.Get(ctx, "notes_demo@example.com")
	require.NoError(t, err)
	assert.Contains(t, raw, `"updated":null`)
}

func TestMutate_ErrorLeavesStorage(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemoryStore()
	r := NewRepository(store, syncx.NewKeyedLocker())
	require.NoError(t, store.Set(ctx, Key("a@b.c"), `[]`))

	_, err := r.Mutate(ctx, "a@b.c", func(list []models.Note, _ bool) ([]models.Note, bool, error) {
		return nil, false, common.ErrNotFound
	})
	require.True(t, errors.Is(err, common.ErrNotFound))

	raw, err := store.Get(ctx, Key("a@b.c"))
	require.NoError(t, err)
	assert.Equal(t, `[]`, raw)
}

func TestUsersAreIsolated(t *testing.T) {
	ctx := context.Background()
	r := NewRepository(kv.NewMemoryStore(), syncx.NewKeyedLocker())

	_, err := r.Mutate(ctx, "a@b.c", func(list []models.Note, _ bool) ([]models.Note, bool, error) {
		return append(list, models.Note{ID: "1", Text: "mine"}), true, nil
	})
	require.NoError(t, err)

	list, exists, err := r.Read(ctx, "x@y.z")
	require.NoError(t, err)
	assert.False(t, exists)
	assert.Empty(t, list)
}
