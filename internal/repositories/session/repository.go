// Package session persists the logged-in user snapshot.
package session

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/notekeeper/internal/common"
	"github.com/dmitrijs2005/notekeeper/internal/models"
	"github.com/dmitrijs2005/notekeeper/internal/repositories/kv"
)

type Repository interface {
	Get(ctx context.Context) (models.User, error)
	Set(ctx context.Context, u models.User) error
	Clear(ctx context.Context) error
}

type kvRepository struct {
	store kv.Store
}

func NewRepository(store kv.Store) Repository {
	return &kvRepository{store: store}
}

// Get returns the stored snapshot or common.ErrNoSession.
func (r *kvRepository) Get(ctx context.Context) (models.User, error) {
	u, exists, err := kv.GetJSON[models.User](ctx, r.store, common.SessionKey)
	if err != nil {
		return models.User{}, err
	}
	if !exists || u.Email == "" {
		return models.User{}, common.ErrNoSession
	}
	return u, nil
}

func (r *kvRepository) Set(ctx context.Context, u models.User) error {
	if err := kv.SetJSON(ctx, r.store, common.SessionKey, u); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Clear removes the snapshot. Clearing an absent session succeeds.
func (r *kvRepository) Clear(ctx context.Context) error {
	if err := r.store.Remove(ctx, common.SessionKey); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
