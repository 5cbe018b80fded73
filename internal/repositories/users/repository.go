// Package users persists the account directory: one JSON array of user
// records under a single key.
package users

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/notekeeper/internal/common"
	"github.com/dmitrijs2005/notekeeper/internal/models"
	"github.com/dmitrijs2005/notekeeper/internal/repositories/kv"
	"github.com/dmitrijs2005/notekeeper/internal/syncx"
)

type Repository interface {
	All(ctx context.Context) ([]models.User, error)
	FindByEmail(ctx context.Context, email string) (models.User, error)
	Register(ctx context.Context, u models.User) (models.User, error)
	UpdateProfile(ctx context.Context, email, username, password string) (models.User, error)
	SeedIfEmpty(ctx context.Context, u models.User) (bool, error)
}

type kvRepository struct {
	store kv.Store
	locks *syncx.KeyedLocker
}

// NewRepository returns a directory stored under common.UsersKey. locks must
// be shared by every writer of the same store.
func NewRepository(store kv.Store, locks *syncx.KeyedLocker) Repository {
	return &kvRepository{store: store, locks: locks}
}

func (r *kvRepository) All(ctx context.Context) ([]models.User, error) {
	list, _, err := kv.GetJSON[[]models.User](ctx, r.store, common.UsersKey)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []models.User{}
	}
	return list, nil
}

func (r *kvRepository) FindByEmail(ctx context.Context, email string) (models.User, error) {
	list, err := r.All(ctx)
	if err != nil {
		return models.User{}, err
	}
	if i := indexOf(list, email); i >= 0 {
		return list[i], nil
	}
	return models.User{}, common.ErrNotFound
}

// Register appends u with its email trimmed. The whole sequence is written
// back with one Set.
func (r *kvRepository) Register(ctx context.Context, u models.User) (models.User, error) {
	u.Email = models.NormalizeEmail(u.Email)

	_, err := kv.MutateJSON(ctx, r.store, r.locks, common.UsersKey,
		func(list []models.User, _ bool) ([]models.User, bool, error) {
			if indexOf(list, u.Email) >= 0 {
				return nil, false, common.ErrDuplicateEmail
			}
			return append(list, u), true, nil
		})
	if err != nil {
		return models.User{}, fmt.Errorf("register %s: %w", u.Email, err)
	}
	return u, nil
}

// UpdateProfile replaces username and password with their trimmed values,
// skipping the ones that are empty after trimming.
func (r *kvRepository) UpdateProfile(ctx context.Context, email, username, password string) (models.User, error) {
	username = strings.TrimSpace(username)
	password = strings.TrimSpace(password)

	var updated models.User
	_, err := kv.MutateJSON(ctx, r.store, r.locks, common.UsersKey,
		func(list []models.User, _ bool) ([]models.User, bool, error) {
			i := indexOf(list, email)
			if i < 0 {
				return nil, false, common.ErrNotFound
			}
			if username != "" {
				list[i].Username = username
			}
			if password != "" {
				list[i].Password = password
			}
			updated = list[i]
			return list, true, nil
		})
	if err != nil {
		return models.User{}, fmt.Errorf("update profile %s: %w", models.NormalizeEmail(email), err)
	}
	return updated, nil
}

// SeedIfEmpty writes u as the only account when the directory holds none.
// It reports whether u was written.
func (r *kvRepository) SeedIfEmpty(ctx context.Context, u models.User) (bool, error) {
	seeded := false
	_, err := kv.MutateJSON(ctx, r.store, r.locks, common.UsersKey,
		func(list []models.User, _ bool) ([]models.User, bool, error) {
			if len(list) > 0 {
				return list, false, nil
			}
			seeded = true
			return []models.User{u}, true, nil
		})
	if err != nil {
		return false, fmt.Errorf("seed users: %w", err)
	}
	return seeded, nil
}

func indexOf(list []models.User, email string) int {
	email = models.NormalizeEmail(email)
	for i, u := range list {
		if models.NormalizeEmail(u.Email) == email {
			return i
		}
	}
	return -1
}
