// Package services holds the application logic behind the CLI: account
// management with an explicit session, and per-user note operations.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/notekeeper/internal/common"
	"github.com/dmitrijs2005/notekeeper/internal/logging"
	"github.com/dmitrijs2005/notekeeper/internal/models"
	"github.com/dmitrijs2005/notekeeper/internal/repositories/session"
	"github.com/dmitrijs2005/notekeeper/internal/repositories/users"
	"github.com/imkira/go-observer"
)

// DemoUser is written on first run when the directory is empty.
var DemoUser = models.User{Email: "demo@example.com", Username: "Dimitar", Password: "password"}

// AuthService manages accounts and the persisted session.
//
// Contract:
//   - Bootstrap: seed the demo account on an empty directory and log it in,
//     otherwise restore the persisted session (if any).
//   - Register: validate, create the account and log it in.
//   - Login: validate and match email and password exactly.
//   - Logout: drop the session; the account stays.
//   - Current: the persisted session or common.ErrNoSession.
//   - UpdateProfile: change username/password of the session's user and
//     refresh the session snapshot.
//   - Watch: stream of session changes until ctx is done.
//
// Every call reads storage again; nothing is cached between calls.
type AuthService interface {
	Bootstrap(ctx context.Context) (models.Session, error)
	Register(ctx context.Context, email, username, password string) (models.Session, error)
	Login(ctx context.Context, email, password string) (models.Session, error)
	Logout(ctx context.Context) error
	Current(ctx context.Context) (models.Session, error)
	UpdateProfile(ctx context.Context, s models.Session, username, password string) (models.Session, error)
	Watch(ctx context.Context) <-chan models.Session
}

type authService struct {
	users    users.Repository
	sessions session.Repository
	log      logging.Logger
	prop     observer.Property
}

func NewAuthService(usersRepo users.Repository, sessionRepo session.Repository, log logging.Logger) AuthService {
	return &authService{
		users:    usersRepo,
		sessions: sessionRepo,
		log:      log.With("component", "auth"),
		prop:     observer.NewProperty(models.Session{}),
	}
}

// Bootstrap seeds and logs in the demo account on an empty directory. With
// accounts present it restores the saved session only; a missing session is
// not replaced by the first account, so a logout survives a restart.
func (a *authService) Bootstrap(ctx context.Context) (models.Session, error) {
	seeded, err := a.users.SeedIfEmpty(ctx, DemoUser)
	if err != nil {
		return models.Session{}, a.fail(ctx, "bootstrap", err)
	}

	if seeded {
		a.log.Info(ctx, "seeded demo account", "email", DemoUser.Email)
		return a.activate(ctx, "bootstrap", DemoUser)
	}

	s, err := a.Current(ctx)
	if errors.Is(err, common.ErrNoSession) {
		return models.Session{}, nil
	}
	if err != nil {
		return models.Session{}, err
	}
	a.publish(s)
	return s, nil
}

func (a *authService) Register(ctx context.Context, email, username, password string) (models.Session, error) {
	if err := validateRegistration(email, username, password); err != nil {
		return models.Session{}, err
	}

	u, err := a.users.Register(ctx, models.User{
		Email:    models.NormalizeEmail(email),
		Username: strings.TrimSpace(username),
		Password: password,
	})
	if err != nil {
		return models.Session{}, a.fail(ctx, "register", err)
	}

	a.log.Info(ctx, "account registered", "email", u.Email)
	return a.activate(ctx, "register", u)
}

func (a *authService) Login(ctx context.Context, email, password string) (models.Session, error) {
	if err := validateLogin(email, password); err != nil {
		return models.Session{}, err
	}

	all, err := a.users.All(ctx)
	if err != nil {
		return models.Session{}, a.fail(ctx, "login", err)
	}
	if len(all) == 0 {
		return models.Session{}, common.ErrNoUsers
	}

	email = models.NormalizeEmail(email)
	for _, u := range all {
		if models.NormalizeEmail(u.Email) == email && u.Password == password {
			return a.activate(ctx, "login", u)
		}
	}

	a.log.Debug(ctx, "login rejected", "email", email)
	return models.Session{}, common.ErrInvalidCredentials
}

func (a *authService) Logout(ctx context.Context) error {
	if err := a.sessions.Clear(ctx); err != nil {
		return a.fail(ctx, "logout", err)
	}
	a.publish(models.Session{})
	return nil
}

func (a *authService) Current(ctx context.Context) (models.Session, error) {
	u, err := a.sessions.Get(ctx)
	if err != nil {
		if errors.Is(err, common.ErrNoSession) {
			return models.Session{}, err
		}
		return models.Session{}, a.fail(ctx, "current", err)
	}
	return models.Session{User: u}, nil
}

func (a *authService) UpdateProfile(ctx context.Context, s models.Session, username, password string) (models.Session, error) {
	if !s.Active() {
		return models.Session{}, common.ErrNoSession
	}
	if err := validateProfile(username, password); err != nil {
		return models.Session{}, err
	}

	u, err := a.users.UpdateProfile(ctx, s.Email(), username, password)
	if err != nil {
		return models.Session{}, a.fail(ctx, "update profile", err)
	}
	return a.activate(ctx, "update profile", u)
}

// Watch delivers every session change published after the call. The channel
// is closed when ctx is done.
func (a *authService) Watch(ctx context.Context) <-chan models.Session {
	stream := a.prop.Observe()

	out := make(chan models.Session)
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case <-stream.Changes():
				s := stream.Next().(models.Session)

				select {
				case <-ctx.Done():
					return
				case out <- s:
				}
			}
		}
	}()
	return out
}

func (a *authService) activate(ctx context.Context, op string, u models.User) (models.Session, error) {
	if err := a.sessions.Set(ctx, u); err != nil {
		return models.Session{}, a.fail(ctx, op, err)
	}
	s := models.Session{User: u}
	a.publish(s)
	return s, nil
}

func (a *authService) publish(s models.Session) {
	a.prop.Update(s)
}

func (a *authService) fail(ctx context.Context, op string, err error) error {
	if errors.Is(err, common.ErrStorage) {
		a.log.Error(ctx, "storage failure", "op", op, "error", err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
