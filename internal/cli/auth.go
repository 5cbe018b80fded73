package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/notekeeper/internal/common"
	"github.com/dmitrijs2005/notekeeper/internal/models"
)

// getSimpleText and getPassword are indirections over the input helpers so
// tests can script prompts.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
)

// Register prompts for email, username and password, creates the account
// and logs it in.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	username, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, "Enter password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	opCtx, cancel := a.opContext(ctx)
	defer cancel()

	s, err := a.authService.Register(opCtx, email, username, string(password))
	if err != nil {
		return a.fail(err)
	}

	a.session = s
	a.println("Account created. Welcome, " + s.User.Username + "!")
	return nil
}

// Login prompts for credentials and activates the matching account.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, "Enter password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	opCtx, cancel := a.opContext(ctx)
	defer cancel()

	s, err := a.authService.Login(opCtx, email, string(password))
	if err != nil {
		return a.fail(err)
	}

	a.session = s
	a.println("Welcome back, " + s.User.Username + "!")
	return nil
}

// Logout forgets the session. The account and its notes stay stored.
func (a *App) Logout(ctx context.Context) error {
	opCtx, cancel := a.opContext(ctx)
	defer cancel()

	if err := a.authService.Logout(opCtx); err != nil {
		return a.fail(err)
	}
	a.session = models.Session{}
	a.println("Logged out.")
	return nil
}

// Profile changes username and/or password. Empty answers keep the current
// value.
func (a *App) Profile(ctx context.Context) error {
	username, err := getSimpleText(a.reader, fmt.Sprintf("New username (empty keeps %q)", a.session.User.Username), a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, "New password (empty keeps current)", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	opCtx, cancel := a.opContext(ctx)
	defer cancel()

	s, err := a.authService.UpdateProfile(opCtx, a.session, username, string(password))
	if err != nil {
		return a.fail(err)
	}

	a.session = s
	a.println("Profile updated.")
	return nil
}

func (a *App) WhoAmI(ctx context.Context) error {
	a.println(fmt.Sprintf("%s <%s>", a.session.User.Username, a.session.Email()))
	return nil
}
