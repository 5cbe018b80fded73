package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/notekeeper/internal/logging"
	"github.com/dmitrijs2005/notekeeper/internal/models"
	"github.com/dmitrijs2005/notekeeper/internal/services"
)

type App struct {
	authService services.AuthService
	noteService services.NoteService
	log         logging.Logger
	session     models.Session
	timeout     time.Duration
	reader      *bufio.Reader
	out         io.Writer
}

// NewApp builds the client over the given services. timeout bounds every
// storage-backed call; zero means no bound.
func NewApp(auth services.AuthService, notes services.NoteService, log logging.Logger, timeout time.Duration, in io.Reader, out io.Writer) *App {
	return &App{
		authService: auth,
		noteService: notes,
		log:         log,
		timeout:     timeout,
		reader:      bufio.NewReader(in),
		out:         out,
	}
}

// Run restores the session and serves the REPL until exit or end of input.
func (a *App) Run(ctx context.Context) error {
	opCtx, cancel := a.opContext(ctx)
	s, err := a.authService.Bootstrap(opCtx)
	cancel()
	if err != nil {
		return fmt.Errorf("bootstrap: %w", err)
	}
	a.session = s

	watchCtx, stopWatch := context.WithCancel(ctx)
	defer stopWatch()
	go a.StartSessionWatcher(watchCtx)

	a.println("Welcome to notekeeper (type 'help' for commands)")
	if a.isLoggedIn() {
		a.println("Logged in as " + a.session.User.Username)
	}

	runREPL(ctx, a, a.getStatus, a.reader)
	return nil
}

func (a *App) isLoggedIn() bool {
	return a.session.Active()
}

func (a *App) getStatus() string {
	if !a.isLoggedIn() {
		return ""
	}
	return "(" + a.session.User.Username + ")"
}

// StartSessionWatcher logs every session switch until ctx is done.
func (a *App) StartSessionWatcher(ctx context.Context) {
	for s := range a.authService.Watch(ctx) {
		if s.Active() {
			a.log.Info(ctx, "session switched", "email", s.Email())
		} else {
			a.log.Info(ctx, "session cleared")
		}
	}
}

func (a *App) opContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, a.timeout)
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

// fail prints the user-facing message for err and returns err.
func (a *App) fail(err error) error {
	a.println(userMessage(err))
	return err
}
