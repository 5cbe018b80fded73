package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/notekeeper/internal/common"
	"github.com/dmitrijs2005/notekeeper/internal/logging"
	"github.com/dmitrijs2005/notekeeper/internal/models"
	"github.com/dmitrijs2005/notekeeper/internal/repositories/kv"
	"github.com/dmitrijs2005/notekeeper/internal/repositories/notes"
	"github.com/dmitrijs2005/notekeeper/internal/repositories/session"
	"github.com/dmitrijs2005/notekeeper/internal/repositories/users"
	"github.com/dmitrijs2005/notekeeper/internal/services"
	"github.com/dmitrijs2005/notekeeper/internal/syncx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type harness struct {
	store kv.Store
	auth  services.AuthService
	notes services.NoteService
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	old := isTerminal
	isTerminal = func(int) bool { return false }
	t.Cleanup(func() { isTerminal = old })

	store := kv.NewMemoryStore()
	locks := syncx.NewKeyedLocker()
	log := logging.Nop()
	return &harness{
		store: store,
		auth:  services.NewAuthService(users.NewRepository(store, locks), session.NewRepository(store), log),
		notes: services.NewNoteService(notes.NewRepository(store, locks), log),
	}
}

func (h *harness) app(script ...string) (*App, *bytes.Buffer) {
	out := &bytes.Buffer{}
	in := strings.NewReader(strings.Join(script, "\n") + "\n")
	return NewApp(h.auth, h.notes, logging.Nop(), time.Second, in, out), out
}

func silenceREPL(t *testing.T) {
	t.Helper()
	orig := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = orig })
}

func TestRun_FirstRunSession(t *testing.T) {
	silenceREPL(t)
	h := newHarness(t)

	app, out := h.app(
		"whoami",
		"list", "", "", "",
		"add", "Groceries", "eggs", "milk", "", "Personal",
		"list", "Personal", "", "asc",
		"logout",
		"login", "demo@example.com", "password",
		"exit",
	)
	require.NoError(t, app.Run(context.Background()))

	text := out.String()
	assert.Contains(t, text, "Logged in as Dimitar")
	assert.Contains(t, text, "Dimitar <demo@example.com>")
	assert.Contains(t, text, "[Work]  Reminder")
	assert.Contains(t, text, "[Personal]  (untitled)")
	assert.Contains(t, text, "[Personal]  Groceries")
	assert.Contains(t, text, "Logged out.")
	assert.Contains(t, text, "Welcome back, Dimitar!")

	list, err := h.notes.List(context.Background(), models.Session{User: services.DemoUser})
	require.NoError(t, err)
	require.Len(t, list, 5)
	assert.Equal(t, "Groceries", list[0].Title)
	assert.Equal(t, "eggs\nmilk", list[0].Text)
}

func TestRegister_CommandMessages(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	app, out := h.app("ann@example.com", "Ann", "secret1")
	require.NoError(t, app.Register(ctx))
	assert.True(t, app.isLoggedIn())
	assert.Contains(t, out.String(), "Account created. Welcome, Ann!")

	app, out = h.app("ann@example.com", "Annie", "secret2")
	err := app.Register(ctx)
	require.ErrorIs(t, err, common.ErrDuplicateEmail)
	assert.Contains(t, out.String(), "This email is already registered.")
	assert.False(t, app.isLoggedIn())

	app, out = h.app("nope", "Annie", "secret2")
	require.ErrorIs(t, app.Register(ctx), common.ErrValidation)
	assert.Contains(t, out.String(), "Please enter a valid email address.")
}

func TestLogin_CommandMessages(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	app, out := h.app("demo@example.com", "password")
	require.ErrorIs(t, app.Login(ctx), common.ErrNoUsers)
	assert.Contains(t, out.String(), "No users found. Please create an account first.")

	_, err := h.auth.Bootstrap(ctx)
	require.NoError(t, err)

	app, out = h.app("demo@example.com", "wrongpass")
	require.ErrorIs(t, app.Login(ctx), common.ErrInvalidCredentials)
	assert.Contains(t, out.String(), "Email or password is incorrect.")
}

func loggedInApp(t *testing.T, h *harness, script ...string) (*App, *bytes.Buffer) {
	t.Helper()
	s, err := h.auth.Bootstrap(context.Background())
	require.NoError(t, err)
	app, out := h.app(script...)
	app.session = s
	return app, out
}

func TestShow(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	app, out := loggedInApp(t, h)
	n, err := h.notes.Create(ctx, app.session, models.NoteInput{Title: "Plan", Text: "step one", Category: "School"})
	require.NoError(t, err)

	app, out = loggedInApp(t, h, n.ID)
	require.NoError(t, app.Show(ctx))
	assert.Contains(t, out.String(), "Title:    Plan")
	assert.Contains(t, out.String(), "Category: School")
	assert.Contains(t, out.String(), "step one")
	assert.NotContains(t, out.String(), "Updated:")

	app, out = loggedInApp(t, h, "nonexistent-id")
	require.ErrorIs(t, app.Show(ctx), common.ErrNotFound)
	assert.Contains(t, out.String(), "Note not found.")
}

func TestEdit_EmptyAnswersKeepValues(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	app, _ := loggedInApp(t, h)
	n, err := h.notes.Create(ctx, app.session, models.NoteInput{Title: "Plan", Text: "step one", Category: "School"})
	require.NoError(t, err)

	app, out := loggedInApp(t, h, n.ID, "", "step two", "", "")
	require.NoError(t, app.Edit(ctx))
	assert.Contains(t, out.String(), "Note updated.")

	got, err := h.notes.Get(ctx, app.session, n.ID)
	require.NoError(t, err)
	assert.Equal(t, "Plan", got.Title)
	assert.Equal(t, "step two", got.Text)
	assert.Equal(t, "School", got.Category)
	assert.NotNil(t, got.Updated)
}

func TestDelete_ConfirmAndCancel(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	app, _ := loggedInApp(t, h)
	n, err := h.notes.Create(ctx, app.session, models.NoteInput{Text: "bye"})
	require.NoError(t, err)

	app, out := loggedInApp(t, h, n.ID, "n")
	require.NoError(t, app.Delete(ctx))
	assert.Contains(t, out.String(), "Cancelled.")
	_, err = h.notes.Get(ctx, app.session, n.ID)
	require.NoError(t, err)

	app, out = loggedInApp(t, h, n.ID, "y")
	require.NoError(t, app.Delete(ctx))
	assert.Contains(t, out.String(), "Note deleted.")
	_, err = h.notes.Get(ctx, app.session, n.ID)
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestProfile_UpdatesPrompt(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	app, out := loggedInApp(t, h, "Dimi", "")
	require.NoError(t, app.Profile(ctx))
	assert.Contains(t, out.String(), "Profile updated.")
	assert.Equal(t, "(Dimi)", app.getStatus())

	cur, err := h.auth.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Dimi", cur.User.Username)
	assert.Equal(t, "password", cur.User.Password)

	app, out = loggedInApp(t, h, "", "123")
	require.ErrorIs(t, app.Profile(ctx), common.ErrValidation)
	assert.Contains(t, out.String(), "Password must be at least 6 characters.")
}

func TestList_FilterAndEmpty(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	app, out := loggedInApp(t, h, "School", "share", "")
	require.NoError(t, app.List(ctx))
	assert.Contains(t, out.String(), "Narrative")
	assert.NotContains(t, out.String(), "Reminder")

	app, out = loggedInApp(t, h, "Hobby", "", "sideways")
	require.NoError(t, app.List(ctx))
	assert.Contains(t, out.String(), "Unknown order, using desc.")
	assert.Contains(t, out.String(), "No notes.")
}

func TestNotesCommands_WithoutSession(t *testing.T) {
	h := newHarness(t)

	app, out := h.app("", "", "")
	require.ErrorIs(t, app.List(context.Background()), common.ErrNoSession)
	assert.Contains(t, out.String(), "Please log in first.")
}

func TestGetStatus(t *testing.T) {
	app := &App{}
	assert.Equal(t, "", app.getStatus())
	assert.False(t, app.isLoggedIn())

	app.session = models.Session{User: models.User{Email: "a@b.c", Username: "Ann"}}
	assert.Equal(t, "(Ann)", app.getStatus())
	assert.True(t, app.isLoggedIn())
}
