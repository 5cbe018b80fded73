package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/notekeeper/internal/common"
	"github.com/dmitrijs2005/notekeeper/internal/logging"
	"github.com/dmitrijs2005/notekeeper/internal/models"
	"github.com/dmitrijs2005/notekeeper/internal/repositories/notes"
	"github.com/google/uuid"
)

// demoNotes are written the first time a user's notes are listed.
var demoNotes = []models.NoteInput{
	{Title: "Reminder", Text: "Create design brief", Category: models.CategoryWork},
	{Title: "Dev Team", Text: "Get dev team involved early", Category: models.CategoryWork},
	{Title: "Narrative", Text: "Think what to share", Category: models.CategorySchool},
	{Title: "", Text: "Consider info digestibility", Category: models.CategoryPersonal},
}

// NoteService operates on the notes of the session's user. Every operation
// fails with common.ErrNoSession when the session is not active.
type NoteService interface {
	List(ctx context.Context, s models.Session) ([]models.Note, error)
	Get(ctx context.Context, s models.Session, id string) (models.Note, error)
	Create(ctx context.Context, s models.Session, in models.NoteInput) (models.Note, error)
	Update(ctx context.Context, s models.Session, id string, in models.NoteInput) (models.Note, error)
	Delete(ctx context.Context, s models.Session, id string) error
}

type NoteOption func(*noteService)

// WithClock replaces time.Now as the source of created/updated stamps.
func WithClock(now func() time.Time) NoteOption {
	return func(s *noteService) { s.now = now }
}

// WithIDGenerator replaces the UUID generator used for new notes.
func WithIDGenerator(newID func() string) NoteOption {
	return func(s *noteService) { s.newID = newID }
}

type noteService struct {
	repo  notes.Repository
	log   logging.Logger
	now   func() time.Time
	newID func() string
}

func NewNoteService(repo notes.Repository, log logging.Logger, opts ...NoteOption) NoteService {
	s := &noteService{
		repo:  repo,
		log:   log.With("component", "notes"),
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List returns the user's notes in stored order, most recent first. A user
// who never had notes gets the demo set, persisted before returning.
func (s *noteService) List(ctx context.Context, sess models.Session) ([]models.Note, error) {
	if !sess.Active() {
		return nil, common.ErrNoSession
	}

	list, exists, err := s.repo.Read(ctx, sess.Email())
	if err != nil {
		return nil, s.fail(ctx, "list notes", sess, err)
	}
	if exists {
		return list, nil
	}

	list, err = s.repo.Mutate(ctx, sess.Email(), func(cur []models.Note, exists bool) ([]models.Note, bool, error) {
		if exists {
			return cur, false, nil
		}
		return s.seed(s.stamp()), true, nil
	})
	if err != nil {
		return nil, s.fail(ctx, "seed notes", sess, err)
	}
	s.log.Info(ctx, "seeded demo notes", "owner", sess.Email(), "count", len(list))
	return list, nil
}

func (s *noteService) Get(ctx context.Context, sess models.Session, id string) (models.Note, error) {
	if !sess.Active() {
		return models.Note{}, common.ErrNoSession
	}

	list, _, err := s.repo.Read(ctx, sess.Email())
	if err != nil {
		return models.Note{}, s.fail(ctx, "get note", sess, err)
	}
	if i := indexOf(list, id); i >= 0 {
		return list[i], nil
	}
	return models.Note{}, common.ErrNotFound
}

// Create prepends a new note with trimmed fields. A user without stored
// notes gets the demo set first, as List would have written it.
func (s *noteService) Create(ctx context.Context, sess models.Session, in models.NoteInput) (models.Note, error) {
	if !sess.Active() {
		return models.Note{}, common.ErrNoSession
	}

	now := s.stamp()
	n := s.build(in, now)
	_, err := s.repo.Mutate(ctx, sess.Email(), func(cur []models.Note, exists bool) ([]models.Note, bool, error) {
		if !exists {
			cur = s.seed(now)
		}
		next := make([]models.Note, 0, len(cur)+1)
		next = append(next, n)
		return append(next, cur...), true, nil
	})
	if err != nil {
		return models.Note{}, s.fail(ctx, "create note", sess, err)
	}

	s.log.Debug(ctx, "note created", "owner", sess.Email(), "id", n.ID)
	return n, nil
}

// Update replaces title, text and category of note id and stamps it as
// updated. A missing id yields common.ErrNotFound and nothing is written.
func (s *noteService) Update(ctx context.Context, sess models.Session, id string, in models.NoteInput) (models.Note, error) {
	if !sess.Active() {
		return models.Note{}, common.ErrNoSession
	}

	var updated models.Note
	_, err := s.repo.Mutate(ctx, sess.Email(), func(cur []models.Note, _ bool) ([]models.Note, bool, error) {
		i := indexOf(cur, id)
		if i < 0 {
			return nil, false, common.ErrNotFound
		}
		now := s.stamp()
		n := cur[i]
		n.Title = strings.TrimSpace(in.Title)
		n.Text = strings.TrimSpace(in.Text)
		n.Category = category(in.Category)
		n.Updated = &now
		cur[i] = n
		updated = n
		return cur, true, nil
	})
	if err != nil {
		return models.Note{}, s.fail(ctx, "update note", sess, err)
	}

	s.log.Debug(ctx, "note updated", "owner", sess.Email(), "id", id)
	return updated, nil
}

// Delete removes note id. Deleting a missing id is a no-op.
func (s *noteService) Delete(ctx context.Context, sess models.Session, id string) error {
	if !sess.Active() {
		return common.ErrNoSession
	}

	_, err := s.repo.Mutate(ctx, sess.Email(), func(cur []models.Note, _ bool) ([]models.Note, bool, error) {
		i := indexOf(cur, id)
		if i < 0 {
			return cur, false, nil
		}
		next := make([]models.Note, 0, len(cur)-1)
		next = append(next, cur[:i]...)
		return append(next, cur[i+1:]...), true, nil
	})
	if err != nil {
		return s.fail(ctx, "delete note", sess, err)
	}
	return nil
}

// seed builds the demo set, all created at the given time.
func (s *noteService) seed(created time.Time) []models.Note {
	out := make([]models.Note, 0, len(demoNotes))
	for _, in := range demoNotes {
		out = append(out, s.build(in, created))
	}
	return out
}

func (s *noteService) build(in models.NoteInput, created time.Time) models.Note {
	return models.Note{
		ID:       s.newID(),
		Title:    strings.TrimSpace(in.Title),
		Text:     strings.TrimSpace(in.Text),
		Category: category(in.Category),
		Created:  created,
	}
}

// stamp is the current time in UTC at millisecond precision, the precision
// kept by the stored JSON.
func (s *noteService) stamp() time.Time {
	return s.now().UTC().Truncate(time.Millisecond)
}

func (s *noteService) fail(ctx context.Context, op string, sess models.Session, err error) error {
	if errors.Is(err, common.ErrStorage) {
		s.log.Error(ctx, "storage failure", "op", op, "owner", sess.Email(), "error", err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func category(c string) string {
	if c = strings.TrimSpace(c); c == "" {
		return models.DefaultCategory
	}
	return c
}

func indexOf(list []models.Note, id string) int {
	for i, n := range list {
		if n.ID == id {
			return i
		}
	}
	return -1
}
