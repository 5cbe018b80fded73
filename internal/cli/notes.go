package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/notekeeper/internal/models"
	"github.com/dmitrijs2005/notekeeper/internal/view"
)

var getMultiline = GetMultiline
var getConfirmation = GetConfirmation

// List asks for a category, a search text and an order, then prints the
// matching notes.
func (a *App) List(ctx context.Context) error {
	category, err := getSimpleText(a.reader, "Category ("+strings.Join(view.Categories(), ", ")+"; empty for all)", a.out)
	if err != nil {
		return err
	}
	search, err := getSimpleText(a.reader, "Search (empty for none)", a.out)
	if err != nil {
		return err
	}
	orderText, err := getSimpleText(a.reader, "Order by created (desc, asc)", a.out)
	if err != nil {
		return err
	}
	order, err := view.ParseOrder(orderText)
	if err != nil {
		a.println("Unknown order, using desc.")
	}

	opCtx, cancel := a.opContext(ctx)
	defer cancel()

	all, err := a.noteService.List(opCtx, a.session)
	if err != nil {
		return a.fail(err)
	}

	shown := view.Apply(all, view.Query{Category: category, Search: search, Order: order})
	if len(shown) == 0 {
		a.println("No notes.")
		return nil
	}
	for _, n := range shown {
		a.println(n)
	}
	return nil
}

func (a *App) Show(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Enter note id to show", a.out)
	if err != nil {
		return err
	}

	opCtx, cancel := a.opContext(ctx)
	defer cancel()

	n, err := a.noteService.Get(opCtx, a.session, id)
	if err != nil {
		return a.fail(err)
	}
	a.printNote(n)
	return nil
}

// Add prompts for title, text and category. An empty category files the
// note under the default one.
func (a *App) Add(ctx context.Context) error {
	title, err := getSimpleText(a.reader, "Title", a.out)
	if err != nil {
		return err
	}
	text, err := getMultiline(a.reader, "Text", a.out)
	if err != nil {
		return err
	}
	category, err := getSimpleText(a.reader, categoryPrompt(models.DefaultCategory), a.out)
	if err != nil {
		return err
	}

	opCtx, cancel := a.opContext(ctx)
	defer cancel()

	n, err := a.noteService.Create(opCtx, a.session, models.NoteInput{Title: title, Text: text, Category: category})
	if err != nil {
		return a.fail(err)
	}
	a.println("Note saved: " + n.ID)
	return nil
}

// Edit loads a note and asks for new values. Empty answers keep the current
// value.
func (a *App) Edit(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Enter note id to edit", a.out)
	if err != nil {
		return err
	}

	getCtx, cancel := a.opContext(ctx)
	cur, err := a.noteService.Get(getCtx, a.session, id)
	cancel()
	if err != nil {
		return a.fail(err)
	}

	title, err := getSimpleText(a.reader, fmt.Sprintf("Title (empty keeps %q)", cur.Title), a.out)
	if err != nil {
		return err
	}
	text, err := getMultiline(a.reader, "Text (empty keeps current)", a.out)
	if err != nil {
		return err
	}
	category, err := getSimpleText(a.reader, categoryPrompt(cur.Category), a.out)
	if err != nil {
		return err
	}

	in := models.NoteInput{
		Title:    keep(title, cur.Title),
		Text:     keep(text, cur.Text),
		Category: keep(category, cur.Category),
	}

	opCtx, cancel := a.opContext(ctx)
	defer cancel()

	if _, err := a.noteService.Update(opCtx, a.session, id, in); err != nil {
		return a.fail(err)
	}
	a.println("Note updated.")
	return nil
}

// Delete removes a note after confirmation.
func (a *App) Delete(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Enter note id to delete", a.out)
	if err != nil {
		return err
	}
	ok, err := getConfirmation(a.reader, "Delete note "+id+"?", a.out)
	if err != nil {
		return err
	}
	if !ok {
		a.println("Cancelled.")
		return nil
	}

	opCtx, cancel := a.opContext(ctx)
	defer cancel()

	if err := a.noteService.Delete(opCtx, a.session, id); err != nil {
		return a.fail(err)
	}
	a.println("Note deleted.")
	return nil
}

func (a *App) printNote(n models.Note) {
	title := n.Title
	if title == "" {
		title = "(untitled)"
	}
	a.println("Title:    " + title)
	a.println("Category: " + n.Category)
	a.println("Created:  " + n.Created.Local().Format(time.DateTime))
	if n.Updated != nil {
		a.println("Updated:  " + n.Updated.Local().Format(time.DateTime))
	}
	a.println()
	a.println(n.Text)
}

func categoryPrompt(current string) string {
	return fmt.Sprintf("Category (%s; empty keeps %s)", strings.Join(models.Categories(), ", "), current)
}

func keep(answer, current string) string {
	if answer == "" {
		return current
	}
	return answer
}
