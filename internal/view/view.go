// Package view derives the displayed note list from a user's notes: a
// category filter, a text search and an ordering by creation time.
package view

import (
	"fmt"
	"slices"
	"strings"

	"github.com/dmitrijs2005/notekeeper/internal/models"
)

// CategoryAll matches every category. CategoryAllShort is accepted as
// the same filter.
const (
	CategoryAll      = "All Notes"
	CategoryAllShort = "All"
)

type Order int

const (
	// Desc lists newest first. It is the zero value.
	Desc Order = iota
	Asc
)

func (o Order) String() string {
	if o == Asc {
		return "asc"
	}
	return "desc"
}

// ParseOrder accepts "asc" or "desc" in any case; empty means Desc.
func ParseOrder(s string) (Order, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "desc":
		return Desc, nil
	case "asc":
		return Asc, nil
	default:
		return Desc, fmt.Errorf("unknown order %q", s)
	}
}

type Query struct {
	// Category is an exact match; empty, CategoryAll or CategoryAllShort
	// matches all.
	Category string
	// Search is a case-insensitive substring of title or text.
	Search string
	Order  Order
}

// Apply returns the notes matching q in the requested order. notes is not
// modified.
func Apply(notes []models.Note, q Query) []models.Note {
	search := strings.ToLower(q.Search)

	out := make([]models.Note, 0, len(notes))
	for _, n := range notes {
		if !matchesAll(q.Category) && n.Category != q.Category {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(n.Title), search) &&
			!strings.Contains(strings.ToLower(n.Text), search) {
			continue
		}
		out = append(out, n)
	}

	slices.SortStableFunc(out, func(a, b models.Note) int {
		if q.Order == Asc {
			return a.Created.Compare(b.Created)
		}
		return b.Created.Compare(a.Created)
	})
	return out
}

func matchesAll(category string) bool {
	return category == "" || category == CategoryAll || category == CategoryAllShort
}

// Categories is the filter menu: CategoryAll followed by the offered labels.
func Categories() []string {
	return append([]string{CategoryAll}, models.Categories()...)
}
