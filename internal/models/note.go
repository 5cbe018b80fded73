package models

import "time"

// Categories offered for notes. Storage accepts any string.
const (
	CategoryWork     = "Work"
	CategorySchool   = "School"
	CategoryPersonal = "Personal"

	DefaultCategory = CategoryWork
)

// Categories lists the offered labels in display order.
func Categories() []string {
	return []string{CategoryWork, CategorySchool, CategoryPersonal}
}

// Note is one record of a user's note sequence.
type Note struct {
	ID       string     `json:"id"`
	Title    string     `json:"title"`
	Text     string     `json:"text"`
	Category string     `json:"category"`
	Created  time.Time  `json:"created"`
	Updated  *time.Time `json:"updated"`
}

// NoteInput carries the editable fields of a note.
type NoteInput struct {
	Title    string
	Text     string
	Category string
}

func (n Note) String() string {
	title := n.Title
	if title == "" {
		title = "(untitled)"
	}
	return n.ID + "  [" + n.Category + "]  " + title + "  " + n.Created.Format(time.DateTime)
}
