// Package models defines the records persisted by notekeeper.
package models

import "strings"

// User is one account of the user directory. The password is kept exactly
// as entered; the directory does not hash or encrypt it.
type User struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// NormalizeEmail is the canonical form used for every email comparison:
// surrounding whitespace removed, case preserved.
func NormalizeEmail(email string) string {
	return strings.TrimSpace(email)
}

// Session is the explicit login state handed to the note service. It holds
// a copy of the user record taken at login, registration or profile update.
type Session struct {
	User User
}

// Active reports whether the session refers to a user.
func (s Session) Active() bool {
	return s.User.Email != ""
}

// Email is the owning email of the session.
func (s Session) Email() string {
	return s.User.Email
}
