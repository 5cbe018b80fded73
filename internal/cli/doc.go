// Package cli provides the interactive notekeeper command-line client.
//
// The App restores or seeds the session on start, watches session changes in
// the background and runs a REPL until the user exits. Commands cover the
// account (register, login, logout, profile, whoami) and the notes of the
// logged-in user (list, show, add, edit, delete).
//
// Output goes to the App's writer; diagnostics go to the structured logger.
package cli
