package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for REPL output.
var printlnFn = fmt.Println

// execIface is the command surface the REPL dispatches to. App implements
// it; tests use a recording stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	List(ctx context.Context) error
	Show(ctx context.Context) error
	Add(ctx context.Context) error
	Edit(ctx context.Context) error
	Delete(ctx context.Context) error
	Profile(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Logout(ctx context.Context) error
}

// runREPL reads commands line by line from reader and dispatches the first
// word of each line. It returns on EOF or on "exit"/"quit".
//
//	Not logged in:
//	  help, register, login, exit | quit
//
//	Logged in:
//	  help, (l)ist, show, add, edit, delete, profile, whoami, logout,
//	  exit | quit
//
// Handlers print their own messages, so their errors are not reported here.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("nk%s> ", prefixed(statusFn())))

		line, err := readLine(reader)
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		if cmd == "exit" || cmd == "quit" {
			printlnFn("Bye!")
			return
		}
		if cmd == "help" {
			if a.isLoggedIn() {
				printlnFn("Available commands: (l)ist, show, add, edit, delete, profile, whoami, logout, exit")
			} else {
				printlnFn("Available commands: register, login, exit")
			}
			continue
		}

		if a.isLoggedIn() {
			switch cmd {
			case "l", "list":
				_ = a.List(ctx)
			case "show":
				_ = a.Show(ctx)
			case "add":
				_ = a.Add(ctx)
			case "edit":
				_ = a.Edit(ctx)
			case "delete":
				_ = a.Delete(ctx)
			case "profile":
				_ = a.Profile(ctx)
			case "whoami":
				_ = a.WhoAmI(ctx)
			case "logout":
				_ = a.Logout(ctx)
			case "register", "login":
				printlnFn("Already logged in. Use logout first.")
			default:
				printlnFn("Unknown command:", cmd)
			}
			continue
		}

		switch cmd {
		case "register":
			_ = a.Register(ctx)
		case "login":
			_ = a.Login(ctx)
		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

func prefixed(status string) string {
	if status == "" {
		return ""
	}
	return " " + status
}
