package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Whoami(ctx context.Context) error
	Leaderboard(ctx context.Context, args []string) error
	Profile(ctx context.Context) error
	Edit(ctx context.Context) error
	Status(ctx context.Context) error
	Students(ctx context.Context) error
}

// protected lists commands that need a session.
var protected = map[string]bool{
	"whoami":      true,
	"leaderboard": true,
	"lb":          true,
	"profile":     true,
	"edit":        true,
	"logout":      true,
	"students":    true,
}

// runREPL reads commands line by line from reader and dispatches them to a.
// It returns on EOF or "exit"/"quit".
//
//	Not logged in:
//	  - help             show available commands
//	  - register         create an account
//	  - login            authenticate
//	  - status           session and credential store state
//	  - exit | quit      leave the program
//
//	Logged in, additionally:
//	  - whoami                                  show the current user
//	  - leaderboard | lb [score|name] [query]   career scores
//	  - profile                                 show the profile
//	  - edit                                    edit and save the profile
//	  - students                                class roster (teachers only)
//	  - logout                                  log out
//
// Handlers report their own errors; the loop ignores them.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("elementopia %s> ", statusFn()))

		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		if protected[cmd] && !a.isLoggedIn() {
			printlnFn("Please log in first (type 'login').")
			continue
		}

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: whoami, leaderboard [score|name] [query], profile, edit, students, status, logout, exit")
			} else {
				printlnFn("Available commands: register, login, status, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "whoami":
			_ = a.Whoami(ctx)

		case "leaderboard", "lb":
			_ = a.Leaderboard(ctx, args)

		case "profile":
			_ = a.Profile(ctx)

		case "edit":
			_ = a.Edit(ctx)

		case "status":
			_ = a.Status(ctx)

		case "students":
			_ = a.Students(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
