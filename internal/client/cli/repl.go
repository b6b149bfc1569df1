package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/trustlayerlabs/academy/internal/common"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	isAdmin() bool
	report(err error)

	Go(ctx context.Context, path string) error
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context, verbose bool) error
	Reset(ctx context.Context) error
	Back(ctx context.Context) error
	Pages(ctx context.Context) error
	EditProfile(ctx context.Context) error
	Enroll(ctx context.Context, id string) error
	RequestService(ctx context.Context) error
	AddCourse(ctx context.Context) error
	DeleteCourse(ctx context.Context, id string) error
	SetStatus(ctx context.Context, id, status string) error
}

// pages maps page commands to the route they open.
var pages = map[string]string{
	"home":      common.PathHome,
	"courses":   common.PathCourses,
	"services":  common.PathServices,
	"dashboard": common.PathDashboard,
	"profile":   common.PathProfile,
	"admin":     common.PathAdmin,
	"privacy":   common.PathPrivacy,
	"terms":     common.PathTerms,
	"refund":    common.PathRefund,
}

// runREPL starts a simple read-eval-print loop for the academy CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. Unknown commands are reported back to the
// user. The loop exits on EOF, when ctx is done, or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Anyone:
//	  - help                  show available commands
//	  - go <path>             open any page by path
//	  - pages | back          list pages, return to the previous one
//	  - home | courses | services | privacy | terms | refund
//	  - request               request a consulting quote
//	  - register | login
//	  - whoami [-v]           show the session, -v adds the stored keys
//	  - reset                 log out and wipe the local session store
//	  - exit | quit           leave the program
//
//	Logged in:
//	  - dashboard | profile   student pages
//	  - enroll <id>           buy a course
//	  - edit                  edit the profile
//	  - logout
//
//	Admin:
//	  - admin                 users, courses and service requests
//	  - addcourse             create a course
//	  - delcourse <id>        delete a course
//	  - setstatus <id> <s>    move a service request to pending, quoted or completed
//
// Command errors are passed to a.report and never stop the loop.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("academy %s > ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		// A line that arrives after shutdown is not a command.
		if ctx.Err() != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		if path, ok := pages[cmd]; ok {
			a.report(a.Go(ctx, path))
			continue
		}

		switch cmd {
		case "help":
			printlnFn(help(a))

		case "go":
			if len(args) != 1 {
				printlnFn("Usage: go <path>")
				continue
			}
			a.report(a.Go(ctx, args[0]))

		case "register":
			a.report(a.Register(ctx))

		case "login":
			a.report(a.Login(ctx))

		case "logout":
			a.report(a.Logout(ctx))

		case "whoami":
			verbose := len(args) == 1 && (args[0] == "-v" || args[0] == "--debug")
			a.report(a.WhoAmI(ctx, verbose))

		case "reset":
			a.report(a.Reset(ctx))

		case "back":
			a.report(a.Back(ctx))

		case "pages":
			a.report(a.Pages(ctx))

		case "edit":
			a.report(a.EditProfile(ctx))

		case "request":
			a.report(a.RequestService(ctx))

		case "enroll":
			if len(args) != 1 {
				printlnFn("Usage: enroll <course id>")
				continue
			}
			a.report(a.Enroll(ctx, args[0]))

		case "addcourse":
			a.report(a.AddCourse(ctx))

		case "delcourse":
			if len(args) != 1 {
				printlnFn("Usage: delcourse <course id>")
				continue
			}
			a.report(a.DeleteCourse(ctx, args[0]))

		case "setstatus":
			if len(args) != 2 {
				printlnFn("Usage: setstatus <request id> <pending|quoted|completed>")
				continue
			}
			a.report(a.SetStatus(ctx, args[0], args[1]))

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			return
		}
	}
}

func help(a execIface) string {
	cmds := []string{"home", "courses", "services", "request", "go <path>", "pages", "back"}
	switch {
	case a.isAdmin():
		cmds = append(cmds, "admin", "addcourse", "delcourse <id>", "setstatus <id> <status>", "dashboard", "profile", "edit", "enroll <id>", "logout")
	case a.isLoggedIn():
		cmds = append(cmds, "dashboard", "profile", "edit", "enroll <id>", "logout")
	default:
		cmds = append(cmds, "register", "login")
	}
	cmds = append(cmds, "whoami [-v]", "reset", "exit")
	return "Available commands: " + strings.Join(cmds, ", ")
}
