package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output.
var printlnFn = fmt.Println

// execIface is the minimal command surface the REPL needs. App satisfies
// it; tests can provide a stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Upload(ctx context.Context) error
	Files(ctx context.Context) error
	History(ctx context.Context) error
	ChangePassword(ctx context.Context) error
	TwoFactor(ctx context.Context, args []string) error
	WhoAmI(ctx context.Context) error
	Logout(ctx context.Context) error
}

// runREPL reads a command per line and dispatches to a. The loop exits on
// scanner EOF or when the user types "exit" or "quit". Command handlers do
// their own error reporting; returned errors are ignored here to keep the
// loop resilient.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("sharebox> %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: upload, (f)iles, history, passwd, 2fa on|off, whoami, logout, exit")
			} else {
				printlnFn("Available commands: register, login, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "upload":
			_ = a.Upload(ctx)

		case "f", "files":
			_ = a.Files(ctx)

		case "history":
			_ = a.History(ctx)

		case "passwd":
			_ = a.ChangePassword(ctx)

		case "2fa":
			_ = a.TwoFactor(ctx, parts[1:])

		case "whoami":
			_ = a.WhoAmI(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", parts[0])
		}
	}
}
