package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output
var printlnFn = fmt.Println

// execIface is the minimal command surface the REPL dispatches to.
// The real App satisfies it; tests can provide a stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Me(ctx context.Context) error
	Browse(ctx context.Context) error
	Show(ctx context.Context, slug string) error
	Contribute(ctx context.Context) error
	MySubmissions(ctx context.Context) error
	AdminQueue(ctx context.Context) error
}

// runREPL reads commands line by line and dispatches them. Handlers
// report their own errors; the loop only exits on EOF, "exit" or "quit".
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	printlnFn("Sahayak CLI (type 'help' for commands)")
	for {
		printlnFn(fmt.Sprintf("sahayak %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: browse, show <slug>, contribute, mine, queue, me, logout, exit")
			} else {
				printlnFn("Available commands: browse, show <slug>, register, login, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "me":
			_ = a.Me(ctx)

		case "b", "browse":
			_ = a.Browse(ctx)

		case "show":
			if len(args) == 0 {
				printlnFn("Usage: show <slug>")
				continue
			}
			_ = a.Show(ctx, args[0])

		case "contribute":
			_ = a.Contribute(ctx)

		case "mine":
			_ = a.MySubmissions(ctx)

		case "queue":
			_ = a.AdminQueue(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
