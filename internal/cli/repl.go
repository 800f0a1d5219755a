package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a
// lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	AddTask(ctx context.Context, opts addOptions) error
	ListTasks(ctx context.Context, opts listOptions) error
	Complete(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	Edit(ctx context.Context, id string) error
	Overdue(ctx context.Context) error
	Today(ctx context.Context) error
	Reminders(ctx context.Context) error
	Status(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop. It reads a line from the
// scanner, parses the first token as the command, and dispatches to
// methods on 'a'. Commands that operate on tasks require a login; the loop
// exits on scanner EOF or "exit"/"quit".
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("todo %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		if requiresLogin(cmd) && !a.isLoggedIn() {
			printlnFn("Please login first")
			continue
		}

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: add, (l)ist, complete, edit, delete, overdue, today, reminders, status, logout, exit")
			} else {
				printlnFn("Available commands: register, login, status, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "add":
			_ = a.AddTask(ctx, addOptions{})

		case "l", "list":
			_ = a.ListTasks(ctx, listOptions{})

		case "complete":
			_ = a.Complete(ctx, optionalArg(args))

		case "delete":
			_ = a.Delete(ctx, optionalArg(args))

		case "edit":
			_ = a.Edit(ctx, optionalArg(args))

		case "overdue":
			_ = a.Overdue(ctx)

		case "today":
			_ = a.Today(ctx)

		case "reminders":
			_ = a.Reminders(ctx)

		case "status":
			_ = a.Status(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

func requiresLogin(cmd string) bool {
	switch cmd {
	case "add", "l", "list", "complete", "delete", "edit", "overdue", "today", "reminders":
		return true
	}
	return false
}
