package cli

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/dmitrijs2005/todokeeper/internal/config"
	"github.com/dmitrijs2005/todokeeper/internal/flagx"
)

// exitFn is a test seam for os.Exit.
var exitFn = os.Exit

// Run dispatches a subcommand from args, or enters the interactive REPL
// when no subcommand is given. Config flags are stripped first; they were
// already consumed by the config loader.
func (a *App) Run(ctx context.Context, args []string) error {
	args = flagx.StripArgs(args, config.FlagNames)

	if len(args) == 0 {
		a.interactive(ctx)
		return nil
	}

	switch args[0] {
	case "register":
		return a.Register(ctx)
	case "login":
		return a.Login(ctx)
	case "logout":
		return a.Logout(ctx)
	case "add":
		a.ensureAuthenticated()
		opts, err := parseAddFlags(args[1:])
		if err != nil {
			return err
		}
		return a.AddTask(ctx, opts)
	case "list":
		a.ensureAuthenticated()
		opts, err := parseListFlags(args[1:])
		if err != nil {
			return err
		}
		return a.ListTasks(ctx, opts)
	case "complete":
		a.ensureAuthenticated()
		return a.Complete(ctx, optionalArg(args[1:]))
	case "delete":
		a.ensureAuthenticated()
		return a.Delete(ctx, optionalArg(args[1:]))
	case "edit":
		a.ensureAuthenticated()
		return a.Edit(ctx, optionalArg(args[1:]))
	case "overdue":
		a.ensureAuthenticated()
		return a.Overdue(ctx)
	case "today":
		a.ensureAuthenticated()
		return a.Today(ctx)
	case "reminders":
		a.ensureAuthenticated()
		return a.Reminders(ctx)
	case "status":
		return a.Status(ctx)
	}
	return fmt.Errorf("unknown command: %s", args[0])
}

// ensureAuthenticated terminates the process with a non-zero exit code
// when no unexpired session exists.
func (a *App) ensureAuthenticated() {
	if !a.auth.IsAuthenticated() {
		fmt.Println("Please login first using: todokeeper login")
		exitFn(1)
	}
}

func (a *App) interactive(ctx context.Context) {
	fmt.Println("Welcome to todokeeper (type 'help' for commands)")

	if a.isLoggedIn() {
		_ = a.Reminders(ctx)
	}

	runREPL(ctx, a, a.statusLabel, bufio.NewScanner(os.Stdin))
}

func optionalArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return ""
}

func parseAddFlags(args []string) (addOptions, error) {
	var opts addOptions

	fs := flag.NewFlagSet("add", flag.ContinueOnError)
	fs.StringVar(&opts.title, "title", "", "task title")
	fs.StringVar(&opts.title, "t", "", "task title (short)")
	fs.StringVar(&opts.description, "description", "", "task description")
	fs.StringVar(&opts.description, "d", "", "task description (short)")
	fs.StringVar(&opts.priority, "priority", "", "task priority: low, medium or high")
	fs.StringVar(&opts.priority, "p", "", "task priority (short)")
	fs.StringVar(&opts.dueDate, "due-date", "", "due date (YYYY-MM-DD)")

	if err := fs.Parse(args); err != nil {
		return addOptions{}, err
	}
	return opts, nil
}

func parseListFlags(args []string) (listOptions, error) {
	var opts listOptions

	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	fs.StringVar(&opts.status, "status", "", "filter by status")
	fs.StringVar(&opts.priority, "priority", "", "filter by priority")

	if err := fs.Parse(args); err != nil {
		return listOptions{}, err
	}
	return opts, nil
}
