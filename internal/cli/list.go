package cli

import (
	"context"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/dmitrijs2005/todokeeper/internal/models"
)

// listOptions carries the list subcommand filters.
type listOptions struct {
	status   string
	priority string
}

// ListTasks prints the current user's tasks, optionally filtered by status
// and priority. Output is sorted by creation time for stable display; the
// store itself returns tasks in arbitrary order.
func (a *App) ListTasks(ctx context.Context, opts listOptions) error {
	user, err := a.auth.CurrentUser()
	if err != nil {
		return err
	}
	tasks := a.tasks.ListForOwner(user.ID)

	if opts.status != "" {
		status, err := models.ParseStatus(opts.status)
		if err != nil {
			return err
		}
		tasks = filterTasks(tasks, func(t models.Task) bool { return t.Status == status })
	}
	if opts.priority != "" {
		priority, err := models.ParsePriority(opts.priority)
		if err != nil {
			return err
		}
		tasks = filterTasks(tasks, func(t models.Task) bool { return t.Priority == priority })
	}

	printTaskList(tasks, "Your Tasks", "No tasks found!")
	return nil
}

// Overdue prints the current user's pending tasks whose due date has
// passed (a task due exactly now counts as overdue).
func (a *App) Overdue(ctx context.Context) error {
	user, err := a.auth.CurrentUser()
	if err != nil {
		return err
	}

	now := time.Now()
	tasks := filterTasks(a.tasks.ListForOwner(user.ID), func(t models.Task) bool {
		return t.Status == models.StatusPending && t.DueDate != nil && !t.DueDate.After(now)
	})

	printTaskList(tasks, "Overdue Tasks", "No overdue tasks!")
	return nil
}

// Today prints the current user's tasks due today.
func (a *App) Today(ctx context.Context) error {
	user, err := a.auth.CurrentUser()
	if err != nil {
		return err
	}

	now := time.Now()
	tasks := filterTasks(a.tasks.ListForOwner(user.ID), func(t models.Task) bool {
		return t.DueDate != nil && sameDay(*t.DueDate, now)
	})

	printTaskList(tasks, "Tasks Due Today", "No tasks due today!")
	return nil
}

func filterTasks(tasks []models.Task, keep func(models.Task) bool) []models.Task {
	var filtered []models.Task
	for _, t := range tasks {
		if keep(t) {
			filtered = append(filtered, t)
		}
	}
	return filtered
}

func printTaskList(tasks []models.Task, header, emptyMsg string) {
	if len(tasks) == 0 {
		fmt.Println(emptyMsg)
		return
	}

	sort.Slice(tasks, func(i, j int) bool {
		return tasks[i].CreatedAt.Before(tasks[j].CreatedAt)
	})

	fmt.Printf("\n%s (%d)\n", header, len(tasks))
	for i := range tasks {
		printTask(os.Stdout, &tasks[i])
		fmt.Println()
	}
}

func sameDay(a, b time.Time) bool {
	a, b = a.Local(), b.Local()
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
