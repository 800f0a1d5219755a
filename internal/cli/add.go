package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/todokeeper/internal/models"
)

// addOptions carries the add subcommand flags. Empty fields fall back to
// interactive prompts.
type addOptions struct {
	title       string
	description string
	priority    string
	dueDate     string
}

// AddTask creates a new task for the current user.
func (a *App) AddTask(ctx context.Context, opts addOptions) error {
	user, err := a.auth.CurrentUser()
	if err != nil {
		return err
	}

	title := opts.title
	if title == "" {
		if title, err = GetSimpleText(a.reader, "Task title", os.Stdout); err != nil {
			return err
		}
	}

	description := opts.description
	if description == "" {
		if description, err = GetSimpleText(a.reader, "Description (optional)", os.Stdout); err != nil {
			return err
		}
	}

	priorityInput := opts.priority
	if priorityInput == "" {
		if priorityInput, err = GetSimpleText(a.reader, "Priority (low/medium/high, default medium)", os.Stdout); err != nil {
			return err
		}
	}
	priority := models.PriorityMedium
	if priorityInput != "" {
		if priority, err = models.ParsePriority(priorityInput); err != nil {
			return err
		}
	}

	dueInput := opts.dueDate
	if dueInput == "" {
		if dueInput, err = GetSimpleText(a.reader, "Due date (YYYY-MM-DD, optional)", os.Stdout); err != nil {
			return err
		}
	}
	var due *time.Time
	if dueInput != "" {
		d, err := models.ParseDueDate(dueInput)
		if err != nil {
			return err
		}
		due = &d
	}

	task, err := a.tasks.Create(ctx, title, description, priority, due, user.ID)
	if err != nil {
		return err
	}

	fmt.Println("Task added successfully!")
	printTask(os.Stdout, task)
	return nil
}
