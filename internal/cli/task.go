package cli

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/dmitrijs2005/todokeeper/internal/common"
	"github.com/dmitrijs2005/todokeeper/internal/models"
)

// ownedTask resolves id to a task owned by the current user. A task owned
// by someone else is reported as not found, never as someone else's.
func (a *App) ownedTask(id, ownerID string) (*models.Task, error) {
	task, err := a.tasks.Get(id)
	if err != nil {
		return nil, err
	}
	if task.UserID != ownerID {
		return nil, common.ErrorNotFound
	}
	return task, nil
}

// Complete marks a task completed. With an empty id the user picks one of
// their pending tasks interactively.
func (a *App) Complete(ctx context.Context, id string) error {
	user, err := a.auth.CurrentUser()
	if err != nil {
		return err
	}

	if id == "" {
		pending := filterTasks(a.tasks.ListForOwner(user.ID), func(t models.Task) bool {
			return t.Status == models.StatusPending
		})
		if id, err = a.selectTask("Select task to complete", pending); err != nil || id == "" {
			return err
		}
	} else if _, err := a.ownedTask(id, user.ID); err != nil {
		return err
	}

	if err := a.tasks.Complete(ctx, id); err != nil {
		return err
	}
	fmt.Println("Task completed!")
	return nil
}

// Delete removes a task. With an empty id the user picks one interactively.
func (a *App) Delete(ctx context.Context, id string) error {
	user, err := a.auth.CurrentUser()
	if err != nil {
		return err
	}

	if id == "" {
		if id, err = a.selectTask("Select task to delete", a.tasks.ListForOwner(user.ID)); err != nil || id == "" {
			return err
		}
	} else if _, err := a.ownedTask(id, user.ID); err != nil {
		return err
	}

	if err := a.tasks.Delete(ctx, id); err != nil {
		return err
	}
	fmt.Println("Task deleted!")
	return nil
}

// Edit updates a task's title, description and priority. The status is
// never changed by editing. Empty answers keep the current values.
func (a *App) Edit(ctx context.Context, id string) error {
	user, err := a.auth.CurrentUser()
	if err != nil {
		return err
	}

	if id == "" {
		if id, err = a.selectTask("Select task to edit", a.tasks.ListForOwner(user.ID)); err != nil || id == "" {
			return err
		}
	}
	task, err := a.ownedTask(id, user.ID)
	if err != nil {
		return err
	}

	fmt.Printf("Editing task: %s\n", task.Title)

	title, err := GetSimpleText(a.reader, fmt.Sprintf("Title [%s]", task.Title), os.Stdout)
	if err != nil {
		return err
	}
	if title != "" {
		task.Title = title
	}

	description, err := GetSimpleText(a.reader, fmt.Sprintf("Description [%s]", task.Description), os.Stdout)
	if err != nil {
		return err
	}
	if description != "" {
		task.Description = description
	}

	priorityInput, err := GetSimpleText(a.reader, fmt.Sprintf("Priority [%s]", task.Priority), os.Stdout)
	if err != nil {
		return err
	}
	if priorityInput != "" {
		if task.Priority, err = models.ParsePriority(priorityInput); err != nil {
			return err
		}
	}

	if err := a.tasks.Update(ctx, *task); err != nil {
		return err
	}
	fmt.Println("Task updated successfully!")
	return nil
}

// selectTask shows a numbered task list and returns the id of the chosen
// entry, or "" when there is nothing to choose from.
func (a *App) selectTask(prompt string, tasks []models.Task) (string, error) {
	if len(tasks) == 0 {
		fmt.Println("No tasks found!")
		return "", nil
	}

	sort.Slice(tasks, func(i, j int) bool {
		return tasks[i].CreatedAt.Before(tasks[j].CreatedAt)
	})

	fmt.Println(prompt)
	for i, t := range tasks {
		fmt.Printf("  %d) %s - %s\n", i+1, shortID(t.ID), t.Title)
	}

	answer, err := GetSimpleText(a.reader, fmt.Sprintf("Number (1-%d)", len(tasks)), os.Stdout)
	if err != nil {
		return "", err
	}
	n, err := strconv.Atoi(answer)
	if err != nil || n < 1 || n > len(tasks) {
		return "", fmt.Errorf("invalid selection: %q", answer)
	}
	return tasks[n-1].ID, nil
}
