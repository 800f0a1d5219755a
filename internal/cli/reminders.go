package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/todokeeper/internal/reminder"
)

// Reminders derives and prints the current user's reminders, most urgent
// first, followed by the daily summary.
func (a *App) Reminders(ctx context.Context) error {
	user, err := a.auth.CurrentUser()
	if err != nil {
		return err
	}
	tasks := a.tasks.ListForOwner(user.ID)

	now := time.Now()
	reminders := reminder.Derive(tasks, now)
	if len(reminders) > 0 {
		fmt.Printf("\nYou have %d reminder(s):\n", len(reminders))
		for _, r := range reminders {
			fmt.Printf("  %s %s\n", r.Glyph, r.Message)
		}
	}

	fmt.Println(reminder.Summarize(tasks, now))
	return nil
}
