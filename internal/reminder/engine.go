// Package reminder derives prioritized notices from a snapshot of task
// records. It is a pure computation: nothing is stored, and the same
// snapshot always yields the same reminders.
package reminder

import (
	"fmt"
	"slices"
	"time"

	"github.com/dmitrijs2005/todokeeper/internal/models"
)

// Severity orders reminders by urgency: Info < Warning < Critical.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityCritical
)

func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityCritical:
		return "critical"
	}
	return fmt.Sprintf("severity(%d)", int(s))
}

// Reminder is a derived notice. It lives only for the duration of one
// Derive call and is never persisted.
type Reminder struct {
	Message  string
	Glyph    string
	Severity Severity
}

const day = 24 * time.Hour

// Derive computes reminders for the Pending tasks in the snapshot.
//
// For tasks with a due date, the remaining time picks the bucket:
// remaining <= 0 is Critical (overdue), under a day is Warning, under two
// days is "due tomorrow", under seven days is "due in N day(s)", and
// anything further out produces no reminder. Undated tasks pending for
// more than seven days get an Info nudge to set a due date.
//
// The result is ordered by severity descending; ties keep the relative
// order reminders were generated in (stable sort).
func Derive(tasks []models.Task, now time.Time) []Reminder {
	var reminders []Reminder

	for _, t := range tasks {
		if t.Status != models.StatusPending || t.DueDate == nil {
			continue
		}

		remaining := t.DueDate.Sub(now)
		switch {
		case remaining <= 0:
			overdueBy := -remaining
			days := int(overdueBy / day)
			var message string
			if days >= 1 {
				message = fmt.Sprintf("'%s' is %d day(s) overdue!", t.Title, days)
			} else {
				message = fmt.Sprintf("'%s' is %d hour(s) overdue!", t.Title, int(overdueBy.Hours()))
			}
			reminders = append(reminders, Reminder{Message: message, Glyph: "🚨", Severity: SeverityCritical})

		case remaining < day:
			hours := int(remaining.Hours())
			var message string
			if hours < 1 {
				message = fmt.Sprintf("'%s' is due in less than an hour!", t.Title)
			} else {
				message = fmt.Sprintf("'%s' is due in %d hour(s)!", t.Title, hours)
			}
			reminders = append(reminders, Reminder{Message: message, Glyph: "⏰", Severity: SeverityWarning})

		case remaining < 2*day:
			message := fmt.Sprintf("'%s' is due tomorrow!", t.Title)
			reminders = append(reminders, Reminder{Message: message, Glyph: "📅", Severity: SeverityInfo})

		case remaining < 7*day:
			message := fmt.Sprintf("'%s' is due in %d day(s)!", t.Title, int(remaining/day))
			reminders = append(reminders, Reminder{Message: message, Glyph: "📋", Severity: SeverityInfo})
		}
	}

	for _, t := range tasks {
		if t.Status != models.StatusPending || t.DueDate != nil {
			continue
		}
		age := now.Sub(t.CreatedAt)
		if age > 7*day {
			message := fmt.Sprintf("'%s' has been pending for %d day(s) - consider setting a due date!", t.Title, int(age/day))
			reminders = append(reminders, Reminder{Message: message, Glyph: "💭", Severity: SeverityInfo})
		}
	}

	slices.SortStableFunc(reminders, func(a, b Reminder) int {
		return int(b.Severity) - int(a.Severity)
	})
	return reminders
}

// Summarize renders four counts computed from the snapshot: pending tasks,
// tasks completed today, tasks due today, and overdue tasks.
func Summarize(tasks []models.Task, now time.Time) string {
	var pending, completedToday, dueToday, overdue int

	for _, t := range tasks {
		switch t.Status {
		case models.StatusPending:
			pending++
			if t.DueDate != nil {
				if sameDay(*t.DueDate, now) {
					dueToday++
				}
				if !t.DueDate.After(now) {
					overdue++
				}
			}
		case models.StatusCompleted:
			if sameDay(t.UpdatedAt, now) {
				completedToday++
			}
		}
	}

	return fmt.Sprintf("📊 Daily Summary: %d pending, %d completed today, %d due today, %d overdue",
		pending, completedToday, dueToday, overdue)
}

func sameDay(a, b time.Time) bool {
	a, b = a.Local(), b.Local()
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
