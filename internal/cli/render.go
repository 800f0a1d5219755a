package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/todokeeper/internal/models"
)

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func statusGlyph(s models.Status) string {
	if s == models.StatusCompleted {
		return "✅"
	}
	return "⏳"
}

func priorityGlyph(p models.Priority) string {
	switch p {
	case models.PriorityHigh:
		return "🔴"
	case models.PriorityMedium:
		return "🟡"
	}
	return "🟢"
}

func printTask(w io.Writer, t *models.Task) {
	fmt.Fprintf(w, "%s %s %s [%s]\n", statusGlyph(t.Status), priorityGlyph(t.Priority), shortID(t.ID), t.Title)

	if t.Description != "" {
		fmt.Fprintf(w, "   %s\n", t.Description)
	}

	if t.DueDate != nil {
		due := t.DueDate.Format("2006-01-02 15:04")
		if t.Status == models.StatusPending && !t.DueDate.After(time.Now()) {
			fmt.Fprintf(w, "   Due: %s (OVERDUE)\n", due)
		} else {
			fmt.Fprintf(w, "   Due: %s\n", due)
		}
	}

	fmt.Fprintf(w, "   Created: %s\n", t.CreatedAt.Format("2006-01-02 15:04"))
}
