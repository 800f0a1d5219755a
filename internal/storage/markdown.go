package storage

import (
	"fmt"
	"os"
	"strings"

	"github.com/dmitrijs2005/todokeeper/internal/models"
)

// markdownMirror maintains the human-readable mirror file: one checklist
// line per task, keyed by a trailing id comment. It is shared by the JSON
// and SQLite adapters — the mirror is a plain file regardless of backend.
type markdownMirror struct {
	path string
}

func newMarkdownMirror(path string) *markdownMirror {
	return &markdownMirror{path: path}
}

const mirrorHeader = "# TODO\n\n"

func mirrorLine(t *models.Task) string {
	box := " "
	if t.Status == models.StatusCompleted {
		box = "x"
	}
	due := ""
	if t.DueDate != nil {
		due = ", due: " + t.DueDate.Format(models.DueDateLayout)
	}
	return fmt.Sprintf("- [%s] %s (priority: %s%s) <!-- id:%s -->", box, t.Title, t.Priority, due, t.ID)
}

func mirrorMarker(t *models.Task) string {
	return "<!-- id:" + t.ID + " -->"
}

// Append adds a line for t, creating the file with a header if needed.
func (m *markdownMirror) Append(t *models.Task) error {
	_, statErr := os.Stat(m.path)

	f, err := os.OpenFile(m.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("open mirror: %w", err)
	}
	defer f.Close()

	line := mirrorLine(t) + "\n"
	if os.IsNotExist(statErr) {
		line = mirrorHeader + line
	}
	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("append mirror: %w", err)
	}
	return nil
}

// Update rewrites the line whose id marker matches t. A missing line is
// appended instead, so the mirror converges even after earlier failures.
func (m *markdownMirror) Update(t *models.Task) error {
	lines, err := m.readLines()
	if err != nil {
		return err
	}

	marker := mirrorMarker(t)
	found := false
	for i, line := range lines {
		if strings.Contains(line, marker) {
			lines[i] = mirrorLine(t)
			found = true
		}
	}
	if !found {
		return m.Append(t)
	}
	return m.writeLines(lines)
}

// Remove deletes the line whose id marker matches t; removing an absent
// line is not an error.
func (m *markdownMirror) Remove(t *models.Task) error {
	lines, err := m.readLines()
	if err != nil {
		return err
	}

	marker := mirrorMarker(t)
	kept := lines[:0]
	for _, line := range lines {
		if !strings.Contains(line, marker) {
			kept = append(kept, line)
		}
	}
	return m.writeLines(kept)
}

func (m *markdownMirror) readLines() ([]string, error) {
	data, err := os.ReadFile(m.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read mirror: %w", err)
	}
	return strings.Split(strings.TrimRight(string(data), "\n"), "\n"), nil
}

func (m *markdownMirror) writeLines(lines []string) error {
	content := ""
	if len(lines) > 0 {
		content = strings.Join(lines, "\n") + "\n"
	}
	if err := os.WriteFile(m.path, []byte(content), 0o600); err != nil {
		return fmt.Errorf("write mirror: %w", err)
	}
	return nil
}
