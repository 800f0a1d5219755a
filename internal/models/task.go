// Package models defines the persisted record types of todokeeper: users,
// the session, and tasks, plus the parse helpers for task enums and
// date-only due dates.
package models

import (
	"fmt"
	"strings"
	"time"
)

// ParseError reports an input string that does not match any accepted
// value for a field.
type ParseError struct {
	Field string
	Value string
	Hint  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid %s: %q (use %s)", e.Field, e.Value, e.Hint)
}

// Status is the lifecycle state of a task. The only transition is
// Pending -> Completed; there is no way back.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
)

// ParseStatus maps user input to a Status. Accepted synonyms are
// case-insensitive: "p"/"pending" and "c"/"complete"/"completed"/"done".
func ParseStatus(s string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pending", "p":
		return StatusPending, nil
	case "completed", "complete", "done", "c":
		return StatusCompleted, nil
	}
	return "", &ParseError{Field: "status", Value: s, Hint: "'pending' or 'completed'"}
}

// Priority orders tasks by urgency: Low < Medium < High.
type Priority int

const (
	PriorityLow Priority = iota
	PriorityMedium
	PriorityHigh
)

func (p Priority) String() string {
	switch p {
	case PriorityLow:
		return "low"
	case PriorityMedium:
		return "medium"
	case PriorityHigh:
		return "high"
	}
	return fmt.Sprintf("priority(%d)", int(p))
}

func (p Priority) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Priority) UnmarshalText(b []byte) error {
	parsed, err := ParsePriority(string(b))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// ParsePriority maps user input to a Priority. Accepted synonyms are
// case-insensitive: "l"/"low", "m"/"med"/"medium", "h"/"high".
func ParsePriority(s string) (Priority, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low", "l":
		return PriorityLow, nil
	case "medium", "med", "m":
		return PriorityMedium, nil
	case "high", "h":
		return PriorityHigh, nil
	}
	return 0, &ParseError{Field: "priority", Value: s, Hint: "'low', 'medium', or 'high'"}
}

// DueDateLayout is the date-only input format for due dates.
const DueDateLayout = "2006-01-02"

// ParseDueDate parses a date-only due date ("YYYY-MM-DD") and normalizes it
// to the end of that day (23:59:59 local time).
func ParseDueDate(s string) (time.Time, error) {
	d, err := time.ParseInLocation(DueDateLayout, strings.TrimSpace(s), time.Local)
	if err != nil {
		return time.Time{}, &ParseError{Field: "due date", Value: s, Hint: "YYYY-MM-DD"}
	}
	return time.Date(d.Year(), d.Month(), d.Day(), 23, 59, 59, 0, time.Local), nil
}

// Task is a to-do record owned by exactly one user. UpdatedAt is refreshed
// on every mutating operation but never on read.
type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Status      Status     `json:"status"`
	Priority    Priority   `json:"priority"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	UserID      string     `json:"user_id"`
}
