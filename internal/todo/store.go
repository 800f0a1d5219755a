// Package todo implements the task store: it owns the task records of all
// users, enforces the Pending -> Completed status machine, and keeps the
// markdown mirror in sync best-effort.
package todo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/todokeeper/internal/common"
	"github.com/dmitrijs2005/todokeeper/internal/logging"
	"github.com/dmitrijs2005/todokeeper/internal/models"
	"github.com/dmitrijs2005/todokeeper/internal/storage"
)

// Store holds the full task mapping in memory and rewrites the whole
// collection to storage after every mutation. The structured store is the
// source of truth: a failed mirror write is logged and surfaced as a
// warning but never rolls back the mutation.
type Store struct {
	storage storage.Storage
	log     logging.Logger
	tasks   map[string]models.Task

	// now is a test seam for timestamp-dependent behavior.
	now func() time.Time
}

// NewStore loads the task collection and returns a ready Store.
func NewStore(ctx context.Context, st storage.Storage, log logging.Logger) (*Store, error) {
	tasks, err := st.LoadTasks(ctx)
	if err != nil {
		return nil, fmt.Errorf("load tasks: %w", err)
	}
	return &Store{storage: st, log: log, tasks: tasks, now: time.Now}, nil
}

// Create inserts a new Pending task owned by userID. The due date, if any,
// is stored as given (callers normalize date-only input to end of day).
func (s *Store) Create(ctx context.Context, title, description string, priority models.Priority, due *time.Time, userID string) (*models.Task, error) {
	if len(title) == 0 {
		return nil, common.ErrorEmptyTitle
	}

	now := s.now()
	task := models.Task{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		Status:      models.StatusPending,
		Priority:    priority,
		DueDate:     due,
		CreatedAt:   now,
		UpdatedAt:   now,
		UserID:      userID,
	}

	s.tasks[task.ID] = task
	if err := s.storage.SaveTasks(ctx, s.tasks); err != nil {
		delete(s.tasks, task.ID)
		return nil, fmt.Errorf("save tasks: %w", err)
	}
	if err := s.storage.AppendMarkdown(ctx, &task); err != nil {
		s.log.Warn(ctx, "markdown mirror append failed", "task_id", task.ID, "error", err)
	}
	return &task, nil
}

// ListForOwner returns all tasks owned by userID, in arbitrary order.
// Tasks of other owners are never included.
func (s *Store) ListForOwner(userID string) []models.Task {
	var tasks []models.Task
	for _, t := range s.tasks {
		if t.UserID == userID {
			tasks = append(tasks, t)
		}
	}
	return tasks
}

// Get returns a copy of the task with the given id.
func (s *Store) Get(id string) (*models.Task, error) {
	task, ok := s.tasks[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &task, nil
}

// Complete marks a task Completed and refreshes UpdatedAt. Completing an
// already completed task is observably idempotent in status but still
// refreshes UpdatedAt.
func (s *Store) Complete(ctx context.Context, id string) error {
	task, ok := s.tasks[id]
	if !ok {
		return common.ErrorNotFound
	}

	task.Status = models.StatusCompleted
	task.UpdatedAt = s.now()
	s.tasks[id] = task

	if err := s.storage.SaveTasks(ctx, s.tasks); err != nil {
		return fmt.Errorf("save tasks: %w", err)
	}
	if err := s.storage.UpdateMarkdown(ctx, &task); err != nil {
		s.log.Warn(ctx, "markdown mirror update failed", "task_id", task.ID, "error", err)
	}
	return nil
}

// Update replaces the stored record keyed by task.ID and refreshes
// UpdatedAt. The status field is taken as-is; the edit flow never changes
// it.
func (s *Store) Update(ctx context.Context, task models.Task) error {
	prev, ok := s.tasks[task.ID]
	if !ok {
		return common.ErrorNotFound
	}

	task.UpdatedAt = s.now()
	s.tasks[task.ID] = task

	if err := s.storage.SaveTasks(ctx, s.tasks); err != nil {
		s.tasks[task.ID] = prev
		return fmt.Errorf("save tasks: %w", err)
	}
	if err := s.storage.UpdateMarkdown(ctx, &task); err != nil {
		s.log.Warn(ctx, "markdown mirror update failed", "task_id", task.ID, "error", err)
	}
	return nil
}

// Delete removes the task with the given id. Deleting an unknown id fails
// with not-found and leaves the collection unchanged.
func (s *Store) Delete(ctx context.Context, id string) error {
	removed, ok := s.tasks[id]
	if !ok {
		return common.ErrorNotFound
	}

	delete(s.tasks, id)
	if err := s.storage.SaveTasks(ctx, s.tasks); err != nil {
		s.tasks[id] = removed
		return fmt.Errorf("save tasks: %w", err)
	}
	if err := s.storage.RemoveMarkdown(ctx, &removed); err != nil {
		s.log.Warn(ctx, "markdown mirror remove failed", "task_id", removed.ID, "error", err)
	}
	return nil
}
