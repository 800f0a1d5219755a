package storage

import (
	"context"

	"github.com/dmitrijs2005/todokeeper/internal/models"
)

// Memory is an in-memory Storage used by unit tests. Saves deep-copy their
// input so tests can assert on the persisted snapshot, and every operation
// can be made to fail by setting the corresponding error field.
type Memory struct {
	Users   map[string]models.User
	Session *models.Session
	Tasks   map[string]models.Task

	// MirrorIDs tracks the ids currently present in the fake mirror, in
	// insertion order.
	MirrorIDs []string

	FailSaveUsers   error
	FailSaveSession error
	FailSaveTasks   error
	FailMirror      error
}

// NewMemory returns an empty in-memory storage.
func NewMemory() *Memory {
	return &Memory{
		Users: make(map[string]models.User),
		Tasks: make(map[string]models.Task),
	}
}

func (m *Memory) LoadUsers(ctx context.Context) (map[string]models.User, error) {
	users := make(map[string]models.User, len(m.Users))
	for id, u := range m.Users {
		users[id] = u
	}
	return users, nil
}

func (m *Memory) SaveUsers(ctx context.Context, users map[string]models.User) error {
	if m.FailSaveUsers != nil {
		return m.FailSaveUsers
	}
	m.Users = make(map[string]models.User, len(users))
	for id, u := range users {
		m.Users[id] = u
	}
	return nil
}

func (m *Memory) LoadSession(ctx context.Context) (*models.Session, error) {
	if m.Session == nil {
		return nil, nil
	}
	s := *m.Session
	return &s, nil
}

func (m *Memory) SaveSession(ctx context.Context, s *models.Session) error {
	if m.FailSaveSession != nil {
		return m.FailSaveSession
	}
	copied := *s
	m.Session = &copied
	return nil
}

func (m *Memory) ClearSession(ctx context.Context) error {
	m.Session = nil
	return nil
}

func (m *Memory) LoadTasks(ctx context.Context) (map[string]models.Task, error) {
	tasks := make(map[string]models.Task, len(m.Tasks))
	for id, t := range m.Tasks {
		tasks[id] = t
	}
	return tasks, nil
}

func (m *Memory) SaveTasks(ctx context.Context, tasks map[string]models.Task) error {
	if m.FailSaveTasks != nil {
		return m.FailSaveTasks
	}
	m.Tasks = make(map[string]models.Task, len(tasks))
	for id, t := range tasks {
		m.Tasks[id] = t
	}
	return nil
}

func (m *Memory) AppendMarkdown(ctx context.Context, t *models.Task) error {
	if m.FailMirror != nil {
		return m.FailMirror
	}
	m.MirrorIDs = append(m.MirrorIDs, t.ID)
	return nil
}

func (m *Memory) UpdateMarkdown(ctx context.Context, t *models.Task) error {
	return m.FailMirror
}

func (m *Memory) RemoveMarkdown(ctx context.Context, t *models.Task) error {
	if m.FailMirror != nil {
		return m.FailMirror
	}
	for i, id := range m.MirrorIDs {
		if id == t.ID {
			m.MirrorIDs = append(m.MirrorIDs[:i], m.MirrorIDs[i+1:]...)
			break
		}
	}
	return nil
}

func (m *Memory) Close() error { return nil }
