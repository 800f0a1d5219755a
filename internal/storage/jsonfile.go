package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/todokeeper/internal/logging"
	"github.com/dmitrijs2005/todokeeper/internal/models"
)

// JSONFile is the default storage backend: one JSON document per collection
// inside the data directory. Every save rewrites the whole file.
type JSONFile struct {
	dir    string
	mirror *markdownMirror
	log    logging.Logger
}

// NewJSONFile returns a JSON-file backend rooted at dir.
func NewJSONFile(dir string, mirror *markdownMirror, log logging.Logger) *JSONFile {
	return &JSONFile{dir: dir, mirror: mirror, log: log}
}

const (
	usersFile   = "users.json"
	sessionFile = "session.json"
	tasksFile   = "tasks.json"
)

// loadJSON reads path into out. A missing or unreadable file is a first-run
// bootstrap: out is left at its zero value and no error is returned.
func (s *JSONFile) loadJSON(ctx context.Context, path string, out any) {
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.log.Warn(ctx, "bootstrapping empty collection", "path", path, "error", err)
		}
		return
	}
	if err := json.Unmarshal(data, out); err != nil {
		s.log.Warn(ctx, "bootstrapping empty collection", "path", path, "error", err)
	}
}

func (s *JSONFile) saveJSON(path string, in any) error {
	data, err := json.MarshalIndent(in, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}

func (s *JSONFile) LoadUsers(ctx context.Context) (map[string]models.User, error) {
	users := make(map[string]models.User)
	s.loadJSON(ctx, filepath.Join(s.dir, usersFile), &users)
	return users, nil
}

func (s *JSONFile) SaveUsers(ctx context.Context, users map[string]models.User) error {
	return s.saveJSON(filepath.Join(s.dir, usersFile), users)
}

func (s *JSONFile) LoadSession(ctx context.Context) (*models.Session, error) {
	var sess models.Session
	path := filepath.Join(s.dir, sessionFile)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil
	}
	s.loadJSON(ctx, path, &sess)
	if sess.UserID == "" {
		return nil, nil
	}
	return &sess, nil
}

func (s *JSONFile) SaveSession(ctx context.Context, sess *models.Session) error {
	return s.saveJSON(filepath.Join(s.dir, sessionFile), sess)
}

func (s *JSONFile) ClearSession(ctx context.Context) error {
	err := os.Remove(filepath.Join(s.dir, sessionFile))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

func (s *JSONFile) LoadTasks(ctx context.Context) (map[string]models.Task, error) {
	tasks := make(map[string]models.Task)
	s.loadJSON(ctx, filepath.Join(s.dir, tasksFile), &tasks)
	return tasks, nil
}

func (s *JSONFile) SaveTasks(ctx context.Context, tasks map[string]models.Task) error {
	return s.saveJSON(filepath.Join(s.dir, tasksFile), tasks)
}

func (s *JSONFile) AppendMarkdown(ctx context.Context, t *models.Task) error {
	return s.mirror.Append(t)
}

func (s *JSONFile) UpdateMarkdown(ctx context.Context, t *models.Task) error {
	return s.mirror.Update(t)
}

func (s *JSONFile) RemoveMarkdown(ctx context.Context, t *models.Task) error {
	return s.mirror.Remove(t)
}

func (s *JSONFile) Close() error { return nil }
