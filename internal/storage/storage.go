// Package storage defines the durable persistence port used by the
// credential manager and the task store, plus its implementations: a
// JSON-file adapter (default), a SQLite adapter, and an in-memory fake for
// tests.
//
// The contract follows the single-process model of the application: every
// save rewrites the whole collection, loads that find nothing bootstrap an
// empty collection (first run), and failed saves propagate to the caller.
// The markdown mirror operations maintain a secondary human-readable
// rendering of the task collection; they are best-effort and never the
// source of truth.
package storage

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/dmitrijs2005/todokeeper/internal/config"
	"github.com/dmitrijs2005/todokeeper/internal/filex"
	"github.com/dmitrijs2005/todokeeper/internal/logging"
	"github.com/dmitrijs2005/todokeeper/internal/models"
)

// Storage is the persistence port consumed by the core components.
type Storage interface {
	// LoadUsers returns the full user collection, empty on first run.
	LoadUsers(ctx context.Context) (map[string]models.User, error)
	// SaveUsers rewrites the full user collection.
	SaveUsers(ctx context.Context, users map[string]models.User) error

	// LoadSession returns the persisted session, or nil when absent.
	LoadSession(ctx context.Context) (*models.Session, error)
	// SaveSession replaces the persisted session.
	SaveSession(ctx context.Context, s *models.Session) error
	// ClearSession removes the persisted session; it is idempotent.
	ClearSession(ctx context.Context) error

	// LoadTasks returns the full task collection, empty on first run.
	LoadTasks(ctx context.Context) (map[string]models.Task, error)
	// SaveTasks rewrites the full task collection.
	SaveTasks(ctx context.Context, tasks map[string]models.Task) error

	// AppendMarkdown adds a task to the markdown mirror.
	AppendMarkdown(ctx context.Context, t *models.Task) error
	// UpdateMarkdown replaces the mirror entry matching the task's id.
	UpdateMarkdown(ctx context.Context, t *models.Task) error
	// RemoveMarkdown deletes the mirror entry matching the task's id.
	RemoveMarkdown(ctx context.Context, t *models.Task) error

	// Close releases any underlying resources.
	Close() error
}

// New builds the storage backend selected by cfg.Backend, rooted at
// cfg.DataDir.
func New(ctx context.Context, cfg *config.Config, log logging.Logger) (Storage, error) {
	dir, err := filex.EnsureDir(cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("data dir: %w", err)
	}

	mirror := newMarkdownMirror(filepath.Join(dir, cfg.MirrorFile))

	switch cfg.Backend {
	case config.BackendJSON:
		return NewJSONFile(dir, mirror, log), nil
	case config.BackendSQLite:
		return NewSQLite(ctx, filepath.Join(dir, "todokeeper.db"), mirror)
	}
	return nil, fmt.Errorf("unknown storage backend: %q", cfg.Backend)
}
