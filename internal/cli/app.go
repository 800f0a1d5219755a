// Package cli implements the interactive and flag-driven command surface
// of todokeeper. It wires the credential manager, the task store and the
// reminder engine together and renders their results.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/todokeeper/internal/auth"
	"github.com/dmitrijs2005/todokeeper/internal/config"
	"github.com/dmitrijs2005/todokeeper/internal/logging"
	"github.com/dmitrijs2005/todokeeper/internal/storage"
	"github.com/dmitrijs2005/todokeeper/internal/todo"
)

type App struct {
	config  *config.Config
	log     logging.Logger
	storage storage.Storage
	auth    *auth.Manager
	tasks   *todo.Store
	reader  *bufio.Reader
}

func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	st, err := storage.New(ctx, cfg, log)
	if err != nil {
		return nil, fmt.Errorf("init storage: %w", err)
	}

	authManager, err := auth.NewManager(ctx, st, cfg.SessionTTL)
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("init auth manager: %w", err)
	}

	taskStore, err := todo.NewStore(ctx, st, log)
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("init task store: %w", err)
	}

	return &App{
		config:  cfg,
		log:     log,
		storage: st,
		auth:    authManager,
		tasks:   taskStore,
		reader:  bufio.NewReader(os.Stdin),
	}, nil
}

func (a *App) Close() error {
	return a.storage.Close()
}

func (a *App) isLoggedIn() bool {
	return a.auth.IsAuthenticated()
}

// statusLabel is shown in the REPL prompt.
func (a *App) statusLabel() string {
	user, err := a.auth.CurrentUser()
	if err != nil {
		return ""
	}
	return "(" + user.Username + ")"
}
