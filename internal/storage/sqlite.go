package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/pressly/goose/v3"

	"github.com/dmitrijs2005/todokeeper/internal/dbx"
	"github.com/dmitrijs2005/todokeeper/internal/models"
	"github.com/dmitrijs2005/todokeeper/internal/storage/migrations"

	_ "modernc.org/sqlite"
)

// SQLite is the database-backed storage adapter. The schema is managed by
// embedded goose migrations. Saves still rewrite the whole collection
// (delete-all plus insert, in one transaction) to keep the same
// whole-collection semantics as the JSON backend.
type SQLite struct {
	db     *sql.DB
	mirror *markdownMirror
}

// NewSQLite opens (or creates) the database at dsn and applies migrations.
func NewSQLite(ctx context.Context, dsn string, mirror *markdownMirror) (*SQLite, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := runMigrations(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}
	return newSQLiteWithDB(db, mirror), nil
}

func newSQLiteWithDB(db *sql.DB, mirror *markdownMirror) *SQLite {
	return &SQLite{db: db, mirror: mirror}
}

func runMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}
	return goose.UpContext(ctx, db, ".")
}

// sqliteTimeLayout is used for all persisted timestamps.
const sqliteTimeLayout = time.RFC3339Nano

func encodeTime(t time.Time) string {
	return t.Format(sqliteTimeLayout)
}

func decodeTime(s string) (time.Time, error) {
	t, err := time.Parse(sqliteTimeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", s, err)
	}
	return t, nil
}

func encodeNullTime(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: encodeTime(*t), Valid: true}
}

func decodeNullTime(s sql.NullString) (*time.Time, error) {
	if !s.Valid {
		return nil, nil
	}
	t, err := decodeTime(s.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *SQLite) LoadUsers(ctx context.Context) (map[string]models.User, error) {
	query := `SELECT id, username, email, password_hash, created_at, last_login FROM users`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("select users: %w", err)
	}
	defer rows.Close()

	users := make(map[string]models.User)
	for rows.Next() {
		var u models.User
		var createdAt string
		var lastLogin sql.NullString
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &createdAt, &lastLogin); err != nil {
			return nil, err
		}
		if u.CreatedAt, err = decodeTime(createdAt); err != nil {
			return nil, err
		}
		if u.LastLogin, err = decodeNullTime(lastLogin); err != nil {
			return nil, err
		}
		users[u.ID] = u
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *SQLite) SaveUsers(ctx context.Context, users map[string]models.User) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM users`); err != nil {
			return fmt.Errorf("clear users: %w", err)
		}
		query := `INSERT INTO users (id, username, email, password_hash, created_at, last_login)
			VALUES (?, ?, ?, ?, ?, ?)`
		for _, u := range users {
			_, err := tx.ExecContext(ctx, query,
				u.ID, u.Username, u.Email, u.PasswordHash, encodeTime(u.CreatedAt), encodeNullTime(u.LastLogin))
			if err != nil {
				return fmt.Errorf("insert user: %w", err)
			}
		}
		return nil
	})
}

func (s *SQLite) LoadSession(ctx context.Context) (*models.Session, error) {
	query := `SELECT user_id, created_at, expires_at FROM sessions LIMIT 1`
	row := s.db.QueryRowContext(ctx, query)

	var sess models.Session
	var createdAt, expiresAt string
	if err := row.Scan(&sess.UserID, &createdAt, &expiresAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select session: %w", err)
	}

	var err error
	if sess.CreatedAt, err = decodeTime(createdAt); err != nil {
		return nil, err
	}
	if sess.ExpiresAt, err = decodeTime(expiresAt); err != nil {
		return nil, err
	}
	return &sess, nil
}

func (s *SQLite) SaveSession(ctx context.Context, sess *models.Session) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM sessions`); err != nil {
			return fmt.Errorf("clear sessions: %w", err)
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO sessions (user_id, created_at, expires_at) VALUES (?, ?, ?)`,
			sess.UserID, encodeTime(sess.CreatedAt), encodeTime(sess.ExpiresAt))
		if err != nil {
			return fmt.Errorf("insert session: %w", err)
		}
		return nil
	})
}

func (s *SQLite) ClearSession(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM sessions`); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

func (s *SQLite) LoadTasks(ctx context.Context) (map[string]models.Task, error) {
	query := `SELECT id, title, description, status, priority, due_date, created_at, updated_at, user_id FROM tasks`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("select tasks: %w", err)
	}
	defer rows.Close()

	tasks := make(map[string]models.Task)
	for rows.Next() {
		var t models.Task
		var status, priority, createdAt, updatedAt string
		var dueDate sql.NullString
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &status, &priority, &dueDate, &createdAt, &updatedAt, &t.UserID); err != nil {
			return nil, err
		}
		if t.Status, err = models.ParseStatus(status); err != nil {
			return nil, err
		}
		if t.Priority, err = models.ParsePriority(priority); err != nil {
			return nil, err
		}
		if t.DueDate, err = decodeNullTime(dueDate); err != nil {
			return nil, err
		}
		if t.CreatedAt, err = decodeTime(createdAt); err != nil {
			return nil, err
		}
		if t.UpdatedAt, err = decodeTime(updatedAt); err != nil {
			return nil, err
		}
		tasks[t.ID] = t
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (s *SQLite) SaveTasks(ctx context.Context, tasks map[string]models.Task) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM tasks`); err != nil {
			return fmt.Errorf("clear tasks: %w", err)
		}
		query := `INSERT INTO tasks (id, title, description, status, priority, due_date, created_at, updated_at, user_id)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
		for _, t := range tasks {
			_, err := tx.ExecContext(ctx, query,
				t.ID, t.Title, t.Description, string(t.Status), t.Priority.String(),
				encodeNullTime(t.DueDate), encodeTime(t.CreatedAt), encodeTime(t.UpdatedAt), t.UserID)
			if err != nil {
				return fmt.Errorf("insert task: %w", err)
			}
		}
		return nil
	})
}

func (s *SQLite) AppendMarkdown(ctx context.Context, t *models.Task) error {
	return s.mirror.Append(t)
}

func (s *SQLite) UpdateMarkdown(ctx context.Context, t *models.Task) error {
	return s.mirror.Update(t)
}

func (s *SQLite) RemoveMarkdown(ctx context.Context, t *models.Task) error {
	return s.mirror.Remove(t)
}

func (s *SQLite) Close() error {
	return s.db.Close()
}
