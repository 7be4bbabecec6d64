package task

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// sqliteTimeLayout is RFC3339 with a fixed-width fraction. RFC3339Nano
// trims trailing zeros, and the trimmed strings do not sort
// lexicographically, which would break ORDER BY created_at within a second.
const sqliteTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// SQLiteRepo persists tasks in a SQLite database. Only the schedule fields
// and the done flag are stored; overdue and due-soon are recomputed by the
// caller before display.
type SQLiteRepo struct {
	db *sql.DB
}

func NewSQLiteRepo(dsn string) (*SQLiteRepo, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// Reasonable pragmas for an app server
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA synchronous=NORMAL;
		PRAGMA foreign_keys=ON;
	`); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLiteRepo{db: db}, nil
}

func (r *SQLiteRepo) Close() error { return r.db.Close() }

// ApplyMigrations ensures schema exists
func (r *SQLiteRepo) ApplyMigrations(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS tasks (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	due_date TEXT,
	due_time TEXT,
	venue TEXT NOT NULL DEFAULT '',
	done INTEGER NOT NULL DEFAULT 0,
	created_at TEXT NOT NULL
);
	`)
	return err
}

func (r *SQLiteRepo) Create(ctx context.Context, name string, date *Date, clock *Clock, venue string) (*Task, error) {
	t, err := New(name, date, clock, venue)
	if err != nil {
		return nil, err
	}
	t.ID = uuid.NewString()
	t.CreatedAt = time.Now().UTC()

	var dueDate, dueTime sql.NullString
	if date != nil {
		dueDate = sql.NullString{String: date.String(), Valid: true}
	}
	if clock != nil {
		dueTime = sql.NullString{String: clock.String(), Valid: true}
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO tasks (id, name, due_date, due_time, venue, done, created_at)
		VALUES (?, ?, ?, ?, ?, 0, ?)
	`, t.ID, t.Name, dueDate, dueTime, t.Venue, t.CreatedAt.Format(sqliteTimeLayout))
	if err != nil {
		return nil, fmt.Errorf("insert task: %w", err)
	}
	return t, nil
}

func (r *SQLiteRepo) List(ctx context.Context) ([]*Task, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, due_date, due_time, venue, done, created_at
		FROM tasks
		ORDER BY created_at ASC, id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *SQLiteRepo) Get(ctx context.Context, id string) (*Task, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, due_date, due_time, venue, done, created_at
		FROM tasks
		WHERE id = ?
	`, id)
	t, err := scanTask(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	return t, err
}

func (r *SQLiteRepo) SetDone(ctx context.Context, id string, done bool) (*Task, error) {
	doneInt := 0
	if done {
		doneInt = 1
	}
	res, err := r.db.ExecContext(ctx, `UPDATE tasks SET done = ? WHERE id = ?`, doneInt, id)
	if err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return nil, err
	} else if n == 0 {
		return nil, ErrNotFound
	}
	return r.Get(ctx, id)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*Task, error) {
	var (
		t                Task
		dueDate, dueTime sql.NullString
		doneInt          int
		created          string
	)
	if err := row.Scan(&t.ID, &t.Name, &dueDate, &dueTime, &t.Venue, &doneInt, &created); err != nil {
		return nil, err
	}
	if dueDate.Valid {
		d, err := ParseDate(dueDate.String)
		if err != nil {
			return nil, fmt.Errorf("corrupt due_date for task %s: %w", t.ID, err)
		}
		t.Date = &d
	}
	if dueTime.Valid {
		c, err := ParseClock(dueTime.String)
		if err != nil {
			return nil, fmt.Errorf("corrupt due_time for task %s: %w", t.ID, err)
		}
		t.Time = &c
	}
	t.Done = doneInt != 0
	ts, err := time.Parse(time.RFC3339Nano, created)
	if err != nil {
		return nil, fmt.Errorf("corrupt created_at for task %s: %w", t.ID, err)
	}
	t.CreatedAt = ts
	return &t, nil
}

// SQLiteFileDSN builds a DSN like: file:/absolute/path?_pragma=busy_timeout(5000)
func SQLiteFileDSN(path string) (string, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return "file:" + filepath.ToSlash(abs) + "?_pragma=busy_timeout(5000)", nil
}
