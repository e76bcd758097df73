// Package history records finished renders in a SQLite database.
package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	deckgen "github.com/alnah/go-deckgen"
	"github.com/alnah/go-deckgen/internal/fileutil"
)

// Sentinel errors for the history store.
var (
	ErrOpen   = errors.New("failed to open history")
	ErrRecord = errors.New("failed to record render")
	ErrQuery  = errors.New("failed to query history")
)

// DefaultLimit is the number of entries List returns for a non-positive
// limit.
const DefaultLimit = 50

const schema = `
CREATE TABLE IF NOT EXISTS renders (
	id TEXT PRIMARY KEY,
	topic TEXT NOT NULL DEFAULT '',
	theme TEXT NOT NULL DEFAULT '',
	filename TEXT NOT NULL,
	slides INTEGER NOT NULL DEFAULT 0,
	degraded INTEGER NOT NULL DEFAULT 0,
	failed INTEGER NOT NULL DEFAULT 0,
	template_fallback INTEGER NOT NULL DEFAULT 0,
	created_at DATETIME NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_renders_created_at ON renders(created_at);`

// Entry is one recorded render.
type Entry struct {
	ID               string    `json:"id"`
	Topic            string    `json:"topic"`
	Theme            string    `json:"theme"`
	Filename         string    `json:"filename"`
	Slides           int       `json:"slides"`
	Degraded         int       `json:"degraded"`
	Failed           int       `json:"failed"`
	TemplateFallback bool      `json:"template_fallback"`
	CreatedAt        time.Time `json:"created_at"`
}

// Store is a render history backed by SQLite. A Store is safe for
// concurrent use.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens or creates the database at path. The parent directory is
// created when missing. ":memory:" opens a private in-memory store.
func Open(path string) (*Store, error) {
	dsn := path
	if path != ":memory:" {
		if err := fileutil.EnsureDir(filepath.Dir(path)); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrOpen, err)
		}
		dsn = path + "?_busy_timeout=5000&_journal_mode=WAL"
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOpen, err)
	}
	// sqlite serializes writers; one connection also keeps an in-memory
	// database alive across queries.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %v", ErrOpen, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: creating schema: %v", ErrOpen, err)
	}
	return &Store{db: db, now: time.Now}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Record stores a finished render and returns its entry.
func (s *Store) Record(ctx context.Context, res *deckgen.Result) (Entry, error) {
	if res == nil || res.Report == nil {
		return Entry{}, fmt.Errorf("%w: nil result", ErrRecord)
	}
	rep := res.Report
	e := Entry{
		ID:               uuid.NewString(),
		Topic:            rep.Topic,
		Theme:            rep.Theme,
		Filename:         res.Filename,
		Slides:           len(rep.Slides),
		Degraded:         rep.Degraded(),
		Failed:           rep.Failed(),
		TemplateFallback: rep.TemplateFallback,
		CreatedAt:        s.now().UTC(),
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO renders (id, topic, theme, filename, slides, degraded, failed, template_fallback, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Topic, e.Theme, e.Filename, e.Slides, e.Degraded, e.Failed, e.TemplateFallback, e.CreatedAt,
	)
	if err != nil {
		return Entry{}, fmt.Errorf("%w: %v", ErrRecord, err)
	}
	return e, nil
}

// List returns the most recent entries first.
func (s *Store) List(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, topic, theme, filename, slides, degraded, failed, template_fallback, created_at
		 FROM renders ORDER BY created_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrQuery, err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Topic, &e.Theme, &e.Filename, &e.Slides,
			&e.Degraded, &e.Failed, &e.TemplateFallback, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrQuery, err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrQuery, err)
	}
	return out, nil
}
