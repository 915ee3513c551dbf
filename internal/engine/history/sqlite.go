package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// timeLayout is fixed-width so text ordering matches time ordering.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// SQLite is the local, single-file Store.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) the history database at path.
func OpenSQLite(path string) (*SQLite, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("history: mkdir %s: %w", dir, err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("history: open db: %w", err)
	}
	db.SetMaxOpenConns(1) // SQLite: single writer
	if err := initSQLiteSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("history: init schema: %w", err)
	}
	return &SQLite{db: db}, nil
}

func initSQLiteSchema(db *sql.DB) error {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS generation_runs (
		id         TEXT PRIMARY KEY,
		video_id   TEXT NOT NULL,
		platforms  TEXT NOT NULL,
		hashtags   TEXT NOT NULL,
		posts      TEXT NOT NULL,
		created_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS generation_runs_video_created_idx
		ON generation_runs (video_id, created_at DESC);`)
	return err
}

// Save inserts r.
func (s *SQLite) Save(ctx context.Context, r Record) error {
	platforms, err := json.Marshal(r.Platforms)
	if err != nil {
		return err
	}
	hashtags, err := json.Marshal(r.Hashtags)
	if err != nil {
		return err
	}
	posts, err := json.Marshal(r.Posts)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO generation_runs (id, video_id, platforms, hashtags, posts, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		r.ID, r.VideoID, string(platforms), string(hashtags), string(posts), r.CreatedAt.UTC().Format(timeLayout))
	if err != nil {
		return fmt.Errorf("history: insert: %w", err)
	}
	return nil
}

// List returns runs newest first.
func (s *SQLite) List(ctx context.Context, videoID string, limit int) ([]Record, error) {
	q := `SELECT id, video_id, platforms, hashtags, posts, created_at FROM generation_runs`
	var args []any
	if videoID != "" {
		q += ` WHERE video_id = ?`
		args = append(args, videoID)
	}
	q += ` ORDER BY created_at DESC LIMIT ?`
	args = append(args, clampLimit(limit))

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("history: query: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var (
			r                          Record
			platforms, hashtags, posts string
			created                    string
		)
		if err := rows.Scan(&r.ID, &r.VideoID, &platforms, &hashtags, &posts, &created); err != nil {
			return nil, fmt.Errorf("history: scan: %w", err)
		}
		if err := decodeColumns(&r, []byte(platforms), []byte(hashtags), []byte(posts)); err != nil {
			return nil, err
		}
		r.CreatedAt, _ = time.Parse(timeLayout, created)
		out = append(out, r)
	}
	return out, rows.Err()
}

// Close closes the database.
func (s *SQLite) Close() error { return s.db.Close() }

func decodeColumns(r *Record, platforms, hashtags, posts []byte) error {
	if platforms != nil {
		if err := json.Unmarshal(platforms, &r.Platforms); err != nil {
			return fmt.Errorf("history: decode platforms: %w", err)
		}
	}
	if err := json.Unmarshal(hashtags, &r.Hashtags); err != nil {
		return fmt.Errorf("history: decode hashtags: %w", err)
	}
	if err := json.Unmarshal(posts, &r.Posts); err != nil {
		return fmt.Errorf("history: decode posts: %w", err)
	}
	return nil
}
