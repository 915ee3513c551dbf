package history

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed schema/*.sql
var schemaFS embed.FS

// Postgres is the shared Store, used when DATABASE_URL is set.
type Postgres struct {
	pool *pgxpool.Pool
}

// ConnectPostgres creates a pgx pool and applies the embedded migrations.
func ConnectPostgres(ctx context.Context, databaseURL string) (*Postgres, error) {
	if databaseURL == "" {
		return nil, errors.New("DATABASE_URL is required")
	}

	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse DATABASE_URL: %w", err)
	}
	config.MaxConns = 5
	config.MinConns = 1

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("create pgx pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	db := &Postgres{pool: pool}
	if err := db.runMigrations(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	slog.Info("history: postgres connected", slog.String("addr", config.ConnConfig.Host))
	return db, nil
}

func (db *Postgres) runMigrations(ctx context.Context) error {
	entries, err := schemaFS.ReadDir("schema")
	if err != nil {
		return fmt.Errorf("read schema dir: %w", err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}
		data, err := schemaFS.ReadFile("schema/" + entry.Name())
		if err != nil {
			return fmt.Errorf("read %s: %w", entry.Name(), err)
		}
		if _, err := db.pool.Exec(ctx, string(data)); err != nil {
			return fmt.Errorf("execute %s: %w", entry.Name(), err)
		}
		slog.Debug("history: migration applied", slog.String("file", entry.Name()))
	}
	return nil
}

// Save inserts r.
func (db *Postgres) Save(ctx context.Context, r Record) error {
	hashtags, err := json.Marshal(r.Hashtags)
	if err != nil {
		return err
	}
	posts, err := json.Marshal(r.Posts)
	if err != nil {
		return err
	}
	platforms := r.Platforms
	if platforms == nil {
		platforms = []string{}
	}
	_, err = db.pool.Exec(ctx,
		`INSERT INTO generation_runs (id, video_id, platforms, hashtags, posts, created_at)
		 VALUES ($1, $2, $3, $4::jsonb, $5::jsonb, $6)`,
		r.ID, r.VideoID, platforms, string(hashtags), string(posts), r.CreatedAt)
	if err != nil {
		return fmt.Errorf("history: insert: %w", err)
	}
	return nil
}

// List returns runs newest first.
func (db *Postgres) List(ctx context.Context, videoID string, limit int) ([]Record, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id::text, video_id, platforms, hashtags, posts, created_at
		 FROM generation_runs
		 WHERE $1 = '' OR video_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2`,
		videoID, clampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("history: query: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var (
			r               Record
			hashtags, posts []byte
		)
		if err := rows.Scan(&r.ID, &r.VideoID, &r.Platforms, &hashtags, &posts, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("history: scan: %w", err)
		}
		if err := decodeColumns(&r, nil, hashtags, posts); err != nil {
			return nil, err
		}
		r.CreatedAt = r.CreatedAt.UTC()
		out = append(out, r)
	}
	return out, rows.Err()
}

// Close releases the pool.
func (db *Postgres) Close() error {
	db.pool.Close()
	return nil
}
