// Package workspace manages the download and temp directories: creation,
// safe file names and removal of stale files.
package workspace

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/anatolykoptev/go_ytcontent/internal/engine"
)

const dirPerm = 0o755

// EnsureDir creates path (and parents) if missing and returns it.
func EnsureDir(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", errors.New("workspace: empty directory path")
	}
	if err := os.MkdirAll(path, dirPerm); err != nil {
		return "", fmt.Errorf("workspace: create %s: %w", path, err)
	}
	return path, nil
}

// SafeFilename keeps letters, digits, spaces, '-' and '_', then trims spaces.
func SafeFilename(name string) string {
	var sb strings.Builder
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == ' ' || r == '-' || r == '_' {
			sb.WriteRune(r)
		}
	}
	return strings.TrimSpace(sb.String())
}

// CleanupOldFiles removes regular files in dir whose modification time is
// older than maxAge. Subdirectories are left alone. A missing dir is not an
// error. It returns the number of files removed; per-file failures are
// logged and skipped.
func CleanupOldFiles(dir string, maxAge time.Duration) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return 0, nil
		}
		return 0, fmt.Errorf("workspace: read %s: %w", dir, err)
	}

	cutoff := time.Now().Add(-maxAge)
	removed := 0
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if !info.ModTime().Before(cutoff) {
			continue
		}
		path := filepath.Join(dir, e.Name())
		if err := os.Remove(path); err != nil {
			slog.Warn("workspace: remove failed", slog.String("path", path), slog.Any("error", err))
			continue
		}
		removed++
	}
	engine.AddFilesCleaned(removed)
	return removed, nil
}

// Janitor periodically sweeps a set of directories. It shares no state with
// the generation path.
type Janitor struct {
	Dirs     []string
	MaxAge   time.Duration
	Interval time.Duration
}

// Sweep runs one cleanup pass over every directory and returns the total
// number of files removed.
func (j *Janitor) Sweep() int {
	total := 0
	for _, dir := range j.Dirs {
		n, err := CleanupOldFiles(dir, j.MaxAge)
		if err != nil {
			slog.Warn("workspace: sweep failed", slog.String("dir", dir), slog.Any("error", err))
			continue
		}
		total += n
	}
	if total > 0 {
		slog.Info("workspace: stale files removed", slog.Int("count", total))
	}
	return total
}

// Run sweeps once immediately and then every Interval until ctx is done.
func (j *Janitor) Run(ctx context.Context) {
	interval := j.Interval
	if interval <= 0 {
		interval = time.Hour
	}
	j.Sweep()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			j.Sweep()
		}
	}
}
